package tasks

import (
	"fmt"

	"github.com/desertthunder/stationer/internal/models"
)

// ProgressUpdate represents a progress event during a reconciliation operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data, e.g. the applied [models.Station]
}

// Operation phase enumeration
type Phase int

const (
	FetchReference Phase = iota
	FetchLocal
	Compare
	ApplyUpdate
	ApplyDelete
	ApplyInsert
	Recategorize
)

func (p Phase) String() string {
	switch p {
	case FetchReference:
		return "fetch_reference"
	case FetchLocal:
		return "fetch_local"
	case Compare:
		return "compare"
	case ApplyUpdate:
		return "update"
	case ApplyDelete:
		return "delete"
	case ApplyInsert:
		return "insert"
	case Recategorize:
		return "recategorize"
	default:
		return ""
	}
}

func fetchReferenceUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchReference,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching reference stations (%s)...", name),
	}
}

func fetchLocalUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLocal,
		Step:    1,
		Total:   1,
		Message: "Reading local stations...",
	}
}

func compareUpdate(reference, local int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Compare,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Comparing %d reference and %d local stations...", reference, local),
	}
}

func applyUpdate(phase Phase, step, total int, s models.Station) ProgressUpdate {
	var symbol string
	switch phase {
	case ApplyInsert:
		symbol = "+"
	case ApplyDelete:
		symbol = "-"
	default:
		symbol = "~"
	}
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s - %s", step, total, symbol, s.Frequency, s.StoredName()),
		Data:    s,
	}
}

func recategorizeUpdate(to, from int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Recategorize,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Moving stations from category %d to %d...", from, to),
	}
}
