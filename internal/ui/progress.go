package ui

import (
	"fmt"
	"io"

	"github.com/desertthunder/stationer/internal/tasks"
)

// ProgressPrinter writes progress updates from a channel until the channel is closed.
type ProgressPrinter struct {
	w       io.Writer
	verbose bool
	updates chan tasks.ProgressUpdate
	done    chan struct{}
}

// NewProgressPrinter starts a printer over a buffered channel. Fetch and compare phases are only printed when verbose.
func NewProgressPrinter(w io.Writer, verbose bool) *ProgressPrinter {
	p := &ProgressPrinter{
		w:       w,
		verbose: verbose,
		updates: make(chan tasks.ProgressUpdate, 100),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Updates returns the send side handed to the engine.
func (p *ProgressPrinter) Updates() chan<- tasks.ProgressUpdate {
	return p.updates
}

// Close stops accepting updates and waits until every buffered update has been written.
func (p *ProgressPrinter) Close() {
	close(p.updates)
	<-p.done
}

func (p *ProgressPrinter) run() {
	defer close(p.done)
	for update := range p.updates {
		if line := RenderProgress(update, p.verbose); line != "" {
			fmt.Fprintln(p.w, line)
		}
	}
}

// RenderProgress formats one update. Phases other than applied commands render empty unless verbose.
func RenderProgress(update tasks.ProgressUpdate, verbose bool) string {
	switch update.Phase {
	case tasks.ApplyInsert:
		return OK(update.Message)
	case tasks.ApplyDelete:
		return Warn(update.Message)
	case tasks.ApplyUpdate, tasks.Recategorize:
		return update.Message
	default:
		if verbose {
			return Help(update.Message)
		}
		return ""
	}
}
