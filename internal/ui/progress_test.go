package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/desertthunder/stationer/internal/tasks"
)

func TestRenderProgress(t *testing.T) {
	tt := []struct {
		name    string
		update  tasks.ProgressUpdate
		verbose bool
		want    string
	}{
		{name: "insert", update: tasks.ProgressUpdate{Phase: tasks.ApplyInsert, Message: "[1/1] + 98.5 - A"}, want: "+ 98.5 - A"},
		{name: "delete", update: tasks.ProgressUpdate{Phase: tasks.ApplyDelete, Message: "[1/1] - 98.5 - A"}, want: "- 98.5 - A"},
		{name: "update", update: tasks.ProgressUpdate{Phase: tasks.ApplyUpdate, Message: "[1/1] ~ 98.5 - A"}, want: "~ 98.5 - A"},
		{name: "fetch hidden", update: tasks.ProgressUpdate{Phase: tasks.FetchReference, Message: "Fetching"}, want: ""},
		{name: "fetch verbose", update: tasks.ProgressUpdate{Phase: tasks.FetchReference, Message: "Fetching"}, verbose: true, want: "Fetching"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := RenderProgress(tc.update, tc.verbose)
			if tc.want == "" {
				if got != "" {
					t.Errorf("expected nothing, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tc.want) {
				t.Errorf("RenderProgress() = %q, want it to contain %q", got, tc.want)
			}
		})
	}
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressPrinter(&buf, false)

	p.Updates() <- tasks.ProgressUpdate{Phase: tasks.FetchLocal, Message: "Reading local stations..."}
	p.Updates() <- tasks.ProgressUpdate{Phase: tasks.ApplyInsert, Message: "[1/2] + 98.5 - A"}
	p.Updates() <- tasks.ProgressUpdate{Phase: tasks.ApplyInsert, Message: "[2/2] + 101.7 - B"}
	p.Close()

	output := buf.String()
	if strings.Contains(output, "Reading") {
		t.Errorf("expected fetch phase to be hidden, got %q", output)
	}
	if !strings.Contains(output, "98.5 - A") || !strings.Contains(output, "101.7 - B") {
		t.Errorf("missing applied lines, got %q", output)
	}
	if strings.Count(output, "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", output)
	}
}

func TestStyles(t *testing.T) {
	for name, render := range map[string]func(string) string{
		"Title": Title, "OK": OK, "Err": Err, "Warn": Warn, "Help": Help,
	} {
		if got := render("text"); !strings.Contains(got, "text") {
			t.Errorf("%s dropped its content: %q", name, got)
		}
	}
}
