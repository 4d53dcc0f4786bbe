// Package ui styles terminal output of the station command loop.
//
// The package-level palette (lipgloss) colors section titles, summaries and diagnostics.
// [ProgressPrinter] drains the [tasks.ProgressUpdate] channel of a write operation and prints each update as a line,
// so the engine never blocks on the terminal.
package ui
