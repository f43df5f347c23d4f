// Package ui renders the launcher's console output with lipgloss styles.
//
// A [Palette] colors status lines (ok, warning, error, hints), and [Banner] lays out the startup block showing the
// server URL, port and served directory. Styles degrade to plain text when stdout is not a terminal.
package ui
