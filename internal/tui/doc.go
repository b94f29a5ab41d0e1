// Package tui is the interactive terminal front end of the sheet: a
// bubbletea program showing a formula line, a value line and the 26x26
// grid, with a save dialog.
package tui
