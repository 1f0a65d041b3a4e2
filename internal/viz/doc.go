// Package viz renders decay trees, catalogue summaries and spectra for the
// terminal.
//
//   - [Renderer]: lipgloss styled trees, summaries and decay reports
//   - [Canvas]: Braille pixel canvas used for kinematic scatter plots
//   - Theme selection with 4 built-in color schemes
//
// Energy spectra are plotted with asciigraph.
package viz
