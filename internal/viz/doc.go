// Package viz renders trajectories and search results in the terminal.
//
// Line plots are drawn with asciigraph; panels and labels are styled with
// lipgloss. Nothing here feeds back into the integration.
package viz
