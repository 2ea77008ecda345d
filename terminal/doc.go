// Package terminal presents frames and reads keys through tcell.
//
// Each screen cell shows two vertical pixels: an upper half block whose
// foreground is the top pixel and background the bottom one. Terminals only
// report key presses, so held state is reconstructed by input.HoldTracker.
package terminal
