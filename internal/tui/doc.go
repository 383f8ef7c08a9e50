// Package tui provides the terminal front end for the simulation controller.
//
// The package implements an interactive board using the Bubble Tea framework:
//
//   - [Model]: grid view, status header and population chart
//   - [LiveRenderer]: plain frame printer for headless runs
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	S     - Start
//	X     - Stop
//	Space - Start/Stop
//	N     - Single step (stopped only)
//	+/-   - Faster/Slower
//	R     - Random board
//	G     - Glider
//	P     - Cycle preset patterns
//	C     - Clear
//	T     - Cycle color themes
//	Q     - Quit
//
// # Painting
//
// Press the left mouse button on a cell to invert it, then drag to paint
// every cell the pointer enters with the same value. Releasing the button
// anywhere, or the terminal losing focus, ends the stroke.
package tui
