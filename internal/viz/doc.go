// Package viz renders the wobbly mesh in a terminal.
//
//   - [Canvas]: braille pixel canvas with a world-to-screen [Viewport]
//   - [Live]: Bubble Tea model that drives the effect's frame loop and
//     lets the surface be dragged from the keyboard
//   - [PlotFrames]: asciigraph charts of a recorded run
//
// # Key Bindings
//
//	Arrows - move the pointer (and the surface, while grabbed)
//	Space  - grab / ungrab at the current grab point
//	C      - cycle the grab point between corners and centre
//	R      - toggle between two surface sizes
//	T      - cycle colour themes
//	Q      - quit
package viz
