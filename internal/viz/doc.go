// Package viz is the terminal front end.
//
// It steps an [engine.Engine] on every bubbletea tick and draws the front
// buffer as coloured braille, two by four pixels per cell after scaling:
//
//   - [Model]: live view with status panel and frame-time graph
//   - [Menu]: preset picker that hands over to a live view
//   - [Canvas]: braille grid that keeps the brightest colour per cell
//
// # Key Bindings
//
//	Arrows - Pan (shift for larger steps)
//	+ -    - Zoom
//	[ ]    - Speed
//	Space  - Pause/Resume
//	T      - Trails
//	R      - Reset view
//	C      - Cycle themes
//	G      - Toggle GIF recording
//	P      - Save PNG
//	?      - Show help overlay
//
// Terminals report key presses but not releases, so a key counts as held
// for a few frames after its last event; autorepeat keeps it held.
package viz
