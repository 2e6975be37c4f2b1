// Package control turns per-frame key state into changes of the view
// parameters: speed, pause, pan, zoom, trails and reset.
//
// Front ends build an [Input] each frame (see [Edge]) and hand it to
// [Controller.Apply] before rendering:
//
//	ctl := control.New(defaults, control.DefaultRepeater())
//	ch := ctl.Apply(control.Edge(prev, held), &params)
//	if ch.Trails {
//		// switch the swapper mode before painting
//	}
package control
