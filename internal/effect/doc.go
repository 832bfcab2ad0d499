// Package effect implements the wobbly deformation effect.
//
// A [Wobbly] is attached to one [host.Surface]. It owns a
// [physics.Model] sized to the surface's plain paint box and animates it
// on a [clock.Scheduler] while the user drags the surface around:
//
//	w, _ := effect.New(loop, loop.Source())
//	actor.AddEffect(w)
//	w.Grab(px, py)     // pointer down, screen coordinates
//	w.MoveBy(dx, dy)   // surface followed the pointer
//	w.Ungrab()         // released now, or once the mesh settles
//
// While the mesh is settling the effect is enabled and every frame
// invalidates the surface. Painting goes through [Wobbly.DeformVertex]
// and [Wobbly.ExtendPaintVolume]. Everything runs on the goroutine that
// pumps the scheduler.
package effect
