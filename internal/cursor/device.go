package cursor

// Device describes the input hardware as far as the trail cares.
type Device struct {
	// HasTouch is set once the platform reported any touch input.
	HasTouch bool
	// CoarsePointer is set on platforms whose primary pointer is a finger.
	CoarsePointer bool
	// ViewportWidth is the current window width in pixels.
	ViewportWidth int
}

// TouchPrimary reports whether the device should get no cursor effect: a
// touch screen driven by a coarse pointer, or a viewport narrower than
// breakpoint.
func (d Device) TouchPrimary(breakpoint int) bool {
	return (d.HasTouch && d.CoarsePointer) || d.ViewportWidth < breakpoint
}
