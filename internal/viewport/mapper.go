package viewport

// ScreenToCanvas maps a window-surface position (device px) to canvas
// coordinates (virtual px). With snap set, the result is floored to the
// virtual pixel containing the position, which is what pointer picking
// wants.
func (g Geometry) ScreenToCanvas(p Point, snap bool) Point {
	c := p.Sub(g.Offset).Div(g.Scale)
	if snap {
		c = c.Floor()
	}
	return c
}

// CanvasToScreen maps canvas coordinates (virtual px) back to the window
// surface (device px). It is the exact inverse of ScreenToCanvas without
// snapping.
func (g Geometry) CanvasToScreen(p Point) Point {
	return p.Mul(g.Scale).Add(g.Offset)
}

// ScreenToWorld maps a window-surface position to world coordinates under
// the given camera offset. The caller passes whichever offset is live,
// aligned or ideal; the mapper takes no position on which. Snapping
// happens in canvas space, before the camera offset is applied.
func (g Geometry) ScreenToWorld(p, camera Point, snap bool) Point {
	return g.ScreenToCanvas(p, snap).Add(camera)
}

// WorldToScreen maps world coordinates to the window surface under the
// given camera offset.
func (g Geometry) WorldToScreen(p, camera Point) Point {
	return g.CanvasToScreen(p.Sub(camera))
}
