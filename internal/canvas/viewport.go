package canvas

const (
	MinScale = 0.25
	MaxScale = 2.0
)

// Point is a coordinate pair, in either screen or canvas space depending on
// context.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport tracks the pan offset and zoom scale of the canvas view, and the
// single selected block. It is per-session state and is never persisted.
type Viewport struct {
	Scale    float64
	OffsetX  float64
	OffsetY  float64
	Panning  bool
	Selected string // block ID, "" when nothing is selected
}

// NewViewport returns a viewport at scale 1 with no offset.
func NewViewport() *Viewport {
	return &Viewport{Scale: 1}
}

// Pan shifts the offset by the given screen-space delta. No clamping.
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// Zoom multiplies the scale by factor, clamped to [MinScale, MaxScale].
// Zoom pivots at the canvas origin; the anchor point is not used for
// re-centering.
func (v *Viewport) Zoom(factor float64) {
	v.Scale *= factor
	if v.Scale < MinScale {
		v.Scale = MinScale
	}
	if v.Scale > MaxScale {
		v.Scale = MaxScale
	}
}

// ToCanvasSpace converts a screen-space point into canvas coordinates.
func (v *Viewport) ToCanvasSpace(p Point) Point {
	return Point{
		X: (p.X - v.OffsetX) / v.Scale,
		Y: (p.Y - v.OffsetY) / v.Scale,
	}
}

// CenterRect returns the grid-snapped top-left for a new block of size
// blockW×blockH placed at the visual center of a viewW×viewH view.
func (v *Viewport) CenterRect(viewW, viewH, blockW, blockH float64) Rect {
	center := v.ToCanvasSpace(Point{X: viewW / 2, Y: viewH / 2})
	return Rect{
		X:      Snap(center.X - blockW/2),
		Y:      Snap(center.Y - blockH/2),
		Width:  blockW,
		Height: blockH,
	}
}

// Reset restores scale 1 and zero offset.
func (v *Viewport) Reset() {
	v.Scale = 1
	v.OffsetX = 0
	v.OffsetY = 0
}
