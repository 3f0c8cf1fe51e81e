package canvas

import "easel/internal/domain"

const (
	MinScale = 0.1
	MaxScale = 5.0
)

// Viewport is the live zoom/pan state plus the rendered extent in screen
// pixels. The canvas origin is drawn at the viewport center, so the extent is
// part of every coordinate conversion.
type Viewport struct {
	Scale  float64
	Pan    domain.Point
	Width  float64
	Height float64
}

// ScreenToCanvas maps a pointer position in screen pixels to canvas space.
func ScreenToCanvas(screenX, screenY float64, vp Viewport) domain.Point {
	return domain.Point{
		X: (screenX - vp.Width/2 - vp.Pan.X) / vp.Scale,
		Y: (screenY - vp.Height/2 - vp.Pan.Y) / vp.Scale,
	}
}

// CanvasToScreen is the exact inverse of ScreenToCanvas.
func CanvasToScreen(p domain.Point, vp Viewport) (float64, float64) {
	return p.X*vp.Scale + vp.Pan.X + vp.Width/2,
		p.Y*vp.Scale + vp.Pan.Y + vp.Height/2
}

// ClampScale bounds a zoom factor to the supported range.
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// State returns the persistable part of the viewport.
func (vp Viewport) State() domain.Viewport {
	return domain.Viewport{Scale: vp.Scale, Pan: vp.Pan}
}
