package canvas

import (
	"math"

	"easel/internal/domain"
)

// rect is an axis-aligned bounding box in canvas space.
type rect struct {
	x, y, w, h float64
}

func (a rect) intersects(b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

func (a rect) contains(px, py float64) bool {
	return px >= a.x && px <= a.x+a.w && py >= a.y && py <= a.y+a.h
}

func itemRect(it *domain.Item) rect {
	return rect{it.X, it.Y, it.Width, it.Height}
}

// normalizedRect builds the envelope of two corners, so a drag that crosses
// its own anchor swaps corners instead of producing negative size.
func normalizedRect(a, b domain.Point) rect {
	return rect{
		x: math.Min(a.X, b.X),
		y: math.Min(a.Y, b.Y),
		w: math.Abs(b.X - a.X),
		h: math.Abs(b.Y - a.Y),
	}
}

// envelope returns the min/max bounding box of a point set. An empty set
// yields a zero rect.
func envelope(points []domain.Point) rect {
	if len(points) == 0 {
		return rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return rect{minX, minY, maxX - minX, maxY - minY}
}

// syncBrushBounds recomputes a brush item's bounding box from its points.
func syncBrushBounds(it *domain.Item) {
	if it.Brush == nil {
		return
	}
	r := envelope(it.Brush.Points)
	it.X, it.Y, it.Width, it.Height = r.x, r.y, r.w, r.h
}

// syncLineBounds recomputes a line/arrow item's bounding box as the envelope
// of its endpoints and control point.
func syncLineBounds(it *domain.Item) {
	if it.Line == nil {
		return
	}
	pts := []domain.Point{it.Line.Start, it.Line.End}
	if it.Line.Control != nil {
		pts = append(pts, *it.Line.Control)
	}
	r := envelope(pts)
	it.X, it.Y, it.Width, it.Height = r.x, r.y, r.w, r.h
}
