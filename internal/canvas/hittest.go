package canvas

import "easel/internal/domain"

// FindClickedItem returns the topmost item whose screen-space bounding box
// contains the pointer, or nil when the click landed on empty canvas.
//
// Connection, line, and arrow items are excluded: their thin geometry would
// make bounding-box hits far too permissive, so the render layer gives them
// their own stroked hit paths with an enlarged invisible hit-width.
func FindClickedItem(items []*domain.Item, screenX, screenY float64, vp Viewport) *domain.Item {
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		switch it.Type {
		case domain.ItemTypeConnection, domain.ItemTypeLine, domain.ItemTypeArrow:
			continue
		}
		left, top := CanvasToScreen(domain.Point{X: it.X, Y: it.Y}, vp)
		box := rect{left, top, it.Width * vp.Scale, it.Height * vp.Scale}
		if box.contains(screenX, screenY) {
			return it
		}
	}
	return nil
}
