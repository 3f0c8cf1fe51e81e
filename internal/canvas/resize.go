package canvas

import "easel/internal/domain"

// Handle names a corner resize handle. The opposite corner is the anchor and
// stays fixed during the resize.
type Handle string

const (
	HandleNW Handle = "nw"
	HandleNE Handle = "ne"
	HandleSW Handle = "sw"
	HandleSE Handle = "se"
)

type resizingSingleState struct {
	id         string
	anchor     domain.Point
	orig       geomSnapshot
	lockAspect bool
}

type resizingMultiState struct {
	anchor  domain.Point
	origBox rect
	entries map[string]multiResizeEntry
}

// multiResizeEntry stores an item's fractional offset within the original
// group box, so remapping against the new box preserves relative layout
// exactly regardless of item type.
type multiResizeEntry struct {
	relX, relY, relW, relH float64
	orig                   geomSnapshot
}

func (*resizingSingleState) isInteractionState() {}
func (*resizingMultiState) isInteractionState()  {}

// anchorCorner returns the corner of box opposite the dragged handle.
func anchorCorner(box rect, h Handle) domain.Point {
	switch h {
	case HandleNW:
		return domain.Point{X: box.x + box.w, Y: box.y + box.h}
	case HandleNE:
		return domain.Point{X: box.x, Y: box.y + box.h}
	case HandleSW:
		return domain.Point{X: box.x + box.w, Y: box.y}
	default: // HandleSE
		return domain.Point{X: box.x, Y: box.y}
	}
}

// anchoredBox builds the resized box between the fixed anchor and the
// pointer. aspect > 0 locks height to width/aspect. A drag across the anchor
// swaps corners via the sign checks; size never goes negative, only the
// anchor side flips. min clamps both axes.
func anchoredBox(anchor, p domain.Point, aspect, min float64) rect {
	w := p.X - anchor.X
	h := p.Y - anchor.Y
	flipX := w < 0
	flipY := h < 0
	if flipX {
		w = -w
	}
	if flipY {
		h = -h
	}
	if aspect > 0 {
		h = w / aspect
	}
	if w < min {
		w = min
		if aspect > 0 {
			h = w / aspect
		}
	}
	if h < min {
		h = min
		if aspect > 0 {
			w = h * aspect
		}
	}
	x, y := anchor.X, anchor.Y
	if flipX {
		x -= w
	}
	if flipY {
		y -= h
	}
	return rect{x, y, w, h}
}

// BeginResize starts a single-item resize from the given corner handle.
// Line and arrow items resize with independent axes since they are not area
// shapes; every other type locks the aspect ratio it had before the resize.
func (c *Controller) BeginResize(itemID string, handle Handle) {
	it := c.store.Get(itemID)
	if it == nil {
		return
	}
	c.store.Select(itemID, true)
	lock := it.Type != domain.ItemTypeLine && it.Type != domain.ItemTypeArrow
	c.state = &resizingSingleState{
		id:         itemID,
		anchor:     anchorCorner(itemRect(it), handle),
		orig:       snapshotGeometry(it),
		lockAspect: lock,
	}
}

// BeginGroupResize starts a multi-select resize of the current selection
// from the given corner handle of the group bounding box.
func (c *Controller) BeginGroupResize(handle Handle) {
	items := c.store.SelectedItems()
	if len(items) == 0 {
		return
	}
	var corners []domain.Point
	for _, it := range items {
		corners = append(corners,
			domain.Point{X: it.X, Y: it.Y},
			domain.Point{X: it.X + it.Width, Y: it.Y + it.Height})
	}
	box := envelope(corners)
	entries := make(map[string]multiResizeEntry, len(items))
	for _, it := range items {
		e := multiResizeEntry{orig: snapshotGeometry(it)}
		if box.w > 0 {
			e.relX = (it.X - box.x) / box.w
			e.relW = it.Width / box.w
		}
		if box.h > 0 {
			e.relY = (it.Y - box.y) / box.h
			e.relH = it.Height / box.h
		}
		entries[it.ID] = e
	}
	c.state = &resizingMultiState{
		anchor:  anchorCorner(box, handle),
		origBox: box,
		entries: entries,
	}
}

func (c *Controller) resizeSingleTo(st *resizingSingleState, p domain.Point) {
	it := c.store.Get(st.id)
	if it == nil {
		c.state = idleState{}
		return
	}
	aspect := 0.0
	if st.lockAspect && st.orig.w > 0 && st.orig.h > 0 {
		aspect = st.orig.w / st.orig.h
	}
	box := anchoredBox(st.anchor, p, aspect, c.MinItemSize)
	it.X, it.Y, it.Width, it.Height = box.x, box.y, box.w, box.h
	remapPoints(it, st.orig, rect{st.orig.x, st.orig.y, st.orig.w, st.orig.h}, box)
	UpdateConnectionsRealtime(c.store, map[string]bool{st.id: true})
}

func (c *Controller) resizeMultiTo(st *resizingMultiState, p domain.Point) {
	aspect := 0.0
	if st.origBox.w > 0 && st.origBox.h > 0 {
		aspect = st.origBox.w / st.origBox.h
	}
	box := anchoredBox(st.anchor, p, aspect, c.MinGroupSize)
	moved := make(map[string]bool, len(st.entries))
	for id, e := range st.entries {
		it := c.store.Get(id)
		if it == nil {
			continue
		}
		// Remap against the new box using the stored fractional offsets, so
		// relative layout is preserved exactly regardless of item type.
		it.X = box.x + e.relX*box.w
		it.Y = box.y + e.relY*box.h
		it.Width = e.relW * box.w
		it.Height = e.relH * box.h
		if it.Width < c.MinItemSize {
			it.Width = c.MinItemSize
		}
		if it.Height < c.MinItemSize {
			it.Height = c.MinItemSize
		}
		remapPoints(it, e.orig, st.origBox, box)
		moved[id] = true
	}
	UpdateConnectionsRealtime(c.store, moved)
}

// remapPoints rescales an item's internal geometry (brush points, line
// endpoints and control point) by the per-axis factors between the original
// reference box and the new one, so that geometry matches the resized box
// rather than just its corners.
func remapPoints(it *domain.Item, orig geomSnapshot, from, to rect) {
	sx, sy := 1.0, 1.0
	if from.w > 0 {
		sx = to.w / from.w
	}
	if from.h > 0 {
		sy = to.h / from.h
	}
	map1 := func(p domain.Point) domain.Point {
		return domain.Point{
			X: to.x + (p.X-from.x)*sx,
			Y: to.y + (p.Y-from.y)*sy,
		}
	}
	if it.Brush != nil && orig.points != nil {
		for i := range orig.points {
			it.Brush.Points[i] = map1(orig.points[i])
		}
	}
	if it.Line != nil && orig.line != nil {
		it.Line.Start = map1(orig.line.Start)
		it.Line.End = map1(orig.line.End)
		if orig.line.Control != nil {
			ctrl := map1(*orig.line.Control)
			it.Line.Control = &ctrl
		}
	}
}
