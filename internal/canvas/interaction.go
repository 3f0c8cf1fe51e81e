package canvas

import (
	"github.com/google/uuid"

	"easel/internal/domain"
)

// Tool is the active tool mode driving pointer dispatch.
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolPan       Tool = "pan"
	ToolText      Tool = "text"
	ToolBrush     Tool = "brush"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
	ToolLine      Tool = "line"
	ToolArrow     Tool = "arrow"
)

type PointerButton int

const (
	ButtonLeft PointerButton = iota
	ButtonMiddle
	ButtonRight
)

// LinePoint names which editable point of a line/arrow is being dragged.
type LinePoint string

const (
	LinePointStart   LinePoint = "start"
	LinePointEnd     LinePoint = "end"
	LinePointControl LinePoint = "control"
)

// Marquee is the transient drag-selection rectangle in screen space, exposed
// so the render layer can draw it.
type Marquee struct {
	StartX float64 `json:"startX"`
	StartY float64 `json:"startY"`
	EndX   float64 `json:"endX"`
	EndY   float64 `json:"endY"`
}

// interactionState is a tagged union: exactly one variant is active at a
// time, which makes contradictory gestures (dragging while resizing, etc.)
// unrepresentable.
type interactionState interface{ isInteractionState() }

type idleState struct{}
type panningState struct{ lastX, lastY float64 } // screen space running delta
type drawingShapeState struct {
	id     string
	origin domain.Point
}
type draggingState struct {
	start   domain.Point
	origins map[string]geomSnapshot
}
type marqueeState struct{}
type linePointState struct {
	id    string
	point LinePoint
}

func (idleState) isInteractionState()          {}
func (*panningState) isInteractionState()      {}
func (*drawingShapeState) isInteractionState() {}
func (*draggingState) isInteractionState()     {}
func (marqueeState) isInteractionState()       {}
func (*linePointState) isInteractionState()    {}

// geomSnapshot captures an item's geometry at gesture start, so every
// pointer-move computes from the snapshot plus the total delta rather than
// accumulating per-frame deltas.
type geomSnapshot struct {
	x, y, w, h float64
	line       *domain.LineProps
	points     []domain.Point
}

func snapshotGeometry(it *domain.Item) geomSnapshot {
	gs := geomSnapshot{x: it.X, y: it.Y, w: it.Width, h: it.Height}
	if it.Line != nil {
		ln := *it.Line
		if it.Line.Control != nil {
			ctrl := *it.Line.Control
			ln.Control = &ctrl
		}
		gs.line = &ln
	}
	if it.Brush != nil {
		gs.points = append([]domain.Point(nil), it.Brush.Points...)
	}
	return gs
}

// Controller is the pointer-driven state machine. It consumes pointer events
// plus the active tool mode and produces item mutations. All handling is
// synchronous on the caller's event thread; nothing here blocks.
type Controller struct {
	store *Store
	vp    *Viewport

	tool          Tool
	lastShapeTool Tool
	state         interactionState
	pointer       domain.Point // last canvas-space pointer position
	marquee       *Marquee
	cropActive    bool

	// MinItemSize and MinGroupSize are the two-tier resize clamps.
	MinItemSize  float64
	MinGroupSize float64

	// OnOverlayCommit fires when a pointer-down lands outside an active
	// crop/mask overlay's handles; the overlay pre-empts normal dispatch.
	OnOverlayCommit func()
	// OnCursorMove broadcasts the canvas-space pointer for remote cursor
	// rendering. Fire-and-forget: delivery is the collaborator's problem.
	OnCursorMove func(domain.Point)
	// OnChange fires after any item or viewport mutation.
	OnChange func()
}

func NewController(store *Store, vp *Viewport) *Controller {
	return &Controller{
		store:        store,
		vp:           vp,
		tool:         ToolSelect,
		state:        idleState{},
		MinItemSize:  20,
		MinGroupSize: 50,
	}
}

func (c *Controller) Store() *Store           { return c.store }
func (c *Controller) Tool() Tool              { return c.tool }
func (c *Controller) Pointer() domain.Point   { return c.pointer }
func (c *Controller) Marquee() *Marquee       { return c.marquee }
func (c *Controller) CropOverlayActive() bool { return c.cropActive }

// SetTool switches the tool mode, remembering the last shape tool so digit
// shortcuts can toggle back to it.
func (c *Controller) SetTool(t Tool) {
	if isShapeTool(t) {
		c.lastShapeTool = t
	}
	c.tool = t
}

// ToggleTool is the digit-shortcut behavior: pressing the digit of the
// already-active tool returns to select, and toggling select again restores
// the previously active drawing tool.
func (c *Controller) ToggleTool(t Tool) {
	switch {
	case t == c.tool && t == ToolSelect && c.lastShapeTool != "":
		c.SetTool(c.lastShapeTool)
	case t == c.tool:
		c.SetTool(ToolSelect)
	default:
		c.SetTool(t)
	}
}

// SetCropOverlay marks a crop/mask overlay as active. While active, the next
// pointer-down outside its handles commits the overlay instead of dispatching.
func (c *Controller) SetCropOverlay(active bool) { c.cropActive = active }

// StateName reports the active state variant, read-only, for the render layer.
func (c *Controller) StateName() string {
	switch c.state.(type) {
	case idleState:
		return "idle"
	case *panningState:
		return "panning"
	case *drawingShapeState:
		return "drawingShape"
	case *draggingState:
		return "draggingItems"
	case *resizingSingleState:
		return "resizingSingle"
	case *resizingMultiState:
		return "resizingMulti"
	case marqueeState:
		return "marqueeSelecting"
	case *linePointState:
		return "draggingLinePoint"
	}
	return "idle"
}

func isShapeTool(t Tool) bool {
	switch t {
	case ToolText, ToolBrush, ToolRectangle, ToolCircle, ToolLine, ToolArrow:
		return true
	}
	return false
}

func (c *Controller) notify() {
	if c.OnChange != nil {
		c.OnChange()
	}
}

// ── pointer-down ─────────────────────────────────────────────

func (c *Controller) PointerDown(screenX, screenY float64, button PointerButton) {
	p := ScreenToCanvas(screenX, screenY, *c.vp)
	c.pointer = p

	if c.cropActive {
		c.cropActive = false
		if c.OnOverlayCommit != nil {
			c.OnOverlayCommit()
		}
		return
	}

	if button == ButtonMiddle || c.tool == ToolPan {
		c.state = &panningState{lastX: screenX, lastY: screenY}
		return
	}

	switch c.tool {
	case ToolSelect:
		if hit := FindClickedItem(c.store.Items(), screenX, screenY, *c.vp); hit != nil {
			if !c.store.IsSelected(hit.ID) {
				c.store.Select(hit.ID, true)
			}
			origins := make(map[string]geomSnapshot)
			for _, it := range c.store.SelectedItems() {
				origins[it.ID] = snapshotGeometry(it)
			}
			c.state = &draggingState{start: p, origins: origins}
		} else {
			c.store.ClearSelection()
			c.marquee = &Marquee{StartX: screenX, StartY: screenY, EndX: screenX, EndY: screenY}
			c.state = marqueeState{}
		}
		c.notify()

	case ToolText, ToolBrush, ToolRectangle, ToolCircle, ToolLine, ToolArrow:
		// Shape tools always draw on empty space; an item under the pointer
		// is not special-cased. The new item starts at zero size and grows
		// through the drag path.
		it := newItemForTool(c.tool, p)
		added := c.store.Add(it)
		c.store.Select(added.ID, true)
		c.state = &drawingShapeState{id: added.ID, origin: p}
		c.notify()

	default:
		// Unknown tool mode: silent skip, never a thrown error mid-gesture.
	}
}

func newItemForTool(t Tool, p domain.Point) domain.Item {
	it := domain.Item{ID: uuid.New().String(), X: p.X, Y: p.Y}
	switch t {
	case ToolText:
		it.Type = domain.ItemTypeText
		it.Text = &domain.TextProps{FontSize: 16, FontFamily: "sans-serif", Color: "#1e1e1e"}
	case ToolBrush:
		it.Type = domain.ItemTypeBrush
		it.Brush = &domain.BrushProps{Points: []domain.Point{p}, Color: "#1e1e1e", StrokeWidth: 3}
	case ToolRectangle:
		it.Type = domain.ItemTypeRectangle
		it.Shape = &domain.ShapeProps{Fill: "transparent", Stroke: "#1e1e1e", StrokeWidth: 2}
	case ToolCircle:
		it.Type = domain.ItemTypeCircle
		it.Shape = &domain.ShapeProps{Fill: "transparent", Stroke: "#1e1e1e", StrokeWidth: 2}
	case ToolLine:
		it.Type = domain.ItemTypeLine
		it.Line = &domain.LineProps{Start: p, End: p, Stroke: "#1e1e1e", StrokeWidth: 2}
	case ToolArrow:
		it.Type = domain.ItemTypeArrow
		it.Line = &domain.LineProps{Start: p, End: p, Stroke: "#1e1e1e", StrokeWidth: 2}
	}
	return it
}

// BeginLinePointDrag starts editing a line/arrow's start, end, or control
// point. The render layer wires this to the narrow hit regions those items
// expose (they are excluded from rectangular hit-testing).
func (c *Controller) BeginLinePointDrag(itemID string, point LinePoint) {
	it := c.store.Get(itemID)
	if it == nil || it.Line == nil {
		return
	}
	c.store.Select(itemID, true)
	c.state = &linePointState{id: itemID, point: point}
}

// ── pointer-move ─────────────────────────────────────────────

func (c *Controller) PointerMove(screenX, screenY float64) {
	p := ScreenToCanvas(screenX, screenY, *c.vp)
	c.pointer = p
	if c.OnCursorMove != nil {
		c.OnCursorMove(p)
	}

	switch st := c.state.(type) {
	case *panningState:
		c.vp.Pan.X += screenX - st.lastX
		c.vp.Pan.Y += screenY - st.lastY
		st.lastX, st.lastY = screenX, screenY
		c.notify()
	case *drawingShapeState:
		c.growShape(st, p)
		c.notify()
	case *draggingState:
		c.dragTo(st, p)
		c.notify()
	case *resizingSingleState:
		c.resizeSingleTo(st, p)
		c.notify()
	case *resizingMultiState:
		c.resizeMultiTo(st, p)
		c.notify()
	case marqueeState:
		c.updateMarquee(screenX, screenY)
		c.notify()
	case *linePointState:
		c.dragLinePoint(st, p)
		c.notify()
	}
}

// growShape mutates the just-created item's geometry from the signed delta:
// the pointer-down position is the anchor corner and the envelope swap in
// normalizedRect handles drags in any direction.
func (c *Controller) growShape(st *drawingShapeState, p domain.Point) {
	it := c.store.Get(st.id)
	if it == nil {
		c.state = idleState{}
		return
	}
	switch it.Type {
	case domain.ItemTypeBrush:
		it.Brush.Points = append(it.Brush.Points, p)
		syncBrushBounds(it)
	case domain.ItemTypeLine, domain.ItemTypeArrow:
		it.Line.End = p
		syncLineBounds(it)
	default:
		r := normalizedRect(st.origin, p)
		it.X, it.Y, it.Width, it.Height = r.x, r.y, r.w, r.h
	}
}

func (c *Controller) dragTo(st *draggingState, p domain.Point) {
	dx := p.X - st.start.X
	dy := p.Y - st.start.Y
	moved := make(map[string]bool, len(st.origins))
	for id, orig := range st.origins {
		it := c.store.Get(id)
		if it == nil {
			continue // deleted mid-gesture by a remote participant
		}
		it.X = orig.x + dx
		it.Y = orig.y + dy
		if it.Line != nil && orig.line != nil {
			it.Line.Start = domain.Point{X: orig.line.Start.X + dx, Y: orig.line.Start.Y + dy}
			it.Line.End = domain.Point{X: orig.line.End.X + dx, Y: orig.line.End.Y + dy}
			if orig.line.Control != nil {
				it.Line.Control = &domain.Point{X: orig.line.Control.X + dx, Y: orig.line.Control.Y + dy}
			}
		}
		if it.Brush != nil && orig.points != nil {
			for i := range orig.points {
				it.Brush.Points[i] = domain.Point{X: orig.points[i].X + dx, Y: orig.points[i].Y + dy}
			}
		}
		moved[id] = true
	}
	UpdateConnectionsRealtime(c.store, moved)
}

func (c *Controller) updateMarquee(screenX, screenY float64) {
	if c.marquee == nil {
		return
	}
	c.marquee.EndX, c.marquee.EndY = screenX, screenY
	mr := normalizedRect(
		domain.Point{X: c.marquee.StartX, Y: c.marquee.StartY},
		domain.Point{X: c.marquee.EndX, Y: c.marquee.EndY},
	)
	var ids []string
	for _, it := range c.store.Items() {
		if it.Type == domain.ItemTypeConnection {
			continue
		}
		left, top := CanvasToScreen(domain.Point{X: it.X, Y: it.Y}, *c.vp)
		box := rect{left, top, it.Width * c.vp.Scale, it.Height * c.vp.Scale}
		if box.intersects(mr) {
			ids = append(ids, it.ID)
		}
	}
	c.store.SetSelection(ids)
}

func (c *Controller) dragLinePoint(st *linePointState, p domain.Point) {
	it := c.store.Get(st.id)
	if it == nil || it.Line == nil {
		c.state = idleState{}
		return
	}
	switch st.point {
	case LinePointStart:
		it.Line.Start = p
	case LinePointEnd:
		it.Line.End = p
	case LinePointControl:
		// Reflect the pointer across the segment midpoint so the visible
		// quadratic curve passes near the pointer: control = 2p − midpoint.
		mid := domain.Point{
			X: (it.Line.Start.X + it.Line.End.X) / 2,
			Y: (it.Line.Start.Y + it.Line.End.Y) / 2,
		}
		it.Line.Control = &domain.Point{X: 2*p.X - mid.X, Y: 2*p.Y - mid.Y}
	}
	syncLineBounds(it)
}

// ── pointer-up ───────────────────────────────────────────────

// PointerUp commits the gesture. Drags and resizes get a final connector
// re-route so persisted endpoints match the final geometry rather than an
// intermediate frame, then all transient state returns to idle.
func (c *Controller) PointerUp() {
	switch st := c.state.(type) {
	case *draggingState:
		moved := make(map[string]bool, len(st.origins))
		for id := range st.origins {
			moved[id] = true
		}
		UpdateConnectionsRealtime(c.store, moved)
	case *resizingSingleState:
		UpdateConnectionsRealtime(c.store, map[string]bool{st.id: true})
	case *resizingMultiState:
		moved := make(map[string]bool, len(st.entries))
		for id := range st.entries {
			moved[id] = true
		}
		UpdateConnectionsRealtime(c.store, moved)
	}
	c.marquee = nil
	c.state = idleState{}
	c.notify()
}
