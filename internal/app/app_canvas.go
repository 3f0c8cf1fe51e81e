package app

import (
	"easel/internal/canvas"
	"easel/internal/domain"
)

// ============================================================
// Canvas interaction bindings
// ============================================================

// ViewportInfo is the viewport state handed to the frontend.
type ViewportInfo struct {
	Scale  float64      `json:"scale"`
	Pan    domain.Point `json:"pan"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
}

// SetViewportSize records the rendered viewport extent in screen pixels.
// Called on mount and on every window resize.
func (a *App) SetViewportSize(width, height float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.vp.Width = width
	a.vp.Height = height
}

func (a *App) GetViewport() ViewportInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ViewportInfo{Scale: a.vp.Scale, Pan: a.vp.Pan, Width: a.vp.Width, Height: a.vp.Height}
}

// SetZoom sets the zoom factor, clamped to the supported range.
func (a *App) SetZoom(scale float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.vp.Scale = canvas.ClampScale(scale)
	a.onCanvasChanged()
}

// SetPan sets the pan offset directly (trackpad scrolling, not a gesture).
func (a *App) SetPan(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.vp.Pan = domain.Point{X: x, Y: y}
	a.onCanvasChanged()
}

// ── pointer events ──────────────────────────────────────────

func (a *App) PointerDown(x, y float64, button int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.PointerDown(x, y, canvas.PointerButton(button))
}

func (a *App) PointerMove(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.PointerMove(x, y)
}

func (a *App) PointerUp() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.PointerUp()
	a.broadcastSelection()
}

// BeginResize starts a single-item resize from a corner handle.
func (a *App) BeginResize(itemID, handle string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.BeginResize(itemID, canvas.Handle(handle))
}

// BeginGroupResize starts a multi-select resize from a corner handle of the
// selection's bounding box.
func (a *App) BeginGroupResize(handle string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.BeginGroupResize(canvas.Handle(handle))
}

// BeginLinePointDrag starts editing a line/arrow endpoint or control point.
// Wired by the render layer's narrow line hit regions.
func (a *App) BeginLinePointDrag(itemID, point string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.BeginLinePointDrag(itemID, canvas.LinePoint(point))
}

// ── tools and overlays ──────────────────────────────────────

func (a *App) SetTool(tool string) {
	a.mu.Lock()
	a.controller.SetTool(canvas.Tool(tool))
	a.mu.Unlock()
	a.Emit(a.ctx, "canvas:tool-changed", tool)
}

func (a *App) GetTool() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return string(a.controller.Tool())
}

// SetCropOverlay marks a crop/mask overlay as active; the next pointer-down
// outside its handles commits it instead of dispatching normally.
func (a *App) SetCropOverlay(active bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.SetCropOverlay(active)
}

// ── keyboard ────────────────────────────────────────────────

// HandleKey dispatches a keyboard shortcut. Returns whether it was consumed.
func (a *App) HandleKey(key string, mod, editingText, inputFocused, modalOpen bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	handled := a.dispatcher.HandleKey(key, mod, canvas.KeyContext{
		EditingText:  editingText,
		InputFocused: inputFocused,
		ModalOpen:    modalOpen,
	})
	if handled {
		a.broadcastSelection()
	}
	return handled
}

// ── read-only derived state for rendering ───────────────────

func (a *App) GetItems() []domain.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Snapshot()
}

func (a *App) GetSelection() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.SelectedIDs()
}

func (a *App) GetMarquee() *canvas.Marquee {
	a.mu.Lock()
	defer a.mu.Unlock()
	m := a.controller.Marquee()
	if m == nil {
		return nil
	}
	cp := *m
	return &cp
}

func (a *App) GetInteractionState() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.controller.StateName()
}

// ── direct item edits from the frontend ─────────────────────

// UpdateTextContent commits an in-place text edit.
func (a *App) UpdateTextContent(itemID, content string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	it := a.store.Get(itemID)
	if it == nil || it.Text == nil {
		return
	}
	it.Text.Content = content
	a.onCanvasChanged()
}

// UpdateImageAdjustments commits crop/filter edits from the image overlay.
func (a *App) UpdateImageAdjustments(itemID string, props domain.ImageProps) {
	a.mu.Lock()
	defer a.mu.Unlock()
	it := a.store.Get(itemID)
	if it == nil || it.Image == nil {
		return
	}
	props.Src = it.Image.Src
	props.Prompt = it.Image.Prompt
	*it.Image = props
	a.onCanvasChanged()
}

// DeleteItems removes items by id, cascading to attached connections.
func (a *App) DeleteItems(ids []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.store.DeleteMany(ids)
	a.onCanvasChanged()
	a.broadcastSelection()
}
