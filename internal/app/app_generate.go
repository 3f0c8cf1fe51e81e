package app

import (
	"fmt"

	"github.com/google/uuid"

	"easel/internal/canvas"
	"easel/internal/domain"
)

// ============================================================
// Generation collaborator surface
// ============================================================

// The generation/editing collaborator produces image items asynchronously.
// The core's responsibility is the placeholder geometry up front and the
// provenance connections once the result lands.

// BeginGeneration allocates a placeholder image item for an in-flight
// generation and remembers which selected images are its sources. Returns
// the placeholder's item id.
func (a *App) BeginGeneration(prompt string, width, height float64) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var sources []string
	for _, it := range a.store.SelectedItems() {
		if it.Type == domain.ItemTypeImage {
			sources = append(sources, it.ID)
		}
	}

	x, y := a.layout.NextPosition(a.store.Items(), width, height)
	placeholder := domain.Item{
		ID:     uuid.New().String(),
		Type:   domain.ItemTypeImage,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Image:  &domain.ImageProps{Prompt: prompt},
	}
	added := a.store.Add(placeholder)
	a.pendingGen[added.ID] = sources
	a.onCanvasChanged()
	return added.ID
}

// CompleteGeneration fills in the finished image and creates the provenance
// connection curves from its source images.
func (a *App) CompleteGeneration(itemID, src string, width, height float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	it := a.store.Get(itemID)
	if it == nil || it.Image == nil {
		delete(a.pendingGen, itemID)
		return fmt.Errorf("generation target %s no longer exists", itemID)
	}
	it.Image.Src = src
	if width > 0 && height > 0 {
		it.Width, it.Height = width, height
	}

	sources := a.pendingGen[itemID]
	delete(a.pendingGen, itemID)
	if _, err := a.connectItems(sources, itemID); err != nil {
		return err
	}
	a.onCanvasChanged()
	return nil
}

// CancelGeneration removes the placeholder of an abandoned generation.
func (a *App) CancelGeneration(itemID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.pendingGen, itemID)
	a.store.Delete(itemID)
	a.onCanvasChanged()
}

// ── CanvasAPI (MCP tool surface) ─────────────────────────────

// Items returns a snapshot of the current item list in paint order.
func (a *App) Items() []domain.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Snapshot()
}

// SelectedIDs returns the current selection ids.
func (a *App) SelectedIDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.SelectedIDs()
}

// PlaceGeneratedImage creates a finished image item at an auto-placed free
// position with provenance connections from the given sources.
func (a *App) PlaceGeneratedImage(src, prompt string, width, height float64, sourceIDs []string) (domain.Item, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	x, y := a.layout.NextPosition(a.store.Items(), width, height)
	item := domain.Item{
		ID:     uuid.New().String(),
		Type:   domain.ItemTypeImage,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Image:  &domain.ImageProps{Src: src, Prompt: prompt},
	}
	added := a.store.Add(item)
	if _, err := a.connectItems(sourceIDs, added.ID); err != nil {
		return domain.Item{}, err
	}
	a.onCanvasChanged()
	return added.Clone(), nil
}

// ConnectItems creates provenance connection items from each existing source
// to the target. All curves into one target fan in on a unified endpoint.
// Source ids that no longer exist are skipped.
func (a *App) ConnectItems(sourceIDs []string, targetID string) ([]domain.Item, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connectItems(sourceIDs, targetID)
}

// connectItems is ConnectItems without the lock. Caller holds a.mu.
func (a *App) connectItems(sourceIDs []string, targetID string) ([]domain.Item, error) {
	target := a.store.Get(targetID)
	if target == nil {
		return nil, fmt.Errorf("connect: target %s not found", targetID)
	}
	var created []string
	for _, sid := range sourceIDs {
		if sid == targetID || a.store.Get(sid) == nil {
			continue
		}
		conn := domain.Item{
			ID:   uuid.New().String(),
			Type: domain.ItemTypeConnection,
			Connection: &domain.ConnectionProps{
				SourceItemID: sid,
				TargetItemID: targetID,
			},
		}
		added := a.store.Add(conn)
		created = append(created, added.ID)
	}
	if len(created) == 0 {
		return nil, nil
	}
	// Routing the target re-anchors every curve converging on it, so the new
	// curves and their siblings share the unified endpoint.
	canvas.UpdateConnectionsRealtime(a.store, map[string]bool{targetID: true})
	a.onCanvasChanged()

	out := make([]domain.Item, 0, len(created))
	for _, id := range created {
		if it := a.store.Get(id); it != nil {
			out = append(out, it.Clone())
		}
	}
	return out, nil
}
