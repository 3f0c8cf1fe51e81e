package canvas

import (
	"sort"

	"easel/internal/domain"
)

// Store is the ordered collection of canvas items plus the selection set.
// Items live in one indexed collection; connections refer to them by id only,
// so deleting an item can never leave a dangling pointer — only a stale id
// that the cascade rule cleans up.
//
// The store carries no lock of its own: the owning layer serializes access
// (the app holds one state mutex across its bindings and every background
// producer that reaches the store). It also never assumes exclusive
// ownership of ids — a remote participant may
// create or delete the same ids, which is why Add tolerates foreign items and
// Get simply misses.
type Store struct {
	order    []string
	items    map[string]*domain.Item
	selected map[string]bool
	selOrder []string
}

func NewStore() *Store {
	return &Store{
		items:    make(map[string]*domain.Item),
		selected: make(map[string]bool),
	}
}

// Add inserts an item and assigns it the next paint position (max zIndex+1).
// An item whose id is already present replaces the existing one in place,
// which is how remote/merged updates land.
func (s *Store) Add(it domain.Item) *domain.Item {
	if existing, ok := s.items[it.ID]; ok {
		*existing = it
		return existing
	}
	it.ZIndex = s.MaxZIndex() + 1
	s.order = append(s.order, it.ID)
	stored := it
	s.items[it.ID] = &stored
	return s.items[it.ID]
}

// Get returns the item with the given id, or nil.
func (s *Store) Get(id string) *domain.Item {
	return s.items[id]
}

// Len returns the number of items.
func (s *Store) Len() int { return len(s.order) }

// Items returns the items sorted by paint order (lowest zIndex first).
// zIndex values need not be contiguous, only relatively ordered.
func (s *Store) Items() []*domain.Item {
	out := make([]*domain.Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// MaxZIndex returns the highest zIndex in the store, 0 when empty.
func (s *Store) MaxZIndex() int {
	max := 0
	for _, it := range s.items {
		if it.ZIndex > max {
			max = it.ZIndex
		}
	}
	return max
}

// Delete removes an item, cascades to any connection whose source or target
// matches it, and prunes the selection.
func (s *Store) Delete(id string) {
	it, ok := s.items[id]
	if !ok {
		return
	}
	s.remove(id)
	if it.Type != domain.ItemTypeConnection {
		var cascade []string
		for _, other := range s.items {
			if other.Connection != nil &&
				(other.Connection.SourceItemID == id || other.Connection.TargetItemID == id) {
				cascade = append(cascade, other.ID)
			}
		}
		for _, cid := range cascade {
			s.remove(cid)
		}
	}
}

// DeleteMany removes several items with the same cascade rules.
func (s *Store) DeleteMany(ids []string) {
	for _, id := range ids {
		s.Delete(id)
	}
}

func (s *Store) remove(id string) {
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.selected[id] {
		delete(s.selected, id)
		for i, sid := range s.selOrder {
			if sid == id {
				s.selOrder = append(s.selOrder[:i], s.selOrder[i+1:]...)
				break
			}
		}
	}
}

// ── selection ────────────────────────────────────────────────

// Select adds an item to the selection. With replace, the previous selection
// is cleared first.
func (s *Store) Select(id string, replace bool) {
	if replace {
		s.ClearSelection()
	}
	if !s.selected[id] {
		s.selected[id] = true
		s.selOrder = append(s.selOrder, id)
	}
}

// SetSelection replaces the selection with the given ids, keeping their order.
func (s *Store) SetSelection(ids []string) {
	s.ClearSelection()
	for _, id := range ids {
		s.Select(id, false)
	}
}

func (s *Store) ClearSelection() {
	s.selected = make(map[string]bool)
	s.selOrder = nil
}

func (s *Store) IsSelected(id string) bool { return s.selected[id] }

// SelectedIDs returns the selection in selection order.
func (s *Store) SelectedIDs() []string {
	return append([]string(nil), s.selOrder...)
}

// SelectedItems returns the selected items that still exist, in selection
// order. Selection entries for vanished items are skipped, not errors.
func (s *Store) SelectedItems() []*domain.Item {
	out := make([]*domain.Item, 0, len(s.selOrder))
	for _, id := range s.selOrder {
		if it, ok := s.items[id]; ok {
			out = append(out, it)
		}
	}
	return out
}

// ── persistence boundary ─────────────────────────────────────

// Snapshot returns a deep copy of all items in paint order, safe to hand to
// the persistence layer while gestures keep mutating the live items.
func (s *Store) Snapshot() []domain.Item {
	items := s.Items()
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		out = append(out, it.Clone())
	}
	return out
}

// Replace swaps the entire item list, preserving the incoming zIndex values.
// Used when loading a project or applying a merged remote document.
func (s *Store) Replace(items []domain.Item) {
	s.order = s.order[:0]
	s.items = make(map[string]*domain.Item, len(items))
	s.ClearSelection()
	for _, it := range items {
		stored := it.Clone()
		s.order = append(s.order, it.ID)
		s.items[it.ID] = &stored
	}
}
