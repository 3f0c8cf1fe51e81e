package canvas

import (
	"testing"

	"easel/internal/domain"
)

func newRect(id string, x, y, w, h float64) domain.Item {
	return domain.Item{
		ID: id, Type: domain.ItemTypeRectangle,
		X: x, Y: y, Width: w, Height: h,
		Shape: &domain.ShapeProps{Stroke: "#1e1e1e", StrokeWidth: 2},
	}
}

func newConn(id, source, target string) domain.Item {
	return domain.Item{
		ID: id, Type: domain.ItemTypeConnection,
		Connection: &domain.ConnectionProps{SourceItemID: source, TargetItemID: target},
	}
}

func TestStore_AddAssignsPaintOrder(t *testing.T) {
	s := NewStore()
	a := s.Add(newRect("a", 0, 0, 10, 10))
	b := s.Add(newRect("b", 0, 0, 10, 10))
	if b.ZIndex <= a.ZIndex {
		t.Errorf("later insert should paint on top: a=%d b=%d", a.ZIndex, b.ZIndex)
	}
	items := s.Items()
	if items[len(items)-1].ID != "b" {
		t.Errorf("expected b last in paint order, got %s", items[len(items)-1].ID)
	}
}

func TestStore_DeleteCascadesConnections(t *testing.T) {
	s := NewStore()
	s.Add(newRect("src", 0, 0, 10, 10))
	s.Add(newRect("dst", 100, 0, 10, 10))
	s.Add(newConn("c1", "src", "dst"))
	s.Add(newConn("c2", "dst", "src"))
	s.Add(newConn("unrelated", "dst", "dst"))

	s.Delete("src")

	if s.Get("c1") != nil {
		t.Error("connection with deleted source should be removed")
	}
	if s.Get("c2") != nil {
		t.Error("connection with deleted target should be removed")
	}
	if s.Get("unrelated") == nil {
		t.Error("connection not referencing the deleted item should survive")
	}
}

func TestStore_DeletePrunesSelection(t *testing.T) {
	s := NewStore()
	s.Add(newRect("a", 0, 0, 10, 10))
	s.Add(newRect("b", 0, 0, 10, 10))
	s.SetSelection([]string{"a", "b"})

	s.Delete("a")

	if s.IsSelected("a") {
		t.Error("deleted item should leave the selection")
	}
	ids := s.SelectedIDs()
	if len(ids) != 1 || ids[0] != "b" {
		t.Errorf("expected selection [b], got %v", ids)
	}
}

func TestStore_SelectReplace(t *testing.T) {
	s := NewStore()
	s.Add(newRect("a", 0, 0, 10, 10))
	s.Add(newRect("b", 0, 0, 10, 10))

	s.Select("a", true)
	s.Select("b", true)
	if s.IsSelected("a") {
		t.Error("replace-select should clear the previous selection")
	}

	s.Select("a", false)
	if got := len(s.SelectedIDs()); got != 2 {
		t.Errorf("additive select: expected 2 selected, got %d", got)
	}
}

func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	s := NewStore()
	it := s.Add(domain.Item{
		ID: "br", Type: domain.ItemTypeBrush,
		Brush: &domain.BrushProps{Points: []domain.Point{{X: 1, Y: 2}}},
	})
	snap := s.Snapshot()
	it.Brush.Points[0] = domain.Point{X: 99, Y: 99}
	if snap[0].Brush.Points[0].X == 99 {
		t.Error("snapshot should not alias live brush points")
	}
}

func TestStore_ReplaceKeepsIncomingZOrder(t *testing.T) {
	s := NewStore()
	a := newRect("a", 0, 0, 10, 10)
	a.ZIndex = 5
	b := newRect("b", 0, 0, 10, 10)
	b.ZIndex = 2
	s.Replace([]domain.Item{a, b})

	items := s.Items()
	if items[0].ID != "b" || items[1].ID != "a" {
		t.Errorf("expected paint order [b a], got [%s %s]", items[0].ID, items[1].ID)
	}
}
