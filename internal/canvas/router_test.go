package canvas

import (
	"math"
	"testing"

	"easel/internal/domain"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRouteConnection_VerticalAnchors(t *testing.T) {
	// B sits directly below A, so the curve leaves A's bottom edge and
	// enters B's top edge, each offset outward by the anchor gap.
	a := newRect("a", 0, 0, 100, 100)
	b := newRect("b", 0, 300, 100, 100)

	start, end := RouteConnection(&a, &b)

	wantStart := domain.Point{X: 50, Y: 100 + AnchorGap}
	wantEnd := domain.Point{X: 50, Y: 300 - AnchorGap}
	if !almostEqual(start.X, wantStart.X) || !almostEqual(start.Y, wantStart.Y) {
		t.Errorf("start = %+v, want %+v", start, wantStart)
	}
	if !almostEqual(end.X, wantEnd.X) || !almostEqual(end.Y, wantEnd.Y) {
		t.Errorf("end = %+v, want %+v", end, wantEnd)
	}
}

func TestRouteConnection_HorizontalAnchors(t *testing.T) {
	a := newRect("a", 0, 0, 100, 100)
	b := newRect("b", 400, 0, 100, 100)

	start, end := RouteConnection(&a, &b)

	wantStart := domain.Point{X: 100 + AnchorGap, Y: 50}
	wantEnd := domain.Point{X: 400 - AnchorGap, Y: 50}
	if !almostEqual(start.X, wantStart.X) || !almostEqual(start.Y, wantStart.Y) {
		t.Errorf("start = %+v, want %+v", start, wantStart)
	}
	if !almostEqual(end.X, wantEnd.X) || !almostEqual(end.Y, wantEnd.Y) {
		t.Errorf("end = %+v, want %+v", end, wantEnd)
	}
}

func TestUnifiedEndpoint_FanInSharesOnePoint(t *testing.T) {
	s := NewStore()
	s.Add(newRect("s1", 0, 0, 100, 100))
	s.Add(newRect("s2", 400, 0, 100, 100))
	s.Add(newRect("tgt", 200, 300, 100, 100))
	s.Add(newConn("c1", "s1", "tgt"))
	s.Add(newConn("c2", "s2", "tgt"))

	UpdateConnectionsRealtime(s, map[string]bool{"tgt": true})

	c1 := s.Get("c1").Connection
	c2 := s.Get("c2").Connection
	if c1.End != c2.End {
		t.Errorf("fan-in curves should share an endpoint: %+v vs %+v", c1.End, c2.End)
	}
	// Source centroid (250,50) sits above the target, so the shared point
	// is on the target's top edge.
	want := domain.Point{X: 250, Y: 300 - AnchorGap}
	if !almostEqual(c1.End.X, want.X) || !almostEqual(c1.End.Y, want.Y) {
		t.Errorf("shared endpoint = %+v, want %+v", c1.End, want)
	}
	// Starts stay distinct.
	if c1.Start == c2.Start {
		t.Error("distinct sources should keep distinct start anchors")
	}
}

func TestUpdateConnectionsRealtime_Idempotent(t *testing.T) {
	s := NewStore()
	s.Add(newRect("a", 0, 0, 100, 100))
	s.Add(newRect("b", 0, 300, 100, 100))
	s.Add(newConn("c", "a", "b"))

	moved := map[string]bool{"a": true}
	UpdateConnectionsRealtime(s, moved)
	first := *s.Get("c").Connection
	UpdateConnectionsRealtime(s, moved)
	second := *s.Get("c").Connection

	if first.Start != second.Start || first.End != second.End {
		t.Errorf("repeated routing drifted: %+v then %+v", first, second)
	}
}

func TestUpdateConnectionsRealtime_LeavesUnaffectedAlone(t *testing.T) {
	s := NewStore()
	s.Add(newRect("a", 0, 0, 100, 100))
	s.Add(newRect("b", 0, 300, 100, 100))
	s.Add(newRect("x", 1000, 0, 100, 100))
	s.Add(newRect("y", 1000, 300, 100, 100))
	s.Add(newConn("far", "x", "y"))

	UpdateConnectionsRealtime(s, map[string]bool{"a": true, "b": true})

	far := s.Get("far").Connection
	if far.Start != (domain.Point{}) || far.End != (domain.Point{}) {
		t.Errorf("unaffected connection should not be rerouted, got start=%+v end=%+v", far.Start, far.End)
	}
}

func TestUpdateConnectionsRealtime_SkipsDangling(t *testing.T) {
	s := NewStore()
	s.Add(newRect("a", 0, 0, 100, 100))
	s.Add(domain.Item{
		ID: "dangling", Type: domain.ItemTypeConnection,
		Connection: &domain.ConnectionProps{SourceItemID: "a", TargetItemID: "gone"},
	})

	// Must not panic and must leave the connection untouched.
	UpdateConnectionsRealtime(s, map[string]bool{"a": true})

	c := s.Get("dangling").Connection
	if c.Start != (domain.Point{}) || c.End != (domain.Point{}) {
		t.Errorf("dangling connection should be skipped, got start=%+v end=%+v", c.Start, c.End)
	}
}
