package canvas

import (
	"math"

	"easel/internal/domain"
)

// AnchorGap is how far a connection anchor sits outside the item edge, so
// curves visually originate at item borders rather than inside them.
const AnchorGap = 12.0

// anchorOn picks the anchor point on an item's boundary facing `toward`.
// The orientation (vertical vs horizontal) follows the larger center delta:
// a mostly-vertical relationship connects top/bottom edges, a mostly-
// horizontal one connects left/right edges.
func anchorOn(it *domain.Item, toward domain.Point) domain.Point {
	c := it.Center()
	dx := toward.X - c.X
	dy := toward.Y - c.Y
	if math.Abs(dy) > math.Abs(dx) {
		if dy > 0 {
			return domain.Point{X: c.X, Y: it.Y + it.Height + AnchorGap}
		}
		return domain.Point{X: c.X, Y: it.Y - AnchorGap}
	}
	if dx > 0 {
		return domain.Point{X: it.X + it.Width + AnchorGap, Y: c.Y}
	}
	return domain.Point{X: it.X - AnchorGap, Y: c.Y}
}

// RouteFrom computes the start anchor on a source item for a curve that
// terminates at a pre-fixed endpoint (the fan-in case).
func RouteFrom(source *domain.Item, end domain.Point) domain.Point {
	return anchorOn(source, end)
}

// RouteConnection computes both anchors for a single source→target curve.
func RouteConnection(source, target *domain.Item) (start, end domain.Point) {
	end = anchorOn(target, source.Center())
	start = anchorOn(source, end)
	return start, end
}

// UnifiedEndpoint computes the single point where every curve converging on
// one target terminates: the anchor on the target's boundary facing the
// centroid of all source centers. Fan-in curves merge there instead of
// landing at separate points on the target.
func UnifiedEndpoint(sources []*domain.Item, target *domain.Item) domain.Point {
	if len(sources) == 0 {
		return target.Center()
	}
	var cx, cy float64
	for _, src := range sources {
		c := src.Center()
		cx += c.X
		cy += c.Y
	}
	centroid := domain.Point{X: cx / float64(len(sources)), Y: cy / float64(len(sources))}
	return anchorOn(target, centroid)
}

// UpdateConnectionsRealtime re-derives the anchor points of every connection
// whose source or target id is in moved, leaving all others untouched. The
// result depends only on the current item geometry, so calling it on every
// pointer-move accumulates no drift and repeating it is a no-op.
//
// A connection whose source or target is missing is skipped — a dangling
// reference is a display artifact for the cascade-delete rule to clean up,
// never a reason to fail mid-gesture.
func UpdateConnectionsRealtime(store *Store, moved map[string]bool) {
	if len(moved) == 0 {
		return
	}
	items := store.Items()

	// Group connections by target so fan-in endpoints are shared.
	byTarget := make(map[string][]*domain.Item)
	for _, it := range items {
		if it.Connection != nil {
			byTarget[it.Connection.TargetItemID] = append(byTarget[it.Connection.TargetItemID], it)
		}
	}

	for _, it := range items {
		conn := it.Connection
		if conn == nil {
			continue
		}
		if !moved[conn.SourceItemID] && !moved[conn.TargetItemID] {
			continue
		}
		src := store.Get(conn.SourceItemID)
		tgt := store.Get(conn.TargetItemID)
		if src == nil || tgt == nil {
			continue
		}

		var sources []*domain.Item
		for _, sibling := range byTarget[conn.TargetItemID] {
			if s := store.Get(sibling.Connection.SourceItemID); s != nil {
				sources = append(sources, s)
			}
		}
		end := UnifiedEndpoint(sources, tgt)
		start := RouteFrom(src, end)
		conn.Start, conn.End = start, end

		r := envelope([]domain.Point{start, end})
		it.X, it.Y, it.Width, it.Height = r.x, r.y, r.w, r.h
	}
}
