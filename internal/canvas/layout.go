package canvas

import (
	"math"

	"easel/internal/domain"
)

const (
	placementGrid    = 30.0
	placementPadding = 60.0
	placementMaxRowW = 1800.0
)

// LayoutEngine finds free canvas positions for items created by external
// collaborators (generation results, file drops), so they never land on top
// of existing items.
type LayoutEngine struct {
	gridSize float64
	padding  float64
	maxRowW  float64
}

func NewLayoutEngine() *LayoutEngine {
	return &LayoutEngine{
		gridSize: placementGrid,
		padding:  placementPadding,
		maxRowW:  placementMaxRowW,
	}
}

// snap rounds v to the nearest grid point.
func (le *LayoutEngine) snap(v float64) float64 {
	return math.Round(v/le.gridSize) * le.gridSize
}

// NextPosition finds the next non-overlapping grid position for an item of
// size (newW, newH) given the items already on the canvas. Connection items
// are ignored: curves are not placement obstacles.
func (le *LayoutEngine) NextPosition(existing []*domain.Item, newW, newH float64) (float64, float64) {
	var occupied []rect
	for _, it := range existing {
		if it.Type == domain.ItemTypeConnection {
			continue
		}
		occupied = append(occupied, itemRect(it))
	}
	if len(occupied) == 0 {
		return 0, 0
	}

	// Scan rows top-to-bottom, columns left-to-right.
	candidate := rect{w: newW, h: newH}
	for y := 0.0; y < 100000; y += le.gridSize {
		for x := 0.0; x < le.maxRowW; x += le.gridSize {
			candidate.x = le.snap(x)
			candidate.y = le.snap(y)

			overlaps := false
			for _, occ := range occupied {
				padded := rect{
					x: occ.x - le.padding,
					y: occ.y - le.padding,
					w: occ.w + le.padding*2,
					h: occ.h + le.padding*2,
				}
				if candidate.intersects(padded) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return candidate.x, candidate.y
			}
		}
	}

	// Fallback: place below everything.
	maxY := 0.0
	for _, r := range occupied {
		if r.y+r.h > maxY {
			maxY = r.y + r.h
		}
	}
	return 0, le.snap(maxY + le.padding)
}
