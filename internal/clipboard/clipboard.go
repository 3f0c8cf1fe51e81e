// Package clipboard provides the editor's copy/cut/paste surface: an
// internal item buffer plus a bridge to the system text clipboard.
package clipboard

import (
	"strings"
	"sync"

	systemclip "github.com/atotto/clipboard"
	"github.com/google/uuid"

	"easel/internal/domain"
)

// pasteOffset shifts duplicated items so the copy is visible next to the
// original.
const pasteOffset = 24.0

// Service holds the internal clipboard buffer. System clipboard failures are
// silent: paste falls back to the internal buffer, and an empty buffer makes
// the paste a no-op.
type Service struct {
	mu    sync.Mutex
	items []domain.Item
}

func New() *Service {
	return &Service{}
}

// Copy stores deep copies of the given items. Connection items are dropped:
// their id references would dangle in the pasted copy.
func (s *Service) Copy(items []*domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.items[:0]
	for _, it := range items {
		if it.Type == domain.ItemTypeConnection {
			continue
		}
		s.items = append(s.items, it.Clone())
	}
}

// HasItems reports whether the internal buffer holds anything.
func (s *Service) HasItems() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) > 0
}

// Paste returns fresh copies of the buffered items with new ids, translated
// by a fixed offset from their copied positions. Returns nil when the buffer
// is empty.
func (s *Service) Paste() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return nil
	}
	out := make([]domain.Item, 0, len(s.items))
	for _, it := range s.items {
		clone := it.Clone()
		clone.ID = uuid.New().String()
		translate(&clone, pasteOffset, pasteOffset)
		out = append(out, clone)
	}
	return out
}

// Duplicate clones the given items directly (no buffer round-trip), offset
// like Paste.
func Duplicate(items []*domain.Item) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.Type == domain.ItemTypeConnection {
			continue
		}
		clone := it.Clone()
		clone.ID = uuid.New().String()
		translate(&clone, pasteOffset, pasteOffset)
		out = append(out, clone)
	}
	return out
}

// ReadSystemText reads plain text from the system clipboard. Returns "" and
// false on permission failure or empty clipboard.
func (s *Service) ReadSystemText() (string, bool) {
	text, err := systemclip.ReadAll()
	if err != nil {
		return "", false
	}
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return "", false
	}
	return text, true
}

// WriteSystemText mirrors copied text content to the system clipboard.
// Errors are swallowed: the internal buffer is the source of truth.
func (s *Service) WriteSystemText(text string) {
	_ = systemclip.WriteAll(text)
}

// TextItem builds a text item for pasted plain text at the given canvas
// position, sized to a measured estimate of the text extent.
func TextItem(text string, at domain.Point) domain.Item {
	const fontSize = 16.0
	lines := strings.Split(text, "\n")
	longest := 0
	for _, line := range lines {
		if len(line) > longest {
			longest = len(line)
		}
	}
	w := float64(longest) * fontSize * 0.6
	if w < fontSize {
		w = fontSize
	}
	h := float64(len(lines)) * fontSize * 1.4
	return domain.Item{
		ID:     uuid.New().String(),
		Type:   domain.ItemTypeText,
		X:      at.X,
		Y:      at.Y,
		Width:  w,
		Height: h,
		Text: &domain.TextProps{
			Content:    text,
			FontSize:   fontSize,
			FontFamily: "sans-serif",
			Color:      "#1e1e1e",
		},
	}
}

func translate(it *domain.Item, dx, dy float64) {
	it.X += dx
	it.Y += dy
	if it.Line != nil {
		it.Line.Start.X += dx
		it.Line.Start.Y += dy
		it.Line.End.X += dx
		it.Line.End.Y += dy
		if it.Line.Control != nil {
			it.Line.Control.X += dx
			it.Line.Control.Y += dy
		}
	}
	if it.Brush != nil {
		for i := range it.Brush.Points {
			it.Brush.Points[i].X += dx
			it.Brush.Points[i].Y += dy
		}
	}
}
