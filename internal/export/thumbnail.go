// Package export renders project snapshots to PNG, used for the project
// gallery thumbnails.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"easel/internal/domain"
)

const thumbPadding = 12.0

// Renderer rasterizes a canvas item list into a fixed-size PNG.
type Renderer struct {
	Width  int
	Height int
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// RenderPNG draws the items fitted into the thumbnail extent and writes the
// PNG to path. Image payloads that can't be loaded are drawn as gray
// placeholders rather than failing the whole render.
func (r *Renderer) RenderPNG(items []domain.Item, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create thumbnail dir: %w", err)
	}

	dc := gg.NewContext(r.Width, r.Height)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	bounds, ok := contentBounds(items)
	if !ok {
		return dc.SavePNG(path)
	}

	scale := math.Min(
		(float64(r.Width)-2*thumbPadding)/bounds.w,
		(float64(r.Height)-2*thumbPadding)/bounds.h,
	)
	if scale > 1 {
		scale = 1
	}
	offX := (float64(r.Width) - bounds.w*scale) / 2
	offY := (float64(r.Height) - bounds.h*scale) / 2
	tx := func(x float64) float64 { return (x-bounds.x)*scale + offX }
	ty := func(y float64) float64 { return (y-bounds.y)*scale + offY }

	// Items with a missing variant payload are skipped, not errors: merged
	// remote documents may carry items this build cannot draw.
	for _, it := range items {
		switch {
		case it.Type == domain.ItemTypeImage && it.Image != nil:
			drawImage(dc, &it, tx, ty, scale)
		case it.Type == domain.ItemTypeText && it.Text != nil:
			drawText(dc, &it, tx, ty, scale)
		case it.Type == domain.ItemTypeRectangle && it.Shape != nil:
			drawRectangle(dc, &it, tx, ty, scale)
		case it.Type == domain.ItemTypeCircle && it.Shape != nil:
			drawCircle(dc, &it, tx, ty, scale)
		case it.Type == domain.ItemTypeBrush && it.Brush != nil:
			drawBrush(dc, &it, tx, ty, scale)
		case (it.Type == domain.ItemTypeLine || it.Type == domain.ItemTypeArrow) && it.Line != nil:
			drawLine(dc, &it, tx, ty, scale)
		case it.Type == domain.ItemTypeConnection && it.Connection != nil:
			drawConnection(dc, &it, tx, ty, scale)
		}
	}

	return dc.SavePNG(path)
}

type box struct{ x, y, w, h float64 }

func contentBounds(items []domain.Item) (box, bool) {
	if len(items) == 0 {
		return box{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, it := range items {
		minX = math.Min(minX, it.X)
		minY = math.Min(minY, it.Y)
		maxX = math.Max(maxX, it.X+it.Width)
		maxY = math.Max(maxY, it.Y+it.Height)
	}
	w := maxX - minX
	h := maxY - minY
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return box{minX, minY, w, h}, true
}

func strokeColor(c string) string {
	if c == "" || c == "transparent" {
		return "#1e1e1e"
	}
	return c
}

func drawImage(dc *gg.Context, it *domain.Item, tx, ty func(float64) float64, scale float64) {
	x, y := tx(it.X), ty(it.Y)
	w, h := it.Width*scale, it.Height*scale
	if img, err := gg.LoadImage(it.Image.Src); err == nil {
		iw := float64(img.Bounds().Dx())
		ih := float64(img.Bounds().Dy())
		if iw > 0 && ih > 0 {
			dc.Push()
			dc.Translate(x, y)
			dc.Scale(w/iw, h/ih)
			dc.DrawImage(img, 0, 0)
			dc.Pop()
			return
		}
	}
	dc.SetHexColor("#d4d4d8")
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
}

func drawText(dc *gg.Context, it *domain.Item, tx, ty func(float64) float64, scale float64) {
	// Thumbnails are too small for legible type: a tinted box stands in.
	dc.SetHexColor("#e4e4e7")
	dc.DrawRectangle(tx(it.X), ty(it.Y), it.Width*scale, it.Height*scale)
	dc.Fill()
}

func drawRectangle(dc *gg.Context, it *domain.Item, tx, ty func(float64) float64, scale float64) {
	x, y := tx(it.X), ty(it.Y)
	w, h := it.Width*scale, it.Height*scale
	radius := it.Shape.BorderRadius * scale
	if radius > 0 {
		dc.DrawRoundedRectangle(x, y, w, h, radius)
	} else {
		dc.DrawRectangle(x, y, w, h)
	}
	if it.Shape.Fill != "" && it.Shape.Fill != "transparent" {
		dc.SetHexColor(it.Shape.Fill)
		dc.FillPreserve()
	}
	dc.SetHexColor(strokeColor(it.Shape.Stroke))
	dc.SetLineWidth(math.Max(1, it.Shape.StrokeWidth*scale))
	dc.Stroke()
}

func drawCircle(dc *gg.Context, it *domain.Item, tx, ty func(float64) float64, scale float64) {
	cx := tx(it.X + it.Width/2)
	cy := ty(it.Y + it.Height/2)
	dc.DrawEllipse(cx, cy, it.Width*scale/2, it.Height*scale/2)
	if it.Shape.Fill != "" && it.Shape.Fill != "transparent" {
		dc.SetHexColor(it.Shape.Fill)
		dc.FillPreserve()
	}
	dc.SetHexColor(strokeColor(it.Shape.Stroke))
	dc.SetLineWidth(math.Max(1, it.Shape.StrokeWidth*scale))
	dc.Stroke()
}

func drawBrush(dc *gg.Context, it *domain.Item, tx, ty func(float64) float64, scale float64) {
	pts := it.Brush.Points
	if len(pts) == 0 {
		return
	}
	dc.MoveTo(tx(pts[0].X), ty(pts[0].Y))
	for _, p := range pts[1:] {
		dc.LineTo(tx(p.X), ty(p.Y))
	}
	dc.SetHexColor(strokeColor(it.Brush.Color))
	dc.SetLineWidth(math.Max(1, it.Brush.StrokeWidth*scale))
	dc.Stroke()
}

func drawLine(dc *gg.Context, it *domain.Item, tx, ty func(float64) float64, scale float64) {
	ln := it.Line
	dc.MoveTo(tx(ln.Start.X), ty(ln.Start.Y))
	if ln.Control != nil {
		dc.QuadraticTo(tx(ln.Control.X), ty(ln.Control.Y), tx(ln.End.X), ty(ln.End.Y))
	} else {
		dc.LineTo(tx(ln.End.X), ty(ln.End.Y))
	}
	dc.SetHexColor(strokeColor(ln.Stroke))
	dc.SetLineWidth(math.Max(1, ln.StrokeWidth*scale))
	dc.Stroke()
}

func drawConnection(dc *gg.Context, it *domain.Item, tx, ty func(float64) float64, scale float64) {
	conn := it.Connection
	midX := (conn.Start.X + conn.End.X) / 2
	midY := (conn.Start.Y + conn.End.Y) / 2
	dc.MoveTo(tx(conn.Start.X), ty(conn.Start.Y))
	dc.QuadraticTo(tx(midX), ty(midY), tx(conn.End.X), ty(conn.End.Y))
	dc.SetHexColor("#a1a1aa")
	dc.SetLineWidth(1)
	dc.Stroke()
}
