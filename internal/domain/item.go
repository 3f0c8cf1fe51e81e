package domain

type ItemType string

const (
	ItemTypeImage      ItemType = "image"
	ItemTypeText       ItemType = "text"
	ItemTypeRectangle  ItemType = "rectangle"
	ItemTypeCircle     ItemType = "circle"
	ItemTypeBrush      ItemType = "brush"
	ItemTypeLine       ItemType = "line"
	ItemTypeArrow      ItemType = "arrow"
	ItemTypeConnection ItemType = "connection"
)

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Item is one element on the canvas. Shared geometry lives on the struct
// itself; type-specific fields live on the variant matching Type. Exactly one
// variant pointer is non-nil per item (rectangle and circle share ShapeProps,
// line and arrow share LineProps).
type Item struct {
	ID     string   `json:"id"`
	Type   ItemType `json:"type"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	ZIndex int      `json:"zIndex"`

	Image      *ImageProps      `json:"image,omitempty"`
	Text       *TextProps       `json:"text,omitempty"`
	Shape      *ShapeProps      `json:"shape,omitempty"`
	Brush      *BrushProps      `json:"brush,omitempty"`
	Line       *LineProps       `json:"line,omitempty"`
	Connection *ConnectionProps `json:"connection,omitempty"`
}

// ImageProps holds the pixel payload reference plus optional crop,
// adjustment, and provenance attributes.
type ImageProps struct {
	Src        string  `json:"src"`
	Prompt     string  `json:"prompt,omitempty"`
	Crop       *Crop   `json:"crop,omitempty"`
	Brightness float64 `json:"brightness,omitempty"`
	Contrast   float64 `json:"contrast,omitempty"`
	Saturation float64 `json:"saturation,omitempty"`
	Filter     string  `json:"filter,omitempty"`
}

// Crop is a normalized sub-rectangle of an image (0..1 on both axes).
type Crop struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type TextProps struct {
	Content    string  `json:"src"` // the text itself rides in src
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty"`
	Color      string  `json:"color,omitempty"`
	Align      string  `json:"align,omitempty"`
}

type ShapeProps struct {
	Fill         string  `json:"fill"`
	Stroke       string  `json:"stroke"`
	StrokeWidth  float64 `json:"strokeWidth"`
	BorderRadius float64 `json:"borderRadius,omitempty"` // rectangle only
}

type BrushProps struct {
	Points      []Point `json:"points"`
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// LineProps covers line and arrow items. Control is the quadratic Bézier
// control point; nil means a straight segment.
type LineProps struct {
	Start       Point   `json:"startPoint"`
	End         Point   `json:"endPoint"`
	Control     *Point  `json:"controlPoint,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// ConnectionProps links a source item to a target item by id. The ids are
// lookup keys, never owning references: a dangling id means the curve is
// dropped, not repaired. Start/End are derived from the referenced items'
// geometry and must be recomputed whenever either item moves or resizes.
type ConnectionProps struct {
	SourceItemID string `json:"sourceItemId"`
	TargetItemID string `json:"targetItemId"`
	Start        Point  `json:"startPoint"`
	End          Point  `json:"endPoint"`
}

// Center returns the midpoint of the item's bounding box.
func (it *Item) Center() Point {
	return Point{X: it.X + it.Width/2, Y: it.Y + it.Height/2}
}

// Clone returns a deep copy of the item, including variant payloads.
func (it *Item) Clone() Item {
	out := *it
	switch {
	case it.Image != nil:
		img := *it.Image
		if it.Image.Crop != nil {
			crop := *it.Image.Crop
			img.Crop = &crop
		}
		out.Image = &img
	case it.Text != nil:
		txt := *it.Text
		out.Text = &txt
	case it.Shape != nil:
		sh := *it.Shape
		out.Shape = &sh
	case it.Brush != nil:
		br := *it.Brush
		br.Points = append([]Point(nil), it.Brush.Points...)
		out.Brush = &br
	case it.Line != nil:
		ln := *it.Line
		if it.Line.Control != nil {
			ctrl := *it.Line.Control
			ln.Control = &ctrl
		}
		out.Line = &ln
	case it.Connection != nil:
		conn := *it.Connection
		out.Connection = &conn
	}
	return out
}
