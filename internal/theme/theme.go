// Package theme holds the colors and shapes used to draw a dot canvas. It has
// no toolkit dependency so the on-screen renderer and the PDF export agree.
package theme

import (
	"image/color"

	"DotWorld/internal/state"
)

var (
	Background     = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	SelectedStroke = color.NRGBA{R: 255, G: 128, B: 0, A: 255}
	Cursor         = color.NRGBA{A: 255}
	StatusText     = color.NRGBA{A: 255}

	dotColors = [2]color.NRGBA{
		{R: 255, G: 255, B: 0, A: 255},
		{R: 128, G: 255, B: 0, A: 255},
	}
)

const (
	SelectedStrokeWidth float32 = 10
	PointerMarkRadius   float32 = 2
	StatusTextSize      float32 = 24
	StatusInsetX        float32 = 25
	StatusInsetBottom   float32 = 50
)

// DotColor returns the fill for a dot's color index.
func DotColor(index int) color.NRGBA {
	if index == 1 {
		return dotColors[1]
	}
	return dotColors[0]
}

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	X, Y, W, H float32
	// Stroke is zero for filled rectangles.
	Stroke float32
}

// CursorGlyph returns the rectangles making up the hover cursor centered on p:
// a cross for the normal tool, a block with an outlined body for the eraser.
func CursorGlyph(tool state.Tool, p state.Point) []Rect {
	if tool == state.ToolEraser {
		return []Rect{
			{X: p.X - 30, Y: p.Y - 40, W: 60, H: 60},
			{X: p.X - 30, Y: p.Y - 40, W: 60, H: 80, Stroke: 10},
		}
	}
	return []Rect{
		{X: p.X - 10, Y: p.Y - 40, W: 20, H: 80},
		{X: p.X - 40, Y: p.Y - 10, W: 80, H: 20},
	}
}

// Bounds returns the box covering every dot, or ok=false for no dots.
func Bounds(dots []state.Dot) (minX, minY, maxX, maxY float32, ok bool) {
	for i, d := range dots {
		l, t, r, b := d.X-d.Radius, d.Y-d.Radius, d.X+d.Radius, d.Y+d.Radius
		if i == 0 {
			minX, minY, maxX, maxY = l, t, r, b
			continue
		}
		minX, minY = min(minX, l), min(minY, t)
		maxX, maxY = max(maxX, r), max(maxY, b)
	}
	return minX, minY, maxX, maxY, len(dots) > 0
}
