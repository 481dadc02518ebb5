package export

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"DotWorld/internal/state"
	"DotWorld/internal/theme"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageW, pageH = 210.0, 297.0
	margin       = 10.0
	statusHeight = 10.0
	// One canvas unit at 96 DPI, in millimeters.
	maxScale = 25.4 / 96
)

// WritePDF draws the frame's dots on an A4 page, scaled down to fit, with
// the status line underneath.
func WritePDF(w io.Writer, f state.Frame) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()

	if minX, minY, maxX, maxY, ok := theme.Bounds(f.Dots); ok {
		scale := fitScale(maxX-minX, maxY-minY)
		pos := func(x, y float32) (float64, float64) {
			return margin + float64(x-minX)*scale, margin + float64(y-minY)*scale
		}
		for _, d := range f.Dots {
			x, y := pos(d.X, d.Y)
			r := float64(d.Radius) * scale
			setFill(p, theme.DotColor(d.ColorIndex))
			p.Circle(x, y, r, "F")
			if d.Selected {
				setDraw(p, theme.SelectedStroke)
				p.SetLineWidth(float64(theme.SelectedStrokeWidth) * scale)
				p.Circle(x, y, r, "D")
			}
		}
	}

	setText(p, theme.StatusText)
	p.SetFont("Courier", "B", 10)
	p.Text(margin, pageH-margin, fmt.Sprintf("%d dots, %d selected  %s", len(f.Dots), f.Selected, f.Status))

	return p.Output(w)
}

// WriteFile is WritePDF to a new file at path.
func WriteFile(path string, f state.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePDF(file, f); err != nil {
		file.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return file.Close()
}

func fitScale(w, h float32) float64 {
	scale := maxScale
	if w > 0 {
		scale = min(scale, (pageW-2*margin)/float64(w))
	}
	if h > 0 {
		scale = min(scale, (pageH-2*margin-statusHeight)/float64(h))
	}
	return scale
}

func setFill(p *gofpdf.Fpdf, c color.NRGBA) { p.SetFillColor(int(c.R), int(c.G), int(c.B)) }
func setDraw(p *gofpdf.Fpdf, c color.NRGBA) { p.SetDrawColor(int(c.R), int(c.G), int(c.B)) }
func setText(p *gofpdf.Fpdf, c color.NRGBA) { p.SetTextColor(int(c.R), int(c.G), int(c.B)) }
