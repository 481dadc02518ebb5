package ui

import (
	"image/color"

	"DotWorld/internal/state"
	palette "DotWorld/internal/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// colorSwatch shows one of the two dot colors in the toolbar legend.
type colorSwatch struct {
	widget.BaseWidget
	Color color.Color
}

func newColorSwatch(c color.Color) *colorSwatch {
	s := &colorSwatch{Color: c}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

// NewToolbar builds the host toolbar: pen/eraser switch, PDF export and the
// color legend.
func NewToolbar(board *DotCanvas, win fyne.Window) fyne.CanvasObject {
	toolLabel := widget.NewLabel(board.Tool().String())
	setTool := func(t state.Tool) {
		board.SetTool(t)
		toolLabel.SetText(t.String())
	}

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() { setTool(state.ToolNormal) }), // Pen
		widget.NewToolbarAction(theme.ContentClearIcon(), func() { setTool(state.ToolEraser) }),   // Eraser
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { showExportDialog(board, win) }),
	)

	legend := container.NewHBox(
		newColorSwatch(palette.DotColor(0)),
		newColorSwatch(palette.DotColor(1)),
		widget.NewLabel("right-click or Ctrl+click toggles"),
	)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		toolLabel,
		widget.NewSeparator(),
		widget.NewLabel("Colors:"),
		legend,
		layout.NewSpacer(),
	)
}
