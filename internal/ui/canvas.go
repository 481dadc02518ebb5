package ui

import (
	"fmt"
	"image/color"

	"DotWorld/internal/state"
	palette "DotWorld/internal/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// DotCanvas feeds mouse input to a state.Controller and draws the resulting
// frames. Without a controller it is a read-only spectator view.
type DotCanvas struct {
	widget.BaseWidget
	ctrl      *state.Controller
	tool      state.Tool
	frame     state.Frame
	shareLink string
	statusBar *widget.Label

	// OnFrame is called on the UI goroutine after every handled event.
	OnFrame func(state.Frame)
}

var _ fyne.Widget = (*DotCanvas)(nil)
var _ fyne.Draggable = (*DotCanvas)(nil)
var _ desktop.Mouseable = (*DotCanvas)(nil)
var _ desktop.Hoverable = (*DotCanvas)(nil)

func NewDotCanvas(ctrl *state.Controller) *DotCanvas {
	b := &DotCanvas{
		ctrl:      ctrl,
		statusBar: widget.NewLabel("Ready"),
	}
	if ctrl != nil {
		b.frame = ctrl.Frame()
	}
	b.ExtendBaseWidget(b)
	return b
}

// NewSpectatorCanvas returns a canvas that only shows frames passed to
// ShowFrame.
func NewSpectatorCanvas() *DotCanvas {
	b := NewDotCanvas(nil)
	b.statusBar.SetText("Waiting for host...")
	return b
}

func (b *DotCanvas) Interactive() bool { return b.ctrl != nil }

// SetTool sets the tool type reported with mouse events. Mice cannot report
// a stylus end, so the toolbar stands in for it.
func (b *DotCanvas) SetTool(t state.Tool) {
	b.tool = t
	b.updateStatus()
}

func (b *DotCanvas) Tool() state.Tool { return b.tool }

func (b *DotCanvas) Frame() state.Frame { return b.frame }

func (b *DotCanvas) SetShareLink(link string) {
	b.shareLink = link
	b.updateStatus()
}

func (b *DotCanvas) StatusBar() *widget.Label { return b.statusBar }

// SetStatus overrides the status bar text until the next frame.
func (b *DotCanvas) SetStatus(text string) {
	b.statusBar.SetText(text)
}

// ShowFrame replaces the displayed frame. Must run on the UI goroutine.
func (b *DotCanvas) ShowFrame(f state.Frame) {
	b.frame = f
	b.updateStatus()
	b.Refresh()
}

func (b *DotCanvas) dispatch(ev state.PointerEvent) {
	if b.ctrl == nil {
		return
	}
	b.ctrl.Handle(ev)
	b.ShowFrame(b.ctrl.Frame())
	if b.OnFrame != nil {
		b.OnFrame(b.frame)
	}
}

func (b *DotCanvas) updateStatus() {
	b.statusBar.SetText(statusLine(b.frame, b.tool, b.Interactive(), b.shareLink))
}

func statusLine(f state.Frame, tool state.Tool, interactive bool, link string) string {
	line := fmt.Sprintf("%d dots, %d selected", len(f.Dots), f.Selected)
	if interactive {
		line += fmt.Sprintf(" | tool: %s", tool)
	} else {
		line += " | spectating"
	}
	if link != "" {
		line += " | share: " + link
	}
	return line
}

// buttonsFor maps a desktop mouse press to a button mask. The right button
// or Ctrl+click stand in for a held stylus button.
func buttonsFor(btn desktop.MouseButton, mod fyne.KeyModifier) state.Buttons {
	buttons := state.ButtonPrimary
	if btn&desktop.MouseButtonSecondary != 0 || mod&fyne.KeyModifierControl != 0 {
		buttons |= state.ButtonSecondary
	}
	return buttons
}

func (b *DotCanvas) event(action state.Action, pos fyne.Position, buttons state.Buttons) state.PointerEvent {
	return state.PointerEvent{Action: action, X: pos.X, Y: pos.Y, Tool: b.tool, Buttons: buttons}
}

func (b *DotCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button&(desktop.MouseButtonPrimary|desktop.MouseButtonSecondary) == 0 {
		return
	}
	b.dispatch(b.event(state.PrimaryDown, e.Position, buttonsFor(e.Button, e.Modifier)))
}

func (b *DotCanvas) MouseUp(e *desktop.MouseEvent) {
	if e.Button&(desktop.MouseButtonPrimary|desktop.MouseButtonSecondary) == 0 {
		return
	}
	b.dispatch(b.event(state.PrimaryUp, e.Position, 0))
}

func (b *DotCanvas) Dragged(e *fyne.DragEvent) {
	b.dispatch(b.event(state.PrimaryMove, e.Position, state.ButtonPrimary))
}

// DragEnd is the only release the canvas sees when the button comes up
// outside it, so it ends a gesture MouseUp has not already ended.
func (b *DotCanvas) DragEnd() {
	if b.ctrl == nil || !b.ctrl.Held() {
		return
	}
	b.dispatch(state.PointerEvent{Action: state.PrimaryUp, X: b.frame.Pointer.X, Y: b.frame.Pointer.Y, Tool: b.tool})
}

func (b *DotCanvas) MouseIn(e *desktop.MouseEvent) {
	b.dispatch(b.event(state.HoverEnter, e.Position, 0))
}

func (b *DotCanvas) MouseMoved(e *desktop.MouseEvent) {
	b.dispatch(b.event(state.HoverMove, e.Position, 0))
}

func (b *DotCanvas) MouseOut() {
	b.dispatch(state.PointerEvent{Action: state.HoverExit, X: b.frame.Pointer.X, Y: b.frame.Pointer.Y, Tool: b.tool})
}

func (b *DotCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &dotCanvasRenderer{board: b}
	r.background = canvas.NewRectangle(palette.Background)
	r.rebuild()
	return r
}

type dotCanvasRenderer struct {
	board      *DotCanvas
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
	size       fyne.Size
}

func (r *dotCanvasRenderer) rebuild() {
	f := r.board.frame
	objects := []fyne.CanvasObject{r.background}

	// Insertion order is paint order: the last dot ends up on top.
	for _, d := range f.Dots {
		objects = append(objects, circle(d.X, d.Y, d.Radius, palette.DotColor(d.ColorIndex), nil, 0))
		if d.Selected {
			objects = append(objects, circle(d.X, d.Y, d.Radius, color.Transparent, palette.SelectedStroke, palette.SelectedStrokeWidth))
		}
	}

	if f.Hovering {
		for _, g := range palette.CursorGlyph(f.Tool, f.Pointer) {
			rect := canvas.NewRectangle(palette.Cursor)
			if g.Stroke > 0 {
				rect.FillColor = color.Transparent
				rect.StrokeColor = palette.Cursor
				rect.StrokeWidth = g.Stroke
			}
			rect.Move(fyne.NewPos(g.X, g.Y))
			rect.Resize(fyne.NewSize(g.W, g.H))
			objects = append(objects, rect)
		}
	}

	objects = append(objects, circle(f.Pointer.X, f.Pointer.Y, palette.PointerMarkRadius, palette.Cursor, nil, 0))

	text := canvas.NewText(f.Status, palette.StatusText)
	text.TextSize = palette.StatusTextSize
	text.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	text.Move(fyne.NewPos(palette.StatusInsetX, r.size.Height-palette.StatusInsetBottom-palette.StatusTextSize))
	objects = append(objects, text)

	r.objects = objects
}

func circle(x, y, radius float32, fill, stroke color.Color, width float32) *canvas.Circle {
	c := canvas.NewCircle(fill)
	c.Position1 = fyne.NewPos(x-radius, y-radius)
	c.Position2 = fyne.NewPos(x+radius, y+radius)
	if stroke != nil {
		c.StrokeColor = stroke
		c.StrokeWidth = width
	}
	return c
}

func (r *dotCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *dotCanvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.board)
}

func (r *dotCanvasRenderer) Layout(size fyne.Size) {
	r.size = size
	r.background.Resize(size)
	r.rebuild()
}

func (r *dotCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *dotCanvasRenderer) Destroy() {}
