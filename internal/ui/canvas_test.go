package ui

import (
	"testing"

	"DotWorld/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mouse(x, y float32, btn desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     btn,
	}
}

func count[T any](objects []fyne.CanvasObject) int {
	n := 0
	for _, o := range objects {
		if _, ok := o.(T); ok {
			n++
		}
	}
	return n
}

func TestButtonsFor(t *testing.T) {
	assert.Equal(t, state.ButtonPrimary, buttonsFor(desktop.MouseButtonPrimary, 0))
	assert.Equal(t, state.ButtonPrimary|state.ButtonSecondary, buttonsFor(desktop.MouseButtonSecondary, 0))
	assert.Equal(t, state.ButtonPrimary|state.ButtonSecondary, buttonsFor(desktop.MouseButtonPrimary, fyne.KeyModifierControl))
}

func TestStatusLine(t *testing.T) {
	f := state.Frame{Dots: make([]state.Dot, 3), Selected: 1}
	assert.Equal(t, "3 dots, 1 selected | tool: eraser", statusLine(f, state.ToolEraser, true, ""))
	assert.Equal(t, "3 dots, 1 selected | spectating | share: dotworld://h:1", statusLine(f, state.ToolNormal, false, "dotworld://h:1"))
}

func TestDotCanvasTapDrag(t *testing.T) {
	test.NewTempApp(t)
	store := state.NewStore()
	board := NewDotCanvas(state.NewController(store, state.DefaultOptions()))

	var frames []state.Frame
	board.OnFrame = func(f state.Frame) { frames = append(frames, f) }

	board.MouseDown(mouse(100, 100, desktop.MouseButtonPrimary))
	board.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(120, 115)}})
	board.MouseUp(mouse(120, 115, desktop.MouseButtonPrimary))

	require.Len(t, frames, 3)
	require.Equal(t, 1, store.Len())
	d, _ := store.Dot(0)
	assert.Equal(t, float32(120), d.X)
	assert.Equal(t, float32(115), d.Y)
	assert.True(t, d.Selected)
	assert.Equal(t, state.Idle, board.Frame().Phase)
	assert.Equal(t, "1 dots, 1 selected | tool: normal", board.StatusBar().Text)

	objects := test.WidgetRenderer(board).Objects()
	// dot fill, selection outline, pointer mark
	assert.Equal(t, 3, count[*canvas.Circle](objects))
	assert.Equal(t, 1, count[*canvas.Text](objects))
}

func TestDotCanvasReleaseOutsideEndsDrag(t *testing.T) {
	test.NewTempApp(t)
	store := state.NewStore()
	board := NewDotCanvas(state.NewController(store, state.DefaultOptions()))

	board.MouseDown(mouse(100, 100, desktop.MouseButtonPrimary))
	board.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(100, 400)}})
	board.DragEnd()

	f := board.Frame()
	assert.Equal(t, state.Idle, f.Phase)
	assert.Equal(t, "UP at 100.0, 400.0", f.Status)

	board.MouseIn(mouse(200, 200, 0))
	board.MouseMoved(mouse(210, 210, 0))
	f = board.Frame()
	assert.Equal(t, state.Hovering, f.Phase)
	assert.True(t, f.Hovering)
	assert.Equal(t, state.Point{X: 210, Y: 210}, f.Pointer)

	d, _ := store.Dot(0)
	assert.Equal(t, float32(400), d.Y)
}

func TestDotCanvasDragEndAfterMouseUpIsNoop(t *testing.T) {
	test.NewTempApp(t)
	board := NewDotCanvas(state.NewController(state.NewStore(), state.DefaultOptions()))

	board.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	board.MouseUp(mouse(10, 10, desktop.MouseButtonPrimary))
	seq := board.Frame().Seq
	board.DragEnd()

	assert.Equal(t, seq, board.Frame().Seq)
}

func TestDotCanvasRightClickTogglesColor(t *testing.T) {
	test.NewTempApp(t)
	store := state.NewStore()
	board := NewDotCanvas(state.NewController(store, state.DefaultOptions()))

	board.MouseDown(mouse(50, 50, desktop.MouseButtonSecondary))
	board.MouseUp(mouse(50, 50, desktop.MouseButtonSecondary))

	d, _ := store.Dot(0)
	assert.Equal(t, 1, d.ColorIndex)

	board.MouseDown(mouse(50, 50, desktop.MouseButtonTertiary))
	assert.Equal(t, 1, store.Len())
	d, _ = store.Dot(0)
	assert.Equal(t, 1, d.ColorIndex)
}

func TestDotCanvasEraserHover(t *testing.T) {
	test.NewTempApp(t)
	board := NewDotCanvas(state.NewController(state.NewStore(), state.DefaultOptions()))
	board.SetTool(state.ToolEraser)

	board.MouseIn(mouse(10, 10, 0))
	board.MouseMoved(mouse(20, 20, 0))
	f := board.Frame()
	assert.True(t, f.Hovering)
	assert.Equal(t, state.ToolEraser, f.Tool)
	assert.Equal(t, state.Point{X: 20, Y: 20}, f.Pointer)

	// background plus the two eraser glyph rectangles
	objects := test.WidgetRenderer(board).Objects()
	assert.Equal(t, 3, count[*canvas.Rectangle](objects))

	board.MouseOut()
	assert.False(t, board.Frame().Hovering)
	assert.Equal(t, 1, count[*canvas.Rectangle](test.WidgetRenderer(board).Objects()))
}

func TestSpectatorCanvasIgnoresInput(t *testing.T) {
	test.NewTempApp(t)
	board := NewSpectatorCanvas()
	called := false
	board.OnFrame = func(state.Frame) { called = true }

	board.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	assert.False(t, called)
	assert.Empty(t, board.Frame().Dots)

	board.ShowFrame(state.Frame{Dots: []state.Dot{{X: 1, Y: 1, Radius: 50}}})
	assert.Len(t, board.Frame().Dots, 1)
	assert.Equal(t, "1 dots, 0 selected | spectating", board.StatusBar().Text)
}
