package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

type WindowOptions struct {
	Title         string
	Width, Height float32
}

// RunApp shows board in a new window and blocks until it is closed. Hosts
// get the toolbar; spectators only get the canvas and status bar.
func RunApp(opts WindowOptions, board *DotCanvas) {
	myApp := app.New()
	myWindow := myApp.NewWindow(opts.Title)
	myWindow.Resize(fyne.NewSize(opts.Width, opts.Height))

	var toolbar fyne.CanvasObject
	if board.Interactive() {
		toolbar = NewToolbar(board, myWindow)
	}

	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, board)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
