package ui

import (
	"fmt"
	"log"

	"DotWorld/internal/export"
	"DotWorld/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// showExportDialog asks for a destination and writes the current frame there
// as a PDF.
func showExportDialog(board *DotCanvas, win fyne.Window) {
	frame := board.Frame()
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			log.Printf("[EXPORT] Save dialog: %v", err)
			board.SetStatus("Export failed")
			return
		}
		if writer == nil {
			return
		}
		saveFrame(board, writer, frame)
	}, win)
	save.SetFileName("dots.pdf")
	save.Show()
}

func saveFrame(board *DotCanvas, writer fyne.URIWriteCloser, frame state.Frame) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[EXPORT] Closing %s: %v", writer.URI(), err)
		}
	}()

	if err := export.WritePDF(writer, frame); err != nil {
		log.Printf("[EXPORT] Writing %s: %v", writer.URI(), err)
		board.SetStatus("Export failed")
		return
	}
	log.Printf("[EXPORT] Wrote %d dots to %s", len(frame.Dots), writer.URI())
	board.SetStatus(fmt.Sprintf("Exported %d dots to %s", len(frame.Dots), writer.URI().Name()))
}
