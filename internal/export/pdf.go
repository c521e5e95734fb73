package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/anuj452005/excalidraw/internal/canvas"
	"github.com/anuj452005/excalidraw/internal/domain"
	"github.com/anuj452005/excalidraw/internal/drawing"
)

// Canvas units to millimetres. A3 landscape is 420mm wide; the default
// 3-column tiling spans ~1450 canvas units.
const scale = 0.25

// PageToPDF renders a page's blocks at their canvas rectangles into a PDF.
// Blocks use the same position-derivation fallback as the editor, so an
// export of a never-arranged page shows the 3-column grid.
func PageToPDF(state *domain.PageState) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A3", "")
	pdf.AddPage()
	pdf.SetTitle(state.Page.Title, true)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(10, 12, state.Page.Title)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.3)

	for i := range state.Blocks {
		b := &state.Blocks[i]
		r := canvas.DerivePosition(b)
		x, y := r.X*scale, r.Y*scale
		w, h := r.Width*scale, r.Height*scale
		pdf.Rect(x, y, w, h, "D")

		switch b.Type {
		case domain.BlockTypeText:
			var content domain.TextContent
			json.Unmarshal(b.Content, &content)
			drawText(pdf, x, y, w, content.Text, "Helvetica")
		case domain.BlockTypeCode:
			var content domain.CodeContent
			json.Unmarshal(b.Content, &content)
			drawText(pdf, x, y, w, content.Code, "Courier")
		case domain.BlockTypeDrawing:
			var content domain.DrawingContent
			json.Unmarshal(b.Content, &content)
			drawStrokes(pdf, x, y, content.Data)
		case domain.BlockTypeImage:
			var content domain.ImageContent
			json.Unmarshal(b.Content, &content)
			if content.URL != "" {
				drawText(pdf, x, y, w, content.URL, "Helvetica")
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(pdf *gofpdf.Fpdf, x, y, w float64, text, font string) {
	if text == "" {
		return
	}
	pdf.SetFont(font, "", 8)
	pdf.SetXY(x+1, y+1)
	pdf.MultiCell(w-2, 3.5, text, "", "L", false)
}

func drawStrokes(pdf *gofpdf.Fpdf, x, y float64, data string) {
	doc, err := drawing.Decode(data)
	if err != nil {
		return
	}
	for _, s := range doc.Strokes {
		for i := 1; i < len(s.Points); i++ {
			pdf.Line(
				x+s.Points[i-1].X*scale, y+s.Points[i-1].Y*scale,
				x+s.Points[i].X*scale, y+s.Points[i].Y*scale,
			)
		}
	}
}
