package canvas

import (
	"math"

	"github.com/anuj452005/excalidraw/internal/domain"
)

const (
	GridSize = 20.0 // matches frontend grid snapping

	// Fallback tiling for blocks that have never been placed: a 3-column
	// grid in creation order.
	tileOriginX = 100.0
	tileOriginY = 100.0
	tileStepX   = 450.0
	tileStepY   = 280.0
	tileColumns = 3
)

// Rect is an axis-aligned block rectangle in canvas space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Snap rounds v to the nearest grid point.
func Snap(v float64) float64 {
	return math.Round(v/GridSize) * GridSize
}

// DefaultSize returns the initial dimensions for a block of the given type.
func DefaultSize(t domain.BlockType) (w, h float64) {
	switch t {
	case domain.BlockTypeCode:
		return 500, 350
	case domain.BlockTypeDrawing:
		return 600, 400
	case domain.BlockTypeImage:
		return 400, 300
	default: // text
		return 400, 150
	}
}

// DerivePosition returns the block's on-canvas rectangle. A position stored
// in the content payload is returned verbatim; otherwise the rectangle is a
// grid-tiled default computed from the order index. The default is a
// one-time fallback: once a position is stored it permanently shadows it.
func DerivePosition(b *domain.Block) Rect {
	if pos := domain.ContentPosition(b.Content); pos != nil {
		return Rect{X: pos.X, Y: pos.Y, Width: pos.Width, Height: pos.Height}
	}
	w, h := DefaultSize(b.Type)
	col := b.OrderIndex % tileColumns
	row := b.OrderIndex / tileColumns
	return Rect{
		X:      tileOriginX + float64(col)*tileStepX,
		Y:      tileOriginY + float64(row)*tileStepY,
		Width:  w,
		Height: h,
	}
}
