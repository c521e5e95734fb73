package drawing

import (
	"encoding/json"
	"fmt"
)

// Point is one sample of a freehand stroke, in block-local coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is a single freehand path.
type Stroke struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
}

// Document is the vector-drawing payload serialized into a drawing block's
// content data field.
type Document struct {
	Strokes []Stroke `json:"strokes"`
}

// Decode parses a serialized drawing document. Empty data is an empty
// document, not an error.
func Decode(data string) (*Document, error) {
	if data == "" {
		return &Document{}, nil
	}
	var doc Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decode drawing: %w", err)
	}
	return &doc, nil
}

// Encode serializes the document.
func (d *Document) Encode() string {
	raw, _ := json.Marshal(d)
	return string(raw)
}

// Bounds returns the bounding box of all strokes. ok is false for an empty
// document.
func (d *Document) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	for _, s := range d.Strokes {
		for _, p := range s.Points {
			if !ok {
				minX, minY, maxX, maxY = p.X, p.Y, p.X, p.Y
				ok = true
				continue
			}
			if p.X < minX {
				minX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	return
}
