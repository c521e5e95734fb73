package domain

import "encoding/json"

// Position is the canvas rectangle stored inside a block's content payload.
// It is injected by the canvas layer; block editors treat it as opaque.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextContent is the payload of a text block.
type TextContent struct {
	Text     string    `json:"text"`
	Position *Position `json:"position,omitempty"`
}

// CodeContent is the payload of a code block.
type CodeContent struct {
	Code     string    `json:"code"`
	Language string    `json:"language"`
	Output   string    `json:"output,omitempty"`
	Position *Position `json:"position,omitempty"`
}

// DrawingContent is the payload of a drawing block. Data is a serialized
// vector-drawing document (see internal/drawing).
type DrawingContent struct {
	Data     string    `json:"data,omitempty"`
	Position *Position `json:"position,omitempty"`
}

// ImageContent is the payload of an image block. URL points at the remote
// host; LocalData is the inline-encoded fallback kept when upload fails.
type ImageContent struct {
	URL       string    `json:"url,omitempty"`
	LocalData string    `json:"localData,omitempty"`
	Position  *Position `json:"position,omitempty"`
}

// DefaultContent returns the initial payload for a new block of the given type.
func DefaultContent(t BlockType) json.RawMessage {
	var v any
	switch t {
	case BlockTypeText:
		v = TextContent{}
	case BlockTypeCode:
		v = CodeContent{Language: "javascript"}
	case BlockTypeDrawing:
		v = DrawingContent{}
	case BlockTypeImage:
		v = ImageContent{}
	default:
		return json.RawMessage(`{}`)
	}
	raw, _ := json.Marshal(v)
	return raw
}

// ContentPosition extracts the position sub-record from a raw content
// payload, or nil when unset.
func ContentPosition(content json.RawMessage) *Position {
	var probe struct {
		Position *Position `json:"position"`
	}
	if err := json.Unmarshal(content, &probe); err != nil {
		return nil
	}
	return probe.Position
}

// MergeContent shallow-merges partial over base: top-level keys present in
// partial replace those in base, everything else is preserved. Both inputs
// must be JSON objects; invalid base is treated as empty.
func MergeContent(base, partial json.RawMessage) json.RawMessage {
	merged := map[string]json.RawMessage{}
	if len(base) > 0 {
		json.Unmarshal(base, &merged)
	}
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(partial, &patch); err != nil {
		return base
	}
	for k, v := range patch {
		merged[k] = v
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return base
	}
	return out
}
