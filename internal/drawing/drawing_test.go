package drawing

import "testing"

func TestDecodeEmpty(t *testing.T) {
	doc, err := Decode("")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Strokes) != 0 {
		t.Fatalf("empty data decoded to %d strokes", len(doc.Strokes))
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode("{nope"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := &Document{Strokes: []Stroke{{
		ID:     "s1",
		Color:  "#fff",
		Width:  2,
		Points: []Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
	}}}
	back, err := Decode(doc.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Strokes) != 1 || back.Strokes[0].Points[1].X != 3 {
		t.Fatalf("round trip lost data: %+v", back)
	}
}

func TestBounds(t *testing.T) {
	doc := &Document{Strokes: []Stroke{
		{Points: []Point{{X: 10, Y: 50}, {X: -5, Y: 8}}},
		{Points: []Point{{X: 30, Y: 12}}},
	}}
	minX, minY, maxX, maxY, ok := doc.Bounds()
	if !ok {
		t.Fatal("bounds reported empty")
	}
	if minX != -5 || minY != 8 || maxX != 30 || maxY != 50 {
		t.Fatalf("bounds = (%v,%v)-(%v,%v)", minX, minY, maxX, maxY)
	}

	if _, _, _, _, ok := (&Document{}).Bounds(); ok {
		t.Fatal("empty document reported bounds")
	}
}
