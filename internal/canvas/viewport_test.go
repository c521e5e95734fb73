package canvas

import "testing"

func TestZoomClamps(t *testing.T) {
	vp := NewViewport()
	for i := 0; i < 20; i++ {
		vp.Zoom(1.5)
	}
	if vp.Scale != MaxScale {
		t.Fatalf("scale = %v, want clamp at %v", vp.Scale, MaxScale)
	}
	for i := 0; i < 40; i++ {
		vp.Zoom(0.5)
	}
	if vp.Scale != MinScale {
		t.Fatalf("scale = %v, want clamp at %v", vp.Scale, MinScale)
	}
}

func TestZoomKeepsOffset(t *testing.T) {
	vp := NewViewport()
	vp.Pan(120, -40)
	vp.Zoom(0.5)
	if vp.OffsetX != 120 || vp.OffsetY != -40 {
		t.Fatalf("zoom moved offset to (%v,%v)", vp.OffsetX, vp.OffsetY)
	}
}

func TestToCanvasSpace(t *testing.T) {
	vp := NewViewport()
	vp.Pan(100, 50)
	vp.Zoom(0.5)
	got := vp.ToCanvasSpace(Point{X: 300, Y: 250})
	if got.X != 400 || got.Y != 400 {
		t.Fatalf("ToCanvasSpace = %+v, want (400,400)", got)
	}
}

func TestCenterRect(t *testing.T) {
	vp := NewViewport()
	got := vp.CenterRect(800, 600, 400, 150)
	want := Rect{X: 200, Y: 220, Width: 400, Height: 150}
	if got != want {
		t.Fatalf("CenterRect = %+v, want %+v", got, want)
	}
}

func TestCenterRectFollowsPan(t *testing.T) {
	vp := NewViewport()
	vp.Pan(-400, 0)
	got := vp.CenterRect(800, 600, 400, 150)
	if got.X != 600 {
		t.Fatalf("panned CenterRect.X = %v, want 600", got.X)
	}
}

func TestReset(t *testing.T) {
	vp := NewViewport()
	vp.Pan(33, 44)
	vp.Zoom(0.5)
	vp.Reset()
	if vp.Scale != 1 || vp.OffsetX != 0 || vp.OffsetY != 0 {
		t.Fatalf("reset left viewport at scale %v offset (%v,%v)", vp.Scale, vp.OffsetX, vp.OffsetY)
	}
}
