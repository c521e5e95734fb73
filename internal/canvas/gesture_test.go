package canvas

import "testing"

func TestPanGesture(t *testing.T) {
	vp := NewViewport()
	g := NewGesture(vp)

	g.PointerDown(Background(), Point{X: 10, Y: 10}, Rect{})
	if !vp.Panning {
		t.Fatal("panning flag not set")
	}
	g.PointerMove(Point{X: 60, Y: -20})
	if vp.OffsetX != 50 || vp.OffsetY != -30 {
		t.Fatalf("offset = (%v,%v), want (50,-30)", vp.OffsetX, vp.OffsetY)
	}
	if _, ok := g.PointerUp(); ok {
		t.Fatal("pan must not produce a commit")
	}
	if vp.Panning {
		t.Fatal("panning flag not cleared on release")
	}
}

func TestDragSnapsToGrid(t *testing.T) {
	vp := NewViewport()
	g := NewGesture(vp)
	start := Rect{X: 100, Y: 100, Width: 400, Height: 150}

	g.PointerDown(BlockHandle("b1"), Point{X: 0, Y: 0}, start)
	if vp.Selected != "b1" {
		t.Fatalf("selected = %q, want b1", vp.Selected)
	}
	rect, ok := g.PointerMove(Point{X: 37, Y: 12.5})
	if !ok {
		t.Fatal("drag move produced no candidate rect")
	}
	if rect.X != 140 || rect.Y != 120 {
		t.Fatalf("candidate = (%v,%v), want (140,120)", rect.X, rect.Y)
	}
	if rect.Width != 400 || rect.Height != 150 {
		t.Fatalf("drag changed size to %v×%v", rect.Width, rect.Height)
	}

	commit, ok := g.PointerUp()
	if !ok || commit.Mode != GestureMove || commit.BlockID != "b1" {
		t.Fatalf("commit = %+v ok=%v", commit, ok)
	}
	if commit.Rect != rect {
		t.Fatalf("commit rect %+v != last candidate %+v", commit.Rect, rect)
	}
}

func TestDragCompensatesForScale(t *testing.T) {
	vp := NewViewport()
	vp.Zoom(0.5)
	g := NewGesture(vp)

	g.PointerDown(BlockHandle("b1"), Point{X: 0, Y: 0}, Rect{X: 0, Y: 0, Width: 400, Height: 150})
	rect, _ := g.PointerMove(Point{X: 50, Y: 0})
	// 50 screen px at half zoom is 100 canvas units.
	if rect.X != 100 {
		t.Fatalf("rect.X = %v, want 100", rect.X)
	}
	g.PointerUp()
}

func TestResizeFloor(t *testing.T) {
	vp := NewViewport()
	g := NewGesture(vp)

	g.PointerDown(ResizeHandle("b1"), Point{X: 0, Y: 0}, Rect{X: 40, Y: 40, Width: 220, Height: 120})
	rect, _ := g.PointerMove(Point{X: -500, Y: -500})
	if rect.Width != MinBlockWidth || rect.Height != MinBlockHeight {
		t.Fatalf("rect = %v×%v, want floor %v×%v", rect.Width, rect.Height, MinBlockWidth, MinBlockHeight)
	}
	if rect.X != 40 || rect.Y != 40 {
		t.Fatalf("resize moved origin to (%v,%v)", rect.X, rect.Y)
	}
	commit, ok := g.PointerUp()
	if !ok || commit.Mode != GestureResize {
		t.Fatalf("commit = %+v ok=%v", commit, ok)
	}
}

func TestSecondPointerDownIgnored(t *testing.T) {
	vp := NewViewport()
	g := NewGesture(vp)

	g.PointerDown(BlockHandle("b1"), Point{}, Rect{Width: 400, Height: 150})
	g.PointerDown(Background(), Point{}, Rect{})
	if id, ok := g.Dragging(); !ok || id != "b1" {
		t.Fatalf("gesture hijacked: dragging=%q ok=%v", id, ok)
	}
	if vp.Panning {
		t.Fatal("background down during drag must not start a pan")
	}
	g.PointerUp()
}

func TestReleaseWhenIdle(t *testing.T) {
	g := NewGesture(NewViewport())
	if _, ok := g.PointerUp(); ok {
		t.Fatal("idle release produced a commit")
	}
}
