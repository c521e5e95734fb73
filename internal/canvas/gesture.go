package canvas

// GestureMode identifies what a pointer gesture is doing to a block.
type GestureMode string

const (
	GestureMove   GestureMode = "move"
	GestureResize GestureMode = "resize"
)

// Blocks may never shrink below this footprint.
const (
	MinBlockWidth  = 200.0
	MinBlockHeight = 100.0
)

// TargetKind classifies what a pointer-down landed on. Hit testing is the
// renderer's job; the state machine only consumes the classification.
type TargetKind string

const (
	TargetBackground   TargetKind = "background"
	TargetBlockHandle  TargetKind = "block-handle"
	TargetResizeHandle TargetKind = "resize-handle"
)

// HitTarget is the result of hit-testing a pointer-down position.
type HitTarget struct {
	Kind    TargetKind
	BlockID string
}

func Background() HitTarget            { return HitTarget{Kind: TargetBackground} }
func BlockHandle(id string) HitTarget  { return HitTarget{Kind: TargetBlockHandle, BlockID: id} }
func ResizeHandle(id string) HitTarget { return HitTarget{Kind: TargetResizeHandle, BlockID: id} }

type gestureState string

const (
	stateIdle     gestureState = "idle"
	statePanning  gestureState = "panning"
	stateDragging gestureState = "dragging"
	stateResizing gestureState = "resizing"
)

// Commit is the single persistable outcome of a drag or resize gesture,
// produced at pointer-up.
type Commit struct {
	BlockID string
	Rect    Rect
	Mode    GestureMode
}

// Gesture is the drag/resize/pan state machine. At most one gesture is
// active at a time; a gesture starting on a block handle never pans the
// canvas. All pointer coordinates are screen space.
type Gesture struct {
	vp    *Viewport
	state gestureState

	blockID      string
	startPointer Point
	startRect    Rect
	startOffsetX float64
	startOffsetY float64
	current      Rect
}

// NewGesture creates an idle gesture machine bound to a viewport.
func NewGesture(vp *Viewport) *Gesture {
	return &Gesture{vp: vp, state: stateIdle}
}

// Active reports whether a pointer button is currently held on anything.
func (g *Gesture) Active() bool {
	return g.state != stateIdle
}

// Dragging reports the block being moved or resized, if any.
func (g *Gesture) Dragging() (string, bool) {
	if g.state == stateDragging || g.state == stateResizing {
		return g.blockID, true
	}
	return "", false
}

// PointerDown starts a gesture. blockRect is the target block's rectangle at
// this instant (ignored for the background). Pointer-down on a block handle
// also selects that block, clearing any prior selection.
func (g *Gesture) PointerDown(target HitTarget, p Point, blockRect Rect) {
	if g.state != stateIdle {
		return
	}
	g.startPointer = p
	switch target.Kind {
	case TargetBackground:
		g.state = statePanning
		g.startOffsetX = g.vp.OffsetX
		g.startOffsetY = g.vp.OffsetY
		g.vp.Panning = true
	case TargetBlockHandle:
		g.state = stateDragging
		g.blockID = target.BlockID
		g.startRect = blockRect
		g.current = blockRect
		g.vp.Selected = target.BlockID
	case TargetResizeHandle:
		g.state = stateResizing
		g.blockID = target.BlockID
		g.startRect = blockRect
		g.current = blockRect
	}
}

// PointerMove advances the gesture. While panning it moves the viewport
// directly. While dragging or resizing it returns the block's candidate
// rectangle, which the caller applies to local state on every move; nothing
// is persisted until PointerUp.
func (g *Gesture) PointerMove(p Point) (Rect, bool) {
	dx := p.X - g.startPointer.X
	dy := p.Y - g.startPointer.Y

	switch g.state {
	case statePanning:
		g.vp.OffsetX = g.startOffsetX + dx
		g.vp.OffsetY = g.startOffsetY + dy
		return Rect{}, false

	case stateDragging:
		g.current = Rect{
			X:      Snap(g.startRect.X + dx/g.vp.Scale),
			Y:      Snap(g.startRect.Y + dy/g.vp.Scale),
			Width:  g.startRect.Width,
			Height: g.startRect.Height,
		}
		return g.current, true

	case stateResizing:
		w := Snap(g.startRect.Width + dx/g.vp.Scale)
		h := Snap(g.startRect.Height + dy/g.vp.Scale)
		if w < MinBlockWidth {
			w = MinBlockWidth
		}
		if h < MinBlockHeight {
			h = MinBlockHeight
		}
		g.current = Rect{X: g.startRect.X, Y: g.startRect.Y, Width: w, Height: h}
		return g.current, true
	}
	return Rect{}, false
}

// PointerUp ends the gesture and returns the commit to persist, if the
// gesture was a drag or resize. Release always commits; there is no cancel.
// Pointer-leaving-the-canvas is delivered as PointerUp too.
func (g *Gesture) PointerUp() (Commit, bool) {
	defer func() {
		g.state = stateIdle
		g.blockID = ""
		g.vp.Panning = false
	}()

	switch g.state {
	case stateDragging:
		return Commit{BlockID: g.blockID, Rect: g.current, Mode: GestureMove}, true
	case stateResizing:
		return Commit{BlockID: g.blockID, Rect: g.current, Mode: GestureResize}, true
	}
	return Commit{}, false
}
