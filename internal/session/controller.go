package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anuj452005/excalidraw/internal/canvas"
	"github.com/anuj452005/excalidraw/internal/domain"
	"github.com/anuj452005/excalidraw/internal/logger"
)

// Controller owns one open page: the block collection in local memory, the
// viewport, and the active gesture. It applies mutations optimistically and
// persists them through the API, swallowing remote failures into the log
// (delete is the exception — see DeleteBlock).
//
// All methods must be called from a single goroutine; the editor event loop
// is the only writer, matching the one-UI-thread model this state machine
// serves. Block editors never touch the collection directly — they hand
// partial content to UpdateBlockContent.
type Controller struct {
	api API

	page    *domain.Page
	blocks  []domain.Block
	vp      *canvas.Viewport
	gesture *canvas.Gesture

	// generation guards against a response for a previous page being
	// applied after the user navigated on.
	generation int

	// onUnloadable routes the user away from the editor when a page fails
	// to load.
	onUnloadable func(pageID string, err error)

	journal []Command
}

// New creates a controller over the given API. onUnloadable may be nil.
func New(api API, onUnloadable func(pageID string, err error)) *Controller {
	vp := canvas.NewViewport()
	return &Controller{
		api:          api,
		vp:           vp,
		gesture:      canvas.NewGesture(vp),
		onUnloadable: onUnloadable,
	}
}

// Viewport exposes the pan/zoom state for the renderer.
func (c *Controller) Viewport() *canvas.Viewport { return c.vp }

// Page returns the loaded page, or nil before Load succeeds.
func (c *Controller) Page() *domain.Page { return c.page }

// Blocks returns the local block collection in order index order.
func (c *Controller) Blocks() []domain.Block { return c.blocks }

// BlockRect returns the effective canvas rectangle of a local block.
func (c *Controller) BlockRect(id string) (canvas.Rect, bool) {
	b := c.find(id)
	if b == nil {
		return canvas.Rect{}, false
	}
	return canvas.DerivePosition(b), true
}

// Load fetches the page and its blocks, replacing all local state. On
// failure the local state is cleared and the caller is routed away from the
// editor rather than rendering a broken view.
func (c *Controller) Load(ctx context.Context, pageID string) error {
	c.generation++
	gen := c.generation

	cmd := c.record(OpLoadPage, "", pageID)
	state, err := c.api.GetPage(ctx, pageID)
	cmd.Err = err
	if err != nil {
		logger.Error("load page failed", err, map[string]interface{}{"pageId": pageID})
		c.page = nil
		c.blocks = nil
		if c.onUnloadable != nil {
			c.onUnloadable(pageID, err)
		}
		return fmt.Errorf("load page %s: %w", pageID, err)
	}
	if gen != c.generation {
		// A newer Load started while this one was in flight; drop it.
		return nil
	}
	c.page = &state.Page
	c.blocks = state.Blocks
	c.vp.Reset()
	c.vp.Selected = ""
	return nil
}

// CreateBlock makes a new block of the given type centered in the current
// viewport (viewW×viewH is the visible canvas size in screen pixels). There
// is no optimistic insert: the block appears only once the server has
// assigned it an identifier.
func (c *Controller) CreateBlock(ctx context.Context, t domain.BlockType, viewW, viewH float64) (*domain.Block, error) {
	if c.page == nil {
		return nil, fmt.Errorf("create block: %w: no page loaded", domain.ErrValidation)
	}
	if !domain.ValidBlockType(t) {
		return nil, fmt.Errorf("create block: %w: unknown type %q", domain.ErrValidation, t)
	}

	w, h := canvas.DefaultSize(t)
	rect := c.vp.CenterRect(viewW, viewH, w, h)
	content := withPosition(domain.DefaultContent(t), rect)

	in := CreateBlockInput{
		PageID:     c.page.ID,
		Type:       t,
		Content:    content,
		OrderIndex: len(c.blocks),
	}
	gen := c.generation
	cmd := c.record(OpCreateBlock, "", in)
	created, err := c.api.CreateBlock(ctx, in)
	cmd.Err = err
	if err != nil {
		logger.Error("create block failed", err, map[string]interface{}{"pageId": c.page.ID, "type": string(t)})
		return nil, err
	}
	if gen != c.generation {
		return created, nil
	}
	c.blocks = append(c.blocks, *created)
	return created, nil
}

// UpdateBlockContent shallow-merges partial over the block's content, applies
// the merge locally right away, and persists. A remote failure leaves the
// optimistic local state in place — no rollback.
func (c *Controller) UpdateBlockContent(ctx context.Context, id string, partial json.RawMessage) {
	b := c.find(id)
	if b == nil {
		return
	}
	b.Content = domain.MergeContent(b.Content, partial)
	c.persistContent(ctx, id, b.Content)
}

// DeleteBlock removes the block locally first, then remotely. If the remote
// delete fails, local state is reconciled by reloading the whole page — an
// orphaned-looking deletion is worse than a flash of a reload.
func (c *Controller) DeleteBlock(ctx context.Context, id string) {
	kept := c.blocks[:0]
	for _, b := range c.blocks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	c.blocks = kept
	if c.vp.Selected == id {
		c.vp.Selected = ""
	}

	gen := c.generation
	cmd := c.record(OpDeleteBlock, id, nil)
	err := c.api.DeleteBlock(ctx, id)
	cmd.Err = err
	if err == nil || gen != c.generation || c.page == nil {
		return
	}
	logger.Error("delete block failed, reloading page", err, map[string]interface{}{"blockId": id})
	reload := c.record(OpLoadPage, "", c.page.ID)
	state, rerr := c.api.GetPage(ctx, c.page.ID)
	reload.Err = rerr
	if rerr != nil {
		logger.Error("reload after failed delete failed", rerr, map[string]interface{}{"pageId": c.page.ID})
		return
	}
	if gen != c.generation {
		return
	}
	c.page = &state.Page
	c.blocks = state.Blocks
}

// RenameTitle persists a new page title. Empty or whitespace-only input is a
// no-op. The rename is not optimistic: local state changes only after the
// server confirms.
func (c *Controller) RenameTitle(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" || c.page == nil {
		return nil
	}
	gen := c.generation
	cmd := c.record(OpRenamePage, "", title)
	updated, err := c.api.UpdatePage(ctx, c.page.ID, title)
	cmd.Err = err
	if err != nil {
		logger.Error("rename page failed", err, map[string]interface{}{"pageId": c.page.ID})
		return err
	}
	if gen == c.generation {
		c.page.Title = updated.Title
	}
	return nil
}

// ── Gestures ───────────────────────────────────────────────

// PointerDown feeds a classified pointer-down into the gesture machine.
func (c *Controller) PointerDown(target canvas.HitTarget, p canvas.Point) {
	rect, _ := c.BlockRect(target.BlockID)
	c.gesture.PointerDown(target, p, rect)
}

// PointerMove advances the active gesture. Candidate rectangles are applied
// to local state on every move so the block follows the cursor; nothing is
// persisted until PointerUp.
func (c *Controller) PointerMove(p canvas.Point) {
	rect, ok := c.gesture.PointerMove(p)
	if !ok {
		return
	}
	if id, dragging := c.gesture.Dragging(); dragging {
		if b := c.find(id); b != nil {
			b.Content = withPosition(b.Content, rect)
		}
	}
}

// PointerUp ends the gesture and persists its outcome in a single request.
// If the block vanished locally mid-gesture, the persist is a no-op.
func (c *Controller) PointerUp(ctx context.Context) {
	commit, ok := c.gesture.PointerUp()
	if !ok {
		return
	}
	b := c.find(commit.BlockID)
	if b == nil {
		return
	}
	b.Content = withPosition(b.Content, commit.Rect)
	c.persistContent(ctx, commit.BlockID, b.Content)
}

// ── helpers ────────────────────────────────────────────────

func (c *Controller) find(id string) *domain.Block {
	for i := range c.blocks {
		if c.blocks[i].ID == id {
			return &c.blocks[i]
		}
	}
	return nil
}

// persistContent fires one update request; failures are logged and swallowed.
func (c *Controller) persistContent(ctx context.Context, id string, content json.RawMessage) {
	cmd := c.record(OpUpdateBlock, id, content)
	_, err := c.api.UpdateBlock(ctx, id, BlockPatch{Content: content})
	cmd.Err = err
	if err != nil {
		logger.Error("update block failed", err, map[string]interface{}{"blockId": id})
	}
}

// withPosition merges the rectangle into the content payload's position
// sub-record, leaving every other field alone. The controller owns this
// merge; block editors never see the position field.
func withPosition(content json.RawMessage, r canvas.Rect) json.RawMessage {
	patch, _ := json.Marshal(map[string]any{"position": domain.Position{
		X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
	}})
	return domain.MergeContent(content, patch)
}
