package session

import (
	"context"
	"encoding/json"

	"github.com/anuj452005/excalidraw/internal/domain"
)

// CreateBlockInput is the request for creating a block. The server assigns
// the identifier.
type CreateBlockInput struct {
	PageID     string           `json:"pageId"`
	Type       domain.BlockType `json:"type"`
	Content    json.RawMessage  `json:"content"`
	OrderIndex int              `json:"orderIndex"`
}

// BlockPatch is a partial block update. Nil fields are left untouched.
type BlockPatch struct {
	Content    json.RawMessage   `json:"content,omitempty"`
	OrderIndex *int              `json:"orderIndex,omitempty"`
	Type       *domain.BlockType `json:"type,omitempty"`
}

// API is the CRUD surface the controller talks to. internal/client provides
// the HTTP implementation; tests substitute a recording fake.
type API interface {
	GetPage(ctx context.Context, id string) (*domain.PageState, error)
	UpdatePage(ctx context.Context, id, title string) (*domain.Page, error)
	CreateBlock(ctx context.Context, in CreateBlockInput) (*domain.Block, error)
	UpdateBlock(ctx context.Context, id string, patch BlockPatch) (*domain.Block, error)
	DeleteBlock(ctx context.Context, id string) error
}
