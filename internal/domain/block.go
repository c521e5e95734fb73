package domain

import (
	"encoding/json"
	"time"
)

type BlockType string

const (
	BlockTypeText    BlockType = "text"
	BlockTypeCode    BlockType = "code"
	BlockTypeDrawing BlockType = "drawing"
	BlockTypeImage   BlockType = "image"
)

// ValidBlockType reports whether t is one of the four supported block kinds.
func ValidBlockType(t BlockType) bool {
	switch t {
	case BlockTypeText, BlockTypeCode, BlockTypeDrawing, BlockTypeImage:
		return true
	}
	return false
}

type Block struct {
	ID         string          `json:"id"`
	PageID     string          `json:"pageId"`
	Type       BlockType       `json:"type"`
	OrderIndex int             `json:"orderIndex"`
	Content    json.RawMessage `json:"content"` // type-specific payload, may carry a position sub-record
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type BlockStore interface {
	CreateBlock(b *Block) error
	GetBlock(id string) (*Block, error)
	ListBlocks(pageID string) ([]Block, error)
	UpdateBlock(b *Block) error
	DeleteBlock(id string) error
	DeleteBlocksByPage(pageID string) error
	DeleteOrphanBlocks() (int64, error)
}
