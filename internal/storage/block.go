package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anuj452005/excalidraw/internal/domain"
)

// BlockStore implements domain.BlockStore over the relational store.
type BlockStore struct {
	db *DB
}

func NewBlockStore(db *DB) *BlockStore {
	return &BlockStore{db: db}
}

func (s *BlockStore) CreateBlock(b *domain.Block) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	_, err := s.db.exec(
		`INSERT INTO blocks (id, page_id, type, order_index, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.PageID, b.Type, b.OrderIndex, string(b.Content), b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (s *BlockStore) GetBlock(id string) (*domain.Block, error) {
	b := &domain.Block{}
	var content string
	err := s.db.queryRow(
		`SELECT id, page_id, type, order_index, content, created_at, updated_at FROM blocks WHERE id = ?`, id,
	).Scan(&b.ID, &b.PageID, &b.Type, &b.OrderIndex, &content, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get block: %w", err)
	}
	b.Content = []byte(content)
	return b, nil
}

func (s *BlockStore) ListBlocks(pageID string) ([]domain.Block, error) {
	rows, err := s.db.query(
		`SELECT id, page_id, type, order_index, content, created_at, updated_at FROM blocks WHERE page_id = ? ORDER BY order_index ASC, created_at ASC`,
		pageID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.Block
	for rows.Next() {
		var b domain.Block
		var content string
		if err := rows.Scan(&b.ID, &b.PageID, &b.Type, &b.OrderIndex, &content, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.Content = []byte(content)
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (s *BlockStore) UpdateBlock(b *domain.Block) error {
	b.UpdatedAt = time.Now()
	res, err := s.db.exec(
		`UPDATE blocks SET type = ?, order_index = ?, content = ?, updated_at = ? WHERE id = ?`,
		b.Type, b.OrderIndex, string(b.Content), b.UpdatedAt, b.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *BlockStore) DeleteBlock(id string) error {
	res, err := s.db.exec(`DELETE FROM blocks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *BlockStore) DeleteBlocksByPage(pageID string) error {
	_, err := s.db.exec(`DELETE FROM blocks WHERE page_id = ?`, pageID)
	return err
}

// DeleteOrphanBlocks removes blocks whose page no longer exists. Page
// deletion removes blocks row by row, so a crash mid-delete can strand
// some; the nightly sweep picks them up.
func (s *BlockStore) DeleteOrphanBlocks() (int64, error) {
	res, err := s.db.exec(`DELETE FROM blocks WHERE page_id NOT IN (SELECT id FROM pages)`)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
