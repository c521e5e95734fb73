package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anuj452005/excalidraw/internal/domain"
)

// PageStore implements domain.PageStore over the relational store.
type PageStore struct {
	db *DB
}

func NewPageStore(db *DB) *PageStore {
	return &PageStore{db: db}
}

func (s *PageStore) CreatePage(p *domain.Page) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.db.exec(
		`INSERT INTO pages (id, user_id, folder_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.FolderID, p.Title, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (s *PageStore) GetPage(id string) (*domain.Page, error) {
	p := &domain.Page{}
	err := s.db.queryRow(
		`SELECT id, user_id, folder_id, title, created_at, updated_at FROM pages WHERE id = ?`, id,
	).Scan(&p.ID, &p.UserID, &p.FolderID, &p.Title, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	return p, nil
}

func (s *PageStore) ListPages(userID string) ([]domain.Page, error) {
	rows, err := s.db.query(
		`SELECT id, user_id, folder_id, title, created_at, updated_at FROM pages WHERE user_id = ? ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []domain.Page
	for rows.Next() {
		var p domain.Page
		if err := rows.Scan(&p.ID, &p.UserID, &p.FolderID, &p.Title, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (s *PageStore) UpdatePage(p *domain.Page) error {
	p.UpdatedAt = time.Now()
	res, err := s.db.exec(
		`UPDATE pages SET folder_id = ?, title = ?, updated_at = ? WHERE id = ?`,
		p.FolderID, p.Title, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PageStore) DeletePage(id string) error {
	_, err := s.db.exec(`DELETE FROM pages WHERE id = ?`, id)
	return err
}

// ── Folders ────────────────────────────────────────────────

func (s *PageStore) CreateFolder(f *domain.Folder) error {
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now
	_, err := s.db.exec(
		`INSERT INTO folders (id, user_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		f.ID, f.UserID, f.Name, f.CreatedAt, f.UpdatedAt,
	)
	return err
}

func (s *PageStore) GetFolder(id string) (*domain.Folder, error) {
	f := &domain.Folder{}
	err := s.db.queryRow(
		`SELECT id, user_id, name, created_at, updated_at FROM folders WHERE id = ?`, id,
	).Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return f, nil
}

func (s *PageStore) ListFolders(userID string) ([]domain.Folder, error) {
	rows, err := s.db.query(
		`SELECT id, user_id, name, created_at, updated_at FROM folders WHERE user_id = ? ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []domain.Folder
	for rows.Next() {
		var f domain.Folder
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (s *PageStore) UpdateFolder(f *domain.Folder) error {
	f.UpdatedAt = time.Now()
	res, err := s.db.exec(
		`UPDATE folders SET name = ?, updated_at = ? WHERE id = ?`,
		f.Name, f.UpdatedAt, f.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteFolder removes the folder; pages inside keep existing but lose the
// folder reference.
func (s *PageStore) DeleteFolder(id string) error {
	if _, err := s.db.exec(`UPDATE pages SET folder_id = '' WHERE folder_id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.exec(`DELETE FROM folders WHERE id = ?`, id)
	return err
}
