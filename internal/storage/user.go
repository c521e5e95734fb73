package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anuj452005/excalidraw/internal/domain"
)

// UserStore implements domain.UserStore over the relational store.
type UserStore struct {
	db *DB
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateUser(u *domain.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.db.exec(
		`INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (s *UserStore) GetUser(id string) (*domain.User, error) {
	return s.scanUser(s.db.queryRow(
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = ?`, id,
	))
}

func (s *UserStore) GetUserByEmail(email string) (*domain.User, error) {
	return s.scanUser(s.db.queryRow(
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = ?`, email,
	))
}

func (s *UserStore) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
