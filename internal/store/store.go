// Package store provides Postgres persistence for users, vault
// documents, research projects and interest profiles.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/omnimind-research/omnimind/config"
)

type Store struct {
	DB *sql.DB
}

// New constructs the Store from configuration.
func New(ctx context.Context, cfg config.PostgresConfig) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithDSN(ctx, cfg.DSN())
}

// NewWithDSN constructs the Store using an explicit Postgres DSN.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// User operations

func (s *Store) CreateUser(ctx context.Context, email, username, hash string) (string, error) {
	var id string
	err := s.DB.QueryRowContext(ctx, `INSERT INTO users (email, username, password_hash) VALUES ($1,$2,$3) RETURNING id`, email, username, hash).Scan(&id)
	return id, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (id string, hash string, err error) {
	err = s.DB.QueryRowContext(ctx, `SELECT id, password_hash FROM users WHERE email=$1`, email).Scan(&id, &hash)
	return
}

// Document operations

type Document struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
	IsEncrypted bool      `json:"is_encrypted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Store) CreateDocument(ctx context.Context, userID, title, content string, tags []string, encrypted bool) (Document, error) {
	d := Document{UserID: userID, Title: title, Content: content, Tags: tags, IsEncrypted: encrypted}
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO documents (user_id, title, content, tags, is_encrypted) VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at, updated_at`,
		userID, title, content, pq.Array(tags), encrypted).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (s *Store) ListDocuments(ctx context.Context, userID string) ([]Document, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, title, content, tags, is_encrypted, created_at, updated_at FROM documents WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.Content, pq.Array(&d.Tags), &d.IsEncrypted, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) GetDocument(ctx context.Context, id, userID string) (Document, error) {
	var d Document
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, tags, is_encrypted, created_at, updated_at FROM documents WHERE id=$1 AND user_id=$2`, id, userID).
		Scan(&d.ID, &d.UserID, &d.Title, &d.Content, pq.Array(&d.Tags), &d.IsEncrypted, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// Project operations

type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Store) CreateProject(ctx context.Context, userID, title, description, category string) (Project, error) {
	p := Project{UserID: userID, Title: title, Description: description, Category: category}
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO projects (user_id, title, description, category) VALUES ($1,$2,$3,$4) RETURNING id, created_at`,
		userID, title, description, category).Scan(&p.ID, &p.CreatedAt)
	return p, err
}

func (s *Store) ListProjects(ctx context.Context, userID string) ([]Project, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, title, description, category, created_at FROM projects WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Category, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Interest operations back the personalized news feed.

func (s *Store) AddInterest(ctx context.Context, userID, topic string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO user_interests (user_id, topic) VALUES ($1,$2) ON CONFLICT (user_id, topic) DO NOTHING`, userID, topic)
	return err
}

func (s *Store) ListInterests(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT topic FROM user_interests WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, err
		}
		out = append(out, topic)
	}
	return out, rows.Err()
}
