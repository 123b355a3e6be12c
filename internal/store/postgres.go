package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/explainit/backend/internal/game"
)

// PostgresStore persists rooms as one JSON document per code, matching the
// rooms(code, room_data, updated_at) table the hosted deployment uses.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects, verifies the connection, and ensures the
// rooms table exists.
func NewPostgresStore(ctx context.Context, url string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS rooms (
			code TEXT PRIMARY KEY,
			room_data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure rooms table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, code string) (*game.Room, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT room_data FROM rooms WHERE code = $1`, code,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get: %w", err)
	}
	var room game.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("postgres get: decode room %s: %w", code, err)
	}
	return &room, nil
}

func (s *PostgresStore) Set(ctx context.Context, code string, room *game.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("postgres set: encode room %s: %w", code, err)
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO rooms (code, room_data, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (code) DO UPDATE SET room_data = $2, updated_at = NOW()
	`, code, data); err != nil {
		return fmt.Errorf("postgres set: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, code string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE code = $1`, code); err != nil {
		return fmt.Errorf("postgres delete: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
