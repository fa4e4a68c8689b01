package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/foodfetch/storefront/internal/dal/postgres"
)

// KVRepository implements the key-value bridge over the session_state table.
type KVRepository struct {
	client *postgres.Client
}

// NewKVRepository creates a new Postgres-backed key-value repository.
func NewKVRepository(client *postgres.Client) *KVRepository {
	return &KVRepository{
		client: client,
	}
}

// Read decodes the value stored under key into out. Missing and corrupt values
// read as absent; corrupt values are removed so the failure does not repeat.
func (r *KVRepository) Read(ctx context.Context, key string, out any) bool {
	query, args, err := sq.Select("value").
		From("session_state").
		Where(sq.Eq{"key": key}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		slog.Error("Failed to build session state select query", "key", key, "error", err)

		return false
	}

	var raw []byte
	if err := r.client.Pool().QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			slog.Error("Failed to read session state", "key", key, "error", err)
		}

		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		slog.Warn("Corrupt session state value, clearing", "key", key, "error", err)
		if err := r.Remove(ctx, key); err != nil {
			slog.Error("Failed to clear corrupt session state", "key", key, "error", err)
		}

		return false
	}

	return true
}

// Write stores the JSON encoding of value under key.
func (r *KVRepository) Write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode session state value: %w", err)
	}

	query, args, err := sq.Insert("session_state").
		Columns("key", "value", "updated_at").
		Values(key, raw, time.Now()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build session state upsert query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}

	return nil
}

// Remove deletes the value stored under key.
func (r *KVRepository) Remove(ctx context.Context, key string) error {
	query, args, err := sq.Delete("session_state").
		Where(sq.Eq{"key": key}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build session state delete query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to remove session state: %w", err)
	}

	return nil
}
