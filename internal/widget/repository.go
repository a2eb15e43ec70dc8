package widget

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository is the SQLite-backed Store implementation.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// GetWidgetData returns the stored JSON value, or nil when absent.
func (r *Repository) GetWidgetData(ctx context.Context, memberID, widgetKey string) (json.RawMessage, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM widget_data WHERE member_id = ? AND widget_key = ?`,
		memberID, widgetKey).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get widget data %s/%s: %w", memberID, widgetKey, err)
	}
	return json.RawMessage(data), nil
}

// SetWidgetData serializes value and upserts it under the member/widget key.
func (r *Repository) SetWidgetData(ctx context.Context, memberID, widgetKey string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal widget data: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO widget_data (member_id, widget_key, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (member_id, widget_key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		memberID, widgetKey, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set widget data %s/%s: %w", memberID, widgetKey, err)
	}
	return nil
}
