package history

import (
	"time"

	"github.com/google/uuid"
)

// Export is one completed export artifact.
type Export struct {
	ID         string
	ChatName   string
	IsGroup    bool
	Format     string
	Path       string
	EventCount int
	SizeBytes  int64
	ExportedAt int64 // unix millis
}

// Record inserts an export record, assigning an id if empty.
func (db *DB) Record(e *Export) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ExportedAt == 0 {
		e.ExportedAt = time.Now().UnixMilli()
	}
	_, err := db.Exec(`
		INSERT INTO exports (id, chat_name, is_group, format, path, event_count, size_bytes, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ChatName, e.IsGroup, e.Format, e.Path, e.EventCount, e.SizeBytes, e.ExportedAt)
	return err
}

// List returns the most recent exports, newest first.
func (db *DB) List(limit int) ([]Export, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT id, chat_name, is_group, format, path, event_count, size_bytes, exported_at
		FROM exports
		ORDER BY exported_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var exports []Export
	for rows.Next() {
		var e Export
		if err := rows.Scan(&e.ID, &e.ChatName, &e.IsGroup, &e.Format, &e.Path, &e.EventCount, &e.SizeBytes, &e.ExportedAt); err != nil {
			return nil, err
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}
