package storage

import (
	"database/sql"
	"fmt"
)

// schemaStatements creates the room content tables. Bodies are stored
// gzip-compressed; checksum detects unchanged files during re-import.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		room_id    TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		checksum   TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_updated_at ON rooms(updated_at)`,
}

// InitSchema creates all tables if they do not exist
func InitSchema(conn *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
