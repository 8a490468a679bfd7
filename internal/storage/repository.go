package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"

	domerrors "github.com/mercyblade/roomhost-go/internal/errors"
)

// UpsertRoom stores a room JSON document, gzip-compressed. Returns true
// when the row was written and false when the stored checksum already
// matches, so re-imports of unchanged files are cheap.
func (db *DB) UpsertRoom(ctx context.Context, roomID string, body []byte) (bool, error) {
	sum := checksum(body)

	var existing string
	err := db.conn.QueryRowContext(ctx,
		`SELECT checksum FROM rooms WHERE room_id = ?`, roomID).Scan(&existing)
	if err == nil && existing == sum {
		return false, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to check room checksum: %w", err)
	}

	compressed, err := compress(body)
	if err != nil {
		return false, fmt.Errorf("failed to compress room body: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO rooms (room_id, body, checksum, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(room_id) DO UPDATE SET
		   body = excluded.body,
		   checksum = excluded.checksum,
		   updated_at = excluded.updated_at`,
		roomID, compressed, sum, time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("failed to upsert room %s: %w", roomID, err)
	}
	return true, nil
}

// GetRoomJSON returns a room's decompressed JSON document.
func (db *DB) GetRoomJSON(ctx context.Context, roomID string) ([]byte, error) {
	var compressed []byte
	err := db.conn.QueryRowContext(ctx,
		`SELECT body FROM rooms WHERE room_id = ?`, roomID).Scan(&compressed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domerrors.NewRoomDataError(roomID, domerrors.ErrRoomNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query room %s: %w", roomID, err)
	}

	body, err := decompress(compressed)
	if err != nil {
		return nil, domerrors.NewRoomDataError(roomID, fmt.Errorf("failed to decompress room body: %w", err))
	}
	return body, nil
}

// CountRooms returns the number of stored rooms
func (db *DB) CountRooms(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}

// ListRoomIDs returns all stored room identifiers in sorted order
func (db *DB) ListRoomIDs(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT room_id FROM rooms ORDER BY room_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan room id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}
	return ids, nil
}

// DeleteRoom removes a stored room. Missing rooms are not an error.
func (db *DB) DeleteRoom(ctx context.Context, roomID string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM rooms WHERE room_id = ?`, roomID); err != nil {
		return fmt.Errorf("failed to delete room %s: %w", roomID, err)
	}
	return nil
}

func checksum(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func compress(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(compressed []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}
