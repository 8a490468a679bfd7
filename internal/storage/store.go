package storage

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	domerrors "github.com/mercyblade/roomhost-go/internal/errors"
	"github.com/mercyblade/roomhost-go/internal/room"
)

// StoreMetrics records room store cache and load activity. Optional; a
// nil recorder disables recording.
type StoreMetrics interface {
	RecordRoomCacheHit()
	RecordRoomCacheMiss()
	RecordRoomLoad(status string)
}

// RoomStore serves parsed rooms from the database through an LRU cache.
// Parsed rooms are immutable, so cached values are shared between
// concurrent requests without copying.
type RoomStore struct {
	db      *DB
	cache   *lru.Cache[string, *room.Room]
	metrics StoreMetrics
}

// NewRoomStore creates a RoomStore with the given cache capacity.
func NewRoomStore(db *DB, cacheSize int, metrics StoreMetrics) (*RoomStore, error) {
	cache, err := lru.New[string, *room.Room](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create room cache: %w", err)
	}
	return &RoomStore{db: db, cache: cache, metrics: metrics}, nil
}

// GetRoom returns the parsed room, loading and caching it on first use.
func (s *RoomStore) GetRoom(ctx context.Context, roomID string) (*room.Room, error) {
	if rm, ok := s.cache.Get(roomID); ok {
		s.recordHit()
		return rm, nil
	}
	s.recordMiss()

	body, err := s.db.GetRoomJSON(ctx, roomID)
	if err != nil {
		if errors.Is(err, domerrors.ErrRoomNotFound) {
			s.recordLoad("not_found")
		} else {
			s.recordLoad("error")
		}
		return nil, err
	}

	rm, err := room.Parse(roomID, body)
	if err != nil {
		s.recordLoad("error")
		return nil, err
	}

	s.cache.Add(roomID, rm)
	s.recordLoad("success")
	return rm, nil
}

// Invalidate drops a room from the cache, forcing a reload on next use.
// Called after re-import writes a changed body.
func (s *RoomStore) Invalidate(roomID string) {
	s.cache.Remove(roomID)
}

// Purge empties the whole cache.
func (s *RoomStore) Purge() {
	s.cache.Purge()
}

func (s *RoomStore) recordHit() {
	if s.metrics != nil {
		s.metrics.RecordRoomCacheHit()
	}
}

func (s *RoomStore) recordMiss() {
	if s.metrics != nil {
		s.metrics.RecordRoomCacheMiss()
	}
}

func (s *RoomStore) recordLoad(status string) {
	if s.metrics != nil {
		s.metrics.RecordRoomLoad(status)
	}
}
