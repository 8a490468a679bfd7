package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercyblade/roomhost-go/internal/engine"
	domerrors "github.com/mercyblade/roomhost-go/internal/errors"
	"github.com/mercyblade/roomhost-go/internal/logger"
	"github.com/mercyblade/roomhost-go/internal/room"
)

type fakeRoomSource struct {
	rooms map[string]*room.Room
	err   error
}

func (f *fakeRoomSource) GetRoom(ctx context.Context, roomID string) (*room.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	rm, ok := f.rooms[roomID]
	if !ok {
		return nil, domerrors.NewRoomDataError(roomID, domerrors.ErrRoomNotFound)
	}
	return rm, nil
}

func testRouter(t *testing.T, src RoomSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(src, engine.New(nil), nil, logger.NewWithWriter("error", io.Discard))
	router := gin.New()
	router.POST("/api/chat", h.Chat)
	return router
}

func sleepRoomSource(t *testing.T) *fakeRoomSource {
	t.Helper()
	rm, err := room.Parse("sleep", []byte(`{
		"description": {"en": "sleep and rest", "vi": "giấc ngủ"},
		"keywords": {"sleep": {"en": ["sleep"], "vi": ["ngủ"]}},
		"entries": [
			{"id": "sleep-1", "title": "Sleep", "essay": {"en": "Essay EN.", "vi": "Essay VI."}, "audio": "sleep.mp3"}
		]
	}`))
	require.NoError(t, err)
	return &fakeRoomSource{rooms: map[string]*room.Room{"sleep": rm}}
}

func postChat(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestChatMatched(t *testing.T) {
	router := testRouter(t, sleepRoomSource(t))

	w := postChat(router, `{"room_id": "sleep", "message": "I can't sleep"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var reply engine.Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.True(t, reply.Matched)
	assert.Equal(t, "Essay EN.\n\n---\n\nEssay VI.", reply.Text)
	assert.Equal(t, "sleep-1", reply.EntryID)
	assert.Equal(t, "sleep.mp3", reply.AudioFile)
}

func TestChatUnmatched(t *testing.T) {
	router := testRouter(t, sleepRoomSource(t))

	w := postChat(router, `{"room_id": "sleep", "message": "xyz", "no_keyword_count": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var reply engine.Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.False(t, reply.Matched)
	assert.True(t, strings.HasPrefix(reply.Text, "Please tell me a bit more, my friend."))
	assert.Empty(t, reply.EntryID)
	assert.Empty(t, reply.AudioFile)
}

func TestChatValidation(t *testing.T) {
	router := testRouter(t, sleepRoomSource(t))

	tests := []struct {
		name string
		body string
	}{
		{"missing room_id", `{"message": "hi"}`},
		{"missing message", `{"room_id": "sleep"}`},
		{"malformed json", `{"room_id":`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postChat(router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestChatRoomNotFound(t *testing.T) {
	router := testRouter(t, sleepRoomSource(t))

	w := postChat(router, `{"room_id": "nope", "message": "hi"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["matched"])
	text, _ := body["text"].(string)
	assert.Contains(t, text, "Xin lỗi", "failure message must be bilingual")
}

func TestChatStorageError(t *testing.T) {
	router := testRouter(t, &fakeRoomSource{err: errors.New("disk on fire")})

	w := postChat(router, `{"room_id": "sleep", "message": "hi"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	text, _ := body["text"].(string)
	assert.NotContains(t, text, "disk on fire", "internal errors must not leak")
	assert.Contains(t, text, "Vui lòng thử lại")
}
