// Package api exposes the chat engine over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mercyblade/roomhost-go/internal/ctxutil"
	"github.com/mercyblade/roomhost-go/internal/engine"
	domerrors "github.com/mercyblade/roomhost-go/internal/errors"
	"github.com/mercyblade/roomhost-go/internal/logger"
	"github.com/mercyblade/roomhost-go/internal/metrics"
	"github.com/mercyblade/roomhost-go/internal/room"
	"github.com/mercyblade/roomhost-go/internal/sentry"
)

// RoomSource supplies parsed rooms to the chat handler.
type RoomSource interface {
	GetRoom(ctx context.Context, roomID string) (*room.Room, error)
}

// Handler serves the chat API.
type Handler struct {
	rooms   RoomSource
	engine  *engine.Engine
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewHandler creates the chat API handler. Metrics may be nil in tests.
func NewHandler(rooms RoomSource, eng *engine.Engine, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		rooms:   rooms,
		engine:  eng,
		metrics: m,
		log:     log,
	}
}

// chatRequest is the body of POST /api/chat. The counters are owned by
// the client conversation state; the engine only reads them.
type chatRequest struct {
	RoomID            string `json:"room_id" binding:"required"`
	Message           string `json:"message" binding:"required"`
	NoKeywordCount    int    `json:"no_keyword_count"`
	MatchedEntryCount int    `json:"matched_entry_count"`
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(c *gin.Context) {
	start := time.Now()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordHTTPError("bad_request", "/api/chat")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "room_id and message are required",
		})
		return
	}

	ctx := ctxutil.WithRoomID(c.Request.Context(), req.RoomID)
	log := h.log.WithField("room", req.RoomID).
		WithRequestID(ctxutil.GetRequestID(ctx))

	rm, err := h.rooms.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, domerrors.ErrRoomNotFound) {
			h.recordHTTPError("not_found", "/api/chat")
			c.JSON(http.StatusNotFound, gin.H{
				"text":    "Sorry, I don't know that room yet.\n\nXin lỗi, tôi chưa biết phòng này.",
				"matched": false,
			})
			return
		}

		log.WithError(err).Error("Failed to load room")
		sentry.CaptureExceptionWithContext(ctx, err)
		h.recordHTTPError("internal", "/api/chat")
		c.JSON(http.StatusInternalServerError, gin.H{
			"text":    "Something went wrong on our side. Please try again.\n\nĐã có lỗi từ phía chúng tôi. Vui lòng thử lại.",
			"matched": false,
		})
		return
	}

	reply, outcome := h.engine.Respond(rm, req.Message, engine.Counters{
		NoKeyword:      req.NoKeywordCount,
		MatchedEntries: req.MatchedEntryCount,
	})

	if reply.Matched && strings.TrimSpace(reply.Text) == "" {
		// An entry resolved but yielded nothing to say. The reply still
		// goes out as matched; the content itself needs fixing.
		log.WithError(domerrors.ErrNoContent).Warn("Matched entry produced empty reply text",
			"entry_id", reply.EntryID,
		)
		if h.metrics != nil {
			h.metrics.RecordRoomDataIssue("empty_entry")
		}
	}

	h.recordOutcome(req.RoomID, outcome, req.NoKeywordCount, time.Since(start))
	log.Debug("Chat reply built",
		"outcome", string(outcome),
		"matched", reply.Matched,
		"entry_id", reply.EntryID,
	)

	c.JSON(http.StatusOK, reply)
}

func (h *Handler) recordOutcome(roomID string, outcome engine.Outcome, noKeywordCount int, d time.Duration) {
	if h.metrics == nil {
		return
	}
	h.metrics.ChatRequestsTotal.WithLabelValues(roomID, string(outcome)).Inc()
	h.metrics.ChatDurationSeconds.WithLabelValues(roomID).Observe(d.Seconds())

	switch outcome {
	case engine.OutcomeMatched:
	case engine.OutcomeFiller:
		stage := noKeywordCount
		if stage < 0 {
			stage = 0
		}
		if stage > 2 {
			stage = 2
		}
		h.metrics.EscalationsTotal.WithLabelValues(fmt.Sprintf("filler_%d", stage)).Inc()
	default:
		h.metrics.EscalationsTotal.WithLabelValues(string(outcome)).Inc()
	}
}

func (h *Handler) recordHTTPError(errorType, route string) {
	if h.metrics == nil {
		return
	}
	h.metrics.HTTPErrorsTotal.WithLabelValues(errorType, route).Inc()
}
