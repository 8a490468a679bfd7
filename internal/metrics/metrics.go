package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec
	EscalationsTotal    *prometheus.CounterVec

	// Room cache metrics
	RoomCacheHitsTotal   prometheus.Counter
	RoomCacheMissesTotal prometheus.Counter

	// Room store metrics
	RoomLoadsTotal      *prometheus.CounterVec
	RoomDataIssuesTotal *prometheus.CounterVec

	// Import metrics
	ImportRoomsTotal *prometheus.CounterVec
	ImportDuration   prometheus.Histogram

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Chat metrics
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomhost_chat_requests_total",
				Help: "Total number of chat requests by room and outcome",
			},
			[]string{"room", "outcome"}, // outcome: matched, essay_reveal, guidance, filler
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "roomhost_chat_duration_seconds",
				Help:    "Chat request duration in seconds by room",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}, // Matching is in-memory and fast
			},
			[]string{"room"},
		),

		EscalationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomhost_escalations_total",
				Help: "Total number of no-match escalations by stage",
			},
			[]string{"stage"}, // stage: essay_reveal, guidance, filler_0, filler_1, filler_2
		),

		// Room cache metrics
		RoomCacheHitsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "roomhost_room_cache_hits_total",
				Help: "Total number of parsed-room cache hits",
			},
		),

		RoomCacheMissesTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "roomhost_room_cache_misses_total",
				Help: "Total number of parsed-room cache misses",
			},
		),

		// Room store metrics
		RoomLoadsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomhost_room_loads_total",
				Help: "Total number of room loads from storage by status",
			},
			[]string{"status"}, // status: success, not_found, error
		),

		RoomDataIssuesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomhost_room_data_issues_total",
				Help: "Total number of room data integrity issues detected",
			},
			[]string{"issue_type"}, // issue_type: invalid_json, empty_groups, no_entries, empty_entry
		),

		// Import metrics
		ImportRoomsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomhost_import_rooms_total",
				Help: "Total number of room files imported by status",
			},
			[]string{"status"}, // status: imported, skipped, error
		),

		ImportDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "roomhost_import_duration_seconds",
				Help:    "Room import pass duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomhost_http_errors_total",
				Help: "Total HTTP errors by type and route",
			},
			[]string{"error_type", "route"}, // error_type: bad_request, not_found, internal
		),
	}

	return m
}
