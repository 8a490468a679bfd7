package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all metric fields are initialized
	if m.ChatRequestsTotal == nil {
		t.Error("ChatRequestsTotal is nil")
	}
	if m.ChatDurationSeconds == nil {
		t.Error("ChatDurationSeconds is nil")
	}
	if m.EscalationsTotal == nil {
		t.Error("EscalationsTotal is nil")
	}
	if m.RoomCacheHitsTotal == nil {
		t.Error("RoomCacheHitsTotal is nil")
	}
	if m.RoomCacheMissesTotal == nil {
		t.Error("RoomCacheMissesTotal is nil")
	}
	if m.RoomLoadsTotal == nil {
		t.Error("RoomLoadsTotal is nil")
	}
	if m.RoomDataIssuesTotal == nil {
		t.Error("RoomDataIssuesTotal is nil")
	}
	if m.ImportRoomsTotal == nil {
		t.Error("ImportRoomsTotal is nil")
	}
	if m.ImportDuration == nil {
		t.Error("ImportDuration is nil")
	}
	if m.HTTPErrorsTotal == nil {
		t.Error("HTTPErrorsTotal is nil")
	}
}

func TestMetricsUsable(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ChatRequestsTotal.WithLabelValues("sleep", "matched").Inc()
	m.ChatDurationSeconds.WithLabelValues("sleep").Observe(0.002)
	m.EscalationsTotal.WithLabelValues("filler_0").Inc()
	m.RoomCacheHitsTotal.Inc()
	m.RoomCacheMissesTotal.Inc()
	m.RoomLoadsTotal.WithLabelValues("success").Inc()
	m.RoomDataIssuesTotal.WithLabelValues("empty_groups").Inc()
	m.ImportRoomsTotal.WithLabelValues("imported").Inc()
	m.ImportDuration.Observe(1.5)
	m.HTTPErrorsTotal.WithLabelValues("not_found", "/api/chat").Inc()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}
	if len(families) == 0 {
		t.Error("Expected gathered metric families, got none")
	}
}

func TestNewPanicsOnDuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_ = New(registry)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	_ = New(registry)
}
