package metrics

// RecordRoomCacheHit increments the parsed-room cache hit counter
func (m *Metrics) RecordRoomCacheHit() {
	m.RoomCacheHitsTotal.Inc()
}

// RecordRoomCacheMiss increments the parsed-room cache miss counter
func (m *Metrics) RecordRoomCacheMiss() {
	m.RoomCacheMissesTotal.Inc()
}

// RecordRoomLoad records one room load from storage by status
func (m *Metrics) RecordRoomLoad(status string) {
	m.RoomLoadsTotal.WithLabelValues(status).Inc()
}

// RecordRoomDataIssue records one detected room data integrity issue
func (m *Metrics) RecordRoomDataIssue(issueType string) {
	m.RoomDataIssuesTotal.WithLabelValues(issueType).Inc()
}
