package runtime

import (
	"sync"
	"time"

	jsoncodec "github.com/drblury/msgmux/internal/runtime/jsoncodec"
)

// DispatchStats tracks dispatch outcomes for a single registration. All
// updates happen on the dispatch path under the embedded mutex.
type DispatchStats struct {
	mu sync.Mutex

	messagesProcessed   uint64
	messagesFailed      uint64
	totalProcessingTime time.Duration
	lastProcessedAt     time.Time
	lastError           string
}

func newDispatchStats() *DispatchStats {
	return &DispatchStats{}
}

// onDispatchStart marks the beginning of a dispatch and returns the
// completion callback that records duration and outcome.
func (s *DispatchStats) onDispatchStart() func(err error) {
	start := time.Now()
	return func(err error) {
		duration := time.Since(start)

		s.mu.Lock()
		defer s.mu.Unlock()

		s.messagesProcessed++
		s.totalProcessingTime += duration
		s.lastProcessedAt = start
		if err != nil {
			s.messagesFailed++
			s.lastError = err.Error()
		}
	}
}

func (s *DispatchStats) snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StatsSnapshot{
		MessagesProcessed:     s.messagesProcessed,
		MessagesFailed:        s.messagesFailed,
		TotalProcessingTimeNs: s.totalProcessingTime.Nanoseconds(),
		LastProcessedAt:       s.lastProcessedAt,
		LastError:             s.lastError,
	}
}

// StatsSnapshot is a point-in-time copy of DispatchStats, safe to hold and
// serialise after the registry moves on.
type StatsSnapshot struct {
	MessagesProcessed     uint64    `json:"messages_processed"`
	MessagesFailed        uint64    `json:"messages_failed"`
	TotalProcessingTimeNs int64     `json:"total_processing_time_ns"`
	LastProcessedAt       time.Time `json:"last_processed_at"`
	LastError             string    `json:"last_error,omitempty"`
}

// HandlerInfo describes one registration in an introspection snapshot.
// Default marks the fallback slot, which carries no message type.
type HandlerInfo struct {
	MessageType string        `json:"message_type,omitempty"`
	Default     bool          `json:"default,omitempty"`
	Stats       StatsSnapshot `json:"stats"`
}

// SnapshotJSON serialises the registry's introspection snapshot, indented
// for diagnostics output.
func SnapshotJSON(r Registry) ([]byte, error) {
	return jsoncodec.MarshalIndent(r.Handlers(), "", "  ")
}
