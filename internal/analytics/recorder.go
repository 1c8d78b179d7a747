package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/tumchatbot/tum-chatbot-go/internal/config"
	"github.com/tumchatbot/tum-chatbot-go/internal/metrics"
)

const defaultBufferSize = 256

// Recorder writes interactions to the store asynchronously. Records
// are dropped (and counted) when the buffer is full; analytics must
// never block or fail a chat response.
type Recorder struct {
	store   *Store
	metrics *metrics.Metrics
	ch      chan Interaction
	done    chan struct{}
}

// NewRecorder starts the writer goroutine.
func NewRecorder(store *Store, m *metrics.Metrics, bufferSize int) *Recorder {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	r := &Recorder{
		store:   store,
		metrics: m,
		ch:      make(chan Interaction, bufferSize),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer close(r.done)
	for in := range r.ch {
		if err := r.store.RecordInteraction(context.Background(), in); err != nil {
			slog.Error("failed to record interaction", "error", err, "session_id", in.SessionID)
			continue
		}
		if r.metrics != nil {
			r.metrics.RecordAnalyticsEvent("chat_interaction")
		}
	}
}

// Record enqueues an interaction without blocking.
func (r *Recorder) Record(in Interaction) {
	select {
	case r.ch <- in:
	default:
		if r.metrics != nil {
			r.metrics.RecordAnalyticsDrop()
		}
		slog.Warn("analytics buffer full, dropping interaction", "session_id", in.SessionID)
	}
}

// Close stops accepting records and drains the buffer, waiting at
// most the configured flush window.
func (r *Recorder) Close() {
	close(r.ch)
	select {
	case <-r.done:
	case <-time.After(config.AnalyticsFlush):
		slog.Warn("analytics recorder did not drain in time")
	}
}
