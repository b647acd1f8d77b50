package consumer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/repository"
)

// BatchWriterConfig configures the batch writer
type BatchWriterConfig struct {
	MaxBatchSize int
	FlushTimeout time.Duration
}

// BatchWriter accumulates envelopes and writes them to the repository in batches.
// A batch is acked only when every event in it was stored.
type BatchWriter struct {
	repository repository.EventRepository
	config     BatchWriterConfig
	log        *zap.Logger
}

// NewBatchWriter creates a new batch writer
func NewBatchWriter(repo repository.EventRepository, config BatchWriterConfig, log *zap.Logger) *BatchWriter {
	return &BatchWriter{
		repository: repo,
		config:     config,
		log:        log,
	}
}

// Start consumes envelopes until in is closed or ctx is done, flushing on size and on timeout
func (w *BatchWriter) Start(ctx context.Context, in <-chan *Envelope) {
	ticker := time.NewTicker(w.config.FlushTimeout)
	defer ticker.Stop()

	pending := make([]*Envelope, 0, w.config.MaxBatchSize)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Batch writer shutting down", zap.Int("pending", len(pending)))
			// Flush with a fresh context so the final batch is not lost to cancellation.
			flushCtx, cancel := context.WithTimeout(context.Background(), w.config.FlushTimeout)
			w.flush(flushCtx, pending)
			cancel()
			return

		case envelope, ok := <-in:
			if !ok {
				w.log.Info("Batch writer input channel closed", zap.Int("pending", len(pending)))
				w.flush(ctx, pending)
				return
			}

			pending = append(pending, envelope)
			if len(pending) >= w.config.MaxBatchSize {
				w.log.Debug("Batch size threshold reached", zap.Int("batch_size", len(pending)))
				w.flush(ctx, pending)
				pending = make([]*Envelope, 0, w.config.MaxBatchSize)
				ticker.Reset(w.config.FlushTimeout)
			}

		case <-ticker.C:
			if len(pending) > 0 {
				w.log.Debug("Batch timeout reached", zap.Int("batch_size", len(pending)))
				w.flush(ctx, pending)
				pending = make([]*Envelope, 0, w.config.MaxBatchSize)
			}
		}
	}
}

// flush inserts the batch and settles every envelope in it
func (w *BatchWriter) flush(ctx context.Context, envelopes []*Envelope) {
	if len(envelopes) == 0 {
		return
	}

	events := uniqueEvents(envelopes)

	inserted, err := w.repository.InsertBatch(ctx, events)
	if err != nil {
		w.log.Error("Failed to insert batch",
			zap.Int("event_count", len(events)),
			zap.Error(err))
		w.settle(ctx, envelopes, false)
		return
	}

	if inserted != len(events) {
		w.log.Warn("Partial insert",
			zap.Int("inserted", inserted),
			zap.Int("expected", len(events)))
		w.settle(ctx, envelopes, false)
		return
	}

	w.log.Info("Inserted raw events",
		zap.Int("count", inserted),
		zap.Int("duplicates", len(envelopes)-len(events)))
	w.settle(ctx, envelopes, true)
}

func (w *BatchWriter) settle(ctx context.Context, envelopes []*Envelope, stored bool) {
	for _, env := range envelopes {
		var err error
		if stored {
			err = env.Ack(ctx)
		} else {
			err = env.Nack(ctx)
		}
		if err != nil {
			w.log.Error("Failed to settle envelope",
				zap.String("message_id", env.MessageID),
				zap.Bool("stored", stored),
				zap.Error(err))
		}
	}
}

// uniqueEvents returns one event per event ID, keeping the last delivery
func uniqueEvents(envelopes []*Envelope) []*domain.RawEvent {
	index := make(map[string]int, len(envelopes))
	events := make([]*domain.RawEvent, 0, len(envelopes))

	for _, env := range envelopes {
		if i, ok := index[env.Event.EventID]; ok {
			events[i] = env.Event
			continue
		}
		index[env.Event.EventID] = len(events)
		events = append(events, env.Event)
	}

	return events
}
