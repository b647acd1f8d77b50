package service

import (
	"context"
	"math/rand"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/repository"
	"github.com/Harishez/data-voyage-visualizer/internal/sample"
)

// SampleSource serves a fixed in-memory batch: the reference records plus
// size generated ones. It lets the explorer run without ClickHouse.
type SampleSource struct {
	events []domain.RawEvent
}

// NewSampleSource generates the batch once from seed
func NewSampleSource(size int, seed int64) *SampleSource {
	return &SampleSource{events: sample.Generate(size, rand.New(rand.NewSource(seed)))}
}

// FetchBatch returns the sample events matching query, in generation order
func (s *SampleSource) FetchBatch(_ context.Context, query repository.BatchQuery) ([]domain.RawEvent, error) {
	events := make([]domain.RawEvent, 0, len(s.events))
	for _, e := range s.events {
		if query.Platform != "" && e.Platform != query.Platform {
			continue
		}
		if query.AppVersion != "" && e.AppVersion != query.AppVersion {
			continue
		}
		if query.OSVersion != "" && e.OSVersion != query.OSVersion {
			continue
		}
		events = append(events, e)
		if query.Limit > 0 && len(events) == query.Limit {
			break
		}
	}
	return events, nil
}
