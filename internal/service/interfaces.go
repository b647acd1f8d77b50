package service

import (
	"context"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/dto"
	"github.com/Harishez/data-voyage-visualizer/internal/repository"
)

// EventServicer defines the interface for event ingestion
type EventServicer interface {
	ProcessEvent(ctx context.Context, event *dto.PublishEventRequest) (string, error)
	ProcessBulkEvents(ctx context.Context, events []dto.PublishEventRequest) ([]string, []string, error)
}

// ExplorerServicer defines the interface for running view configurations over a batch
type ExplorerServicer interface {
	Explore(ctx context.Context, req *dto.ExploreRequest) (*dto.ExploreResponse, error)
	Fields() *dto.FieldsResponse
}

// BatchSource yields the raw events an explore request runs over.
// repository.EventRepository satisfies it.
type BatchSource interface {
	FetchBatch(ctx context.Context, query repository.BatchQuery) ([]domain.RawEvent, error)
}
