package repository

import (
	"context"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

// BatchQuery selects the raw events that form one explore batch.
// Empty string filters match every value.
type BatchQuery struct {
	Platform   string
	AppVersion string
	OSVersion  string
	Limit      int
}

// EventRepository defines the interface for raw event storage operations
type EventRepository interface {
	// InsertBatch inserts a batch of raw events into the storage
	InsertBatch(ctx context.Context, events []*domain.RawEvent) (int, error)

	// InitSchema initializes the database schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error

	// FetchBatch loads the raw events matching the query, newest first
	FetchBatch(ctx context.Context, query BatchQuery) ([]domain.RawEvent, error)
}
