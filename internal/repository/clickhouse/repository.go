package clickhouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/repository"
)

const createRawEventsTable = `
	CREATE TABLE IF NOT EXISTS raw_events (
		event_id String,
		custom_properties String,
		app_version LowCardinality(String),
		user_id Int64,
		device_id Int64,
		platform LowCardinality(String),
		os_version LowCardinality(String),
		processed_at DateTime64(3) DEFAULT now64(3),
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	PRIMARY KEY (event_id)
	ORDER BY (event_id)
	PARTITION BY toYYYYMM(processed_at)
	SETTINGS index_granularity = 8192
	`

// Repository implements EventRepository for ClickHouse
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema creates the raw_events table if it does not exist
func (r *Repository) InitSchema(ctx context.Context) error {
	if err := r.client.Conn().Exec(ctx, createRawEventsTable); err != nil {
		return fmt.Errorf("failed to create raw_events table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized")
	return nil
}

// InsertBatch inserts a batch of raw events into ClickHouse
func (r *Repository) InsertBatch(ctx context.Context, events []*domain.RawEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO raw_events")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, event := range events {
		version := event.Version
		if version == 0 {
			version = uint64(time.Now().UnixNano())
		}
		processedAt := event.ProcessedAt
		if processedAt.IsZero() {
			processedAt = time.Now()
		}

		err := batch.Append(
			event.EventID,
			event.Properties,
			event.AppVersion,
			event.UserID,
			event.DeviceID,
			event.Platform,
			event.OSVersion,
			processedAt,
			version,
		)
		if err != nil {
			_ = batch.Abort()
			return 0, fmt.Errorf("failed to append event %s to batch: %w", event.EventID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	return len(events), nil
}

// FetchBatch loads the newest raw events matching query
func (r *Repository) FetchBatch(ctx context.Context, query repository.BatchQuery) ([]domain.RawEvent, error) {
	sql, args := buildBatchQuery(query)

	var events []domain.RawEvent
	if err := r.client.Conn().Select(ctx, &events, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to query raw events: %w", err)
	}

	r.log.Debug("Fetched raw event batch",
		zap.Int("count", len(events)),
		zap.String("platform", query.Platform),
		zap.String("app_version", query.AppVersion),
		zap.Int("limit", query.Limit))

	return events, nil
}

func buildBatchQuery(query repository.BatchQuery) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)

	if query.Platform != "" {
		where = append(where, "platform = ?")
		args = append(args, query.Platform)
	}
	if query.AppVersion != "" {
		where = append(where, "app_version = ?")
		args = append(args, query.AppVersion)
	}
	if query.OSVersion != "" {
		where = append(where, "os_version = ?")
		args = append(args, query.OSVersion)
	}

	var sb strings.Builder
	sb.WriteString(`SELECT event_id, custom_properties, app_version, user_id, device_id, platform, os_version, processed_at, version
		FROM raw_events FINAL`)
	if len(where) > 0 {
		sb.WriteString("\n\t\tWHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString("\n\t\tORDER BY processed_at DESC, event_id")
	if query.Limit > 0 {
		sb.WriteString("\n\t\tLIMIT ?")
		args = append(args, query.Limit)
	}

	return sb.String(), args
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}
