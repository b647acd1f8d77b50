package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/dto"
	"github.com/Harishez/data-voyage-visualizer/internal/queue"
)

const bulkPublishConcurrency = 8

// EventService validates submitted events and publishes them to the queue
type EventService struct {
	publisher queue.QueuePublisher
	log       *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(publisher queue.QueuePublisher, log *zap.Logger) *EventService {
	return &EventService{
		publisher: publisher,
		log:       log,
	}
}

// normalizeProperties returns the compact JSON object carried by raw,
// which is either the object itself or a string containing it. Only the
// object shape is checked here; key and type checks belong to the decoder.
func normalizeProperties(raw json.RawMessage) (string, error) {
	blob := bytes.TrimSpace(raw)
	if len(blob) > 0 && blob[0] == '"' {
		var inner string
		if err := json.Unmarshal(blob, &inner); err != nil {
			return "", fmt.Errorf("%w: customproperties: %w", ErrInvalidEvent, err)
		}
		blob = []byte(inner)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(blob, &obj); err != nil || obj == nil {
		return "", fmt.Errorf("%w: customproperties must be a JSON object", ErrInvalidEvent)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, blob); err != nil {
		return "", fmt.Errorf("%w: customproperties: %w", ErrInvalidEvent, err)
	}
	return compact.String(), nil
}

// computeEventID generates a deterministic event ID from the event content:
// SHA-256 of device_id|user_id|app_version|platform|os_version|properties
func computeEventID(event *domain.RawEvent) string {
	data := fmt.Sprintf("%d|%d|%s|%s|%s|%s",
		event.DeviceID,
		event.UserID,
		event.AppVersion,
		event.Platform,
		event.OSVersion,
		event.Properties,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ProcessEvent validates a single event and publishes it
func (s *EventService) ProcessEvent(ctx context.Context, req *dto.PublishEventRequest) (string, error) {
	properties, err := normalizeProperties(req.CustomProperties)
	if err != nil {
		s.log.Warn("Event validation failed",
			zap.Int64("device_id", req.DeviceID),
			zap.Error(err))
		return "", err
	}

	event := &domain.RawEvent{
		Properties: properties,
		AppVersion: req.AppVersion,
		UserID:     req.UserID,
		DeviceID:   req.DeviceID,
		Platform:   req.Platform,
		OSVersion:  req.OSVersion,
	}
	event.EventID = computeEventID(event)

	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		return "", fmt.Errorf("failed to publish event to queue: %w", err)
	}

	return event.EventID, nil
}

// ProcessBulkEvents publishes events concurrently. Accepted IDs and
// rejection messages keep the order of the request.
func (s *EventService) ProcessBulkEvents(ctx context.Context, events []dto.PublishEventRequest) ([]string, []string, error) {
	ids := make([]string, len(events))
	errs := make([]error, len(events))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkPublishConcurrency)

	for i := range events {
		g.Go(func() error {
			id, err := s.ProcessEvent(gctx, &events[i])
			if err != nil {
				errs[i] = err
				return nil
			}
			ids[i] = id
			return nil
		})
	}
	_ = g.Wait()

	var (
		eventIDs []string
		messages []string
	)
	for i := range events {
		if errs[i] != nil {
			s.log.Warn("Failed to process event in bulk",
				zap.Int("index", i),
				zap.Error(errs[i]))
			messages = append(messages, fmt.Sprintf("event %d: %v", i, errs[i]))
			continue
		}
		eventIDs = append(eventIDs, ids[i])
	}

	return eventIDs, messages, nil
}
