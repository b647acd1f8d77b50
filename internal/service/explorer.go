package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Harishez/data-voyage-visualizer/internal/config"
	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/dto"
	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
	"github.com/Harishez/data-voyage-visualizer/internal/repository"
	"github.com/Harishez/data-voyage-visualizer/internal/session"
)

// groupColumn is the row key holding the group name
const groupColumn = "group"

// ExplorerService runs view configurations over batches of raw events
type ExplorerService struct {
	source  BatchSource
	decoder *pipeline.Decoder
	limits  config.Explorer
	log     *zap.Logger
}

// NewExplorerService creates a new explorer service
func NewExplorerService(source BatchSource, decoder *pipeline.Decoder, limits config.Explorer, log *zap.Logger) *ExplorerService {
	return &ExplorerService{
		source:  source,
		decoder: decoder,
		limits:  limits,
		log:     log,
	}
}

// Explore validates the view configuration, fetches a batch and runs the pipeline over it.
// The configuration is rejected before any data is read.
func (s *ExplorerService) Explore(ctx context.Context, req *dto.ExploreRequest) (*dto.ExploreResponse, error) {
	sess := session.New()
	if err := sess.Apply(toDefinition(req)); err != nil {
		s.log.Warn("Invalid view configuration", zap.Error(err))
		return nil, err
	}
	cfg := sess.Snapshot()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	query := repository.BatchQuery{
		Platform:   req.Source.Platform,
		AppVersion: req.Source.AppVersion,
		OSVersion:  req.Source.OSVersion,
		Limit:      s.clampLimit(req.Source.Limit),
	}

	events, err := s.source.FetchBatch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch batch: %w", err)
	}

	records := s.decoder.Decode(events)

	out, err := pipeline.Run(records, cfg)
	if err != nil {
		return nil, err
	}

	response := buildResponse(out, cfg.Metrics)
	response.Fetched = len(events)
	for _, r := range records {
		if r.Decoded() {
			response.Decoded++
		}
	}

	s.log.Info("Explore completed",
		zap.String("mode", response.Mode),
		zap.Int("fetched", response.Fetched),
		zap.Int("decoded", response.Decoded),
		zap.Int("groups", len(response.Groups)),
		zap.Int("rows", response.RowCount))

	return response, nil
}

// Fields lists every property field with the operators it accepts
func (s *ExplorerService) Fields() *dto.FieldsResponse {
	fields := domain.Fields()
	response := &dto.FieldsResponse{
		Fields: make([]dto.FieldInfo, 0, len(fields)),
		Modes:  []string{string(pipeline.ModeAggregated), string(pipeline.ModeRaw)},
	}

	for _, f := range fields {
		ops := pipeline.OperatorsFor(f.Kind())
		info := dto.FieldInfo{
			Key:       f.Key(),
			Label:     f.Label(),
			Kind:      f.Kind().String(),
			Operators: make([]dto.OperatorInfo, 0, len(ops)),
		}
		for _, op := range ops {
			info.Operators = append(info.Operators, dto.OperatorInfo{Name: string(op), Label: op.Label()})
		}
		response.Fields = append(response.Fields, info)
	}
	return response
}

func (s *ExplorerService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.limits.DefaultLimit
	}
	if limit > s.limits.MaxLimit {
		return s.limits.MaxLimit
	}
	return limit
}

func toDefinition(req *dto.ExploreRequest) session.Definition {
	def := session.Definition{
		Metrics: req.Metrics,
		Mode:    req.Mode,
	}
	for _, c := range req.Conditions {
		def.Conditions = append(def.Conditions, session.ConditionDefinition{
			Field:    c.Field,
			Operator: c.Operator,
			Value:    c.Value,
		})
	}
	for _, g := range req.Groups {
		def.Groups = append(def.Groups, session.GroupDefinition{
			Name:        g.Name,
			Constraints: g.Constraints,
		})
	}
	return def
}

func buildResponse(out *pipeline.Output, metrics []pipeline.Metric) *dto.ExploreResponse {
	response := &dto.ExploreResponse{
		Mode:     string(out.Mode),
		RowCount: out.RowCount(),
		Groups:   make([]dto.GroupSummary, 0, len(out.Partitions)),
		Rows:     make([]map[string]interface{}, 0, out.RowCount()),
	}

	for _, p := range out.Partitions {
		response.Groups = append(response.Groups, dto.GroupSummary{Name: p.Name, Members: len(p.Records)})
	}

	switch out.Mode {
	case pipeline.ModeRaw:
		for _, row := range out.Raw {
			values := make(map[string]interface{}, len(metrics)+1)
			values[groupColumn] = row.Group
			for _, lit := range row.Metrics {
				values[lit.Field.Key()] = lit.Value
			}
			response.Rows = append(response.Rows, values)
		}
	default:
		for _, row := range out.Aggregated {
			values := make(map[string]interface{}, len(metrics)+1)
			values[groupColumn] = row.Group
			for _, scalar := range row.Metrics {
				values[scalar.Field.Key()] = scalar.Value
			}
			response.Rows = append(response.Rows, values)
		}
	}

	return response
}
