package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
)

var (
	// ErrDuplicateMetric is returned when a field is already selected as a metric
	ErrDuplicateMetric = errors.New("metric already added")
	// ErrNotFound is returned when an ID does not match any configured item
	ErrNotFound = errors.New("not found")
)

// Session holds the editable view configuration of one caller.
// It is not safe for concurrent use.
type Session struct {
	metrics    []pipeline.Metric
	conditions []pipeline.Condition
	groups     []pipeline.Group
	mode       pipeline.Mode
}

// New creates an empty session in aggregated mode
func New() *Session {
	return &Session{mode: pipeline.ModeAggregated}
}

func newID() string {
	return uuid.NewString()
}

// AddMetric selects field for display and returns the new metric ID
func (s *Session) AddMetric(field domain.Field) (string, error) {
	if !field.Valid() {
		return "", fmt.Errorf("%w: %w: %d", pipeline.ErrInvalidConfig, domain.ErrUnknownField, int(field))
	}
	for _, m := range s.metrics {
		if m.Field == field {
			return "", fmt.Errorf("%w: %s", ErrDuplicateMetric, field)
		}
	}

	id := newID()
	s.metrics = append(s.metrics, pipeline.Metric{ID: id, Field: field})
	return id, nil
}

// RemoveMetric removes the metric with the given ID
func (s *Session) RemoveMetric(id string) error {
	i := slices.IndexFunc(s.metrics, func(m pipeline.Metric) bool { return m.ID == id })
	if i < 0 {
		return fmt.Errorf("metric %s: %w", id, ErrNotFound)
	}
	s.metrics = slices.Delete(s.metrics, i, i+1)
	return nil
}

// AddCondition validates and appends a base condition, returning its ID
func (s *Session) AddCondition(field domain.Field, op pipeline.Operator, value domain.Value) (string, error) {
	c, err := pipeline.NewCondition(field, op, value)
	if err != nil {
		return "", err
	}

	c.ID = newID()
	s.conditions = append(s.conditions, c)
	return c.ID, nil
}

// ConditionPatch lists the condition attributes to change. Nil fields are kept.
type ConditionPatch struct {
	Field    *domain.Field
	Operator *pipeline.Operator
	Value    *domain.Value
}

// UpdateCondition applies patch to the condition with the given ID. The
// patched condition is validated as a whole; on error nothing changes.
func (s *Session) UpdateCondition(id string, patch ConditionPatch) error {
	i := slices.IndexFunc(s.conditions, func(c pipeline.Condition) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("condition %s: %w", id, ErrNotFound)
	}

	updated := s.conditions[i]
	if patch.Field != nil {
		updated.Field = *patch.Field
	}
	if patch.Operator != nil {
		updated.Operator = *patch.Operator
	}
	if patch.Value != nil {
		updated.Value = *patch.Value
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	s.conditions[i] = updated
	return nil
}

// RemoveCondition removes the condition with the given ID
func (s *Session) RemoveCondition(id string) error {
	i := slices.IndexFunc(s.conditions, func(c pipeline.Condition) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("condition %s: %w", id, ErrNotFound)
	}
	s.conditions = slices.Delete(s.conditions, i, i+1)
	return nil
}

// AddGroup validates and appends a comparison group, returning its ID
func (s *Session) AddGroup(name string, constraints []pipeline.Constraint) (string, error) {
	g := pipeline.Group{
		Name:        name,
		Constraints: slices.Clone(constraints),
	}
	if err := g.Validate(); err != nil {
		return "", err
	}
	for _, existing := range s.groups {
		if existing.Name == name {
			return "", fmt.Errorf("%w: duplicate group name %q", pipeline.ErrInvalidConfig, name)
		}
	}

	g.ID = newID()
	s.groups = append(s.groups, g)
	return g.ID, nil
}

// RemoveGroup removes the group with the given ID
func (s *Session) RemoveGroup(id string) error {
	i := slices.IndexFunc(s.groups, func(g pipeline.Group) bool { return g.ID == id })
	if i < 0 {
		return fmt.Errorf("group %s: %w", id, ErrNotFound)
	}
	s.groups = slices.Delete(s.groups, i, i+1)
	return nil
}

// SetMode switches between aggregated and raw output
func (s *Session) SetMode(mode pipeline.Mode) error {
	parsed, err := pipeline.ParseMode(string(mode))
	if err != nil {
		return err
	}
	s.mode = parsed
	return nil
}

// Metrics returns a copy of the selected metrics
func (s *Session) Metrics() []pipeline.Metric {
	return slices.Clone(s.metrics)
}

// Snapshot returns an independent copy of the configuration for one pipeline run
func (s *Session) Snapshot() pipeline.Config {
	groups := make([]pipeline.Group, len(s.groups))
	for i, g := range s.groups {
		g.Constraints = slices.Clone(g.Constraints)
		groups[i] = g
	}

	return pipeline.Config{
		Conditions: slices.Clone(s.conditions),
		Groups:     groups,
		Metrics:    slices.Clone(s.metrics),
		Mode:       s.mode,
	}
}
