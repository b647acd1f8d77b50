package session

import (
	"fmt"
	"os"
	"sort"

	"sigs.k8s.io/yaml"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
)

// ConditionDefinition is the serialized form of a base condition
type ConditionDefinition struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

// GroupDefinition is the serialized form of a comparison group
type GroupDefinition struct {
	Name        string                 `json:"name"`
	Constraints map[string]interface{} `json:"constraints,omitempty"`
}

// Definition is a complete view configuration as written in a YAML or JSON file
type Definition struct {
	Metrics    []string              `json:"metrics,omitempty"`
	Conditions []ConditionDefinition `json:"conditions,omitempty"`
	Groups     []GroupDefinition     `json:"groups,omitempty"`
	Mode       string                `json:"mode,omitempty"`
}

// LoadDefinition reads a view definition from a YAML (or JSON) file
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read view definition: %w", err)
	}

	var def Definition
	if err := yaml.UnmarshalStrict(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse view definition %s: %w", path, err)
	}
	return &def, nil
}

// Apply adds every item of def to the session. It stops at the first invalid item.
func (s *Session) Apply(def Definition) error {
	for _, key := range def.Metrics {
		field, err := domain.ParseField(key)
		if err != nil {
			return fmt.Errorf("%w: metric: %w", pipeline.ErrInvalidConfig, err)
		}
		if _, err := s.AddMetric(field); err != nil {
			return err
		}
	}

	for i, cd := range def.Conditions {
		field, op, value, err := cd.resolve()
		if err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
		if _, err := s.AddCondition(field, op, value); err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
	}

	for _, gd := range def.Groups {
		constraints, err := ParseConstraints(gd.Constraints)
		if err != nil {
			return fmt.Errorf("group %q: %w", gd.Name, err)
		}
		if _, err := s.AddGroup(gd.Name, constraints); err != nil {
			return err
		}
	}

	if def.Mode != "" {
		if err := s.SetMode(pipeline.Mode(def.Mode)); err != nil {
			return err
		}
	}
	return nil
}

func (cd ConditionDefinition) resolve() (domain.Field, pipeline.Operator, domain.Value, error) {
	field, err := domain.ParseField(cd.Field)
	if err != nil {
		return 0, "", domain.Value{}, fmt.Errorf("%w: %w", pipeline.ErrInvalidConfig, err)
	}
	op, err := pipeline.ParseOperator(cd.Operator)
	if err != nil {
		return 0, "", domain.Value{}, err
	}
	value, err := resolveValue(field, cd.Value)
	if err != nil {
		return 0, "", domain.Value{}, err
	}
	return field, op, value, nil
}

// ParseConstraints converts a field-key → value map into constraints ordered by field key
func ParseConstraints(raw map[string]interface{}) ([]pipeline.Constraint, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	constraints := make([]pipeline.Constraint, 0, len(keys))
	for _, key := range keys {
		field, err := domain.ParseField(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", pipeline.ErrInvalidConfig, err)
		}
		value, err := resolveValue(field, raw[key])
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, pipeline.Constraint{Field: field, Value: value})
	}
	return constraints, nil
}

// resolveValue accepts typed scalars as well as their textual form
func resolveValue(field domain.Field, raw interface{}) (domain.Value, error) {
	var (
		value domain.Value
		err   error
	)
	if text, ok := raw.(string); ok {
		value, err = domain.ParseValue(field, text)
	} else {
		value, err = domain.ValueFromAny(raw)
	}
	if err != nil {
		return domain.Value{}, fmt.Errorf("%w: %s: %w", pipeline.ErrInvalidConfig, field, err)
	}
	return value, nil
}
