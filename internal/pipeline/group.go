package pipeline

import (
	"fmt"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

// AllDataGroup names the implicit group used when no groups are configured
const AllDataGroup = "All Data"

// Constraint requires a field to hold exactly Value
type Constraint struct {
	Field domain.Field
	Value domain.Value
}

// Group is a named conjunction of equality constraints
type Group struct {
	ID          string
	Name        string
	Constraints []Constraint
}

// Validate checks the group name and that each field is constrained once with a value of its kind
func (g Group) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("%w: group name is required", ErrInvalidConfig)
	}

	seen := make(map[domain.Field]bool, len(g.Constraints))
	for _, c := range g.Constraints {
		if err := domain.CheckKind(c.Field, c.Value); err != nil {
			return fmt.Errorf("%w: group %q: %w", ErrInvalidConfig, g.Name, err)
		}
		if seen[c.Field] {
			return fmt.Errorf("%w: group %q constrains %s more than once", ErrInvalidConfig, g.Name, c.Field)
		}
		seen[c.Field] = true
	}
	return nil
}

// Contains reports whether bag satisfies every constraint of the group
func (g Group) Contains(bag *domain.PropertyBag) bool {
	if bag == nil {
		return false
	}
	for _, c := range g.Constraints {
		if !bag.Value(c.Field).Equal(c.Value) {
			return false
		}
	}
	return true
}

// Partition is the membership of one group
type Partition struct {
	Name    string
	Records []Record
}

// GroupBy evaluates each group independently against records, so a record
// may belong to several partitions. Undecoded records belong to none.
func GroupBy(records []Record, groups []Group) []Partition {
	if len(groups) == 0 {
		groups = []Group{{ID: "all", Name: AllDataGroup}}
	}

	partitions := make([]Partition, 0, len(groups))
	for _, g := range groups {
		members := make([]Record, 0)
		for _, record := range records {
			if g.Contains(record.Properties) {
				members = append(members, record)
			}
		}
		partitions = append(partitions, Partition{Name: g.Name, Records: members})
	}
	return partitions
}
