package pipeline

import "slices"

// Filter keeps the records that satisfy every condition, preserving order.
// With no conditions the input is returned unchanged as a fresh slice.
func Filter(records []Record, conditions []Condition) []Record {
	if len(conditions) == 0 {
		return slices.Clone(records)
	}

	filtered := make([]Record, 0, len(records))
	for _, record := range records {
		if matchesAll(record, conditions) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func matchesAll(record Record, conditions []Condition) bool {
	if !record.Decoded() {
		return false
	}
	for _, c := range conditions {
		if !c.Matches(record.Properties) {
			return false
		}
	}
	return true
}
