package main

import (
	"fmt"
	"strings"

	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
	"github.com/Harishez/data-voyage-visualizer/internal/session"
)

// operatorSymbols lets --where use comparison symbols as well as operator names
var operatorSymbols = map[string]string{
	">":  string(pipeline.OpGreaterThan),
	"<":  string(pipeline.OpLessThan),
	">=": string(pipeline.OpGreaterOrEqual),
	"<=": string(pipeline.OpLessOrEqual),
	"=":  string(pipeline.OpEqual),
	"==": string(pipeline.OpEqual),
	"!=": string(pipeline.OpNotEqual),
}

// parseWhere parses "field op value", e.g. "itemsInCart >= 10"
func parseWhere(expr string) (session.ConditionDefinition, error) {
	parts := strings.Fields(expr)
	if len(parts) != 3 {
		return session.ConditionDefinition{}, fmt.Errorf("%w: condition %q must be \"field operator value\"", pipeline.ErrInvalidConfig, expr)
	}

	op := parts[1]
	if name, ok := operatorSymbols[op]; ok {
		op = name
	}

	return session.ConditionDefinition{
		Field:    parts[0],
		Operator: op,
		Value:    parts[2],
	}, nil
}

// parseGroup parses "name:field=value,field=value". A name alone defines a
// group without constraints.
func parseGroup(expr string) (session.GroupDefinition, error) {
	name, body, _ := strings.Cut(expr, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return session.GroupDefinition{}, fmt.Errorf("%w: group %q has no name", pipeline.ErrInvalidConfig, expr)
	}

	def := session.GroupDefinition{Name: name}
	body = strings.TrimSpace(body)
	if body == "" {
		return def, nil
	}

	def.Constraints = make(map[string]interface{})
	for _, pair := range strings.Split(body, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			return session.GroupDefinition{}, fmt.Errorf("%w: group %q: constraint %q must be field=value", pipeline.ErrInvalidConfig, name, pair)
		}
		if _, dup := def.Constraints[key]; dup {
			return session.GroupDefinition{}, fmt.Errorf("%w: group %q constrains %s more than once", pipeline.ErrInvalidConfig, name, key)
		}
		def.Constraints[key] = value
	}
	return def, nil
}

// buildDefinition merges the optional file definition with flag values. Flags are appended after the file's items.
func buildDefinition(base *session.Definition, metrics, wheres, groups []string, raw bool) (session.Definition, error) {
	var def session.Definition
	if base != nil {
		def = *base
	}

	def.Metrics = append(append([]string{}, def.Metrics...), metrics...)
	def.Conditions = append([]session.ConditionDefinition{}, def.Conditions...)
	def.Groups = append([]session.GroupDefinition{}, def.Groups...)

	for _, w := range wheres {
		cd, err := parseWhere(w)
		if err != nil {
			return session.Definition{}, err
		}
		def.Conditions = append(def.Conditions, cd)
	}
	for _, g := range groups {
		gd, err := parseGroup(g)
		if err != nil {
			return session.Definition{}, err
		}
		def.Groups = append(def.Groups, gd)
	}
	if raw {
		def.Mode = string(pipeline.ModeRaw)
	}
	return def, nil
}
