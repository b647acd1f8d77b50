package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

// resultEnvelope is the response shape of the event export API
type resultEnvelope struct {
	Data struct {
		Result []domain.RawEvent `json:"result"`
	} `json:"data"`
}

// decodeEvents accepts either a JSON array of raw events or an export
// response wrapping them in data.result
func decodeEvents(data []byte) ([]domain.RawEvent, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("input is empty")
	}

	if trimmed[0] == '[' {
		var events []domain.RawEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, fmt.Errorf("failed to parse event array: %w", err)
		}
		return events, nil
	}

	var envelope resultEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse event export: %w", err)
	}
	return envelope.Data.Result, nil
}

func loadEvents(path string) ([]domain.RawEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	events, err := decodeEvents(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}
