package consumer

import (
	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

// MessageParser defines the interface for parsing queue message bodies into raw events
type MessageParser interface {
	Parse(body []byte) (*domain.RawEvent, error)
}
