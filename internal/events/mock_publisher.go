package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockEventPublisher records published events in memory for tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

// NewMockEventPublisher creates an in-memory event publisher.
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		logger: logger,
	}
}

// Publish stamps the envelope the same way the Kafka publisher does and
// records the event.
func (p *MockEventPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Source == "" {
		event.Source = eventSource
	}
	if event.Version == "" {
		event.Version = eventVersion
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.Lock()
	p.events = append(p.events, *event)
	p.mu.Unlock()

	p.logger.DebugContext(ctx, "Mock event recorded",
		"topic", topic,
		"event_type", event.Type)

	return nil
}

// GetPublishedEvents returns a copy of all recorded events.
func (p *MockEventPublisher) GetPublishedEvents() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// ClearEvents drops all recorded events.
func (p *MockEventPublisher) ClearEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// Close is a no-op for the mock.
func (p *MockEventPublisher) Close() error {
	return nil
}
