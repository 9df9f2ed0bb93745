package mqtt

import (
	"fmt"
	"sync"

	coremqtt "github.com/solbatt/solbatt/core/mqtt"
)

// Publisher mirrors the core mqtt.Publisher interface.
type Publisher = coremqtt.Publisher

// MockPublisher records published documents for tests.
type MockPublisher struct {
	mu        sync.Mutex
	Documents []coremqtt.ScheduleDocument
	Fail      bool
	Closed    bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishSchedule records the document or returns an error if configured to fail.
func (m *MockPublisher) PublishSchedule(doc coremqtt.ScheduleDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Documents = append(m.Documents, doc)
	return nil
}

// Close marks the publisher closed.
func (m *MockPublisher) Close() {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
}

// Published returns a copy of the recorded documents.
func (m *MockPublisher) Published() []coremqtt.ScheduleDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]coremqtt.ScheduleDocument, len(m.Documents))
	copy(out, m.Documents)
	return out
}
