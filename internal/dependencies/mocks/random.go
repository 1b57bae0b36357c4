package mocks

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/pairings-web/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing. It is safe for
// concurrent use since the gRPC server calls it from several goroutines.
type MockRandom struct {
	mu sync.Mutex

	// UUIDResults is a queue of results to return from UUID
	UUIDResults []uuid.UUID
	uuidIndex   int

	// generated counts UUIDs handed out once the queue is empty
	generated uint64
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// UUID returns the next queued result. Once the queue is exhausted it returns
// sequential UUIDs 00000000-0000-4000-8000-000000000001, ...002 and so on.
func (r *MockRandom) UUID() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.uuidIndex < len(r.UUIDResults) {
		result := r.UUIDResults[r.uuidIndex]
		r.uuidIndex++
		return result
	}
	r.generated++
	var u uuid.UUID
	binary.BigEndian.PutUint64(u[8:], r.generated)
	u[6] = 0x40  // version 4
	u[8] |= 0x80 // RFC 4122 variant
	return u
}

// Bytes returns n bytes of 0x42
func (r *MockRandom) Bytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 0x42
	}
	return b
}

// QueueUUID adds values to the UUID result queue
func (r *MockRandom) QueueUUID(values ...uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.UUIDResults = append(r.UUIDResults, values...)
}
