package utils

import "github.com/google/uuid"

// UUIDGenerator produces request correlation identifiers attached to every
// outbound API call (the X-Request-Id header). These are distinct from the
// content-addressed idempotency tokens card mutations carry, which are
// deterministic and derived from card id and sequence.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered v7 UUID string, falling back to a random v4
// if v7 generation fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
