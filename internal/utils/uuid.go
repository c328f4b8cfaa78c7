package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers for queued operations
// and migration attempts. UUIDv7 keeps queue ids sortable by creation
// time, which preserves FIFO semantics after a persistence round-trip.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
