package utils

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// UUIDGenerator produces time-ordered identifiers for idempotency keys and
// devnet object ids.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	return g.newUUID().String()
}

// GenerateHex returns the 16 raw bytes as "0x"-prefixed hex.
func (g *UUIDGenerator) GenerateHex() string {
	id := g.newUUID()
	return "0x" + hex.EncodeToString(id[:])
}

func (g *UUIDGenerator) newUUID() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}
