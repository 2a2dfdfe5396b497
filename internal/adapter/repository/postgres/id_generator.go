package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID entry identifiers. ULIDs sort by
// creation time, so entry IDs double as a stable tiebreaker when
// ordering entries posted on the same date.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
