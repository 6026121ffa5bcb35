package engine

import (
	"fmt"
	"math/rand"
)

// CodeGenerator produces authorization codes for approved transactions.
// It is injected so tests can supply a deterministic source. Collisions
// between codes are tolerated; uniqueness is not part of the contract.
type CodeGenerator interface {
	Generate() string
}

type randomCodes struct{}

// NewRandomCodes returns the production code source: a uniformly random
// 6-digit numeric code in the range 100000-999999.
func NewRandomCodes() CodeGenerator {
	return randomCodes{}
}

func (randomCodes) Generate() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
