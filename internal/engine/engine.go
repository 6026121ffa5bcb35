package engine

import "strings"

const (
	// StatusApproved marks a transaction that passed every rule.
	StatusApproved = "approved"
	// StatusDeclined marks a transaction rejected by a rule.
	StatusDeclined = "declined"
)

const (
	// ReasonInvalidPAN is returned when the card number does not carry exactly 16 digits.
	ReasonInvalidPAN = "PAN must have 16 digits"
	// ReasonBrandNotAllowed is returned for brands outside the accepted set.
	ReasonBrandNotAllowed = "Brand not allowed"
	// ReasonAmountLimit is returned when the amount falls outside the permitted range.
	ReasonAmountLimit = "Exceeds allowed limit"
)

// allowedBrands is the fixed set of accepted card networks, compared case-insensitively.
var allowedBrands = map[string]struct{}{
	"visa":       {},
	"mastercard": {},
	"elo":        {},
}

// Request carries the caller-supplied transaction data the engine evaluates.
type Request struct {
	CardNumber      string
	Brand           string
	Amount          float64
	TransactionType string
}

// Decision is the outcome of rule evaluation. Exactly one of Reason and
// AuthorizationCode is set: declined decisions carry a reason, approved
// decisions carry a 6-digit authorization code.
type Decision struct {
	Status            string
	Reason            string
	AuthorizationCode string
}

// Approved reports whether the decision passed every rule.
func (d Decision) Approved() bool {
	return d.Status == StatusApproved
}

// Engine evaluates transaction requests against the static authorization
// rules. It holds no state and performs no I/O; the only non-determinism is
// the injected authorization code source.
type Engine struct {
	codes CodeGenerator
}

// New builds an engine using the provided authorization code source.
func New(codes CodeGenerator) *Engine {
	return &Engine{codes: codes}
}

// Evaluate applies the rules in fixed order and returns the first failure,
// or an approval with a fresh authorization code when every rule passes.
// The transaction type is recorded downstream but never affects the outcome.
func (e *Engine) Evaluate(req Request) Decision {
	if digitCount(req.CardNumber) != 16 {
		return Decision{Status: StatusDeclined, Reason: ReasonInvalidPAN}
	}

	if _, ok := allowedBrands[strings.ToLower(req.Brand)]; !ok {
		return Decision{Status: StatusDeclined, Reason: ReasonBrandNotAllowed}
	}

	// Both edges are inclusive: 0 and 1000 approve.
	if req.Amount > 1000 || req.Amount < 0 {
		return Decision{Status: StatusDeclined, Reason: ReasonAmountLimit}
	}

	return Decision{Status: StatusApproved, AuthorizationCode: e.codes.Generate()}
}

// digitCount counts decimal digits, ignoring separators and any other
// non-digit characters in the raw card number.
func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
