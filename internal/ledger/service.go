package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cardauth/cardauth/internal/card"
	"github.com/cardauth/cardauth/internal/engine"
)

const (
	// DefaultPage is used when the caller omits or mangles the page number.
	DefaultPage = 1
	// DefaultPageSize bounds a page when the caller does not specify one.
	DefaultPageSize = 10
)

// Service evaluates transaction requests and maintains the decision history.
type Service struct {
	engine *engine.Engine
	repo   Repository
}

// NewService builds a ledger service from the rule engine and a repository.
func NewService(eng *engine.Engine, repo Repository) *Service {
	return &Service{engine: eng, repo: repo}
}

// Input captures a raw transaction submission.
type Input struct {
	CardNumber      string
	Brand           string
	Amount          float64
	TransactionType string
}

// Submit evaluates the request, masks the card number and persists the
// decision. Declines are normal results, not errors; an error here means the
// record was not stored.
func (s *Service) Submit(ctx context.Context, in Input) (Record, error) {
	decision := s.engine.Evaluate(engine.Request{
		CardNumber:      in.CardNumber,
		Brand:           in.Brand,
		Amount:          in.Amount,
		TransactionType: in.TransactionType,
	})

	kind := in.TransactionType
	if kind == "" {
		kind = DefaultTransactionType
	}

	rec := Record{
		ID:                uuid.New().String(),
		CardNumber:        card.Mask(in.CardNumber),
		Brand:             in.Brand,
		Amount:            in.Amount,
		TransactionType:   kind,
		Status:            decision.Status,
		Reason:            decision.Reason,
		AuthorizationCode: decision.AuthorizationCode,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns one page of records, newest first. Page numbers are 1-indexed;
// out-of-range or non-positive values fall back to the defaults, and a page
// past the end yields an empty slice with correct metadata.
func (s *Service) List(ctx context.Context, page, pageSize int) (Page, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return Page{}, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	records, err := s.repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Records:     records,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}
