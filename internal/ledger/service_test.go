package ledger

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/cardauth/cardauth/internal/engine"
)

type seqCodes struct {
	n int
}

func (s *seqCodes) Generate() string {
	s.n++
	return fmt.Sprintf("%06d", 100000+s.n)
}

func newTestService() *Service {
	return NewService(engine.New(&seqCodes{}), NewMemoryRepository())
}

func TestSubmitApprovedMasksCardNumber(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rec, err := svc.Submit(ctx, Input{CardNumber: "4111111111111111", Brand: "visa", Amount: 500})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Status != engine.StatusApproved {
		t.Fatalf("expected approval, got %s (%s)", rec.Status, rec.Reason)
	}
	if rec.CardNumber != "**** **** **** 1111" {
		t.Fatalf("card number not masked: %q", rec.CardNumber)
	}
	if len(rec.AuthorizationCode) != 6 {
		t.Fatalf("expected 6-digit code, got %q", rec.AuthorizationCode)
	}
	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Fatal("record missing id or timestamp")
	}
	if rec.TransactionType != DefaultTransactionType {
		t.Fatalf("expected default transaction type, got %q", rec.TransactionType)
	}
}

func TestSubmitDeclinedIsPersisted(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rec, err := svc.Submit(ctx, Input{CardNumber: "123", Brand: "visa", Amount: 500})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Status != engine.StatusDeclined || rec.Reason != engine.ReasonInvalidPAN {
		t.Fatalf("expected PAN decline, got %s (%q)", rec.Status, rec.Reason)
	}
	if rec.AuthorizationCode != "" {
		t.Fatalf("declined record must not carry a code, got %q", rec.AuthorizationCode)
	}

	page, err := svc.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalItems != 1 {
		t.Fatalf("declined decision was not persisted, total=%d", page.TotalItems)
	}
}

func TestListPagination(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		// Distinct amounts let us assert ordering below.
		if _, err := svc.Submit(ctx, Input{CardNumber: "1234567812345678", Brand: "visa", Amount: float64(i)}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	page, err := svc.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page.Records) != 10 || page.CurrentPage != 1 || page.TotalPages != 3 || page.TotalItems != 25 {
		t.Fatalf("unexpected page 1 metadata: %+v", page)
	}
	if page.Records[0].Amount != 24 {
		t.Fatalf("expected newest record first, got amount %v", page.Records[0].Amount)
	}

	page3, err := svc.List(ctx, 3, 10)
	if err != nil {
		t.Fatalf("list page 3: %v", err)
	}
	if len(page3.Records) != 5 {
		t.Fatalf("expected 5 records on last page, got %d", len(page3.Records))
	}

	page4, err := svc.List(ctx, 4, 10)
	if err != nil {
		t.Fatalf("list page 4: %v", err)
	}
	if len(page4.Records) != 0 || page4.TotalPages != 3 || page4.TotalItems != 25 {
		t.Fatalf("past-the-end page must be empty with intact metadata: %+v", page4)
	}
}

func TestListDefaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if _, err := svc.Submit(ctx, Input{CardNumber: "1234567812345678", Brand: "elo", Amount: 1, TransactionType: "t" + strconv.Itoa(i)}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	page, err := svc.List(ctx, 0, -3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.CurrentPage != DefaultPage || len(page.Records) != DefaultPageSize {
		t.Fatalf("expected defaults page=%d size=%d, got %+v", DefaultPage, DefaultPageSize, page)
	}
	if page.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", page.TotalPages)
	}
}

func TestListEmptyLedger(t *testing.T) {
	svc := newTestService()

	page, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Records) != 0 || page.TotalPages != 0 || page.TotalItems != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
}
