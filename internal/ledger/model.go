package ledger

import "time"

// DefaultTransactionType is recorded when the caller omits the transaction kind.
const DefaultTransactionType = "purchase"

// Record is one immutable authorization decision. The card number is stored
// masked; the raw PAN never reaches the repository. Records are append-only
// and never deleted.
type Record struct {
	ID                string    `json:"id"`
	CardNumber        string    `json:"card_number"`
	Brand             string    `json:"brand"`
	Amount            float64   `json:"amount"`
	TransactionType   string    `json:"transaction_type"`
	Status            string    `json:"status"`
	Reason            string    `json:"reason,omitempty"`
	AuthorizationCode string    `json:"authorization_code,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Page is one slice of the reverse-chronological transaction history.
type Page struct {
	Records     []Record `json:"transactions"`
	CurrentPage int      `json:"current_page"`
	TotalPages  int      `json:"total_pages"`
	TotalItems  int64    `json:"total_items"`
}
