package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists decision records. Insertion is a single atomic
// operation; an abandoned request leaves no partial record.
type Repository interface {
	Insert(ctx context.Context, rec Record) error
	List(ctx context.Context, limit, offset int) ([]Record, error)
	Count(ctx context.Context) (int64, error)
}

// PostgresRepository stores records in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert appends a decision record.
func (r *PostgresRepository) Insert(ctx context.Context, rec Record) error {
	recID, err := uuid.Parse(rec.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO transactions
        (id, card_number, brand, amount, transaction_type, status, reason, authorization_code, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		recID, rec.CardNumber, rec.Brand, rec.Amount, rec.TransactionType,
		rec.Status, rec.Reason, rec.AuthorizationCode, rec.CreatedAt.UTC())
	return err
}

// List returns records newest-first. The id tiebreak keeps paging stable when
// timestamps collide.
func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]Record, error) {
	rows, err := r.db.Query(ctx, `SELECT id, card_number, brand, amount, transaction_type, status, reason, authorization_code, created_at
        FROM transactions ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		var (
			id        uuid.UUID
			createdAt time.Time
			rec       Record
		)
		if err := rows.Scan(&id, &rec.CardNumber, &rec.Brand, &rec.Amount, &rec.TransactionType,
			&rec.Status, &rec.Reason, &rec.AuthorizationCode, &createdAt); err != nil {
			return nil, err
		}
		rec.ID = id.String()
		rec.CreatedAt = createdAt.UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the total number of stored records.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
