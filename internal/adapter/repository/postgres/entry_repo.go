package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/usecase"
)

const entryColumns = `id, entry_date, journal_code, piece, label, account_number,
	debit, credit, reference, reference_type, reference_id, posted_by, created_at`

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	db querier
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return newEntryRepositoryWithDB(pool)
}

func newEntryRepositoryWithDB(db querier) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts a single entry leg. Callers always create the full
// leg set of a posting inside one transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO entries (id, entry_date, journal_code, piece, label, account_number,
			debit, credit, reference, reference_type, reference_id, posted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID,
		timeToPgTimestamptz(entry.EntryDate),
		entry.JournalCode,
		entry.Piece,
		entry.Label,
		entry.AccountNumber,
		decimalToNumeric(entry.Debit),
		decimalToNumeric(entry.Credit),
		entry.Reference,
		string(entry.ReferenceType),
		entry.ReferenceID,
		entry.PostedBy,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// ListByPeriod retrieves entries dated within [start, end], optionally
// restricted to one account, ordered by date then ID.
func (r *EntryRepository) ListByPeriod(ctx context.Context, start, end time.Time, accountNumber string) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + `
		FROM entries
		WHERE entry_date >= $1 AND entry_date <= $2`
	args := []any{timeToPgTimestamptz(start), timeToPgTimestamptz(end)}

	if accountNumber != "" {
		query += ` AND account_number = $3`
		args = append(args, accountNumber)
	}

	query += ` ORDER BY entry_date, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByReference retrieves the entries posted for one source record.
func (r *EntryRepository) ListByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]*domain.Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+entryColumns+`
		FROM entries
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY id`,
		string(refType), refID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ExistsByReference reports whether any entry was posted for the
// source record.
func (r *EntryRepository) ExistsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (bool, error) {
	var exists bool

	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM entries WHERE reference_type = $1 AND reference_id = $2
		)`,
		string(refType), refID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// DeleteByReference removes every entry posted for the source record
// and returns how many were deleted.
func (r *EntryRepository) DeleteByReference(ctx context.Context, tx usecase.Transaction, refType domain.ReferenceType, refID string) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`DELETE FROM entries WHERE reference_type = $1 AND reference_id = $2`,
		string(refType), refID,
	)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func scanEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	entries := make([]*domain.Entry, 0)

	for rows.Next() {
		var (
			entry     domain.Entry
			refType   string
			entryDate pgtype.Timestamptz
			debit     pgtype.Numeric
			credit    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&entry.ID,
			&entryDate,
			&entry.JournalCode,
			&entry.Piece,
			&entry.Label,
			&entry.AccountNumber,
			&debit,
			&credit,
			&entry.Reference,
			&refType,
			&entry.ReferenceID,
			&entry.PostedBy,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entry.EntryDate = entryDate.Time
		entry.Debit = numericToDecimal(debit)
		entry.Credit = numericToDecimal(credit)
		entry.ReferenceType = domain.ReferenceType(refType)
		entry.CreatedAt = createdAt.Time

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
