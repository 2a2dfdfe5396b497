package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/usecase"
)

const journalColumns = `code, label, type, active, created_at, updated_at`

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	db querier
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return newJournalRepositoryWithDB(pool)
}

func newJournalRepositoryWithDB(db querier) *JournalRepository {
	return &JournalRepository{db: db}
}

// GetOrCreate inserts the journal if its code is not taken, then reads
// back whichever row won.
func (r *JournalRepository) GetOrCreate(ctx context.Context, tx usecase.Transaction, journal *domain.Journal) (*domain.Journal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO journals (code, label, type, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (code) DO NOTHING`,
		journal.Code,
		journal.Label,
		string(journal.Type),
		journal.Active,
		timeToPgTimestamptz(journal.CreatedAt),
		timeToPgTimestamptz(journal.UpdatedAt),
	)
	if err != nil {
		return nil, err
	}

	row := pgxTx.QueryRow(ctx,
		`SELECT `+journalColumns+` FROM journals WHERE code = $1`,
		journal.Code,
	)

	return scanJournal(row)
}

// GetByCode retrieves a journal by code.
func (r *JournalRepository) GetByCode(ctx context.Context, code string) (*domain.Journal, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+journalColumns+` FROM journals WHERE code = $1`,
		code,
	)

	journal, err := scanJournal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJournalNotFound
		}

		return nil, err
	}

	return journal, nil
}

// List lists journals ordered by code, with pagination.
func (r *JournalRepository) List(ctx context.Context, limit, offset int) ([]*domain.Journal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+journalColumns+` FROM journals ORDER BY code LIMIT $1 OFFSET $2`,
		int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	journals := make([]*domain.Journal, 0)

	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}

		journals = append(journals, journal)
	}

	return journals, rows.Err()
}

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var (
		journal   domain.Journal
		typ       string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&journal.Code,
		&journal.Label,
		&typ,
		&journal.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	journal.Type = domain.JournalType(typ)
	journal.CreatedAt = createdAt.Time
	journal.UpdatedAt = updatedAt.Time

	return &journal, nil
}
