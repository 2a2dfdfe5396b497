package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sahelretail/compta/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository.
type BalanceRepository struct {
	db querier
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return newBalanceRepositoryWithDB(pool)
}

func newBalanceRepositoryWithDB(db querier) *BalanceRepository {
	return &BalanceRepository{db: db}
}

// AccountTotals aggregates debit and credit per account over the
// period. Accounts with no activity in range produce no row. The
// account label and class come from the catalog when the account is
// known; the class falls back to the number's leading digit.
func (r *BalanceRepository) AccountTotals(ctx context.Context, start, end time.Time) ([]*usecase.AccountActivity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.account_number,
			COALESCE(a.label, ''),
			COALESCE(a.class, LEFT(e.account_number, 1)),
			COALESCE(SUM(e.debit), 0),
			COALESCE(SUM(e.credit), 0)
		FROM entries e
		LEFT JOIN accounts a ON a.number = e.account_number
		WHERE e.entry_date >= $1 AND e.entry_date <= $2
		GROUP BY e.account_number, a.label, a.class
		HAVING SUM(e.debit) <> 0 OR SUM(e.credit) <> 0
		ORDER BY e.account_number`,
		timeToPgTimestamptz(start), timeToPgTimestamptz(end),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]*usecase.AccountActivity, 0)

	for rows.Next() {
		var (
			activity usecase.AccountActivity
			debit    pgtype.Numeric
			credit   pgtype.Numeric
		)

		err := rows.Scan(
			&activity.AccountNumber,
			&activity.AccountLabel,
			&activity.Class,
			&debit,
			&credit,
		)
		if err != nil {
			return nil, err
		}

		activity.TotalDebit = numericToDecimal(debit)
		activity.TotalCredit = numericToDecimal(credit)

		activities = append(activities, &activity)
	}

	return activities, rows.Err()
}
