package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sahelretail/compta/internal/domain"
)

// SourceRef identifies one source business record by its reference
// tag.
type SourceRef struct {
	Type domain.ReferenceType
	ID   string
}

// BackfillItem pairs a source reference with the posting that would
// regenerate its accounting trace.
type BackfillItem struct {
	Reference SourceRef
	Post      func(ctx context.Context) error
}

// BackfillFailure records one reference that could not be reposted.
type BackfillFailure struct {
	Reference SourceRef
	Err       error
}

// BackfillReport summarises one backfill run.
type BackfillReport struct {
	Scanned       int
	AlreadyPosted int
	Posted        int
	Failures      []BackfillFailure
	CheckedAt     time.Time
}

// BackfillUseCase reconciles source records that lack their accounting
// trace. Postings are not transactional with the business write that
// triggers them, so a crash between the two can leave a source record
// without entries; this use case is the compensating mechanism.
type BackfillUseCase struct {
	entryRepo EntryRepository
}

// NewBackfillUseCase creates a new BackfillUseCase.
func NewBackfillUseCase(entryRepo EntryRepository) *BackfillUseCase {
	return &BackfillUseCase{entryRepo: entryRepo}
}

// MissingReferences returns the subset of refs that have no entries.
func (uc *BackfillUseCase) MissingReferences(ctx context.Context, refs []SourceRef) ([]SourceRef, error) {
	var missing []SourceRef

	for _, ref := range refs {
		if !ref.Type.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReferenceType, ref.Type)
		}

		exists, err := uc.entryRepo.ExistsByReference(ctx, ref.Type, ref.ID)
		if err != nil {
			return nil, err
		}

		if !exists {
			missing = append(missing, ref)
		}
	}

	return missing, nil
}

// Backfill reposts every item whose reference has no entries yet.
// References that already have entries are skipped, so a backfill run
// never double-posts. Individual failures are collected, not fatal.
func (uc *BackfillUseCase) Backfill(ctx context.Context, items []BackfillItem) (*BackfillReport, error) {
	report := &BackfillReport{
		Scanned:   len(items),
		CheckedAt: time.Now().UTC(),
	}

	for _, item := range items {
		if !item.Reference.Type.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReferenceType, item.Reference.Type)
		}

		exists, err := uc.entryRepo.ExistsByReference(ctx, item.Reference.Type, item.Reference.ID)
		if err != nil {
			return nil, err
		}

		if exists {
			report.AlreadyPosted++
			continue
		}

		if err := item.Post(ctx); err != nil {
			report.Failures = append(report.Failures, BackfillFailure{
				Reference: item.Reference,
				Err:       err,
			})
			continue
		}

		report.Posted++
	}

	return report, nil
}
