package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/sahelretail/compta/internal/domain"
)

func TestDeleteByReferenceRowsAffected(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectExec("DELETE FROM entries").
		WithArgs("VENTE", "sale-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mockPool.ExpectCommit()

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo := newEntryRepositoryWithDB(mockPool)
	deleted, err := repo.DeleteByReference(context.Background(), tx, domain.ReferenceVente, "sale-1")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted rows, got %d", deleted)
	}

	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestExistsByReference(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery("SELECT EXISTS").
		WithArgs("ACHAT", "purchase-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := newEntryRepositoryWithDB(mockPool)
	exists, err := repo.ExistsByReference(context.Background(), domain.ReferenceAchat, "purchase-1")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected reference to exist")
	}

	assertExpectations(t, mockPool)
}
