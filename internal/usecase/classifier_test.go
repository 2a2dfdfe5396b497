package usecase_test

import (
	"errors"
	"testing"

	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/usecase"
)

func TestClassifyCharge(t *testing.T) {
	tests := []struct {
		rubric string
		want   string
	}{
		{"Loyer boutique", "613"},
		{"LOYER MAGASIN CENTRAL", "613"},
		{"Salaire vendeuse", "641"},
		{"Facture électricité", "658"}, // accented form does not match the keyword
		{"Facture ELECTRICITE mars", "614"},
		{"EAU SDE", "614"},
		{"Transport marchandises", "624"},
		{"Communication Orange", "626"},
		{"Maintenance climatiseur", "615"},
		{"Publicite radio", "612"},
		{"Assurance boutique", "616"},
		{"Impot synthétique", "631"},
		{"Divers fournitures", "658"},
		{"", "658"},
	}

	for _, tt := range tests {
		t.Run(tt.rubric, func(t *testing.T) {
			got := usecase.ClassifyCharge(tt.rubric)
			if got.Number != tt.want {
				t.Errorf("ClassifyCharge(%q) = %s, want %s", tt.rubric, got.Number, tt.want)
			}
		})
	}
}

func TestClassifyChargeRuleOrder(t *testing.T) {
	// LOYER outranks SALAIRE when both keywords appear.
	got := usecase.ClassifyCharge("Loyer et salaire gardien")
	if got.Number != "613" {
		t.Errorf("expected first rule to win, got %s", got.Number)
	}
}

func TestSaleSettlementAccount(t *testing.T) {
	tests := []struct {
		name      string
		mode      domain.PaymentMode
		hasClient bool
		want      string
	}{
		{"cash sale", domain.PaymentEspeces, false, "531"},
		{"credit sale with client", domain.PaymentCredit, true, "411"},
		{"credit sale without client falls back to cash", domain.PaymentCredit, false, "531"},
		{"cash sale with client still cash", domain.PaymentEspeces, true, "531"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.SaleSettlementAccount(tt.mode, tt.hasClient)
			if got.Number != tt.want {
				t.Errorf("got %s, want %s", got.Number, tt.want)
			}
		})
	}
}

func TestPurchaseSettlementAccount(t *testing.T) {
	got := usecase.PurchaseSettlementAccount(domain.PaymentCredit, true)
	if got.Number != "401" {
		t.Errorf("credit purchase should settle on 401, got %s", got.Number)
	}

	got = usecase.PurchaseSettlementAccount(domain.PaymentEspeces, false)
	if got.Number != "531" {
		t.Errorf("cash purchase should settle on 531, got %s", got.Number)
	}
}

func TestBankOperationLegs(t *testing.T) {
	bank := usecase.AccountBanque

	tests := []struct {
		opType     domain.BankOperationType
		wantDebit  string
		wantCredit string
	}{
		{domain.BankDepot, "512", "758"},
		{domain.BankVirementEntrant, "512", "411"},
		{domain.BankInterets, "512", "771"},
		{domain.BankRetrait, "531", "512"},
		{domain.BankVirementSortant, "401", "512"},
		{domain.BankFrais, "631", "512"},
	}

	for _, tt := range tests {
		t.Run(string(tt.opType), func(t *testing.T) {
			debit, credit, err := usecase.BankOperationLegs(tt.opType, bank)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if debit.Number != tt.wantDebit || credit.Number != tt.wantCredit {
				t.Errorf("legs = (%s, %s), want (%s, %s)",
					debit.Number, credit.Number, tt.wantDebit, tt.wantCredit)
			}
		})
	}

	_, _, err := usecase.BankOperationLegs("CHEQUE", bank)
	if !errors.Is(err, domain.ErrUnknownBankOperation) {
		t.Fatalf("expected ErrUnknownBankOperation, got %v", err)
	}
}

func TestBankAccountRef(t *testing.T) {
	if got := usecase.BankAccountRef(""); got.Number != "512" {
		t.Errorf("default bank account should be 512, got %s", got.Number)
	}

	if got := usecase.BankAccountRef("514"); got.Number != "514" {
		t.Errorf("linked bank account should be used, got %s", got.Number)
	}
}
