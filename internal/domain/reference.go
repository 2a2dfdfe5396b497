package domain

// ReferenceType tags an entry with the kind of business record that
// produced it, so all legs of one event can be deleted as a unit.
type ReferenceType string

const (
	ReferenceVente     ReferenceType = "VENTE"
	ReferenceAchat     ReferenceType = "ACHAT"
	ReferenceDepense   ReferenceType = "DEPENSE"
	ReferenceCharge    ReferenceType = "CHARGE"
	ReferenceCaisse    ReferenceType = "CAISSE"
	ReferenceBanque    ReferenceType = "BANQUE"
	ReferenceTransfert ReferenceType = "TRANSFERT"
)

// Valid reports whether t is a known reference type.
func (t ReferenceType) Valid() bool {
	switch t {
	case ReferenceVente, ReferenceAchat, ReferenceDepense, ReferenceCharge,
		ReferenceCaisse, ReferenceBanque, ReferenceTransfert:
		return true
	}

	return false
}

// PaymentMode is how a sale or purchase was settled.
type PaymentMode string

const (
	PaymentEspeces PaymentMode = "ESPECES"
	PaymentCredit  PaymentMode = "CREDIT"
)

// CashMovementDirection is the direction of a cash-register movement.
type CashMovementDirection string

const (
	CashEntree CashMovementDirection = "ENTREE"
	CashSortie CashMovementDirection = "SORTIE"
)

// Valid reports whether d is a known direction.
func (d CashMovementDirection) Valid() bool {
	return d == CashEntree || d == CashSortie
}

// BankOperationType is the closed enumeration of supported bank
// operations. There is no fallback type: an unknown value is rejected
// before classification.
type BankOperationType string

const (
	BankDepot           BankOperationType = "DEPOT"
	BankRetrait         BankOperationType = "RETRAIT"
	BankVirementEntrant BankOperationType = "VIREMENT_ENTRANT"
	BankVirementSortant BankOperationType = "VIREMENT_SORTANT"
	BankFrais           BankOperationType = "FRAIS"
	BankInterets        BankOperationType = "INTERETS"
)

// Valid reports whether t is a known bank operation type.
func (t BankOperationType) Valid() bool {
	switch t {
	case BankDepot, BankRetrait, BankVirementEntrant, BankVirementSortant,
		BankFrais, BankInterets:
		return true
	}

	return false
}
