package domain

import "time"

// JournalType identifies which subdivision of the ledger a journal
// covers.
type JournalType string

const (
	JournalTypeVentes JournalType = "VENTES"
	JournalTypeAchats JournalType = "ACHATS"
	JournalTypeCaisse JournalType = "CAISSE"
	JournalTypeBanque JournalType = "BANQUE"
	JournalTypeOD     JournalType = "OD"
)

// Standard journal codes seeded by InitializeDefaults.
const (
	JournalCodeVentes = "VE"
	JournalCodeAchats = "AC"
	JournalCodeCaisse = "CA"
	JournalCodeBanque = "BA"
	JournalCodeDivers = "OD"
)

// Journal is a named ledger subdivision that entries are filed under,
// keyed by its unique code.
type Journal struct {
	Code      string
	Label     string
	Type      JournalType
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewJournal builds a journal for the given code.
func NewJournal(code, label string, typ JournalType, now time.Time) (*Journal, error) {
	if code == "" {
		return nil, ErrInvalidJournalCode
	}

	switch typ {
	case JournalTypeVentes, JournalTypeAchats, JournalTypeCaisse, JournalTypeBanque, JournalTypeOD:
	default:
		return nil, ErrInvalidJournalType
	}

	return &Journal{
		Code:      code,
		Label:     label,
		Type:      typ,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
