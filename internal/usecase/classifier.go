package usecase

import (
	"strings"

	"github.com/sahelretail/compta/internal/domain"
)

// AccountRef is a fixed reference into the chart of accounts, resolved
// through get-or-create at posting time so the referenced account
// always exists.
type AccountRef struct {
	Number string
	Label  string
	Type   domain.AccountType
}

// Fixed accounts used by the posting rules.
var (
	AccountStock          = AccountRef{Number: "31", Label: "Stocks de marchandises", Type: domain.AccountTypeActif}
	AccountFournisseur    = AccountRef{Number: "401", Label: "Fournisseurs", Type: domain.AccountTypePassif}
	AccountClient         = AccountRef{Number: "411", Label: "Clients", Type: domain.AccountTypeActif}
	AccountBanque         = AccountRef{Number: "512", Label: "Banques", Type: domain.AccountTypeActif}
	AccountCaisse         = AccountRef{Number: "531", Label: "Caisse", Type: domain.AccountTypeActif}
	AccountAchats         = AccountRef{Number: "601", Label: "Achats de marchandises", Type: domain.AccountTypeCharges}
	AccountImpots         = AccountRef{Number: "631", Label: "Impôts et taxes", Type: domain.AccountTypeCharges}
	AccountAutresCharges  = AccountRef{Number: "658", Label: "Autres charges", Type: domain.AccountTypeCharges}
	AccountVentes         = AccountRef{Number: "701", Label: "Ventes de marchandises", Type: domain.AccountTypeProduits}
	AccountProduitsDivers = AccountRef{Number: "758", Label: "Produits divers", Type: domain.AccountTypeProduits}
	AccountInterets       = AccountRef{Number: "771", Label: "Intérêts reçus", Type: domain.AccountTypeProduits}
)

// chargeRule maps rubric keywords to the charge account to debit.
// Rules are evaluated top to bottom; the first match wins.
type chargeRule struct {
	keywords []string
	account  AccountRef
}

var chargeRules = []chargeRule{
	{keywords: []string{"LOYER"}, account: AccountRef{Number: "613", Label: "Loyers", Type: domain.AccountTypeCharges}},
	{keywords: []string{"SALAIRE"}, account: AccountRef{Number: "641", Label: "Charges de personnel", Type: domain.AccountTypeCharges}},
	{keywords: []string{"ELECTRICITE", "EAU"}, account: AccountRef{Number: "614", Label: "Charges locatives", Type: domain.AccountTypeCharges}},
	{keywords: []string{"TRANSPORT"}, account: AccountRef{Number: "624", Label: "Transports", Type: domain.AccountTypeCharges}},
	{keywords: []string{"COMMUNICATION"}, account: AccountRef{Number: "626", Label: "Services bancaires et assimilés", Type: domain.AccountTypeCharges}},
	{keywords: []string{"MAINTENANCE"}, account: AccountRef{Number: "615", Label: "Entretien et réparations", Type: domain.AccountTypeCharges}},
	{keywords: []string{"PUBLICITE"}, account: AccountRef{Number: "612", Label: "Publicité", Type: domain.AccountTypeCharges}},
	{keywords: []string{"ASSURANCE"}, account: AccountRef{Number: "616", Label: "Primes d'assurances", Type: domain.AccountTypeCharges}},
	{keywords: []string{"IMPOT"}, account: AccountImpots},
}

// ClassifyCharge maps a free-text expense rubric to the charge account
// to debit. Matching is a case-insensitive substring check; unmatched
// rubrics fall through to "Autres charges" (658).
func ClassifyCharge(rubric string) AccountRef {
	upper := strings.ToUpper(rubric)

	for _, rule := range chargeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(upper, kw) {
				return rule.account
			}
		}
	}

	return AccountAutresCharges
}

// SaleSettlementAccount returns the account debited by a sale: the
// client receivable for credit sales with a known client, cash
// otherwise.
func SaleSettlementAccount(mode domain.PaymentMode, hasClient bool) AccountRef {
	if mode == domain.PaymentCredit && hasClient {
		return AccountClient
	}

	return AccountCaisse
}

// PurchaseSettlementAccount returns the account credited by a
// purchase: the supplier payable for credit purchases with a known
// supplier, cash otherwise.
func PurchaseSettlementAccount(mode domain.PaymentMode, hasSupplier bool) AccountRef {
	if mode == domain.PaymentCredit && hasSupplier {
		return AccountFournisseur
	}

	return AccountCaisse
}

// BankOperationLegs returns the debit and credit accounts for a bank
// operation. One leg is always the bank account; the counter-account
// is fixed per operation type. The enumeration is closed: an unknown
// type is an error, never a fallback.
func BankOperationLegs(opType domain.BankOperationType, bank AccountRef) (debit, credit AccountRef, err error) {
	switch opType {
	case domain.BankDepot:
		return bank, AccountProduitsDivers, nil
	case domain.BankVirementEntrant:
		return bank, AccountClient, nil
	case domain.BankInterets:
		return bank, AccountInterets, nil
	case domain.BankRetrait:
		return AccountCaisse, bank, nil
	case domain.BankVirementSortant:
		return AccountFournisseur, bank, nil
	case domain.BankFrais:
		return AccountImpots, bank, nil
	default:
		return AccountRef{}, AccountRef{}, domain.ErrUnknownBankOperation
	}
}

// BankAccountRef returns the bank account to use for an operation:
// the explicitly linked account number when the bank record carries
// one, 512 otherwise.
func BankAccountRef(linkedNumber string) AccountRef {
	if linkedNumber == "" {
		return AccountBanque
	}

	return AccountRef{Number: linkedNumber, Label: AccountBanque.Label, Type: domain.AccountTypeActif}
}
