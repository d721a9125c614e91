package ciiubl

import (
	"fmt"

	"github.com/invopop/cii.ubl/cii"
)

// PaymentMeans represents the means of payment
type PaymentMeans struct {
	PaymentMeansCode      IDType            `xml:"cbc:PaymentMeansCode"`
	InstructionNote       []string          `xml:"cbc:InstructionNote"`
	PaymentID             *string           `xml:"cbc:PaymentID"`
	CardAccount           *CardAccount      `xml:"cac:CardAccount"`
	PayerFinancialAccount *FinancialAccount `xml:"cac:PayerFinancialAccount"`
	PayeeFinancialAccount *FinancialAccount `xml:"cac:PayeeFinancialAccount"`
	PaymentMandate        *PaymentMandate   `xml:"cac:PaymentMandate"`
}

// PaymentMandate represents a direct debit mandate
type PaymentMandate struct {
	ID                    IDType            `xml:"cbc:ID"`
	PayerFinancialAccount *FinancialAccount `xml:"cac:PayerFinancialAccount"`
}

// CardAccount represents a card account
type CardAccount struct {
	PrimaryAccountNumberID *string `xml:"cbc:PrimaryAccountNumberID"`
	NetworkID              *string `xml:"cbc:NetworkID"`
	HolderName             *string `xml:"cbc:HolderName"`
}

// FinancialAccount represents a financial account
type FinancialAccount struct {
	ID                         *string `xml:"cbc:ID"`
	Name                       *string `xml:"cbc:Name"`
	FinancialInstitutionBranch *Branch `xml:"cac:FinancialInstitutionBranch"`
}

// Branch represents a branch of a financial institution
type Branch struct {
	ID *string `xml:"cbc:ID"`
}

// PaymentTerms represents the terms of payment
type PaymentTerms struct {
	Note []string `xml:"cbc:Note"`
}

// SchemeIDSEPA tags the seller identifier carried by a direct debit
// creditor reference.
const SchemeIDSEPA = "SEPA"

// Payment means classification code sets, per UNTDID 4461.
var (
	creditTransferCodes = map[string]bool{
		"30": true, // credit transfer
		"42": true, // payment to bank account
		"58": true, // SEPA credit transfer
	}
	directDebitCodes = map[string]bool{
		"49": true, // direct debit
		"59": true, // SEPA direct debit
	}
)

const cardCode = "48" // bank card

// newPaymentMeans classifies a single payment means entry into one of the
// structural variants and builds it. The function is pure: the returned
// identifiers are additional effects (seller identifiers discovered in the
// settlement, e.g. a SEPA creditor reference) that the caller applies to the
// seller party explicitly.
//
// A nil entry return with no effects means the entry was dropped; an error
// diagnostic will have been recorded.
func newPaymentMeans(d *Diagnostics, p []string, pm *cii.PaymentMeans, stl *cii.HeaderTradeSettlement, o *options) (*PaymentMeans, []*IDType) {
	if pm.TypeCode == "" {
		d.Error(p, "payment means without type code, entry dropped")
		return nil, nil
	}

	out := &PaymentMeans{
		PaymentMeansCode: IDType{Value: pm.TypeCode},
		InstructionNote:  nonEmptyStrings(pm.Information),
		PaymentID:        copyText(stl.PaymentReference),
	}

	switch {
	case creditTransferCodes[pm.TypeCode]:
		account := newPayeeAccount(pm)
		if account == nil {
			if o.version.StrictPaymentAccount {
				d.Error(p, "credit transfer without payee account, entry dropped")
				return nil, nil
			}
			d.Warn(p, "credit transfer without payee account")
		}
		out.PayeeFinancialAccount = account

	case pm.TypeCode == cardCode:
		if pm.Card == nil || pm.Card.ID.Empty() {
			d.Error(p, "card payment without primary account number, entry dropped")
			return nil, nil
		}
		if o.cardNetworkID == "" {
			d.Error(p, "card payment without a configured network id, entry dropped")
			return nil, nil
		}
		networkID := o.cardNetworkID
		out.CardAccount = &CardAccount{
			PrimaryAccountNumberID: &pm.Card.ID.Value,
			NetworkID:              &networkID,
			HolderName:             copyText(pm.Card.CardholderName),
		}

	case directDebitCodes[pm.TypeCode]:
		var effects []*IDType
		if !stl.CreditorReferenceID.Empty() {
			scheme := SchemeIDSEPA
			effects = append(effects, &IDType{
				SchemeID: &scheme,
				Value:    stl.CreditorReferenceID.Value,
			})
		}
		out.PaymentMandate = newPaymentMandate(pm, stl)
		return out, effects

	default:
		// Any other type code is accepted as-is without a structural
		// sub-block.
	}

	return out, nil
}

// newPayeeAccount builds the payee account for a credit transfer, preferring
// the IBAN over a proprietary account id.
func newPayeeAccount(pm *cii.PaymentMeans) *FinancialAccount {
	acct := pm.PayeeAccount
	if acct == nil {
		return nil
	}
	fa := new(FinancialAccount)
	switch {
	case !acct.IBANID.Empty():
		fa.ID = &acct.IBANID.Value
	case !acct.ProprietaryID.Empty():
		fa.ID = &acct.ProprietaryID.Value
	default:
		return nil
	}
	fa.Name = copyText(acct.AccountName)
	if inst := pm.PayeeInstitution; inst != nil && !inst.BICID.Empty() {
		fa.FinancialInstitutionBranch = &Branch{ID: &inst.BICID.Value}
	}
	return fa
}

// newPaymentMandate builds the direct debit mandate, sourcing the mandate id
// from the first payment terms entry that carries one.
func newPaymentMandate(pm *cii.PaymentMeans, stl *cii.HeaderTradeSettlement) *PaymentMandate {
	var mandateID string
	for _, pt := range stl.PaymentTerms {
		if !pt.DirectDebitMandateID.Empty() {
			mandateID = pt.DirectDebitMandateID.Value
			break
		}
	}

	var payer *FinancialAccount
	if acct := pm.PayerAccount; acct != nil {
		switch {
		case !acct.IBANID.Empty():
			payer = &FinancialAccount{ID: &acct.IBANID.Value}
		case !acct.ProprietaryID.Empty():
			payer = &FinancialAccount{ID: &acct.ProprietaryID.Value}
		}
	}
	if inst := pm.PayerInstitution; payer != nil && inst != nil && !inst.BICID.Empty() {
		payer.FinancialInstitutionBranch = &Branch{ID: &inst.BICID.Value}
	}

	if mandateID == "" && payer == nil {
		return nil
	}
	return &PaymentMandate{
		ID:                    IDType{Value: mandateID},
		PayerFinancialAccount: payer,
	}
}

// addPayment maps all payment means and payment terms of the settlement.
// Seller identifier effects returned by the classifier are applied to the
// supplier party here, keeping the classifier itself pure.
func (ui *Invoice) addPayment(d *Diagnostics, p []string, stl *cii.HeaderTradeSettlement, o *options) {
	for i, pm := range stl.PaymentMeans {
		mp := path(p, fmt.Sprintf("SpecifiedTradeSettlementPaymentMeans[%d]", i))
		means, effects := newPaymentMeans(d, mp, pm, stl, o)
		if means != nil {
			ui.PaymentMeans = append(ui.PaymentMeans, *means)
		}
		for _, id := range effects {
			if ui.AccountingSupplierParty.Party != nil {
				addPartyIdentification(ui.AccountingSupplierParty.Party, id)
			}
		}
	}

	ui.addPaymentTerms(d, p, stl)
}

// addPaymentTerms maps the payment terms notes and the document due date.
// Credit notes carry no due date by schema.
func (ui *Invoice) addPaymentTerms(d *Diagnostics, p []string, stl *cii.HeaderTradeSettlement) {
	for i, pt := range stl.PaymentTerms {
		tp := path(p, fmt.Sprintf("SpecifiedTradePaymentTerms[%d]", i))
		if notes := nonEmptyStrings(pt.Description); len(notes) > 0 {
			ui.PaymentTerms = append(ui.PaymentTerms, PaymentTerms{Note: notes})
		}
		if ui.DueDate == nil && ui.CreditNoteTypeCode == "" {
			ui.DueDate = parseDate(d, path(tp, "DueDateDateTime"), pt.DueDate)
		}
	}
}

func nonEmptyStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
