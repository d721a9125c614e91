package ciiubl

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/invopop/cii.ubl/cii"
	"github.com/invopop/validation"
)

// Main UBL Invoice Namespace
const (
	NamespaceUBLInvoice    = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NamespaceUBLCreditNote = "urn:oasis:names:specification:ubl:schema:xsd:CreditNote-2"
)

// Schema location constants
const (
	SchemaLocationInvoice    = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2 http://docs.oasis-open.org/ubl/os-UBL-2.1/xsd/maindoc/UBL-Invoice-2.1.xsd"
	SchemaLocationCreditNote = "urn:oasis:names:specification:ubl:schema:xsd:CreditNote-2 https://docs.oasis-open.org/ubl/os-UBL-2.1/xsd/maindoc/UBL-CreditNote-2.1.xsd"
)

// Default document type codes applied when the source carries none.
const (
	DefaultInvoiceTypeCode    = "380"
	DefaultCreditNoteTypeCode = "381"
)

// Invoice represents the root element of a UBL Invoice **or** Credit Note; the structures
// between the two types are so similar, that it doesn't make much sense to separate.
type Invoice struct {
	// Attributes
	XMLName        xml.Name
	CACNamespace   string `xml:"xmlns:cac,attr"`
	CBCNamespace   string `xml:"xmlns:cbc,attr"`
	QDTNamespace   string `xml:"xmlns:qdt,attr"`
	UDTNamespace   string `xml:"xmlns:udt,attr"`
	CCTSNamespace  string `xml:"xmlns:ccts,attr"`
	UBLNamespace   string `xml:"xmlns,attr"`
	XSINamespace   string `xml:"xmlns:xsi,attr"`
	SchemaLocation string `xml:"xsi:schemaLocation,attr"`

	UBLVersionID    string  `xml:"cbc:UBLVersionID,omitempty"`
	CustomizationID string  `xml:"cbc:CustomizationID,omitempty"`
	ProfileID       string  `xml:"cbc:ProfileID,omitempty"`
	ID              string  `xml:"cbc:ID"`
	IssueDate       string  `xml:"cbc:IssueDate"`
	DueDate         *string `xml:"cbc:DueDate,omitempty"`

	InvoiceTypeCode    string `xml:"cbc:InvoiceTypeCode,omitempty"`
	CreditNoteTypeCode string `xml:"cbc:CreditNoteTypeCode,omitempty"`

	Note                        []string            `xml:"cbc:Note,omitempty"`
	DocumentCurrencyCode        string              `xml:"cbc:DocumentCurrencyCode,omitempty"`
	TaxCurrencyCode             string              `xml:"cbc:TaxCurrencyCode,omitempty"`
	AccountingCost              string              `xml:"cbc:AccountingCost,omitempty"`
	BuyerReference              string              `xml:"cbc:BuyerReference,omitempty"`
	InvoicePeriod               []Period            `xml:"cac:InvoicePeriod,omitempty"`
	OrderReference              *OrderReference     `xml:"cac:OrderReference,omitempty"`
	BillingReference            []*BillingReference `xml:"cac:BillingReference,omitempty"`
	DespatchDocumentReference   []Reference         `xml:"cac:DespatchDocumentReference,omitempty"`
	ReceiptDocumentReference    []Reference         `xml:"cac:ReceiptDocumentReference,omitempty"`
	OriginatorDocumentReference []Reference         `xml:"cac:OriginatorDocumentReference,omitempty"`
	ContractDocumentReference   []Reference         `xml:"cac:ContractDocumentReference,omitempty"`
	AdditionalDocumentReference []Reference         `xml:"cac:AdditionalDocumentReference,omitempty"`
	ProjectReference            []ProjectReference  `xml:"cac:ProjectReference,omitempty"`
	AccountingSupplierParty     SupplierParty       `xml:"cac:AccountingSupplierParty"`
	AccountingCustomerParty     CustomerParty       `xml:"cac:AccountingCustomerParty"`
	PayeeParty                  *Party              `xml:"cac:PayeeParty,omitempty"`
	TaxRepresentativeParty      *Party              `xml:"cac:TaxRepresentativeParty,omitempty"`
	Delivery                    []*Delivery         `xml:"cac:Delivery,omitempty"`
	PaymentMeans                []PaymentMeans      `xml:"cac:PaymentMeans,omitempty"`
	PaymentTerms                []PaymentTerms      `xml:"cac:PaymentTerms,omitempty"`
	AllowanceCharge             []AllowanceCharge   `xml:"cac:AllowanceCharge,omitempty"`
	TaxTotal                    []TaxTotal          `xml:"cac:TaxTotal,omitempty"`
	LegalMonetaryTotal          MonetaryTotal       `xml:"cac:LegalMonetaryTotal"`
	InvoiceLines                []InvoiceLine       `xml:"cac:InvoiceLine,omitempty"`
	CreditNoteLines             []InvoiceLine       `xml:"cac:CreditNoteLine,omitempty"`
}

// Document type code sets per UNTDID 1001, split into the codes that denote
// an invoice and those that denote a credit note. The two sets are disjoint.
var (
	invoiceTypeCodes = codeSet(
		"80", "82", "84", "130", "202", "203", "204", "211", "295", "325",
		"326", "380", "383", "384", "385", "386", "387", "388", "389", "390",
		"393", "394", "395", "420", "456", "457", "458", "527", "575", "623",
		"633", "751", "780", "935",
	)
	creditNoteTypeCodes = codeSet(
		"81", "83", "261", "262", "296", "308", "381", "532",
	)
)

func codeSet(codes ...string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, c := range codes {
		m[c] = true
	}
	return m
}

// Due date type code (UNTDID 2005) to invoice period description code
// (UNTDID 2475) remapping.
var dueDateTypeCodes = map[string]string{
	"5":  "3",   // date of invoice
	"29": "35",  // delivery date
	"72": "432", // payment date
}

// classifyCreditNote decides whether the document is a credit note. The
// header type code wins when it belongs to one of the known code sets; an
// absent or unrecognized code falls back to the sign of the due payable
// total; with no total either, a warning is recorded and the document
// defaults to an invoice. Forced creation modes bypass classification.
func classifyCreditNote(d *Diagnostics, doc *cii.Document, o *options) bool {
	switch o.mode {
	case ModeInvoice:
		return false
	case ModeCreditNote:
		return true
	}

	var typeCode string
	if doc.Header != nil {
		typeCode = doc.Header.TypeCode
	}
	switch {
	case invoiceTypeCodes[typeCode]:
		return false
	case creditNoteTypeCodes[typeCode]:
		return true
	}

	stl := doc.Transaction.Settlement
	if stl.Summation != nil && stl.Summation.DuePayable != nil && stl.Summation.DuePayable.Value != "" {
		due, ok := canonicalDecimal(d,
			path(nil, "SupplyChainTradeTransaction", "ApplicableHeaderTradeSettlement",
				"SpecifiedTradeSettlementHeaderMonetarySummation", "DuePayableAmount"),
			stl.Summation.DuePayable.Value)
		if ok {
			return due.IsNegative()
		}
	}

	d.Warn(path(nil, "ExchangedDocument", "TypeCode"),
		"document type undetermined, defaulting to invoice")
	return false
}

// validateStructure checks the three mandatory top-level substructures.
// Their absence aborts the whole conversion.
func validateStructure(doc *cii.Document) error {
	tx := doc.Transaction
	if tx == nil {
		return validation.Errors{
			"SupplyChainTradeTransaction": errors.New("cannot be blank"),
		}
	}
	inner := validation.Errors{}
	if tx.Agreement == nil {
		inner["ApplicableHeaderTradeAgreement"] = errors.New("cannot be blank")
	}
	if tx.Delivery == nil {
		inner["ApplicableHeaderTradeDelivery"] = errors.New("cannot be blank")
	}
	if tx.Settlement == nil {
		inner["ApplicableHeaderTradeSettlement"] = errors.New("cannot be blank")
	}
	if len(inner) > 0 {
		return validation.Errors{"SupplyChainTradeTransaction": inner}
	}
	return nil
}

func newInvoice(doc *cii.Document, o *options) (*Invoice, *Diagnostics, error) { //nolint:gocyclo
	if err := validateStructure(doc); err != nil {
		return nil, nil, err
	}

	d := new(Diagnostics)
	tx := doc.Transaction
	agr := tx.Agreement
	stl := tx.Settlement

	txPath := path(nil, "SupplyChainTradeTransaction")
	agrPath := path(txPath, "ApplicableHeaderTradeAgreement")
	delPath := path(txPath, "ApplicableHeaderTradeDelivery")
	stlPath := path(txPath, "ApplicableHeaderTradeSettlement")

	creditNote := classifyCreditNote(d, doc, o)

	ccy := stl.InvoiceCurrencyCode
	if ccy == "" {
		ccy = string(o.defaultCurrency)
	}

	out := &Invoice{
		XMLName:              xml.Name{Local: "Invoice"},
		CACNamespace:         NamespaceCAC,
		CBCNamespace:         NamespaceCBC,
		QDTNamespace:         NamespaceQDT,
		UDTNamespace:         NamespaceUDT,
		UBLNamespace:         NamespaceUBLInvoice,
		CCTSNamespace:        NamespaceCCTS,
		XSINamespace:         NamespaceXSI,
		SchemaLocation:       SchemaLocationInvoice,
		UBLVersionID:         o.version.VersionID,
		DocumentCurrencyCode: ccy,
		TaxCurrencyCode:      stl.TaxCurrencyCode,
	}
	if creditNote {
		out.XMLName = xml.Name{Local: "CreditNote"}
		out.UBLNamespace = NamespaceUBLCreditNote
		out.SchemaLocation = SchemaLocationCreditNote
	}

	out.addHeader(d, doc.Header, creditNote)
	out.addContext(doc.Context, o)

	out.BuyerReference = agr.BuyerReference
	if aa := stl.AccountingAccount; aa != nil && !aa.ID.Empty() {
		out.AccountingCost = aa.ID.Value
	}

	if per := newPeriod(d, path(stlPath, "BillingSpecifiedPeriod"), stl.BillingPeriod, billingPeriodCode(d, stlPath, stl)); per != nil {
		out.InvoicePeriod = []Period{*per}
	}

	out.addOrderReference(d, agrPath, agr, o)
	out.addReferences(d, agrPath, delPath, stlPath, tx, o)

	out.AccountingSupplierParty = SupplierParty{Party: newParty(agr.Seller, true, o)}
	out.AccountingCustomerParty = CustomerParty{Party: newParty(agr.Buyer, false, o)}
	if agr.SellerTaxRepresentative != nil {
		out.TaxRepresentativeParty = newParty(agr.SellerTaxRepresentative, false, o)
	}
	if stl.Payee != nil {
		out.PayeeParty = newParty(stl.Payee, false, o)
	}

	if del := newDelivery(d, delPath, tx.Delivery); del != nil {
		out.Delivery = []*Delivery{del}
	}

	out.addPayment(d, stlPath, stl, o)
	out.AllowanceCharge = newAllowanceCharges(d, stlPath, stl.AllowanceCharges, o)
	out.addTaxTotals(d, stlPath, stl, ccy, o)
	out.addMonetaryTotal(d, stlPath, stl, ccy)
	out.addLines(d, txPath, tx.LineItems, ccy, o)

	return out, d, nil
}

// addHeader maps the exchanged document header: id, issue date, type code
// and notes.
func (ui *Invoice) addHeader(d *Diagnostics, hdr *cii.ExchangedDocument, creditNote bool) {
	typeCode := ""
	if hdr != nil {
		hp := path(nil, "ExchangedDocument")
		ui.ID = hdr.ID
		if date := parseDate(d, path(hp, "IssueDateTime"), hdr.IssueDateTime); date != nil {
			ui.IssueDate = *date
		}
		typeCode = hdr.TypeCode
		for _, note := range hdr.IncludedNote {
			ui.Note = append(ui.Note, nonEmptyStrings(note.Content)...)
		}
	}

	if creditNote {
		if !creditNoteTypeCodes[typeCode] {
			typeCode = DefaultCreditNoteTypeCode
		}
		ui.CreditNoteTypeCode = typeCode
	} else {
		if !invoiceTypeCodes[typeCode] {
			typeCode = DefaultInvoiceTypeCode
		}
		ui.InvoiceTypeCode = typeCode
	}
}

// addContext carries the customization and profile identifiers from the
// source document context; configured values override them when non-empty.
func (ui *Invoice) addContext(ctx *cii.ExchangedDocumentContext, o *options) {
	if ctx != nil {
		if ctx.Guideline != nil {
			ui.CustomizationID = ctx.Guideline.ID
		}
		if ctx.BusinessProcess != nil {
			ui.ProfileID = ctx.BusinessProcess.ID
		}
	}
	if o.customizationID != "" {
		ui.CustomizationID = o.customizationID
	}
	if o.profileID != "" {
		ui.ProfileID = o.profileID
	}
}

// billingPeriodCode derives the invoice period description code from the
// first due date type code found in the trade tax breakdown.
func billingPeriodCode(d *Diagnostics, p []string, stl *cii.HeaderTradeSettlement) string {
	for i, tt := range stl.TradeTaxes {
		if tt.DueDateTypeCode == "" {
			continue
		}
		code, ok := dueDateTypeCodes[tt.DueDateTypeCode]
		if !ok {
			d.Warn(path(p, fmt.Sprintf("ApplicableTradeTax[%d]", i), "DueDateTypeCode"),
				"unknown due date type code %q", tt.DueDateTypeCode)
			return ""
		}
		return code
	}
	return ""
}

// addOrderReference maps the buyer order id. The output schema requires a
// non-empty order reference id, so when only a seller order id is present
// the configured default id is substituted; without one the reference is
// dropped with a warning.
func (ui *Invoice) addOrderReference(d *Diagnostics, p []string, agr *cii.HeaderTradeAgreement, o *options) {
	buyerID := ""
	if agr.BuyerOrder != nil {
		buyerID = agr.BuyerOrder.IssuerAssignedID
	}
	sellerID := ""
	if agr.SellerOrder != nil {
		sellerID = agr.SellerOrder.IssuerAssignedID
	}
	if buyerID == "" && sellerID == "" {
		return
	}
	if buyerID == "" {
		if o.orderReferenceID == "" {
			d.Warn(path(p, "SellerOrderReferencedDocument"),
				"seller order id without buyer order id and no default order reference configured, reference dropped")
			return
		}
		buyerID = o.orderReferenceID
	}
	ui.OrderReference = &OrderReference{
		ID:           buyerID,
		SalesOrderID: copyText(sellerID),
	}
}

// addReferences maps the document references: billing (preceding invoices),
// despatch, receipt, contract, originator and additional documents, plus the
// project reference.
func (ui *Invoice) addReferences(d *Diagnostics, agrPath, delPath, stlPath []string, tx *cii.SupplyChainTradeTransaction, o *options) {
	agr := tx.Agreement
	del := tx.Delivery
	stl := tx.Settlement

	for i, inv := range stl.InvoiceReferences {
		rp := path(stlPath, fmt.Sprintf("InvoiceReferencedDocument[%d]", i))
		if r := newReference(d, rp, inv); r != nil {
			ui.BillingReference = append(ui.BillingReference, &BillingReference{
				InvoiceDocumentReference: r,
			})
		}
	}

	if r := newReference(d, path(delPath, "DespatchAdviceReferencedDocument"), del.DespatchAdvice); r != nil {
		ui.DespatchDocumentReference = []Reference{*r}
	}
	if r := newReference(d, path(delPath, "ReceivingAdviceReferencedDocument"), del.ReceivingAdvice); r != nil {
		ui.ReceiptDocumentReference = []Reference{*r}
	}
	if r := newReference(d, path(agrPath, "ContractReferencedDocument"), agr.Contract); r != nil {
		ui.ContractDocumentReference = []Reference{*r}
	}

	for i, ref := range agr.AdditionalDocuments {
		rp := path(agrPath, fmt.Sprintf("AdditionalReferencedDocument[%d]", i))
		r := newReference(d, rp, ref)
		if r == nil {
			continue
		}
		// Type code 50 marks the originator (tender or lot) reference.
		if ref.TypeCode == "50" {
			ui.OriginatorDocumentReference = append(ui.OriginatorDocumentReference, *r)
			continue
		}
		r.DocumentTypeCode = ref.TypeCode
		ui.AdditionalDocumentReference = append(ui.AdditionalDocumentReference, *r)
	}

	if prj := agr.Project; prj != nil && prj.ID != "" {
		if o.version.SupportsProjectReference {
			ui.ProjectReference = []ProjectReference{{ID: prj.ID}}
		} else {
			// Earlier schema versions have no project reference element; the
			// project travels as an additional document reference instead.
			ui.AdditionalDocumentReference = append(ui.AdditionalDocumentReference, Reference{
				ID:                  &IDType{Value: prj.ID},
				DocumentTypeCode:    "50",
				DocumentDescription: copyText(prj.Name),
			})
		}
	}
}

// newReference maps a referenced document. References without an issuer
// assigned id are absent.
func newReference(d *Diagnostics, p []string, ref *cii.ReferencedDocument) *Reference {
	if ref == nil || ref.IssuerAssignedID == "" {
		return nil
	}
	r := &Reference{
		ID:                  &IDType{Value: ref.IssuerAssignedID},
		IssueDate:           parseFormattedDate(d, path(p, "FormattedIssueDateTime"), ref.IssueDateTime),
		DocumentDescription: copyText(ref.Name),
	}
	if ref.ReferenceTypeCode != "" {
		r.ID.SchemeID = copyText(ref.ReferenceTypeCode)
	}
	if ref.Attachment != nil && ref.Attachment.Value != "" {
		r.Attachment = &Attachment{
			EmbeddedDocumentBinaryObject: &BinaryObject{
				MimeCode: ref.Attachment.MimeCode,
				Filename: ref.Attachment.Filename,
				Value:    ref.Attachment.Value,
			},
		}
	} else if ref.URIID != "" {
		r.Attachment = &Attachment{
			ExternalReference: &ExternalReference{URI: copyText(ref.URIID)},
		}
	}
	return r
}

// newPeriod maps a date period, optionally attaching a description code.
func newPeriod(d *Diagnostics, p []string, per *cii.Period, descriptionCode string) *Period {
	out := &Period{
		DescriptionCode: copyText(descriptionCode),
	}
	if per != nil {
		out.StartDate = parseDate(d, path(p, "StartDateTime"), per.Start)
		out.EndDate = parseDate(d, path(p, "EndDateTime"), per.End)
	}
	if out.StartDate == nil && out.EndDate == nil && out.DescriptionCode == nil {
		return nil
	}
	return out
}
