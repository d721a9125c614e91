// Package cii defines the in-memory model of a UN/CEFACT Cross-Industry
// Invoice (CII) document and its XML binding. The model covers the subset of
// the D16B schema required by the EN16931 semantic data model; it is the
// input side of the conversion and is never mutated by the engine.
package cii

// CII namespaces used by Cross-Industry Invoice documents.
const (
	NamespaceRSM = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	NamespaceRAM = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	NamespaceUDT = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
	NamespaceQDT = "urn:un:unece:uncefact:data:standard:QualifiedDataType:100"
)

// Document is the root of a Cross-Industry Invoice. The same root element is
// used for invoices and credit notes; the distinction is carried by the
// ExchangedDocument type code or by the sign of the settlement totals.
type Document struct {
	Context     *ExchangedDocumentContext    `xml:"rsm:ExchangedDocumentContext"`
	Header      *ExchangedDocument           `xml:"rsm:ExchangedDocument"`
	Transaction *SupplyChainTradeTransaction `xml:"rsm:SupplyChainTradeTransaction"`
}

// ExchangedDocumentContext carries the guideline (customization) and business
// process (profile) identifiers of the document.
type ExchangedDocumentContext struct {
	BusinessProcess *DocumentContextParameter `xml:"ram:BusinessProcessSpecifiedDocumentContextParameter"`
	Guideline       *DocumentContextParameter `xml:"ram:GuidelineSpecifiedDocumentContextParameter"`
}

// DocumentContextParameter is a single context parameter.
type DocumentContextParameter struct {
	ID string `xml:"ram:ID"`
}

// ExchangedDocument is the document header.
type ExchangedDocument struct {
	ID            string    `xml:"ram:ID"`
	TypeCode      string    `xml:"ram:TypeCode"`
	IssueDateTime *DateTime `xml:"ram:IssueDateTime"`
	IncludedNote  []Note    `xml:"ram:IncludedNote"`
}

// Note is a free-text note with an optional subject code.
type Note struct {
	Content     []string `xml:"ram:Content"`
	SubjectCode string   `xml:"ram:SubjectCode"`
}

// DateTime wraps a formatted date-time string.
type DateTime struct {
	DateTimeString *FormattedDate `xml:"udt:DateTimeString"`
}

// FormattedDateTime is the qualified variant used on referenced documents.
type FormattedDateTime struct {
	DateTimeString *FormattedDate `xml:"qdt:DateTimeString"`
}

// FormattedDate is a date string with a UN/EDIFACT 2379 format code.
type FormattedDate struct {
	Format string `xml:"format,attr"`
	Value  string `xml:",chardata"`
}

// ID is an identifier with optional scheme metadata.
type ID struct {
	SchemeID         string `xml:"schemeID,attr"`
	SchemeName       string `xml:"schemeName,attr"`
	SchemeAgencyID   string `xml:"schemeAgencyID,attr"`
	SchemeAgencyName string `xml:"schemeAgencyName,attr"`
	SchemeVersionID  string `xml:"schemeVersionID,attr"`
	SchemeDataURI    string `xml:"schemeDataURI,attr"`
	SchemeURI        string `xml:"schemeURI,attr"`
	Value            string `xml:",chardata"`
}

// Empty reports whether the identifier is absent or carries no value.
// Identifiers with an empty value are never copied to the output.
func (id *ID) Empty() bool {
	return id == nil || id.Value == ""
}

// Amount is a decimal amount with an optional currency.
type Amount struct {
	CurrencyID                string `xml:"currencyID,attr"`
	CurrencyCodeListVersionID string `xml:"currencyCodeListVersionID,attr"`
	Value                     string `xml:",chardata"`
}

// Quantity is a decimal quantity with unit code metadata.
type Quantity struct {
	UnitCode       string `xml:"unitCode,attr"`
	UnitCodeListID string `xml:"unitCodeListID,attr"`
	Value          string `xml:",chardata"`
}

// Code is a code value with optional list metadata.
type Code struct {
	ListID        string `xml:"listID,attr"`
	ListVersionID string `xml:"listVersionID,attr"`
	Value         string `xml:",chardata"`
}

// Indicator is a boolean that may arrive either as a native indicator or as
// an indicator string ("true"/"false").
type Indicator struct {
	Indicator       *bool  `xml:"udt:Indicator"`
	IndicatorString string `xml:"udt:IndicatorString"`
}

// SupplyChainTradeTransaction holds the trade agreement, delivery and
// settlement blocks plus the document lines. All three header blocks are
// mandatory for a convertible document.
type SupplyChainTradeTransaction struct {
	LineItems  []*LineItem            `xml:"ram:IncludedSupplyChainTradeLineItem"`
	Agreement  *HeaderTradeAgreement  `xml:"ram:ApplicableHeaderTradeAgreement"`
	Delivery   *HeaderTradeDelivery   `xml:"ram:ApplicableHeaderTradeDelivery"`
	Settlement *HeaderTradeSettlement `xml:"ram:ApplicableHeaderTradeSettlement"`
}

// HeaderTradeAgreement carries the parties and order/contract references.
type HeaderTradeAgreement struct {
	BuyerReference          string                `xml:"ram:BuyerReference"`
	Seller                  *TradeParty           `xml:"ram:SellerTradeParty"`
	Buyer                   *TradeParty           `xml:"ram:BuyerTradeParty"`
	SellerTaxRepresentative *TradeParty           `xml:"ram:SellerTaxRepresentativeTradeParty"`
	SellerOrder             *ReferencedDocument   `xml:"ram:SellerOrderReferencedDocument"`
	BuyerOrder              *ReferencedDocument   `xml:"ram:BuyerOrderReferencedDocument"`
	Contract                *ReferencedDocument   `xml:"ram:ContractReferencedDocument"`
	AdditionalDocuments     []*ReferencedDocument `xml:"ram:AdditionalReferencedDocument"`
	Project                 *ProcuringProject     `xml:"ram:SpecifiedProcuringProject"`
}

// ReferencedDocument is a reference to another document.
type ReferencedDocument struct {
	IssuerAssignedID  string             `xml:"ram:IssuerAssignedID"`
	URIID             string             `xml:"ram:URIID"`
	LineID            string             `xml:"ram:LineID"`
	TypeCode          string             `xml:"ram:TypeCode"`
	Name              string             `xml:"ram:Name"`
	ReferenceTypeCode string             `xml:"ram:ReferenceTypeCode"`
	IssueDateTime     *FormattedDateTime `xml:"ram:FormattedIssueDateTime"`
	Attachment        *BinaryObject      `xml:"ram:AttachmentBinaryObject"`
}

// BinaryObject is an embedded binary attachment.
type BinaryObject struct {
	MimeCode string `xml:"mimeCode,attr"`
	Filename string `xml:"filename,attr"`
	Value    string `xml:",chardata"`
}

// ProcuringProject identifies the project the invoice refers to.
type ProcuringProject struct {
	ID   string `xml:"ram:ID"`
	Name string `xml:"ram:Name"`
}

// TradeParty is any party referenced by the document.
type TradeParty struct {
	ID                []ID                    `xml:"ram:ID"`
	GlobalID          []ID                    `xml:"ram:GlobalID"`
	Name              string                  `xml:"ram:Name"`
	Description       string                  `xml:"ram:Description"`
	LegalOrganization *LegalOrganization      `xml:"ram:SpecifiedLegalOrganization"`
	Contact           *TradeContact           `xml:"ram:DefinedTradeContact"`
	PostalAddress     *TradeAddress           `xml:"ram:PostalTradeAddress"`
	URICommunication  *UniversalCommunication `xml:"ram:URIUniversalCommunication"`
	TaxRegistrations  []*TaxRegistration      `xml:"ram:SpecifiedTaxRegistration"`
}

// LegalOrganization carries a party's legal registration data.
type LegalOrganization struct {
	ID                  *ID    `xml:"ram:ID"`
	TradingBusinessName string `xml:"ram:TradingBusinessName"`
}

// TradeContact is a contact person or department.
type TradeContact struct {
	PersonName     string                  `xml:"ram:PersonName"`
	DepartmentName string                  `xml:"ram:DepartmentName"`
	Telephone      *UniversalCommunication `xml:"ram:TelephoneUniversalCommunication"`
	Email          *UniversalCommunication `xml:"ram:EmailURIUniversalCommunication"`
}

// UniversalCommunication is a communication channel: either a URI-based
// identifier (endpoints, email) or a complete number (telephone).
type UniversalCommunication struct {
	URIID          *ID    `xml:"ram:URIID"`
	CompleteNumber string `xml:"ram:CompleteNumber"`
}

// TradeAddress is a postal address.
type TradeAddress struct {
	PostcodeCode           string `xml:"ram:PostcodeCode"`
	LineOne                string `xml:"ram:LineOne"`
	LineTwo                string `xml:"ram:LineTwo"`
	LineThree              string `xml:"ram:LineThree"`
	CityName               string `xml:"ram:CityName"`
	CountryID              string `xml:"ram:CountryID"`
	CountrySubDivisionName string `xml:"ram:CountrySubDivisionName"`
}

// TaxRegistration is a party tax registration, e.g. a VAT number. The scheme
// id distinguishes VAT ("VA") from fiscal ("FC") registrations.
type TaxRegistration struct {
	ID *ID `xml:"ram:ID"`
}

// HeaderTradeDelivery carries the ship-to party and delivery references.
type HeaderTradeDelivery struct {
	ShipTo          *TradeParty         `xml:"ram:ShipToTradeParty"`
	ActualDelivery  *SupplyChainEvent   `xml:"ram:ActualDeliverySupplyChainEvent"`
	DespatchAdvice  *ReferencedDocument `xml:"ram:DespatchAdviceReferencedDocument"`
	ReceivingAdvice *ReferencedDocument `xml:"ram:ReceivingAdviceReferencedDocument"`
}

// SupplyChainEvent is a dated event in the supply chain.
type SupplyChainEvent struct {
	OccurrenceDateTime *DateTime `xml:"ram:OccurrenceDateTime"`
}

// HeaderTradeSettlement carries currency, taxes, payment data and the
// monetary summation of the document.
type HeaderTradeSettlement struct {
	CreditorReferenceID *ID                   `xml:"ram:CreditorReferenceID"`
	PaymentReference    string                `xml:"ram:PaymentReference"`
	TaxCurrencyCode     string                `xml:"ram:TaxCurrencyCode"`
	InvoiceCurrencyCode string                `xml:"ram:InvoiceCurrencyCode"`
	Payee               *TradeParty           `xml:"ram:PayeeTradeParty"`
	PaymentMeans        []*PaymentMeans       `xml:"ram:SpecifiedTradeSettlementPaymentMeans"`
	TradeTaxes          []*TradeTax           `xml:"ram:ApplicableTradeTax"`
	BillingPeriod       *Period               `xml:"ram:BillingSpecifiedPeriod"`
	AllowanceCharges    []*AllowanceCharge    `xml:"ram:SpecifiedTradeAllowanceCharge"`
	PaymentTerms        []*PaymentTerms       `xml:"ram:SpecifiedTradePaymentTerms"`
	Summation           *MonetarySummation    `xml:"ram:SpecifiedTradeSettlementHeaderMonetarySummation"`
	InvoiceReferences   []*ReferencedDocument `xml:"ram:InvoiceReferencedDocument"`
	AccountingAccount   *AccountingAccount    `xml:"ram:ReceivableSpecifiedTradeAccountingAccount"`
}

// Period is a date range.
type Period struct {
	Start *DateTime `xml:"ram:StartDateTime"`
	End   *DateTime `xml:"ram:EndDateTime"`
}

// TradeTax is one tax breakdown entry, used both at header, allowance/charge
// and line level.
type TradeTax struct {
	CalculatedAmount      *Amount `xml:"ram:CalculatedAmount"`
	TypeCode              string  `xml:"ram:TypeCode"`
	ExemptionReason       string  `xml:"ram:ExemptionReason"`
	BasisAmount           *Amount `xml:"ram:BasisAmount"`
	CategoryCode          string  `xml:"ram:CategoryCode"`
	ExemptionReasonCode   string  `xml:"ram:ExemptionReasonCode"`
	DueDateTypeCode       string  `xml:"ram:DueDateTypeCode"`
	RateApplicablePercent string  `xml:"ram:RateApplicablePercent"`
}

// PaymentMeans is one payment means entry.
type PaymentMeans struct {
	TypeCode         string                `xml:"ram:TypeCode"`
	Information      []string              `xml:"ram:Information"`
	Card             *FinancialCard        `xml:"ram:ApplicableTradeSettlementFinancialCard"`
	PayerAccount     *FinancialAccount     `xml:"ram:PayerPartyDebtorFinancialAccount"`
	PayeeAccount     *FinancialAccount     `xml:"ram:PayeePartyCreditorFinancialAccount"`
	PayerInstitution *FinancialInstitution `xml:"ram:PayerSpecifiedDebtorFinancialInstitution"`
	PayeeInstitution *FinancialInstitution `xml:"ram:PayeeSpecifiedCreditorFinancialInstitution"`
}

// FinancialCard is a payment card.
type FinancialCard struct {
	ID             *ID    `xml:"ram:ID"`
	CardholderName string `xml:"ram:CardholderName"`
}

// FinancialAccount is a bank account, identified by IBAN or a proprietary id.
type FinancialAccount struct {
	IBANID        *ID    `xml:"ram:IBANID"`
	AccountName   string `xml:"ram:AccountName"`
	ProprietaryID *ID    `xml:"ram:ProprietaryID"`
}

// FinancialInstitution is a bank, identified by BIC.
type FinancialInstitution struct {
	BICID *ID `xml:"ram:BICID"`
}

// PaymentTerms is one payment terms entry.
type PaymentTerms struct {
	Description          []string  `xml:"ram:Description"`
	DueDate              *DateTime `xml:"ram:DueDateDateTime"`
	DirectDebitMandateID *ID       `xml:"ram:DirectDebitMandateID"`
	PartialPaymentAmount *Amount   `xml:"ram:PartialPaymentAmount"`
}

// AllowanceCharge is a document or line level allowance or charge. The
// tri-state charge indicator decides which of the two it is.
type AllowanceCharge struct {
	ChargeIndicator    *Indicator  `xml:"ram:ChargeIndicator"`
	SequenceNumeric    string      `xml:"ram:SequenceNumeric"`
	CalculationPercent string      `xml:"ram:CalculationPercent"`
	BasisAmount        *Amount     `xml:"ram:BasisAmount"`
	BasisQuantity      *Quantity   `xml:"ram:BasisQuantity"`
	ActualAmount       *Amount     `xml:"ram:ActualAmount"`
	ReasonCode         string      `xml:"ram:ReasonCode"`
	Reason             string      `xml:"ram:Reason"`
	CategoryTradeTaxes []*TradeTax `xml:"ram:CategoryTradeTax"`
}

// MonetarySummation is the header monetary summation. Tax totals may repeat,
// once per currency.
type MonetarySummation struct {
	LineTotal      *Amount   `xml:"ram:LineTotalAmount"`
	ChargeTotal    *Amount   `xml:"ram:ChargeTotalAmount"`
	AllowanceTotal *Amount   `xml:"ram:AllowanceTotalAmount"`
	TaxBasisTotal  *Amount   `xml:"ram:TaxBasisTotalAmount"`
	TaxTotals      []*Amount `xml:"ram:TaxTotalAmount"`
	RoundingAmount *Amount   `xml:"ram:RoundingAmount"`
	GrandTotal     *Amount   `xml:"ram:GrandTotalAmount"`
	TotalPrepaid   *Amount   `xml:"ram:TotalPrepaidAmount"`
	DuePayable     *Amount   `xml:"ram:DuePayableAmount"`
}

// AccountingAccount is a buyer accounting reference.
type AccountingAccount struct {
	ID *ID `xml:"ram:ID"`
}

// LineItem is one document line.
type LineItem struct {
	LineDocument *LineDocument        `xml:"ram:AssociatedDocumentLineDocument"`
	Product      *TradeProduct        `xml:"ram:SpecifiedTradeProduct"`
	Agreement    *LineTradeAgreement  `xml:"ram:SpecifiedLineTradeAgreement"`
	Delivery     *LineTradeDelivery   `xml:"ram:SpecifiedLineTradeDelivery"`
	Settlement   *LineTradeSettlement `xml:"ram:SpecifiedLineTradeSettlement"`
}

// LineDocument carries the line id and notes.
type LineDocument struct {
	LineID       string `xml:"ram:LineID"`
	IncludedNote []Note `xml:"ram:IncludedNote"`
}

// TradeProduct describes the invoiced item.
type TradeProduct struct {
	GlobalID         *ID                      `xml:"ram:GlobalID"`
	SellerAssignedID *ID                      `xml:"ram:SellerAssignedID"`
	BuyerAssignedID  *ID                      `xml:"ram:BuyerAssignedID"`
	Name             string                   `xml:"ram:Name"`
	Description      string                   `xml:"ram:Description"`
	Characteristics  []*ProductCharacteristic `xml:"ram:ApplicableProductCharacteristic"`
	Classifications  []*ProductClassification `xml:"ram:DesignatedProductClassification"`
	OriginCountry    *TradeCountry            `xml:"ram:OriginTradeCountry"`
}

// ProductCharacteristic is a name/value item property.
type ProductCharacteristic struct {
	Description []string `xml:"ram:Description"`
	Value       []string `xml:"ram:Value"`
}

// ProductClassification is a coded item classification.
type ProductClassification struct {
	ClassCode *Code `xml:"ram:ClassCode"`
}

// TradeCountry is a country reference.
type TradeCountry struct {
	ID string `xml:"ram:ID"`
}

// LineTradeAgreement carries line order references and prices.
type LineTradeAgreement struct {
	BuyerOrder *ReferencedDocument `xml:"ram:BuyerOrderReferencedDocument"`
	GrossPrice *TradePrice         `xml:"ram:GrossPriceProductTradePrice"`
	NetPrice   *TradePrice         `xml:"ram:NetPriceProductTradePrice"`
}

// TradePrice is an item price with an optional basis quantity and, on gross
// prices, the applied item discount.
type TradePrice struct {
	ChargeAmount     *Amount            `xml:"ram:ChargeAmount"`
	BasisQuantity    *Quantity          `xml:"ram:BasisQuantity"`
	AllowanceCharges []*AllowanceCharge `xml:"ram:AppliedTradeAllowanceCharge"`
}

// LineTradeDelivery carries the billed quantity.
type LineTradeDelivery struct {
	BilledQuantity *Quantity `xml:"ram:BilledQuantity"`
}

// LineTradeSettlement carries line taxes, periods, charges and totals.
type LineTradeSettlement struct {
	TradeTaxes          []*TradeTax            `xml:"ram:ApplicableTradeTax"`
	BillingPeriod       *Period                `xml:"ram:BillingSpecifiedPeriod"`
	AllowanceCharges    []*AllowanceCharge     `xml:"ram:SpecifiedTradeAllowanceCharge"`
	AdditionalDocuments []*ReferencedDocument  `xml:"ram:AdditionalReferencedDocument"`
	Summation           *LineMonetarySummation `xml:"ram:SpecifiedTradeSettlementLineMonetarySummation"`
	AccountingAccount   *AccountingAccount     `xml:"ram:ReceivableSpecifiedTradeAccountingAccount"`
}

// LineMonetarySummation is the line monetary summation.
type LineMonetarySummation struct {
	LineTotal *Amount `xml:"ram:LineTotalAmount"`
}
