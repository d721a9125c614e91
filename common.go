package ciiubl

import (
	"strconv"
	"strings"
	"time"

	"github.com/invopop/cii.ubl/cii"
	"github.com/shopspring/decimal"
)

// UBL schema constants
const (
	NamespaceCBC  = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	NamespaceCAC  = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NamespaceQDT  = "urn:oasis:names:specification:ubl:schema:xsd:QualifiedDataTypes-2"
	NamespaceUDT  = "urn:oasis:names:specification:ubl:schema:xsd:UnqualifiedDataTypes-2"
	NamespaceCCTS = "urn:un:unece:uncefact:documentation:2"
	NamespaceXSI  = "http://www.w3.org/2001/XMLSchema-instance"
)

// IDType represents an ID with optional scheme attributes
type IDType struct {
	SchemeID         *string `xml:"schemeID,attr"`
	SchemeName       *string `xml:"schemeName,attr"`
	SchemeAgencyID   *string `xml:"schemeAgencyID,attr"`
	SchemeAgencyName *string `xml:"schemeAgencyName,attr"`
	SchemeVersion    *string `xml:"schemeVersionID,attr"`
	SchemeDataURI    *string `xml:"schemeDataURI,attr"`
	SchemeURI        *string `xml:"schemeURI,attr"`
	ListID           *string `xml:"listID,attr"`
	ListVersionID    *string `xml:"listVersionID,attr"`
	Name             *string `xml:"name,attr"`
	Value            string  `xml:",chardata"`
}

// Amount represents a monetary amount
type Amount struct {
	CurrencyID *string `xml:"currencyID,attr"`
	Value      string  `xml:",chardata"`
}

// Quantity represents a quantity with a unit code
type Quantity struct {
	UnitCode string `xml:"unitCode,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// Period represents a date period with an optional description code
type Period struct {
	StartDate       *string `xml:"cbc:StartDate,omitempty"`
	EndDate         *string `xml:"cbc:EndDate,omitempty"`
	DescriptionCode *string `xml:"cbc:DescriptionCode,omitempty"`
}

// Reference represents a document reference
type Reference struct {
	ID                  *IDType     `xml:"cbc:ID,omitempty"`
	IssueDate           *string     `xml:"cbc:IssueDate,omitempty"`
	DocumentTypeCode    string      `xml:"cbc:DocumentTypeCode,omitempty"`
	DocumentDescription *string     `xml:"cbc:DocumentDescription,omitempty"`
	Attachment          *Attachment `xml:"cac:Attachment,omitempty"`
}

// Attachment represents an embedded or external attachment
type Attachment struct {
	EmbeddedDocumentBinaryObject *BinaryObject      `xml:"cbc:EmbeddedDocumentBinaryObject,omitempty"`
	ExternalReference            *ExternalReference `xml:"cac:ExternalReference,omitempty"`
}

// BinaryObject represents embedded binary content
type BinaryObject struct {
	MimeCode string `xml:"mimeCode,attr"`
	Filename string `xml:"filename,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// ExternalReference represents an external document location
type ExternalReference struct {
	URI *string `xml:"cbc:URI,omitempty"`
}

// OrderReference represents a reference to an order
type OrderReference struct {
	ID           string  `xml:"cbc:ID"`
	SalesOrderID *string `xml:"cbc:SalesOrderID,omitempty"`
}

// BillingReference represents a reference to a preceding invoice
type BillingReference struct {
	InvoiceDocumentReference *Reference `xml:"cac:InvoiceDocumentReference,omitempty"`
}

// ProjectReference represents a project reference, available from UBL 2.2
type ProjectReference struct {
	ID string `xml:"cbc:ID"`
}

// OrderLineReference represents a reference to an order line
type OrderLineReference struct {
	LineID string `xml:"cbc:LineID"`
}

// copyText copies a source text, returning absent for empty values so that
// empty elements are never emitted.
func copyText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// copyCode copies a source code value; empty codes are absent.
func copyCode(s string) *string {
	return copyText(s)
}

// copyID copies an identifier value without scheme metadata.
func copyID(id *cii.ID) *IDType {
	if id.Empty() {
		return nil
	}
	return &IDType{Value: id.Value}
}

// copySchemedID copies an identifier with all its scheme metadata.
func copySchemedID(id *cii.ID) *IDType {
	if id.Empty() {
		return nil
	}
	return &IDType{
		SchemeID:         copyText(id.SchemeID),
		SchemeName:       copyText(id.SchemeName),
		SchemeAgencyID:   copyText(id.SchemeAgencyID),
		SchemeAgencyName: copyText(id.SchemeAgencyName),
		SchemeVersion:    copyText(id.SchemeVersionID),
		SchemeDataURI:    copyText(id.SchemeDataURI),
		SchemeURI:        copyText(id.SchemeURI),
		Value:            id.Value,
	}
}

// canonicalDecimal parses a numeric string to its canonical decimal form.
// Trailing fractional zeroes are stripped on rendering by decimal.String.
func canonicalDecimal(d *Diagnostics, p []string, raw string) (decimal.Decimal, bool) {
	v, err := decimal.NewFromString(normalizeNumericString(raw))
	if err != nil {
		d.Error(p, "invalid numeric value %q", raw)
		return decimal.Decimal{}, false
	}
	return v, true
}

// copyAmount copies a monetary amount, substituting the given default
// currency when the source carries none. An explicitly provided currency is
// always preserved unchanged.
func copyAmount(d *Diagnostics, p []string, a *cii.Amount, defaultCurrency string) *Amount {
	if a == nil || a.Value == "" {
		return nil
	}
	v, ok := canonicalDecimal(d, p, a.Value)
	if !ok {
		return nil
	}
	ccy := a.CurrencyID
	if ccy == "" {
		ccy = defaultCurrency
	}
	out := &Amount{Value: v.String()}
	if ccy != "" {
		out.CurrencyID = &ccy
	}
	return out
}

// copyQuantity copies a quantity with its unit code.
func copyQuantity(d *Diagnostics, p []string, q *cii.Quantity) *Quantity {
	if q == nil || q.Value == "" {
		return nil
	}
	v, ok := canonicalDecimal(d, p, q.Value)
	if !ok {
		return nil
	}
	return &Quantity{
		UnitCode: q.UnitCode,
		Value:    v.String(),
	}
}

// normalizeNumericString cleans up numeric strings to ensure they can be
// parsed correctly: surrounding whitespace and a bare leading decimal point
// (".07" becomes "0.07") are both tolerated.
func normalizeNumericString(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	} else if strings.HasPrefix(s, "-.") {
		s = "-0" + s[1:]
	}
	return s
}

// defaultDateFormat is the UN/EDIFACT 2379 code assumed when a date string
// carries no format attribute (CCYYMMDD).
const defaultDateFormat = "102"

// dateLayout resolves a UN/EDIFACT 2379 format code to a time layout.
// Codes 103 and 105 have no Go layout and are handled separately.
func dateLayout(format string) (string, bool) {
	switch format {
	case "2": // DDMMYY
		return "020106", true
	case "3": // MMDDYY
		return "010206", true
	case "4": // DDMMCCYY
		return "02012006", true
	case "101": // YYMMDD
		return "060102", true
	case "102": // CCYYMMDD
		return "20060102", true
	}
	return "", false
}

// parseDate parses a CII date-time into the UBL date form (2006-01-02). An
// absent date is not an error and returns absent silently; unsupported
// format codes and unparseable values record an error diagnostic and
// return absent.
func parseDate(d *Diagnostics, p []string, dt *cii.DateTime) *string {
	if dt == nil || dt.DateTimeString == nil {
		return nil
	}
	return parseDateString(d, p, dt.DateTimeString.Value, dt.DateTimeString.Format)
}

// parseFormattedDate is the qdt:DateTimeString variant used on referenced
// documents.
func parseFormattedDate(d *Diagnostics, p []string, dt *cii.FormattedDateTime) *string {
	if dt == nil || dt.DateTimeString == nil {
		return nil
	}
	return parseDateString(d, p, dt.DateTimeString.Value, dt.DateTimeString.Format)
}

func parseDateString(d *Diagnostics, p []string, value, format string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if format == "" {
		format = defaultDateFormat
	}

	var t time.Time
	var err error
	switch format {
	case "103": // YYWWD, ISO week date
		t, err = parseWeekDate(value)
	case "105": // YYDDD, ordinal day of year
		t, err = parseOrdinalDate(value)
	default:
		layout, ok := dateLayout(format)
		if !ok {
			d.Error(p, "unsupported date format code %q", format)
			return nil
		}
		t, err = time.Parse(layout, value)
	}
	if err != nil {
		d.Error(p, "cannot parse date %q with format code %q", value, format)
		return nil
	}

	out := t.Format("2006-01-02")
	return &out
}

// parseWeekDate parses a YYWWD ISO week date.
func parseWeekDate(value string) (time.Time, error) {
	if len(value) != 5 {
		return time.Time{}, &time.ParseError{Layout: "YYWWD", Value: value}
	}
	year, err := parseTwoDigitYear(value[:2])
	if err != nil {
		return time.Time{}, err
	}
	week, err := strconv.Atoi(value[2:4])
	if err != nil || week < 1 || week > 53 {
		return time.Time{}, &time.ParseError{Layout: "YYWWD", Value: value}
	}
	weekday, err := strconv.Atoi(value[4:])
	if err != nil || weekday < 1 || weekday > 7 {
		return time.Time{}, &time.ParseError{Layout: "YYWWD", Value: value}
	}
	// January 4th is always in ISO week 1; walk back to its Monday.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	return monday.AddDate(0, 0, (week-1)*7+weekday-1), nil
}

// parseOrdinalDate parses a YYDDD date with a day-of-year component.
func parseOrdinalDate(value string) (time.Time, error) {
	if len(value) != 5 {
		return time.Time{}, &time.ParseError{Layout: "YYDDD", Value: value}
	}
	year, err := parseTwoDigitYear(value[:2])
	if err != nil {
		return time.Time{}, err
	}
	day, err := strconv.Atoi(value[2:])
	if err != nil || day < 1 || day > 366 {
		return time.Time{}, &time.ParseError{Layout: "YYDDD", Value: value}
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1), nil
}

// parseTwoDigitYear applies the same pivot time.Parse uses for "06" layouts.
func parseTwoDigitYear(s string) (int, error) {
	yy, err := strconv.Atoi(s)
	if err != nil {
		return 0, &time.ParseError{Layout: "YY", Value: s}
	}
	if yy >= 69 {
		return 1900 + yy, nil
	}
	return 2000 + yy, nil
}
