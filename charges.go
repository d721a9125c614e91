package ciiubl

import (
	"fmt"

	"github.com/invopop/cii.ubl/cii"
)

// AllowanceCharge represents an allowance or charge
type AllowanceCharge struct {
	ChargeIndicator           bool           `xml:"cbc:ChargeIndicator"`
	AllowanceChargeReasonCode *string        `xml:"cbc:AllowanceChargeReasonCode"`
	AllowanceChargeReason     *string        `xml:"cbc:AllowanceChargeReason"`
	MultiplierFactorNumeric   *string        `xml:"cbc:MultiplierFactorNumeric"`
	Amount                    Amount         `xml:"cbc:Amount"`
	BaseAmount                *Amount        `xml:"cbc:BaseAmount"`
	TaxCategory               []*TaxCategory `xml:"cac:TaxCategory"`
}

// chargeKind is the resolved state of a charge indicator. The source format
// allows the indicator to arrive as a native boolean, as an indicator string,
// or not at all, so resolution is tri-state.
type chargeKind int

const (
	chargeUndetermined chargeKind = iota
	chargeAllowance
	chargeCharge
)

// resolveChargeIndicator resolves the tri-state charge indicator. The native
// boolean form wins when present; the string form accepts only the literal
// values "true" and "false". Anything else is undetermined.
func resolveChargeIndicator(ind *cii.Indicator) chargeKind {
	if ind == nil {
		return chargeUndetermined
	}
	if ind.Indicator != nil {
		if *ind.Indicator {
			return chargeCharge
		}
		return chargeAllowance
	}
	switch ind.IndicatorString {
	case "true":
		return chargeCharge
	case "false":
		return chargeAllowance
	}
	return chargeUndetermined
}

// newAllowanceCharges maps a list of document or line level allowances and
// charges. Entries whose indicator cannot be resolved are dropped with an
// error diagnostic; the remaining entries keep their source order.
func newAllowanceCharges(d *Diagnostics, p []string, acs []*cii.AllowanceCharge, o *options) []AllowanceCharge {
	if len(acs) == 0 {
		return nil
	}
	out := make([]AllowanceCharge, 0, len(acs))
	for i, ac := range acs {
		cp := path(p, fmt.Sprintf("SpecifiedTradeAllowanceCharge[%d]", i))
		c := newAllowanceCharge(d, cp, ac, o)
		if c != nil {
			out = append(out, *c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func newAllowanceCharge(d *Diagnostics, p []string, ac *cii.AllowanceCharge, o *options) *AllowanceCharge {
	kind := resolveChargeIndicator(ac.ChargeIndicator)
	if kind == chargeUndetermined {
		d.Error(p, "charge indicator missing or not a recognized boolean, entry dropped")
		return nil
	}

	c := &AllowanceCharge{
		ChargeIndicator:           kind == chargeCharge,
		AllowanceChargeReasonCode: copyCode(ac.ReasonCode),
		AllowanceChargeReason:     copyText(ac.Reason),
	}

	if ac.CalculationPercent != "" {
		if v, ok := canonicalDecimal(d, path(p, "CalculationPercent"), ac.CalculationPercent); ok {
			s := v.String()
			c.MultiplierFactorNumeric = &s
		}
	}

	amount := copyAmount(d, path(p, "ActualAmount"), ac.ActualAmount, string(o.defaultCurrency))
	if amount == nil {
		d.Error(p, "allowance or charge without actual amount, entry dropped")
		return nil
	}
	c.Amount = *amount
	c.BaseAmount = copyAmount(d, path(p, "BasisAmount"), ac.BasisAmount, string(o.defaultCurrency))

	for i, tt := range ac.CategoryTradeTaxes {
		tp := path(p, fmt.Sprintf("CategoryTradeTax[%d]", i))
		c.TaxCategory = append(c.TaxCategory, newTaxCategory(d, tp, tt, o))
	}

	return c
}

// newTaxCategory builds a tax category from a trade tax breakdown entry.
func newTaxCategory(d *Diagnostics, p []string, tt *cii.TradeTax, o *options) *TaxCategory {
	tc := &TaxCategory{
		ID:                     copyCode(tt.CategoryCode),
		TaxExemptionReasonCode: copyCode(tt.ExemptionReasonCode),
		TaxExemptionReason:     copyText(tt.ExemptionReason),
		TaxScheme: &TaxScheme{
			ID: IDType{Value: taxSchemeID(tt.TypeCode, o)},
		},
	}
	if tt.RateApplicablePercent != "" {
		if v, ok := canonicalDecimal(d, path(p, "RateApplicablePercent"), tt.RateApplicablePercent); ok {
			s := v.String()
			tc.Percent = &s
		}
	}
	return tc
}

// taxSchemeID resolves a trade tax type code to the output tax scheme id. The
// legacy registration alias "VA" and an absent code both map to the
// configured VAT scheme.
func taxSchemeID(code string, o *options) string {
	switch code {
	case "", "VA", TaxSchemeVAT:
		return o.vatScheme
	}
	return code
}
