package ciiubl

import (
	"fmt"

	"github.com/invopop/cii.ubl/cii"
	"github.com/shopspring/decimal"
)

// TaxTotal represents a tax total
type TaxTotal struct {
	TaxAmount   Amount        `xml:"cbc:TaxAmount"`
	TaxSubtotal []TaxSubtotal `xml:"cac:TaxSubtotal"`
}

// TaxSubtotal represents a tax subtotal
type TaxSubtotal struct {
	TaxableAmount *Amount     `xml:"cbc:TaxableAmount,omitempty"`
	TaxAmount     Amount      `xml:"cbc:TaxAmount"`
	TaxCategory   TaxCategory `xml:"cac:TaxCategory"`
}

// TaxCategory represents a tax category
type TaxCategory struct {
	ID                     *string    `xml:"cbc:ID,omitempty"`
	Percent                *string    `xml:"cbc:Percent,omitempty"`
	TaxExemptionReasonCode *string    `xml:"cbc:TaxExemptionReasonCode,omitempty"`
	TaxExemptionReason     *string    `xml:"cbc:TaxExemptionReason,omitempty"`
	TaxScheme              *TaxScheme `xml:"cac:TaxScheme,omitempty"`
}

// MonetaryTotal represents the monetary totals of the invoice. All fields
// are optional copies so that an empty source summation still produces the
// mandatory, empty block.
type MonetaryTotal struct {
	LineExtensionAmount   *Amount `xml:"cbc:LineExtensionAmount,omitempty"`
	TaxExclusiveAmount    *Amount `xml:"cbc:TaxExclusiveAmount,omitempty"`
	TaxInclusiveAmount    *Amount `xml:"cbc:TaxInclusiveAmount,omitempty"`
	AllowanceTotalAmount  *Amount `xml:"cbc:AllowanceTotalAmount,omitempty"`
	ChargeTotalAmount     *Amount `xml:"cbc:ChargeTotalAmount,omitempty"`
	PrepaidAmount         *Amount `xml:"cbc:PrepaidAmount,omitempty"`
	PayableRoundingAmount *Amount `xml:"cbc:PayableRoundingAmount,omitempty"`
	PayableAmount         *Amount `xml:"cbc:PayableAmount,omitempty"`
}

// addTaxTotals builds the tax total blocks: one per tax-total amount on the
// settlement summation (one per currency), the first carrying the subtotals
// from the trade tax breakdown. When the summation has no tax totals at all
// a single zero-amount total in the document currency is synthesized, since
// the output schema mandates at least one tax total block.
func (ui *Invoice) addTaxTotals(d *Diagnostics, p []string, stl *cii.HeaderTradeSettlement, ccy string, o *options) {
	var totals []TaxTotal
	if s := stl.Summation; s != nil {
		for i, ta := range s.TaxTotals {
			tp := path(p, "SpecifiedTradeSettlementHeaderMonetarySummation", fmt.Sprintf("TaxTotalAmount[%d]", i))
			amount := copyAmount(d, tp, ta, ccy)
			if amount == nil {
				continue
			}
			totals = append(totals, TaxTotal{TaxAmount: *amount})
		}
	}
	if len(totals) == 0 {
		zero := &Amount{Value: "0"}
		if ccy != "" {
			zero.CurrencyID = &ccy
		}
		totals = []TaxTotal{{TaxAmount: *zero}}
	}

	// Subtotals only on the primary (first) total.
	for i, tt := range stl.TradeTaxes {
		tp := path(p, fmt.Sprintf("ApplicableTradeTax[%d]", i))
		sub := TaxSubtotal{
			TaxableAmount: copyAmount(d, path(tp, "BasisAmount"), tt.BasisAmount, ccy),
			TaxCategory:   *newTaxCategory(d, tp, tt, o),
		}
		if amount := copyAmount(d, path(tp, "CalculatedAmount"), tt.CalculatedAmount, ccy); amount != nil {
			sub.TaxAmount = *amount
		} else {
			sub.TaxAmount = Amount{Value: "0"}
			if ccy != "" {
				sub.TaxAmount.CurrencyID = &ccy
			}
		}
		totals[0].TaxSubtotal = append(totals[0].TaxSubtotal, sub)
	}

	ui.TaxTotal = totals
}

// addMonetaryTotal copies the settlement summation into the legal monetary
// total. The block itself is mandatory and always emitted, even when empty.
func (ui *Invoice) addMonetaryTotal(d *Diagnostics, p []string, stl *cii.HeaderTradeSettlement, ccy string) {
	ui.LegalMonetaryTotal = MonetaryTotal{}
	s := stl.Summation
	if s == nil {
		return
	}
	sp := path(p, "SpecifiedTradeSettlementHeaderMonetarySummation")

	ui.LegalMonetaryTotal.LineExtensionAmount = copyAmount(d, path(sp, "LineTotalAmount"), s.LineTotal, ccy)
	ui.LegalMonetaryTotal.TaxExclusiveAmount = copyAmount(d, path(sp, "TaxBasisTotalAmount"), s.TaxBasisTotal, ccy)
	ui.LegalMonetaryTotal.TaxInclusiveAmount = copyAmount(d, path(sp, "GrandTotalAmount"), s.GrandTotal, ccy)
	ui.LegalMonetaryTotal.AllowanceTotalAmount = copyAmount(d, path(sp, "AllowanceTotalAmount"), s.AllowanceTotal, ccy)
	ui.LegalMonetaryTotal.ChargeTotalAmount = copyAmount(d, path(sp, "ChargeTotalAmount"), s.ChargeTotal, ccy)
	ui.LegalMonetaryTotal.PrepaidAmount = copyAmount(d, path(sp, "TotalPrepaidAmount"), s.TotalPrepaid, ccy)
	ui.LegalMonetaryTotal.PayableAmount = copyAmount(d, path(sp, "DuePayableAmount"), s.DuePayable, ccy)

	// Zero rounding amounts are skipped. This is a compatibility shim for a
	// defect in an older release of the external validation rule set that
	// rejected explicit zero values here.
	if rounding := copyAmount(d, path(sp, "RoundingAmount"), s.RoundingAmount, ccy); rounding != nil {
		if v, err := decimal.NewFromString(rounding.Value); err == nil && !v.IsZero() {
			ui.LegalMonetaryTotal.PayableRoundingAmount = rounding
		}
	}
}
