package ciiubl

import (
	"fmt"
	"strconv"

	"github.com/invopop/cii.ubl/cii"
	"github.com/shopspring/decimal"
)

// InvoiceLine represents a line item in an invoice and credit note
type InvoiceLine struct {
	ID                  string              `xml:"cbc:ID"`
	Note                []string            `xml:"cbc:Note"`
	InvoicedQuantity    *Quantity           `xml:"cbc:InvoicedQuantity,omitempty"` // or CreditedQuantity
	CreditedQuantity    *Quantity           `xml:"cbc:CreditedQuantity,omitempty"`
	LineExtensionAmount Amount              `xml:"cbc:LineExtensionAmount"`
	AccountingCost      *string             `xml:"cbc:AccountingCost"`
	InvoicePeriod       *Period             `xml:"cac:InvoicePeriod"`
	OrderLineReference  *OrderLineReference `xml:"cac:OrderLineReference"`
	DocumentReference   []*Reference        `xml:"cac:DocumentReference"`
	AllowanceCharge     []*AllowanceCharge  `xml:"cac:AllowanceCharge"`
	Item                *Item               `xml:"cac:Item"`
	Price               *Price              `xml:"cac:Price"`
}

// Item represents the invoiced product or service
type Item struct {
	Description                *string                   `xml:"cbc:Description"`
	Name                       string                    `xml:"cbc:Name"`
	BuyersItemIdentification   *ItemIdentification       `xml:"cac:BuyersItemIdentification"`
	SellersItemIdentification  *ItemIdentification       `xml:"cac:SellersItemIdentification"`
	StandardItemIdentification *ItemIdentification       `xml:"cac:StandardItemIdentification"`
	OriginCountry              *Country                  `xml:"cac:OriginCountry"`
	CommodityClassification    []CommodityClassification `xml:"cac:CommodityClassification"`
	ClassifiedTaxCategory      *ClassifiedTaxCategory    `xml:"cac:ClassifiedTaxCategory"`
	AdditionalItemProperty     []AdditionalItemProperty  `xml:"cac:AdditionalItemProperty"`
}

// ItemIdentification represents an item identifier
type ItemIdentification struct {
	ID *IDType `xml:"cbc:ID"`
}

// CommodityClassification represents a coded item classification
type CommodityClassification struct {
	ItemClassificationCode *IDType `xml:"cbc:ItemClassificationCode"`
}

// ClassifiedTaxCategory represents the tax category of an item
type ClassifiedTaxCategory struct {
	ID        *string    `xml:"cbc:ID"`
	Percent   *string    `xml:"cbc:Percent"`
	TaxScheme *TaxScheme `xml:"cac:TaxScheme"`
}

// AdditionalItemProperty represents a name/value item property
type AdditionalItemProperty struct {
	Name  string `xml:"cbc:Name"`
	Value string `xml:"cbc:Value"`
}

// Price represents the item price
type Price struct {
	PriceAmount     Amount             `xml:"cbc:PriceAmount"`
	BaseQuantity    *Quantity          `xml:"cbc:BaseQuantity"`
	AllowanceCharge []*AllowanceCharge `xml:"cac:AllowanceCharge"`
}

// normalizeLineSigns applies the sign-consistency rules required by the
// non-negative item price rule (BT-146). Source documents sometimes encode a
// negative line through a negative quantity, a negative price, or both; the
// line total sign is the reference. Each directional negation is gated by
// its own configuration flag; when a gate is off an info diagnostic is
// recorded instead of changing the value.
func normalizeLineSigns(d *Diagnostics, p []string, ext, qty decimal.Decimal, price *decimal.Decimal, o *options) (decimal.Decimal, *decimal.Decimal) {
	negateQty := func() {
		if o.swapQuantitySign {
			qty = qty.Neg()
		} else {
			d.Info(p, "quantity sign left unchanged, sign swapping disabled")
		}
	}
	negatePrice := func() {
		if o.swapPriceSign {
			np := price.Neg()
			price = &np
		} else {
			d.Info(p, "price sign left unchanged, sign swapping disabled")
		}
	}

	if ext.IsNegative() {
		switch {
		case price == nil:
			if qty.Sign() >= 0 {
				d.Warn(p, "negative line total with non-negative quantity and no price")
			}
		case qty.Sign() >= 0 && price.Sign() < 0:
			negateQty()
			negatePrice()
		case qty.Sign() < 0 && price.Sign() >= 0:
			// Already consistent.
		default:
			d.Warn(p, "negative line total with quantity and price of the same sign")
		}
		return qty, price
	}

	switch {
	case price == nil:
		if qty.Sign() < 0 {
			d.Warn(p, "non-negative line total with negative quantity and no price")
		}
	case qty.Sign() < 0 && price.Sign() < 0:
		negateQty()
		negatePrice()
	case qty.Sign() < 0 || price.Sign() < 0:
		d.Warn(p, "non-negative line total with only one of quantity and price negative")
	}
	return qty, price
}

func (ui *Invoice) addLines(d *Diagnostics, p []string, items []*cii.LineItem, ccy string, o *options) { //nolint:gocyclo
	if len(items) == 0 {
		return
	}

	creditNote := ui.CreditNoteTypeCode != ""
	lines := make([]InvoiceLine, 0, len(items))

	for i, li := range items {
		lp := path(p, fmt.Sprintf("IncludedSupplyChainTradeLineItem[%d]", i))

		line := InvoiceLine{
			ID: strconv.Itoa(i + 1),
		}
		if ld := li.LineDocument; ld != nil {
			if ld.LineID != "" {
				line.ID = ld.LineID
			}
			for _, note := range ld.IncludedNote {
				line.Note = append(line.Note, nonEmptyStrings(note.Content)...)
			}
		}

		// Quantity and line total carry the sign consistency rules; both are
		// mandatory in the output so missing values degrade to zero with an
		// error diagnostic.
		qty := decimal.Zero
		unitCode := ""
		if del := li.Delivery; del != nil && del.BilledQuantity != nil && del.BilledQuantity.Value != "" {
			if v, ok := canonicalDecimal(d, path(lp, "SpecifiedLineTradeDelivery", "BilledQuantity"), del.BilledQuantity.Value); ok {
				qty = v
			}
			unitCode = del.BilledQuantity.UnitCode
		} else {
			d.Error(lp, "line without billed quantity")
		}

		ext := decimal.Zero
		extCcy := ccy
		stl := li.Settlement
		if stl != nil && stl.Summation != nil && stl.Summation.LineTotal != nil && stl.Summation.LineTotal.Value != "" {
			lt := stl.Summation.LineTotal
			if v, ok := canonicalDecimal(d, path(lp, "SpecifiedTradeSettlementLineMonetarySummation", "LineTotalAmount"), lt.Value); ok {
				ext = v
			}
			if lt.CurrencyID != "" {
				extCcy = lt.CurrencyID
			}
		} else {
			d.Error(lp, "line without line total amount")
		}

		var price *decimal.Decimal
		priceCcy := ccy
		var netPrice *cii.TradePrice
		if agr := li.Agreement; agr != nil {
			netPrice = agr.NetPrice
		}
		if netPrice != nil && netPrice.ChargeAmount != nil && netPrice.ChargeAmount.Value != "" {
			if v, ok := canonicalDecimal(d, path(lp, "SpecifiedLineTradeAgreement", "NetPriceProductTradePrice", "ChargeAmount"), netPrice.ChargeAmount.Value); ok {
				price = &v
			}
			if netPrice.ChargeAmount.CurrencyID != "" {
				priceCcy = netPrice.ChargeAmount.CurrencyID
			}
		}

		qty, price = normalizeLineSigns(d, lp, ext, qty, price, o)

		q := &Quantity{UnitCode: unitCode, Value: qty.String()}
		if creditNote {
			line.CreditedQuantity = q
		} else {
			line.InvoicedQuantity = q
		}
		line.LineExtensionAmount = Amount{Value: ext.String()}
		if extCcy != "" {
			line.LineExtensionAmount.CurrencyID = &extCcy
		}

		if agr := li.Agreement; agr != nil && agr.BuyerOrder != nil && agr.BuyerOrder.LineID != "" {
			line.OrderLineReference = &OrderLineReference{LineID: agr.BuyerOrder.LineID}
		}

		if stl != nil {
			if aa := stl.AccountingAccount; aa != nil && !aa.ID.Empty() {
				line.AccountingCost = &aa.ID.Value
			}
			line.InvoicePeriod = newPeriod(d, path(lp, "BillingSpecifiedPeriod"), stl.BillingPeriod, "")
			for j, ref := range stl.AdditionalDocuments {
				rp := path(lp, fmt.Sprintf("AdditionalReferencedDocument[%d]", j))
				if r := newReference(d, rp, ref); r != nil {
					line.DocumentReference = append(line.DocumentReference, r)
				}
			}
			for _, ac := range newAllowanceCharges(d, lp, stl.AllowanceCharges, o) {
				c := ac
				line.AllowanceCharge = append(line.AllowanceCharge, &c)
			}
		}

		line.Item = newItem(d, lp, li, o)

		if price != nil {
			line.Price = &Price{
				PriceAmount: Amount{Value: price.String()},
			}
			if priceCcy != "" {
				line.Price.PriceAmount.CurrencyID = &priceCcy
			}
			line.Price.BaseQuantity = copyQuantity(d, path(lp, "NetPriceProductTradePrice", "BasisQuantity"), netPrice.BasisQuantity)
			if gross := li.Agreement.GrossPrice; gross != nil {
				for _, ac := range newAllowanceCharges(d, path(lp, "GrossPriceProductTradePrice"), gross.AllowanceCharges, o) {
					c := ac
					line.Price.AllowanceCharge = append(line.Price.AllowanceCharge, &c)
				}
			}
		}

		lines = append(lines, line)
	}

	if creditNote {
		ui.CreditNoteLines = lines
	} else {
		ui.InvoiceLines = lines
	}
}

// newItem maps the trade product plus the line tax category.
func newItem(d *Diagnostics, p []string, li *cii.LineItem, o *options) *Item {
	it := new(Item)

	if prod := li.Product; prod != nil {
		it.Name = prod.Name
		it.Description = copyText(prod.Description)
		if id := copyID(prod.BuyerAssignedID); id != nil {
			it.BuyersItemIdentification = &ItemIdentification{ID: id}
		}
		if id := copyID(prod.SellerAssignedID); id != nil {
			it.SellersItemIdentification = &ItemIdentification{ID: id}
		}
		if id := copySchemedID(prod.GlobalID); id != nil {
			it.StandardItemIdentification = &ItemIdentification{ID: id}
		}
		if prod.OriginCountry != nil && prod.OriginCountry.ID != "" {
			it.OriginCountry = &Country{IdentificationCode: prod.OriginCountry.ID}
		}
		for _, cl := range prod.Classifications {
			if cl.ClassCode == nil || cl.ClassCode.Value == "" {
				continue
			}
			code := &IDType{
				Value:         cl.ClassCode.Value,
				ListID:        copyText(cl.ClassCode.ListID),
				ListVersionID: copyText(cl.ClassCode.ListVersionID),
			}
			it.CommodityClassification = append(it.CommodityClassification, CommodityClassification{
				ItemClassificationCode: code,
			})
		}
		for _, ch := range prod.Characteristics {
			if len(ch.Description) == 0 || len(ch.Value) == 0 {
				continue
			}
			it.AdditionalItemProperty = append(it.AdditionalItemProperty, AdditionalItemProperty{
				Name:  ch.Description[0],
				Value: ch.Value[0],
			})
		}
	}

	if stl := li.Settlement; stl != nil && len(stl.TradeTaxes) > 0 {
		tt := stl.TradeTaxes[0]
		ctc := &ClassifiedTaxCategory{
			ID: copyCode(tt.CategoryCode),
			TaxScheme: &TaxScheme{
				ID: IDType{Value: taxSchemeID(tt.TypeCode, o)},
			},
		}
		if tt.RateApplicablePercent != "" {
			if v, ok := canonicalDecimal(d, path(p, "ApplicableTradeTax", "RateApplicablePercent"), tt.RateApplicablePercent); ok {
				s := v.String()
				ctc.Percent = &s
			}
		}
		it.ClassifiedTaxCategory = ctc
	}

	return it
}
