package ciiubl_test

import (
	"testing"

	ciiubl "github.com/invopop/cii.ubl"
	"github.com/invopop/cii.ubl/cii"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func convertWithCharges(t *testing.T, acs ...*cii.AllowanceCharge) *ciiubl.Result {
	t.Helper()
	doc := testDoc()
	doc.Transaction.Settlement.AllowanceCharges = acs
	res, err := ciiubl.Convert(doc)
	require.NoError(t, err)
	return res
}

func TestAllowanceCharges(t *testing.T) {
	t.Run("boolean indicator form", func(t *testing.T) {
		res := convertWithCharges(t,
			&cii.AllowanceCharge{
				ChargeIndicator: &cii.Indicator{Indicator: boolPtr(true)},
				ActualAmount:    testAmount("10.00", "EUR"),
				Reason:          "Freight",
			},
			&cii.AllowanceCharge{
				ChargeIndicator: &cii.Indicator{Indicator: boolPtr(false)},
				ActualAmount:    testAmount("5.00", "EUR"),
			},
		)

		require.Len(t, res.Invoice.AllowanceCharge, 2)
		assert.True(t, res.Invoice.AllowanceCharge[0].ChargeIndicator)
		assert.Equal(t, "10", res.Invoice.AllowanceCharge[0].Amount.Value)
		require.NotNil(t, res.Invoice.AllowanceCharge[0].AllowanceChargeReason)
		assert.Equal(t, "Freight", *res.Invoice.AllowanceCharge[0].AllowanceChargeReason)
		assert.False(t, res.Invoice.AllowanceCharge[1].ChargeIndicator)
		assert.False(t, res.HasErrors())
	})

	t.Run("string indicator form", func(t *testing.T) {
		res := convertWithCharges(t,
			&cii.AllowanceCharge{
				ChargeIndicator: &cii.Indicator{IndicatorString: "true"},
				ActualAmount:    testAmount("10.00", "EUR"),
			},
			&cii.AllowanceCharge{
				ChargeIndicator: &cii.Indicator{IndicatorString: "false"},
				ActualAmount:    testAmount("5.00", "EUR"),
			},
		)

		require.Len(t, res.Invoice.AllowanceCharge, 2)
		assert.True(t, res.Invoice.AllowanceCharge[0].ChargeIndicator)
		assert.False(t, res.Invoice.AllowanceCharge[1].ChargeIndicator)
	})

	t.Run("boolean form wins over string form", func(t *testing.T) {
		res := convertWithCharges(t, &cii.AllowanceCharge{
			ChargeIndicator: &cii.Indicator{Indicator: boolPtr(false), IndicatorString: "true"},
			ActualAmount:    testAmount("5.00", "EUR"),
		})

		require.Len(t, res.Invoice.AllowanceCharge, 1)
		assert.False(t, res.Invoice.AllowanceCharge[0].ChargeIndicator)
	})

	t.Run("unrecognized string drops the entry", func(t *testing.T) {
		res := convertWithCharges(t, &cii.AllowanceCharge{
			ChargeIndicator: &cii.Indicator{IndicatorString: "TRUE"},
			ActualAmount:    testAmount("5.00", "EUR"),
		})

		assert.Empty(t, res.Invoice.AllowanceCharge)
		errs := diagMessages(res, ciiubl.LevelError)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "charge indicator")
	})

	t.Run("empty indicator container drops the entry", func(t *testing.T) {
		res := convertWithCharges(t, &cii.AllowanceCharge{
			ChargeIndicator: &cii.Indicator{},
			ActualAmount:    testAmount("5.00", "EUR"),
		})

		assert.Empty(t, res.Invoice.AllowanceCharge)
		assert.True(t, res.HasErrors())
	})

	t.Run("missing indicator drops the entry", func(t *testing.T) {
		res := convertWithCharges(t, &cii.AllowanceCharge{
			ActualAmount: testAmount("5.00", "EUR"),
		})

		assert.Empty(t, res.Invoice.AllowanceCharge)
		assert.True(t, res.HasErrors())
	})

	t.Run("missing actual amount drops the entry", func(t *testing.T) {
		res := convertWithCharges(t, &cii.AllowanceCharge{
			ChargeIndicator: &cii.Indicator{Indicator: boolPtr(true)},
		})

		assert.Empty(t, res.Invoice.AllowanceCharge)
		assert.True(t, res.HasErrors())
	})

	t.Run("dropped entry does not affect the rest", func(t *testing.T) {
		res := convertWithCharges(t,
			&cii.AllowanceCharge{
				ChargeIndicator: &cii.Indicator{},
				ActualAmount:    testAmount("1.00", "EUR"),
			},
			&cii.AllowanceCharge{
				ChargeIndicator: &cii.Indicator{Indicator: boolPtr(true)},
				ActualAmount:    testAmount("2.00", "EUR"),
			},
		)

		require.Len(t, res.Invoice.AllowanceCharge, 1)
		assert.Equal(t, "2", res.Invoice.AllowanceCharge[0].Amount.Value)
		assert.True(t, res.HasErrors())
	})

	t.Run("percentage base amount and tax category", func(t *testing.T) {
		res := convertWithCharges(t, &cii.AllowanceCharge{
			ChargeIndicator:    &cii.Indicator{Indicator: boolPtr(false)},
			CalculationPercent: "10.00",
			BasisAmount:        testAmount("100.00", "EUR"),
			ActualAmount:       testAmount("10.00", "EUR"),
			ReasonCode:         "95",
			CategoryTradeTaxes: []*cii.TradeTax{
				{TypeCode: "VAT", CategoryCode: "S", RateApplicablePercent: "21.00"},
			},
		})

		require.Len(t, res.Invoice.AllowanceCharge, 1)
		ac := res.Invoice.AllowanceCharge[0]
		require.NotNil(t, ac.MultiplierFactorNumeric)
		assert.Equal(t, "10", *ac.MultiplierFactorNumeric)
		require.NotNil(t, ac.BaseAmount)
		assert.Equal(t, "100", ac.BaseAmount.Value)
		require.NotNil(t, ac.AllowanceChargeReasonCode)
		assert.Equal(t, "95", *ac.AllowanceChargeReasonCode)
		require.Len(t, ac.TaxCategory, 1)
		require.NotNil(t, ac.TaxCategory[0].ID)
		assert.Equal(t, "S", *ac.TaxCategory[0].ID)
		require.NotNil(t, ac.TaxCategory[0].Percent)
		assert.Equal(t, "21", *ac.TaxCategory[0].Percent)
		assert.Equal(t, "VAT", ac.TaxCategory[0].TaxScheme.ID.Value)
	})

	t.Run("legacy VA scheme maps to the configured VAT scheme", func(t *testing.T) {
		doc := testDoc()
		doc.Transaction.Settlement.AllowanceCharges = []*cii.AllowanceCharge{{
			ChargeIndicator:    &cii.Indicator{Indicator: boolPtr(true)},
			ActualAmount:       testAmount("5.00", "EUR"),
			CategoryTradeTaxes: []*cii.TradeTax{{TypeCode: "VA", CategoryCode: "S"}},
		}}

		res, err := ciiubl.Convert(doc, ciiubl.WithVATScheme("GST"))
		require.NoError(t, err)
		require.Len(t, res.Invoice.AllowanceCharge, 1)
		require.Len(t, res.Invoice.AllowanceCharge[0].TaxCategory, 1)
		assert.Equal(t, "GST", res.Invoice.AllowanceCharge[0].TaxCategory[0].TaxScheme.ID.Value)
	})
}
