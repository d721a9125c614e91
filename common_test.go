package ciiubl_test

import (
	"testing"

	ciiubl "github.com/invopop/cii.ubl"
	"github.com/invopop/cii.ubl/cii"
	"github.com/invopop/gobl/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFormats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		value  string
		want   string
	}{
		{"code 2 day-month-2digit-year", "2", "150124", "2024-01-15"},
		{"code 3 month-day-2digit-year", "3", "011524", "2024-01-15"},
		{"code 4 day-month-4digit-year", "4", "15012024", "2024-01-15"},
		{"code 101 2digit-year-month-day", "101", "240115", "2024-01-15"},
		{"code 102 4digit-year-month-day", "102", "20240115", "2024-01-15"},
		{"absent format defaults to 102", "", "20240115", "2024-01-15"},
		{"code 103 ISO week date", "103", "24031", "2024-01-15"},
		{"code 103 week straddling new year", "103", "25014", "2025-01-02"},
		{"code 105 ordinal day", "105", "24015", "2024-01-15"},
		{"code 105 end of year", "105", "24366", "2024-12-31"},
		{"code 2 pre-2000 pivot", "2", "150199", "1999-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDoc()
			doc.Header.IssueDateTime = testDate(tt.value, tt.format)

			res, err := ciiubl.Convert(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Invoice.IssueDate)
			assert.False(t, res.HasErrors())
		})
	}

	t.Run("unsupported format code", func(t *testing.T) {
		doc := testDoc()
		doc.Header.IssueDateTime = testDate("20240115", "999")

		res, err := ciiubl.Convert(doc)
		require.NoError(t, err)
		assert.Empty(t, res.Invoice.IssueDate)

		errs := diagMessages(res, ciiubl.LevelError)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], `unsupported date format code "999"`)
	})

	t.Run("unparseable value", func(t *testing.T) {
		doc := testDoc()
		doc.Header.IssueDateTime = testDate("not-a-date", "102")

		res, err := ciiubl.Convert(doc)
		require.NoError(t, err)
		assert.Empty(t, res.Invoice.IssueDate)
		require.Len(t, diagMessages(res, ciiubl.LevelError), 1)
	})

	t.Run("absent date is silent", func(t *testing.T) {
		doc := testDoc()
		doc.Header.IssueDateTime = nil

		res, err := ciiubl.Convert(doc)
		require.NoError(t, err)
		assert.Empty(t, res.Invoice.IssueDate)
		assert.Empty(t, res.Diagnostics)
	})
}

func TestAmountCopying(t *testing.T) {
	convert := func(t *testing.T, due *cii.Amount, opts ...ciiubl.Option) *ciiubl.Invoice {
		t.Helper()
		doc := minimalDoc()
		doc.Header = &cii.ExchangedDocument{ID: "X", TypeCode: "380"}
		doc.Transaction.Settlement.Summation = &cii.MonetarySummation{DuePayable: due}
		res, err := ciiubl.Convert(doc, opts...)
		require.NoError(t, err)
		return res.Invoice
	}

	t.Run("missing currency takes the default", func(t *testing.T) {
		inv := convert(t, testAmount("100.00", ""), ciiubl.WithDefaultCurrency(currency.USD))
		require.NotNil(t, inv.LegalMonetaryTotal.PayableAmount)
		require.NotNil(t, inv.LegalMonetaryTotal.PayableAmount.CurrencyID)
		assert.Equal(t, "USD", *inv.LegalMonetaryTotal.PayableAmount.CurrencyID)
	})

	t.Run("explicit currency is preserved over the default", func(t *testing.T) {
		inv := convert(t, testAmount("100.00", "DKK"), ciiubl.WithDefaultCurrency(currency.USD))
		require.NotNil(t, inv.LegalMonetaryTotal.PayableAmount.CurrencyID)
		assert.Equal(t, "DKK", *inv.LegalMonetaryTotal.PayableAmount.CurrencyID)
	})

	t.Run("document currency fills missing amount currencies", func(t *testing.T) {
		doc := testDoc()
		doc.Transaction.Settlement.Summation = &cii.MonetarySummation{
			DuePayable: testAmount("100.00", ""),
		}
		res, err := ciiubl.Convert(doc)
		require.NoError(t, err)
		require.NotNil(t, res.Invoice.LegalMonetaryTotal.PayableAmount.CurrencyID)
		assert.Equal(t, "EUR", *res.Invoice.LegalMonetaryTotal.PayableAmount.CurrencyID)
	})

	t.Run("trailing fractional zeroes are stripped", func(t *testing.T) {
		inv := convert(t, testAmount("100.500", "EUR"))
		assert.Equal(t, "100.5", inv.LegalMonetaryTotal.PayableAmount.Value)
	})

	t.Run("bare leading decimal point is tolerated", func(t *testing.T) {
		inv := convert(t, testAmount(".07", "EUR"))
		assert.Equal(t, "0.07", inv.LegalMonetaryTotal.PayableAmount.Value)
	})

	t.Run("invalid numeric value records an error", func(t *testing.T) {
		doc := minimalDoc()
		doc.Header = &cii.ExchangedDocument{ID: "X", TypeCode: "380"}
		doc.Transaction.Settlement.Summation = &cii.MonetarySummation{
			DuePayable: testAmount("12,5", "EUR"),
		}
		res, err := ciiubl.Convert(doc)
		require.NoError(t, err)
		assert.Nil(t, res.Invoice.LegalMonetaryTotal.PayableAmount)
		assert.True(t, res.HasErrors())
	})
}
