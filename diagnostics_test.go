package ciiubl_test

import (
	"testing"

	ciiubl "github.com/invopop/cii.ubl"
	"github.com/invopop/cii.ubl/cii"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/flimzy/testy"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		diag ciiubl.Diagnostic
		want string
	}{
		{
			name: "with path",
			diag: ciiubl.Diagnostic{
				Level:   ciiubl.LevelError,
				Path:    []string{"ExchangedDocument", "IssueDateTime"},
				Message: "unparseable date",
			},
			want: "error: /ExchangedDocument/IssueDateTime: unparseable date",
		},
		{
			name: "without path",
			diag: ciiubl.Diagnostic{
				Level:   ciiubl.LevelWarning,
				Message: "something odd",
			},
			want: "warning: something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestDiagnosticOrdering(t *testing.T) {
	// Diagnostics follow document traversal order, so two runs over the same
	// document must produce identical output.
	doc := testDoc()
	doc.Header.IssueDateTime = testDate("bogus", "102")
	doc.Transaction.Settlement.AllowanceCharges = []*cii.AllowanceCharge{{
		ActualAmount: testAmount("5.00", "EUR"),
	}}
	doc.Transaction.Settlement.PaymentMeans = []*cii.PaymentMeans{{TypeCode: "30"}}
	doc.Transaction.LineItems = []*cii.LineItem{
		{Product: &cii.TradeProduct{Name: "Widget"}},
	}

	res, err := ciiubl.Convert(doc)
	require.NoError(t, err)

	want := []ciiubl.Diagnostic{
		{
			Level:   ciiubl.LevelError,
			Path:    []string{"ExchangedDocument", "IssueDateTime"},
			Message: `cannot parse date "bogus" with format code "102"`,
		},
		{
			Level: ciiubl.LevelError,
			Path: []string{
				"SupplyChainTradeTransaction", "ApplicableHeaderTradeSettlement",
				"SpecifiedTradeSettlementPaymentMeans[0]",
			},
			Message: "credit transfer without payee account, entry dropped",
		},
		{
			Level: ciiubl.LevelError,
			Path: []string{
				"SupplyChainTradeTransaction", "ApplicableHeaderTradeSettlement",
				"SpecifiedTradeAllowanceCharge[0]",
			},
			Message: "charge indicator missing or not a recognized boolean, entry dropped",
		},
		{
			Level: ciiubl.LevelError,
			Path: []string{
				"SupplyChainTradeTransaction", "IncludedSupplyChainTradeLineItem[0]",
			},
			Message: "line without billed quantity",
		},
		{
			Level: ciiubl.LevelError,
			Path: []string{
				"SupplyChainTradeTransaction", "IncludedSupplyChainTradeLineItem[0]",
			},
			Message: "line without line total amount",
		},
	}
	if d := testy.DiffInterface(want, res.Diagnostics); d != nil {
		t.Error(d)
	}

	res2, err := ciiubl.Convert(doc)
	require.NoError(t, err)
	if d := testy.DiffInterface(res.Diagnostics, res2.Diagnostics); d != nil {
		t.Error(d)
	}
}
