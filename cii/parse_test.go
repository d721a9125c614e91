package cii_test

import (
	"strings"
	"testing"

	"github.com/invopop/cii.ubl/cii"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCII = `<?xml version="1.0" encoding="UTF-8"?>
<rsm:CrossIndustryInvoice
    xmlns:rsm="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
    xmlns:ram="urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
    xmlns:udt="urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
    xmlns:qdt="urn:un:unece:uncefact:data:standard:QualifiedDataType:100">
  <rsm:ExchangedDocumentContext>
    <ram:GuidelineSpecifiedDocumentContextParameter>
      <ram:ID>urn:cen.eu:en16931:2017</ram:ID>
    </ram:GuidelineSpecifiedDocumentContextParameter>
  </rsm:ExchangedDocumentContext>
  <rsm:ExchangedDocument>
    <ram:ID>INV-001</ram:ID>
    <ram:TypeCode>380</ram:TypeCode>
    <ram:IssueDateTime>
      <udt:DateTimeString format="102">20240115</udt:DateTimeString>
    </ram:IssueDateTime>
  </rsm:ExchangedDocument>
  <rsm:SupplyChainTradeTransaction>
    <ram:IncludedSupplyChainTradeLineItem>
      <ram:AssociatedDocumentLineDocument>
        <ram:LineID>1</ram:LineID>
      </ram:AssociatedDocumentLineDocument>
      <ram:SpecifiedTradeProduct>
        <ram:Name>Widget</ram:Name>
      </ram:SpecifiedTradeProduct>
      <ram:SpecifiedLineTradeDelivery>
        <ram:BilledQuantity unitCode="C62">10</ram:BilledQuantity>
      </ram:SpecifiedLineTradeDelivery>
      <ram:SpecifiedLineTradeSettlement>
        <ram:SpecifiedTradeSettlementLineMonetarySummation>
          <ram:LineTotalAmount>250.00</ram:LineTotalAmount>
        </ram:SpecifiedTradeSettlementLineMonetarySummation>
      </ram:SpecifiedLineTradeSettlement>
    </ram:IncludedSupplyChainTradeLineItem>
    <ram:ApplicableHeaderTradeAgreement>
      <ram:SellerTradeParty>
        <ram:Name>Seller A/S</ram:Name>
      </ram:SellerTradeParty>
      <ram:BuyerTradeParty>
        <ram:Name>Buyer GmbH</ram:Name>
      </ram:BuyerTradeParty>
    </ram:ApplicableHeaderTradeAgreement>
    <ram:ApplicableHeaderTradeDelivery/>
    <ram:ApplicableHeaderTradeSettlement>
      <ram:InvoiceCurrencyCode>EUR</ram:InvoiceCurrencyCode>
      <ram:SpecifiedTradeSettlementHeaderMonetarySummation>
        <ram:DuePayableAmount currencyID="EUR">250.00</ram:DuePayableAmount>
      </ram:SpecifiedTradeSettlementHeaderMonetarySummation>
    </ram:ApplicableHeaderTradeSettlement>
  </rsm:SupplyChainTradeTransaction>
</rsm:CrossIndustryInvoice>`

func TestParse(t *testing.T) {
	t.Run("sample document", func(t *testing.T) {
		doc, err := cii.Parse([]byte(sampleCII))
		require.NoError(t, err)

		require.NotNil(t, doc.Context)
		require.NotNil(t, doc.Context.Guideline)
		assert.Equal(t, "urn:cen.eu:en16931:2017", doc.Context.Guideline.ID)

		require.NotNil(t, doc.Header)
		assert.Equal(t, "INV-001", doc.Header.ID)
		assert.Equal(t, "380", doc.Header.TypeCode)
		require.NotNil(t, doc.Header.IssueDateTime)
		require.NotNil(t, doc.Header.IssueDateTime.DateTimeString)
		assert.Equal(t, "102", doc.Header.IssueDateTime.DateTimeString.Format)
		assert.Equal(t, "20240115", doc.Header.IssueDateTime.DateTimeString.Value)

		tx := doc.Transaction
		require.NotNil(t, tx)
		require.NotNil(t, tx.Agreement)
		require.NotNil(t, tx.Agreement.Seller)
		assert.Equal(t, "Seller A/S", tx.Agreement.Seller.Name)
		require.NotNil(t, tx.Agreement.Buyer)
		assert.Equal(t, "Buyer GmbH", tx.Agreement.Buyer.Name)
		require.NotNil(t, tx.Delivery)

		require.NotNil(t, tx.Settlement)
		assert.Equal(t, "EUR", tx.Settlement.InvoiceCurrencyCode)
		require.NotNil(t, tx.Settlement.Summation)
		require.NotNil(t, tx.Settlement.Summation.DuePayable)
		assert.Equal(t, "250.00", tx.Settlement.Summation.DuePayable.Value)
		assert.Equal(t, "EUR", tx.Settlement.Summation.DuePayable.CurrencyID)

		require.Len(t, tx.LineItems, 1)
		li := tx.LineItems[0]
		assert.Equal(t, "1", li.LineDocument.LineID)
		assert.Equal(t, "Widget", li.Product.Name)
		assert.Equal(t, "10", li.Delivery.BilledQuantity.Value)
		assert.Equal(t, "C62", li.Delivery.BilledQuantity.UnitCode)
		assert.Equal(t, "250.00", li.Settlement.Summation.LineTotal.Value)
	})

	t.Run("unknown root element", func(t *testing.T) {
		data := `<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"></Invoice>`
		_, err := cii.Parse([]byte(data))
		assert.ErrorIs(t, err, cii.ErrUnknownDocumentType)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := cii.Parse(nil)
		assert.ErrorIs(t, err, cii.ErrUnknownDocumentType)
	})

	t.Run("malformed XML", func(t *testing.T) {
		_, err := cii.Parse([]byte("<rsm:CrossIndustryInvoice"))
		assert.Error(t, err)
	})
}

func TestParseReader(t *testing.T) {
	doc, err := cii.ParseReader(strings.NewReader(sampleCII))
	require.NoError(t, err)
	require.NotNil(t, doc.Header)
	assert.Equal(t, "INV-001", doc.Header.ID)
}
