// Package ciiubl converts UN/CEFACT Cross-Industry Invoice documents into
// UBL Invoice and CreditNote documents, preserving the business semantics
// required by the EN16931 semantic model.
package ciiubl

import (
	"encoding/xml"
	"io"

	"github.com/invopop/cii.ubl/cii"
)

// Convert transforms a parsed Cross-Industry Invoice document into a UBL
// Invoice or CreditNote.
//
// The conversion never mutates the source document. Recoverable mapping
// problems are recorded as diagnostics on the returned Result and the
// affected field or sub-block is dropped; only a missing mandatory
// substructure (trade agreement, delivery or settlement) aborts the whole
// conversion with an error.
//
// Example usage:
//
//	doc, err := cii.Parse(xmlData)
//	if err != nil {
//	    // handle error
//	}
//	res, err := ciiubl.Convert(doc, ciiubl.WithVersion(ciiubl.UBL21))
//	if err != nil {
//	    // structurally unconvertible document
//	}
//	data, err := ciiubl.Bytes(res.Invoice)
func Convert(doc *cii.Document, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	inv, diags, err := newInvoice(doc, o)
	if err != nil {
		return nil, err
	}
	return &Result{
		Invoice:     inv,
		Diagnostics: diags.Entries(),
	}, nil
}

// ConvertReader parses a raw Cross-Industry Invoice from r and converts it.
func ConvertReader(r io.Reader, opts ...Option) (*Result, error) {
	doc, err := cii.ParseReader(r)
	if err != nil {
		return nil, err
	}
	return Convert(doc, opts...)
}

// Bytes returns the raw XML of the UBL document including
// the XML Header.
func Bytes(inv *Invoice) ([]byte, error) {
	b, err := xml.MarshalIndent(inv, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), b...), nil
}
