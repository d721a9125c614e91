package cii

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/invopop/xmlctx"
)

// ErrUnknownDocumentType is returned when the root element of the parsed
// data is not a Cross-Industry Invoice.
var ErrUnknownDocumentType = fmt.Errorf("unknown document type")

// Parse parses raw Cross-Industry Invoice XML into a Document.
func Parse(data []byte) (*Document, error) {
	ns, err := extractRootNamespace(data)
	if err != nil {
		return nil, err
	}
	if ns != NamespaceRSM {
		return nil, ErrUnknownDocumentType
	}

	doc := new(Document)
	if err := xmlctx.Unmarshal(data, doc, xmlctx.WithNamespaces(map[string]string{
		"":    ns,
		"rsm": NamespaceRSM,
		"ram": NamespaceRAM,
		"udt": NamespaceUDT,
		"qdt": NamespaceQDT,
	})); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseReader reads all data from r and parses it as a CII document.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return Parse(data)
}

func extractRootNamespace(data []byte) (string, error) {
	dc := xml.NewDecoder(bytes.NewReader(data))
	for {
		tk, err := dc.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("error parsing XML: %w", err)
		}
		switch t := tk.(type) {
		case xml.StartElement:
			return t.Name.Space, nil
		}
	}
	return "", ErrUnknownDocumentType
}
