package ciiubl

// VESIDMapping maps document types to their corresponding VESID values.
type VESIDMapping struct {
	// Invoice is the VESID for invoices
	Invoice string
	// CreditNote is the VESID for credit notes
	CreditNote string
}

// Version identifies a target UBL schema version. Version differences are
// expressed as capability flags consulted at the few points where the
// mapping actually diverges; there is a single engine, not one per version.
type Version struct {
	// Name is the UBL schema version, e.g. "2.1".
	Name string
	// VersionID is emitted as cbc:UBLVersionID when non-empty.
	VersionID string
	// StrictPaymentAccount drops a credit-transfer payment means entirely
	// when no payee account is available. When false the entry is kept
	// without its account block.
	StrictPaymentAccount bool
	// SupportsProjectReference enables cac:ProjectReference, which only
	// exists from UBL 2.2 onwards. Earlier versions downgrade the project
	// to an additional document reference.
	SupportsProjectReference bool
	// VESIDs contains the VESID (Validation Exchange Specification ID)
	// mappings used by the external conformance validator.
	VESIDs VESIDMapping
}

// Is checks if two versions are the same.
func (v Version) Is(v2 Version) bool {
	return v.Name == v2.Name
}

// GetVESID returns the appropriate VESID for the document variant.
func (v Version) GetVESID(creditNote bool) string {
	if creditNote {
		return v.VESIDs.CreditNote
	}
	return v.VESIDs.Invoice
}

var en16931VESIDs = VESIDMapping{
	Invoice:    "eu.cen.en16931:ubl:1.3.14-2",
	CreditNote: "eu.cen.en16931:ubl-creditnote:1.3.15",
}

// UBL21 targets UBL 2.1, the baseline EN16931 syntax binding.
var UBL21 = Version{
	Name:                 "2.1",
	VersionID:            "2.1",
	StrictPaymentAccount: true,
	VESIDs:               en16931VESIDs,
}

// UBL22 targets UBL 2.2.
var UBL22 = Version{
	Name:                     "2.2",
	VersionID:                "2.2",
	SupportsProjectReference: true,
	VESIDs:                   en16931VESIDs,
}

// UBL23 targets UBL 2.3.
var UBL23 = Version{
	Name:                     "2.3",
	VersionID:                "2.3",
	SupportsProjectReference: true,
	VESIDs:                   en16931VESIDs,
}

// UBL24 targets UBL 2.4.
var UBL24 = Version{
	Name:                     "2.4",
	VersionID:                "2.4",
	SupportsProjectReference: true,
	VESIDs:                   en16931VESIDs,
}

// FindVersion looks up a version by name. Returns nil when unknown.
func FindVersion(name string) *Version {
	for _, v := range versions {
		if v.Name == name {
			return &v
		}
	}
	return nil
}

var versions = []Version{UBL21, UBL22, UBL23, UBL24}
