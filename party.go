package ciiubl

import (
	"github.com/invopop/cii.ubl/cii"
)

// SupplierParty represents the supplier party in a transaction
type SupplierParty struct {
	Party *Party `xml:"cac:Party"`
}

// CustomerParty represents the customer party in a transaction
type CustomerParty struct {
	Party *Party `xml:"cac:Party"`
}

// Party represents a party involved in a transaction
type Party struct {
	EndpointID          *EndpointID       `xml:"cbc:EndpointID"`
	PartyIdentification []Identification  `xml:"cac:PartyIdentification"`
	PartyName           *PartyName        `xml:"cac:PartyName"`
	PostalAddress       *PostalAddress    `xml:"cac:PostalAddress"`
	PartyTaxScheme      []PartyTaxScheme  `xml:"cac:PartyTaxScheme"`
	PartyLegalEntity    *PartyLegalEntity `xml:"cac:PartyLegalEntity"`
	Contact             *Contact          `xml:"cac:Contact"`
}

// EndpointID represents an endpoint identifier
type EndpointID struct {
	SchemeID *string `xml:"schemeID,attr"`
	Value    string  `xml:",chardata"`
}

// Identification represents an identification
type Identification struct {
	ID *IDType `xml:"cbc:ID"`
}

// PartyName represents the name of a party
type PartyName struct {
	Name string `xml:"cbc:Name"`
}

// PostalAddress represents a postal address
type PostalAddress struct {
	StreetName           *string       `xml:"cbc:StreetName"`
	AdditionalStreetName *string       `xml:"cbc:AdditionalStreetName"`
	CityName             *string       `xml:"cbc:CityName"`
	PostalZone           *string       `xml:"cbc:PostalZone"`
	CountrySubentity     *string       `xml:"cbc:CountrySubentity"`
	AddressLine          []AddressLine `xml:"cac:AddressLine"`
	Country              *Country      `xml:"cac:Country"`
}

// AddressLine represents a line in an address
type AddressLine struct {
	Line string `xml:"cbc:Line"`
}

// Country represents a country
type Country struct {
	IdentificationCode string `xml:"cbc:IdentificationCode"`
}

// PartyTaxScheme represents a party's tax scheme
type PartyTaxScheme struct {
	CompanyID *IDType    `xml:"cbc:CompanyID"`
	TaxScheme *TaxScheme `xml:"cac:TaxScheme"`
}

// TaxScheme represents a tax scheme
type TaxScheme struct {
	ID   IDType  `xml:"cbc:ID"`
	Name *string `xml:"cbc:Name"`
}

// PartyLegalEntity represents the legal entity of a party
type PartyLegalEntity struct {
	RegistrationName *string `xml:"cbc:RegistrationName"`
	CompanyID        *IDType `xml:"cbc:CompanyID"`
	CompanyLegalForm *string `xml:"cbc:CompanyLegalForm"`
}

// Contact represents contact information
type Contact struct {
	Name           *string `xml:"cbc:Name"`
	Telephone      *string `xml:"cbc:Telephone"`
	ElectronicMail *string `xml:"cbc:ElectronicMail"`
}

// usableGlobalID reports whether a global identifier carries both a value
// and a scheme id. Global identifiers without a scheme are meaningless in
// the output and are never copied.
func usableGlobalID(id *cii.ID) bool {
	return !id.Empty() && id.SchemeID != ""
}

// hasUsableGlobalID reports whether the party carries at least one usable
// global identifier.
func hasUsableGlobalID(tp *cii.TradeParty) bool {
	for i := range tp.GlobalID {
		if usableGlobalID(&tp.GlobalID[i]) {
			return true
		}
	}
	return false
}

// usableGlobalIDs filters the party's global identifiers to the usable ones.
func usableGlobalIDs(tp *cii.TradeParty) []*cii.ID {
	var out []*cii.ID
	for i := range tp.GlobalID {
		if usableGlobalID(&tp.GlobalID[i]) {
			out = append(out, &tp.GlobalID[i])
		}
	}
	return out
}

// firstPartyID picks the party's primary identifier: the first usable global
// identifier, else the first local identifier, else absent.
func firstPartyID(tp *cii.TradeParty) *IDType {
	for i := range tp.GlobalID {
		if usableGlobalID(&tp.GlobalID[i]) {
			return copySchemedID(&tp.GlobalID[i])
		}
	}
	for i := range tp.ID {
		if !tp.ID[i].Empty() {
			return copyID(&tp.ID[i])
		}
	}
	return nil
}

// allPartyIDs emits all usable global identifiers, falling back to all local
// identifiers when none of the global ones are usable. Used for the seller
// party, which is the only party allowed multiple identifications.
func allPartyIDs(tp *cii.TradeParty) []*IDType {
	var out []*IDType
	if hasUsableGlobalID(tp) {
		for _, id := range usableGlobalIDs(tp) {
			out = append(out, copySchemedID(id))
		}
		return out
	}
	for i := range tp.ID {
		if id := copyID(&tp.ID[i]); id != nil {
			out = append(out, id)
		}
	}
	return out
}

// addPartyIdentification appends an identifier to the party's identification
// list unless an entry with the same value and scheme is already present.
func addPartyIdentification(p *Party, id *IDType) {
	if id == nil {
		return
	}
	for _, existing := range p.PartyIdentification {
		if existing.ID == nil {
			continue
		}
		if existing.ID.Value == id.Value && equalScheme(existing.ID.SchemeID, id.SchemeID) {
			return
		}
	}
	p.PartyIdentification = append(p.PartyIdentification, Identification{ID: id})
}

func equalScheme(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// newParty maps a trade party. A nil source yields an empty party so that
// mandatory supplier and customer blocks are still emitted; callers mapping
// optional parties should guard against nil themselves. With multiID set the
// party keeps all its usable identifiers rather than just the first one.
func newParty(tp *cii.TradeParty, multiID bool, o *options) *Party {
	p := new(Party)
	if tp == nil {
		return p
	}

	if uc := tp.URICommunication; uc != nil && !uc.URIID.Empty() {
		p.EndpointID = &EndpointID{
			SchemeID: copyText(uc.URIID.SchemeID),
			Value:    uc.URIID.Value,
		}
	}

	if multiID {
		for _, id := range allPartyIDs(tp) {
			addPartyIdentification(p, id)
		}
	} else {
		addPartyIdentification(p, firstPartyID(tp))
	}

	// The trading name becomes the party name; the registered name always
	// goes to the legal entity below.
	name := tp.Name
	if lo := tp.LegalOrganization; lo != nil && lo.TradingBusinessName != "" {
		name = lo.TradingBusinessName
	}
	if name != "" {
		p.PartyName = &PartyName{Name: name}
	}

	p.PostalAddress = newAddress(tp.PostalAddress)

	for _, reg := range tp.TaxRegistrations {
		if reg == nil || reg.ID.Empty() {
			continue
		}
		p.PartyTaxScheme = append(p.PartyTaxScheme, PartyTaxScheme{
			CompanyID: &IDType{Value: reg.ID.Value},
			TaxScheme: &TaxScheme{
				ID: IDType{Value: taxSchemeID(reg.ID.SchemeID, o)},
			},
		})
	}

	if le := newLegalEntity(tp); le != nil {
		p.PartyLegalEntity = le
	}

	if c := newContact(tp.Contact); c != nil {
		p.Contact = c
	}

	return p
}

// newLegalEntity builds the legal entity block. The registration name is
// mandatory in the output whenever the block is emitted, so it falls back to
// the party's plain name.
func newLegalEntity(tp *cii.TradeParty) *PartyLegalEntity {
	le := new(PartyLegalEntity)
	if tp.Name != "" {
		le.RegistrationName = copyText(tp.Name)
	}
	if lo := tp.LegalOrganization; lo != nil {
		le.CompanyID = copySchemedID(lo.ID)
	}
	le.CompanyLegalForm = copyText(tp.Description)

	if le.RegistrationName == nil && le.CompanyID == nil && le.CompanyLegalForm == nil {
		return nil
	}
	return le
}

func newContact(tc *cii.TradeContact) *Contact {
	if tc == nil {
		return nil
	}
	c := new(Contact)
	if tc.PersonName != "" {
		c.Name = copyText(tc.PersonName)
	} else if tc.DepartmentName != "" {
		c.Name = copyText(tc.DepartmentName)
	}
	if tc.Telephone != nil {
		c.Telephone = copyText(tc.Telephone.CompleteNumber)
	}
	if tc.Email != nil && !tc.Email.URIID.Empty() {
		c.ElectronicMail = copyText(tc.Email.URIID.Value)
	}
	if c.Name == nil && c.Telephone == nil && c.ElectronicMail == nil {
		return nil
	}
	return c
}

func newAddress(a *cii.TradeAddress) *PostalAddress {
	if a == nil {
		return nil
	}
	addr := &PostalAddress{
		StreetName:           copyText(a.LineOne),
		AdditionalStreetName: copyText(a.LineTwo),
		CityName:             copyText(a.CityName),
		PostalZone:           copyText(a.PostcodeCode),
		CountrySubentity:     copyText(a.CountrySubDivisionName),
	}
	if a.LineThree != "" {
		addr.AddressLine = []AddressLine{{Line: a.LineThree}}
	}
	if a.CountryID != "" {
		addr.Country = &Country{IdentificationCode: a.CountryID}
	}
	if addr.StreetName == nil && addr.AdditionalStreetName == nil && addr.CityName == nil &&
		addr.PostalZone == nil && addr.CountrySubentity == nil &&
		addr.AddressLine == nil && addr.Country == nil {
		return nil
	}
	return addr
}
