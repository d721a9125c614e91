package ciiubl

import (
	"github.com/invopop/cii.ubl/cii"
)

// Delivery represents the delivery block
type Delivery struct {
	ActualDeliveryDate *string           `xml:"cbc:ActualDeliveryDate"`
	DeliveryLocation   *DeliveryLocation `xml:"cac:DeliveryLocation"`
	DeliveryParty      *Party            `xml:"cac:DeliveryParty"`
}

// DeliveryLocation represents the location of a delivery
type DeliveryLocation struct {
	ID      *IDType        `xml:"cbc:ID"`
	Address *PostalAddress `xml:"cac:Address"`
}

// newDelivery maps the header trade delivery. Returns nil when the source
// carries neither a delivery date nor a ship-to party, so no empty block is
// emitted.
func newDelivery(d *Diagnostics, p []string, del *cii.HeaderTradeDelivery) *Delivery {
	out := new(Delivery)

	if del.ActualDelivery != nil {
		out.ActualDeliveryDate = parseDate(d,
			path(p, "ActualDeliverySupplyChainEvent", "OccurrenceDateTime"),
			del.ActualDelivery.OccurrenceDateTime)
	}

	if st := del.ShipTo; st != nil {
		loc := &DeliveryLocation{
			ID:      firstPartyID(st),
			Address: newAddress(st.PostalAddress),
		}
		if loc.ID != nil || loc.Address != nil {
			out.DeliveryLocation = loc
		}
		// The delivery party carries only the name; the address already
		// lives in the delivery location.
		if st.Name != "" {
			out.DeliveryParty = &Party{
				PartyName: &PartyName{Name: st.Name},
			}
		}
	}

	if out.ActualDeliveryDate == nil && out.DeliveryLocation == nil && out.DeliveryParty == nil {
		return nil
	}
	return out
}
