package ciiubl

import (
	"github.com/invopop/gobl/currency"
	"github.com/invopop/validation"
)

// CreationMode selects how the output document type is decided.
type CreationMode int

// Supported creation modes.
const (
	// ModeAutomatic classifies the document as invoice or credit note from
	// the source type code and settlement totals.
	ModeAutomatic CreationMode = iota
	// ModeInvoice always produces an Invoice.
	ModeInvoice
	// ModeCreditNote always produces a CreditNote.
	ModeCreditNote
)

// TaxSchemeVAT is the default VAT tax scheme identifier.
const TaxSchemeVAT = "VAT"

// options is the immutable per-call configuration snapshot. A fresh value is
// built from the Option list on every conversion, so a shared set of options
// can never interfere with an in-flight call.
type options struct {
	version          Version
	mode             CreationMode
	vatScheme        string
	customizationID  string
	profileID        string
	defaultCurrency  currency.Code
	cardNetworkID    string
	orderReferenceID string
	swapQuantitySign bool
	swapPriceSign    bool
}

func defaultOptions() *options {
	return &options{
		version:          UBL21,
		mode:             ModeAutomatic,
		vatScheme:        TaxSchemeVAT,
		swapQuantitySign: true,
		swapPriceSign:    true,
	}
}

func (o *options) validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.vatScheme, validation.Required),
		validation.Field(&o.defaultCurrency, validation.Skip.When(o.defaultCurrency == "")),
	)
}

// Option is used to define configuration options to use during
// conversion processes.
type Option func(*options)

// WithVersion selects the target UBL schema version. Defaults to UBL 2.1.
func WithVersion(v Version) Option {
	return func(o *options) {
		o.version = v
	}
}

// WithCreationMode selects how the output document type is decided.
// Defaults to automatic classification.
func WithCreationMode(m CreationMode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithVATScheme overrides the tax scheme identifier substituted for the
// legacy "VA" registration scheme. Defaults to "VAT".
func WithVATScheme(scheme string) Option {
	return func(o *options) {
		o.vatScheme = scheme
	}
}

// WithCustomizationID overrides the customization id carried from the source
// document context.
func WithCustomizationID(id string) Option {
	return func(o *options) {
		o.customizationID = id
	}
}

// WithProfileID overrides the profile id carried from the source document
// context.
func WithProfileID(id string) Option {
	return func(o *options) {
		o.profileID = id
	}
}

// WithDefaultCurrency sets the currency used when neither the source amount
// nor the document carries a currency code.
func WithDefaultCurrency(c currency.Code) Option {
	return func(o *options) {
		o.defaultCurrency = c
	}
}

// WithCardNetworkID sets the card network identifier used for card payment
// means; the source format carries none.
func WithCardNetworkID(id string) Option {
	return func(o *options) {
		o.cardNetworkID = id
	}
}

// WithOrderReferenceID sets the order reference id substituted when the
// source carries a seller order id but no buyer order id; the target schema
// requires a non-empty order reference id.
func WithOrderReferenceID(id string) Option {
	return func(o *options) {
		o.orderReferenceID = id
	}
}

// WithoutQuantitySignSwap disables negation of line quantities by the
// sign-consistency normalizer; an info diagnostic is recorded instead.
func WithoutQuantitySignSwap() Option {
	return func(o *options) {
		o.swapQuantitySign = false
	}
}

// WithoutPriceSignSwap disables negation of line prices by the
// sign-consistency normalizer; an info diagnostic is recorded instead.
func WithoutPriceSignSwap() Option {
	return func(o *options) {
		o.swapPriceSign = false
	}
}
