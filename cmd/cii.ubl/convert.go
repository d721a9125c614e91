package main

import (
	"fmt"
	"os"
	"strings"

	ciiubl "github.com/invopop/cii.ubl"
	"github.com/invopop/gobl/currency"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type convertOpts struct {
	*rootOpts
	optionsFile      string
	version          string
	mode             string
	vatScheme        string
	customizationID  string
	profileID        string
	defaultCurrency  string
	cardNetworkID    string
	orderReferenceID string
	keepQuantitySign bool
	keepPriceSign    bool
	failOnError      bool
}

// fileOptions mirrors the conversion flags for the YAML options file. Flags
// set on the command line take precedence over file values.
type fileOptions struct {
	Version          string `yaml:"version"`
	Mode             string `yaml:"mode"`
	VATScheme        string `yaml:"vat-scheme"`
	CustomizationID  string `yaml:"customization-id"`
	ProfileID        string `yaml:"profile-id"`
	Currency         string `yaml:"currency"`
	CardNetworkID    string `yaml:"card-network"`
	OrderReferenceID string `yaml:"order-reference"`
	KeepQuantitySign bool   `yaml:"keep-quantity-sign"`
	KeepPriceSign    bool   `yaml:"keep-price-sign"`
}

func convert(o *rootOpts) *convertOpts {
	return &convertOpts{rootOpts: o}
}

func (c *convertOpts) cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <infile> [outfile]",
		Short: "Convert a Cross-Industry Invoice XML document into a UBL document",
		RunE:  c.runE,
	}

	flags := cmd.Flags()
	flags.StringVar(&c.optionsFile, "options", "", "YAML file with conversion options")
	flags.StringVar(&c.version, "ubl-version", "", "Target UBL version (2.1, 2.2, 2.3, 2.4)")
	flags.StringVar(&c.mode, "mode", "", "Creation mode (automatic, invoice, credit-note)")
	flags.StringVar(&c.vatScheme, "vat-scheme", "", "Tax scheme id substituted for the legacy VA registration scheme")
	flags.StringVar(&c.customizationID, "customization-id", "", "Override the UBL CustomizationID")
	flags.StringVar(&c.profileID, "profile-id", "", "Override the UBL ProfileID")
	flags.StringVar(&c.defaultCurrency, "currency", "", "Default currency code for amounts without one")
	flags.StringVar(&c.cardNetworkID, "card-network", "", "Network id for card payment means")
	flags.StringVar(&c.orderReferenceID, "order-reference", "", "Order reference id used when only a seller order id is present")
	flags.BoolVar(&c.keepQuantitySign, "keep-quantity-sign", false, "Do not negate line quantities during sign normalization")
	flags.BoolVar(&c.keepPriceSign, "keep-price-sign", false, "Do not negate line prices during sign normalization")
	flags.BoolVar(&c.failOnError, "fail-on-error", false, "Exit non-zero when error diagnostics are recorded")

	return cmd
}

func (c *convertOpts) runE(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("expected one or two arguments, the command usage is `cii.ubl convert <infile> [outfile]`")
	}

	if err := c.applyOptionsFile(); err != nil {
		return err
	}

	input, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer input.Close() // nolint:errcheck

	out, err := openOutput(cmd, args)
	if err != nil {
		return err
	}
	defer out.Close() // nolint:errcheck

	opts, err := c.buildOptions()
	if err != nil {
		return err
	}

	res, err := ciiubl.ConvertReader(input, opts...)
	if err != nil {
		return fmt.Errorf("converting document: %w", err)
	}

	for _, diag := range res.Diagnostics {
		e := log.Info()
		switch diag.Level {
		case ciiubl.LevelWarning:
			e = log.Warn()
		case ciiubl.LevelError:
			e = log.Error()
		}
		e.Str("path", "/"+strings.Join(diag.Path, "/")).Msg(diag.Message)
	}

	outputData, err := ciiubl.Bytes(res.Invoice)
	if err != nil {
		return fmt.Errorf("generating UBL xml: %w", err)
	}

	if _, err = out.Write(outputData); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if c.failOnError && res.HasErrors() {
		return fmt.Errorf("conversion recorded error diagnostics")
	}
	return nil
}

// applyOptionsFile loads the YAML options file, filling only the flags the
// command line left empty.
func (c *convertOpts) applyOptionsFile() error {
	if c.optionsFile == "" {
		return nil
	}
	data, err := os.ReadFile(c.optionsFile)
	if err != nil {
		return fmt.Errorf("reading options file: %w", err)
	}
	fo := new(fileOptions)
	if err := yaml.Unmarshal(data, fo); err != nil {
		return fmt.Errorf("parsing options file: %w", err)
	}

	if c.version == "" {
		c.version = fo.Version
	}
	if c.mode == "" {
		c.mode = fo.Mode
	}
	if c.vatScheme == "" {
		c.vatScheme = fo.VATScheme
	}
	if c.customizationID == "" {
		c.customizationID = fo.CustomizationID
	}
	if c.profileID == "" {
		c.profileID = fo.ProfileID
	}
	if c.defaultCurrency == "" {
		c.defaultCurrency = fo.Currency
	}
	if c.cardNetworkID == "" {
		c.cardNetworkID = fo.CardNetworkID
	}
	if c.orderReferenceID == "" {
		c.orderReferenceID = fo.OrderReferenceID
	}
	c.keepQuantitySign = c.keepQuantitySign || fo.KeepQuantitySign
	c.keepPriceSign = c.keepPriceSign || fo.KeepPriceSign

	return nil
}

func (c *convertOpts) buildOptions() ([]ciiubl.Option, error) {
	var opts []ciiubl.Option

	if c.version != "" {
		v := ciiubl.FindVersion(c.version)
		if v == nil {
			return nil, fmt.Errorf("unknown UBL version %q", c.version)
		}
		opts = append(opts, ciiubl.WithVersion(*v))
	}

	if c.mode != "" {
		switch strings.ToLower(c.mode) {
		case "automatic", "auto":
			opts = append(opts, ciiubl.WithCreationMode(ciiubl.ModeAutomatic))
		case "invoice":
			opts = append(opts, ciiubl.WithCreationMode(ciiubl.ModeInvoice))
		case "credit-note", "creditnote":
			opts = append(opts, ciiubl.WithCreationMode(ciiubl.ModeCreditNote))
		default:
			return nil, fmt.Errorf("unknown creation mode %q", c.mode)
		}
	}

	if c.vatScheme != "" {
		opts = append(opts, ciiubl.WithVATScheme(c.vatScheme))
	}
	if c.customizationID != "" {
		opts = append(opts, ciiubl.WithCustomizationID(c.customizationID))
	}
	if c.profileID != "" {
		opts = append(opts, ciiubl.WithProfileID(c.profileID))
	}
	if c.defaultCurrency != "" {
		opts = append(opts, ciiubl.WithDefaultCurrency(currency.Code(c.defaultCurrency)))
	}
	if c.cardNetworkID != "" {
		opts = append(opts, ciiubl.WithCardNetworkID(c.cardNetworkID))
	}
	if c.orderReferenceID != "" {
		opts = append(opts, ciiubl.WithOrderReferenceID(c.orderReferenceID))
	}
	if c.keepQuantitySign {
		opts = append(opts, ciiubl.WithoutQuantitySignSwap())
	}
	if c.keepPriceSign {
		opts = append(opts, ciiubl.WithoutPriceSignSwap())
	}

	return opts, nil
}
