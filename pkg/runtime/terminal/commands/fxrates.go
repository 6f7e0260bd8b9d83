package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	terminalexport "github.com/de-tools/price-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/price-atlas/pkg/services/export"
	"github.com/de-tools/price-atlas/pkg/services/fx"
	"github.com/de-tools/price-atlas/pkg/services/pricing"
)

// defaultTargetCurrencies mirrors the currencies the original FX export
// shipped with.
var defaultTargetCurrencies = []string{
	"EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY", "INR",
	"BRL", "KRW", "SEK", "NOK", "DKK", "NZD", "RUB", "ZAR",
}

type fxRatesCmd struct {
	global     *GlobalFlags
	reporter   *terminalexport.Reporter
	base       string
	currencies []string
	meterID    string
	maxPages   int
	out        string
}

func NewFxRatesCmd(global *GlobalFlags, reporter *terminalexport.Reporter) *cobra.Command {
	fc := &fxRatesCmd{global: global, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "fxrates",
		Short: "Derive exchange rates from the price of a reference meter",
		RunE:  fc.run,
	}

	f := cmd.Flags()
	f.StringVar(&fc.base, "base", fx.DefaultBaseCurrency, "reference currency")
	f.StringSliceVar(&fc.currencies, "currencies", defaultTargetCurrencies, "target currency codes")
	f.StringVar(&fc.meterID, "meter-id", fx.DefaultReferenceMeterID, "reference meter identifier")
	f.IntVar(&fc.maxPages, "max-pages", pricing.DefaultMaxPages, "page ceiling per currency")
	f.StringVar(&fc.out, "out", "", "output file (default fxrates_<base>.csv)")

	return cmd
}

func (fc *fxRatesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)

	client, closeCache, err := pricing.NewCachedClient(fc.global.ClientSettings())
	if err != nil {
		return err
	}
	defer func() { _ = closeCache() }()

	deriver := fx.NewDeriver(client, fx.Config{
		BaseCurrency:     fc.base,
		ReferenceMeterID: fc.meterID,
		APIVersion:       fc.global.APIVersion,
		MaxPages:         fc.maxPages,
	})

	rates, err := deriver.Rates(ctx, fc.currencies)
	if err != nil {
		return fmt.Errorf("derive fx rates: %w", err)
	}

	path := fc.out
	if path == "" {
		path = fmt.Sprintf("fxrates_%s.csv", strings.ToLower(fc.base))
	}

	err = writeFile(path, func(w io.Writer) error {
		return export.WriteFxRatesCSV(w, rates)
	})
	if err != nil {
		return err
	}
	log.Info().Str("file", path).Int("rates", len(rates)).Msg("exported fx rates")

	return fc.reporter.Handle(fc.base, rates)
}
