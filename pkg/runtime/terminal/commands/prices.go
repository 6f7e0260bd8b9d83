package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/price-atlas/pkg/services/export"
	"github.com/de-tools/price-atlas/pkg/services/pricing"
)

type pricesCmd struct {
	global     *GlobalFlags
	currencies []string
	filter     string
	maxPages   int
	format     string
	flatten    bool
	outDir     string
}

func NewPricesCmd(global *GlobalFlags) *cobra.Command {
	pc := &pricesCmd{global: global}
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Export retail prices for one or more currencies",
		RunE:  pc.run,
	}

	f := cmd.Flags()
	f.StringSliceVar(&pc.currencies, "currency", []string{"USD"}, "currency code(s) to export")
	f.StringVar(&pc.filter, "filter", "", `filter expression, e.g. "serviceName eq 'Virtual Machines'"`)
	f.IntVar(&pc.maxPages, "max-pages", pricing.DefaultMaxPages, "page ceiling, mainly useful for debugging")
	f.StringVar(&pc.format, "format", "csv", "output format: csv or json")
	f.BoolVar(&pc.flatten, "flatten", false, "additionally export the flattened price matrix")
	f.StringVar(&pc.outDir, "out", ".", "directory for exported files")

	return cmd
}

func (pc *pricesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)

	if pc.format != "csv" && pc.format != "json" {
		return fmt.Errorf("unsupported format %q (want csv or json)", pc.format)
	}

	client, closeCache, err := pricing.NewCachedClient(pc.global.ClientSettings())
	if err != nil {
		return err
	}
	defer func() { _ = closeCache() }()

	for _, currency := range pc.currencies {
		records, err := client.Prices(ctx, pricing.Query{
			CurrencyCode: currency,
			Filter:       pc.filter,
			APIVersion:   pc.global.APIVersion,
			MaxPages:     pc.maxPages,
		})
		if err != nil {
			return fmt.Errorf("export %s prices: %w", currency, err)
		}

		path := filepath.Join(pc.outDir, fmt.Sprintf("prices_%s.%s", currency, pc.format))
		err = writeFile(path, func(w io.Writer) error {
			if pc.format == "json" {
				return export.WritePricesJSON(w, records)
			}
			return export.WritePricesCSV(w, records)
		})
		if err != nil {
			return err
		}
		log.Info().Str("file", path).Int("records", len(records)).Msg("exported prices")

		if pc.flatten {
			flat := export.Flatten(records)
			flatPath := filepath.Join(pc.outDir, fmt.Sprintf("prices_flattened_%s.csv", currency))
			err = writeFile(flatPath, func(w io.Writer) error {
				return export.WriteFlatPricesCSV(w, flat)
			})
			if err != nil {
				return err
			}
			log.Info().Str("file", flatPath).Int("rows", len(flat)).Msg("exported flattened prices")
		}
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
