package fx

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/price-atlas/pkg/models/domain"
	"github.com/de-tools/price-atlas/pkg/services/pricing"
)

const (
	DefaultBaseCurrency = "USD"

	// DefaultReferenceMeterID points at a simple, single-unit, non-tiered
	// meter that the catalog prices in every supported currency.
	DefaultReferenceMeterID = "5daea80f-04ac-5385-86f0-b263d23becd2"
)

type Config struct {
	BaseCurrency     string
	ReferenceMeterID string
	APIVersion       string
	MaxPages         int
}

func (c Config) withDefaults() Config {
	if c.BaseCurrency == "" {
		c.BaseCurrency = DefaultBaseCurrency
	}
	if c.ReferenceMeterID == "" {
		c.ReferenceMeterID = DefaultReferenceMeterID
	}
	if c.MaxPages <= 0 {
		c.MaxPages = pricing.DefaultMaxPages
	}
	return c
}

// Deriver computes exchange rates by comparing the price of one reference
// meter across currencies. The catalog pricing the meter ratio-consistently
// across currencies is an external assumption this component cannot verify.
type Deriver struct {
	client *pricing.Client
	cfg    Config
}

func NewDeriver(client *pricing.Client, cfg Config) *Deriver {
	return &Deriver{client: client, cfg: cfg.withDefaults()}
}

// Rates derives one FxRate per target currency in which the reference meter
// has an on-demand price matching the base record's region. Convention: one
// unit of the base currency buys Rate units of the target currency. Targets
// without a match are skipped, not fatal.
func (d *Deriver) Rates(ctx context.Context, targets []string) ([]domain.FxRate, error) {
	log := zerolog.Ctx(ctx)

	baseRecords, err := d.meterRecords(ctx, d.cfg.BaseCurrency)
	if err != nil {
		return nil, fmt.Errorf("fetch reference prices in %s: %w", d.cfg.BaseCurrency, err)
	}

	ref, ok := referenceRecord(baseRecords)
	if !ok {
		return nil, fmt.Errorf("reference meter %s has no usable on-demand price in %s",
			d.cfg.ReferenceMeterID, d.cfg.BaseCurrency)
	}

	rates := make([]domain.FxRate, 0, len(targets))
	for _, currency := range targets {
		if strings.EqualFold(currency, d.cfg.BaseCurrency) {
			continue
		}

		records, err := d.meterRecords(ctx, currency)
		if err != nil {
			return nil, fmt.Errorf("fetch reference prices in %s: %w", currency, err)
		}

		match, ok := matchRecord(records, ref)
		if !ok {
			log.Warn().
				Str("currency", currency).
				Str("meter_id", ref.MeterID).
				Str("region", ref.ArmRegionName).
				Msg("reference meter not priced in currency, skipping")
			continue
		}

		rate := domain.FxRate{
			BaseCurrency: d.cfg.BaseCurrency,
			CurrencyCode: match.CurrencyCode,
			Rate:         match.UnitPrice.Div(ref.UnitPrice),
			MeterID:      ref.MeterID,
		}
		rates = append(rates, rate)

		log.Info().
			Str("currency", rate.CurrencyCode).
			Str("rate", rate.Rate.String()).
			Msg("derived exchange rate")
	}

	return rates, nil
}

func (d *Deriver) meterRecords(ctx context.Context, currency string) ([]domain.PriceRecord, error) {
	return d.client.Prices(ctx, pricing.Query{
		CurrencyCode: currency,
		Filter:       fmt.Sprintf("meterId eq '%s'", d.cfg.ReferenceMeterID),
		APIVersion:   d.cfg.APIVersion,
		MaxPages:     d.cfg.MaxPages,
	})
}

// referenceRecord picks the base-currency record that targets are matched
// against: the first on-demand record with a positive unit price.
func referenceRecord(records []domain.PriceRecord) (domain.PriceRecord, bool) {
	for _, r := range records {
		if r.Type == domain.PriceTypeConsumption && r.UnitPrice.IsPositive() {
			return r, true
		}
	}
	return domain.PriceRecord{}, false
}

func matchRecord(records []domain.PriceRecord, ref domain.PriceRecord) (domain.PriceRecord, bool) {
	for _, r := range records {
		if r.MeterID == ref.MeterID && r.ArmRegionName == ref.ArmRegionName && r.Type == domain.PriceTypeConsumption {
			return r, true
		}
	}
	return domain.PriceRecord{}, false
}
