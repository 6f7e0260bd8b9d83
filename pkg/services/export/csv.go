package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/de-tools/price-atlas/pkg/models/domain"
)

var priceHeader = []string{
	"skuName", "productName", "productId", "skuId",
	"serviceName", "serviceId", "serviceFamily",
	"armRegionName", "location", "armSkuName",
	"meterId", "meterName",
	"unitPrice", "retailPrice", "tierMinimumUnits",
	"currencyCode", "unitOfMeasure", "effectiveStartDate",
	"type", "term", "isPrimaryMeterRegion",
}

// WritePricesCSV writes the tabular projection of records: one header row and
// one row per price record. Prices are rendered with decimal.String, so the
// original precision is preserved exactly.
func WritePricesCSV(w io.Writer, records []domain.PriceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(priceHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.SkuName, r.ProductName, r.ProductID, r.SkuID,
			r.ServiceName, r.ServiceID, r.ServiceFamily,
			r.ArmRegionName, r.Location, r.ArmSkuName,
			r.MeterID, r.MeterName,
			r.UnitPrice.String(), r.RetailPrice.String(), r.TierMinimumUnits.String(),
			r.CurrencyCode, r.UnitOfMeasure, formatTime(r.EffectiveStartDate),
			string(r.Type), r.Term, strconv.FormatBool(r.IsPrimaryMeterRegion),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", r.Key(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadPricesCSV parses a file produced by WritePricesCSV back into records.
func ReadPricesCSV(r io.Reader) ([]domain.PriceRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(priceHeader) {
		return nil, fmt.Errorf("unexpected header: got %d columns, want %d", len(header), len(priceHeader))
	}

	var records []domain.PriceRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		rec, err := parsePriceRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func parsePriceRow(row []string) (domain.PriceRecord, error) {
	var rec domain.PriceRecord
	var err error

	rec.SkuName, rec.ProductName, rec.ProductID, rec.SkuID = row[0], row[1], row[2], row[3]
	rec.ServiceName, rec.ServiceID, rec.ServiceFamily = row[4], row[5], row[6]
	rec.ArmRegionName, rec.Location, rec.ArmSkuName = row[7], row[8], row[9]
	rec.MeterID, rec.MeterName = row[10], row[11]

	if rec.UnitPrice, err = decimal.NewFromString(row[12]); err != nil {
		return rec, fmt.Errorf("parse unitPrice %q: %w", row[12], err)
	}
	if rec.RetailPrice, err = decimal.NewFromString(row[13]); err != nil {
		return rec, fmt.Errorf("parse retailPrice %q: %w", row[13], err)
	}
	if rec.TierMinimumUnits, err = decimal.NewFromString(row[14]); err != nil {
		return rec, fmt.Errorf("parse tierMinimumUnits %q: %w", row[14], err)
	}

	rec.CurrencyCode, rec.UnitOfMeasure = row[15], row[16]
	if rec.EffectiveStartDate, err = parseTime(row[17]); err != nil {
		return rec, fmt.Errorf("parse effectiveStartDate %q: %w", row[17], err)
	}

	rec.Type = domain.PriceType(row[18])
	rec.Term = row[19]
	if rec.IsPrimaryMeterRegion, err = strconv.ParseBool(row[20]); err != nil {
		return rec, fmt.Errorf("parse isPrimaryMeterRegion %q: %w", row[20], err)
	}

	return rec, nil
}

// WriteFxRatesCSV writes one row per derived rate. The rate column reads as
// "one unit of baseCurrency buys rate units of currencyCode".
func WriteFxRatesCSV(w io.Writer, rates []domain.FxRate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"baseCurrency", "currencyCode", "rate", "meterId"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range rates {
		row := []string{r.BaseCurrency, r.CurrencyCode, r.Rate.String(), r.MeterID}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write rate %s: %w", r.CurrencyCode, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
