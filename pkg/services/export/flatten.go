package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/de-tools/price-atlas/pkg/models/domain"
)

const hoursPerMonth = 730

const (
	termOneYear    = "1 Year"
	termThreeYears = "3 Years"
	termFiveYears  = "5 Years"
)

// ProductKey identifies one billable product across its price rows.
func ProductKey(r domain.PriceRecord) string {
	return strings.Join([]string{
		r.ProductName, r.SkuName, r.MeterName, r.TierMinimumUnits.String(), r.ArmRegionName,
	}, `\`)
}

type pricePivot struct {
	first        domain.PriceRecord
	consumption  *decimal.Decimal
	devTest      *decimal.Decimal
	reservations map[string]decimal.Decimal
}

// Flatten pivots per-type price rows into one row per product key, with the
// consumption, dev/test and hourly reservation prices side by side. Product
// keys without a positive consumption price are dropped; a handful of
// dev/test-only line items would otherwise divide by zero in the savings
// columns. Row order follows the first occurrence of each product key.
func Flatten(records []domain.PriceRecord) []domain.FlatPrice {
	var order []string
	byKey := make(map[string]*pricePivot)

	for _, r := range records {
		key := ProductKey(r)
		p, ok := byKey[key]
		if !ok {
			p = &pricePivot{first: r, reservations: make(map[string]decimal.Decimal)}
			byKey[key] = p
			order = append(order, key)
		}

		switch r.Type {
		case domain.PriceTypeConsumption:
			if p.consumption == nil {
				v := r.RetailPrice
				p.consumption = &v
			}
		case domain.PriceTypeDevTestConsumption:
			if p.devTest == nil {
				v := r.RetailPrice
				p.devTest = &v
			}
		case domain.PriceTypeReservation:
			if r.Term != "" {
				p.reservations[r.Term] = r.RetailPrice
			}
		}
	}

	one := decimal.NewFromInt(1)
	out := make([]domain.FlatPrice, 0, len(order))

	for _, key := range order {
		p := byKey[key]
		if p.consumption == nil || !p.consumption.IsPositive() {
			continue
		}

		flat := domain.FlatPrice{
			ProductKey:       key,
			ProductName:      p.first.ProductName,
			SkuName:          p.first.SkuName,
			MeterName:        p.first.MeterName,
			ArmRegionName:    p.first.ArmRegionName,
			ServiceName:      p.first.ServiceName,
			ServiceFamily:    p.first.ServiceFamily,
			UnitOfMeasure:    p.first.UnitOfMeasure,
			CurrencyCode:     p.first.CurrencyCode,
			TierMinimumUnits: p.first.TierMinimumUnits,
			Consumption:      *p.consumption,
			IsReservation:    len(p.reservations) > 0,
		}

		if p.devTest != nil {
			savings := one.Sub(p.devTest.Div(flat.Consumption))
			flat.DevTestConsumption = p.devTest
			flat.DevTestSavings = &savings
		}

		flat.OneYear, flat.OneYearSavings = reservationColumns(p.reservations, termOneYear, 12, flat.Consumption)
		flat.ThreeYears, flat.ThreeYearsSavings = reservationColumns(p.reservations, termThreeYears, 36, flat.Consumption)
		flat.FiveYears, flat.FiveYearsSavings = reservationColumns(p.reservations, termFiveYears, 60, flat.Consumption)

		out = append(out, flat)
	}

	return out
}

// reservationColumns converts a committed total price to its hourly
// equivalent (term months x 730 hours) and the savings fraction against the
// consumption price.
func reservationColumns(reservations map[string]decimal.Decimal, term string, months int64, consumption decimal.Decimal) (*decimal.Decimal, *decimal.Decimal) {
	total, ok := reservations[term]
	if !ok {
		return nil, nil
	}

	hourly := total.Div(decimal.NewFromInt(months * hoursPerMonth))
	savings := decimal.NewFromInt(1).Sub(hourly.Div(consumption))
	return &hourly, &savings
}

var flatHeader = []string{
	"productKey", "productName", "skuName", "meterName", "armRegionName",
	"serviceName", "serviceFamily", "unitOfMeasure", "currencyCode", "tierMinimumUnits",
	"Consumption",
	"DevTestConsumption", "DevTestConsumption savings",
	"1 Year", "1 Year savings",
	"3 Years", "3 Years savings",
	"5 Years", "5 Years savings",
	"isReservation",
}

// WriteFlatPricesCSV writes the flattened price matrix. Absent billing models
// leave their columns empty.
func WriteFlatPricesCSV(w io.Writer, prices []domain.FlatPrice) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(flatHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range prices {
		row := []string{
			p.ProductKey, p.ProductName, p.SkuName, p.MeterName, p.ArmRegionName,
			p.ServiceName, p.ServiceFamily, p.UnitOfMeasure, p.CurrencyCode, p.TierMinimumUnits.String(),
			p.Consumption.String(),
			formatOptional(p.DevTestConsumption), formatOptional(p.DevTestSavings),
			formatOptional(p.OneYear), formatOptional(p.OneYearSavings),
			formatOptional(p.ThreeYears), formatOptional(p.ThreeYearsSavings),
			formatOptional(p.FiveYears), formatOptional(p.FiveYearsSavings),
			strconv.FormatBool(p.IsReservation),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", p.ProductKey, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatOptional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
