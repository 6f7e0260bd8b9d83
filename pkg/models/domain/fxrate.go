package domain

import "github.com/shopspring/decimal"

// FxRate is a currency relationship derived from the price of a single
// reference meter. Convention: one unit of BaseCurrency buys Rate units of
// CurrencyCode.
type FxRate struct {
	BaseCurrency string          `json:"baseCurrency"`
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"`
	MeterID      string          `json:"meterId"`
}
