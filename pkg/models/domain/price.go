package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceType distinguishes the billing model a price record belongs to.
type PriceType string

const (
	PriceTypeConsumption        PriceType = "Consumption"
	PriceTypeDevTestConsumption PriceType = "DevTestConsumption"
	PriceTypeReservation        PriceType = "Reservation"
	PriceTypeSavingsPlan        PriceType = "SavingsPlan"
)

// PriceRecord is one billable price point, flattened out of a raw catalog item.
// Within one export pass a record is uniquely identified by
// (MeterID, ArmRegionName, CurrencyCode, Term). Records are immutable once
// constructed.
type PriceRecord struct {
	SkuName              string          `json:"skuName"`
	ProductName          string          `json:"productName"`
	ProductID            string          `json:"productId"`
	SkuID                string          `json:"skuId"`
	ServiceName          string          `json:"serviceName"`
	ServiceID            string          `json:"serviceId"`
	ServiceFamily        string          `json:"serviceFamily"`
	ArmRegionName        string          `json:"armRegionName"`
	Location             string          `json:"location"`
	ArmSkuName           string          `json:"armSkuName"`
	MeterID              string          `json:"meterId"`
	MeterName            string          `json:"meterName"`
	UnitPrice            decimal.Decimal `json:"unitPrice"`
	RetailPrice          decimal.Decimal `json:"retailPrice"`
	TierMinimumUnits     decimal.Decimal `json:"tierMinimumUnits"`
	CurrencyCode         string          `json:"currencyCode"`
	UnitOfMeasure        string          `json:"unitOfMeasure"`
	EffectiveStartDate   time.Time       `json:"effectiveStartDate"`
	Type                 PriceType       `json:"type"`
	Term                 string          `json:"term,omitempty"`
	IsPrimaryMeterRegion bool            `json:"isPrimaryMeterRegion"`
}

// Key returns the identity tuple of the record within one export pass.
func (r PriceRecord) Key() string {
	return r.MeterID + "|" + r.ArmRegionName + "|" + r.CurrencyCode + "|" + r.Term
}
