package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response is one page of the retail prices endpoint. NextPageLink is empty on
// the final page.
type Response struct {
	BillingCurrency string `json:"BillingCurrency"`
	Items           []Item `json:"Items"`
	NextPageLink    string `json:"NextPageLink"`
	Count           int    `json:"Count"`
}

// Item is one raw catalog entry as returned by the endpoint. Prices are decoded
// into decimal.Decimal so the original precision survives re-serialization.
type Item struct {
	CurrencyCode         string            `json:"currencyCode"`
	TierMinimumUnits     decimal.Decimal   `json:"tierMinimumUnits"`
	RetailPrice          decimal.Decimal   `json:"retailPrice"`
	UnitPrice            decimal.Decimal   `json:"unitPrice"`
	ArmRegionName        string            `json:"armRegionName"`
	Location             string            `json:"location"`
	EffectiveStartDate   time.Time         `json:"effectiveStartDate"`
	MeterID              string            `json:"meterId"`
	MeterName            string            `json:"meterName"`
	ProductID            string            `json:"productId"`
	SkuID                string            `json:"skuId"`
	ProductName          string            `json:"productName"`
	SkuName              string            `json:"skuName"`
	ServiceName          string            `json:"serviceName"`
	ServiceID            string            `json:"serviceId"`
	ServiceFamily        string            `json:"serviceFamily"`
	UnitOfMeasure        string            `json:"unitOfMeasure"`
	Type                 string            `json:"type"`
	IsPrimaryMeterRegion bool              `json:"isPrimaryMeterRegion"`
	ArmSkuName           string            `json:"armSkuName"`
	ReservationTerm      string            `json:"reservationTerm,omitempty"`
	SavingsPlan          []SavingsPlanTerm `json:"savingsPlan,omitempty"`
}

// SavingsPlanTerm is one committed-use tier embedded in a catalog item.
type SavingsPlanTerm struct {
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	RetailPrice decimal.Decimal `json:"retailPrice"`
	Term        string          `json:"term"`
}
