package domain

import "github.com/shopspring/decimal"

// FlatPrice is one row of the flattened price matrix: all billing models for a
// product key side by side instead of one row per price. Reservation prices
// are converted to their hourly equivalent; savings columns express the
// discount against the consumption price as a fraction.
type FlatPrice struct {
	ProductKey       string
	ProductName      string
	SkuName          string
	MeterName        string
	ArmRegionName    string
	ServiceName      string
	ServiceFamily    string
	UnitOfMeasure    string
	CurrencyCode     string
	TierMinimumUnits decimal.Decimal

	Consumption        decimal.Decimal
	DevTestConsumption *decimal.Decimal
	DevTestSavings     *decimal.Decimal
	OneYear            *decimal.Decimal
	OneYearSavings     *decimal.Decimal
	ThreeYears         *decimal.Decimal
	ThreeYearsSavings  *decimal.Decimal
	FiveYears          *decimal.Decimal
	FiveYearsSavings   *decimal.Decimal
	IsReservation      bool
}
