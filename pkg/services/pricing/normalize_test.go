package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/price-atlas/pkg/models/api"
	"github.com/de-tools/price-atlas/pkg/models/domain"
)

func testItem() api.Item {
	return api.Item{
		CurrencyCode:       "USD",
		UnitPrice:          decimal.RequireFromString("3.276"),
		RetailPrice:        decimal.RequireFromString("3.276"),
		ArmRegionName:      "westeurope",
		EffectiveStartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		MeterID:            "d5a81ebd-6435-4b0f-9ab1-6c0d0dd6eed0",
		MeterName:          "D8s v5",
		ProductName:        "Virtual Machines Dsv5 Series",
		SkuName:            "D8s v5",
		ServiceName:        "Virtual Machines",
		ServiceFamily:      "Compute",
		UnitOfMeasure:      "1 Hour",
		Type:               "Consumption",
	}
}

func TestNormalize_PlainItem(t *testing.T) {
	records, err := Normalize(testItem())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, domain.PriceTypeConsumption, rec.Type)
	assert.Empty(t, rec.Term)
	assert.True(t, rec.UnitPrice.Equal(decimal.RequireFromString("3.276")))
}

func TestNormalize_SavingsPlanExpansion(t *testing.T) {
	item := testItem()
	item.SavingsPlan = []api.SavingsPlanTerm{
		{UnitPrice: decimal.RequireFromString("2.457"), RetailPrice: decimal.RequireFromString("2.457"), Term: "1 Year"},
		{UnitPrice: decimal.RequireFromString("1.802"), RetailPrice: decimal.RequireFromString("1.802"), Term: "3 Years"},
	}

	records, err := Normalize(item)
	require.NoError(t, err)
	require.Len(t, records, 3, "one on-demand record plus one per plan tier")

	assert.Equal(t, domain.PriceTypeConsumption, records[0].Type)

	assert.Equal(t, domain.PriceTypeSavingsPlan, records[1].Type)
	assert.Equal(t, "1 Year", records[1].Term)
	assert.True(t, records[1].UnitPrice.Equal(decimal.RequireFromString("2.457")))

	assert.Equal(t, domain.PriceTypeSavingsPlan, records[2].Type)
	assert.Equal(t, "3 Years", records[2].Term)

	// Identity fields carry over from the parent item.
	for _, rec := range records[1:] {
		assert.Equal(t, item.MeterID, rec.MeterID)
		assert.Equal(t, item.SkuName, rec.SkuName)
		assert.Equal(t, item.ArmRegionName, rec.ArmRegionName)
	}

	// Every expanded record is independently addressable.
	keys := make(map[string]struct{})
	for _, rec := range records {
		keys[rec.Key()] = struct{}{}
	}
	assert.Len(t, keys, 3)
}

func TestNormalize_MissingIdentityFields(t *testing.T) {
	missingMeter := testItem()
	missingMeter.MeterID = ""

	_, err := Normalize(missingMeter)
	var merr *MalformedResponseError
	require.ErrorAs(t, err, &merr)

	missingSku := testItem()
	missingSku.SkuName = ""

	_, err = Normalize(missingSku)
	require.ErrorAs(t, err, &merr)
}
