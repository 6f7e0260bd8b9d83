package pricing

import (
	"fmt"

	"github.com/de-tools/price-atlas/pkg/models/api"
	"github.com/de-tools/price-atlas/pkg/models/domain"
)

// Normalize expands one raw catalog item into independently addressable price
// records: the item's own on-demand price, plus one savings-plan record per
// embedded commitment term. An absent savings-plan list is normal; missing
// identity fields are not, since they break record addressing.
func Normalize(item api.Item) ([]domain.PriceRecord, error) {
	if item.MeterID == "" || item.SkuName == "" {
		return nil, &MalformedResponseError{
			Reason: fmt.Sprintf("item missing identity fields (meterId=%q, skuName=%q)", item.MeterID, item.SkuName),
		}
	}

	base := domain.PriceRecord{
		SkuName:              item.SkuName,
		ProductName:          item.ProductName,
		ProductID:            item.ProductID,
		SkuID:                item.SkuID,
		ServiceName:          item.ServiceName,
		ServiceID:            item.ServiceID,
		ServiceFamily:        item.ServiceFamily,
		ArmRegionName:        item.ArmRegionName,
		Location:             item.Location,
		ArmSkuName:           item.ArmSkuName,
		MeterID:              item.MeterID,
		MeterName:            item.MeterName,
		UnitPrice:            item.UnitPrice,
		RetailPrice:          item.RetailPrice,
		TierMinimumUnits:     item.TierMinimumUnits,
		CurrencyCode:         item.CurrencyCode,
		UnitOfMeasure:        item.UnitOfMeasure,
		EffectiveStartDate:   item.EffectiveStartDate,
		Type:                 domain.PriceType(item.Type),
		Term:                 item.ReservationTerm,
		IsPrimaryMeterRegion: item.IsPrimaryMeterRegion,
	}

	records := make([]domain.PriceRecord, 0, 1+len(item.SavingsPlan))
	records = append(records, base)

	for _, plan := range item.SavingsPlan {
		rec := base
		rec.Type = domain.PriceTypeSavingsPlan
		rec.UnitPrice = plan.UnitPrice
		rec.RetailPrice = plan.RetailPrice
		rec.Term = plan.Term
		records = append(records, rec)
	}

	return records, nil
}
