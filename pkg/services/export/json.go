package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/de-tools/price-atlas/pkg/models/domain"
)

// WritePricesJSON writes the record-oriented projection: one JSON array with
// one object per price record. Prices marshal through decimal.Decimal, so
// re-parsing the file loses no precision.
func WritePricesJSON(w io.Writer, records []domain.PriceRecord) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return nil
}

// ReadPricesJSON parses a file produced by WritePricesJSON.
func ReadPricesJSON(r io.Reader) ([]domain.PriceRecord, error) {
	var records []domain.PriceRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
