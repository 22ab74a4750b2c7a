package computo

import "github.com/pkg/errors"

// WorkItem is one extracted line entry of a construction cost estimate.
type WorkItem struct {
	ProgressiveNumber int     `json:"progressiveNumber"`
	ReferenceCode     string  `json:"referenceCode"`
	Description       *string `json:"description"`
	Quantity          float64 `json:"quantity"`
	UnitPrice         float64 `json:"unitPrice"`
	UnitOfMeasurement *string `json:"unitOfMeasurement"`
}

// NormalizeWorkItems validates extracted items in place and reassigns
// progressive numbers from 1 in slice order. The reference code is the only
// mandatory field; quantity and unit price default to zero when absent.
func NormalizeWorkItems(items []WorkItem) error {
	if len(items) == 0 {
		return errors.New("work items: empty list")
	}
	for i := range items {
		items[i].ProgressiveNumber = i + 1
		if items[i].ReferenceCode == "" {
			return errors.Errorf("work item %d: reference code is required", i)
		}
	}
	return nil
}

// TotalAmount sums the items' value. A percent unit of measurement means the
// quantity is a percentage applied to the unit price; every other unit is a
// plain quantity × unit price.
func TotalAmount(items []WorkItem) float64 {
	var total float64
	for _, item := range items {
		unit := ""
		if item.UnitOfMeasurement != nil {
			unit = *item.UnitOfMeasurement
		}
		if unit == "%" {
			total += item.UnitPrice * (item.Quantity / 100)
		} else {
			total += item.Quantity * item.UnitPrice
		}
	}
	return total
}
