package analytics

// DeltaStatus tags comparison rows so entries that exist on only one side of
// the comparison are distinguishable from genuine changes against a zero
// baseline.
type DeltaStatus string

const (
	DeltaMatched      DeltaStatus = "matched"
	DeltaCurrentOnly  DeltaStatus = "currentOnly"
	DeltaPreviousOnly DeltaStatus = "previousOnly"
)

// ComparisonMetrics holds the percentage deltas between a current and a
// comparison financial year. Recomputed whenever either side changes.
type ComparisonMetrics struct {
	SalesChange        float64 `json:"salesChange"`
	QuantityChange     float64 `json:"quantityChange"`
	TransactionsChange float64 `json:"transactionsChange"`
	BrokerageChange    float64 `json:"brokerageChange"`

	ProductDeltas []ProductDelta `json:"productDeltas"`
	CityDeltas    []CityDelta    `json:"cityDeltas"`
}

type ProductDelta struct {
	Product       string      `json:"product"`
	Status        DeltaStatus `json:"status"`
	CurrentValue  float64     `json:"currentValue"`
	PreviousValue float64     `json:"previousValue"`
	Change        float64     `json:"change"`
}

type CityDelta struct {
	City          string      `json:"city"`
	Status        DeltaStatus `json:"status"`
	CurrentValue  float64     `json:"currentValue"`
	PreviousValue float64     `json:"previousValue"`
	Change        float64     `json:"change"`
}

// Compare computes period-over-period deltas between two transformed views.
// Returns nil when either side is absent. Rows are matched by product name or
// city; unmatched rows are emitted with a CurrentOnly/PreviousOnly status and
// a 0 change (the shared formula collapses zero baselines to 0).
func Compare(current, previous *Analytics) *ComparisonMetrics {
	if current == nil || previous == nil {
		return nil
	}

	metrics := &ComparisonMetrics{
		SalesChange:        percentChange(current.Sales.TotalSales, previous.Sales.TotalSales),
		QuantityChange:     percentChange(current.Sales.TotalQuantity, previous.Sales.TotalQuantity),
		TransactionsChange: percentChange(float64(current.Sales.TotalTransactions), float64(previous.Sales.TotalTransactions)),
		BrokerageChange:    percentChange(current.Sales.TotalBrokerage, previous.Sales.TotalBrokerage),
	}

	metrics.ProductDeltas = compareProducts(current.ProductAnalytics, previous.ProductAnalytics)
	metrics.CityDeltas = compareCities(current.CityAnalytics, previous.CityAnalytics)

	return metrics
}

func compareProducts(current, previous []ProductRow) []ProductDelta {
	prevByName := make(map[string]ProductRow, len(previous))
	for _, row := range previous {
		prevByName[row.Product] = row
	}

	deltas := make([]ProductDelta, 0, len(current))
	seen := make(map[string]bool, len(current))
	for _, row := range current {
		seen[row.Product] = true
		delta := ProductDelta{
			Product:      row.Product,
			Status:       DeltaCurrentOnly,
			CurrentValue: row.Value,
		}
		if prev, ok := prevByName[row.Product]; ok {
			delta.Status = DeltaMatched
			delta.PreviousValue = prev.Value
			delta.Change = percentChange(row.Value, prev.Value)
		}
		deltas = append(deltas, delta)
	}

	for _, row := range previous {
		if seen[row.Product] {
			continue
		}
		deltas = append(deltas, ProductDelta{
			Product:       row.Product,
			Status:        DeltaPreviousOnly,
			PreviousValue: row.Value,
		})
	}
	return deltas
}

func compareCities(current, previous []CityRow) []CityDelta {
	prevByCity := make(map[string]CityRow, len(previous))
	for _, row := range previous {
		prevByCity[row.City] = row
	}

	deltas := make([]CityDelta, 0, len(current))
	seen := make(map[string]bool, len(current))
	for _, row := range current {
		seen[row.City] = true
		delta := CityDelta{
			City:         row.City,
			Status:       DeltaCurrentOnly,
			CurrentValue: row.TotalValue,
		}
		if prev, ok := prevByCity[row.City]; ok {
			delta.Status = DeltaMatched
			delta.PreviousValue = prev.TotalValue
			delta.Change = percentChange(row.TotalValue, prev.TotalValue)
		}
		deltas = append(deltas, delta)
	}

	for _, row := range previous {
		if seen[row.City] {
			continue
		}
		deltas = append(deltas, CityDelta{
			City:          row.City,
			Status:        DeltaPreviousOnly,
			PreviousValue: row.TotalValue,
		})
	}
	return deltas
}
