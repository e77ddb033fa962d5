// Package analytics flattens the upstream Brokerage financial-year aggregates
// into the chart-ready shapes the dashboard consumes. Everything here is pure:
// no network access, no mutation of inputs, no errors for malformed numerics.
package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

const topTraderCount = 5

// Transform maps a raw financial-year aggregate into the flat dashboard view.
// A nil input yields nil ("nothing to show", not an error). Missing numeric
// fields come through as zero values, so no defaulting branch ever produces
// NaN or Inf.
func Transform(raw *RawFinancialYearAnalytics) *Analytics {
	if raw == nil {
		return nil
	}

	monthly := buildMonthlySeries(raw.MonthlyData)

	out := &Analytics{
		Sales: SalesOverview{
			TotalSales:        raw.TotalTransactionValue,
			TotalQuantity:     raw.TotalQuantity,
			TotalTransactions: raw.TotalTransactions,
			TotalBrokerage:    raw.TotalBrokerage,
			MonthlySales:      monthly,
			MonthlyGrowth:     monthlyGrowth(monthly),
		},
		CityAnalytics:         buildCityRows(raw.CityAnalytics),
		ProductAnalytics:      buildProductRows(raw.ProductAnalytics, raw.TotalTransactionValue),
		MerchantTypeAnalytics: buildMerchantTypeRows(raw.MerchantTypeAnalytics),
		FinancialYearInfo: FinancialYearInfo{
			ID:        raw.FinancialYearID,
			Name:      raw.FinancialYearName,
			StartDate: raw.StartDate,
			EndDate:   raw.EndDate,
		},
	}

	out.TopBuyers = topTradersFromCities(raw.CityAnalytics, "Top Buyer in ")
	out.TopSellers = topTradersFromCities(raw.CityAnalytics, "Top Seller in ")

	return out
}

func buildMonthlySeries(data map[string]RawMonthTotal) []MonthlyPoint {
	if len(data) == 0 {
		return []MonthlyPoint{}
	}

	// "YYYY-MM" keys sort chronologically as plain strings.
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := make([]MonthlyPoint, 0, len(keys))
	for _, key := range keys {
		entry := data[key]
		series = append(series, MonthlyPoint{
			Month:        monthLabel(key),
			Sales:        entry.TotalValue,
			Quantity:     entry.TotalQuantity,
			Brokerage:    entry.TotalBrokerage,
			Transactions: entry.TotalTransactions,
		})
	}
	return series
}

// monthLabel resolves "YYYY-MM" to a three-letter month name. Malformed or
// out-of-range keys fall back to the verbatim key as the chart label.
func monthLabel(key string) string {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return key
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return key
	}
	return monthNames[month-1]
}

func monthlyGrowth(series []MonthlyPoint) float64 {
	if len(series) < 2 {
		return 0
	}
	last := series[len(series)-1]
	secondLast := series[len(series)-2]
	return percentChange(last.Sales, secondLast.Sales)
}

func buildProductRows(totals []RawProductTotal, grandTotal float64) []ProductRow {
	rows := make([]ProductRow, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, ProductRow{
			Product:      total.ProductName,
			Quantity:     total.TotalQuantity,
			Value:        total.TotalTransactionValue,
			Percentage:   shareOf(total.TotalTransactionValue, grandTotal),
			AvgPrice:     total.AveragePrice,
			Brokerage:    total.TotalBrokerage,
			Transactions: total.TotalTransactions,
		})
	}
	return rows
}

func buildCityRows(totals []RawCityTotal) []CityRow {
	rows := make([]CityRow, 0, len(totals))
	for _, total := range totals {
		avgPrice := 0.0
		if total.TotalVolume > 0 {
			avgPrice = total.TotalValue / total.TotalVolume
		}
		rows = append(rows, CityRow{
			City:         total.City,
			TotalValue:   total.TotalValue,
			TotalVolume:  total.TotalVolume,
			AvgPrice:     avgPrice,
			Brokerage:    total.TotalBrokerage,
			Transactions: total.TotalTransactions,
			Merchants:    total.MerchantCount,
		})
	}
	return rows
}

func buildMerchantTypeRows(totals []RawMerchantTypeTotal) []MerchantTypeRow {
	rows := make([]MerchantTypeRow, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, MerchantTypeRow{
			MerchantType: total.MerchantType,
			TotalSold:    total.TotalSold,
			TotalBought:  total.TotalBought,
			Brokerage:    total.TotalBrokerage,
			Value:        total.TotalValue,
			Transactions: total.TotalTransactions,
			Merchants:    total.MerchantCount,
		})
	}
	return rows
}

// topTradersFromCities synthesizes ranking entries from city totals: the top
// five cities by value, relabeled. The upstream payload carries no real
// per-merchant leaderboard, so this approximation is served as-is.
func topTradersFromCities(totals []RawCityTotal, labelPrefix string) []TopTrader {
	sorted := make([]RawCityTotal, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalValue > sorted[j].TotalValue
	})

	limit := topTraderCount
	if len(sorted) < limit {
		limit = len(sorted)
	}

	traders := make([]TopTrader, 0, limit)
	for _, city := range sorted[:limit] {
		traders = append(traders, TopTrader{
			Name:  labelPrefix + city.City,
			City:  city.City,
			Value: city.TotalValue,
		})
	}
	return traders
}

// shareOf returns value as a percentage of total, rounded to one decimal.
// A zero or absent denominator yields exactly 0.
func shareOf(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(value/total*1000) / 10
}

// percentChange returns the rounded percentage change from prev to curr, with
// a zero baseline collapsing to 0 rather than dividing.
func percentChange(curr, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return math.Round((curr-prev)/prev*1000) / 10
}
