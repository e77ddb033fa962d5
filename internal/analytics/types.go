package analytics

// RawFinancialYearAnalytics is the upstream Brokerage API aggregate for one
// financial year. It is read-only: fetched on demand, never merged or mutated.
type RawFinancialYearAnalytics struct {
	FinancialYearID   int64  `json:"financialYearId"`
	FinancialYearName string `json:"financialYearName"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`

	TotalTransactionValue float64 `json:"totalTransactionValue"`
	TotalQuantity         float64 `json:"totalQuantity"`
	TotalTransactions     int64   `json:"totalTransactions"`
	TotalBrokerage        float64 `json:"totalBrokerage"`

	// MonthlyData is keyed by "YYYY-MM".
	MonthlyData           map[string]RawMonthTotal `json:"monthlyData"`
	ProductAnalytics      []RawProductTotal        `json:"productAnalytics"`
	CityAnalytics         []RawCityTotal           `json:"cityAnalytics"`
	MerchantTypeAnalytics []RawMerchantTypeTotal   `json:"merchantTypeAnalytics"`
}

type RawMonthTotal struct {
	TotalValue        float64 `json:"totalValue"`
	TotalQuantity     float64 `json:"totalQuantity"`
	TotalBrokerage    float64 `json:"totalBrokerage"`
	TotalTransactions int64   `json:"totalTransactions"`
}

type RawProductTotal struct {
	ProductName           string  `json:"productName"`
	TotalQuantity         float64 `json:"totalQuantity"`
	TotalTransactionValue float64 `json:"totalTransactionValue"`
	AveragePrice          float64 `json:"averagePrice"`
	TotalBrokerage        float64 `json:"totalBrokerage"`
	TotalTransactions     int64   `json:"totalTransactions"`
}

type RawCityTotal struct {
	City              string  `json:"city"`
	TotalValue        float64 `json:"totalValue"`
	TotalVolume       float64 `json:"totalVolume"`
	TotalBrokerage    float64 `json:"totalBrokerage"`
	TotalTransactions int64   `json:"totalTransactions"`
	MerchantCount     int64   `json:"merchantCount"`
}

type RawMerchantTypeTotal struct {
	MerchantType      string  `json:"merchantType"`
	TotalSold         float64 `json:"totalSold"`
	TotalBought       float64 `json:"totalBought"`
	TotalBrokerage    float64 `json:"totalBrokerage"`
	TotalValue        float64 `json:"totalValue"`
	TotalTransactions int64   `json:"totalTransactions"`
	MerchantCount     int64   `json:"merchantCount"`
}

// Analytics is the flattened, chart-ready view served to the dashboard.
// Constructed fresh on every Transform call and superseded wholesale when a
// different financial year is selected.
type Analytics struct {
	Sales                 SalesOverview     `json:"sales"`
	TopBuyers             []TopTrader       `json:"topBuyers"`
	TopSellers            []TopTrader       `json:"topSellers"`
	CityAnalytics         []CityRow         `json:"cityAnalytics"`
	ProductAnalytics      []ProductRow      `json:"productAnalytics"`
	MerchantTypeAnalytics []MerchantTypeRow `json:"merchantTypeAnalytics"`
	FinancialYearInfo     FinancialYearInfo `json:"financialYearInfo"`
}

// SalesOverview totals are passed through from the upstream top-level totals,
// never recomputed from MonthlySales. MonthlyGrowth is the one locally derived
// figure: month-over-month change of the last two series entries.
type SalesOverview struct {
	TotalSales        float64        `json:"totalSales"`
	TotalQuantity     float64        `json:"totalQuantity"`
	TotalTransactions int64          `json:"totalTransactions"`
	TotalBrokerage    float64        `json:"totalBrokerage"`
	MonthlySales      []MonthlyPoint `json:"monthlySales"`
	MonthlyGrowth     float64        `json:"monthlyGrowth"`
}

type MonthlyPoint struct {
	Month        string  `json:"month"`
	Sales        float64 `json:"sales"`
	Quantity     float64 `json:"quantity"`
	Brokerage    float64 `json:"brokerage"`
	Transactions int64   `json:"transactions"`
}

type ProductRow struct {
	Product      string  `json:"product"`
	Quantity     float64 `json:"quantity"`
	Value        float64 `json:"value"`
	Percentage   float64 `json:"percentage"`
	AvgPrice     float64 `json:"avgPrice"`
	Brokerage    float64 `json:"brokerage"`
	Transactions int64   `json:"transactions"`
}

type CityRow struct {
	City         string  `json:"city"`
	TotalValue   float64 `json:"totalValue"`
	TotalVolume  float64 `json:"totalVolume"`
	AvgPrice     float64 `json:"avgPrice"`
	Brokerage    float64 `json:"brokerage"`
	Transactions int64   `json:"transactions"`
	Merchants    int64   `json:"merchants"`
}

type MerchantTypeRow struct {
	MerchantType string  `json:"merchantType"`
	TotalSold    float64 `json:"totalSold"`
	TotalBought  float64 `json:"totalBought"`
	Brokerage    float64 `json:"brokerage"`
	Value        float64 `json:"value"`
	Transactions int64   `json:"transactions"`
	Merchants    int64   `json:"merchants"`
}

// TopTrader entries are synthesized from city totals, not a per-merchant
// ranking; the upstream payload has no merchant leaderboard.
type TopTrader struct {
	Name  string  `json:"name"`
	City  string  `json:"city"`
	Value float64 `json:"value"`
}

type FinancialYearInfo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
