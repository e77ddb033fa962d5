package brokerage

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"brokerage-dashboard-service/internal/analytics"
)

// Demo serves fixture data in place of the upstream API so the dashboard can
// run without a backend. Bills are generated in-process as zip archives with
// one entry per selected user.
type Demo struct{}

func NewDemo() *Demo {
	return &Demo{}
}

var demoMerchants = []Merchant{
	{UserID: 101, FirmName: "Agrawal Traders", City: "Indore", MerchantType: "Trader"},
	{UserID: 102, FirmName: "Malwa Grain Co", City: "Indore", MerchantType: "Buyer"},
	{UserID: 103, FirmName: "Sharma & Sons", City: "Ujjain", MerchantType: "Seller"},
	{UserID: 104, FirmName: "Ratlam Agro Mart", City: "Ratlam", MerchantType: "Trader"},
	{UserID: 105, FirmName: "Dewas Oil Mills", City: "Dewas", MerchantType: "Buyer"},
	{UserID: 106, FirmName: "Ujjain Pulses", City: "Ujjain", MerchantType: "Trader"},
	{UserID: 107, FirmName: "Indore Commodity House", City: "Indore", MerchantType: "Seller"},
	{UserID: 108, FirmName: "Narmada Traders", City: "Dewas", MerchantType: "Trader"},
}

var demoTakenUsernames = map[string]bool{
	"admin":  true,
	"broker": true,
	"demo":   true,
}

var demoTakenFirmNames = map[string]bool{
	"agrawal traders": true,
	"sharma & sons":   true,
}

func demoAnalytics(financialYearID int64) *analytics.RawFinancialYearAnalytics {
	switch financialYearID {
	case 2024:
		return &analytics.RawFinancialYearAnalytics{
			FinancialYearID:       2024,
			FinancialYearName:     "FY 2024-25",
			StartDate:             "2024-04-01",
			EndDate:               "2025-03-31",
			TotalTransactionValue: 4_250_000,
			TotalQuantity:         18_500,
			TotalTransactions:     640,
			TotalBrokerage:        212_500,
			MonthlyData: map[string]analytics.RawMonthTotal{
				"2024-04": {TotalValue: 310_000, TotalQuantity: 1_400, TotalBrokerage: 15_500, TotalTransactions: 48},
				"2024-05": {TotalValue: 365_000, TotalQuantity: 1_600, TotalBrokerage: 18_250, TotalTransactions: 52},
				"2024-06": {TotalValue: 402_000, TotalQuantity: 1_750, TotalBrokerage: 20_100, TotalTransactions: 61},
				"2024-07": {TotalValue: 388_000, TotalQuantity: 1_700, TotalBrokerage: 19_400, TotalTransactions: 57},
				"2024-08": {TotalValue: 420_000, TotalQuantity: 1_850, TotalBrokerage: 21_000, TotalTransactions: 63},
				"2024-09": {TotalValue: 455_000, TotalQuantity: 2_000, TotalBrokerage: 22_750, TotalTransactions: 68},
			},
			ProductAnalytics: []analytics.RawProductTotal{
				{ProductName: "Wheat", TotalQuantity: 7_200, TotalTransactionValue: 1_700_000, AveragePrice: 236, TotalBrokerage: 85_000, TotalTransactions: 250},
				{ProductName: "Soybean", TotalQuantity: 5_800, TotalTransactionValue: 1_450_000, AveragePrice: 250, TotalBrokerage: 72_500, TotalTransactions: 210},
				{ProductName: "Gram", TotalQuantity: 3_500, TotalTransactionValue: 700_000, AveragePrice: 200, TotalBrokerage: 35_000, TotalTransactions: 120},
				{ProductName: "Maize", TotalQuantity: 2_000, TotalTransactionValue: 400_000, AveragePrice: 200, TotalBrokerage: 20_000, TotalTransactions: 60},
			},
			CityAnalytics: []analytics.RawCityTotal{
				{City: "Indore", TotalValue: 1_900_000, TotalVolume: 8_200, TotalBrokerage: 95_000, TotalTransactions: 280, MerchantCount: 3},
				{City: "Ujjain", TotalValue: 1_050_000, TotalVolume: 4_600, TotalBrokerage: 52_500, TotalTransactions: 160, MerchantCount: 2},
				{City: "Dewas", TotalValue: 800_000, TotalVolume: 3_500, TotalBrokerage: 40_000, TotalTransactions: 120, MerchantCount: 2},
				{City: "Ratlam", TotalValue: 500_000, TotalVolume: 2_200, TotalBrokerage: 25_000, TotalTransactions: 80, MerchantCount: 1},
			},
			MerchantTypeAnalytics: []analytics.RawMerchantTypeTotal{
				{MerchantType: "Trader", TotalSold: 7_800, TotalBought: 7_200, TotalBrokerage: 106_250, TotalValue: 2_125_000, TotalTransactions: 320, MerchantCount: 4},
				{MerchantType: "Buyer", TotalSold: 0, TotalBought: 6_400, TotalBrokerage: 63_750, TotalValue: 1_275_000, TotalTransactions: 192, MerchantCount: 2},
				{MerchantType: "Seller", TotalSold: 4_900, TotalBought: 0, TotalBrokerage: 42_500, TotalValue: 850_000, TotalTransactions: 128, MerchantCount: 2},
			},
		}
	case 2023:
		return &analytics.RawFinancialYearAnalytics{
			FinancialYearID:       2023,
			FinancialYearName:     "FY 2023-24",
			StartDate:             "2023-04-01",
			EndDate:               "2024-03-31",
			TotalTransactionValue: 3_600_000,
			TotalQuantity:         16_000,
			TotalTransactions:     560,
			TotalBrokerage:        180_000,
			MonthlyData: map[string]analytics.RawMonthTotal{
				"2023-04": {TotalValue: 280_000, TotalQuantity: 1_250, TotalBrokerage: 14_000, TotalTransactions: 42},
				"2023-05": {TotalValue: 295_000, TotalQuantity: 1_300, TotalBrokerage: 14_750, TotalTransactions: 45},
				"2023-06": {TotalValue: 310_000, TotalQuantity: 1_400, TotalBrokerage: 15_500, TotalTransactions: 47},
			},
			ProductAnalytics: []analytics.RawProductTotal{
				{ProductName: "Wheat", TotalQuantity: 6_500, TotalTransactionValue: 1_500_000, AveragePrice: 231, TotalBrokerage: 75_000, TotalTransactions: 230},
				{ProductName: "Soybean", TotalQuantity: 5_000, TotalTransactionValue: 1_250_000, AveragePrice: 250, TotalBrokerage: 62_500, TotalTransactions: 185},
				{ProductName: "Mustard", TotalQuantity: 4_500, TotalTransactionValue: 850_000, AveragePrice: 189, TotalBrokerage: 42_500, TotalTransactions: 145},
			},
			CityAnalytics: []analytics.RawCityTotal{
				{City: "Indore", TotalValue: 1_600_000, TotalVolume: 7_100, TotalBrokerage: 80_000, TotalTransactions: 245, MerchantCount: 3},
				{City: "Ujjain", TotalValue: 1_000_000, TotalVolume: 4_400, TotalBrokerage: 50_000, TotalTransactions: 155, MerchantCount: 2},
				{City: "Dewas", TotalValue: 1_000_000, TotalVolume: 4_500, TotalBrokerage: 50_000, TotalTransactions: 160, MerchantCount: 3},
			},
			MerchantTypeAnalytics: []analytics.RawMerchantTypeTotal{
				{MerchantType: "Trader", TotalSold: 7_000, TotalBought: 6_500, TotalBrokerage: 90_000, TotalValue: 1_800_000, TotalTransactions: 280, MerchantCount: 4},
				{MerchantType: "Buyer", TotalSold: 0, TotalBought: 5_500, TotalBrokerage: 54_000, TotalValue: 1_080_000, TotalTransactions: 168, MerchantCount: 2},
				{MerchantType: "Seller", TotalSold: 4_000, TotalBought: 0, TotalBrokerage: 36_000, TotalValue: 720_000, TotalTransactions: 112, MerchantCount: 2},
			},
		}
	default:
		return nil
	}
}

func (d *Demo) FinancialYearAnalytics(_ context.Context, financialYearID int64) (*analytics.RawFinancialYearAnalytics, error) {
	return demoAnalytics(financialYearID), nil
}

func (d *Demo) Merchants(_ context.Context) ([]Merchant, error) {
	out := make([]Merchant, len(demoMerchants))
	copy(out, demoMerchants)
	return out, nil
}

func (d *Demo) DownloadHTMLBills(_ context.Context, userIDs []int64, financialYearID int64) ([]byte, error) {
	return buildDemoArchive(userIDs, financialYearID, "html")
}

func (d *Demo) DownloadExcelBills(_ context.Context, userIDs []int64, financialYearID int64) ([]byte, error) {
	return buildDemoArchive(userIDs, financialYearID, "xls")
}

func (d *Demo) CheckUsername(_ context.Context, value string) (bool, error) {
	return !demoTakenUsernames[strings.ToLower(strings.TrimSpace(value))], nil
}

func (d *Demo) CheckFirmName(_ context.Context, value string) (bool, error) {
	return !demoTakenFirmNames[strings.ToLower(strings.TrimSpace(value))], nil
}

func buildDemoArchive(userIDs []int64, financialYearID int64, extension string) ([]byte, error) {
	buffer := &bytes.Buffer{}
	archive := zip.NewWriter(buffer)

	for _, userID := range userIDs {
		entry, err := archive.Create(fmt.Sprintf("bill-%d.%s", userID, extension))
		if err != nil {
			return nil, err
		}
		firm := demoFirmName(userID)
		bill := fmt.Sprintf(
			"<html><body><h1>Brokerage Bill FY%d</h1><p>Merchant #%d %s</p><table><tr><td>Demo statement</td></tr></table></body></html>\n",
			financialYearID, userID, firm,
		)
		if _, err := entry.Write([]byte(bill)); err != nil {
			return nil, err
		}
	}

	if err := archive.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func demoFirmName(userID int64) string {
	for _, merchant := range demoMerchants {
		if merchant.UserID == userID {
			return merchant.FirmName
		}
	}
	return "Unknown Merchant"
}
