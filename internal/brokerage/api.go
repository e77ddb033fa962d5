// Package brokerage talks to the upstream Brokerage REST API. The gateway
// owns no analytics math and no bill rendering; both live upstream. A demo
// implementation backed by in-process fixtures stands in when no upstream is
// configured.
package brokerage

import (
	"context"
	"fmt"

	"brokerage-dashboard-service/internal/analytics"
)

type API interface {
	// FinancialYearAnalytics fetches the nested aggregate for one financial
	// year. A missing year yields (nil, nil): "nothing to show" is not an
	// error.
	FinancialYearAnalytics(ctx context.Context, financialYearID int64) (*analytics.RawFinancialYearAnalytics, error)

	Merchants(ctx context.Context) ([]Merchant, error)

	// Bulk-bill downloads are all-or-nothing: exactly one POST per call, the
	// whole archive or an error, never a retry.
	DownloadHTMLBills(ctx context.Context, userIDs []int64, financialYearID int64) ([]byte, error)
	DownloadExcelBills(ctx context.Context, userIDs []int64, financialYearID int64) ([]byte, error)

	CheckUsername(ctx context.Context, value string) (bool, error)
	CheckFirmName(ctx context.Context, value string) (bool, error)
}

type Merchant struct {
	UserID       int64  `json:"userId"`
	FirmName     string `json:"firmName"`
	City         string `json:"city"`
	MerchantType string `json:"merchantType"`
}

// UpstreamError carries the upstream's own error payload when one was sent,
// falling back to a generic status line.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream request failed (status %d)", e.StatusCode)
}
