package brokerage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"brokerage-dashboard-service/internal/analytics"
)

const userAgent = "Brokerage Dashboard Gateway"

// Client is the real HTTP implementation of API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) FinancialYearAnalytics(ctx context.Context, financialYearID int64) (*analytics.RawFinancialYearAnalytics, error) {
	var payload analytics.RawFinancialYearAnalytics
	found, err := c.getJSON(ctx, fmt.Sprintf("/Brokerage/analytics/%d", financialYearID), &payload)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &payload, nil
}

func (c *Client) Merchants(ctx context.Context) ([]Merchant, error) {
	var payload []Merchant
	if _, err := c.getJSON(ctx, "/Users/merchants", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) DownloadHTMLBills(ctx context.Context, userIDs []int64, financialYearID int64) ([]byte, error) {
	return c.postForBlob(ctx, fmt.Sprintf("/Brokerage/bulk-bills/html/%d", financialYearID), userIDs)
}

func (c *Client) DownloadExcelBills(ctx context.Context, userIDs []int64, financialYearID int64) ([]byte, error) {
	return c.postForBlob(ctx, fmt.Sprintf("/Brokerage/bulk-bills/excel/%d", financialYearID), userIDs)
}

func (c *Client) CheckUsername(ctx context.Context, value string) (bool, error) {
	return c.checkAvailability(ctx, "/auth/check-username", value)
}

func (c *Client) CheckFirmName(ctx context.Context, value string) (bool, error) {
	return c.checkAvailability(ctx, "/auth/check-firm-name", value)
}

func (c *Client) checkAvailability(ctx context.Context, path string, value string) (bool, error) {
	var payload struct {
		Available bool `json:"available"`
	}
	if _, err := c.getJSON(ctx, path+"?value="+url.QueryEscape(value), &payload); err != nil {
		return false, err
	}
	return payload.Available, nil
}

// getJSON performs a GET and decodes the body into out. Returns found=false
// on a 404 so callers can treat "no data" as an empty state rather than an
// error.
func (c *Client) getJSON(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return false, readUpstreamError(res)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) postForBlob(ctx context.Context, path string, body any) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/zip")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, readUpstreamError(res)
	}
	return io.ReadAll(res.Body)
}

func readUpstreamError(res *http.Response) error {
	upstreamErr := &UpstreamError{StatusCode: res.StatusCode}

	body, err := io.ReadAll(io.LimitReader(res.Body, 64*1024))
	if err != nil {
		return upstreamErr
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if strings.TrimSpace(payload.Message) != "" {
			upstreamErr.Message = payload.Message
		} else if strings.TrimSpace(payload.Error) != "" {
			upstreamErr.Message = payload.Error
		}
	}
	return upstreamErr
}
