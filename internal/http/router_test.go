package httpapi

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brokerage-dashboard-service/internal/brokerage"
	"brokerage-dashboard-service/internal/bulkops"
	"brokerage-dashboard-service/internal/config"

	"go.uber.org/zap"
)

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	router := NewRouter(brokerage.NewDemo(), bulkops.NewMemoryStore(time.Minute), zap.NewNop(), cfg)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func testConfig() config.Config {
	return config.Config{
		Env:               "test",
		AnalyticsCacheTTL: time.Minute,
		SessionTTL:        time.Minute,
	}
}

func decodeEnvelope(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	defer res.Body.Close()
	var payload map[string]any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, testConfig())

	res, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	server := newTestServer(t, testConfig())

	res, err := http.Get(server.URL + "/api/analytics/2024")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	payload := decodeEnvelope(t, res)
	if payload["success"] != true {
		t.Fatalf("expected success envelope, got %+v", payload)
	}

	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected analytics object, got %T", payload["data"])
	}
	sales, ok := data["sales"].(map[string]any)
	if !ok {
		t.Fatalf("missing sales block")
	}
	if sales["totalSales"].(float64) != 4_250_000 {
		t.Fatalf("unexpected totalSales %v", sales["totalSales"])
	}
	if len(data["topBuyers"].([]any)) == 0 {
		t.Fatalf("expected derived top buyers")
	}
}

func TestAnalyticsUnknownYearIsNull(t *testing.T) {
	server := newTestServer(t, testConfig())

	res, err := http.Get(server.URL + "/api/analytics/1999")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	payload := decodeEnvelope(t, res)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("missing data is not an error, got %d", res.StatusCode)
	}
	if payload["data"] != nil {
		t.Fatalf("expected null data, got %+v", payload["data"])
	}
}

func TestCompareEndpoint(t *testing.T) {
	server := newTestServer(t, testConfig())

	res, err := http.Get(server.URL + "/api/analytics/2024/compare/2023")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	payload := decodeEnvelope(t, res)
	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected comparison object, got %T", payload["data"])
	}
	if _, ok := data["salesChange"]; !ok {
		t.Fatalf("missing salesChange: %+v", data)
	}
	if len(data["productDeltas"].([]any)) == 0 {
		t.Fatalf("expected product deltas")
	}
}

func TestBulkOpsSessionLifecycle(t *testing.T) {
	server := newTestServer(t, testConfig())

	res, err := http.Post(server.URL+"/api/bulk-ops/sessions", "application/json", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	created := decodeEnvelope(t, res)
	data := created["data"].(map[string]any)
	sessionID := data["sessionId"].(string)
	if sessionID == "" {
		t.Fatalf("missing session id")
	}
	if data["city"] != "All" {
		t.Fatalf("expected default city All, got %v", data["city"])
	}

	patch := func(body string) map[string]any {
		req, err := http.NewRequest(http.MethodPatch, server.URL+"/api/bulk-ops/sessions/"+sessionID, strings.NewReader(body))
		if err != nil {
			t.Fatalf("build patch: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("patch failed: %v", err)
		}
		if res.StatusCode != http.StatusOK {
			t.Fatalf("patch status %d", res.StatusCode)
		}
		payload := decodeEnvelope(t, res)
		return payload["data"].(map[string]any)
	}

	view := patch(`{"action":"setCity","city":"Indore"}`)
	if len(view["merchants"].([]any)) != 3 {
		t.Fatalf("expected 3 Indore merchants, got %d", len(view["merchants"].([]any)))
	}

	view = patch(`{"action":"select","userId":101}`)
	if len(view["selected"].([]any)) != 1 {
		t.Fatalf("expected one selected id, got %v", view["selected"])
	}

	// City change clears selection and search.
	patch(`{"action":"setSearch","search":"agrawal"}`)
	view = patch(`{"action":"setCity","city":"Ujjain"}`)
	if len(view["selected"].([]any)) != 0 || view["search"] != "" {
		t.Fatalf("city change must clear selection and search, got %+v", view)
	}

	view = patch(`{"action":"toggleSelectAll"}`)
	if len(view["selected"].([]any)) != 2 {
		t.Fatalf("expected both Ujjain merchants selected, got %v", view["selected"])
	}
}

func TestBulkBillsDownloadEndpoint(t *testing.T) {
	server := newTestServer(t, testConfig())

	body := `{"userIds":[101,102],"financialYearId":2024,"format":"html"}`
	res, err := http.Post(server.URL+"/api/bulk-bills/download", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	disposition := res.Header.Get("Content-Disposition")
	if disposition != `attachment; filename="bulk-bills-html-FY2024.zip"` {
		t.Fatalf("unexpected disposition %q", disposition)
	}
	if message := res.Header.Get("X-Download-Message"); message != "Successfully downloaded 2 HTML bills!" {
		t.Fatalf("unexpected message %q", message)
	}

	blob := &bytes.Buffer{}
	if _, err := blob.ReadFrom(res.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	reader, err := zip.NewReader(bytes.NewReader(blob.Bytes()), int64(blob.Len()))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	if len(reader.File) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(reader.File))
	}
}

func TestBulkBillsDownloadValidation(t *testing.T) {
	server := newTestServer(t, testConfig())

	body := `{"userIds":[],"financialYearId":5,"format":"excel"}`
	res, err := http.Post(server.URL+"/api/bulk-bills/download", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	payload := decodeEnvelope(t, res)
	if payload["message"] != "Please select at least one user" {
		t.Fatalf("unexpected message %v", payload["message"])
	}

	// The validation failure is visible as hook state and can be cleared.
	res, err = http.Get(server.URL + "/api/bulk-bills/status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	status := decodeEnvelope(t, res)["data"].(map[string]any)
	if status["inFlight"] != false || status["error"] != "Please select at least one user" {
		t.Fatalf("unexpected status %+v", status)
	}

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/bulk-bills/error", nil)
	if _, err := http.DefaultClient.Do(req); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	res, _ = http.Get(server.URL + "/api/bulk-bills/status")
	status = decodeEnvelope(t, res)["data"].(map[string]any)
	if status["error"] != "" {
		t.Fatalf("error not cleared: %+v", status)
	}
}

func TestBulkBillsDownloadFromSession(t *testing.T) {
	server := newTestServer(t, testConfig())

	res, err := http.Post(server.URL+"/api/bulk-ops/sessions", "application/json", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	created := decodeEnvelope(t, res)
	sessionID := created["data"].(map[string]any)["sessionId"].(string)

	req, _ := http.NewRequest(http.MethodPatch, server.URL+"/api/bulk-ops/sessions/"+sessionID, strings.NewReader(`{"action":"toggleSelectAll"}`))
	req.Header.Set("Content-Type", "application/json")
	if _, err := http.DefaultClient.Do(req); err != nil {
		t.Fatalf("patch failed: %v", err)
	}

	body := `{"sessionId":"` + sessionID + `","financialYearId":2023,"format":"excel"}`
	res, err = http.Post(server.URL+"/api/bulk-bills/download", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if disposition := res.Header.Get("Content-Disposition"); !strings.Contains(disposition, "bulk-bills-excel-FY2023.zip") {
		t.Fatalf("unexpected disposition %q", disposition)
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	server := newTestServer(t, testConfig())

	res, err := http.Get(server.URL + "/api/availability/username?value=Admin")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	data := decodeEnvelope(t, res)["data"].(map[string]any)
	if data["available"] != false || data["value"] != "admin" {
		t.Fatalf("unexpected availability %+v", data)
	}

	res, err = http.Get(server.URL + "/api/availability/username/suggest?base=admin")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	suggestion := decodeEnvelope(t, res)["data"].(map[string]any)
	if suggestion["suggestion"] != "admin1" {
		t.Fatalf("unexpected suggestion %+v", suggestion)
	}

	res, err = http.Get(server.URL + "/api/availability/username?value=")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty value, got %d", res.StatusCode)
	}
}

func TestAuthRequiredWhenSecretSet(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "secret"
	server := newTestServer(t, cfg)

	res, err := http.Get(server.URL + "/api/analytics/2024")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", res.StatusCode)
	}

	// Health stays open.
	res, err = http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected open health endpoint, got %d", res.StatusCode)
	}
}
