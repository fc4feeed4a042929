package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledgercheck/internal/assess"
	"github.com/Veraticus/ledgercheck/internal/extract"
	"github.com/Veraticus/ledgercheck/internal/ledger"
	"github.com/Veraticus/ledgercheck/internal/model"
	"github.com/Veraticus/ledgercheck/internal/recommend"
	"github.com/Veraticus/ledgercheck/internal/testutil"
)

const requester = "alice"

func testServer(t *testing.T) *Server {
	t.Helper()

	clock := func() time.Time { return time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC) }
	calc := assess.NewCalculator(recommend.NewEngine(nil), assess.WithClock(clock))
	svc := ledger.NewService(calc, extract.New(calc, nil), testutil.SetupTestDB(t), testutil.NewTestCipher(t))

	return New(svc, Config{AllowedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"}}, nil)
}

func do(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(DefaultRequesterHeader, requester)
	return req
}

func manualRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/upload/manual", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(DefaultRequesterHeader, requester)
	return req
}

func TestRootAndHealth(t *testing.T) {
	srv := testServer(t)

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Financial Health Assessment API is running"}`, rec.Body.String())

	rec = do(t, srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestMissingRequester(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/reports/history", "/reports/latest"} {
		rec := do(t, srv, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	req := manualRequest(`{"revenue":1,"expenses":1}`)
	req.Header.Del(DefaultRequesterHeader)
	assert.Equal(t, http.StatusUnauthorized, do(t, srv, req).Code)
}

func TestUpload(t *testing.T) {
	srv := testServer(t)

	rec := do(t, srv, uploadRequest(t, "books.csv", "type,amount\nincome,1000\nexpense,300\nsales,500\nbogus,999\n"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result model.ExtractionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, 4, result.RowsProcessed)
	assert.InDelta(t, 1500.0, result.FinancialSummary.Revenue.Total, 1e-9)
	assert.InDelta(t, 300.0, result.FinancialSummary.Expenses.Total, 1e-9)
}

func TestUpload_Errors(t *testing.T) {
	srv := testServer(t)

	rec := do(t, srv, uploadRequest(t, "bad.csv", "a,b\n1,2,3\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad.csv")

	req := httptest.NewRequest(http.MethodPost, "/upload/", strings.NewReader("plain"))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set(DefaultRequesterHeader, requester)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, req).Code)

	rec = do(t, srv, uploadRequest(t, "scan.pdf", "%PDF"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"partial_success"`)
}

func TestManual(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name       string
		body       string
		wantProfit float64
		wantStatus int
	}{
		{name: "explicit profit", body: `{"revenue":1000,"expenses":400,"profit":100}`, wantStatus: http.StatusOK, wantProfit: 100},
		{name: "derived profit", body: `{"revenue":1000,"expenses":400}`, wantStatus: http.StatusOK, wantProfit: 600},
		{name: "zero revenue", body: `{"revenue":0,"expenses":0,"profit":0}`, wantStatus: http.StatusOK},
		{name: "negative revenue", body: `{"revenue":-1,"expenses":0}`, wantStatus: http.StatusBadRequest},
		{name: "missing expenses", body: `{"revenue":1}`, wantStatus: http.StatusBadRequest},
		{name: "bad json", body: `{"revenue":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, manualRequest(tt.body))
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var result model.ExtractionResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			assert.Equal(t, model.MethodManualEntry, result.Method)
			assert.InDelta(t, tt.wantProfit, result.FinancialSummary.NetProfit, 1e-9)
		})
	}
}

func TestReports(t *testing.T) {
	srv := testServer(t)

	latestReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/reports/latest", nil)
		req.Header.Set(DefaultRequesterHeader, requester)
		return req
	}

	rec := do(t, srv, latestReq())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusOK, do(t, srv, manualRequest(`{"revenue":2000,"expenses":500}`)).Code)

	rec = do(t, srv, latestReq())
	require.Equal(t, http.StatusOK, rec.Code)
	var latest model.ExtractionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	assert.InDelta(t, 1500.0, latest.FinancialSummary.NetProfit, 1e-9)

	req := httptest.NewRequest(http.MethodGet, "/reports/history", nil)
	req.Header.Set(DefaultRequesterHeader, requester)
	rec = do(t, srv, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []model.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, model.ManualEntryFilename, entries[0].Filename)
	assert.Equal(t, "PDF/CSV", entries[0].Type)
	assert.Len(t, entries[0].Recommendations, 3)
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/upload/manual", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := do(t, srv, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://evil.example")
	rec = do(t, srv, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
