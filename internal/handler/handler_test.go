package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/finance-insights/internal/handler"
	"github.com/Dan9191/finance-insights/internal/middleware"
	"github.com/Dan9191/finance-insights/internal/models"
	"github.com/Dan9191/finance-insights/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	ds        *models.Dataset
	reloadErr error
	reloads   int
}

func (f *fakeStore) Current() (*models.Dataset, bool) { return f.ds, f.ds != nil }

func (f *fakeStore) Reload(ctx context.Context) error {
	f.reloads++
	return f.reloadErr
}

func testDataset() *models.Dataset {
	return &models.Dataset{
		Transactions: models.Transactions{
			"january": {
				{Amount: decimal.NewFromInt(60000), Type: models.TransactionCredit},
				{Amount: decimal.NewFromInt(40000), Type: models.TransactionDebit},
			},
			"august": {{Amount: decimal.NewFromInt(1500), Type: models.TransactionDebit}},
		},
		Credit:      models.Credit{Score: 710, Rating: "Good"},
		Assets:      models.Assets{BankBalance: decimal.NewFromInt(10000), Cash: decimal.NewFromInt(5000)},
		Investments: models.Investments{},
		Liabilities: models.Liabilities{},
		Source:      "memory",
		LoadedAt:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestRouter(t *testing.T, store *fakeStore, cfg handler.RouterConfig) http.Handler {
	t.Helper()
	log := quietLogger()
	svc := service.NewService(store, log)
	return handler.NewRouter(handler.NewHandler(svc, store, log), cfg, log)
}

func postQuery(t *testing.T, srv http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return out.Response
}

func TestQuery(t *testing.T) {
	srv := newTestRouter(t, &fakeStore{ds: testDataset()}, handler.RouterConfig{AllowedOrigins: []string{"*"}})

	w := postQuery(t, srv, `{"query":"How much did I spend last month?","permissions":{"transactions":true}}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get(middleware.RequestHeader) == "" {
		t.Error("expected a request id header")
	}
	if got := decodeResponse(t, w); got != "You spent a total of $1500.00 in August." {
		t.Errorf("unexpected response %q", got)
	}
}

func TestQueryPermissionDenied(t *testing.T) {
	srv := newTestRouter(t, &fakeStore{ds: testDataset()}, handler.RouterConfig{})

	w := postQuery(t, srv, `{"query":"check my credit","permissions":{"credit":false}}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeResponse(t, w); !strings.Contains(got, "Credit data") {
		t.Errorf("expected denial naming Credit, got %q", got)
	}
}

func TestQueryForecastPayload(t *testing.T) {
	srv := newTestRouter(t, &fakeStore{ds: testDataset()}, handler.RouterConfig{})

	w := postQuery(t, srv, `{"query":"forecast savings","permissions":{"transactions":true,"assets":true}}`, nil)
	_, points, err := service.ParseForecast(decodeResponse(t, w))
	if err != nil {
		t.Fatalf("ParseForecast: %v", err)
	}
	if len(points) != service.ForecastPeriods || points[0].Savings != 35000 {
		t.Errorf("unexpected forecast %+v", points)
	}
}

func TestQueryBadBody(t *testing.T) {
	srv := newTestRouter(t, &fakeStore{ds: testDataset()}, handler.RouterConfig{})
	w := postQuery(t, srv, `{"query":`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestQueryBodyTooLarge(t *testing.T) {
	srv := newTestRouter(t, &fakeStore{ds: testDataset()}, handler.RouterConfig{})
	body := `{"query":"` + strings.Repeat("a", handler.MaxQueryBytes) + `","permissions":{}}`
	w := postQuery(t, srv, body, nil)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
}

func TestQueryDataUnavailable(t *testing.T) {
	srv := newTestRouter(t, &fakeStore{}, handler.RouterConfig{})
	w := postQuery(t, srv, `{"query":"hello","permissions":{}}`, nil)
	if got := decodeResponse(t, w); got != service.MsgDataUnavailable {
		t.Errorf("unexpected response %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestRouter(t, &fakeStore{ds: testDataset()}, handler.RouterConfig{
		JWTSecret:      "secret",
		AllowedOrigins: []string{"http://localhost:8501"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/query", nil)
	req.Header.Set("Origin", "http://localhost:8501")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8501" {
		t.Errorf("unexpected allow-origin %q", got)
	}
}

func TestQueryRequiresTokenWhenSecretSet(t *testing.T) {
	const secret = "test-secret"
	srv := newTestRouter(t, &fakeStore{ds: testDataset()}, handler.RouterConfig{JWTSecret: secret})
	body := `{"query":"hi","permissions":{}}`

	if w := postQuery(t, srv, body, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := postQuery(t, srv, body, map[string]string{"Authorization": "Bearer not-a-jwt"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", w.Code)
	}

	wrongKey := signToken(t, "other-secret", time.Hour)
	if w := postQuery(t, srv, body, map[string]string{"Authorization": "Bearer " + wrongKey}); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong key, got %d", w.Code)
	}

	expired := signToken(t, secret, -time.Hour)
	if w := postQuery(t, srv, body, map[string]string{"Authorization": "Bearer " + expired}); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}

	valid := signToken(t, secret, time.Hour)
	if w := postQuery(t, srv, body, map[string]string{"Authorization": "Bearer " + valid}); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestRouter(t, &fakeStore{ds: testDataset()}, handler.RouterConfig{})
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	srv = newTestRouter(t, &fakeStore{}, handler.RouterConfig{})
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without data, got %d", w.Code)
	}
}

func TestAdminReload(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	store := &fakeStore{ds: testDataset()}
	srv := newTestRouter(t, store, handler.RouterConfig{AdminKeyHash: string(hash)})

	reload := func(key string) int {
		req := httptest.NewRequest(http.MethodPost, "/admin/reload", bytes.NewReader(nil))
		if key != "" {
			req.Header.Set("X-Admin-Key", key)
		}
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		return w.Code
	}

	if code := reload(""); code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", code)
	}
	if code := reload("wrong"); code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong key, got %d", code)
	}
	if store.reloads != 0 {
		t.Fatalf("reload ran without a valid key")
	}
	if code := reload("admin-key"); code != http.StatusOK {
		t.Errorf("expected 200, got %d", code)
	}

	store.reloadErr = errors.New("disk on fire")
	if code := reload("admin-key"); code != http.StatusBadGateway {
		t.Errorf("expected 502 on failed reload, got %d", code)
	}
}

func TestAdminReloadDisabledWithoutHash(t *testing.T) {
	srv := newTestRouter(t, &fakeStore{ds: testDataset()}, handler.RouterConfig{})
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/reload", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func signToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}
