package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/config"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/service"
	"github.com/alligatorO15/fin-mentor/internal/state"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Explain.MockMode = true
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	services, err := service.NewServices(context.Background(), nil, cfg, logger,
		state.WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewServices: %v", err)
	}
	server, err := NewServer(cfg, services, logger)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, testConfig())
	w := do(t, h, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestSetIncome_ReturnsPlan(t *testing.T) {
	h := newTestServer(t, testConfig())

	w := do(t, h, http.MethodPut, "/api/v1/income", `{"amount": 1000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (%s)", w.Code, http.StatusOK, w.Body.String())
	}
	var plan models.BudgetPlan
	decode(t, w, &plan)
	want := map[models.Category]string{
		models.CategoryNeeds:   "500",
		models.CategoryWants:   "300",
		models.CategorySavings: "200",
	}
	for cat, amount := range want {
		if got := plan.Allocations[cat]; !got.Equal(decimal.RequireFromString(amount)) {
			t.Errorf("allocation %s = %s, want %s", cat, got, amount)
		}
	}
	if plan.Period != models.PeriodMonthly {
		t.Errorf("period = %s, want monthly", plan.Period)
	}
}

func TestErrorStatuses(t *testing.T) {
	h := newTestServer(t, testConfig())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"plan without income", http.MethodGet, "/api/v1/plan", "", http.StatusConflict},
		{"simulate without income", http.MethodPost, "/api/v1/purchases/simulate", `{"description":"tv","category":"wants","amount":10}`, http.StatusConflict},
		{"negative income", http.MethodPut, "/api/v1/income", `{"amount": -5}`, http.StatusBadRequest},
		{"unknown period", http.MethodPut, "/api/v1/income", `{"amount": 100, "period": "fortnightly"}`, http.StatusBadRequest},
		{"bad ratios", http.MethodPut, "/api/v1/ratios", `{"needs":0.5,"wants":0.5,"savings":0.5}`, http.StatusBadRequest},
		{"unknown category", http.MethodPost, "/api/v1/transactions", `{"category":"fun","amount":10}`, http.StatusUnprocessableEntity},
		{"purchase from savings", http.MethodPost, "/api/v1/purchases/confirm", `{"description":"bike","category":"savings","amount":10}`, http.StatusUnprocessableEntity},
		{"unknown category filter", http.MethodGet, "/api/v1/transactions?category=fun", "", http.StatusUnprocessableEntity},
		{"blank expense name", http.MethodPost, "/api/v1/expenses", `{"name":"  ","category":"needs","amount":10}`, http.StatusBadRequest},
		{"no goal", http.MethodGet, "/api/v1/goal", "", http.StatusNotFound},
		{"login without passphrase hash", http.MethodPost, "/api/v1/auth/login", `{"passphrase":"x"}`, http.StatusBadRequest},
		{"malformed json", http.MethodPut, "/api/v1/income", `{"amount":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestTransactionAfterIncome_InvalidAmount(t *testing.T) {
	h := newTestServer(t, testConfig())
	do(t, h, http.MethodPut, "/api/v1/income", `{"amount": 1000}`)

	w := do(t, h, http.MethodPost, "/api/v1/transactions", `{"category":"wants","amount":0}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d (%s)", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestPurchase_SimulateThenConfirm(t *testing.T) {
	h := newTestServer(t, testConfig())
	do(t, h, http.MethodPut, "/api/v1/income", `{"amount": 1000}`)

	body := `{"description":"headphones","category":"Wants","amount":200}`
	w := do(t, h, http.MethodPost, "/api/v1/purchases/simulate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("simulate status = %d (%s)", w.Code, w.Body.String())
	}
	var advice models.PurchaseAdvice
	decode(t, w, &advice)
	if advice.Result.Verdict != models.VerdictAffordable {
		t.Errorf("verdict = %s, want %s", advice.Result.Verdict, models.VerdictAffordable)
	}
	if advice.AdviceSource != "template" {
		t.Errorf("advice_source = %q, want template", advice.AdviceSource)
	}
	if advice.Advice == "" {
		t.Error("advice is empty")
	}

	// симуляция ничего не пишет в журнал
	var history []models.Transaction
	decode(t, do(t, h, http.MethodGet, "/api/v1/transactions", ""), &history)
	if len(history) != 0 {
		t.Fatalf("history after simulate = %d, want 0", len(history))
	}

	w = do(t, h, http.MethodPost, "/api/v1/purchases/confirm", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("confirm status = %d (%s)", w.Code, w.Body.String())
	}
	var confirmation models.PurchaseConfirmation
	decode(t, w, &confirmation)
	if confirmation.Transaction == nil || confirmation.Transaction.Category != models.CategoryWants {
		t.Fatalf("confirmation transaction = %+v", confirmation.Transaction)
	}

	decode(t, do(t, h, http.MethodGet, "/api/v1/transactions", ""), &history)
	if len(history) != 1 {
		t.Fatalf("history after confirm = %d, want 1", len(history))
	}

	var balances []models.CategoryBalance
	decode(t, do(t, h, http.MethodGet, "/api/v1/balances", ""), &balances)
	for _, b := range balances {
		if b.Category == models.CategoryWants && !b.Remaining.Equal(decimal.NewFromInt(100)) {
			t.Errorf("wants remaining = %s, want 100", b.Remaining)
		}
	}
}

func TestTransactionHistory_Filter(t *testing.T) {
	h := newTestServer(t, testConfig())
	do(t, h, http.MethodPut, "/api/v1/income", `{"amount": 1000}`)
	for _, body := range []string{
		`{"category":"needs","amount":50,"description":"groceries"}`,
		`{"category":"wants","amount":20,"description":"cinema"}`,
		`{"category":"needs","amount":30,"description":"bus pass"}`,
	} {
		if w := do(t, h, http.MethodPost, "/api/v1/transactions", body); w.Code != http.StatusCreated {
			t.Fatalf("record status = %d (%s)", w.Code, w.Body.String())
		}
	}

	var history []models.Transaction
	decode(t, do(t, h, http.MethodGet, "/api/v1/transactions?category=needs", ""), &history)
	if len(history) != 2 {
		t.Fatalf("needs history = %d, want 2", len(history))
	}
	if history[0].Seq >= history[1].Seq {
		t.Errorf("history out of order: seq %d then %d", history[0].Seq, history[1].Seq)
	}

	decode(t, do(t, h, http.MethodGet, "/api/v1/transactions?search=cinema", ""), &history)
	if len(history) != 1 || history[0].Description != "cinema" {
		t.Errorf("search history = %+v, want cinema", history)
	}
}

func TestAuth_ProtectsRoutes(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	cfg.PassphraseHash = string(hash)
	h := newTestServer(t, cfg)

	if w := do(t, h, http.MethodGet, "/api/v1/plan", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if w := do(t, h, http.MethodGet, "/api/v1/plan", "", "Authorization", "Token abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad scheme status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if w := do(t, h, http.MethodPost, "/api/v1/auth/login", `{"passphrase":"wrong"}`); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong passphrase status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	w := do(t, h, http.MethodPost, "/api/v1/auth/login", `{"passphrase":"open sesame"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d (%s)", w.Code, w.Body.String())
	}
	var auth models.AuthResponse
	decode(t, w, &auth)

	w = do(t, h, http.MethodPut, "/api/v1/income", `{"amount": 1000}`, "Authorization", "Bearer "+auth.AccessToken)
	if w.Code != http.StatusOK {
		t.Errorf("authorized status = %d, want %d (%s)", w.Code, http.StatusOK, w.Body.String())
	}
	if w := do(t, h, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", w.Code, http.StatusOK)
	}
}
