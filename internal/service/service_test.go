package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/config"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/state"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Explain.MockMode = true
	return cfg
}

func newTestServices(t *testing.T, db *memDB) *Services {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := NewServices(context.Background(), db.repos(), testConfig(), logger,
		state.WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewServices: %v", err)
	}
	return svc
}

func withIncome(t *testing.T, db *memDB, amount string) *Services {
	t.Helper()
	svc := newTestServices(t, db)
	if _, err := svc.Budget.SetIncome(context.Background(), &models.IncomeUpdate{Amount: d(amount)}); err != nil {
		t.Fatalf("SetIncome: %v", err)
	}
	return svc
}

func record(t *testing.T, svc *Services, category, amount string) *models.Transaction {
	t.Helper()
	tx, err := svc.Transaction.Record(context.Background(), &models.TransactionCreate{Category: category, Amount: d(amount)})
	if err != nil {
		t.Fatalf("Record(%s, %s): %v", category, amount, err)
	}
	return tx
}

func TestSetIncome_PersistsProfile(t *testing.T) {
	db := &memDB{}
	svc := withIncome(t, db, "3000")

	plan, err := svc.Budget.GetPlan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := map[models.Category]string{models.CategoryNeeds: "1500", models.CategoryWants: "900", models.CategorySavings: "600"}
	for c, amount := range want {
		if !plan.Allocations[c].Equal(d(amount)) {
			t.Errorf("%s = %s, want %s", c, plan.Allocations[c], amount)
		}
	}
	if db.profile == nil || db.profile.Income == nil || !db.profile.Income.Amount.Equal(d("3000")) {
		t.Fatalf("profile not persisted: %+v", db.profile)
	}
	if db.profile.Income.Currency != "INR" {
		t.Errorf("currency = %q, want default INR", db.profile.Income.Currency)
	}
}

func TestSetIncome_RollbackOnPersistFailure(t *testing.T) {
	db := &memDB{fail: true}
	svc := newTestServices(t, db)

	_, err := svc.Budget.SetIncome(context.Background(), &models.IncomeUpdate{Amount: d("3000")})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("SetIncome error = %v, want disk full", err)
	}
	if _, err := svc.Budget.GetIncome(context.Background()); !errors.Is(err, models.ErrNoIncome) {
		t.Errorf("GetIncome after failed save = %v, want ErrNoIncome", err)
	}
}

func TestRecord_RollbackOnPersistFailure(t *testing.T) {
	db := &memDB{}
	svc := withIncome(t, db, "3000")
	ctx := context.Background()

	db.fail = true
	_, err := svc.Transaction.Record(ctx, &models.TransactionCreate{Category: "wants", Amount: d("100")})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("Record error = %v, want disk full", err)
	}
	db.fail = false

	history, _ := svc.Transaction.History(ctx, nil)
	if len(history) != 0 {
		t.Errorf("history = %d, want 0 after rollback", len(history))
	}
	tx := record(t, svc, "wants", "50")
	if tx.Seq != 1 {
		t.Errorf("Seq after rollback = %d, want 1", tx.Seq)
	}
}

func TestRecord_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, &memDB{})

	_, err := svc.Transaction.Record(ctx, &models.TransactionCreate{Category: "wants", Amount: d("10")})
	if !errors.Is(err, models.ErrUnknownCategory) {
		t.Errorf("Record without income = %v, want ErrUnknownCategory", err)
	}

	svc = withIncome(t, &memDB{}, "3000")
	if _, err := svc.Transaction.Record(ctx, &models.TransactionCreate{Category: "travel", Amount: d("10")}); !errors.Is(err, models.ErrUnknownCategory) {
		t.Errorf("Record unknown category = %v, want ErrUnknownCategory", err)
	}
	if _, err := svc.Transaction.Record(ctx, &models.TransactionCreate{Category: "wants", Amount: d("-1")}); !errors.Is(err, models.ErrInvalidAmount) {
		t.Errorf("Record negative amount = %v, want ErrInvalidAmount", err)
	}
}

func TestRecord_SavingsPersistsGoal(t *testing.T) {
	db := &memDB{}
	svc := withIncome(t, db, "3000")
	ctx := context.Background()

	if _, err := svc.Goal.Set(ctx, &models.GoalUpdate{Name: "Laptop", TargetAmount: d("1200")}); err != nil {
		t.Fatal(err)
	}
	record(t, svc, "Savings", "200")

	if db.goal == nil || !db.goal.CurrentAmount.Equal(d("200")) {
		t.Errorf("persisted goal = %+v, want progress 200", db.goal)
	}
	goal, _ := svc.Goal.Get(ctx)
	if !goal.CurrentAmount.Equal(d("200")) {
		t.Errorf("goal progress = %s, want 200", goal.CurrentAmount)
	}
}

func TestGoalSet_KeepsProgress(t *testing.T) {
	svc := withIncome(t, &memDB{}, "3000")
	ctx := context.Background()

	if _, err := svc.Goal.Get(ctx); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("Get without goal = %v, want ErrGoalNotFound", err)
	}

	start := d("100")
	if _, err := svc.Goal.Set(ctx, &models.GoalUpdate{Name: "Trip", TargetAmount: d("1000"), CurrentAmount: &start}); err != nil {
		t.Fatal(err)
	}
	goal, err := svc.Goal.Set(ctx, &models.GoalUpdate{Name: "Bigger trip", TargetAmount: d("2000")})
	if err != nil {
		t.Fatal(err)
	}
	if !goal.CurrentAmount.Equal(d("100")) {
		t.Errorf("progress = %s, want 100 kept", goal.CurrentAmount)
	}
	if goal.Progress != 5 {
		t.Errorf("Progress = %v, want 5", goal.Progress)
	}
}

func TestLedger_LoadsPersistedState(t *testing.T) {
	db := &memDB{}
	svc := withIncome(t, db, "3000")
	record(t, svc, "wants", "100")
	if _, err := svc.Transaction.AddExpense(context.Background(), &models.ExpenseCreate{Name: "Rent", Category: "needs", Amount: d("1000"), IsFixed: true}); err != nil {
		t.Fatal(err)
	}

	reloaded := newTestServices(t, db)
	balances, err := reloaded.Budget.GetBalances(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := map[models.Category]string{models.CategoryNeeds: "500", models.CategoryWants: "800", models.CategorySavings: "600"}
	for _, b := range balances {
		if !b.Remaining.Equal(d(want[b.Category])) {
			t.Errorf("%s remaining = %s, want %s", b.Category, b.Remaining, want[b.Category])
		}
	}
}

func TestPurchaseSimulate_Affordable(t *testing.T) {
	svc := withIncome(t, &memDB{}, "3000")

	advice, err := svc.Purchase.Simulate(context.Background(), &models.PurchaseRequest{Description: "Dinner", Category: "wants", Amount: d("200")})
	if err != nil {
		t.Fatal(err)
	}
	if advice.Result.Verdict != models.VerdictAffordable {
		t.Errorf("verdict = %s, want affordable", advice.Result.Verdict)
	}
	if !advice.Result.RemainingAfter[models.CategoryWants].Equal(d("700")) {
		t.Errorf("wants after = %s, want 700", advice.Result.RemainingAfter[models.CategoryWants])
	}
	if advice.AdviceSource != "template" || !strings.Contains(advice.Advice, "affordable") {
		t.Errorf("advice = %q from %s", advice.Advice, advice.AdviceSource)
	}

	// симуляция ничего не записывает
	history, _ := svc.Transaction.History(context.Background(), nil)
	if len(history) != 0 {
		t.Errorf("history = %d after simulate, want 0", len(history))
	}
}

func TestPurchaseSimulate_Tradeoff(t *testing.T) {
	svc := withIncome(t, &memDB{}, "3000")

	advice, err := svc.Purchase.Simulate(context.Background(), &models.PurchaseRequest{Description: "Phone", Category: "wants", Amount: d("1000")})
	if err != nil {
		t.Fatal(err)
	}
	r := advice.Result
	if r.Verdict != models.VerdictAffordableWithTradeoff {
		t.Errorf("verdict = %s, want affordable_with_tradeoff", r.Verdict)
	}
	if !r.Shortfall.Equal(d("100")) {
		t.Errorf("shortfall = %s, want 100", r.Shortfall)
	}
	if !strings.Contains(advice.Advice, "tradeoff") {
		t.Errorf("advice does not mention tradeoff: %q", advice.Advice)
	}
}

func TestPurchaseSimulate_NoIncome(t *testing.T) {
	svc := newTestServices(t, &memDB{})
	_, err := svc.Purchase.Simulate(context.Background(), &models.PurchaseRequest{Description: "x", Category: "wants", Amount: d("1")})
	if !errors.Is(err, models.ErrNoIncome) {
		t.Errorf("error = %v, want ErrNoIncome", err)
	}
}

func TestPurchaseConfirm_RecordsTransaction(t *testing.T) {
	db := &memDB{}
	svc := withIncome(t, db, "3000")

	conf, err := svc.Purchase.Confirm(context.Background(), &models.PurchaseRequest{Description: "Shoes", Category: "wants", Amount: d("300")})
	if err != nil {
		t.Fatal(err)
	}
	if conf.Transaction == nil || conf.Transaction.Description != "Shoes" {
		t.Fatalf("transaction = %+v", conf.Transaction)
	}
	if len(db.transactions) != 1 {
		t.Errorf("persisted transactions = %d, want 1", len(db.transactions))
	}
	balances, _ := svc.Budget.GetBalances(context.Background())
	for _, b := range balances {
		if b.Category == models.CategoryWants && !b.Remaining.Equal(d("600")) {
			t.Errorf("wants remaining = %s, want 600", b.Remaining)
		}
	}
}

func TestPurchase_TradeoffsDrawDownSavings(t *testing.T) {
	svc := withIncome(t, &memDB{}, "3000")
	ctx := context.Background()

	// wants 900, savings 600: первая покупка берет 100 из сбережений
	conf, err := svc.Purchase.Confirm(ctx, &models.PurchaseRequest{Description: "Phone", Category: "wants", Amount: d("1000")})
	if err != nil {
		t.Fatal(err)
	}
	if conf.Result.Verdict != models.VerdictAffordableWithTradeoff {
		t.Fatalf("first verdict = %s, want affordable_with_tradeoff", conf.Result.Verdict)
	}

	advice, err := svc.Purchase.Simulate(ctx, &models.PurchaseRequest{Description: "Watch", Category: "wants", Amount: d("600")})
	if err != nil {
		t.Fatal(err)
	}
	if advice.Result.Verdict != models.VerdictNotAffordable {
		t.Errorf("second verdict = %s, want not_affordable", advice.Result.Verdict)
	}
	if got := advice.Result.RemainingAfter[models.CategorySavings]; !got.Equal(d("-100")) {
		t.Errorf("savings after = %s, want -100", got)
	}

	conf, err = svc.Purchase.Confirm(ctx, &models.PurchaseRequest{Description: "Case", Category: "wants", Amount: d("500")})
	if err != nil {
		t.Fatal(err)
	}
	if conf.Result.Verdict != models.VerdictAffordableWithTradeoff {
		t.Errorf("third verdict = %s, want affordable_with_tradeoff", conf.Result.Verdict)
	}
	if got := conf.Result.RemainingAfter[models.CategorySavings]; !got.IsZero() {
		t.Errorf("savings after = %s, want 0", got)
	}
}

func TestPurchase_RejectsSavingsCategory(t *testing.T) {
	db := &memDB{}
	svc := withIncome(t, db, "3000")
	ctx := context.Background()
	if _, err := svc.Goal.Set(ctx, &models.GoalUpdate{Name: "Laptop", TargetAmount: d("1200")}); err != nil {
		t.Fatal(err)
	}

	req := &models.PurchaseRequest{Description: "Bike", Category: "savings", Amount: d("300")}
	if _, err := svc.Purchase.Simulate(ctx, req); !errors.Is(err, models.ErrUnknownCategory) {
		t.Errorf("Simulate error = %v, want ErrUnknownCategory", err)
	}
	if _, err := svc.Purchase.Confirm(ctx, req); !errors.Is(err, models.ErrUnknownCategory) {
		t.Errorf("Confirm error = %v, want ErrUnknownCategory", err)
	}

	goal, err := svc.Goal.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !goal.CurrentAmount.IsZero() {
		t.Errorf("goal progress = %s after rejected purchase, want 0", goal.CurrentAmount)
	}
	if len(db.transactions) != 0 {
		t.Errorf("persisted transactions = %d, want 0", len(db.transactions))
	}
}

func TestPurchaseConfirm_VerdictMatchesRecordedState(t *testing.T) {
	svc := withIncome(t, &memDB{}, "3000")
	ctx := context.Background()

	// две покупки по 600 при лимите wants 900: ровно одна помещается целиком
	verdicts := make(chan models.Verdict, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conf, err := svc.Purchase.Confirm(ctx, &models.PurchaseRequest{Description: "Gift", Category: "wants", Amount: d("600")})
			if err != nil {
				t.Error(err)
				return
			}
			verdicts <- conf.Result.Verdict
		}()
	}
	wg.Wait()
	close(verdicts)

	got := map[models.Verdict]int{}
	for v := range verdicts {
		got[v]++
	}
	if got[models.VerdictAffordable] != 1 || got[models.VerdictAffordableWithTradeoff] != 1 {
		t.Errorf("verdicts = %v, want one affordable and one affordable_with_tradeoff", got)
	}
}

func TestPurchaseSimulate_CarriesCurrency(t *testing.T) {
	svc := withIncome(t, &memDB{}, "3000")

	advice, err := svc.Purchase.Simulate(context.Background(), &models.PurchaseRequest{Description: "Dinner", Category: "wants", Amount: d("200")})
	if err != nil {
		t.Fatal(err)
	}
	if advice.Result.Currency != "INR" {
		t.Errorf("currency = %q, want INR", advice.Result.Currency)
	}
	if !strings.Contains(advice.Advice, "200.00 INR") {
		t.Errorf("advice does not show the currency: %q", advice.Advice)
	}
}

func TestGetAlerts(t *testing.T) {
	svc := withIncome(t, &memDB{}, "3000")
	record(t, svc, "wants", "750")
	record(t, svc, "needs", "1600")
	record(t, svc, "savings", "600")

	alerts, err := svc.Budget.GetAlerts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(alerts) != 2 {
		t.Fatalf("alerts = %+v, want 2", alerts)
	}
	got := map[models.Category]string{}
	for _, a := range alerts {
		got[a.Category] = a.AlertType
	}
	if got[models.CategoryNeeds] != "exceeded" || got[models.CategoryWants] != "warning" {
		t.Errorf("alerts = %v, want needs exceeded and wants warning", got)
	}
}

func TestGetSummary(t *testing.T) {
	svc := withIncome(t, &memDB{}, "3000")
	ctx := context.Background()
	if _, err := svc.Transaction.AddExpense(ctx, &models.ExpenseCreate{Name: "Rent", Category: "needs", Amount: d("1000"), IsFixed: true}); err != nil {
		t.Fatal(err)
	}
	record(t, svc, "wants", "200")
	record(t, svc, "savings", "300")

	s, err := svc.Budget.GetSummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !s.FixedExpenses.Equal(d("1000")) {
		t.Errorf("FixedExpenses = %s, want 1000", s.FixedExpenses)
	}
	if !s.VariableSpent.Equal(d("200")) || !s.SavedThisPeriod.Equal(d("300")) {
		t.Errorf("VariableSpent = %s, Saved = %s; want 200, 300", s.VariableSpent, s.SavedThisPeriod)
	}
	if !s.FreeCashFlow.Equal(d("1500")) {
		t.Errorf("FreeCashFlow = %s, want 1500", s.FreeCashFlow)
	}
	if !s.SavingsRate.Equal(d("10")) {
		t.Errorf("SavingsRate = %s, want 10", s.SavingsRate)
	}
	if s.NeedsFirst.Status != "surplus" || !s.NeedsFirst.RecommendedSavings.Equal(d("800")) {
		t.Errorf("NeedsFirst = %+v, want surplus with 800 savings", s.NeedsFirst)
	}
}

func TestReview(t *testing.T) {
	svc := withIncome(t, &memDB{}, "3000")
	ctx := context.Background()

	review, err := svc.Reflection.Review(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if review.Message != "No transaction history to review yet." {
		t.Errorf("empty review message = %q", review.Message)
	}

	record(t, svc, "wants", "950")
	record(t, svc, "needs", "100")
	review, err = svc.Reflection.Review(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if review.TransactionCount != 2 {
		t.Errorf("TransactionCount = %d, want 2", review.TransactionCount)
	}
	types := map[string]bool{}
	for _, p := range review.Patterns {
		types[p.Type] = true
	}
	for _, want := range []string{"activity", "dominant_category", "overspent"} {
		if !types[want] {
			t.Errorf("pattern %s missing in %+v", want, review.Patterns)
		}
	}
	if review.ByCategory[0].Category != models.CategoryWants {
		t.Errorf("top category = %s, want wants", review.ByCategory[0].Category)
	}
}

func TestConcurrentRecords_KeepOrder(t *testing.T) {
	db := &memDB{}
	svc := withIncome(t, db, "100000")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Transaction.Record(context.Background(), &models.TransactionCreate{
				Category:    "needs",
				Amount:      d("1"),
				Description: fmt.Sprint(i),
			})
			if err != nil {
				t.Errorf("Record %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	history, _ := svc.Transaction.History(context.Background(), nil)
	if len(history) != n {
		t.Fatalf("history = %d, want %d", len(history), n)
	}
	for i, tx := range history {
		if tx.Seq != int64(i+1) {
			t.Errorf("history[%d].Seq = %d", i, tx.Seq)
		}
		if db.transactions[i].ID != tx.ID {
			t.Errorf("persisted order differs at %d", i)
		}
	}
}

func TestAuth(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	disabled := NewAuthService(testConfig())
	if disabled.Enabled() {
		t.Error("Enabled = true without hash")
	}
	if _, err := disabled.Login(ctx, &models.LoginRequest{Passphrase: "x"}); !errors.Is(err, ErrAuthDisabled) {
		t.Errorf("Login without hash = %v, want ErrAuthDisabled", err)
	}

	cfg := testConfig()
	cfg.PassphraseHash = string(hash)
	auth := NewAuthService(cfg)

	if _, err := auth.Login(ctx, &models.LoginRequest{Passphrase: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login wrong passphrase = %v, want ErrInvalidCredentials", err)
	}
	resp, err := auth.Login(ctx, &models.LoginRequest{Passphrase: "open sesame"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := auth.ValidateToken(resp.AccessToken); err != nil {
		t.Errorf("ValidateToken = %v", err)
	}
	if _, err := auth.ValidateToken(resp.AccessToken + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken tampered = %v, want ErrInvalidToken", err)
	}
}

func TestSpendingTrend(t *testing.T) {
	tx := func(category models.Category, amount string) models.Transaction {
		return models.Transaction{Category: category, Amount: d(amount)}
	}

	tests := []struct {
		name    string
		history []models.Transaction
		ok      bool
		title   string
	}{
		{"too short", []models.Transaction{tx("needs", "10"), tx("wants", "10"), tx("needs", "10")}, false, ""},
		{"increasing", []models.Transaction{tx("needs", "10"), tx("wants", "10"), tx("needs", "30"), tx("wants", "30")}, true, "Spending is increasing"},
		{"decreasing", []models.Transaction{tx("needs", "40"), tx("wants", "40"), tx("needs", "10"), tx("wants", "10")}, true, "Spending is decreasing"},
		{"stable", []models.Transaction{tx("needs", "50"), tx("wants", "50"), tx("needs", "52"), tx("wants", "50")}, true, "Spending is stable"},
		{"savings ignored", []models.Transaction{tx("needs", "10"), tx("savings", "500"), tx("wants", "10"), tx("needs", "10"), tx("wants", "10")}, true, "Spending is stable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := spendingTrend(tt.history)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && p.Title != tt.title {
				t.Errorf("Title = %q, want %q", p.Title, tt.title)
			}
		})
	}
}
