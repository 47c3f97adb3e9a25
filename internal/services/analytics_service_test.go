package services

import (
	"testing"
	"time"

	"spendwise/internal/cache"
	"spendwise/internal/testutil"
)

// juneAnchor is a fixed mid-month reference instant used across tests:
// June 10th, so 10 days of the month have elapsed.
var juneAnchor = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func TestSumExpenses(t *testing.T) {
	t.Run("empty_month_sums_to_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)

		total, err := svc.SumExpenses(user.ID, 2025, 6, nil)
		testutil.AssertNoError(t, err)
		if total != 0 {
			t.Errorf("expected 0 for empty month, got %d", total)
		}
	})

	t.Run("sums_only_the_requested_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.June, 1))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 20000, day(2025, time.June, 30))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 99999, day(2025, time.May, 31))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 99999, day(2025, time.July, 1))

		total, err := svc.SumExpenses(user.ID, 2025, 6, nil)
		testutil.AssertNoError(t, err)
		if total != 30000 {
			t.Errorf("expected 30000, got %d", total)
		}
	})

	t.Run("excludes_soft_deleted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.June, 5))
		deleted := testutil.CreateTestExpense(t, db, user.ID, cat.ID, 50000, day(2025, time.June, 6))
		if err := db.Model(deleted).Update("is_deleted", true).Error; err != nil {
			t.Fatalf("failed to soft-delete expense: %v", err)
		}

		total, err := svc.SumExpenses(user.ID, 2025, 6, nil)
		testutil.AssertNoError(t, err)
		if total != 10000 {
			t.Errorf("expected 10000, got %d", total)
		}
	})

	t.Run("scoped_to_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		dining := testutil.CreateTestCategory(t, db, user.ID)
		travel := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, dining.ID, 10000, day(2025, time.June, 5))
		testutil.CreateTestExpense(t, db, user.ID, travel.ID, 70000, day(2025, time.June, 6))

		total, err := svc.SumExpenses(user.ID, 2025, 6, &dining.ID)
		testutil.AssertNoError(t, err)
		if total != 10000 {
			t.Errorf("expected 10000 for dining, got %d", total)
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat1 := testutil.CreateTestCategory(t, db, user1.ID)
		cat2 := testutil.CreateTestCategory(t, db, user2.ID)

		testutil.CreateTestExpense(t, db, user1.ID, cat1.ID, 10000, day(2025, time.June, 5))
		testutil.CreateTestExpense(t, db, user2.ID, cat2.ID, 70000, day(2025, time.June, 5))

		total, err := svc.SumExpenses(user1.ID, 2025, 6, nil)
		testutil.AssertNoError(t, err)
		if total != 10000 {
			t.Errorf("expected 10000 for user1, got %d", total)
		}
	})

	t.Run("memoizes_whole_month_totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		totals := cache.NewMonthlyTotals(16, time.Minute)
		svc := NewAnalyticsService(db, totals)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.June, 5))

		total, err := svc.SumExpenses(user.ID, 2025, 6, nil)
		testutil.AssertNoError(t, err)
		if total != 10000 {
			t.Fatalf("expected 10000, got %d", total)
		}

		// A write bypassing the service layer is invisible until the
		// month's key is invalidated.
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 5000, day(2025, time.June, 6))

		total, err = svc.SumExpenses(user.ID, 2025, 6, nil)
		testutil.AssertNoError(t, err)
		if total != 10000 {
			t.Errorf("expected memoized 10000, got %d", total)
		}

		totals.Invalidate(user.ID, 2025, 6)
		total, err = svc.SumExpenses(user.ID, 2025, 6, nil)
		testutil.AssertNoError(t, err)
		if total != 15000 {
			t.Errorf("expected fresh 15000 after invalidation, got %d", total)
		}
	})

	t.Run("category_totals_are_not_memoized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		totals := cache.NewMonthlyTotals(16, time.Minute)
		svc := NewAnalyticsService(db, totals)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.June, 5))
		total, err := svc.SumExpenses(user.ID, 2025, 6, &cat.ID)
		testutil.AssertNoError(t, err)
		if total != 10000 {
			t.Fatalf("expected 10000, got %d", total)
		}

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 5000, day(2025, time.June, 6))
		total, err = svc.SumExpenses(user.ID, 2025, 6, &cat.ID)
		testutil.AssertNoError(t, err)
		if total != 15000 {
			t.Errorf("expected fresh 15000, got %d", total)
		}
	})
}

func TestForecastNextMonth(t *testing.T) {
	t.Run("no_history_forecasts_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)

		if got := svc.ForecastNextMonth(user.ID, juneAnchor); got != 0 {
			t.Errorf("expected 0 forecast for empty history, got %d", got)
		}
	})

	t.Run("mean_of_three_prior_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 100000, day(2025, time.March, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 200000, day(2025, time.April, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 300000, day(2025, time.May, 10))

		if got := svc.ForecastNextMonth(user.ID, juneAnchor); got != 200000 {
			t.Errorf("expected 200000, got %d", got)
		}
	})

	t.Run("current_month_is_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 30000, day(2025, time.May, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 999999, day(2025, time.June, 5))

		if got := svc.ForecastNextMonth(user.ID, juneAnchor); got != 10000 {
			t.Errorf("expected 10000 (30000/3), got %d", got)
		}
	})

	t.Run("rounds_to_nearest_cent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10001, day(2025, time.March, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10001, day(2025, time.April, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.May, 10))

		// 30002 / 3 = 10000.67
		if got := svc.ForecastNextMonth(user.ID, juneAnchor); got != 10001 {
			t.Errorf("expected 10001, got %d", got)
		}
	})

	t.Run("lookback_crosses_year_boundary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		// Anchor in February 2025: lookback is Jan 2025, Dec 2024, Nov 2024.
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 30000, day(2024, time.November, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 30000, day(2024, time.December, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 30000, day(2025, time.January, 10))

		anchor := day(2025, time.February, 15)
		if got := svc.ForecastNextMonth(user.ID, anchor); got != 30000 {
			t.Errorf("expected 30000, got %d", got)
		}
	})
}

func TestDetectAnomalies(t *testing.T) {
	t.Run("empty_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)

		if got := svc.DetectAnomalies(user.ID, 2025, 6); len(got) != 0 {
			t.Errorf("expected no anomalies, got %d", len(got))
		}
	})

	t.Run("uniform_amounts_have_no_anomalies", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		for i := 1; i <= 5; i++ {
			testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.June, i))
		}

		// Zero spread: the threshold collapses to the mean and nothing
		// strictly exceeds it.
		if got := svc.DetectAnomalies(user.ID, 2025, 6); len(got) != 0 {
			t.Errorf("expected no anomalies for uniform amounts, got %d", len(got))
		}
	})

	t.Run("flags_single_outlier", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategoryWithName(t, db, user.ID, "Electronics")

		for i := 1; i <= 6; i++ {
			testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.June, i))
		}
		outlier := testutil.CreateTestExpense(t, db, user.ID, cat.ID, 500000, day(2025, time.June, 7))

		anomalies := svc.DetectAnomalies(user.ID, 2025, 6)
		if len(anomalies) != 1 {
			t.Fatalf("expected 1 anomaly, got %d", len(anomalies))
		}

		got := anomalies[0]
		if got.ExpenseID != outlier.ID {
			t.Errorf("expected expense %s, got %s", outlier.ID, got.ExpenseID)
		}
		if got.Amount != 500000 {
			t.Errorf("expected amount 500000, got %d", got.Amount)
		}
		// Mean is 560000/7 = 80000, so the deviation is exactly 420000.
		if got.Deviation != 420000 {
			t.Errorf("expected deviation 420000, got %f", got.Deviation)
		}
		if got.CategoryName != "Electronics" {
			t.Errorf("expected category name Electronics, got %s", got.CategoryName)
		}
	})

	t.Run("ordered_by_deviation_descending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		for i := 0; i < 20; i++ {
			testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.June, 1+i%28))
		}
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 350000, day(2025, time.June, 3))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 400000, day(2025, time.June, 2))

		anomalies := svc.DetectAnomalies(user.ID, 2025, 6)
		if len(anomalies) != 2 {
			t.Fatalf("expected 2 anomalies, got %d", len(anomalies))
		}
		if anomalies[0].Amount != 400000 || anomalies[1].Amount != 350000 {
			t.Errorf("expected [400000, 350000], got [%d, %d]",
				anomalies[0].Amount, anomalies[1].Amount)
		}
		if anomalies[0].Deviation <= anomalies[1].Deviation {
			t.Errorf("expected strictly descending deviations, got %f then %f",
				anomalies[0].Deviation, anomalies[1].Deviation)
		}
	})

	t.Run("ignores_soft_deleted_outlier", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		for i := 1; i <= 6; i++ {
			testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.June, i))
		}
		outlier := testutil.CreateTestExpense(t, db, user.ID, cat.ID, 500000, day(2025, time.June, 7))
		if err := db.Model(outlier).Update("is_deleted", true).Error; err != nil {
			t.Fatalf("failed to soft-delete expense: %v", err)
		}

		if got := svc.DetectAnomalies(user.ID, 2025, 6); len(got) != 0 {
			t.Errorf("expected no anomalies after deleting the outlier, got %d", len(got))
		}
	})
}

func TestCalculateRiskScore(t *testing.T) {
	t.Run("no_budget_scores_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 100000, day(2025, time.June, 5))

		if got := svc.CalculateRiskScore(user.ID, 2025, 6, juneAnchor); got != 0 {
			t.Errorf("expected 0 without a budget, got %d", got)
		}
	})

	t.Run("no_spend_scores_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, 2025, 6, 600000)

		if got := svc.CalculateRiskScore(user.ID, 2025, 6, juneAnchor); got != 0 {
			t.Errorf("expected 0 without spending, got %d", got)
		}
	})

	t.Run("half_of_budget_projected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, 2025, 6, 600000)

		// 100000 spent by day 10 projects to 300000 over 30 days: 50%.
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 100000, day(2025, time.June, 5))

		if got := svc.CalculateRiskScore(user.ID, 2025, 6, juneAnchor); got != 25 {
			t.Errorf("expected score 25 at 50%% projection, got %d", got)
		}
	})

	t.Run("steep_slope_near_the_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, 2025, 6, 600000)

		// 180000 by day 10 projects to 540000: 90% of budget.
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 180000, day(2025, time.June, 5))

		if got := svc.CalculateRiskScore(user.ID, 2025, 6, juneAnchor); got != 60 {
			t.Errorf("expected score 60 at 90%% projection, got %d", got)
		}
	})

	t.Run("far_over_budget_clamps_to_100", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, 2025, 6, 1000000)

		// 500000 by day 10 projects to 1500000: 150% of budget.
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 500000, day(2025, time.June, 5))

		if got := svc.CalculateRiskScore(user.ID, 2025, 6, juneAnchor); got != 100 {
			t.Errorf("expected score 100 at 150%% projection, got %d", got)
		}
	})
}

func TestScoreFromPct(t *testing.T) {
	cases := []struct {
		pct  float64
		want int
	}{
		{0, 0},
		{50, 25},
		{80, 40},
		{90, 60},
		{100, 80},
		{110, 85},
		{140, 100},
		{500, 100},
	}

	for _, tc := range cases {
		if got := scoreFromPct(tc.pct); got != tc.want {
			t.Errorf("scoreFromPct(%f) = %d, want %d", tc.pct, got, tc.want)
		}
	}

	t.Run("monotonic", func(t *testing.T) {
		prev := scoreFromPct(0)
		for pct := 1.0; pct <= 200; pct++ {
			got := scoreFromPct(pct)
			if got < prev {
				t.Fatalf("score decreased from %d to %d at pct %f", prev, got, pct)
			}
			prev = got
		}
	})
}

func TestAnalyzeCategoryTrend(t *testing.T) {
	t.Run("no_expenses_is_stable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		got := svc.AnalyzeCategoryTrend(user.ID, cat.ID, 3, juneAnchor)
		if got.Trend != TrendStable {
			t.Errorf("expected stable, got %s", got.Trend)
		}
		if got.ChangePct != 0 {
			t.Errorf("expected 0%% change, got %f", got.ChangePct)
		}
	})

	t.Run("doubling_is_increasing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.April, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 20000, day(2025, time.June, 5))

		got := svc.AnalyzeCategoryTrend(user.ID, cat.ID, 3, juneAnchor)
		if got.Trend != TrendIncreasing {
			t.Errorf("expected increasing, got %s", got.Trend)
		}
		if got.ChangePct != 100 {
			t.Errorf("expected +100%%, got %f", got.ChangePct)
		}
		if got.Recent != 20000 || got.Older != 10000 {
			t.Errorf("expected totals (20000, 10000), got (%d, %d)", got.Recent, got.Older)
		}
	})

	t.Run("halving_is_decreasing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 20000, day(2025, time.April, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.June, 5))

		got := svc.AnalyzeCategoryTrend(user.ID, cat.ID, 3, juneAnchor)
		if got.Trend != TrendDecreasing {
			t.Errorf("expected decreasing, got %s", got.Trend)
		}
		if got.ChangePct != -50 {
			t.Errorf("expected -50%%, got %f", got.ChangePct)
		}
	})

	t.Run("small_change_is_stable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.April, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10500, day(2025, time.June, 5))

		got := svc.AnalyzeCategoryTrend(user.ID, cat.ID, 3, juneAnchor)
		if got.Trend != TrendStable {
			t.Errorf("expected stable at +5%%, got %s", got.Trend)
		}
		if got.ChangePct != 5 {
			t.Errorf("expected +5%%, got %f", got.ChangePct)
		}
	})

	t.Run("change_rounds_to_one_decimal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 30000, day(2025, time.April, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 40000, day(2025, time.June, 5))

		got := svc.AnalyzeCategoryTrend(user.ID, cat.ID, 3, juneAnchor)
		if got.ChangePct != 33.3 {
			t.Errorf("expected +33.3%%, got %f", got.ChangePct)
		}
	})

	t.Run("first_spend_is_new", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 5000, day(2025, time.June, 5))

		got := svc.AnalyzeCategoryTrend(user.ID, cat.ID, 3, juneAnchor)
		if got.Trend != TrendNew {
			t.Errorf("expected new, got %s", got.Trend)
		}
		if got.ChangePct != 100 {
			t.Errorf("expected 100%% for a new category, got %f", got.ChangePct)
		}
	})

	t.Run("window_crosses_year_boundary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		// Anchor in January 2025 with window 3: compares January against
		// November 2024.
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2024, time.November, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 25000, day(2025, time.January, 5))

		anchor := day(2025, time.January, 15)
		got := svc.AnalyzeCategoryTrend(user.ID, cat.ID, 3, anchor)
		if got.Trend != TrendIncreasing {
			t.Errorf("expected increasing, got %s", got.Trend)
		}
		if got.ChangePct != 150 {
			t.Errorf("expected +150%%, got %f", got.ChangePct)
		}
	})

	t.Run("zero_window_uses_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 10000, day(2025, time.April, 10))
		testutil.CreateTestExpense(t, db, user.ID, cat.ID, 20000, day(2025, time.June, 5))

		got := svc.AnalyzeCategoryTrend(user.ID, cat.ID, 0, juneAnchor)
		if got.Trend != TrendIncreasing {
			t.Errorf("expected increasing with default window, got %s", got.Trend)
		}
	})
}
