package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hearth/internal/services"
)

// --- mock report service ---

type mockReportService struct {
	spendingByCategoryFn func(householdID, month string) ([]services.CategorySpending, error)
	monthlyTrendFn       func(householdID string, months int, until time.Time) ([]services.MonthTotals, error)
}

func (m *mockReportService) SpendingByCategory(householdID, month string) ([]services.CategorySpending, error) {
	if m.spendingByCategoryFn != nil {
		return m.spendingByCategoryFn(householdID, month)
	}
	return nil, nil
}

func (m *mockReportService) MonthlyTrend(householdID string, months int, until time.Time) ([]services.MonthTotals, error) {
	if m.monthlyTrendFn != nil {
		return m.monthlyTrendFn(householdID, months, until)
	}
	return nil, nil
}

var _ services.ReportServicer = (*mockReportService)(nil)

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectHouseholdID("hh-1"))
	auth.GET("/reports/spending", handler.SpendingByCategory)
	auth.GET("/reports/trend", handler.MonthlyTrend)
	return r
}

func TestReportHandler_SpendingByCategory(t *testing.T) {
	t.Run("passes the requested month", func(t *testing.T) {
		svc := &mockReportService{
			spendingByCategoryFn: func(_, month string) ([]services.CategorySpending, error) {
				if month != "2026-03" {
					t.Errorf("expected month 2026-03, got %s", month)
				}
				return []services.CategorySpending{
					{CategoryID: "cat-1", CategoryName: "Groceries", Color: "#FF0000", Spent: 15000},
				}, nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/spending?month=2026-03", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		categories := result["categories"].([]interface{})
		if len(categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(categories))
		}
	})

	t.Run("defaults to the current month", func(t *testing.T) {
		var gotMonth string
		svc := &mockReportService{
			spendingByCategoryFn: func(_, month string) ([]services.CategorySpending, error) {
				gotMonth = month
				return nil, nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/spending", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonth != time.Now().UTC().Format("2006-01") {
			t.Errorf("expected current month, got %s", gotMonth)
		}
	})
}

func TestReportHandler_MonthlyTrend(t *testing.T) {
	t.Run("defaults to six months", func(t *testing.T) {
		svc := &mockReportService{
			monthlyTrendFn: func(_ string, months int, _ time.Time) ([]services.MonthTotals, error) {
				if months != 6 {
					t.Errorf("expected 6 months, got %d", months)
				}
				return []services.MonthTotals{}, nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/trend", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("rejects out-of-range months", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		for _, q := range []string{"0", "25", "abc"} {
			rec := doRequest(r, "GET", "/reports/trend?months="+q, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("months=%s: expected 400, got %d", q, rec.Code)
			}
		}
	})
}
