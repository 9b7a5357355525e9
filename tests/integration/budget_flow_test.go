package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func (app *testApp) createBudget(t *testing.T, token, categoryID, month string, amount int64) string {
	t.Helper()
	body := fmt.Sprintf(`{"category_id":%q,"month":%q,"amount":%d}`, categoryID, month, amount)
	rec := app.request("POST", "/api/v1/budgets", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(string)
}

func (app *testApp) spend(t *testing.T, token, categoryID, date string, amount int64) {
	t.Helper()
	body := fmt.Sprintf(`{"category_id":%q,"amount":%d,"description":"groceries run","date":"%sT00:00:00Z"}`,
		categoryID, amount, date)
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
}

func (app *testApp) progress(t *testing.T, token, budgetID string) map[string]interface{} {
	t.Helper()
	rec := app.request("GET", "/api/v1/budgets/"+budgetID+"/progress", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("progress failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["progress"].(map[string]interface{})
}

func TestBudgetProgressFlow(t *testing.T) {
	app := setupApp(t)
	token := app.setupHousehold(t, "4321")
	categoryID := app.createCategory(t, token, "Groceries", "#22AA44")

	budgetID := app.createBudget(t, token, categoryID, "2026-04", 50000)
	app.spend(t, token, categoryID, "2026-04-05", 20000)
	app.spend(t, token, categoryID, "2026-04-12", 10000)
	// A refund does not count as spending.
	app.spend(t, token, categoryID, "2026-04-13", -5000)

	progress := app.progress(t, token, budgetID)
	if progress["spent"].(float64) != 30000 {
		t.Errorf("expected spent 30000, got %v", progress["spent"])
	}
	if progress["budgeted"].(float64) != 50000 {
		t.Errorf("expected budgeted 50000, got %v", progress["budgeted"])
	}
	if progress["remaining"].(float64) != 20000 {
		t.Errorf("expected remaining 20000, got %v", progress["remaining"])
	}
	if progress["percentage"].(float64) != 60 {
		t.Errorf("expected 60%%, got %v", progress["percentage"])
	}
}

func TestBudgetRolloverFlow(t *testing.T) {
	app := setupApp(t)
	token := app.setupHousehold(t, "4321")
	categoryID := app.createCategory(t, token, "Groceries", "#22AA44")

	// March: budget 50000, spend 30000, leaving 20000 on the table.
	app.createBudget(t, token, categoryID, "2026-03", 50000)
	app.spend(t, token, categoryID, "2026-03-10", 30000)

	aprilID := app.createBudget(t, token, categoryID, "2026-04", 50000)
	app.spend(t, token, categoryID, "2026-04-10", 10000)

	// Rollover is off by default, so April sees no carry.
	progress := app.progress(t, token, aprilID)
	if progress["carry"].(float64) != 0 {
		t.Errorf("expected no carry with rollover off, got %v", progress["carry"])
	}

	rec := app.request("PUT", "/api/v1/settings", `{"auto_rollover":true}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("enable rollover failed: %d %s", rec.Code, rec.Body.String())
	}

	progress = app.progress(t, token, aprilID)
	if progress["carry"].(float64) != 20000 {
		t.Errorf("expected carry 20000, got %v", progress["carry"])
	}
	if progress["budgeted"].(float64) != 70000 {
		t.Errorf("expected budgeted 70000, got %v", progress["budgeted"])
	}
	if progress["remaining"].(float64) != 60000 {
		t.Errorf("expected remaining 60000, got %v", progress["remaining"])
	}
}

func TestDuplicateBudgetRejected(t *testing.T) {
	app := setupApp(t)
	token := app.setupHousehold(t, "4321")
	categoryID := app.createCategory(t, token, "Groceries", "#22AA44")

	app.createBudget(t, token, categoryID, "2026-04", 50000)

	body := fmt.Sprintf(`{"category_id":%q,"month":"2026-04","amount":10000}`, categoryID)
	rec := app.request("POST", "/api/v1/budgets", body, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate budget, got %d: %s", rec.Code, rec.Body.String())
	}
}
