package integration

import (
	"net/http"
	"testing"
)

func TestExpenseFlow_CreateListDelete(t *testing.T) {
	app := setupApp(t)
	access, _, _ := app.registerUser(t, "expenses@test.com", "password123")
	categoryID := app.createCategory(t, access, "Groceries", "cart")

	// Create a few expenses across dates.
	app.createExpense(t, access, categoryID, 1250, "Lunch", "2026-03-10T00:00:00Z")
	app.createExpense(t, access, categoryID, 4999, "Weekly shop", "2026-03-15T00:00:00Z")
	keptID := app.createExpense(t, access, categoryID, 300, "Coffee", "2026-04-01T00:00:00Z")

	// List, newest first.
	rec := app.request("GET", "/expenses", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(data))
	}
	first := data[0].(map[string]interface{})
	if first["id"] != keptID {
		t.Errorf("expected the April expense first, got %v", first["id"])
	}
	if first["category"] == nil {
		t.Error("expected category to be embedded in the listing")
	}

	// Filter by date range.
	rec = app.request("GET", "/expenses?from=2026-03-01&to=2026-03-31", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered list failed: %d %s", rec.Code, rec.Body.String())
	}
	filtered := parseJSON(t, rec)
	if int(filtered["total_items"].(float64)) != 2 {
		t.Errorf("expected 2 March expenses, got %v", filtered["total_items"])
	}

	// Pagination metadata.
	rec = app.request("GET", "/expenses?page=1&limit=2", "", access)
	paged := parseJSON(t, rec)
	if int(paged["total_pages"].(float64)) != 2 {
		t.Errorf("expected 2 pages at limit 2, got %v", paged["total_pages"])
	}

	// Delete one.
	rec = app.request("DELETE", "/expenses/"+keptID, "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/expenses/"+keptID, "", access)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestExpenseFlow_RejectsForeignCategory(t *testing.T) {
	app := setupApp(t)
	aliceAccess, _, _ := app.registerUser(t, "alice-exp@test.com", "password123")
	bobAccess, _, _ := app.registerUser(t, "bob-exp@test.com", "password123")

	categoryID := app.createCategory(t, aliceAccess, "Travel", "plane")

	rec := app.request("POST", "/expenses",
		`{"amount":100,"category_id":"`+categoryID+`","description":"Sneaky"}`, bobAccess)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign category, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExpenseFlow_MonthlySummary(t *testing.T) {
	app := setupApp(t)
	access, _, _ := app.registerUser(t, "summary@test.com", "password123")
	food := app.createCategory(t, access, "Food", "fork")
	rent := app.createCategory(t, access, "Rent", "home")

	app.createExpense(t, access, food, 1000, "Lunch", "2026-03-05T00:00:00Z")
	app.createExpense(t, access, food, 2000, "Dinner", "2026-03-20T00:00:00Z")
	app.createExpense(t, access, rent, 90000, "March rent", "2026-03-01T00:00:00Z")
	// Outside the month.
	app.createExpense(t, access, food, 7777, "April lunch", "2026-04-02T00:00:00Z")

	rec := app.request("GET", "/expenses/summary/monthly?year=2026&month=3", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if int64(result["total"].(float64)) != 93000 {
		t.Errorf("expected total 93000, got %v", result["total"])
	}
	categories := result["categories"].([]interface{})
	if len(categories) != 2 {
		t.Fatalf("expected 2 category totals, got %d", len(categories))
	}
	top := categories[0].(map[string]interface{})
	if top["category_id"] != rent || int64(top["total"].(float64)) != 90000 {
		t.Errorf("expected rent on top with 90000, got %v", top)
	}
}

func TestExpenseFlow_Dashboard(t *testing.T) {
	app := setupApp(t)
	access, _, _ := app.registerUser(t, "dashboard@test.com", "password123")
	food := app.createCategory(t, access, "Food", "fork")

	app.createExpense(t, access, food, 1500, "Groceries", "2026-03-08T00:00:00Z")
	app.createExpense(t, access, food, 500, "Snacks", "2026-03-09T00:00:00Z")

	rec := app.request("GET", "/expenses/summary/dashboard?year=2026&month=3", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if int64(result["total"].(float64)) != 2000 {
		t.Errorf("expected total 2000, got %v", result["total"])
	}
	if int(result["expense_count"].(float64)) != 2 {
		t.Errorf("expected 2 expenses, got %v", result["expense_count"])
	}
	topCategory := result["top_category"].(map[string]interface{})
	if topCategory["category_id"] != food {
		t.Errorf("expected food as top category, got %v", topCategory)
	}
	recent := result["recent"].([]interface{})
	if len(recent) != 2 {
		t.Errorf("expected 2 recent expenses, got %d", len(recent))
	}
}
