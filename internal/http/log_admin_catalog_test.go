package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

// admin catalog changes are audited
func TestAdminCatalogLogs(t *testing.T) {
	app, _ := newApp(t, testLimits())
	admin := asAdmin(testAdminPassword)

	var created struct {
		ID    string `json:"id"`
		Stock int    `json:"stock"`
	}
	entries := captureLogs(t, func() {
		resp, body := do(t, app, "POST", "/api/v1/admin/products", map[string]any{
			"id":         "1733900000000",
			"name":       "Hammock Single",
			"category":   "Alat Pribadi",
			"price2Days": 15000,
			"price7Days": 40000,
			"stock":      4,
		}, admin)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create: expected 201, got %d %s", resp.StatusCode, body)
		}
		if err := json.Unmarshal(body, &created); err != nil {
			t.Fatal(err)
		}

		resp, body = do(t, app, "PUT", "/api/v1/admin/products/"+created.ID, map[string]any{
			"name":       "Hammock Double",
			"category":   "Alat Pribadi",
			"price2Days": 20000,
			"sizes":      map[string]int{"S": 1, "L": 2},
		}, admin)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("update: expected 200, got %d %s", resp.StatusCode, body)
		}

		resp, _ = do(t, app, "DELETE", "/api/v1/admin/products/"+created.ID, nil, admin)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
		}
	})

	if created.ID == "1733900000000" {
		t.Fatal("temporary client id should be replaced")
	}
	if created.Stock != 4 {
		t.Fatalf("want stock 4, got %d", created.Stock)
	}
	e, ok := findLog(entries, "admin.product.create")
	if !ok || e.Fields["product_id"] != created.ID {
		t.Fatalf("create not audited: %+v", entries)
	}
	if e, ok := findLog(entries, "admin.product.update"); !ok || e.Fields["stock"] != float64(3) {
		t.Fatalf("update not audited with new stock: %+v", entries)
	}
	if _, ok := findLog(entries, "admin.product.delete"); !ok {
		t.Fatalf("delete not audited: %+v", entries)
	}
}

func TestAdminProductValidation(t *testing.T) {
	app, _ := newApp(t, testLimits())
	admin := asAdmin(testAdminPassword)

	bad := []map[string]any{
		{"name": "", "category": "Tenda", "price2Days": 1000},
		{"name": "Tenda", "category": "Tenda", "price2Days": -1},
		{"name": "Tenda", "category": "Tenda", "price2Days": 1000, "price7Days": -5},
		{"name": "Tenda", "category": "Tenda", "price2Days": 1000, "stock": -1},
		{"name": "Tenda", "category": "Tenda", "price2Days": 1000, "image": "javascript:alert(1)"},
		{"name": "Tenda", "category": "Tenda", "price2Days": 1000,
			"variants": []map[string]any{{"color": "Merah", "size": "", "stock": 1}}},
		{"name": "Paket", "category": "Paketan Sewa", "price2Days": 1000,
			"packageItems": []map[string]any{{"productId": "1", "quantity": 0}}},
	}
	for i, p := range bad {
		resp, body := do(t, app, "POST", "/api/v1/admin/products", p, admin)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d %s", i, resp.StatusCode, body)
		}
	}

	// zero tiers are allowed
	resp, body := do(t, app, "POST", "/api/v1/admin/products", map[string]any{
		"name": "Pasak Tenda", "category": "Tenda", "price2Days": 0, "stock": 40,
	}, admin)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("zero tier: expected 201, got %d %s", resp.StatusCode, body)
	}

	// package components must use plain stock
	resp, body = do(t, app, "POST", "/api/v1/admin/products", map[string]any{
		"name": "Paket Sepatu", "category": "Paketan Sewa", "price2Days": 50000, "stock": 2,
		"packageItems": []map[string]any{{"productId": "11", "quantity": 1}},
	}, admin)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("sized component: expected 400, got %d %s", resp.StatusCode, body)
	}

	resp, _ = do(t, app, "PUT", "/api/v1/admin/products/ghost", map[string]any{
		"name": "Ghost", "category": "Tenda", "price2Days": 1000,
	}, admin)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product: expected 404, got %d", resp.StatusCode)
	}
}

func TestAdminCategoriesAndDashboard(t *testing.T) {
	app, _ := newApp(t, testLimits())
	admin := asAdmin(testAdminPassword)

	resp, body := do(t, app, "POST", "/api/v1/admin/categories", map[string]string{"name": "Hammock"}, admin)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d %s", resp.StatusCode, body)
	}
	resp, _ = do(t, app, "POST", "/api/v1/admin/categories", map[string]string{"name": "tenda"}, admin)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate name: expected 409, got %d", resp.StatusCode)
	}

	// deleting "Tenda" keeps its products
	resp, _ = do(t, app, "DELETE", "/api/v1/admin/categories/2", nil, admin)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	resp, body = do(t, app, "GET", "/api/v1/products?category=Tenda", nil)
	var list struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(body, &list)
	if resp.StatusCode != http.StatusOK || list.Count != 2 {
		t.Fatalf("tents should survive category delete, got %d %s", resp.StatusCode, body)
	}

	resp, body = do(t, app, "GET", "/api/v1/admin/dashboard", nil, admin)
	var st struct {
		TotalProducts   int   `json:"totalProducts"`
		TotalCategories int   `json:"totalCategories"`
		LowStockCount   int   `json:"lowStockCount"`
		InventoryValue  int64 `json:"inventoryValue"`
	}
	if err := json.Unmarshal(body, &st); err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard: %d %s", resp.StatusCode, body)
	}
	if st.TotalProducts != 13 || st.TotalCategories != 12 || st.InventoryValue <= 0 {
		t.Fatalf("bad dashboard: %+v", st)
	}
}
