package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agripoultry/internal/domain"
	"agripoultry/internal/services"
)

func TestHome_RendersState(t *testing.T) {
	env := newTestApp(t)
	resp, body := env.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "6000 FCFA")
	assert.Contains(t, body, "&#43;1800 FCFA", "html/template escapes the plus sign")
	assert.Contains(t, body, `id="stat-stock">97<`)
	assert.Contains(t, body, "#CMD003")
	assert.Contains(t, body, "Poulet fermier")
	assert.Contains(t, body, `class="level">IN_STOCK<`)
	assert.Contains(t, body, `class="sold-2">3<`)
}

func TestAddOrder_Accepted(t *testing.T) {
	env := newTestApp(t)
	resp := env.post(t, "/orders", url.Values{
		"client": {"Fatou"}, "product_id": {"1"}, "quantity": {"10"}, "status": {"Pending"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	orders := env.dash.Orders()
	require.Len(t, orders, 4)
	assert.Equal(t, "#CMD004", orders[3].Reference)
	assert.Equal(t, 35, env.dash.Products()[0].Stock)

	_, body := env.get(t, "/")
	assert.Contains(t, body, services.MsgOrderAdded)
}

func TestAddOrder_InsufficientStockWarns(t *testing.T) {
	env := newTestApp(t)
	resp := env.post(t, "/orders", url.Values{
		"client": {"X"}, "product_id": {"2"}, "quantity": {"999"}, "status": {"Pending"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Len(t, env.dash.Orders(), 3)
	assert.Equal(t, 32, env.dash.Products()[1].Stock)

	_, body := env.get(t, "/")
	assert.Contains(t, body, services.MsgInsufficientStock)
	assert.Contains(t, body, "notice-warning")
}

func TestAddProduct_IncompleteIgnored(t *testing.T) {
	env := newTestApp(t)
	resp := env.post(t, "/products", url.Values{"name": {"Pintade"}, "price": {""}, "stock": {"4"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Len(t, env.dash.Products(), 3)
	assert.Empty(t, env.dash.Notifications())

	resp = env.post(t, "/products", url.Values{"name": {"Pintade"}, "price": {"2500 FCFA/kg"}, "stock": {"4"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	ps := env.dash.Products()
	require.Len(t, ps, 4)
	assert.Equal(t, domain.Product{ID: 4, Name: "Pintade", Price: "2500 FCFA/kg", Stock: 4}, ps[3])
}

func TestDeleteOrder(t *testing.T) {
	env := newTestApp(t)
	resp := env.post(t, "/orders/2/delete", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Len(t, env.dash.Orders(), 2)
	assert.Equal(t, 32, env.dash.Products()[1].Stock, "stock is not restored")

	resp = env.post(t, "/orders/2/delete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = env.post(t, "/orders/abc/delete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvoicePage(t *testing.T) {
	env := newTestApp(t)
	resp, body := env.get(t, "/orders/1/invoice")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, want := range []string{"#CMD001", "Jean Dupont", "Poulet standard", "1200 FCFA/kg", "6000 FCFA", "14/03/2026"} {
		assert.Contains(t, body, want)
	}

	resp, _ = env.get(t, "/orders/42/invoice")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportCSV(t *testing.T) {
	env := newTestApp(t)
	resp, body := env.get(t, "/orders/export.csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="commandes.csv"`)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv"))
	assert.Equal(t, env.dash.ExportCSV(), body)
	assert.True(t, strings.HasPrefix(body, "ID,Commande,Client,Type,Quantité,Statut\n1,#CMD001,"))
}

func TestSettings(t *testing.T) {
	env := newTestApp(t)
	resp := env.post(t, "/settings", url.Values{"company_name": {"AgriPoultry"}, "email": {"bad"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.post(t, "/settings", url.Values{
		"company_name": {"AgriPoultry"}, "email": {"contact@agripoultry.sn"}, "phone": {"+221 77 123 45 67"}, "address": {"Dakar"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	s, err := env.store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "AgriPoultry", s.CompanyName)

	_, body := env.get(t, "/settings")
	assert.Contains(t, body, `value="contact@agripoultry.sn"`)
	_, body = env.get(t, "/orders/1/invoice")
	assert.Contains(t, body, "AgriPoultry, Dakar")
}

func TestDismissNotification(t *testing.T) {
	env := newTestApp(t)
	env.post(t, "/orders/3/delete", nil)
	notes := env.dash.Notifications()
	require.Len(t, notes, 1)

	resp := env.post(t, "/notifications/"+notes[0].ID+"/dismiss", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Empty(t, env.dash.Notifications())
}

func TestAPIStats(t *testing.T) {
	env := newTestApp(t)
	resp, body := env.get(t, "/api/v1/stats")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		UnitsSold      int                   `json:"units_sold"`
		StockAvailable int                   `json:"stock_available"`
		Labels         map[string]string     `json:"labels"`
		ByProduct      []domain.ProductSales `json:"by_product"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, 10, got.UnitsSold)
	assert.Equal(t, 97, got.StockAvailable)
	assert.Equal(t, "6000 FCFA", got.Labels["total_revenue"])
	assert.Equal(t, "+1800 FCFA", got.Labels["net_margin"])
	assert.Equal(t, []domain.ProductSales{
		{ProductID: 1, Name: "Poulet standard", Units: 5},
		{ProductID: 2, Name: "Poulet fermier", Units: 3},
		{ProductID: 3, Name: "Poulet bio", Units: 2},
	}, got.ByProduct)

	_, body = env.get(t, "/api/v1/orders")
	var orders []domain.Order
	require.NoError(t, json.Unmarshal([]byte(body), &orders))
	assert.Len(t, orders, 3)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestApp(t)
	env.post(t, "/orders", url.Values{"client": {"A"}, "product_id": {"1"}, "quantity": {"1"}})
	env.post(t, "/orders", url.Values{"client": {"B"}, "product_id": {"1"}, "quantity": {"500"}})

	resp, body := env.get(t, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "agripoultry_orders_created_total 1")
	assert.Contains(t, body, `agripoultry_orders_rejected_total{reason="stock"} 1`)
	assert.Contains(t, body, "agripoultry_stock_available 96")
}
