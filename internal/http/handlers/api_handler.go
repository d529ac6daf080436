package handlers

import (
	"github.com/gofiber/fiber/v2"

	"agripoultry/internal/services"
)

// APIHandler serves read-only JSON views of the dashboard state.
type APIHandler struct {
	Dash *services.Dashboard
}

func (h *APIHandler) Stats(c *fiber.Ctx) error {
	st := h.Dash.Statistics()
	return c.JSON(fiber.Map{
		"total_revenue":   st.TotalRevenue,
		"units_sold":      st.UnitsSold,
		"stock_available": st.StockAvailable,
		"net_margin":      st.NetMargin,
		"by_product":      h.Dash.SoldByProduct(),
		"labels": fiber.Map{
			"total_revenue": st.RevenueLabel(),
			"net_margin":    st.MarginLabel(),
		},
	})
}

func (h *APIHandler) Products(c *fiber.Ctx) error { return c.JSON(h.Dash.Products()) }

func (h *APIHandler) Orders(c *fiber.Ctx) error { return c.JSON(h.Dash.Orders()) }

func (h *APIHandler) Notifications(c *fiber.Ctx) error { return c.JSON(h.Dash.Notifications()) }
