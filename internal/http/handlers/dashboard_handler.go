package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"agripoultry/internal/domain"
	applog "agripoultry/internal/log"
	"agripoultry/internal/services"
	"agripoultry/internal/validate"
)

type DashboardHandler struct {
	Dash *services.Dashboard
}

// GET /
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	return render(c, "dashboard", fiber.Map{
		"Stats":         h.Dash.Statistics(),
		"Sales":         h.Dash.SoldByProduct(),
		"Orders":        h.Dash.OrderRows(),
		"Products":      h.Dash.Products(),
		"Statuses":      domain.Statuses,
		"Settings":      h.Dash.Settings(),
		"Notifications": h.Dash.Notifications(),
		"Year":          time.Now().Year(),
	})
}

// POST /products
func (h *DashboardHandler) AddProduct(c *fiber.Ctx) error {
	_, err := h.Dash.AddProduct(services.ProductInput{
		Name:  c.FormValue("name"),
		Price: c.FormValue("price"),
		Stock: c.FormValue("stock"),
	})
	switch {
	case errors.Is(err, services.ErrIncomplete):
		applog.Info(c, "product.add.ignored", nil)
	case err != nil:
		return err
	}
	return c.Redirect("/#products")
}

// POST /orders
func (h *DashboardHandler) AddOrder(c *fiber.Ctx) error {
	_, err := h.Dash.AddOrder(services.OrderInput{
		Client:    c.FormValue("client"),
		ProductID: c.FormValue("product_id"),
		Quantity:  c.FormValue("quantity"),
		Status:    c.FormValue("status"),
	})
	switch {
	case errors.Is(err, services.ErrIncomplete):
		applog.Info(c, "order.add.ignored", nil)
	case errors.Is(err, services.ErrInsufficientStock):
		// the dashboard shows the warning notice
	case err != nil:
		return err
	}
	return c.Redirect("/#orders")
}

// POST /orders/:id/delete
func (h *DashboardHandler) DeleteOrder(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Warn(c, "validation.fail", map[string]any{"field": "order"})
		return notFound(c, "Order not found")
	}
	if err := h.Dash.DeleteOrder(id); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return notFound(c, "Order not found")
		}
		return err
	}
	return c.Redirect("/#orders")
}

// GET /orders/:id/invoice
func (h *DashboardHandler) Invoice(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Order not found")
	}
	inv, err := h.Dash.Invoice(id)
	if err != nil {
		return notFound(c, "Order not found")
	}
	applog.Info(c, "invoice.render", map[string]any{"ref": inv.Reference})
	return render(c, "invoice", fiber.Map{"Invoice": inv, "Settings": h.Dash.Settings()})
}

// GET /orders/export.csv
func (h *DashboardHandler) ExportCSV(c *fiber.Ctx) error {
	c.Attachment("commandes.csv")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	applog.Info(c, "orders.export", nil)
	return c.SendString(h.Dash.ExportCSV())
}

// GET /settings
func (h *DashboardHandler) Settings(c *fiber.Ctx) error {
	return render(c, "settings", fiber.Map{"Settings": h.Dash.Settings(), "Notifications": h.Dash.Notifications()})
}

// POST /settings
func (h *DashboardHandler) SaveSettings(c *fiber.Ctx) error {
	in := services.SettingsInput{
		CompanyName: c.FormValue("company_name"),
		Email:       c.FormValue("email"),
		Phone:       c.FormValue("phone"),
		Address:     c.FormValue("address"),
	}
	if _, err := h.Dash.UpdateSettings(in); err != nil {
		if errors.Is(err, services.ErrInvalidSettings) {
			applog.Warn(c, "validation.fail", map[string]any{"field": "settings"})
			c.Status(fiber.StatusBadRequest)
			return render(c, "settings", fiber.Map{
				"Settings": domain.Settings{CompanyName: in.CompanyName, Email: in.Email, Phone: in.Phone, Address: in.Address},
				"Err":      "Please enter a valid email and phone number.",
			})
		}
		return err
	}
	return c.Redirect("/settings")
}

// POST /notifications/:id/dismiss
func (h *DashboardHandler) Dismiss(c *fiber.Ctx) error {
	h.Dash.DismissNotification(c.Params("id"))
	return c.Redirect("/")
}
