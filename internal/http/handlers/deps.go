package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"agripoultry/internal/metrics"
	"agripoultry/internal/services"
)

type Deps struct {
	DashboardHandler *DashboardHandler
	APIHandler       *APIHandler
	Metrics          *metrics.Registry
}

func NewDeps(dash *services.Dashboard, m *metrics.Registry) *Deps {
	return &Deps{
		DashboardHandler: &DashboardHandler{Dash: dash},
		APIHandler:       &APIHandler{Dash: dash},
		Metrics:          m,
	}
}

// Register mounts every application route on r.
func Register(r fiber.Router, d *Deps) {
	r.Get("/", d.DashboardHandler.Home)
	r.Post("/products", d.DashboardHandler.AddProduct)
	r.Post("/orders", d.DashboardHandler.AddOrder)
	r.Get("/orders/export.csv", d.DashboardHandler.ExportCSV)
	r.Post("/orders/:id/delete", d.DashboardHandler.DeleteOrder)
	r.Get("/orders/:id/invoice", d.DashboardHandler.Invoice)
	r.Get("/settings", d.DashboardHandler.Settings)
	r.Post("/settings", d.DashboardHandler.SaveSettings)
	r.Post("/notifications/:id/dismiss", d.DashboardHandler.Dismiss)

	api := r.Group("/api/v1")
	api.Get("/stats", d.APIHandler.Stats)
	api.Get("/products", d.APIHandler.Products)
	api.Get("/orders", d.APIHandler.Orders)
	api.Get("/notifications", d.APIHandler.Notifications)

	if d.Metrics != nil {
		r.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))
	}
	r.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
}
