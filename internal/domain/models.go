package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price keeps its display form, e.g. "1200 FCFA/kg".
type Product struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPaid      OrderStatus = "Paid"
	StatusDelivered OrderStatus = "Delivered"
)

// Statuses lists the selectable order statuses in form order.
var Statuses = []OrderStatus{StatusPending, StatusPaid, StatusDelivered}

// Order is a ledger entry. JSON names match the stored blob layout.
type Order struct {
	ID        int         `json:"id"`
	Reference string      `json:"orderId"`
	Client    string      `json:"client"`
	ProductID int         `json:"chickenId"`
	Quantity  int         `json:"quantity"`
	Status    OrderStatus `json:"status"`
}

// Stats is derived on every read, never stored.
type Stats struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	UnitsSold      int             `json:"units_sold"`
	StockAvailable int             `json:"stock_available"`
	NetMargin      decimal.Decimal `json:"net_margin"`
}

// ProductSales is the number of units ordered for one product, across all
// statuses.
type ProductSales struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Units     int    `json:"units"`
}

// Invoice is the printable view of a single order.
type Invoice struct {
	Reference   string
	Client      string
	ProductName string
	UnitPrice   string
	Quantity    int
	Total       decimal.Decimal
	Date        time.Time
}

type Settings struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // success | warning
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
