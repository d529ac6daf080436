package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"agripoultry/internal/domain"
	"agripoultry/internal/validate"
)

const csvHeader = "ID,Commande,Client,Type,Quantité,Statut"

// OrderInput is the add-order form as submitted; every field is raw text.
type OrderInput struct {
	Client    string
	ProductID string
	Quantity  string
	Status    string
}

// OrderRow is an order joined with its product for display.
type OrderRow struct {
	domain.Order
	ProductName string
	UnitPrice   string
	Total       decimal.Decimal
}

type Ledger struct {
	orders  []domain.Order
	catalog *Catalog
}

func NewLedger(orders []domain.Order, catalog *Catalog) *Ledger {
	return &Ledger{orders: append([]domain.Order(nil), orders...), catalog: catalog}
}

// Add records an order and takes its quantity out of stock. Nothing changes
// unless the whole order is accepted.
func (l *Ledger) Add(in OrderInput) (domain.Order, error) {
	client, okClient := validate.Required(in.Client)
	productID, okProduct := validate.ID(in.ProductID)
	qty, okQty := validate.Quantity(in.Quantity)
	if !okClient || !okProduct || !okQty {
		return domain.Order{}, ErrIncomplete
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return domain.Order{}, ErrIncomplete
	}

	p, ok := l.catalog.Find(productID)
	if !ok || p.Stock < qty {
		return domain.Order{}, ErrInsufficientStock
	}

	id := l.nextID()
	o := domain.Order{
		ID:        id,
		Reference: domain.OrderReference(id),
		Client:    client,
		ProductID: productID,
		Quantity:  qty,
		Status:    status,
	}
	l.orders = append(l.orders, o)
	l.catalog.DecrementStock(productID, qty)
	return o, nil
}

func (l *Ledger) nextID() int {
	top := 0
	for _, o := range l.orders {
		if o.ID > top {
			top = o.ID
		}
	}
	return top + 1
}

// Delete drops the order. Its quantity is not returned to stock.
func (l *Ledger) Delete(id int) (domain.Order, bool) {
	for i, o := range l.orders {
		if o.ID == id {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return o, true
		}
	}
	return domain.Order{}, false
}

func (l *Ledger) Find(id int) (domain.Order, bool) {
	for _, o := range l.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

func (l *Ledger) Orders() []domain.Order {
	return append([]domain.Order{}, l.orders...)
}

func (l *Ledger) Rows() []OrderRow {
	out := make([]OrderRow, 0, len(l.orders))
	for _, o := range l.orders {
		p := l.catalog.Resolve(o.ProductID)
		out = append(out, OrderRow{Order: o, ProductName: p.Name, UnitPrice: p.Price, Total: lineTotal(p, o.Quantity)})
	}
	return out
}

// Statistics is recomputed from current state on every call.
func (l *Ledger) Statistics() domain.Stats {
	revenue := decimal.Zero
	sold := 0
	for _, o := range l.orders {
		sold += o.Quantity
		if o.Status != domain.StatusPaid {
			continue
		}
		revenue = revenue.Add(lineTotal(l.catalog.Resolve(o.ProductID), o.Quantity))
	}
	return domain.Stats{
		TotalRevenue:   revenue,
		UnitsSold:      sold,
		StockAvailable: l.catalog.TotalStock(),
		NetMargin:      revenue.Mul(domain.MarginRate),
	}
}

// SoldByProduct lists units ordered per product in catalog order. Orders of
// products no longer in the catalog follow, one entry per missing id.
func (l *Ledger) SoldByProduct() []domain.ProductSales {
	out := make([]domain.ProductSales, 0, len(l.catalog.products))
	at := map[int]int{}
	for _, p := range l.catalog.products {
		at[p.ID] = len(out)
		out = append(out, domain.ProductSales{ProductID: p.ID, Name: p.Name})
	}
	for _, o := range l.orders {
		i, ok := at[o.ProductID]
		if !ok {
			i = len(out)
			at[o.ProductID] = i
			out = append(out, domain.ProductSales{ProductID: o.ProductID, Name: domain.UnknownProduct})
		}
		out[i].Units += o.Quantity
	}
	return out
}

// ExportCSV joins fields with bare commas. Values are not quoted, so a comma
// inside a client or product name shifts the columns of that row.
func (l *Ledger) ExportCSV() string {
	lines := make([]string, 0, len(l.orders)+1)
	lines = append(lines, csvHeader)
	for _, o := range l.orders {
		name := l.catalog.Resolve(o.ProductID).Name
		lines = append(lines, strings.Join([]string{
			strconv.Itoa(o.ID),
			o.Reference,
			o.Client,
			name,
			strconv.Itoa(o.Quantity),
			string(o.Status),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

// Invoice builds the printable view of o as of now.
func (l *Ledger) Invoice(o domain.Order, now time.Time) domain.Invoice {
	p := l.catalog.Resolve(o.ProductID)
	return domain.Invoice{
		Reference:   o.Reference,
		Client:      o.Client,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    o.Quantity,
		Total:       lineTotal(p, o.Quantity),
		Date:        now,
	}
}

func lineTotal(p domain.Product, qty int) decimal.Decimal {
	return domain.PriceAmount(p.Price).Mul(decimal.NewFromInt(int64(qty)))
}
