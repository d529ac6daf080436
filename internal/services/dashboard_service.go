package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"agripoultry/internal/domain"
	applog "agripoultry/internal/log"
	"agripoultry/internal/metrics"
	"agripoultry/internal/notify"
	"agripoultry/internal/validate"
)

var (
	// ErrIncomplete marks form input with a missing or unusable field. The
	// operation is dropped without a notice.
	ErrIncomplete        = errors.New("incomplete input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidSettings   = errors.New("invalid settings")
)

// Notice texts shown after each operation.
const (
	MsgProductAdded      = "Product added successfully!"
	MsgOrderAdded        = "New order recorded!"
	MsgOrderDeleted      = "Order deleted."
	MsgInsufficientStock = "Insufficient stock!"
	MsgSettingsSaved     = "Settings saved."
)

// StateStore loads the state at startup and receives a full copy after every
// change. SaveState must store both collections or neither.
type StateStore interface {
	LoadProducts() ([]domain.Product, error)
	LoadOrders() ([]domain.Order, error)
	LoadSettings() (domain.Settings, error)
	SaveState([]domain.Product, []domain.Order) error
	SaveSettings(domain.Settings) error
}

type SettingsInput struct {
	CompanyName string
	Email       string
	Phone       string
	Address     string
}

// Dashboard is the only way to read or change the catalog and the ledger.
// Operations are serialised; each one completes before the next starts.
type Dashboard struct {
	// Clock stamps invoices; nil means time.Now.
	Clock func() time.Time

	mu       sync.Mutex
	catalog  *Catalog
	ledger   *Ledger
	settings domain.Settings
	store    StateStore
	notes    *notify.Center
	metrics  *metrics.Registry
}

func NewDashboard(store StateStore, notes *notify.Center, m *metrics.Registry) (*Dashboard, error) {
	products, err := store.LoadProducts()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	orders, err := store.LoadOrders()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	settings, err := store.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if notes == nil {
		notes = notify.NewCenter(notify.DefaultTTL)
	}
	if m == nil {
		m = metrics.NewRegistry()
	}
	catalog := NewCatalog(products)
	d := &Dashboard{
		catalog:  catalog,
		ledger:   NewLedger(orders, catalog),
		settings: settings,
		store:    store,
		notes:    notes,
		metrics:  m,
	}
	d.refreshGauges()
	applog.Info(nil, "dashboard.loaded", map[string]any{"products": len(products), "orders": len(orders)})
	return d, nil
}

func (d *Dashboard) AddProduct(in ProductInput) (domain.Product, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	undo := d.checkpoint()
	p, err := d.catalog.Add(in)
	if err != nil {
		return domain.Product{}, err
	}
	if err := d.persist(undo); err != nil {
		return domain.Product{}, err
	}
	d.metrics.ProductsAdded.Inc()
	applog.Audit(nil, "product.add", map[string]any{"id": p.ID, "name": p.Name, "price": p.Price, "stock": p.Stock})
	d.notes.Push(notify.KindSuccess, MsgProductAdded)
	return p, nil
}

func (d *Dashboard) AddOrder(in OrderInput) (domain.Order, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	undo := d.checkpoint()
	o, err := d.ledger.Add(in)
	switch {
	case errors.Is(err, ErrInsufficientStock):
		d.metrics.OrdersRejected.WithLabelValues("stock").Inc()
		applog.Warn(nil, "order.add.rejected", map[string]any{"product_id": in.ProductID, "quantity": in.Quantity})
		d.notes.Push(notify.KindWarning, MsgInsufficientStock)
		return domain.Order{}, err
	case err != nil:
		d.metrics.OrdersRejected.WithLabelValues("incomplete").Inc()
		return domain.Order{}, err
	}
	if err := d.persist(undo); err != nil {
		return domain.Order{}, err
	}
	d.metrics.OrdersCreated.Inc()
	applog.Audit(nil, "order.add", map[string]any{
		"id": o.ID, "ref": o.Reference, "product_id": o.ProductID, "quantity": o.Quantity, "status": string(o.Status),
	})
	d.notes.Push(notify.KindSuccess, MsgOrderAdded)
	return o, nil
}

// DeleteOrder removes the order; product stock stays as it is.
func (d *Dashboard) DeleteOrder(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	undo := d.checkpoint()
	o, ok := d.ledger.Delete(id)
	if !ok {
		return ErrOrderNotFound
	}
	if err := d.persist(undo); err != nil {
		return err
	}
	d.metrics.OrdersDeleted.Inc()
	applog.Audit(nil, "order.delete", map[string]any{"id": o.ID, "ref": o.Reference, "quantity": o.Quantity})
	d.notes.Push(notify.KindSuccess, MsgOrderDeleted)
	return nil
}

func (d *Dashboard) UpdateSettings(in SettingsInput) (domain.Settings, error) {
	email, okEmail := validate.Email(in.Email)
	phone, okPhone := validate.Phone(in.Phone)
	if !okEmail || !okPhone {
		return domain.Settings{}, ErrInvalidSettings
	}
	name, _ := validate.Required(in.CompanyName)
	addr, _ := validate.Required(in.Address)
	s := domain.Settings{CompanyName: name, Email: email, Phone: phone, Address: addr}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.store.SaveSettings(s); err != nil {
		d.metrics.PersistErrors.Inc()
		applog.Error(nil, "settings.persist.fail", err, nil)
		return domain.Settings{}, fmt.Errorf("persist settings: %w", err)
	}
	d.settings = s
	applog.Audit(nil, "settings.update", map[string]any{"company": s.CompanyName})
	d.notes.Push(notify.KindSuccess, MsgSettingsSaved)
	return s, nil
}

// checkpoint captures both collections; the returned func puts them back.
func (d *Dashboard) checkpoint() func() {
	products, orders := d.catalog.Products(), d.ledger.Orders()
	return func() {
		d.catalog.products = products
		d.ledger.orders = orders
	}
}

// persist writes both collections in one step. When the write fails, undo
// restores the state as it was before the operation, so memory never holds
// a change the store does not.
func (d *Dashboard) persist(undo func()) error {
	if err := d.store.SaveState(d.catalog.Products(), d.ledger.Orders()); err != nil {
		undo()
		d.metrics.PersistErrors.Inc()
		applog.Error(nil, "state.persist.fail", err, nil)
		return fmt.Errorf("persist state: %w", err)
	}
	d.refreshGauges()
	return nil
}

func (d *Dashboard) refreshGauges() {
	st := d.ledger.Statistics()
	d.metrics.StockAvailable.Set(float64(st.StockAvailable))
	d.metrics.RevenuePaid.Set(st.TotalRevenue.InexactFloat64())
}

func (d *Dashboard) Products() []domain.Product {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.catalog.Products()
}

func (d *Dashboard) Orders() []domain.Order {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ledger.Orders()
}

func (d *Dashboard) OrderRows() []OrderRow {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ledger.Rows()
}

func (d *Dashboard) Statistics() domain.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ledger.Statistics()
}

func (d *Dashboard) SoldByProduct() []domain.ProductSales {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ledger.SoldByProduct()
}

func (d *Dashboard) ExportCSV() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ledger.ExportCSV()
}

func (d *Dashboard) Invoice(orderID int) (domain.Invoice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	o, ok := d.ledger.Find(orderID)
	if !ok {
		return domain.Invoice{}, ErrOrderNotFound
	}
	now := time.Now
	if d.Clock != nil {
		now = d.Clock
	}
	return d.ledger.Invoice(o, now()), nil
}

func (d *Dashboard) Settings() domain.Settings {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settings
}

func (d *Dashboard) Notifications() []domain.Notification { return d.notes.List() }

func (d *Dashboard) DismissNotification(id string) bool { return d.notes.Dismiss(id) }
