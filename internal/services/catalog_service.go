package services

import (
	"agripoultry/internal/domain"
	"agripoultry/internal/validate"
)

// ProductInput is the add-product form as submitted.
type ProductInput struct {
	Name  string
	Price string
	Stock string
}

// Catalog owns the product list. Stock only changes through DecrementStock.
type Catalog struct {
	products []domain.Product
}

func NewCatalog(products []domain.Product) *Catalog {
	return &Catalog{products: append([]domain.Product(nil), products...)}
}

// Add appends a product with id max+1. Missing fields leave the catalog
// untouched and return ErrIncomplete.
func (c *Catalog) Add(in ProductInput) (domain.Product, error) {
	name, okName := validate.Required(in.Name)
	price, okPrice := validate.Required(in.Price)
	stock, okStock := validate.Stock(in.Stock)
	if !okName || !okPrice || !okStock {
		return domain.Product{}, ErrIncomplete
	}
	p := domain.Product{ID: c.nextID(), Name: name, Price: price, Stock: stock}
	c.products = append(c.products, p)
	return p, nil
}

func (c *Catalog) nextID() int {
	top := 0
	for _, p := range c.products {
		if p.ID > top {
			top = p.ID
		}
	}
	return top + 1
}

func (c *Catalog) Find(id int) (domain.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Resolve never fails: an unknown id yields a zero-priced placeholder.
func (c *Catalog) Resolve(id int) domain.Product {
	if p, ok := c.Find(id); ok {
		return p
	}
	return domain.Product{ID: id, Name: domain.UnknownProduct, Price: "0" + domain.PriceUnit}
}

// DecrementStock does not clamp at zero; callers check stock first.
func (c *Catalog) DecrementStock(id, amount int) {
	for i := range c.products {
		if c.products[i].ID == id {
			c.products[i].Stock -= amount
			return
		}
	}
}

func (c *Catalog) TotalStock() int {
	n := 0
	for _, p := range c.products {
		n += p.Stock
	}
	return n
}

// Products returns a copy in insertion order.
func (c *Catalog) Products() []domain.Product {
	return append([]domain.Product{}, c.products...)
}
