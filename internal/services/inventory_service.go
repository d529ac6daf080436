package services

// Stock levels shown next to each product.
const (
	InStock    = "IN_STOCK"
	LowStock   = "LOW_STOCK"
	OutOfStock = "OUT_OF_STOCK"
)

// LowStockThreshold is the first stock level that counts as in stock.
const LowStockThreshold = 5

// StockLevel converts a quantity to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func StockLevel(qty int) string {
	switch {
	case qty >= LowStockThreshold:
		return InStock
	case qty > 0:
		return LowStock
	}
	return OutOfStock
}
