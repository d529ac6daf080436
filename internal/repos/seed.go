package repos

import "agripoultry/internal/domain"

// SeedProducts is the catalog used when nothing was stored yet.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Poulet standard", Price: "1200 FCFA/kg", Stock: 45},
		{ID: 2, Name: "Poulet fermier", Price: "1500 FCFA/kg", Stock: 32},
		{ID: 3, Name: "Poulet bio", Price: "1800 FCFA/kg", Stock: 20},
	}
}

// SeedOrders is the ledger used when nothing was stored yet.
func SeedOrders() []domain.Order {
	return []domain.Order{
		{ID: 1, Reference: "#CMD001", Client: "Jean Dupont", ProductID: 1, Quantity: 5, Status: domain.StatusPaid},
		{ID: 2, Reference: "#CMD002", Client: "Marie Sow", ProductID: 2, Quantity: 3, Status: domain.StatusPending},
		{ID: 3, Reference: "#CMD003", Client: "Ali Traoré", ProductID: 3, Quantity: 2, Status: domain.StatusDelivered},
	}
}
