package entity

import "time"

// Store representa una integración externa (tienda online, POS) autorizada a operar el stock vía API.
// El secreto de la API key se guarda como hash bcrypt.
type Store struct {
	ID         string
	Name       string
	BranchID   string
	APIKeyHash string
	Active     bool
	CreatedAt  time.Time
}

// ProductStoreMapping traduce el identificador de producto de una integración a un producto interno.
type ProductStoreMapping struct {
	StoreID    string
	ExternalID string
	ProductID  string
}
