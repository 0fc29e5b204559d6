package models

// Product is an inventory item of /productos.
type Product struct {
	ID    int64   `json:"id,omitempty"`
	Name  string  `json:"nombre"`
	Price float64 `json:"precio"`
}

func (p Product) Key() int64 { return p.ID }
