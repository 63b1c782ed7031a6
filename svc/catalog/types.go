package catalog

import "time"

// Store is a seller's shop. Products of a store may only be changed by its owner.
type Store struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is an item listed in a store.
type Product struct {
	ID          int64     `json:"id"`
	StoreID     int64     `json:"store_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProduct holds the fields of a product to create.
type NewProduct struct {
	StoreID     int64
	Name        string
	Description string
	PriceCents  int64
}

// ProductPatch holds the fields to change. Nil fields are left as they are.
type ProductPatch struct {
	Name        *string
	Description *string
	PriceCents  *int64
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.PriceCents == nil
}
