package model

import "time"

// Product is the slice of the catalog the engine needs: price inputs for
// the order total and a quantity mutated only by atomic reserve/release.
type Product struct {
	ID          int64
	SellerID    int64
	Name        string
	Price       float64
	ShippingFee float64
	Available   int
	CreatedAt   time.Time
}
