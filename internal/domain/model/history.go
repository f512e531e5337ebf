package model

import "time"

// ActorSystem marks transitions applied by the engine itself rather than a
// buyer or seller.
const ActorSystem = "system"

// StatusChange is one append-only history row. Every order status
// transition produces exactly one row in the same transaction.
type StatusChange struct {
	ID          int64
	OrderID     int64
	Status      OrderStatus
	Description string
	Actor       string
	Location    string
	CreatedAt   time.Time
}
