package model

import "time"

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusReadyToShip    OrderStatus = "ready_to_ship"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusReturned       OrderStatus = "returned"
)

// PaymentStatus describes payment settlement state tracked on the order.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// orderTransitions is the single source of truth for permitted status
// progressions. Every mutation path consults it.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusProcessing, OrderStatusReturned},
	OrderStatusProcessing:     {OrderStatusReadyToShip},
	OrderStatusReadyToShip:    {OrderStatusShipped},
	OrderStatusShipped:        {OrderStatusOutForDelivery},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
	OrderStatusDelivered:      {OrderStatusCompleted},
}

// Valid reports whether the value is a known order status.
func (s OrderStatus) Valid() bool {
	if _, ok := orderTransitions[s]; ok {
		return true
	}
	return s == OrderStatusCompleted || s == OrderStatusCancelled || s == OrderStatusReturned
}

// CanTransitionTo reports whether next is a permitted successor of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are permitted.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// Order describes a buyer's request to purchase a quantity of one product
// at a total fixed at creation time. Orders are never deleted; cancellation
// is a status.
type Order struct {
	ID              int64
	ProductID       int64
	SellerID        int64
	BuyerID         *int64
	Quantity        int
	TotalAmount     float64
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	PaymentMethod   PaymentMethod
	ReceiptURL      *string
	BuyerName       string
	BuyerEmail      string
	BuyerPhone      string
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
