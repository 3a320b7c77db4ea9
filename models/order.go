package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderStatus is the closed set of order states. The wire strings match what
// buyers' apps already write into the store, including the space in
// "To Deliver".
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusApproved  OrderStatus = "Approved"
	StatusToDeliver OrderStatus = "To Deliver"
	StatusCompleted OrderStatus = "Completed"
)

// ParseOrderStatus validates a wire string against the closed status set.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusApproved, StatusToDeliver, StatusCompleted:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// CanTransition reports whether the merchant may move an order from its
// current status to next. Buyers complete orders on their side, so the only
// merchant transitions are approve and set-delivery.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved
	case StatusApproved:
		return next == StatusToDeliver
	case StatusToDeliver, StatusCompleted:
		return false
	}
	return false
}

// DeliveryEstimate is the merchant-set delivery window, preformatted strings.
type DeliveryEstimate struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Order lives under shopOrders/{shopId}/{orderId} with a buyer-side mirror
// under userOrders/{buyerId}/{orderId}. Both copies are updated in a single
// multi-path write.
type Order struct {
	OrderID          string            `json:"orderId,omitempty"`
	ShopID           string            `json:"shopId,omitempty"`
	BuyerID          string            `json:"buyerId"`
	BuyerFullName    string            `json:"buyerFullName"`
	Address          string            `json:"address,omitempty"`
	Status           OrderStatus       `json:"status"`
	DeliveryMethod   string            `json:"deliveryMethod,omitempty"`
	PaymentMethod    string            `json:"paymentMethod,omitempty"`
	GrandTotal       decimal.Decimal   `json:"grandTotal"`
	Items            []OrderItem       `json:"items"`
	DeliveryEstimate *DeliveryEstimate `json:"deliveryEstimate,omitempty"`
	Timestamp        int64             `json:"timestamp,omitempty"`
}

// OrderBuckets groups a shop's orders by status for the orders page.
type OrderBuckets struct {
	Pending   []Order `json:"pending"`
	Approved  []Order `json:"approved"`
	ToDeliver []Order `json:"toDeliver"`
	Completed []Order `json:"completed"`
}

// Add places an order into its status bucket. Unknown statuses are dropped,
// matching how the original dashboard ignored them.
func (b *OrderBuckets) Add(o Order) {
	switch o.Status {
	case StatusPending:
		b.Pending = append(b.Pending, o)
	case StatusApproved:
		b.Approved = append(b.Approved, o)
	case StatusToDeliver:
		b.ToDeliver = append(b.ToDeliver, o)
	case StatusCompleted:
		b.Completed = append(b.Completed, o)
	}
}
