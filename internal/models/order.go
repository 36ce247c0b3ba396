package models

import (
	"github.com/google/uuid"
)

// Order statuses. Transitions follow the chain below, with Cancelled
// reachable from any non-terminal status.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Payment statuses.
const (
	PaymentStatusPaid = "Paid"
)

// Delivery methods.
const (
	DeliveryMethodDoorstep = "doorstep"
	DeliveryMethodPark     = "park"
)

// Order is the durable record of a completed checkout. Every field except
// OrderStatus (and the Delivered->Paid side effect on PaymentStatus) is
// immutable once created.
type Order struct {
	BaseModel
	CustomerName     string      `json:"customer_name"`
	CustomerEmail    string      `json:"customer_email"`
	CustomerPhone    string      `json:"customer_phone"`
	CustomerAddress  string      `json:"customer_address"`
	DeliveryMethod   string      `json:"delivery_method"`
	ParkLocation     string      `json:"park_location"`
	Subtotal         float64     `json:"subtotal"`
	ShippingFee      float64     `json:"shipping_fee"`
	DiscountAmount   float64     `json:"discount_amount"`
	TipAmount        float64     `json:"tip_amount"`
	TotalAmount      float64     `json:"total_amount"`
	TotalWeight      float64     `json:"total_weight"`
	PaymentReference string      `gorm:"uniqueIndex" json:"payment_reference"`
	PaymentStatus    string      `json:"payment_status"`
	OrderStatus      string      `json:"order_status"`
	Items            []OrderItem `json:"items,omitempty"`
}

// OrderItem is an immutable snapshot of a product line captured at
// checkout time, so later catalog edits never alter historical orders.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	Size        string     `json:"size"`
	Image       string     `json:"image"`
	WeightKg    float64    `json:"weight_kg"`
}

// orderTransitions lists the legal next statuses for each status.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionOrderStatus reports whether an order may move from one
// status to another.
func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
