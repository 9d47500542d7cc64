package store

import (
	"time"
)

// Model holds the columns every stored record carries.
type Model struct {
	ID        int
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Product represents an individual item available for sale.
type Product struct {
	Model
	SKU        string
	Name       string
	PriceCents int64
	Tags       []string
}

// Customer represents the user placing orders.
type Customer struct {
	Model
	Email   string
	Address *string
	Orders  []*Order
	Tier    CustomerTier
}

// Order represents a transaction made by a customer.
type Order struct {
	Model
	CustomerID     int
	Status         OrderStatus
	PreviousStatus *OrderStatus
	Items          []OrderItem
	Meta           map[string]string
	Matrix         [][]int
	Checksum       []byte

	internalNote string
}

// OrderItem represents a specific product line within an order.
type OrderItem struct {
	OrderID   int
	ProductID string
	Quantity  int
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// CustomerTier ranks customers by spend.
type CustomerTier int

const (
	TierBasic CustomerTier = iota
	TierGold
	TierPlatinum
)

// Cents has no constants, so it is not an enum.
type Cents int64

type auditEntry struct {
	Actor string
}
