package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

var orderTransitions = map[string][]string{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
}

// IsOrderStatus reports whether s is one of the known statuses.
func IsOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// Delivered and cancelled orders are final.
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID        string          `json:"id"`
	BuyerID   string          `json:"buyer_id"`
	FarmerID  string          `json:"farmer_id"`
	CropID    string          `json:"crop_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Total is quantity times unit price.
func (o Order) Total() decimal.Decimal {
	return o.Quantity.Mul(o.UnitPrice)
}

type OrderFilter struct {
	Status  string
	BuyerID string
}

type OrderStatusInput struct {
	Status string `json:"status" validate:"required,order_status"`
}

// MarketPrice is one price observation for a crop at a market.
type MarketPrice struct {
	ID         string          `json:"id"`
	CropName   string          `json:"crop_name"`
	Market     string          `json:"market"`
	Region     string          `json:"region"`
	Price      decimal.Decimal `json:"price"`
	Unit       string          `json:"unit"`
	ObservedAt time.Time       `json:"observed_at"`
}

type MarketPriceInput struct {
	CropName   string          `json:"crop_name" validate:"required,max=120"`
	Market     string          `json:"market" validate:"required,max=120"`
	Region     string          `json:"region" validate:"max=80"`
	Price      decimal.Decimal `json:"price" validate:"decimal_gt0"`
	Unit       string          `json:"unit" validate:"required,oneof=kg ton bag crate"`
	ObservedAt time.Time       `json:"observed_at" validate:"required"`
}

type MarketPriceFilter struct {
	Crop   string
	Market string
	Region string
	From   *time.Time
	To     *time.Time
}
