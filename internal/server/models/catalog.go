package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,slug,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// Crop is a catalogue crop. ImageURL is the public URL of its attachment
// in the crop-images bucket, or nil.
type Crop struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CategoryID  *string         `json:"category_id"`
	Variety     string          `json:"variety"`
	Season      string          `json:"season"`
	Description string          `json:"description"`
	PricePerKg  decimal.Decimal `json:"price_per_kg"`
	ImageURL    *string         `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CropInput struct {
	Name        string          `json:"name" validate:"required,max=120"`
	CategoryID  *string         `json:"category_id" validate:"omitempty,uuid"`
	Variety     string          `json:"variety" validate:"max=120"`
	Season      string          `json:"season" validate:"omitempty,oneof=spring summer autumn winter all-year"`
	Description string          `json:"description" validate:"max=2000"`
	PricePerKg  decimal.Decimal `json:"price_per_kg" validate:"decimal_gte0"`
}

type CropFilter struct {
	CategoryID string
	Search     string
}

// Product is a marketplace listing served by the REST API.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	SellerID    string          `json:"seller_id"`
	ImageURL    *string         `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price" validate:"decimal_gte0"`
	Stock       int             `json:"stock" validate:"gte=0"`
	SellerID    string          `json:"seller_id" validate:"required"`
	ImageURL    *string         `json:"image_url,omitempty" validate:"-"`
}

type AgriService struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Provider    string          `json:"provider"`
	Description string          `json:"description"`
	Region      string          `json:"region"`
	Contact     string          `json:"contact"`
	Price       decimal.Decimal `json:"price"`
}

type AgriServiceInput struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Provider    string          `json:"provider" validate:"required,max=120"`
	Description string          `json:"description" validate:"max=2000"`
	Region      string          `json:"region" validate:"max=80"`
	Contact     string          `json:"contact" validate:"omitempty,phone"`
	Price       decimal.Decimal `json:"price" validate:"decimal_gte0"`
}
