package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Farmer struct {
	ID         string          `json:"id"`
	FullName   string          `json:"full_name"`
	Phone      string          `json:"phone"`
	Region     string          `json:"region"`
	FarmSizeHa decimal.Decimal `json:"farm_size_ha"`
	Verified   bool            `json:"verified"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type FarmerInput struct {
	FullName   string          `json:"full_name" validate:"required,max=120"`
	Phone      string          `json:"phone" validate:"required,phone"`
	Region     string          `json:"region" validate:"required,max=80"`
	FarmSizeHa decimal.Decimal `json:"farm_size_ha" validate:"decimal_gte0"`
}

type FarmerFilter struct {
	Region string
	Search string
}

// Address belongs to a user. At most one address per user has IsDefault set.
type Address struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Label      string    `json:"label"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2"`
	City       string    `json:"city"`
	Region     string    `json:"region"`
	PostalCode string    `json:"postal_code"`
	Phone      string    `json:"phone"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AddressInput struct {
	UserID     string `json:"user_id" validate:"required"`
	Label      string `json:"label" validate:"max=60"`
	Line1      string `json:"line1" validate:"required,max=200"`
	Line2      string `json:"line2" validate:"max=200"`
	City       string `json:"city" validate:"required,max=100"`
	Region     string `json:"region" validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"max=20"`
	Phone      string `json:"phone" validate:"omitempty,phone"`
	IsDefault  bool   `json:"is_default"`
}

// AddressPatch changes only the non-nil fields.
type AddressPatch struct {
	Label      *string `json:"label" validate:"omitempty,max=60"`
	Line1      *string `json:"line1" validate:"omitempty,min=1,max=200"`
	Line2      *string `json:"line2" validate:"omitempty,max=200"`
	City       *string `json:"city" validate:"omitempty,min=1,max=100"`
	Region     *string `json:"region" validate:"omitempty,max=100"`
	PostalCode *string `json:"postal_code" validate:"omitempty,max=20"`
	Phone      *string `json:"phone" validate:"omitempty,phone"`
	IsDefault  *bool   `json:"is_default"`
}

// Apply copies the set fields of p onto a.
func (p AddressPatch) Apply(a *Address) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&a.Label, p.Label)
	set(&a.Line1, p.Line1)
	set(&a.Line2, p.Line2)
	set(&a.City, p.City)
	set(&a.Region, p.Region)
	set(&a.PostalCode, p.PostalCode)
	set(&a.Phone, p.Phone)
	if p.IsDefault != nil {
		a.IsDefault = *p.IsDefault
	}
}

// UserAccount is a platform user as exposed by the REST user API.
type UserAccount struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type RoleInput struct {
	Role string `json:"role" validate:"required,oneof=admin farmer buyer"`
}
