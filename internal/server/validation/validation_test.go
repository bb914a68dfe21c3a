package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	out := map[string]string{}
	for _, f := range verr.Fields {
		out[f.Field] = f.Constraint
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(models.CropInput{Name: "Maize", Season: "summer", PricePerKg: decimal.NewFromInt(3)}))
	require.NoError(t, v.Validate(models.CategoryInput{Name: "Grains", Slug: "cereal-grains"}))
	require.NoError(t, v.Validate(models.FarmerInput{FullName: "Amina", Phone: "+254 700-123456", Region: "Rift"}))
	require.NoError(t, v.Validate(models.OrderStatusInput{Status: models.OrderShipped}))
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		input any
		want  map[string]string
	}{
		{
			name:  "crop",
			input: models.CropInput{Season: "monsoon", PricePerKg: decimal.NewFromInt(-1)},
			want: map[string]string{
				"name":         "required",
				"season":       "oneof=spring summer autumn winter all-year",
				"price_per_kg": "decimal_gte0",
			},
		},
		{
			name:  "category slug",
			input: models.CategoryInput{Name: "Grains", Slug: "Cereal Grains"},
			want:  map[string]string{"slug": "slug"},
		},
		{
			name:  "farmer phone",
			input: models.FarmerInput{FullName: "A", Phone: "call me", Region: "R"},
			want:  map[string]string{"phone": "phone"},
		},
		{
			name:  "order status",
			input: models.OrderStatusInput{Status: "lost"},
			want:  map[string]string{"status": "order_status"},
		},
		{
			name: "market price",
			input: models.MarketPriceInput{
				CropName: "Wheat", Market: "Nairobi", Unit: "kg",
				Price: decimal.Zero, ObservedAt: time.Time{},
			},
			want: map[string]string{"price": "decimal_gt0", "observed_at": "required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fieldsOf(t, v.Validate(tt.input))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestError_Message(t *testing.T) {
	err := New().Validate(models.FeedPostInput{})
	require.Error(t, err)
	assert.Equal(t, "validation failed: title: is required; body: is required", err.Error())
}
