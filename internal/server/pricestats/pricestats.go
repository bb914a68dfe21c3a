// Package pricestats summarises market price observations.
package pricestats

import (
	"sort"

	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/shopspring/decimal"
)

// Trend directions.
const (
	Up     = "up"
	Down   = "down"
	Stable = "stable"
)

var (
	hundred        = decimal.NewFromInt(100)
	stableBoundary = decimal.RequireFromString("0.5")
)

// Summary is the aggregate of a set of price rows.
type Summary struct {
	Count        int             `json:"count"`
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	Average      decimal.Decimal `json:"average"`
	Latest       decimal.Decimal `json:"latest"`
	TrendPercent decimal.Decimal `json:"trend_percent"`
	Direction    string          `json:"direction"`
}

// Compute aggregates rows. The trend compares the latest observation with
// the earliest one. An empty input yields a zero Summary with a stable trend.
func Compute(rows []models.MarketPrice) Summary {
	s := Summary{Direction: Stable}
	if len(rows) == 0 {
		return s
	}

	sorted := make([]models.MarketPrice, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ObservedAt.Before(sorted[j].ObservedAt)
	})

	sum := decimal.Zero
	s.Min = sorted[0].Price
	s.Max = sorted[0].Price
	for _, r := range sorted {
		sum = sum.Add(r.Price)
		if r.Price.LessThan(s.Min) {
			s.Min = r.Price
		}
		if r.Price.GreaterThan(s.Max) {
			s.Max = r.Price
		}
	}

	s.Count = len(sorted)
	s.Average = sum.Div(decimal.NewFromInt(int64(s.Count))).Round(2)

	earliest := sorted[0].Price
	s.Latest = sorted[len(sorted)-1].Price

	if !earliest.IsZero() {
		s.TrendPercent = s.Latest.Sub(earliest).Div(earliest).Mul(hundred).Round(2)
	}

	switch {
	case s.TrendPercent.Abs().LessThan(stableBoundary):
		s.Direction = Stable
	case s.TrendPercent.IsPositive():
		s.Direction = Up
	default:
		s.Direction = Down
	}
	return s
}

// ComputeByCrop groups rows by crop name and summarises each group.
func ComputeByCrop(rows []models.MarketPrice) map[string]Summary {
	groups := map[string][]models.MarketPrice{}
	for _, r := range rows {
		groups[r.CropName] = append(groups[r.CropName], r)
	}
	out := make(map[string]Summary, len(groups))
	for crop, g := range groups {
		out[crop] = Compute(g)
	}
	return out
}
