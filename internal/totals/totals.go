// Package totals aggregates price, weight and volume over container lines.
package totals

import (
	"github.com/01moynul/containerhub-golang/internal/units"
	"github.com/shopspring/decimal"
)

// Dimensions is the part of a product the aggregator needs.
type Dimensions struct {
	Price  decimal.Decimal
	Weight float64 // kg
	Length float64 // cm
	Width  float64 // cm
	Height float64 // cm
}

// Volume returns the product volume in cubic meters.
func (d Dimensions) Volume() float64 {
	return units.VolumeCubicMeters(d.Length, d.Width, d.Height)
}

// Line is one product and the quantity packed. A nil Product means the
// referenced product no longer exists.
type Line struct {
	Product  *Dimensions
	Quantity int
}

// Totals is the aggregate of a set of lines.
type Totals struct {
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	TotalWeight float64         `json:"totalWeight"`
	TotalVolume float64         `json:"totalVolume"`
}

// Compute sums price, weight and volume over lines. Lines without a
// product contribute nothing. Price is summed exactly.
func Compute(lines []Line) Totals {
	t := Totals{TotalPrice: decimal.Zero}

	for _, line := range lines {
		if line.Product == nil {
			continue
		}
		qty := float64(line.Quantity)
		t.TotalPrice = t.TotalPrice.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		t.TotalWeight += line.Product.Weight * qty
		t.TotalVolume += line.Product.Volume() * qty
	}

	return t
}
