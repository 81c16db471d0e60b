// Package admission decides whether products may be packed into a
// container without breaking its weight, volume or price limit.
package admission

import (
	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/totals"
	"github.com/shopspring/decimal"
)

// Limits stored for containers created without an explicit value.
const (
	UnboundedWeight = 1e9 // kg
	UnboundedVolume = 1e9 // m³
)

// UnboundedPrice is the largest price limit, for containers created
// without one.
var UnboundedPrice = decimal.RequireFromString("99999999.99")

// Limit names reported in LIMIT_EXCEEDED errors.
const (
	LimitWeight = "maxWeight"
	LimitVolume = "maxVolume"
	LimitPrice  = "maxPrice"
)

type Limits struct {
	MaxWeight float64
	MaxVolume float64
	MaxPrice  decimal.Decimal
}

func LimitsOf(c *models.Container) Limits {
	return Limits{MaxWeight: c.MaxWeight, MaxVolume: c.MaxVolume, MaxPrice: c.MaxPrice}
}

// CheckLimits compares prospective totals against the limits in the
// order weight, volume, price. A total equal to its limit passes. Only
// the first exceeded limit is reported.
func CheckLimits(l Limits, t totals.Totals) error {
	if t.TotalWeight > l.MaxWeight {
		return apperr.ExceededLimit(LimitWeight, l.MaxWeight, t.TotalWeight)
	}
	if t.TotalVolume > l.MaxVolume {
		return apperr.ExceededLimit(LimitVolume, l.MaxVolume, t.TotalVolume)
	}
	if t.TotalPrice.GreaterThan(l.MaxPrice) {
		return apperr.ExceededLimit(LimitPrice, l.MaxPrice.InexactFloat64(), t.TotalPrice.InexactFloat64())
	}
	return nil
}
