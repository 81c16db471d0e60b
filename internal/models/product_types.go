package models

import (
	"time"

	"github.com/01moynul/containerhub-golang/internal/totals"
	"github.com/01moynul/containerhub-golang/internal/units"
	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table.
// Dimensions are in centimeters, weight in kilograms.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	SupplierID  int64           `json:"supplierId" db:"supplier_id"`
	CategoryID  int64           `json:"categoryId" db:"category_id"`
	Code        string          `json:"code" db:"code"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	ImageURL    *string         `json:"imageUrl" db:"image_url"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Weight      float64         `json:"weight" db:"weight"`
	Length      float64         `json:"length" db:"length"`
	Width       float64         `json:"width" db:"width"`
	Height      float64         `json:"height" db:"height"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`

	// Joins (only populated by listing queries)
	CategoryName  *string `json:"categoryName,omitempty" db:"category_name"`
	SupplierName  *string `json:"supplierName,omitempty" db:"supplier_name"`
	SupplierEmail *string `json:"supplierEmail,omitempty" db:"supplier_email"`
}

// Dimensions returns the fields the totals aggregator works on.
func (p *Product) Dimensions() totals.Dimensions {
	return totals.Dimensions{
		Price:  p.Price,
		Weight: p.Weight,
		Length: p.Length,
		Width:  p.Width,
		Height: p.Height,
	}
}

// MaxMoney is the largest amount a DECIMAL(12,2) column holds.
var MaxMoney = decimal.RequireFromString("9999999999.99")

// FitsMoney reports whether d can be stored as DECIMAL(12,2) without
// rounding: at most two decimal places and |d| <= MaxMoney.
func FitsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThanOrEqual(MaxMoney)
}

// ProductSummary is the product as rendered inside a container.
// Fields come from a LEFT JOIN, so a vanished product has no summary.
type ProductSummary struct {
	ID         int64           `json:"id"`
	SupplierID int64           `json:"supplierId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Weight     float64         `json:"weight"`
	Volume     float64         `json:"volume"` // per unit, m³
	Length     float64         `json:"-"`
	Width      float64         `json:"-"`
	Height     float64         `json:"-"`
}

// NewProductSummary builds a summary with its per-unit volume filled in.
func NewProductSummary(id, supplierID int64, name string, price decimal.Decimal, weight, length, width, height float64) *ProductSummary {
	return &ProductSummary{
		ID:         id,
		SupplierID: supplierID,
		Name:       name,
		Price:      price,
		Weight:     weight,
		Volume:     units.VolumeCubicMeters(length, width, height),
		Length:     length,
		Width:      width,
		Height:     height,
	}
}

// Dimensions returns the fields the totals aggregator works on.
func (p *ProductSummary) Dimensions() *totals.Dimensions {
	if p == nil {
		return nil
	}
	return &totals.Dimensions{
		Price:  p.Price,
		Weight: p.Weight,
		Length: p.Length,
		Width:  p.Width,
		Height: p.Height,
	}
}
