package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Container is the model for the 'containers' table.
// Limits are fixed at creation.
type Container struct {
	ID         int64           `json:"id" db:"id"`
	ImporterID int64           `json:"importerId" db:"importer_id"`
	Name       string          `json:"name" db:"name"`
	MaxWeight  float64         `json:"maxWeight" db:"max_weight"`
	MaxVolume  float64         `json:"maxVolume" db:"max_volume"`
	MaxPrice   decimal.Decimal `json:"maxPrice" db:"max_price"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`

	ItemCount *int `json:"itemCount,omitempty" db:"item_count"`
}

// MaxQuantity is the largest quantity the INT quantity column holds.
const MaxQuantity = math.MaxInt32

// ContainerItem is the model for the 'container_items' table.
// (container_id, product_id) is unique.
type ContainerItem struct {
	ID          int64     `json:"id" db:"id"`
	ContainerID int64     `json:"containerId" db:"container_id"`
	ProductID   int64     `json:"productId" db:"product_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}

// ContainerLine is a stored item together with its product, if the
// product still exists.
type ContainerLine struct {
	ContainerItem
	Product *ProductSummary `json:"product"`
}
