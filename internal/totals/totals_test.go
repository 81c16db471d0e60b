package totals

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dims(price string, weight, l, w, h float64) *Dimensions {
	return &Dimensions{
		Price:  decimal.RequireFromString(price),
		Weight: weight,
		Length: l,
		Width:  w,
		Height: h,
	}
}

func sampleLines() []Line {
	return []Line{
		{Product: dims("19.99", 3, 100, 100, 100), Quantity: 3},
		{Product: dims("0.10", 0.25, 10, 10, 10), Quantity: 7},
		{Product: dims("1250.00", 42.5, 120, 80, 95), Quantity: 1},
	}
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil)

	assert.True(t, got.TotalPrice.IsZero())
	assert.Zero(t, got.TotalWeight)
	assert.Zero(t, got.TotalVolume)
}

func TestComputeSums(t *testing.T) {
	got := Compute(sampleLines())

	assert.True(t, decimal.RequireFromString("1310.67").Equal(got.TotalPrice), "got %s", got.TotalPrice)
	assert.InDelta(t, 3*3+0.25*7+42.5, got.TotalWeight, 1e-9)
	assert.InDelta(t, 3.0+0.007+0.912, got.TotalVolume, 1e-9)
}

func TestComputeIsIdempotent(t *testing.T) {
	lines := sampleLines()

	first := Compute(lines)
	second := Compute(lines)

	assert.True(t, first.TotalPrice.Equal(second.TotalPrice))
	assert.Equal(t, first.TotalWeight, second.TotalWeight)
	assert.Equal(t, first.TotalVolume, second.TotalVolume)
}

func TestComputeIsOrderIndependent(t *testing.T) {
	lines := sampleLines()
	reversed := make([]Line, len(lines))
	for i := range lines {
		reversed[len(lines)-1-i] = lines[i]
	}

	a := Compute(lines)
	b := Compute(reversed)

	assert.True(t, a.TotalPrice.Equal(b.TotalPrice))
	assert.InDelta(t, a.TotalWeight, b.TotalWeight, 1e-9)
	assert.InDelta(t, a.TotalVolume, b.TotalVolume, 1e-9)
}

func TestComputeSkipsMissingProduct(t *testing.T) {
	lines := sampleLines()
	withGhost := append([]Line{{Product: nil, Quantity: 500}}, lines...)

	require.Len(t, withGhost, len(lines)+1)
	a := Compute(lines)
	b := Compute(withGhost)

	assert.True(t, a.TotalPrice.Equal(b.TotalPrice))
	assert.Equal(t, a.TotalWeight, b.TotalWeight)
	assert.Equal(t, a.TotalVolume, b.TotalVolume)
}

func TestComputeRepeatedCentsStayExact(t *testing.T) {
	var lines []Line
	for i := 0; i < 1000; i++ {
		lines = append(lines, Line{Product: dims("0.10", 0, 0, 0, 0), Quantity: 1})
	}

	got := Compute(lines)

	assert.Equal(t, "100", got.TotalPrice.String())
}
