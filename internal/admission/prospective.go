package admission

import (
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/totals"
)

// Prospective returns the totals the container would have after adding
// quantity units of product to the current lines.
func Prospective(current []models.ContainerLine, product *models.Product, quantity int) totals.Totals {
	lines := make([]totals.Line, 0, len(current)+1)
	merged := quantity

	for _, l := range current {
		if l.ProductID == product.ID {
			merged += l.Quantity
			continue
		}
		lines = append(lines, totals.Line{Product: l.Product.Dimensions(), Quantity: l.Quantity})
	}

	dims := product.Dimensions()
	lines = append(lines, totals.Line{Product: &dims, Quantity: merged})

	return totals.Compute(lines)
}

// Current returns the totals of the stored lines.
func Current(lines []models.ContainerLine) totals.Totals {
	tl := make([]totals.Line, 0, len(lines))
	for _, l := range lines {
		tl = append(tl, totals.Line{Product: l.Product.Dimensions(), Quantity: l.Quantity})
	}
	return totals.Compute(tl)
}
