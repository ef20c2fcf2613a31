package pricing

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/units"
)

// Coster prices recipe line items.
type Coster struct {
	conv  units.Converter
	bases domain.BaseUnitSource
}

// NewCoster creates a Coster.
func NewCoster(conv units.Converter, bases domain.BaseUnitSource) *Coster {
	return &Coster{conv: conv, bases: bases}
}

// LineItemCost converts the line item's quantity into the base unit of the
// offer's unit type and multiplies by costPerBaseUnit. Conversion errors
// are returned as is.
func (c *Coster) LineItemCost(ctx context.Context, item domain.RecipeLineItem, offer domain.SupplierOffer, costPerBaseUnit float64) (float64, error) {
	base, err := c.bases.BaseUnit(ctx, offer.Quantity.Type)
	if err != nil {
		return 0, fmt.Errorf("base unit for %s: %w", offer.Quantity.Type, err)
	}
	converted, err := c.conv.Convert(item.Quantity, base.Name, base.Type)
	if err != nil {
		return 0, err
	}
	return converted.Amount * costPerBaseUnit, nil
}
