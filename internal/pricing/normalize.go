// Package pricing picks the cheapest supplier offer for an ingredient and
// prices recipe line items against it.
package pricing

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/units"
)

// CostNormalizer computes the price of one base unit of an offer.
type CostNormalizer interface {
	CostPerBaseUnit(ctx context.Context, offer domain.SupplierOffer) (float64, error)
}

// Compile-time interface check.
var _ CostNormalizer = (*Normalizer)(nil)

// Normalizer expresses offer prices per base unit of the offer's unit type.
type Normalizer struct {
	conv  units.Converter
	bases domain.BaseUnitSource
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(conv units.Converter, bases domain.BaseUnitSource) *Normalizer {
	return &Normalizer{conv: conv, bases: bases}
}

// CostPerBaseUnit returns offer.Price divided by the offer's quantity in
// base units. An offer whose quantity is not positive is ErrInvalidOffer.
func (n *Normalizer) CostPerBaseUnit(ctx context.Context, offer domain.SupplierOffer) (float64, error) {
	base, err := n.bases.BaseUnit(ctx, offer.Quantity.Type)
	if err != nil {
		return 0, fmt.Errorf("base unit for %s: %w", offer.Quantity.Type, err)
	}
	inBase, err := n.conv.Convert(offer.Quantity, base.Name, base.Type)
	if err != nil {
		return 0, err
	}
	if !(inBase.Amount > 0) {
		return 0, fmt.Errorf("%w: %s from %q is %s", domain.ErrInvalidOffer, offer.Quantity, offer.Supplier, inBase)
	}
	return offer.Price / inBase.Amount, nil
}
