// Package nutrition folds product nutrient facts into per-recipe totals
// and projects the totals into display order.
package nutrition

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/units"
)

// FactNormalizer expresses a nutrient fact in base units.
type FactNormalizer interface {
	FactInBaseUnits(ctx context.Context, fact domain.NutrientFact) (domain.NutrientFact, error)
}

// Compile-time interface check.
var _ FactNormalizer = (*Normalizer)(nil)

// Normalizer converts both sides of a fact to the base unit of their own
// unit type, so "0.5 oz per 4 oz" becomes "14.17 g per 113.4 g".
type Normalizer struct {
	conv  units.Converter
	bases domain.BaseUnitSource
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(conv units.Converter, bases domain.BaseUnitSource) *Normalizer {
	return &Normalizer{conv: conv, bases: bases}
}

// FactInBaseUnits returns a normalized copy of fact.
func (n *Normalizer) FactInBaseUnits(ctx context.Context, fact domain.NutrientFact) (domain.NutrientFact, error) {
	amount, err := n.toBase(ctx, fact.QuantityAmount)
	if err != nil {
		return domain.NutrientFact{}, fmt.Errorf("%s amount: %w", fact.Nutrient, err)
	}
	per, err := n.toBase(ctx, fact.QuantityPer)
	if err != nil {
		return domain.NutrientFact{}, fmt.Errorf("%s basis: %w", fact.Nutrient, err)
	}
	return domain.NutrientFact{
		Nutrient:       fact.Nutrient,
		QuantityAmount: amount,
		QuantityPer:    per,
	}, nil
}

func (n *Normalizer) toBase(ctx context.Context, q domain.UnitOfMeasure) (domain.UnitOfMeasure, error) {
	base, err := n.bases.BaseUnit(ctx, q.Type)
	if err != nil {
		return domain.UnitOfMeasure{}, fmt.Errorf("base unit for %s: %w", q.Type, err)
	}
	return n.conv.Convert(q, base.Name, base.Type)
}
