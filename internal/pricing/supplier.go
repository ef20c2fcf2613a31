package pricing

import (
	"context"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

// Selection is the offer chosen for an ingredient.
type Selection struct {
	Product         domain.Product
	Offer           domain.SupplierOffer
	CostPerBaseUnit float64
}

// Selector chooses the cheapest offer among candidate products.
type Selector struct {
	costs CostNormalizer
	log   *logger.Logger
}

// NewSelector creates a Selector that prices offers with costs.
func NewSelector(costs CostNormalizer, log *logger.Logger) *Selector {
	return &Selector{costs: costs, log: log}
}

// FindCheapest returns the offer with the lowest cost per base unit.
// Products and their offers are scanned in order and only a strictly
// lower cost replaces the current pick, so the first of equal offers wins.
// Returns a *domain.NoSupplierFoundError when there is no offer at all.
func (s *Selector) FindCheapest(ctx context.Context, ingredient string, products []domain.Product) (Selection, error) {
	var (
		best  Selection
		found bool
	)
	for _, p := range products {
		for _, offer := range p.SupplierOffers {
			cost, err := s.costs.CostPerBaseUnit(ctx, offer)
			if err != nil {
				return Selection{}, err
			}
			if !found || cost < best.CostPerBaseUnit {
				best = Selection{Product: p, Offer: offer, CostPerBaseUnit: cost}
				found = true
			}
		}
	}
	if !found {
		return Selection{}, &domain.NoSupplierFoundError{Ingredient: ingredient}
	}

	s.log.Debug("cheapest %s: %s from %s at %g per base unit", ingredient, best.Product.ID, best.Offer.Supplier, best.CostPerBaseUnit)
	return best, nil
}
