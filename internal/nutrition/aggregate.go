package nutrition

import (
	"context"

	"github.com/hammamikhairi/ottocost/internal/domain"
)

// Totals is a running per-recipe nutrient total keyed by nutrient name.
type Totals map[domain.NutrientName]domain.NutrientFact

// Aggregator adds product nutrient facts into Totals.
type Aggregator struct {
	facts FactNormalizer
}

// NewAggregator creates an Aggregator that normalizes facts with facts.
func NewAggregator(facts FactNormalizer) *Aggregator {
	return &Aggregator{facts: facts}
}

// Aggregate adds every nutrient fact of p, normalized to base units, into
// totals. A nutrient seen for the first time is stored as a copy of its
// fact. Later contributions only add to QuantityAmount.Amount; the first
// QuantityPer is kept and is not checked against later ones.
func (a *Aggregator) Aggregate(ctx context.Context, totals Totals, p domain.Product) error {
	for _, fact := range p.NutrientFacts {
		n, err := a.facts.FactInBaseUnits(ctx, fact)
		if err != nil {
			return err
		}
		cur, ok := totals[n.Nutrient]
		if !ok {
			totals[n.Nutrient] = n
			continue
		}
		cur.QuantityAmount.Amount += n.QuantityAmount.Amount
		totals[n.Nutrient] = cur
	}
	return nil
}
