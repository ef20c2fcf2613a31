package domain

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Nutrients is an ordered mapping from nutrient name to its aggregated fact.
type Nutrients = orderedmap.OrderedMap[NutrientName, NutrientFact]

// RecipeCost is the computed result for one recipe.
type RecipeCost struct {
	TotalCost float64
	Nutrients *Nutrients
}

// Summary maps recipe names to their cost, in the order the recipes were
// processed.
type Summary = orderedmap.OrderedMap[string, RecipeCost]

// NewNutrients returns an empty ordered nutrient mapping.
func NewNutrients() *Nutrients {
	return orderedmap.New[NutrientName, NutrientFact]()
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return orderedmap.New[string, RecipeCost]()
}
