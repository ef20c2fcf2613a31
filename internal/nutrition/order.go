package nutrition

import "github.com/hammamikhairi/ottocost/internal/domain"

var displayOrder = []domain.NutrientName{
	domain.Carbohydrates,
	domain.Fat,
	domain.Protein,
	domain.Sodium,
}

// Ordered projects totals onto the fixed report order Carbohydrates, Fat,
// Protein, Sodium. Nutrients outside the list are dropped and listed
// nutrients with no total are omitted.
func Ordered(totals Totals) *domain.Nutrients {
	out := domain.NewNutrients()
	for _, name := range displayOrder {
		if fact, ok := totals[name]; ok {
			out.Set(name, fact)
		}
	}
	return out
}
