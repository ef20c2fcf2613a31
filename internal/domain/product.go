package domain

// NutrientName names a nutrient ("Protein", "Sodium").
type NutrientName string

// Nutrients known to the built-in catalog.
const (
	Calories      NutrientName = "Calories"
	Carbohydrates NutrientName = "Carbohydrates"
	Fat           NutrientName = "Fat"
	Protein       NutrientName = "Protein"
	Sodium        NutrientName = "Sodium"
)

// SupplierOffer is a priced package of a product.
type SupplierOffer struct {
	Supplier string
	Quantity UnitOfMeasure
	Price    float64
}

// NutrientFact states how much of a nutrient is present per a given
// quantity of product, e.g. 13g Protein per 100g.
type NutrientFact struct {
	Nutrient       NutrientName
	QuantityAmount UnitOfMeasure
	QuantityPer    UnitOfMeasure
}

// Product is something a supplier sells that can satisfy an ingredient.
type Product struct {
	ID             string
	Name           string
	Ingredient     string
	NutrientFacts  []NutrientFact
	SupplierOffers []SupplierOffer
}
