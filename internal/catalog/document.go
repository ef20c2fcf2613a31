package catalog

// document is the YAML shape of a catalog. Quantities are human-written
// strings ("1 1/2 cups") resolved by the quantity parser.
type document struct {
	BaseUnits   []unitDoc       `yaml:"baseUnits" validate:"required,dive"`
	Conversions []conversionDoc `yaml:"conversions" validate:"dive"`
	Recipes     []recipeDoc     `yaml:"recipes" validate:"dive"`
	Products    []productDoc    `yaml:"products" validate:"dive"`
}

type unitDoc struct {
	Name string `yaml:"name" validate:"required"`
	Type string `yaml:"type" validate:"required"`
}

type conversionDoc struct {
	From   unitDoc `yaml:"from"`
	To     unitDoc `yaml:"to"`
	Factor float64 `yaml:"factor" validate:"gt=0"`
}

type recipeDoc struct {
	Name      string        `yaml:"name" validate:"required"`
	LineItems []lineItemDoc `yaml:"lineItems" validate:"dive"`
}

type lineItemDoc struct {
	Ingredient string `yaml:"ingredient" validate:"required"`
	Category   string `yaml:"category"`
	Quantity   string `yaml:"quantity" validate:"required"`
}

type productDoc struct {
	ID         string        `yaml:"id" validate:"required"`
	Name       string        `yaml:"name"`
	Ingredient string        `yaml:"ingredient" validate:"required"`
	Offers     []offerDoc    `yaml:"offers" validate:"dive"`
	Nutrients  []nutrientDoc `yaml:"nutrients" validate:"dive"`
}

type offerDoc struct {
	Supplier string  `yaml:"supplier" validate:"required"`
	Quantity string  `yaml:"quantity" validate:"required"`
	Price    float64 `yaml:"price" validate:"gte=0"`
}

type nutrientDoc struct {
	Nutrient string `yaml:"nutrient" validate:"required"`
	Amount   string `yaml:"amount" validate:"required"`
	Per      string `yaml:"per" validate:"required"`
}
