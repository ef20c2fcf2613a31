package domain

// Ingredient identifies what a line item requires.
type Ingredient struct {
	Name     string
	Category string
}

// RecipeLineItem is the quantity of one ingredient a recipe needs.
type RecipeLineItem struct {
	Ingredient Ingredient
	Quantity   UnitOfMeasure
}

// Recipe is a named, ordered list of line items.
type Recipe struct {
	Name      string
	LineItems []RecipeLineItem
}
