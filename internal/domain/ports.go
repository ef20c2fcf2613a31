package domain

import "context"

// RecipeSource provides the recipes to cost. Implementations can be
// in-memory, file-based, or API-backed.
type RecipeSource interface {
	Recipes(ctx context.Context) ([]Recipe, error)
}

// ProductSource provides candidate products for an ingredient, matched by
// ingredient name. An ingredient nobody sells yields an empty slice, not an
// error.
type ProductSource interface {
	ProductsForIngredient(ctx context.Context, ingredient Ingredient) ([]Product, error)
}

// BaseUnitSource resolves the canonical base unit of a unit type, with an
// amount of 1. It returns ErrUnknownUnitType for a type it has no base for.
type BaseUnitSource interface {
	BaseUnit(ctx context.Context, unitType UnitType) (UnitOfMeasure, error)
}

// UnitSource provides conversion data and base units.
type UnitSource interface {
	BaseUnitSource
	ConversionEdges(ctx context.Context) ([]ConversionEdge, error)
}
