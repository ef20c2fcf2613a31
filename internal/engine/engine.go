// Package engine computes recipe cost and nutrient summaries.
package engine

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
	"github.com/hammamikhairi/ottocost/internal/nutrition"
	"github.com/hammamikhairi/ottocost/internal/pricing"
	"github.com/hammamikhairi/ottocost/internal/units"
)

// Option configures the engine.
type Option func(*Engine)

// WithCostNormalizer replaces the offer price normalization used to rank
// supplier offers.
func WithCostNormalizer(n pricing.CostNormalizer) Option {
	return func(e *Engine) {
		e.costs = n
	}
}

// WithFactNormalizer replaces the nutrient fact normalization.
func WithFactNormalizer(n nutrition.FactNormalizer) Option {
	return func(e *Engine) {
		e.facts = n
	}
}

// Engine summarizes recipes. It depends only on interfaces and is fully
// testable with fakes.
type Engine struct {
	recipes  domain.RecipeSource
	products domain.ProductSource
	costs    pricing.CostNormalizer
	facts    nutrition.FactNormalizer

	selector  *pricing.Selector
	coster    *pricing.Coster
	nutrients *nutrition.Aggregator
	log       *logger.Logger
}

// New creates an engine. conv converts quantities and bases resolves the
// base unit of each unit type.
func New(recipes domain.RecipeSource, products domain.ProductSource, conv units.Converter, bases domain.BaseUnitSource, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		recipes:  recipes,
		products: products,
		costs:    pricing.NewNormalizer(conv, bases),
		facts:    nutrition.NewNormalizer(conv, bases),
		coster:   pricing.NewCoster(conv, bases),
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.selector = pricing.NewSelector(e.costs, log)
	e.nutrients = nutrition.NewAggregator(e.facts)
	return e
}

// Run summarizes the recipes of the recipe source. If names are given only
// those recipes are summarized, in source order; an unknown name is
// domain.ErrNotFound.
func (e *Engine) Run(ctx context.Context, names ...string) (*domain.Summary, error) {
	recipes, err := e.recipes.Recipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}
	if len(names) > 0 {
		recipes, err = filterRecipes(recipes, names)
		if err != nil {
			return nil, err
		}
	}
	return e.CalculateRecipeSummary(ctx, recipes)
}

// CalculateRecipeSummary prices every recipe with the cheapest offers and
// totals the nutrients of the chosen products. Recipes are processed in
// order and the first error aborts the whole run; no partial summary is
// returned. Cancelling ctx stops the run before the next recipe.
func (e *Engine) CalculateRecipeSummary(ctx context.Context, recipes []domain.Recipe) (*domain.Summary, error) {
	e.log.Info("summarizing %d recipe(s)", len(recipes))

	summary := domain.NewSummary()
	for _, r := range recipes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("summarizing: %w", err)
		}
		cost, err := e.summarize(ctx, r)
		if err != nil {
			e.log.Error("recipe %q: %v", r.Name, err)
			return nil, fmt.Errorf("recipe %q: %w", r.Name, err)
		}
		summary.Set(r.Name, cost)
		e.log.Info("recipe %q: total cost %.2f, %d nutrient(s)", r.Name, cost.TotalCost, cost.Nutrients.Len())
	}
	return summary, nil
}

func (e *Engine) summarize(ctx context.Context, r domain.Recipe) (domain.RecipeCost, error) {
	var total float64
	totals := nutrition.Totals{}

	for i, item := range r.LineItems {
		cost, err := e.lineItem(ctx, item, totals)
		if err != nil {
			return domain.RecipeCost{}, fmt.Errorf("line item %d (%s): %w", i+1, item.Ingredient.Name, err)
		}
		total += cost
	}

	return domain.RecipeCost{
		TotalCost: total,
		Nutrients: nutrition.Ordered(totals),
	}, nil
}

// lineItem prices one line item and folds the chosen product's nutrients
// into totals.
func (e *Engine) lineItem(ctx context.Context, item domain.RecipeLineItem, totals nutrition.Totals) (float64, error) {
	products, err := e.products.ProductsForIngredient(ctx, item.Ingredient)
	if err != nil {
		return 0, fmt.Errorf("loading products: %w", err)
	}
	if len(products) == 0 {
		return 0, &domain.MissingIngredientProductsError{Ingredient: item.Ingredient.Name}
	}

	pick, err := e.selector.FindCheapest(ctx, item.Ingredient.Name, products)
	if err != nil {
		return 0, err
	}
	cost, err := e.coster.LineItemCost(ctx, item, pick.Offer, pick.CostPerBaseUnit)
	if err != nil {
		return 0, err
	}
	if err := e.nutrients.Aggregate(ctx, totals, pick.Product); err != nil {
		return 0, err
	}

	e.log.Debug("%s %s: %s from %s, cost %.4f", item.Quantity, item.Ingredient.Name, pick.Product.ID, pick.Offer.Supplier, cost)
	return cost, nil
}

func filterRecipes(recipes []domain.Recipe, names []string) ([]domain.Recipe, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	out := make([]domain.Recipe, 0, len(names))
	for _, r := range recipes {
		if want[r.Name] {
			out = append(out, r)
			delete(want, r.Name)
		}
	}
	for _, n := range names {
		if want[n] {
			return nil, fmt.Errorf("recipe %q: %w", n, domain.ErrNotFound)
		}
	}
	return out, nil
}
