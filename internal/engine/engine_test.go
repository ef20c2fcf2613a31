package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
	"github.com/hammamikhairi/ottocost/internal/units"
)

// fakeCatalog serves fixed recipes, products and units.
type fakeCatalog struct {
	recipes     []domain.Recipe
	products    map[string][]domain.Product
	productsErr error
}

func (f *fakeCatalog) Recipes(context.Context) ([]domain.Recipe, error) {
	return f.recipes, nil
}

func (f *fakeCatalog) ProductsForIngredient(_ context.Context, ing domain.Ingredient) ([]domain.Product, error) {
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return f.products[ing.Name], nil
}

func (f *fakeCatalog) BaseUnit(_ context.Context, t domain.UnitType) (domain.UnitOfMeasure, error) {
	switch t {
	case domain.Mass:
		return domain.UnitOfMeasure{Amount: 1, Name: domain.Gram, Type: domain.Mass}, nil
	case domain.Volume:
		return domain.UnitOfMeasure{Amount: 1, Name: domain.Milliliter, Type: domain.Volume}, nil
	}
	return domain.UnitOfMeasure{}, domain.ErrUnknownUnitType
}

func (f *fakeCatalog) ConversionEdges(context.Context) ([]domain.ConversionEdge, error) {
	return []domain.ConversionEdge{
		{FromName: domain.Pound, FromType: domain.Mass, ToName: domain.Ounce, ToType: domain.Mass, Factor: 16},
		{FromName: domain.Ounce, FromType: domain.Mass, ToName: domain.Gram, ToType: domain.Mass, Factor: 28.349523125},
		{FromName: domain.Kilogram, FromType: domain.Mass, ToName: domain.Gram, ToType: domain.Mass, Factor: 1000},
		{FromName: domain.Milligram, FromType: domain.Mass, ToName: domain.Gram, ToType: domain.Mass, Factor: 0.001},
		{FromName: domain.Cup, FromType: domain.Volume, ToName: domain.Tablespoon, ToType: domain.Volume, Factor: 16},
		{FromName: domain.Tablespoon, FromType: domain.Volume, ToName: domain.Milliliter, ToType: domain.Volume, Factor: 14.78676478125},
		{FromName: domain.Liter, FromType: domain.Volume, ToName: domain.Milliliter, ToType: domain.Volume, Factor: 1000},
	}, nil
}

func mass(amount float64, name domain.UnitName) domain.UnitOfMeasure {
	return domain.UnitOfMeasure{Amount: amount, Name: name, Type: domain.Mass}
}

func volume(amount float64, name domain.UnitName) domain.UnitOfMeasure {
	return domain.UnitOfMeasure{Amount: amount, Name: name, Type: domain.Volume}
}

func perGrams(n domain.NutrientName, amount, per float64) domain.NutrientFact {
	return domain.NutrientFact{Nutrient: n, QuantityAmount: mass(amount, domain.Gram), QuantityPer: mass(per, domain.Gram)}
}

func pancakes() domain.Recipe {
	return domain.Recipe{
		Name: "Pancakes",
		LineItems: []domain.RecipeLineItem{
			{Ingredient: domain.Ingredient{Name: "flour", Category: "baking"}, Quantity: mass(1, domain.Pound)},
			{Ingredient: domain.Ingredient{Name: "milk", Category: "dairy"}, Quantity: volume(2, domain.Cup)},
		},
	}
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{
		recipes: []domain.Recipe{pancakes()},
		products: map[string][]domain.Product{
			"flour": {
				{
					ID: "flour-a",
					SupplierOffers: []domain.SupplierOffer{
						{Supplier: "Mill Co", Quantity: mass(1, domain.Kilogram), Price: 2.50},
						{Supplier: "Corner Store", Quantity: mass(500, domain.Gram), Price: 1.50},
					},
					NutrientFacts: []domain.NutrientFact{
						perGrams(domain.Carbohydrates, 76, 100),
						perGrams(domain.Protein, 10, 100),
					},
				},
				{
					ID: "flour-b",
					SupplierOffers: []domain.SupplierOffer{
						{Supplier: "Bulk Barn", Quantity: mass(2, domain.Kilogram), Price: 4.40},
					},
					NutrientFacts: []domain.NutrientFact{
						perGrams(domain.Protein, 13, 100),
						perGrams(domain.Carbohydrates, 72, 100),
						perGrams(domain.Fat, 1, 100),
					},
				},
			},
			"milk": {
				{
					ID: "milk-whole",
					SupplierOffers: []domain.SupplierOffer{
						{Supplier: "Dairy Direct", Quantity: volume(1, domain.Liter), Price: 1.20},
						{Supplier: "Corner Store", Quantity: volume(2, domain.Liter), Price: 2.00},
					},
					NutrientFacts: []domain.NutrientFact{
						{Nutrient: domain.Sodium, QuantityAmount: mass(105, domain.Milligram), QuantityPer: volume(250, domain.Milliliter)},
						{Nutrient: domain.Protein, QuantityAmount: mass(8, domain.Gram), QuantityPer: volume(250, domain.Milliliter)},
						{Nutrient: domain.Fat, QuantityAmount: mass(8, domain.Gram), QuantityPer: volume(250, domain.Milliliter)},
					},
				},
			},
		},
	}
}

func setupEngine(t *testing.T, cat *fakeCatalog, opts ...Option) (*Engine, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	ctx := context.Background()
	g, err := units.FromSource(ctx, cat, log)
	require.NoError(t, err)
	return New(cat, cat, g, cat, log, opts...), ctx
}

func nutrientKeys(m *domain.Nutrients) []domain.NutrientName {
	var out []domain.NutrientName
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func TestCalculateRecipeSummaryEndToEnd(t *testing.T) {
	cat := newCatalog()
	eng, ctx := setupEngine(t, cat)

	summary, err := eng.CalculateRecipeSummary(ctx, cat.recipes)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Len())

	got, ok := summary.Get("Pancakes")
	require.True(t, ok)

	// flour: 1 lb = 453.59237 g at 4.40/2000 g from Bulk Barn.
	// milk: 2 cup = 473.176473 ml at 2.00/2000 ml from Corner Store.
	wantCost := 453.59237*0.0022 + 473.176473*0.001
	assert.InDelta(t, wantCost, got.TotalCost, 1e-9)

	assert.Equal(t,
		[]domain.NutrientName{domain.Carbohydrates, domain.Fat, domain.Protein, domain.Sodium},
		nutrientKeys(got.Nutrients))

	want := map[domain.NutrientName]domain.NutrientFact{
		domain.Carbohydrates: perGrams(domain.Carbohydrates, 72, 100),
		domain.Fat:           perGrams(domain.Fat, 9, 100),
		domain.Protein:       perGrams(domain.Protein, 21, 100),
		domain.Sodium: {
			Nutrient:       domain.Sodium,
			QuantityAmount: mass(0.105, domain.Gram),
			QuantityPer:    volume(250, domain.Milliliter),
		},
	}
	for name, w := range want {
		f, ok := got.Nutrients.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, w.QuantityPer, f.QuantityPer, name)
		assert.Equal(t, w.QuantityAmount.Name, f.QuantityAmount.Name, name)
		assert.InDelta(t, w.QuantityAmount.Amount, f.QuantityAmount.Amount, 1e-9, name)
	}
}

func TestCalculateRecipeSummaryKeepsRecipeOrder(t *testing.T) {
	cat := newCatalog()
	eng, ctx := setupEngine(t, cat)

	flourOnly := domain.Recipe{Name: "Roux base", LineItems: pancakes().LineItems[:1]}
	empty := domain.Recipe{Name: "Water"}
	summary, err := eng.CalculateRecipeSummary(ctx, []domain.Recipe{flourOnly, pancakes(), empty})
	require.NoError(t, err)

	var names []string
	for pair := summary.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	assert.Equal(t, []string{"Roux base", "Pancakes", "Water"}, names)

	water, _ := summary.Get("Water")
	assert.Zero(t, water.TotalCost)
	assert.Zero(t, water.Nutrients.Len())
}

func TestCalculateRecipeSummaryFailFast(t *testing.T) {
	cat := newCatalog()
	eng, ctx := setupEngine(t, cat)

	broken := pancakes()
	broken.Name = "Saffron Pancakes"
	broken.LineItems = append(broken.LineItems[:1], domain.RecipeLineItem{
		Ingredient: domain.Ingredient{Name: "saffron"},
		Quantity:   mass(1, domain.Gram),
	})

	summary, err := eng.CalculateRecipeSummary(ctx, []domain.Recipe{pancakes(), broken})
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, domain.ErrMissingIngredientProducts)

	var missing *domain.MissingIngredientProductsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "saffron", missing.Ingredient)
}

func TestCalculateRecipeSummaryCancelled(t *testing.T) {
	eng, ctx := setupEngine(t, newCatalog())
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	summary, err := eng.CalculateRecipeSummary(ctx, []domain.Recipe{pancakes()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, summary)
}

func TestCalculateRecipeSummaryErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fakeCatalog)
		wantErr error
	}{
		{
			name: "no offers",
			mutate: func(c *fakeCatalog) {
				c.products["milk"] = []domain.Product{{ID: "milk-unsold"}}
			},
			wantErr: domain.ErrNoSupplierFound,
		},
		{
			name: "offer unit cannot reach base",
			mutate: func(c *fakeCatalog) {
				c.products["milk"][0].SupplierOffers[0].Quantity = volume(1, domain.FluidOunce)
			},
			wantErr: domain.ErrConversionNotFound,
		},
		{
			name: "line item unit cannot reach base",
			mutate: func(c *fakeCatalog) {
				c.recipes[0].LineItems[1].Quantity = volume(1, domain.Teaspoon)
			},
			wantErr: domain.ErrConversionNotFound,
		},
		{
			name: "product source failure",
			mutate: func(c *fakeCatalog) {
				c.productsErr = domain.ErrNotFound
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := newCatalog()
			tt.mutate(cat)
			eng, ctx := setupEngine(t, cat)

			summary, err := eng.CalculateRecipeSummary(ctx, cat.recipes)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, summary)
		})
	}
}

type flatCosts struct{}

func (flatCosts) CostPerBaseUnit(context.Context, domain.SupplierOffer) (float64, error) {
	return 0.01, nil
}

func TestWithCostNormalizer(t *testing.T) {
	cat := newCatalog()
	eng, ctx := setupEngine(t, cat, WithCostNormalizer(flatCosts{}))

	summary, err := eng.CalculateRecipeSummary(ctx, cat.recipes)
	require.NoError(t, err)

	got, _ := summary.Get("Pancakes")
	assert.InDelta(t, (453.59237+473.176473)*0.01, got.TotalCost, 1e-9)

	// All offers tie, so the first offer of the first product is used.
	carbs, _ := got.Nutrients.Get(domain.Carbohydrates)
	assert.InDelta(t, 76, carbs.QuantityAmount.Amount, 1e-9)
}

func TestRun(t *testing.T) {
	cat := newCatalog()
	second := pancakes()
	second.Name = "Crepes"
	cat.recipes = append(cat.recipes, second)
	eng, ctx := setupEngine(t, cat)

	tests := []struct {
		name    string
		names   []string
		want    []string
		wantErr error
	}{
		{"all", nil, []string{"Pancakes", "Crepes"}, nil},
		{"filtered keeps source order", []string{"Crepes", "Pancakes"}, []string{"Pancakes", "Crepes"}, nil},
		{"single", []string{"Crepes"}, []string{"Crepes"}, nil},
		{"unknown", []string{"Crepes", "Waffles"}, nil, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := eng.Run(ctx, tt.names...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			var got []string
			for pair := summary.Oldest(); pair != nil; pair = pair.Next() {
				got = append(got, pair.Key)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
