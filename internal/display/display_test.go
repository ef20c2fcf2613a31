package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ottocost/internal/domain"
)

func grams(a float64) domain.UnitOfMeasure {
	return domain.UnitOfMeasure{Amount: a, Name: domain.Gram, Type: domain.Mass}
}

func sampleSummary() *domain.Summary {
	pancakes := domain.NewNutrients()
	pancakes.Set(domain.Carbohydrates, domain.NutrientFact{Nutrient: domain.Carbohydrates, QuantityAmount: grams(72), QuantityPer: grams(100)})
	pancakes.Set(domain.Sodium, domain.NutrientFact{Nutrient: domain.Sodium, QuantityAmount: grams(0.105), QuantityPer: domain.UnitOfMeasure{Amount: 250, Name: domain.Milliliter, Type: domain.Volume}})

	s := domain.NewSummary()
	s.Set("Pancakes", domain.RecipeCost{TotalCost: 0.8492, Nutrients: pancakes})
	s.Set("Water", domain.RecipeCost{TotalCost: 0, Nutrients: domain.NewNutrients()})
	return s
}

func TestText(t *testing.T) {
	out := Text(sampleSummary())

	assert.Contains(t, out, "Pancakes")
	assert.Contains(t, out, "$0.85")
	assert.Contains(t, out, "72 gram")
	assert.Contains(t, out, "per 100 gram")
	assert.Contains(t, out, "0.105 gram")
	assert.Contains(t, out, "per 250 milliliter")
	assert.Contains(t, out, "no nutrient data")

	assert.Less(t, strings.Index(out, "Carbohydrates"), strings.Index(out, "Sodium"))
	assert.Less(t, strings.Index(out, "Pancakes"), strings.Index(out, "Water"))
}

func TestTextEmpty(t *testing.T) {
	assert.Contains(t, Text(nil), "no recipes")
	assert.Contains(t, Text(domain.NewSummary()), "no recipes")
}

func TestYAML(t *testing.T) {
	out, err := YAML(sampleSummary())
	require.NoError(t, err)

	var got report
	require.NoError(t, yaml.Unmarshal(out, &got))
	require.Len(t, got.Recipes, 2)

	assert.Equal(t, "Pancakes", got.Recipes[0].Name)
	assert.InDelta(t, 0.8492, got.Recipes[0].TotalCost, 1e-12)
	assert.Equal(t, []nutrientReport{
		{Nutrient: "Carbohydrates", Amount: "72 gram", Per: "100 gram"},
		{Nutrient: "Sodium", Amount: "0.105 gram", Per: "250 milliliter"},
	}, got.Recipes[0].Nutrients)

	assert.Equal(t, "Water", got.Recipes[1].Name)
	assert.Empty(t, got.Recipes[1].Nutrients)
}

func TestYAMLEmpty(t *testing.T) {
	out, err := YAML(nil)
	require.NoError(t, err)
	assert.Equal(t, "recipes: []\n", string(out))
}

func TestConversion(t *testing.T) {
	from := domain.UnitOfMeasure{Amount: 2, Name: domain.Cup, Type: domain.Volume}
	to := domain.UnitOfMeasure{Amount: 473.176473, Name: domain.Milliliter, Type: domain.Volume}
	path := []domain.UnitKey{from.Key(), {Name: domain.Tablespoon, Type: domain.Volume}, {Name: domain.Teaspoon, Type: domain.Volume}, to.Key()}

	out := Conversion(from, to, path, 236.5882365)
	assert.Contains(t, out, "2 cup")
	assert.Contains(t, out, "473.1765 milliliter")
	assert.Contains(t, out, "via cup → tablespoon → teaspoon → milliliter")
	assert.Contains(t, out, "factor 236.5882365")

	same := Conversion(from, from, []domain.UnitKey{from.Key()}, 1)
	assert.NotContains(t, same, "via")
	assert.NotContains(t, same, "factor")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.3333 gram", formatAmount(grams(1.0/3)))
	assert.Equal(t, "1250 gram", formatAmount(grams(1250)))
	assert.Equal(t, "12345.5 gram", formatAmount(grams(12345.5)))
}

func TestError(t *testing.T) {
	assert.Contains(t, Error(errors.New("boom")), "error: boom")
}

func TestBanner(t *testing.T) {
	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")

	narrow := Banner(0)
	assert.Equal(t, len(lines), strings.Count(narrow, "\n"))
	assert.Contains(t, narrow, lines[0])

	wide := Banner(200)
	for _, l := range strings.Split(strings.TrimRight(wide, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(l, "     "), "expected centred line, got %q", l)
	}
}
