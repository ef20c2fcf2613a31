// Package catalog provides the built-in recipe, product and unit data.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
	"github.com/hammamikhairi/ottocost/internal/quantity"
)

//go:embed data/catalog.yaml
var builtinData []byte

// Compile-time interface checks.
var (
	_ domain.RecipeSource  = (*MemorySource)(nil)
	_ domain.ProductSource = (*MemorySource)(nil)
	_ domain.UnitSource    = (*MemorySource)(nil)
)

// MemorySource holds a decoded catalog in memory. Safe for concurrent
// reads; callers get copies and cannot modify the stored data.
type MemorySource struct {
	mu       sync.RWMutex
	recipes  []domain.Recipe
	products map[string][]domain.Product
	edges    []domain.ConversionEdge
	bases    map[domain.UnitType]domain.UnitOfMeasure
	parser   *quantity.Parser
	log      *logger.Logger
}

// NewMemorySource creates a source preloaded with the built-in catalog.
func NewMemorySource(log *logger.Logger) (*MemorySource, error) {
	return Load(builtinData, log)
}

// Load decodes and validates a YAML catalog.
func Load(data []byte, log *logger.Logger) (*MemorySource, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding: %v", domain.ErrInvalidCatalog, err)
	}
	if err := validator.New().Struct(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	src := &MemorySource{
		products: make(map[string][]domain.Product),
		bases:    make(map[domain.UnitType]domain.UnitOfMeasure),
		parser:   quantity.NewParser(log),
		log:      log,
	}
	if err := src.seed(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	return src, nil
}

// Parser returns the quantity parser that knows every unit of the catalog.
func (s *MemorySource) Parser() *quantity.Parser {
	return s.parser
}

// Recipes returns all recipes in catalog order.
func (s *MemorySource) Recipes(ctx context.Context) ([]domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all recipes, count=%d", len(s.recipes))

	out := make([]domain.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, cloneRecipe(r))
	}
	return out, nil
}

// ProductsForIngredient returns the products sold for an ingredient, in
// catalog order. Products are keyed by ingredient name alone; Category only
// describes the line item and does not narrow the lookup. Unknown
// ingredients yield an empty slice.
func (s *MemorySource) ProductsForIngredient(ctx context.Context, ingredient domain.Ingredient) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := s.products[ingredient.Name]
	s.log.Debug("products for %q: %d", ingredient.Name, len(products))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

// ConversionEdges returns the conversion edges in catalog order.
func (s *MemorySource) ConversionEdges(ctx context.Context) ([]domain.ConversionEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ConversionEdge, len(s.edges))
	copy(out, s.edges)
	return out, nil
}

// BaseUnit returns the base unit declared for unitType.
func (s *MemorySource) BaseUnit(ctx context.Context, unitType domain.UnitType) (domain.UnitOfMeasure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	base, ok := s.bases[unitType]
	if !ok {
		return domain.UnitOfMeasure{}, fmt.Errorf("%w: %q", domain.ErrUnknownUnitType, unitType)
	}
	return base, nil
}

// seed converts the decoded document. Units named by base units and
// conversions are defined in the parser first so quantities may use their
// canonical names. A name shared by units of different types resolves to
// the first one bare; the others need a type qualifier ("2 cup (mass)").
func (s *MemorySource) seed(doc *document) error {
	for _, u := range doc.BaseUnits {
		key := u.key()
		if _, dup := s.bases[key.Type]; dup {
			return fmt.Errorf("duplicate base unit for %s", key.Type)
		}
		s.parser.Define(key)
		s.bases[key.Type] = domain.UnitOfMeasure{Amount: 1, Name: key.Name, Type: key.Type}
	}

	for _, c := range doc.Conversions {
		from, to := c.From.key(), c.To.key()
		s.parser.Define(from)
		s.parser.Define(to)
		s.edges = append(s.edges, domain.ConversionEdge{
			FromName: from.Name, FromType: from.Type,
			ToName: to.Name, ToType: to.Type,
			Factor: c.Factor,
		})
	}

	for _, rd := range doc.Recipes {
		r := domain.Recipe{Name: rd.Name}
		for _, li := range rd.LineItems {
			q, err := s.parser.Parse(li.Quantity)
			if err != nil {
				return fmt.Errorf("recipe %q, %s: %w", rd.Name, li.Ingredient, err)
			}
			r.LineItems = append(r.LineItems, domain.RecipeLineItem{
				Ingredient: domain.Ingredient{Name: li.Ingredient, Category: li.Category},
				Quantity:   q,
			})
		}
		s.recipes = append(s.recipes, r)
	}

	for _, pd := range doc.Products {
		p, err := s.product(pd)
		if err != nil {
			return fmt.Errorf("product %q: %w", pd.ID, err)
		}
		s.products[p.Ingredient] = append(s.products[p.Ingredient], p)
	}

	s.log.Debug("seeded %d recipes, %d ingredients, %d conversions", len(s.recipes), len(s.products), len(s.edges))
	return nil
}

func (s *MemorySource) product(pd productDoc) (domain.Product, error) {
	p := domain.Product{ID: pd.ID, Name: pd.Name, Ingredient: pd.Ingredient}
	for _, od := range pd.Offers {
		q, err := s.parser.Parse(od.Quantity)
		if err != nil {
			return domain.Product{}, fmt.Errorf("offer from %s: %w", od.Supplier, err)
		}
		p.SupplierOffers = append(p.SupplierOffers, domain.SupplierOffer{Supplier: od.Supplier, Quantity: q, Price: od.Price})
	}
	for _, nd := range pd.Nutrients {
		amount, err := s.parser.Parse(nd.Amount)
		if err != nil {
			return domain.Product{}, fmt.Errorf("%s amount: %w", nd.Nutrient, err)
		}
		per, err := s.parser.Parse(nd.Per)
		if err != nil {
			return domain.Product{}, fmt.Errorf("%s basis: %w", nd.Nutrient, err)
		}
		p.NutrientFacts = append(p.NutrientFacts, domain.NutrientFact{
			Nutrient:       domain.NutrientName(nd.Nutrient),
			QuantityAmount: amount,
			QuantityPer:    per,
		})
	}
	return p, nil
}

func (u unitDoc) key() domain.UnitKey {
	return domain.UnitKey{Name: domain.UnitName(u.Name), Type: domain.UnitType(u.Type)}
}

// cloneRecipe copies r so callers never share the stored line items.
func cloneRecipe(r domain.Recipe) domain.Recipe {
	r.LineItems = append([]domain.RecipeLineItem(nil), r.LineItems...)
	return r
}

// cloneProduct copies p and its offer and fact slices.
func cloneProduct(p domain.Product) domain.Product {
	p.SupplierOffers = append([]domain.SupplierOffer(nil), p.SupplierOffers...)
	p.NutrientFacts = append([]domain.NutrientFact(nil), p.NutrientFacts...)
	return p
}
