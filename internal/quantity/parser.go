// Package quantity parses human-written quantities such as "2 cups",
// "250 g" or "1 1/2 tbsp" into units of measure.
package quantity

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

// Parse errors.
var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrAliasConflict   = errors.New("unit alias already registered")
)

// Parser resolves unit aliases using an ordered list of patterns.
// A unit text may carry a type qualifier, as in "2 cup (mass)", which
// restricts resolution to units of that type. Safe for concurrent use.
type Parser struct {
	mu    sync.RWMutex
	log   *logger.Logger
	rules []unitRule
	known map[domain.UnitKey]bool
}

type unitRule struct {
	regex *regexp.Regexp
	unit  domain.UnitKey
}

func mass(n domain.UnitName) domain.UnitKey   { return domain.UnitKey{Name: n, Type: domain.Mass} }
func volume(n domain.UnitName) domain.UnitKey { return domain.UnitKey{Name: n, Type: domain.Volume} }
func count(n domain.UnitName) domain.UnitKey  { return domain.UnitKey{Name: n, Type: domain.Count} }

// NewParser creates a parser that knows the built-in units.
func NewParser(log *logger.Logger) *Parser {
	p := &Parser{log: log, known: make(map[domain.UnitKey]bool)}
	p.rules = []unitRule{
		{regexp.MustCompile(`(?i)^(mg|milligrams?|milligrammes?)$`), mass(domain.Milligram)},
		{regexp.MustCompile(`(?i)^(g|gr|grams?|grammes?)$`), mass(domain.Gram)},
		{regexp.MustCompile(`(?i)^(kg|kgs|kilos?|kilograms?)$`), mass(domain.Kilogram)},
		{regexp.MustCompile(`(?i)^(oz|ounces?)$`), mass(domain.Ounce)},
		{regexp.MustCompile(`(?i)^(lbs?|pounds?)$`), mass(domain.Pound)},
		{regexp.MustCompile(`(?i)^(ml|milliliters?|millilitres?)$`), volume(domain.Milliliter)},
		{regexp.MustCompile(`(?i)^(l|liters?|litres?)$`), volume(domain.Liter)},
		{regexp.MustCompile(`(?i)^(tsp|teaspoons?)$`), volume(domain.Teaspoon)},
		{regexp.MustCompile(`(?i)^(tbsp|tbs|tablespoons?)$`), volume(domain.Tablespoon)},
		{regexp.MustCompile(`(?i)^(c|cups?)$`), volume(domain.Cup)},
		{regexp.MustCompile(`(?i)^(fl\.?\s?oz|fluid\s+ounces?)$`), volume(domain.FluidOunce)},
		{regexp.MustCompile(`(?i)^(each|ea|pcs?|pieces?)$`), count(domain.Each)},
		{regexp.MustCompile(`(?i)^(dozen|doz)$`), count(domain.Dozen)},
	}
	for _, rule := range p.rules {
		p.known[rule.unit] = true
	}
	return p
}

// Register makes each alias (matched case-insensitively) resolve to unit.
// Registering an alias that already resolves to unit is a no-op; one that
// resolves to a different unit is ErrAliasConflict.
func (p *Parser) Register(unit domain.UnitKey, aliases ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.known[unit] = true
	for _, alias := range aliases {
		alias = normalizeSpace(alias)
		if alias == "" {
			continue
		}
		if existing, ok := p.match(alias); ok {
			if existing != unit {
				return fmt.Errorf("%w: %q is %s, not %s", ErrAliasConflict, alias, existing, unit)
			}
			continue
		}
		p.rules = append(p.rules, unitRule{
			regex: regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(alias) + `$`),
			unit:  unit,
		})
		p.log.Debug("registered unit alias %q for %s", alias, unit)
	}
	return nil
}

// Define makes unit resolvable by its own name. When the bare name already
// belongs to a unit of another type, only the qualified form
// "name (type)" resolves to unit and Define reports false.
func (p *Parser) Define(unit domain.UnitKey) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.known[unit] = true
	name := normalizeSpace(string(unit.Name))
	if existing, ok := p.match(name); ok {
		if existing != unit {
			p.log.Debug("%q already names %s; use %q for %s", name, existing, qualified(unit), unit)
			return false
		}
		return true
	}
	p.rules = append(p.rules, unitRule{
		regex: regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(name) + `$`),
		unit:  unit,
	})
	p.log.Debug("registered unit %s", unit)
	return true
}

// qualifierPattern splits "cup (mass)" into name and type.
var qualifierPattern = regexp.MustCompile(`^(.+?)\s*\(\s*([^()]+?)\s*\)$`)

// Unit resolves a unit alias, optionally qualified with a unit type.
func (p *Parser) Unit(alias string) (domain.UnitKey, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	alias = normalizeSpace(alias)
	if m := qualifierPattern.FindStringSubmatch(alias); m != nil {
		unitType := domain.UnitType(strings.ToLower(m[2]))
		if unit, ok := p.matchType(m[1], unitType); ok {
			return unit, nil
		}
		return domain.UnitKey{}, fmt.Errorf("%w: %q", ErrUnknownUnit, alias)
	}

	unit, ok := p.match(alias)
	if !ok {
		return domain.UnitKey{}, fmt.Errorf("%w: %q", ErrUnknownUnit, alias)
	}
	return unit, nil
}

// amountPattern captures a mixed number ("1 1/2"), a fraction ("3/4") or
// a decimal ("2", ".5", "2.25") followed by the unit text.
var amountPattern = regexp.MustCompile(`^\s*(\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d*)?|\.\d+)\s*(.*?)\s*$`)

// Parse converts input such as "1 1/2 cups" into a UnitOfMeasure.
func (p *Parser) Parse(input string) (domain.UnitOfMeasure, error) {
	m := amountPattern.FindStringSubmatch(input)
	if m == nil {
		return domain.UnitOfMeasure{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, input)
	}

	amount, err := parseAmount(normalizeSpace(m[1]))
	if err != nil {
		return domain.UnitOfMeasure{}, fmt.Errorf("%w: %q: %v", ErrInvalidQuantity, input, err)
	}
	if m[2] == "" {
		return domain.UnitOfMeasure{}, fmt.Errorf("%w: %q has no unit", ErrInvalidQuantity, input)
	}

	unit, err := p.Unit(m[2])
	if err != nil {
		return domain.UnitOfMeasure{}, err
	}
	return domain.UnitOfMeasure{Amount: amount, Name: unit.Name, Type: unit.Type}, nil
}

func (p *Parser) match(alias string) (domain.UnitKey, bool) {
	for _, rule := range p.rules {
		if rule.regex.MatchString(alias) {
			return rule.unit, true
		}
	}
	return domain.UnitKey{}, false
}

// matchType resolves name among units of unitType: a defined unit with
// exactly that name first, then any alias of that type.
func (p *Parser) matchType(name string, unitType domain.UnitType) (domain.UnitKey, bool) {
	for unit := range p.known {
		if unit.Type == unitType && strings.EqualFold(string(unit.Name), name) {
			return unit, true
		}
	}
	for _, rule := range p.rules {
		if rule.unit.Type == unitType && rule.regex.MatchString(name) {
			return rule.unit, true
		}
	}
	return domain.UnitKey{}, false
}

func qualified(unit domain.UnitKey) string {
	return fmt.Sprintf("%s (%s)", unit.Name, unit.Type)
}

func parseAmount(s string) (float64, error) {
	whole, frac, mixed := strings.Cut(s, " ")
	if !mixed {
		if strings.Contains(s, "/") {
			return parseFraction(s)
		}
		return strconv.ParseFloat(s, 64)
	}

	w, err := strconv.ParseFloat(whole, 64)
	if err != nil {
		return 0, err
	}
	f, err := parseFraction(strings.TrimSpace(frac))
	if err != nil {
		return 0, err
	}
	return w + f, nil
}

func parseFraction(s string) (float64, error) {
	num, den, _ := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, errors.New("zero denominator")
	}
	return n / d, nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
