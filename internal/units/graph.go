// Package units converts quantities between units of measure using a
// directed graph of known conversion factors.
//
// Each ConversionEdge is a directed, factor-weighted arc between two
// (name, type) vertices. Convert runs a breadth-first search from the
// quantity's unit, scanning each vertex's outgoing edges in the order the
// edges were supplied, and multiplies the factors along the first path
// that reaches the target. The path therefore has the fewest hops; among
// equally short paths the one discovered first in input order wins. It is
// not necessarily the path with the smallest rounding error.
//
// A Graph is immutable once built and safe for concurrent use.
package units

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

// Converter converts a quantity into another unit.
type Converter interface {
	Convert(from domain.UnitOfMeasure, toName domain.UnitName, toType domain.UnitType) (domain.UnitOfMeasure, error)
}

// Compile-time interface check.
var _ Converter = (*Graph)(nil)

// Graph is a directed conversion graph.
type Graph struct {
	out   map[domain.UnitKey][]domain.ConversionEdge
	edges int
	cache TreeCache
	log   *logger.Logger
}

// NewGraph builds a graph from edges. Outgoing edges keep their relative
// input order, which fixes the search order.
func NewGraph(edges []domain.ConversionEdge, log *logger.Logger, opts ...Option) *Graph {
	g := &Graph{
		out:   make(map[domain.UnitKey][]domain.ConversionEdge),
		edges: len(edges),
		log:   log,
	}
	for _, e := range edges {
		from := e.From()
		g.out[from] = append(g.out[from], e)
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log.Debug("conversion graph built: %d units with outgoing edges, %d edges", len(g.out), g.edges)
	return g
}

// FromSource builds a graph from the conversion edges of src.
func FromSource(ctx context.Context, src domain.UnitSource, log *logger.Logger, opts ...Option) (*Graph, error) {
	edges, err := src.ConversionEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading conversion edges: %w", err)
	}
	return NewGraph(edges, log, opts...), nil
}

// Len returns the number of edges in the graph.
func (g *Graph) Len() int {
	return g.edges
}

// Convert expresses from in the unit (toName, toType). Converting to the
// unit from is already in returns from unchanged without searching.
// Returns a *domain.ConversionNotFoundError if no path exists.
func (g *Graph) Convert(from domain.UnitOfMeasure, toName domain.UnitName, toType domain.UnitType) (domain.UnitOfMeasure, error) {
	if from.Name == toName && from.Type == toType {
		return from, nil
	}

	target := domain.UnitKey{Name: toName, Type: toType}
	factor, hops, ok := g.search(from.Key(), target)
	if !ok {
		return domain.UnitOfMeasure{}, &domain.ConversionNotFoundError{From: from, ToName: toName, ToType: toType}
	}

	g.log.Debug("converted %s to %s via %d hop(s), factor %g", from, target, hops, factor)
	return domain.UnitOfMeasure{
		Amount: from.Amount * factor,
		Name:   toName,
		Type:   toType,
	}, nil
}

// Factor returns the composed factor that converts an amount in from into
// an amount in to.
func (g *Graph) Factor(from, to domain.UnitKey) (float64, error) {
	if from == to {
		return 1, nil
	}
	factor, _, ok := g.search(from, to)
	if !ok {
		return 0, notFound(from, to)
	}
	return factor, nil
}

// Path returns the units visited by the conversion from → to, both ends
// included.
func (g *Graph) Path(from, to domain.UnitKey) ([]domain.UnitKey, error) {
	if from == to {
		return []domain.UnitKey{from}, nil
	}
	tree := g.tree(from, to)
	path, ok := tree.PathTo(to)
	if !ok {
		return nil, notFound(from, to)
	}
	return path, nil
}

// search returns the composed factor and hop count from source to target.
func (g *Graph) search(source, target domain.UnitKey) (float64, int, bool) {
	tree := g.tree(source, target)
	factor, ok := tree.FactorTo(target)
	if !ok {
		return 0, 0, false
	}
	return factor, tree.Hops(target), true
}

// tree returns a search tree rooted at source that contains target if
// target is reachable. With a cache the whole reachable set is explored
// once and reused; otherwise the search stops at target.
func (g *Graph) tree(source, target domain.UnitKey) *Tree {
	if g.cache == nil {
		return g.walk(source, target, true)
	}
	if t, ok := g.cache.Load(source); ok {
		return t
	}
	t := g.walk(source, target, false)
	g.cache.Save(source, t)
	return t
}

func notFound(from, to domain.UnitKey) error {
	return &domain.ConversionNotFoundError{
		From:   domain.UnitOfMeasure{Amount: 1, Name: from.Name, Type: from.Type},
		ToName: to.Name,
		ToType: to.Type,
	}
}
