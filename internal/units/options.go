package units

import "github.com/hammamikhairi/ottocost/internal/domain"

// TreeCache stores search trees by their source unit.
// storage.MemoryStore[domain.UnitKey, *Tree] satisfies it.
type TreeCache interface {
	Load(source domain.UnitKey) (*Tree, bool)
	Save(source domain.UnitKey, tree *Tree)
}

// Option configures a Graph.
type Option func(*Graph)

// WithCache keeps the full search tree of every source unit queried and
// answers later queries from the same source without searching again.
// Results are identical to the uncached search. The cache must not be
// shared with a graph built from different edges.
func WithCache(cache TreeCache) Option {
	return func(g *Graph) {
		g.cache = cache
	}
}
