package units

import "github.com/hammamikhairi/ottocost/internal/domain"

// hop records how a vertex was first reached.
type hop struct {
	parent domain.UnitKey
	factor float64
	depth  int
}

// Tree is a breadth-first search tree over the conversion graph. Every
// reached vertex other than Source keeps the edge that first reached it.
type Tree struct {
	Source domain.UnitKey
	order  []domain.UnitKey
	hops   map[domain.UnitKey]hop
}

// Order returns the reached vertices in visit order, Source first.
func (t *Tree) Order() []domain.UnitKey {
	out := make([]domain.UnitKey, len(t.order))
	copy(out, t.order)
	return out
}

// Reached reports whether k was reached from Source.
func (t *Tree) Reached(k domain.UnitKey) bool {
	if k == t.Source {
		return true
	}
	_, ok := t.hops[k]
	return ok
}

// Hops returns the number of edges between Source and k, or -1 if k was
// not reached.
func (t *Tree) Hops(k domain.UnitKey) int {
	if k == t.Source {
		return 0
	}
	h, ok := t.hops[k]
	if !ok {
		return -1
	}
	return h.depth
}

// FactorTo multiplies the edge factors on the tree path from Source to k.
func (t *Tree) FactorTo(k domain.UnitKey) (float64, bool) {
	if !t.Reached(k) {
		return 0, false
	}
	factor := 1.0
	for cur := k; cur != t.Source; {
		h := t.hops[cur]
		factor *= h.factor
		cur = h.parent
	}
	return factor, true
}

// PathTo returns the vertices from Source to k.
func (t *Tree) PathTo(k domain.UnitKey) ([]domain.UnitKey, bool) {
	if !t.Reached(k) {
		return nil, false
	}
	// build reversed path
	path := []domain.UnitKey{}
	for cur := k; ; {
		path = append(path, cur)
		if cur == t.Source {
			break
		}
		cur = t.hops[cur].parent
	}
	// reverse to get source → k
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// walker encapsulates mutable BFS state.
type walker struct {
	g      *Graph
	target domain.UnitKey
	stop   bool
	queue  []domain.UnitKey
	tree   *Tree
}

// walk runs a breadth-first search from source. If stop is set the
// search ends as soon as target is reached.
func (g *Graph) walk(source, target domain.UnitKey, stop bool) *Tree {
	w := &walker{
		g:      g,
		target: target,
		stop:   stop,
		tree: &Tree{
			Source: source,
			hops:   make(map[domain.UnitKey]hop),
		},
	}
	w.tree.order = append(w.tree.order, source)
	w.queue = append(w.queue, source)
	w.loop()
	return w.tree
}

// loop processes the queue until it is empty or the target is reached.
func (w *walker) loop() {
	for len(w.queue) > 0 {
		cur := w.dequeue()
		depth := w.tree.Hops(cur)
		for _, e := range w.g.out[cur] {
			next := e.To()
			if w.tree.Reached(next) {
				continue
			}
			w.enqueue(next, hop{parent: cur, factor: e.Factor, depth: depth + 1})
			if w.stop && next == w.target {
				return
			}
		}
	}
}

func (w *walker) dequeue() domain.UnitKey {
	k := w.queue[0]
	w.queue = w.queue[1:]
	return k
}

// enqueue marks k reached through h and schedules it for expansion.
func (w *walker) enqueue(k domain.UnitKey, h hop) {
	w.tree.hops[k] = h
	w.tree.order = append(w.tree.order, k)
	w.queue = append(w.queue, k)
}
