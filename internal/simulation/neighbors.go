package simulation

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// IndexKind selects how the contagion pass finds agents near a source.
type IndexKind uint8

const (
	// BruteForce scans every agent for every source.
	BruteForce IndexKind = iota
	// KDTree queries a k-d tree rebuilt once per contagion pass.
	KDTree
)

func (k IndexKind) valid() bool { return k == BruteForce || k == KDTree }

// String returns the index name.
func (k IndexKind) String() string {
	switch k {
	case BruteForce:
		return "brute"
	case KDTree:
		return "kdtree"
	default:
		return fmt.Sprintf("index(%d)", uint8(k))
	}
}

// ParseIndexKind maps "brute" or "kdtree" to an IndexKind.
func ParseIndexKind(s string) (IndexKind, error) {
	switch s {
	case "", "brute", "bruteforce":
		return BruteForce, nil
	case "kdtree", "kd":
		return KDTree, nil
	default:
		return 0, fmt.Errorf("unknown neighbor index %q (valid: brute, kdtree)", s)
	}
}

// neighborIndex finds contact candidates for a source agent.
// Within must return indices in ascending order, excluding i itself, of all
// agents whose distance to agent i is strictly below radius. That ordering
// keeps the draw sequence identical across implementations.
type neighborIndex interface {
	Build(agents []Agent)
	Within(dst []int, agents []Agent, i int, radius float64) []int
}

func newNeighborIndex(kind IndexKind) neighborIndex {
	if kind == KDTree {
		return &kdIndex{}
	}
	return bruteIndex{}
}

func inContact(agents []Agent, i, j int, radius float64) bool {
	return agents[i].Position.Distance(agents[j].Position) < radius
}

type bruteIndex struct{}

func (bruteIndex) Build([]Agent) {}

func (bruteIndex) Within(dst []int, agents []Agent, i int, radius float64) []int {
	for j := range agents {
		if j != i && inContact(agents, i, j, radius) {
			dst = append(dst, j)
		}
	}
	return dst
}

// kdIndex wraps a gonum k-d tree over agent positions.
type kdIndex struct {
	tree   *kdtree.Tree
	points kdPoints
}

func (k *kdIndex) Build(agents []Agent) {
	k.points = k.points[:0]
	for i := range agents {
		p := agents[i].Position
		k.points = append(k.points, kdPoint{idx: i, pos: [2]float64{p.X, p.Y}})
	}
	k.tree = kdtree.New(k.points, false)
}

func (k *kdIndex) Within(dst []int, agents []Agent, i int, radius float64) []int {
	if k.tree == nil {
		return dst
	}
	p := agents[i].Position
	query := kdPoint{idx: i, pos: [2]float64{p.X, p.Y}}

	// The keeper works on squared distances; widen slightly and re-check
	// with the exact predicate so results match the brute-force scan.
	bound := radius * (1 + 1e-9)
	keep := kdtree.NewDistKeeper(bound * bound)
	k.tree.NearestSet(keep, query)

	start := len(dst)
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		j := c.Comparable.(kdPoint).idx
		if j != i && inContact(agents, i, j, radius) {
			dst = append(dst, j)
		}
	}
	slices.Sort(dst[start:])
	return dst
}

type kdPoint struct {
	idx int
	pos [2]float64
}

func (p kdPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(kdPoint)
	return p.pos[d] - q.pos[d]
}

func (p kdPoint) Dims() int { return 2 }

// Distance is the squared Euclidean distance, as the tree expects.
func (p kdPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(kdPoint)
	dx := p.pos[0] - q.pos[0]
	dy := p.pos[1] - q.pos[1]
	return dx*dx + dy*dy
}

type kdPoints []kdPoint

func (p kdPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p kdPoints) Len() int                              { return len(p) }
func (p kdPoints) Pivot(d kdtree.Dim) int                { return kdPlane{Dim: d, points: p}.Pivot() }
func (p kdPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

type kdPlane struct {
	kdtree.Dim
	points kdPoints
}

func (p kdPlane) Len() int { return len(p.points) }
func (p kdPlane) Less(i, j int) bool {
	return p.points[i].pos[p.Dim] < p.points[j].pos[p.Dim]
}
func (p kdPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	return kdPlane{Dim: p.Dim, points: p.points[start:end]}
}
func (p kdPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
