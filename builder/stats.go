// File: stats.go
// Role: Degree statistics and connectivity diagnostics.
// AI-HINT (file):
//   - DegreeSummary.Distribution is indexed by node id, not sorted.
//   - Components uses gonum's topo package over a throwaway simple.UndirectedGraph.

package builder

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/episim/core"
)

// DegreeSummary summarises a degree sequence.
type DegreeSummary struct {
	Min          int     `json:"min"`
	Max          int     `json:"max"`
	Avg          float64 `json:"avg"`
	StdDev       float64 `json:"std_dev"`
	Distribution []int   `json:"distribution"`
}

// DegreeStats computes min, max, mean and sample standard deviation of the
// degree sequence, plus the sequence itself. An empty or nil graph yields
// the zero value with an empty Distribution.
//
// Complexity: O(V).
func DegreeStats(g *core.Graph) DegreeSummary {
	if g == nil || g.NodeCount() == 0 {
		return DegreeSummary{Distribution: []int{}}
	}

	degrees := g.Degrees()
	xs := make([]float64, len(degrees))
	out := DegreeSummary{Min: degrees[0], Max: degrees[0], Distribution: degrees}
	for i, d := range degrees {
		xs[i] = float64(d)
		if d < out.Min {
			out.Min = d
		}
		if d > out.Max {
			out.Max = d
		}
	}

	if len(xs) > 1 {
		out.Avg, out.StdDev = stat.MeanStdDev(xs, nil)
	} else {
		out.Avg = xs[0]
	}

	return out
}

// DegreeHistogram returns degree → number of nodes with that degree.
//
// Complexity: O(V).
func DegreeHistogram(g *core.Graph) map[int]int {
	hist := make(map[int]int)
	if g == nil {
		return hist
	}
	for _, d := range g.Degrees() {
		hist[d]++
	}

	return hist
}

// Components returns the connected components of g. Each component lists its
// node ids ascending; components are ordered by their smallest id.
//
// Complexity: O(V+E).
func Components(g *core.Graph) [][]int {
	if g == nil || g.NodeCount() == 0 {
		return [][]int{}
	}

	ug := simple.NewUndirectedGraph()
	for id := 0; id < g.NodeCount(); id++ {
		ug.AddNode(simple.Node(id))
	}
	for _, e := range g.Edges() {
		ug.SetEdge(simple.Edge{F: simple.Node(e.From), T: simple.Node(e.To)})
	}

	raw := topo.ConnectedComponents(ug)
	out := make([][]int, len(raw))
	for i, comp := range raw {
		ids := make([]int, len(comp))
		for j, n := range comp {
			ids[j] = int(n.ID())
		}
		sort.Ints(ids)
		out[i] = ids
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })

	return out
}
