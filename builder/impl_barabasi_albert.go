// SPDX-License-Identifier: MIT
// Package: episim/builder
//
// impl_barabasi_albert.go - implementation of BarabasiAlbert(n, m) constructor.
//
// Canonical model:
//   - Core: nodes 0..m-1, no edges among them.
//   - Growth: node s = m..n-1 links to the current target set (m distinct ids).
//     After linking, every endpoint of the new edges is appended to the
//     repeated-endpoint list, so an id appears there once per incident edge.
//     The next target set is m distinct draws from that list, which makes the
//     selection probability proportional to degree.
//
// Contract:
//   - n ≥ 1 and 1 ≤ m < n (else ErrConfiguration).
//   - cfg.rng must be non-nil (else ErrNeedRandSource).
//   - The target graph must be empty (else ErrConstructFailed).
//
// Complexity:
//   - Time: O(n·m) expected (rejection sampling over the endpoint list).
//   - Space: O(n·m) for the endpoint list.
//
// Determinism:
//   - Stable node order: ids ascending.
//   - Stable edge order: per new node, targets in draw order.

package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/episim/core"
)

// BarabasiAlbert returns a Constructor that grows a preferential-attachment
// network of n nodes, m edges per arriving node.
func BarabasiAlbert(n, m int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		// 1) Validate parameters (zero side-effects on invalid input).
		if err := validateAttachment(n, m); err != nil {
			return err
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodBarabasiAlbert, ErrNeedRandSource)
		}
		if g.NodeCount() != 0 {
			return fmt.Errorf("%s: target graph has %d nodes, want empty: %w",
				methodBarabasiAlbert, g.NodeCount(), ErrConstructFailed)
		}

		// 2) Initial core.
		g.AddNodes(m)
		targets := make([]int, m)
		for i := range targets {
			targets[i] = i
		}

		repeated := make([]int, 0, 2*m*(n-m))
		seen := make(map[int]struct{}, m)

		// 3) Growth.
		for source := m; source < n; source++ {
			g.AddNode()
			for _, t := range targets {
				if err := g.AddEdge(source, t); err != nil {
					return fmt.Errorf("%s: AddEdge(%d,%d): %v: %w", methodBarabasiAlbert, source, t, err, ErrConstructFailed)
				}
			}

			repeated = append(repeated, targets...)
			for k := 0; k < m; k++ {
				repeated = append(repeated, source)
			}

			if source+1 < n {
				targets = sampleDistinct(cfg.rng, repeated, m, seen, targets[:0])
			}
		}

		return nil
	}
}

// sampleDistinct draws uniformly from pool until k distinct values are
// collected, appending them to dst in draw order. pool must hold at least k
// distinct values.
func sampleDistinct(rng *rand.Rand, pool []int, k int, seen map[int]struct{}, dst []int) []int {
	clear(seen)
	for len(dst) < k {
		x := pool[rng.Intn(len(pool))]
		if _, dup := seen[x]; dup {
			continue
		}
		seen[x] = struct{}{}
		dst = append(dst, x)
	}

	return dst
}
