package session

import (
	"context"
	"fmt"

	"github.com/katalvlaran/episim/bfs"
	"github.com/katalvlaran/episim/builder"
	"github.com/katalvlaran/episim/core"
)

// Degrees reports degree statistics, connectivity and the outbreak's
// remaining hop depth. The network is cloned under the session lock and
// analysed outside it, so a long analysis does not block stepping.
func (r *Registry) Degrees(ctx context.Context, id string) (*DegreeReport, error) {
	s, err := r.get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	var g *core.Graph
	if s.graph != nil {
		g = s.graph.Clone()
	}
	s.mu.Unlock()
	if g == nil {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}

	report := &DegreeReport{
		Summary:          builder.DegreeStats(g),
		Histogram:        builder.DegreeHistogram(g),
		Components:       len(builder.Components(g)),
		HopsToSaturation: -1,
	}

	if infected := g.InfectedIDs(); len(infected) > 0 {
		res, err := bfs.BFS(g, infected, bfs.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("Degrees %s: %w", id, err)
		}
		report.HopsToSaturation = res.MaxDepth()
	}

	return report, nil
}
