// Package report turns an outbreak history into files: a CSV time series
// and a PNG epidemic curve.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/katalvlaran/episim/epidemic"
)

// ErrEmptyHistory is returned when there is nothing to report.
var ErrEmptyHistory = errors.New("report: empty history")

// CSVHeader is the first row written by WriteHistoryCSV.
var CSVHeader = []string{"time_step", "infected", "healthy", "newly_infected", "infection_rate"}

// WriteHistoryCSV writes one row per snapshot. newly_infected is the change
// from the previous row; the first row counts every infected node.
func WriteHistoryCSV(w io.Writer, history []epidemic.Snapshot, totalNodes int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("report: csv header: %w", err)
	}

	prev := 0
	for _, s := range history {
		rate := 0.0
		if totalNodes > 0 {
			rate = float64(s.InfectedCount) / float64(totalNodes)
		}
		row := []string{
			strconv.Itoa(s.TimeStep),
			strconv.Itoa(s.InfectedCount),
			strconv.Itoa(totalNodes - s.InfectedCount),
			strconv.Itoa(s.InfectedCount - prev),
			strconv.FormatFloat(rate, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: csv row %d: %w", s.TimeStep, err)
		}
		prev = s.InfectedCount
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: csv flush: %w", err)
	}

	return nil
}

// RenderCurve draws infected and healthy counts over time as a PNG.
func RenderCurve(w io.Writer, history []epidemic.Snapshot, totalNodes int) error {
	if len(history) == 0 {
		return ErrEmptyHistory
	}

	xs := make([]float64, len(history))
	infected := make([]float64, len(history))
	healthy := make([]float64, len(history))
	for i, s := range history {
		xs[i] = float64(s.TimeStep)
		infected[i] = float64(s.InfectedCount)
		healthy[i] = float64(totalNodes - s.InfectedCount)
	}

	// Fixed ranges keep flat or single-step histories renderable.
	xMax := xs[len(xs)-1]
	if xMax < 1 {
		xMax = 1
	}
	yMax := float64(totalNodes)
	if yMax < 1 {
		yMax = 1
	}

	graph := chart.Chart{
		Title:  "Outbreak curve",
		Width:  800,
		Height: 450,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:  "time step",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: xMax},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "nodes",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Infected",
				XValues: xs,
				YValues: infected,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 3.0},
			},
			chart.ContinuousSeries{
				Name:    "Healthy",
				XValues: xs,
				YValues: healthy,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 3.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("report: render curve: %w", err)
	}

	return nil
}
