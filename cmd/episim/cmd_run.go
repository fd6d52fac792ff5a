package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/episim/builder"
	"github.com/katalvlaran/episim/epidemic"
	"github.com/katalvlaran/episim/internal/config"
	"github.com/katalvlaran/episim/internal/report"
)

type runOptions struct {
	network    config.NetworkConfig
	simulation config.SimulationConfig
	csvPath    string
	chartPath  string
	jsonOut    bool
}

type runSummary struct {
	Nodes      int                   `json:"nodes"`
	Edges      int                   `json:"edges"`
	Steps      []epidemic.StepResult `json:"steps"`
	Statistics epidemic.Statistics   `json:"statistics"`
}

func newRunCmd() *cobra.Command {
	def := config.Default()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a network and run one outbreak to completion",
		Long: `Generate a Barabási–Albert network, seed an SI outbreak and step it
until no new node is infected or --max-steps is reached.

Examples:
  episim run --nodes 5000 --attachment 2 --prob 0.1 --seed 42
  episim run --seed 7 --csv curve.csv --chart curve.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			flags := cmd.Flags()
			cfg.Network.Nodes, _ = flags.GetInt("nodes")
			cfg.Network.Attachment, _ = flags.GetInt("attachment")
			cfg.Simulation.InfectionProbability, _ = flags.GetFloat64("prob")
			cfg.Simulation.InitialInfected, _ = flags.GetInt("initial")
			cfg.Simulation.Seed, _ = flags.GetInt64("seed")
			cfg.Simulation.MaxSteps, _ = flags.GetInt("max-steps")
			if cfg.Network.MaxNodes < cfg.Network.Nodes {
				cfg.Network.MaxNodes = cfg.Network.Nodes
			}
			if e := builder.ExpectedEdges(cfg.Network.Nodes, cfg.Network.Attachment); cfg.Network.MaxEdges < e {
				cfg.Network.MaxEdges = e
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := commandLogger(cmd, config.LoggingConfig{Level: "warn"})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			opts := runOptions{network: cfg.Network, simulation: cfg.Simulation}
			opts.csvPath, _ = flags.GetString("csv")
			opts.chartPath, _ = flags.GetString("chart")
			opts.jsonOut, _ = flags.GetBool("json")

			return runSimulation(cmd.Context(), cmd.OutOrStdout(), opts, logger)
		},
	}

	cmd.Flags().Int("nodes", def.Network.Nodes, "Number of nodes")
	cmd.Flags().Int("attachment", def.Network.Attachment, "Edges brought by each new node (m)")
	cmd.Flags().Float64("prob", def.Simulation.InfectionProbability, "Per-contact infection probability")
	cmd.Flags().Int("initial", def.Simulation.InitialInfected, "Number of randomly seeded nodes")
	cmd.Flags().Int64("seed", 0, "Random seed (0 seeds from the clock)")
	cmd.Flags().Int("max-steps", def.Simulation.MaxSteps, "Step limit (0 runs until the outbreak is over)")
	cmd.Flags().String("csv", "", "Write the infection history as CSV to this path")
	cmd.Flags().String("chart", "", "Write the epidemic curve as PNG to this path")

	return cmd
}

func runSimulation(ctx context.Context, out io.Writer, opts runOptions, logger *zap.Logger) error {
	var (
		bopts []builder.BuilderOption
		eopts = []epidemic.Option{epidemic.WithObserver(func(cause epidemic.Cause, step int, ids []int) {
			logger.Debug("infections", zap.String("cause", string(cause)), zap.Int("step", step), zap.Int("count", len(ids)))
		})}
	)
	if seed := opts.simulation.Seed; seed != 0 {
		bopts = append(bopts, builder.WithSeed(seed))
		eopts = append(eopts, epidemic.WithSeed(seed+1))
	}

	g, err := builder.Generate(opts.network.Nodes, opts.network.Attachment, bopts...)
	if err != nil {
		return err
	}
	logger.Info("network generated", zap.Int("nodes", g.NodeCount()), zap.Int("edges", g.EdgeCount()))

	eng, err := epidemic.New(g, opts.simulation.InfectionProbability, eopts...)
	if err != nil {
		return err
	}
	eng.Seed(opts.simulation.InitialInfected)

	hook := func(res epidemic.StepResult) error {
		if opts.jsonOut {
			return nil
		}
		_, err := fmt.Fprintf(out, "step %4d  new %6d  total %6d\n",
			res.TimeStep, len(res.NewlyInfected), res.TotalInfected)
		return err
	}
	steps, err := epidemic.Run(ctx, eng, opts.simulation.MaxSteps, hook)
	if err != nil {
		return err
	}

	stats := eng.Statistics()
	logger.Info("run finished",
		zap.Int("steps", len(steps)),
		zap.Int("infected", stats.InfectedCount),
		zap.Float64("rate", stats.InfectionRate),
	)

	if opts.csvPath != "" {
		if err := writeFile(opts.csvPath, func(w io.Writer) error {
			return report.WriteHistoryCSV(w, stats.History, stats.TotalNodes)
		}); err != nil {
			return err
		}
	}
	if opts.chartPath != "" {
		if err := writeFile(opts.chartPath, func(w io.Writer) error {
			return report.RenderCurve(w, stats.History, stats.TotalNodes)
		}); err != nil {
			return err
		}
	}

	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runSummary{
			Nodes:      g.NodeCount(),
			Edges:      g.EdgeCount(),
			Steps:      steps,
			Statistics: stats,
		})
	}

	_, err = fmt.Fprintf(out, "\n%d/%d nodes infected (%.1f%%) after %d steps\n",
		stats.InfectedCount, stats.TotalNodes, 100*stats.InfectionRate, stats.TimeStep)
	return err
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
