package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/pkg/config"
	"github.com/YuminosukeSato/c45/pkg/log"
	"github.com/YuminosukeSato/c45/preprocessing"
	"github.com/YuminosukeSato/c45/report"
	"github.com/YuminosukeSato/c45/sklearn/tree"
)

type growFlags struct {
	train, test, target   string
	output, model, plot   string
	minNodeSize, maxDepth int
	minGain               float64
}

func growCmd(root *rootCmdConfig) *cobra.Command {
	f := &growFlags{}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a tree from a training CSV to predict a target column, print it as rules and optionally test it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			f.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return fail(exitConfig, err)
			}
			return runGrow(cmd.OutOrStdout(), cfg)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.train, "train", "i", "", "path to the training CSV (required)")
	fl.StringVarP(&f.test, "test", "t", "", "path to a CSV to test the tree against")
	fl.StringVarP(&f.target, "target", "p", "", "name or 1-based number of the column to predict (required)")
	fl.StringVarP(&f.output, "output", "o", config.DefaultOutput, "file the rules are written to")
	fl.StringVarP(&f.model, "model", "m", "", "file the fitted model is saved to")
	fl.StringVar(&f.plot, "plot", "", "image file for a chart of the leaves (.png, .svg, ...)")
	fl.IntVar(&f.minNodeSize, "min-node-size", 0, "minimum rows a node needs to keep its children (0 to ignore)")
	fl.IntVar(&f.maxDepth, "max-depth", 0, "maximum tree depth (0 to ignore)")
	fl.Float64Var(&f.minGain, "min-gain", 0, "minimum gain to split on (>= 0)")
	return cmd
}

// apply layers explicitly set flags over cfg.
func (f *growFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if fl.Changed(name) {
			*dst = v
		}
	}
	set("train", &cfg.Train, f.train)
	set("test", &cfg.Test, f.test)
	set("target", &cfg.Target, f.target)
	set("output", &cfg.Output, f.output)
	set("model", &cfg.Model, f.model)
	set("plot", &cfg.Plot, f.plot)
	if fl.Changed("min-node-size") {
		cfg.MinContinuousNodeSize = f.minNodeSize
	}
	if fl.Changed("max-depth") {
		cfg.MaxTreeDepth = f.maxDepth
	}
	if fl.Changed("min-gain") {
		cfg.MinSplitGain = f.minGain
	}
}

func runGrow(stdout io.Writer, cfg config.Config) error {
	logger := log.GetLoggerWithName("cmd.grow")

	train, err := preprocessing.ReadCSVFile(cfg.Train)
	if err != nil {
		return fail(exitInput, err)
	}
	var test *dataset.Table
	if cfg.Test != "" {
		raw, err := preprocessing.ReadCSVFile(cfg.Test)
		if err != nil {
			return fail(exitInput, err)
		}
		if test, err = preprocessing.MakeConsistent(train, raw); err != nil {
			return fail(exitInput, err)
		}
	}
	target, err := config.ResolveTarget(train, cfg.Target)
	if err != nil {
		return fail(exitConfig, err)
	}

	tc := cfg.TreeConfig(target)
	clf := tree.NewC45Classifier(
		tree.WithTarget(tc.Target),
		tree.WithMinContinuousNodeSize(tc.MinContinuousNodeSize),
		tree.WithMaxTreeDepth(tc.MaxTreeDepth),
		tree.WithMinSplitGain(tc.MinSplitGain),
		tree.WithLogger(logger),
	)
	var (
		results bytes.Buffer
		elapsed time.Duration
	)
	err = guarded("cmd.grow", func() error {
		start := time.Now()
		if err := clf.Fit(train); err != nil {
			return fail(exitFit, err)
		}
		elapsed = time.Since(start)

		if err := tree.ExportText(&results, clf.Tree()); err != nil {
			return fail(exitOutput, err)
		}
		results.WriteString("\n")
		if test != nil {
			return writeEvaluation(&results, clf, test)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nPrinting the decision tree for %s:\n", target)
	if _, err := stdout.Write(results.Bytes()); err != nil {
		return fail(exitOutput, err)
	}
	if err := os.WriteFile(cfg.Output, results.Bytes(), 0o644); err != nil {
		return fail(exitOutput, err)
	}
	fmt.Fprintf(stdout, "\nBuilding and pruning tree took %d milliseconds.\n", elapsed.Milliseconds())

	if cfg.Model != "" {
		if err := clf.Save(cfg.Model); err != nil {
			return fail(exitOutput, err)
		}
		logger.Info("Model saved", log.SourceKey, cfg.Model, log.EstimatorIDKey, clf.EstimatorID())
	}
	if cfg.Plot != "" {
		if err := report.PlotLeaves(clf.Tree(), cfg.Plot); err != nil {
			return fail(exitOutput, err)
		}
	}
	return nil
}
