package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/metrics"
	"github.com/YuminosukeSato/c45/pkg/errors"
	"github.com/YuminosukeSato/c45/pkg/log"
	"github.com/YuminosukeSato/c45/preprocessing"
	"github.com/YuminosukeSato/c45/sklearn/tree"
)

func testCmd(root *rootCmdConfig) *cobra.Command {
	var modelPath, testPath string
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test a tree saved by grow --model against a test CSV`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if cmd.Flags().Changed("model") {
				cfg.Model = modelPath
			}
			if cmd.Flags().Changed("test") {
				cfg.Test = testPath
			}
			if err := cfg.ValidateEvaluation(); err != nil {
				return fail(exitConfig, err)
			}

			clf := tree.NewC45Classifier(tree.WithLogger(log.GetLoggerWithName("cmd.test")))
			if err := clf.Load(cfg.Model); err != nil {
				return fail(exitInput, err)
			}
			raw, err := preprocessing.ReadCSVFile(cfg.Test)
			if err != nil {
				return fail(exitInput, err)
			}
			test, err := preprocessing.MakeConsistent(clf.Tree().Root().Table(), raw)
			if err != nil {
				return fail(exitInput, err)
			}
			return writeEvaluation(cmd.OutOrStdout(), clf, test)
		},
	}
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "path to a model saved by grow (required)")
	cmd.Flags().StringVarP(&testPath, "test", "t", "", "path to the test CSV (required)")
	return cmd
}

// writeEvaluation prints the accuracy report and the confusion matrix of
// clf on test.
func writeEvaluation(w io.Writer, clf *tree.C45Classifier, test *dataset.Table) error {
	ev, err := clf.Evaluate(test)
	if err != nil {
		return fail(exitFit, err)
	}
	if err := tree.ExportReport(w, ev); err != nil {
		return fail(exitOutput, err)
	}

	pred, err := clf.Predict(test)
	if err != nil {
		return fail(exitFit, err)
	}
	truth := test.Column(clf.Tree().Target())
	cm, labels, err := metrics.ConfusionMatrix(truth, pred)
	if err != nil {
		return fail(exitFit, errors.Wrap(err, "confusion matrix"))
	}
	if _, err := fmt.Fprintf(w, "\nConfusion matrix (rows: actual, columns: predicted) over %v:\n%v\n",
		labels, mat.Formatted(cm, mat.Squeeze())); err != nil {
		return fail(exitOutput, err)
	}
	return nil
}
