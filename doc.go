// Package c45 induces C4.5-style decision trees from tabular data.
//
// Trees are grown by information gain over categorical attributes and
// binary thresholds on numeric ones, then post-pruned by node size and
// depth. The library exposes a small estimator API modelled on
// scikit-learn and a command line tool.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "os"
//
//	    "github.com/YuminosukeSato/c45/preprocessing"
//	    "github.com/YuminosukeSato/c45/sklearn/tree"
//	)
//
//	func main() {
//	    train, err := preprocessing.ReadCSVFile("weather.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clf := tree.NewC45Classifier(
//	        tree.WithTarget("play"),
//	        tree.WithMaxTreeDepth(4),
//	    )
//	    if err := clf.Fit(train); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    _ = tree.ExportText(os.Stdout, clf.Tree())
//	    score, _ := clf.Score(train)
//	    fmt.Printf("accuracy: %.2f\n", score)
//	}
//
// # Packages
//
//   - core/dataset: Value and Table, the tabular data model
//   - sklearn/tree: induction, pruning, classification and rule export
//   - core/model: estimator interfaces, fitted state and gob persistence
//   - preprocessing: CSV loading and header alignment
//   - metrics: accuracy and confusion matrix
//   - report: leaf charts
//   - pkg/config: YAML and environment settings for the CLI
//   - pkg/errors, pkg/log: error types and structured logging
//   - cmd/c45: the command line tool
//
// # Command Line
//
//	c45 grow --train weather.csv --target play --test holdout.csv --model weather.gob
//	c45 test --model weather.gob --test holdout.csv
//
// # License
//
// c45 is released under the MIT License.
package c45
