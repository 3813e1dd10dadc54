package tree

import (
	"fmt"
	"io"
	"strings"
)

// ExportText writes the tree as nested If/Then rules, one line per node.
// Each level below the first is indented by one space and leaves report
// the predicted target with its usefulness measure. Numeric targets with
// several values report their range, average, median and count instead.
func ExportText(w io.Writer, t *Tree) error {
	ew := &errWriter{w: w}
	var visitErr error
	t.Walk(func(_ int, n *Node) bool {
		if visitErr != nil {
			return false
		}
		indent := strings.Repeat(" ", max(n.depth-1, 0))
		if !n.IsRoot() {
			ew.printf("%s%s\n", indent, ruleCondition(n.split))
		}
		if n.IsLeaf() {
			visitErr = writeConclusion(ew, t.target, n, indent)
		}
		return true
	})
	if visitErr != nil {
		return visitErr
	}
	return ew.err
}

func ruleCondition(s Split) string {
	if s.Kind == Continuous {
		return fmt.Sprintf("If %s is %s %d,", s.Attribute, s.Direction, s.Threshold)
	}
	return fmt.Sprintf("If %s is %s,", s.Attribute, s.Value)
}

func writeConclusion(ew *errWriter, target string, n *Node, indent string) error {
	tbl := n.table
	if tbl.IsNumeric(target) {
		if len(tbl.DistinctValues(target)) > 1 {
			rng, err := tbl.Range(target)
			if err != nil {
				return err
			}
			mean, err := tbl.Mean(target)
			if err != nil {
				return err
			}
			median, err := tbl.Median(target)
			if err != nil {
				return err
			}
			ew.printf(" %sThen %s is %s, with average %.2f, median %d, and %d values.\n",
				indent, target, rng, mean, median, tbl.NumRows())
			return nil
		}
		ew.printf(" %sThen %s is %s.\n", indent, target, n.MajorityValue(target))
		return nil
	}
	v := n.MajorityValue(target)
	ew.printf(" %sThen %s is %s, with usefulness measure %.2f%%.\n",
		indent, target, v, n.Usefulness(target, v)*100)
	return nil
}

// ExportReport writes the accuracy line for an evaluation.
func ExportReport(w io.Writer, ev Evaluation) error {
	ew := &errWriter{w: w}
	ew.printf("The decision tree predicted the correct value with %.2f%% usefulness measure.\n", ev.Accuracy*100)
	if ev.Unmatched > 0 {
		ew.printf("%d of %d records matched no branch.\n", ev.Unmatched, ev.Total)
	}
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
