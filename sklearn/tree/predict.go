package tree

import (
	"slices"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/core/parallel"
	"github.com/YuminosukeSato/c45/pkg/errors"
)

// Classify predicts the target value of record by descending from the root.
//
// At each internal node the children are scanned in order and the first one
// whose categorical split value equals a value still present in record is
// taken; that value is then consumed so it cannot match again deeper down.
// Continuous children are never matched. A leaf predicts its majority value.
// When no child matches, Classify returns an Empty value and an error
// wrapping ErrNoMatchingBranch.
func Classify(t *Tree, record []dataset.Value) (dataset.Value, error) {
	if t == nil || len(t.nodes) == 0 {
		return dataset.EmptyValue(), errors.NewValueError("Classify", "tree has no nodes")
	}
	rec := slices.Clone(record)
	i := 0
	for {
		n := &t.nodes[i]
		if n.IsLeaf() {
			return n.MajorityValue(t.target), nil
		}
		next := -1
	children:
		for _, c := range n.children {
			split := t.nodes[c].split
			if split.Kind != Categorical {
				continue
			}
			for j, v := range rec {
				if split.Value.Equal(v) {
					rec = slices.Delete(rec, j, j+1)
					next = c
					break children
				}
			}
		}
		if next < 0 {
			return dataset.EmptyValue(), errors.Wrapf(errors.ErrNoMatchingBranch, "node %d at depth %d", i, n.depth)
		}
		i = next
	}
}

// Evaluation summarises classification of a held-out table.
type Evaluation struct {
	Total     int
	Correct   int
	Unmatched int // rows that reached no leaf, counted as incorrect
	Accuracy  float64
}

// Evaluate classifies every data row of test, records included in full,
// and compares each prediction with the row's own target cell.
//
// Tables with more than parallel.DefaultThreshold rows are classified on
// several goroutines. The tree is only read, so this is safe while no other
// goroutine modifies t; induction and pruning stay single-threaded.
func Evaluate(t *Tree, test *dataset.Table) (Evaluation, error) {
	if t == nil || len(t.nodes) == 0 {
		return Evaluation{}, errors.NewValueError("Evaluate", "tree has no nodes")
	}
	if test == nil || test.NumRows() == 0 {
		return Evaluation{}, errors.Wrap(errors.ErrEmptyData, "test table has no data rows")
	}
	tc := test.HeaderIndex(t.target)
	if tc == dataset.NotFound {
		return Evaluation{}, errors.NewAttributeNotFoundError("Evaluate", t.target)
	}

	pred, matched, err := classifyRows(t, test)
	if err != nil {
		return Evaluation{}, err
	}
	ev := Evaluation{Total: test.NumRows()}
	for r := range pred {
		if !matched[r] {
			ev.Unmatched++
			continue
		}
		if pred[r].Equal(test.Cell(r, tc)) {
			ev.Correct++
		}
	}
	ev.Accuracy = float64(ev.Correct) / float64(ev.Total)
	return ev, nil
}

// classifyRows classifies every data row of tbl. Large tables are split
// across CPU cores; the tree is only read. Rows that reach no leaf get an
// Empty prediction and a false matched flag.
func classifyRows(t *Tree, tbl *dataset.Table) (pred []dataset.Value, matched []bool, err error) {
	n := tbl.NumRows()
	pred = make([]dataset.Value, n)
	matched = make([]bool, n)
	err = parallel.RangesWithThreshold(n, parallel.DefaultThreshold, func(start, end int) error {
		for r := start; r < end; r++ {
			v, err := Classify(t, tbl.Row(r))
			if err != nil {
				if errors.Is(err, errors.ErrNoMatchingBranch) {
					continue
				}
				return err
			}
			pred[r], matched[r] = v, true
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return pred, matched, nil
}
