// Package report renders fitted trees as charts.
package report

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/c45/pkg/errors"
	"github.com/YuminosukeSato/c45/sklearn/tree"
)

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// Leaf summarises one reachable leaf.
type Leaf struct {
	Node       int
	Prediction string
	Rows       int
	Usefulness float64 // percent
}

// Leaves lists the reachable leaves of t in walk order.
func Leaves(t *tree.Tree) []Leaf {
	var out []Leaf
	for _, i := range t.Leaves() {
		n := t.Node(i)
		v := n.MajorityValue(t.Target())
		out = append(out, Leaf{
			Node:       i,
			Prediction: v.String(),
			Rows:       n.Rows(),
			Usefulness: n.Usefulness(t.Target(), v) * 100,
		})
	}
	return out
}

// NewLeafChart builds a bar chart of leaf usefulness.
func NewLeafChart(t *tree.Tree) (*plot.Plot, error) {
	if t == nil || t.Len() == 0 {
		return nil, errors.NewValueError("NewLeafChart", "tree has no nodes")
	}
	leaves := Leaves(t)
	values := make(plotter.Values, len(leaves))
	names := make([]string, len(leaves))
	for i, l := range leaves {
		values[i] = l.Usefulness
		names[i] = fmt.Sprintf("#%d %s", l.Node, l.Prediction)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Leaves predicting %s", t.Target())
	p.Y.Label.Text = "usefulness measure (%)"
	p.Y.Min = 0
	p.Y.Max = 100

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, errors.Wrap(err, "build bar chart")
	}
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// PlotLeaves saves the leaf chart of t to path. The image format follows
// the file extension.
func PlotLeaves(t *tree.Tree, path string) error {
	p, err := NewLeafChart(t)
	if err != nil {
		return err
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return errors.Wrapf(err, "save chart %s", path)
	}
	return nil
}

// WriteLeaves writes the leaf chart of t to w in format ("png", "svg", ...).
func WriteLeaves(w io.Writer, t *tree.Tree, format string) error {
	p, err := NewLeafChart(t)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, format)
	if err != nil {
		return errors.Wrapf(err, "render %s chart", format)
	}
	_, err = wt.WriteTo(w)
	return err
}
