package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/sklearn/tree"
)

func fittedTree(t *testing.T) *tree.Tree {
	t.Helper()
	c := dataset.NewCategorical
	tbl, err := dataset.NewTable([]string{"outlook", "play"}, [][]dataset.Value{
		{c("sunny"), c("no")},
		{c("sunny"), c("no")},
		{c("sunny"), c("yes")},
		{c("overcast"), c("yes")},
	})
	if err != nil {
		t.Fatal(err)
	}
	tr, err := tree.Build(tbl, tree.DefaultConfig("play"))
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestLeaves(t *testing.T) {
	leaves := Leaves(fittedTree(t))
	if len(leaves) != 2 {
		t.Fatalf("len(Leaves) = %d, want 2", len(leaves))
	}
	if leaves[0].Prediction != "no" || leaves[0].Rows != 3 || math.Abs(leaves[0].Usefulness-200.0/3) > 1e-9 {
		t.Errorf("leaf 0 = %+v", leaves[0])
	}
	if leaves[1].Prediction != "yes" || leaves[1].Usefulness != 100 {
		t.Errorf("leaf 1 = %+v", leaves[1])
	}
}

func TestWriteLeaves(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLeaves(&buf, fittedTree(t), "png"); err != nil {
		t.Fatalf("WriteLeaves: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestPlotLeaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaves.svg")
	if err := PlotLeaves(fittedTree(t), path); err != nil {
		t.Fatalf("PlotLeaves: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}

	if err := PlotLeaves(nil, path); err == nil {
		t.Error("expected an error for a nil tree")
	}
}
