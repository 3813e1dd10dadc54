package tree

import (
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/pkg/errors"
)

// SplitKind distinguishes how a node's rows were selected from its parent.
type SplitKind uint8

const (
	// Root has no split.
	Root SplitKind = iota
	// Categorical selects the parent rows where Attribute equals Value.
	Categorical
	// Continuous selects the parent rows on one side of Threshold.
	Continuous
)

func (k SplitKind) String() string {
	switch k {
	case Categorical:
		return "categorical"
	case Continuous:
		return "continuous"
	default:
		return "root"
	}
}

// Split describes the test that admitted a node's rows.
type Split struct {
	Kind      SplitKind
	Attribute string
	Value     dataset.Value     // Categorical only
	Threshold int               // Continuous only
	Direction dataset.Direction // Continuous only
}

// Node is one vertex of a Tree. It owns a private copy of its row subset.
type Node struct {
	split     Split
	table     *dataset.Table
	children  []int
	parent    int
	depth     int
	remaining *linkedhashset.Set
}

// Split returns the node's split descriptor.
func (n *Node) Split() Split { return n.split }

// Table returns the node's row subset. Callers must not modify it.
func (n *Node) Table() *dataset.Table { return n.table }

// Children returns the arena indices of the node's children in order.
func (n *Node) Children() []int { return append([]int(nil), n.children...) }

// Parent returns the arena index of the parent, -1 for the root.
func (n *Node) Parent() int { return n.parent }

// Depth returns the distance from the root.
func (n *Node) Depth() int { return n.depth }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.parent < 0 }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// Remaining returns the attributes still eligible for splitting below this
// node, in the order they were first seen.
func (n *Node) Remaining() []string {
	if n.remaining == nil {
		return nil
	}
	vals := n.remaining.Values()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.(string)
	}
	return out
}

// Rows returns the number of data rows in the node's subset.
func (n *Node) Rows() int { return n.table.NumRows() }

// MajorityValue returns the most frequent target value in the subset.
// Values are visited in first-seen order and only a strictly higher count
// replaces the current choice, so ties go to the value seen first.
// An empty subset yields an Empty value.
func (n *Node) MajorityValue(target string) dataset.Value {
	best := dataset.EmptyValue()
	bestCount := 0
	for _, v := range n.table.DistinctValues(target) {
		if c := n.table.ValueCount(target, v); c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}

// Usefulness returns the fraction of the subset whose target equals v.
func (n *Node) Usefulness(target string, v dataset.Value) float64 {
	rows := n.table.NumRows()
	if rows == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("usefulness", "empty node subset", 0))
	}
	return errors.SafeDivide(float64(n.table.ValueCount(target, v)), float64(rows))
}

func newRemaining(attrs []string, drop ...string) *linkedhashset.Set {
	s := linkedhashset.New()
	for _, a := range attrs {
		s.Add(a)
	}
	for _, d := range drop {
		s.Remove(d)
	}
	return s
}

// Tree is an arena of nodes linked by index. The root is node 0.
// Pruning can leave nodes that are no longer reachable from the root;
// Walk and the counting methods visit reachable nodes only.
type Tree struct {
	nodes  []Node
	target string
}

// Target returns the attribute the tree predicts.
func (t *Tree) Target() string { return t.target }

// Root returns the root node. Its table is a copy of the training table.
func (t *Tree) Root() *Node { return &t.nodes[0] }

// Node returns the node at arena index i.
func (t *Tree) Node(i int) *Node { return &t.nodes[i] }

// Len returns the arena size, reachable or not.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) add(n Node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// Walk visits reachable nodes depth first, parents before children.
// Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(i int, n *Node) bool) {
	if len(t.nodes) == 0 {
		return
	}
	var visit func(i int)
	visit = func(i int) {
		n := &t.nodes[i]
		if !fn(i, n) {
			return
		}
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(0)
}

// Depth returns the greatest depth of any reachable node.
func (t *Tree) Depth() int {
	depth := 0
	t.Walk(func(_ int, n *Node) bool {
		if n.depth > depth {
			depth = n.depth
		}
		return true
	})
	return depth
}

// NNodes returns the number of reachable nodes.
func (t *Tree) NNodes() int {
	count := 0
	t.Walk(func(int, *Node) bool { count++; return true })
	return count
}

// NLeaves returns the number of reachable leaves.
func (t *Tree) NLeaves() int {
	count := 0
	t.Walk(func(_ int, n *Node) bool {
		if n.IsLeaf() {
			count++
		}
		return true
	})
	return count
}

// Leaves returns the arena indices of reachable leaves in walk order.
func (t *Tree) Leaves() []int {
	var out []int
	t.Walk(func(i int, n *Node) bool {
		if n.IsLeaf() {
			out = append(out, i)
		}
		return true
	})
	return out
}
