package tree

import (
	"bytes"
	"encoding/gob"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/pkg/errors"
)

type nodeWire struct {
	Split     Split
	Table     *dataset.Table
	Children  []int
	Parent    int
	Depth     int
	Remaining []string
}

type treeWire struct {
	Target string
	Nodes  []nodeWire
}

// GobEncode implements gob.GobEncoder.
func (t *Tree) GobEncode() ([]byte, error) {
	w := treeWire{Target: t.target, Nodes: make([]nodeWire, len(t.nodes))}
	for i := range t.nodes {
		n := &t.nodes[i]
		w.Nodes[i] = nodeWire{
			Split:     n.split,
			Table:     n.table,
			Children:  n.children,
			Parent:    n.parent,
			Depth:     n.depth,
			Remaining: n.Remaining(),
		}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, errors.Wrap(err, "encode tree")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (t *Tree) GobDecode(data []byte) error {
	var w treeWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return errors.Wrap(err, "decode tree")
	}
	if len(w.Nodes) == 0 {
		return errors.NewValueError("Tree.GobDecode", "tree has no nodes")
	}
	nodes := make([]Node, len(w.Nodes))
	for i, n := range w.Nodes {
		if n.Table == nil {
			return errors.NewValueError("Tree.GobDecode", "node without table")
		}
		for _, c := range n.Children {
			if c <= i || c >= len(w.Nodes) {
				return errors.NewValueError("Tree.GobDecode", "child index out of range")
			}
		}
		nodes[i] = Node{
			split:     n.Split,
			table:     n.Table,
			children:  n.Children,
			parent:    n.Parent,
			depth:     n.Depth,
			remaining: newRemaining(n.Remaining),
		}
	}
	if nodes[0].parent != -1 {
		return errors.NewValueError("Tree.GobDecode", "first node is not a root")
	}
	*t = Tree{target: w.Target, nodes: nodes}
	return nil
}
