package tree

import "github.com/YuminosukeSato/c45/pkg/log"

// PruneStats counts the subtrees removed by each criterion.
type PruneStats struct {
	BySize  int
	ByDepth int
}

// Total returns the number of nodes turned into leaves.
func (s PruneStats) Total() int { return s.BySize + s.ByDepth }

// Prune cuts subtrees top down. A non-root node with fewer rows than
// cfg.MinContinuousNodeSize, or deeper than cfg.MaxTreeDepth, loses its
// children and its descendants are not visited. Either check is disabled by
// a zero threshold. Pruning only ever removes children.
func Prune(t *Tree, cfg Config) PruneStats {
	return newInducer(cfg, nil).prune(t)
}

func (in *inducer) prune(t *Tree) PruneStats {
	var stats PruneStats
	if len(t.nodes) == 0 {
		return stats
	}
	for _, c := range t.nodes[0].children {
		in.pruneNode(t, c, &stats)
	}
	if stats.Total() > 0 {
		in.logger.Info("Pruning finished",
			log.OperationKey, log.OperationPrune,
			log.TreeNodesKey, t.NNodes(),
			log.TreeLeavesKey, t.NLeaves(),
			log.TreeDepthKey, t.Depth(),
		)
	}
	return stats
}

func (in *inducer) pruneNode(t *Tree, i int, stats *PruneStats) {
	n := &t.nodes[i]
	size := n.Rows()

	if in.cfg.MinContinuousNodeSize != 0 && size < in.cfg.MinContinuousNodeSize {
		if n.HasChildren() {
			stats.BySize++
			in.logger.Debug("Children deleted",
				log.NodeIndexKey, i,
				log.PruneReasonKey, log.PruneBySize,
				log.SamplesKey, size,
			)
		}
		n.children = nil
		return
	}
	if in.cfg.MaxTreeDepth != 0 && n.depth > in.cfg.MaxTreeDepth {
		if n.HasChildren() {
			stats.ByDepth++
			in.logger.Debug("Children deleted",
				log.NodeIndexKey, i,
				log.PruneReasonKey, log.PruneByDepth,
				log.TreeDepthKey, n.depth,
			)
		}
		n.children = nil
		return
	}
	for _, c := range n.children {
		in.pruneNode(t, c, stats)
	}
}
