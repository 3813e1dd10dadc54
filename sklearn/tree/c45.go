// Package tree induces C4.5-style decision trees.
//
// Induction grows the tree depth first. At every node each eligible
// attribute is scored by information gain; numeric attributes are scored at
// every observed value as a binary threshold. The tree is then post-pruned by
// subset size and depth. Classification descends by matching categorical
// split values against the record.
package tree

import (
	"context"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/pkg/errors"
	"github.com/YuminosukeSato/c45/pkg/log"
)

// Entropy returns the base-2 Shannon entropy of target within t.
// Empty and single-valued subsets have entropy 0.
func Entropy(t *dataset.Table, target string) float64 {
	total := t.NumRows()
	if total == 0 {
		return 0
	}
	values := t.DistinctValues(target)
	p := make([]float64, len(values))
	for i, v := range values {
		p[i] = float64(t.ValueCount(target, v)) / float64(total)
	}
	// stat.Entropy is in nats
	return stat.Entropy(p) / math.Ln2
}

// BinaryEntropy returns -p·log2(p) - q·log2(q) with 0·log2(0) taken as 0.
func BinaryEntropy(p, q float64) float64 {
	return stat.Entropy([]float64{p, q}) / math.Ln2
}

// Gain returns the information gain of splitting t on the categorical attr.
func Gain(t *dataset.Table, target, attr string) float64 {
	total := t.NumRows()
	if total == 0 {
		return 0
	}
	gain := Entropy(t, target)
	for _, v := range t.DistinctValues(attr) {
		sub := t.SubsetByEquality(attr, v)
		gain -= float64(sub.NumRows()) / float64(total) * Entropy(sub, target)
	}
	return gain
}

// ContinuousGain scores a binary split of t at attr >= threshold.
//
// The score is BinaryEntropy(pUpper, pLower) - pLower·H(lower) - pUpper·H(upper).
// When both sides are pure and t itself is pure the score is exactly 0.
// Negative scores are reported as 0.
func ContinuousGain(t *dataset.Table, target, attr string, threshold int) (float64, error) {
	total := t.NumRows()
	if total == 0 {
		return 0, nil
	}
	upper, err := t.SubsetByThreshold(attr, threshold, dataset.GreaterOrEqual)
	if err != nil {
		return 0, err
	}
	lower, err := t.SubsetByThreshold(attr, threshold, dataset.Less)
	if err != nil {
		return 0, err
	}

	pUpper := float64(upper.NumRows()) / float64(total)
	pLower := float64(lower.NumRows()) / float64(total)
	hUpper := Entropy(upper, target)
	hLower := Entropy(lower, target)

	if hLower+hUpper <= 0 && Entropy(t, target) <= 0 {
		return 0, nil
	}

	gain := BinaryEntropy(pUpper, pLower) - pLower*hLower - pUpper*hUpper
	if err := errors.CheckScalar("continuous_gain", gain); err != nil {
		return 0, err
	}
	if gain < 0 {
		return 0, nil
	}
	return gain, nil
}

// Candidate is the outcome of a split search.
type Candidate struct {
	Attribute string
	Numeric   bool
	Threshold int
	Gain      float64
}

// Found reports whether the search produced a positive gain.
func (c Candidate) Found() bool { return c.Gain > 0 }

// BestSplit scores every attribute in remaining, in order, and returns the
// one with the strictly greatest gain. Numeric attributes try each distinct
// value as a threshold in first-seen order. The first candidate reaching a
// gain keeps it against later equal gains. A zero Candidate means no split
// improves on the current node.
func BestSplit(t *dataset.Table, target string, remaining []string) (Candidate, error) {
	var best Candidate
	for _, attr := range remaining {
		if t.IsNumeric(attr) {
			for _, v := range t.DistinctValues(attr) {
				threshold, _ := v.Int()
				gain, err := ContinuousGain(t, target, attr, threshold)
				if err != nil {
					return Candidate{}, err
				}
				if gain > best.Gain {
					best = Candidate{Attribute: attr, Numeric: true, Threshold: threshold, Gain: gain}
				}
			}
			continue
		}
		if gain := Gain(t, target, attr); gain > best.Gain {
			best = Candidate{Attribute: attr, Gain: gain}
		}
	}
	return best, nil
}

// Build grows an unpruned tree from table.
func Build(table *dataset.Table, cfg Config) (*Tree, error) {
	return newInducer(cfg, nil).build(table)
}

// Induce grows a tree from table and post-prunes it.
func Induce(table *dataset.Table, cfg Config) (*Tree, PruneStats, error) {
	in := newInducer(cfg, nil)
	t, err := in.build(table)
	if err != nil {
		return nil, PruneStats{}, err
	}
	return t, in.prune(t), nil
}

type inducer struct {
	cfg    Config
	logger log.Logger
}

func newInducer(cfg Config, logger log.Logger) *inducer {
	if logger == nil {
		logger = log.GetLoggerWithName("tree.c45")
	}
	cfg.Target = strings.ToLower(cfg.Target)
	return &inducer{cfg: cfg, logger: logger}
}

func (in *inducer) build(table *dataset.Table) (*Tree, error) {
	if err := in.cfg.ValidateFor(table); err != nil {
		return nil, err
	}
	start := time.Now()
	in.logger.Info("Induction started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, table.NumRows(),
		log.FeaturesKey, table.Width(),
		log.TargetKey, in.cfg.Target,
	)

	t := &Tree{target: in.cfg.Target}
	t.add(Node{
		split:     Split{Kind: Root},
		table:     table.Clone(),
		parent:    -1,
		remaining: newRemaining(table.AttributeSet(), in.cfg.Target),
	})
	if err := in.grow(t, 0); err != nil {
		return nil, err
	}

	in.logger.Info("Induction finished",
		log.OperationKey, log.OperationFit,
		log.TreeNodesKey, t.NNodes(),
		log.TreeLeavesKey, t.NLeaves(),
		log.TreeDepthKey, t.Depth(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return t, nil
}

// grow splits node i and recurses into its children depth first.
// t.nodes may be reallocated by add, so node fields are read up front.
func (in *inducer) grow(t *Tree, i int) error {
	table := t.nodes[i].table
	remaining := t.nodes[i].Remaining()
	depth := t.nodes[i].depth

	best, err := BestSplit(table, in.cfg.Target, remaining)
	if err != nil {
		return err
	}
	if !best.Found() || best.Gain < in.cfg.MinSplitGain {
		return nil
	}

	if in.logger.Enabled(context.Background(), log.LevelDebug) {
		in.logger.Debug("Split chosen",
			log.NodeIndexKey, i,
			log.SplitAttributeKey, best.Attribute,
			log.SplitGainKey, best.Gain,
			log.SplitThresholdKey, best.Threshold,
			log.SamplesKey, table.NumRows(),
		)
	}

	if best.Numeric {
		for _, dir := range []dataset.Direction{dataset.GreaterOrEqual, dataset.Less} {
			sub, err := table.SubsetByThreshold(best.Attribute, best.Threshold, dir)
			if err != nil {
				return err
			}
			c := t.add(Node{
				split:     Split{Kind: Continuous, Attribute: best.Attribute, Threshold: best.Threshold, Direction: dir},
				table:     sub,
				parent:    i,
				depth:     depth + 1,
				remaining: newRemaining(remaining),
			})
			t.nodes[i].children = append(t.nodes[i].children, c)
			if err := in.grow(t, c); err != nil {
				return err
			}
		}
		return nil
	}

	for _, v := range table.DistinctValues(best.Attribute) {
		c := t.add(Node{
			split:     Split{Kind: Categorical, Attribute: best.Attribute, Value: v},
			table:     table.SubsetByEquality(best.Attribute, v),
			parent:    i,
			depth:     depth + 1,
			remaining: newRemaining(remaining, best.Attribute),
		})
		t.nodes[i].children = append(t.nodes[i].children, c)
		if err := in.grow(t, c); err != nil {
			return err
		}
	}
	return nil
}
