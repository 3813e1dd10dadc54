package tree

import (
	"math"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/pkg/errors"
)

// Config is the immutable parameter bundle of one induction run.
type Config struct {
	// Target names the attribute to predict.
	Target string
	// MinContinuousNodeSize prunes the subtree of any non-root node holding
	// fewer rows. 0 disables the check.
	MinContinuousNodeSize int
	// MaxTreeDepth prunes the subtree of any node deeper than this. 0 disables the check.
	MaxTreeDepth int
	// MinSplitGain is the smallest gain that still produces a split.
	MinSplitGain float64
}

// DefaultConfig returns a Config with every threshold disabled.
func DefaultConfig(target string) Config {
	return Config{Target: target}
}

// Validate checks c on its own.
func (c Config) Validate() error {
	if c.Target == "" {
		return errors.NewValidationError("target", "must name an attribute", c.Target)
	}
	return c.validateThresholds()
}

func (c Config) validateThresholds() error {
	if c.MinContinuousNodeSize < 0 {
		return errors.NewValidationError("min_continuous_node_size", "must be non-negative", c.MinContinuousNodeSize)
	}
	if c.MaxTreeDepth < 0 {
		return errors.NewValidationError("max_tree_depth", "must be non-negative", c.MaxTreeDepth)
	}
	if math.IsNaN(c.MinSplitGain) || math.IsInf(c.MinSplitGain, 0) || c.MinSplitGain < 0 {
		return errors.NewValidationError("min_split_gain", "must be a non-negative real number", c.MinSplitGain)
	}
	return nil
}

// ValidateFor checks c against the training table. Every precondition of
// induction is checked here so a build never fails half way.
func (c Config) ValidateFor(table *dataset.Table) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if table == nil || table.NumRows() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "training table has no data rows")
	}
	if table.HeaderIndex(c.Target) == dataset.NotFound {
		return errors.NewAttributeNotFoundError("Config.ValidateFor", c.Target)
	}
	return nil
}
