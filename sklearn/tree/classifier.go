package tree

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/core/model"
	"github.com/YuminosukeSato/c45/pkg/errors"
	"github.com/YuminosukeSato/c45/pkg/log"
)

const modelName = "C45Classifier"

// C45Classifier wraps induction, pruning and classification behind the
// estimator interfaces of core/model.
type C45Classifier struct {
	state *model.StateManager // State management (composition)

	// Hyperparameters
	target                string
	minContinuousNodeSize int
	maxTreeDepth          int
	minSplitGain          float64

	logger log.Logger

	// Learned
	tree_        *Tree
	classes_     []dataset.Value
	pruneStats_  PruneStats
	estimatorID_ string
}

// C45Option is a functional option for C45Classifier
type C45Option func(*C45Classifier)

// NewC45Classifier creates a classifier with every pruning threshold disabled.
func NewC45Classifier(opts ...C45Option) *C45Classifier {
	c := &C45Classifier{
		state: model.NewStateManager(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTarget sets the attribute to predict
func WithTarget(target string) C45Option {
	return func(c *C45Classifier) {
		c.target = target
	}
}

// WithMinContinuousNodeSize sets the minimum subset size kept by pruning
func WithMinContinuousNodeSize(n int) C45Option {
	return func(c *C45Classifier) {
		c.minContinuousNodeSize = n
	}
}

// WithMaxTreeDepth sets the depth beyond which pruning cuts subtrees
func WithMaxTreeDepth(depth int) C45Option {
	return func(c *C45Classifier) {
		c.maxTreeDepth = depth
	}
}

// WithMinSplitGain sets the smallest gain that still splits a node
func WithMinSplitGain(gain float64) C45Option {
	return func(c *C45Classifier) {
		c.minSplitGain = gain
	}
}

// WithLogger sets the logger used during Fit
func WithLogger(logger log.Logger) C45Option {
	return func(c *C45Classifier) {
		c.logger = logger
	}
}

// Config returns the induction parameters as a Config value.
func (c *C45Classifier) Config() Config {
	return Config{
		Target:                c.target,
		MinContinuousNodeSize: c.minContinuousNodeSize,
		MaxTreeDepth:          c.maxTreeDepth,
		MinSplitGain:          c.minSplitGain,
	}
}

// Fit grows and prunes a tree on train. Every precondition is checked before
// induction starts; a panic during induction is returned as a PanicError.
func (c *C45Classifier) Fit(train *dataset.Table) (err error) {
	defer errors.Recover(&err, "C45Classifier.Fit")

	cfg := c.Config()
	if err := cfg.ValidateFor(train); err != nil {
		return err
	}

	id := uuid.NewString()
	logger := c.logger
	if logger == nil {
		logger = log.GetLoggerWithName("tree.c45")
	}
	logger = logger.With(log.ModelNameKey, modelName, log.EstimatorIDKey, id)

	in := newInducer(cfg, logger)
	t, err := in.build(train)
	if err != nil {
		logger.Error("Induction failed", err, log.OperationKey, log.OperationFit)
		return errors.NewModelError("C45Classifier.Fit", "induction", err)
	}
	stats := in.prune(t)

	c.tree_ = t
	c.classes_ = train.DistinctValues(cfg.Target)
	c.pruneStats_ = stats
	c.estimatorID_ = id
	c.state.SetDimensions(train.Width(), train.NumRows())
	c.state.SetFitted()
	return nil
}

// Predict classifies every row of records. Rows that match no branch get an
// Empty prediction.
func (c *C45Classifier) Predict(records *dataset.Table) ([]dataset.Value, error) {
	if err := c.state.RequireFitted(modelName, "Predict"); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, errors.NewValueError("C45Classifier.Predict", "records table is nil")
	}
	out, _, err := classifyRows(c.tree_, records)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Evaluate classifies test and counts correct predictions.
func (c *C45Classifier) Evaluate(test *dataset.Table) (Evaluation, error) {
	if err := c.state.RequireFitted(modelName, "Evaluate"); err != nil {
		return Evaluation{}, err
	}
	ev, err := Evaluate(c.tree_, test)
	if err != nil {
		return Evaluation{}, err
	}
	logger := c.logger
	if logger == nil {
		logger = log.GetLoggerWithName("tree.c45")
	}
	logger.Info("Evaluation finished",
		log.OperationKey, log.OperationEvaluate,
		log.EstimatorIDKey, c.estimatorID_,
		log.SamplesKey, ev.Total,
		log.CorrectKey, ev.Correct,
		log.UnmatchedKey, ev.Unmatched,
		log.AccuracyKey, ev.Accuracy,
	)
	return ev, nil
}

// Score returns the accuracy on test.
func (c *C45Classifier) Score(test *dataset.Table) (float64, error) {
	ev, err := c.Evaluate(test)
	if err != nil {
		return 0, err
	}
	return ev.Accuracy, nil
}

// IsFitted reports whether Fit has completed.
func (c *C45Classifier) IsFitted() bool { return c.state.IsFitted() }

// Classes returns the distinct target values of the training table.
func (c *C45Classifier) Classes() []dataset.Value {
	return append([]dataset.Value(nil), c.classes_...)
}

// Tree returns the fitted tree, nil before Fit.
func (c *C45Classifier) Tree() *Tree { return c.tree_ }

// PruneStats returns what the last Fit pruned.
func (c *C45Classifier) PruneStats() PruneStats { return c.pruneStats_ }

// EstimatorID returns the id assigned by the last Fit.
func (c *C45Classifier) EstimatorID() string { return c.estimatorID_ }

// GetDepth returns the depth of the fitted tree, 0 before Fit.
func (c *C45Classifier) GetDepth() int {
	if c.tree_ == nil {
		return 0
	}
	return c.tree_.Depth()
}

// GetNLeaves returns the number of leaves of the fitted tree.
func (c *C45Classifier) GetNLeaves() int {
	if c.tree_ == nil {
		return 0
	}
	return c.tree_.NLeaves()
}

// GetNNodes returns the number of nodes of the fitted tree.
func (c *C45Classifier) GetNNodes() int {
	if c.tree_ == nil {
		return 0
	}
	return c.tree_.NNodes()
}

// GetParams returns the hyperparameters
func (c *C45Classifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"target":                   c.target,
		"min_continuous_node_size": c.minContinuousNodeSize,
		"max_tree_depth":           c.maxTreeDepth,
		"min_split_gain":           c.minSplitGain,
	}
}

// SetParams sets the hyperparameters. Numbers may be given as int or float64;
// unknown keys are rejected. The new values take effect at the next Fit.
func (c *C45Classifier) SetParams(params map[string]interface{}) error {
	next := *c
	for key, value := range params {
		switch key {
		case "target":
			s, ok := value.(string)
			if !ok {
				return errors.NewValidationError(key, "must be a string", value)
			}
			next.target = s
		case "min_continuous_node_size":
			n, err := intParam(key, value)
			if err != nil {
				return err
			}
			next.minContinuousNodeSize = n
		case "max_tree_depth":
			n, err := intParam(key, value)
			if err != nil {
				return err
			}
			next.maxTreeDepth = n
		case "min_split_gain":
			switch v := value.(type) {
			case float64:
				next.minSplitGain = v
			case int:
				next.minSplitGain = float64(v)
			default:
				return errors.NewValidationError(key, "must be a number", value)
			}
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	// the target may still be chosen later, so only thresholds are checked here
	if err := next.Config().validateThresholds(); err != nil {
		return err
	}
	c.target = next.target
	c.minContinuousNodeSize = next.minContinuousNodeSize
	c.maxTreeDepth = next.maxTreeDepth
	c.minSplitGain = next.minSplitGain
	return nil
}

func intParam(key string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		if v != float64(int(v)) {
			return 0, errors.NewValidationError(key, "must be an integer", value)
		}
		return int(v), nil
	default:
		return 0, errors.NewValidationError(key, "must be an integer", value)
	}
}

// String summarises the classifier.
func (c *C45Classifier) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "C45Classifier(target=%q, min_continuous_node_size=%d, max_tree_depth=%d, min_split_gain=%g)",
		c.target, c.minContinuousNodeSize, c.maxTreeDepth, c.minSplitGain)
	if c.tree_ != nil {
		fmt.Fprintf(&b, " nodes=%d leaves=%d depth=%d", c.GetNNodes(), c.GetNLeaves(), c.GetDepth())
	}
	return b.String()
}

type classifierWire struct {
	Target                string
	MinContinuousNodeSize int
	MaxTreeDepth          int
	MinSplitGain          float64
	Tree                  *Tree
	Classes               []dataset.Value
	PruneStats            PruneStats
	EstimatorID           string
	State                 model.ModelState
}

// GobEncode implements gob.GobEncoder. Only fitted models can be encoded.
func (c *C45Classifier) GobEncode() ([]byte, error) {
	if err := c.state.RequireFitted(modelName, "GobEncode"); err != nil {
		return nil, err
	}
	w := classifierWire{
		Target:                c.target,
		MinContinuousNodeSize: c.minContinuousNodeSize,
		MaxTreeDepth:          c.maxTreeDepth,
		MinSplitGain:          c.minSplitGain,
		Tree:                  c.tree_,
		Classes:               c.classes_,
		PruneStats:            c.pruneStats_,
		EstimatorID:           c.estimatorID_,
		State:                 c.state.GetState(),
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, errors.Wrap(err, "encode classifier")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (c *C45Classifier) GobDecode(data []byte) error {
	var w classifierWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return errors.Wrap(err, "decode classifier")
	}
	if w.Tree == nil {
		return errors.NewValueError("C45Classifier.GobDecode", "missing tree")
	}
	if c.state == nil {
		c.state = model.NewStateManager()
	}
	c.target = w.Target
	c.minContinuousNodeSize = w.MinContinuousNodeSize
	c.maxTreeDepth = w.MaxTreeDepth
	c.minSplitGain = w.MinSplitGain
	c.tree_ = w.Tree
	c.classes_ = w.Classes
	c.pruneStats_ = w.PruneStats
	c.estimatorID_ = w.EstimatorID
	c.state.SetState(w.State)
	return nil
}

// Save writes the fitted model to path.
func (c *C45Classifier) Save(path string) error {
	return model.SaveModel(c, path)
}

// Load replaces c with the model stored at path. A missing or corrupt file
// is reported as a ModelError.
func (c *C45Classifier) Load(path string) error {
	if err := model.LoadModel(c, path); err != nil {
		return errors.NewModelError("C45Classifier.Load", "persistence", err)
	}
	return nil
}

var (
	_ model.Classifier      = (*C45Classifier)(nil)
	_ model.ParameterGetter = (*C45Classifier)(nil)
	_ model.ParameterSetter = (*C45Classifier)(nil)
	_ model.Persistable     = (*C45Classifier)(nil)
)
