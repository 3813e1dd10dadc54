// Package log defines standard attribute keys for decision tree operations.
//
// The keys follow a hierarchical naming convention (e.g. "tree.depth",
// "data.samples") so logs from induction, pruning and evaluation can be
// filtered uniformly.
package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model, e.g. "C45Classifier".
	ModelNameKey = "model.name"

	// EstimatorIDKey is a unique identifier for a specific model instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "prune", "predict", "evaluate", "load".
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of rows in a table.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of columns in a table.
	FeaturesKey = "data.features"

	// TargetKey names the target attribute.
	TargetKey = "data.target"

	// SourceKey names the file or stream a table was read from.
	SourceKey = "data.source"
)

// Tree Shape
const (
	TreeDepthKey  = "tree.depth"
	TreeNodesKey  = "tree.nodes"
	TreeLeavesKey = "tree.leaves"
	NodeIndexKey  = "tree.node"
)

// Split Decisions
const (
	// SplitAttributeKey is the attribute chosen at a node.
	SplitAttributeKey = "split.attribute"

	// SplitGainKey is the information gain of the chosen split.
	SplitGainKey = "split.gain"

	// SplitThresholdKey is the numeric threshold of a continuous split.
	SplitThresholdKey = "split.threshold"

	// PruneReasonKey records why a subtree was cut: "size" or "depth".
	PruneReasonKey = "prune.reason"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records the fraction of correctly classified rows.
	AccuracyKey = "metrics.accuracy"

	// CorrectKey and UnmatchedKey break accuracy down into row counts.
	CorrectKey   = "metrics.correct"
	UnmatchedKey = "metrics.unmatched"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// StacktraceKey contains stack trace information for debugging.
	// Populated automatically when an error carrying a stack is logged.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute value constants.
const (
	OperationFit      = "fit"
	OperationPrune    = "prune"
	OperationPredict  = "predict"
	OperationEvaluate = "evaluate"
	OperationLoad     = "load"

	PhaseTraining  = "training"
	PhaseTesting   = "testing"
	PhaseInference = "inference"

	PruneBySize  = "size"
	PruneByDepth = "depth"

	ErrorNotFitted     = "NOT_FITTED"
	ErrorEmptyData     = "EMPTY_DATA"
	ErrorInvalidInput  = "INVALID_INPUT"
	ErrorNoMatchBranch = "NO_MATCHING_BRANCH"
)
