// Package model provides the estimator contracts shared by the tree learners.
// This file complements the basic interfaces in estimator.go.
package model

import "github.com/YuminosukeSato/c45/core/dataset"

// Estimator is a model that can be fitted and reports whether it has been.
type Estimator interface {
	Fitter
	IsFitted() bool
}

// Classifier combines interfaces for classification models.
type Classifier interface {
	Estimator
	Predictor
	Scorer

	// Classes returns the distinct target values seen during fitting.
	Classes() []dataset.Value
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	// SetParams sets the model's hyperparameters.
	SetParams(params map[string]interface{}) error
}

// Persistable is the interface for models that can be saved and loaded.
type Persistable interface {
	// Save saves the model to a file.
	Save(path string) error

	// Load loads the model from a file.
	Load(path string) error
}
