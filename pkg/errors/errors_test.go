package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Fit",
			kind:    "induction failed",
			err:     fmt.Errorf("test error"),
			wantMsg: "c45: Fit: induction failed: test error",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "c45: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("C45Classifier", "Predict")

	want := "c45: C45Classifier: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestAttributeErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
		check   func(error) bool
	}{
		{
			name:    "attribute type",
			err:     NewAttributeTypeError("Table.Mean", "outlook"),
			wantMsg: "c45: Table.Mean: attribute 'outlook' is not numeric",
			check: func(err error) bool {
				var target *AttributeTypeError
				return As(err, &target) && target.Attribute == "outlook"
			},
		},
		{
			name:    "attribute not found",
			err:     NewAttributeNotFoundError("Evaluate", "play"),
			wantMsg: "c45: Evaluate: attribute 'play' not found",
			check: func(err error) bool {
				var target *AttributeNotFoundError
				return As(err, &target) && target.Op == "Evaluate"
			},
		},
		{
			name:    "validation",
			err:     NewValidationError("max_tree_depth", "must be non-negative", -1),
			wantMsg: "c45: validation failed for parameter 'max_tree_depth': must be non-negative (got: -1)",
			check: func(err error) bool {
				var target *ValidationError
				return As(err, &target) && target.ParamName == "max_tree_depth"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", tt.err.Error(), tt.wantMsg)
			}
			if !tt.check(tt.err) {
				t.Errorf("As() did not recover the typed error from %v", tt.err)
			}
		})
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "in Evaluate")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}
	if !strings.Contains(wrapped.Error(), "in Evaluate") {
		t.Error("Expected wrapped error to contain wrapping message")
	}

	branch := Wrapf(ErrNoMatchingBranch, "node %d", 3)
	if !Is(branch, ErrNoMatchingBranch) {
		t.Error("Expected Is(branch, ErrNoMatchingBranch) to be true")
	}
	if Is(branch, ErrEmptyData) {
		t.Error("sentinels must stay distinguishable")
	}
}

func TestWarn(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(nil)

	Warn(NewUndefinedMetricWarning("usefulness", "empty node subset", 0))

	if len(got) != 1 {
		t.Fatalf("handler received %d warnings, want 1", len(got))
	}
	want := "'usefulness' is ill-defined and being set to 0.000000 due to empty node subset."
	if got[0].Error() != want {
		t.Errorf("Error() = %q, want %q", got[0].Error(), want)
	}

	var zerologGot error
	SetZerologWarnFunc(func(w error) { zerologGot = w })
	defer SetZerologWarnFunc(nil)
	Warn(New("routed"))
	if zerologGot == nil || len(got) != 1 {
		t.Error("zerolog warn func should take precedence over the handler")
	}
}

func TestCheckScalar(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"finite", 0.94, false},
		{"zero", 0, false},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckScalar("continuous_gain", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckScalar(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			var instability *NumericalInstabilityError
			if tt.wantErr && !As(err, &instability) {
				t.Errorf("expected *NumericalInstabilityError, got %T", err)
			}
		})
	}
}

func TestSafeDivide(t *testing.T) {
	if got := SafeDivide(3, 4); got != 0.75 {
		t.Errorf("SafeDivide(3, 4) = %v, want 0.75", got)
	}
	if got := SafeDivide(3, 0); got != 0 {
		t.Errorf("SafeDivide(3, 0) = %v, want 0", got)
	}
}
