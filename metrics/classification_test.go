package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/pkg/errors"
)

func labels(ss ...string) []dataset.Value {
	out := make([]dataset.Value, len(ss))
	for i, s := range ss {
		if s == "" {
			out[i] = dataset.EmptyValue()
			continue
		}
		out[i] = dataset.NewCategorical(s)
	}
	return out
}

func TestAccuracyScore(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []dataset.Value
		yPred   []dataset.Value
		want    float64
		wantErr bool
	}{
		{
			name:  "Perfect",
			yTrue: labels("yes", "no", "yes"),
			yPred: labels("yes", "no", "yes"),
			want:  1.0,
		},
		{
			name:  "Half",
			yTrue: labels("yes", "no", "yes", "no"),
			yPred: labels("yes", "yes", "no", "no"),
			want:  0.5,
		},
		{
			name:  "Unmatched counts as wrong",
			yTrue: labels("yes", "no", "yes", "no"),
			yPred: labels("yes", "", "", "no"),
			want:  0.5,
		},
		{
			name:  "Case insensitive",
			yTrue: labels("Yes"),
			yPred: labels("YES"),
			want:  1.0,
		},
		{
			name:  "Numeric labels",
			yTrue: []dataset.Value{dataset.NewNumeric(1), dataset.NewNumeric(2)},
			yPred: []dataset.Value{dataset.NewNumeric(1), dataset.NewCategorical("2")},
			want:  0.5,
		},
		{
			name:    "Length mismatch",
			yTrue:   labels("yes", "no"),
			yPred:   labels("yes"),
			wantErr: true,
		},
		{
			name:    "Empty",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AccuracyScore(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AccuracyScore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("AccuracyScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccuracyScore_EmptyIsErrEmptyData(t *testing.T) {
	if _, err := AccuracyScore(nil, nil); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("error = %v, want ErrEmptyData", err)
	}
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := labels("no", "no", "yes", "yes", "yes", "maybe")
	yPred := labels("no", "yes", "yes", "yes", "", "no")

	cm, got, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}

	wantLabels := labels("no", "yes", "maybe")
	if len(got) != len(wantLabels) {
		t.Fatalf("labels = %v, want %v", got, wantLabels)
	}
	for i := range got {
		if got[i] != wantLabels[i] {
			t.Errorf("label %d = %v, want %v", i, got[i], wantLabels[i])
		}
	}

	want := mat.NewDense(3, 3, []float64{
		1, 1, 0,
		0, 2, 0,
		1, 0, 0,
	})
	if !mat.Equal(cm, want) {
		t.Errorf("ConfusionMatrix() =\n%v\nwant\n%v", mat.Formatted(cm), mat.Formatted(want))
	}
	if got := mat.Sum(cm); got != 5 {
		t.Errorf("sum = %v, want 5 (one unmatched row)", got)
	}
	if got := Unmatched(yPred); got != 1 {
		t.Errorf("Unmatched() = %d, want 1", got)
	}
}

func TestConfusionMatrix_Errors(t *testing.T) {
	if _, _, err := ConfusionMatrix(labels("a"), labels("a", "b")); err == nil {
		t.Error("expected length mismatch error")
	}
	if _, _, err := ConfusionMatrix(labels(""), labels("")); err == nil {
		t.Error("expected error when every label is empty")
	}
}
