// Package metrics は分類結果の評価指標を提供します。
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/pkg/errors"
)

func checkPair(op string, yTrue, yPred []dataset.Value) error {
	if len(yTrue) == 0 {
		return errors.Wrapf(errors.ErrEmptyData, "%s: no labels", op)
	}
	if len(yPred) != len(yTrue) {
		return errors.NewValidationError("y_pred", "length must match y_true", len(yPred))
	}
	return nil
}

// AccuracyScore は予測が正解と一致した割合を返す。
// Empty の予測（どの枝にも一致しなかった行）は不正解として数える。
func AccuracyScore(yTrue, yPred []dataset.Value) (float64, error) {
	if err := checkPair("AccuracyScore", yTrue, yPred); err != nil {
		return 0, err
	}
	correct := 0
	for i := range yTrue {
		if yPred[i].Equal(yTrue[i]) {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ConfusionMatrix は混同行列を計算する。
//
// 行が正解ラベル、列が予測ラベルで、ラベルは yTrue、yPred の順に現れた順序で並ぶ。
// Empty の予測はどの列にも数えないため、行和が正解ラベルの出現数より小さくなることがある。
func ConfusionMatrix(yTrue, yPred []dataset.Value) (*mat.Dense, []dataset.Value, error) {
	if err := checkPair("ConfusionMatrix", yTrue, yPred); err != nil {
		return nil, nil, err
	}

	index := make(map[dataset.Value]int)
	var labels []dataset.Value
	for _, ys := range [][]dataset.Value{yTrue, yPred} {
		for _, v := range ys {
			if v.IsEmpty() {
				continue
			}
			if _, ok := index[v]; !ok {
				index[v] = len(labels)
				labels = append(labels, v)
			}
		}
	}
	if len(labels) == 0 {
		return nil, nil, errors.NewValueError("ConfusionMatrix", "no non-empty labels")
	}

	cm := mat.NewDense(len(labels), len(labels), nil)
	for i := range yTrue {
		if yTrue[i].IsEmpty() || yPred[i].IsEmpty() {
			continue
		}
		r, c := index[yTrue[i]], index[yPred[i]]
		cm.Set(r, c, cm.At(r, c)+1)
	}
	return cm, labels, nil
}

// Unmatched は Empty の予測の数を返す。
func Unmatched(yPred []dataset.Value) int {
	n := 0
	for _, v := range yPred {
		if v.IsEmpty() {
			n++
		}
	}
	return n
}
