package model

import "github.com/YuminosukeSato/c45/core/dataset"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練テーブルで学習させる
	Fit(train *dataset.Table) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict はテーブルの各行に対する予測値を返す
	Predict(records *dataset.Table) ([]dataset.Value, error)
}

// Scorer はスコアを計算できるモデルのインターフェース
type Scorer interface {
	// Score はテーブルに対する正解率を返す
	Score(test *dataset.Table) (float64, error)
}
