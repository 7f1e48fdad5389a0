// Package model provides the core interfaces and base types shared by the
// interpretable surrogate models.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// WeightedFitter はサンプル重み付きで学習可能なモデルのインターフェース。
// LIMEのサロゲートは類似度重みを使って学習されるため、解釈可能モデルは
// このインターフェースを実装する必要があります。
type WeightedFitter interface {
	// FitWeighted はサンプルごとの重み付きでモデルを学習させる
	FitWeighted(X mat.Matrix, y, weights *mat.VecDense) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// LinearModel は線形モデルのインターフェース
type LinearModel interface {
	// Weights は学習された重み（係数）を返す
	Weights() []float64
	// Intercept は学習された切片を返す
	Intercept() float64
}
