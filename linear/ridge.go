// Package linear provides the linear models used as interpretable
// surrogates by the attribution pipeline.
package linear

import (
	"github.com/YuminosukeSato/xaigo/core/model"
	"github.com/YuminosukeSato/xaigo/core/parallel"
	"github.com/YuminosukeSato/xaigo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DefaultAlpha is the regularization strength of the default surrogate.
const DefaultAlpha = 2.0

// Ridge は重み付きリッジ回帰モデル
// 正規方程式 (X^T.W.X + αI).β = X^T.W.y を解く（切片は正則化しない）
type Ridge struct {
	model.BaseEstimator

	alpha        float64
	fitIntercept bool

	coef      *mat.VecDense // 重み（係数）
	intercept float64       // 切片
	nFeatures int           // 特徴量の数
}

// NewRidge は新しいリッジ回帰モデルを作成する
func NewRidge(opts ...Option) *Ridge {
	r := &Ridge{
		alpha:        DefaultAlpha,
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fit はモデルを単位重みで学習させる
func (r *Ridge) Fit(X, y mat.Matrix) error {
	rows, _ := X.Dims()
	w := mat.NewVecDense(max(rows, 1), nil)
	for i := 0; i < rows; i++ {
		w.SetVec(i, 1.0)
	}
	yr, _ := y.Dims()
	yv := mat.NewVecDense(max(yr, 1), nil)
	for i := 0; i < yr; i++ {
		yv.SetVec(i, y.At(i, 0))
	}
	return r.FitWeighted(X, yv, w)
}

// FitWeighted はサンプル重み付きでモデルを学習させる
// LIMEでは類似度カーネルが返した重みがそのまま渡される
func (r *Ridge) FitWeighted(X mat.Matrix, y, weights *mat.VecDense) error {
	// 入力の検証
	n, p := X.Dims()

	if n == 0 || p == 0 {
		return errors.NewModelError("Ridge.FitWeighted", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return errors.NewDimensionError("Ridge.FitWeighted", n, y.Len(), 0)
	}
	if weights.Len() != n {
		return errors.NewDimensionError("Ridge.FitWeighted", n, weights.Len(), 0)
	}

	r.nFeatures = p

	// 切片項のために X に 1 の列を追加
	d := p
	offset := 0
	if r.fitIntercept {
		d = p + 1
		offset = 1
	}

	XAug := mat.NewDense(n, d, nil)
	XWeighted := mat.NewDense(n, d, nil)

	// 並列処理の閾値（この値以下の行数では逐次処理を使用）
	const parallelThreshold = 1000

	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			wi := weights.AtVec(i)
			if r.fitIntercept {
				XAug.Set(i, 0, 1.0)
				XWeighted.Set(i, 0, wi)
			}
			for j := 0; j < p; j++ {
				v := X.At(i, j)
				XAug.Set(i, j+offset, v)
				XWeighted.Set(i, j+offset, wi*v)
			}
		}
	})

	// 正規方程式の左辺: X^T.W.X + αI（切片行は正則化から除外）
	var gram mat.Dense
	gram.Mul(XAug.T(), XWeighted)
	for j := offset; j < d; j++ {
		gram.Set(j, j, gram.At(j, j)+r.alpha)
	}

	// 右辺: X^T.W.y
	wy := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		wy.SetVec(i, weights.AtVec(i)*y.AtVec(i))
	}
	rhs := mat.NewVecDense(d, nil)
	rhs.MulVec(XAug.T(), wy)

	var beta mat.VecDense
	if err := beta.SolveVec(&gram, rhs); err != nil {
		return errors.NewModelError("Ridge.FitWeighted", "singular matrix", errors.ErrSingularMatrix)
	}

	r.coef = mat.NewVecDense(p, nil)
	if r.fitIntercept {
		r.intercept = beta.AtVec(0)
	} else {
		r.intercept = 0
	}
	for j := 0; j < p; j++ {
		r.coef.SetVec(j, beta.AtVec(j+offset))
	}

	r.SetFitted()
	return nil
}

// Predict は入力データに対する予測を行う
func (r *Ridge) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("Ridge", "Predict")
	}

	n, p := X.Dims()
	if p != r.nFeatures {
		return nil, errors.NewDimensionError("Ridge.Predict", r.nFeatures, p, 1)
	}

	pred := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		v := r.intercept
		for j := 0; j < p; j++ {
			v += X.At(i, j) * r.coef.AtVec(j)
		}
		pred.Set(i, 0, v)
	}
	return pred, nil
}

// Coef は学習された係数ベクトルを返す
// LIMEでは解釈可能空間における説明として利用される
func (r *Ridge) Coef() (*mat.VecDense, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("Ridge", "Coef")
	}
	out := mat.NewVecDense(r.coef.Len(), nil)
	out.CopyVec(r.coef)
	return out, nil
}

// Weights は学習された重み（係数）を返す
func (r *Ridge) Weights() []float64 {
	if r.coef == nil {
		return nil
	}
	out := make([]float64, r.coef.Len())
	copy(out, r.coef.RawVector().Data)
	return out
}

// Intercept は学習された切片を返す
func (r *Ridge) Intercept() float64 {
	return r.intercept
}
