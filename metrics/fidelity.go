// Package metrics はサロゲートモデルの忠実度（fidelity）指標を提供する。
// 摂動サンプル上でのサロゲート予測とブラックボックス出力の一致度を、
// 類似度重み付きで評価する。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/pkg/errors"
)

// MSE は平均二乗誤差を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("metrics.MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("metrics.MSE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE は平方根平均二乗誤差を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// WeightedMSE は重み付き平均二乗誤差を計算する。サロゲート学習に使った
// 類似度重みをそのまま渡すことで、原入力の近傍での忠実度が得られる。
func WeightedMSE(yTrue, yPred, weights *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("metrics.WeightedMSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("metrics.WeightedMSE", n, yPred.Len(), 0)
	}
	if weights.Len() != n {
		return 0, errors.NewDimensionError("metrics.WeightedMSE", n, weights.Len(), 0)
	}

	var sum, wSum float64
	for i := 0; i < n; i++ {
		w := weights.AtVec(i)
		if w < 0 {
			return 0, errors.NewValueError("metrics.WeightedMSE", "negative weight")
		}
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += w * diff * diff
		wSum += w
	}
	if wSum == 0 {
		return 0, errors.NewValueError("metrics.WeightedMSE", "weights sum to zero")
	}
	return sum / wSum, nil
}

// R2Score は決定係数（R²）を計算する
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("metrics.R2Score", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("metrics.R2Score", n, yPred.Len(), 0)
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		t := yTrue.AtVec(i)
		p := yPred.AtVec(i)
		tss += (t - yMean) * (t - yMean)
		rss += (t - p) * (t - p)
	}

	// yTrueに分散がない場合は決定係数が定義できない
	if tss == 0 {
		return 0, errors.Newf("metrics.R2Score: no variance in yTrue")
	}
	return 1 - rss/tss, nil
}

// WeightedR2Score は重み付き決定係数を計算する
func WeightedR2Score(yTrue, yPred, weights *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("metrics.WeightedR2Score", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("metrics.WeightedR2Score", n, yPred.Len(), 0)
	}
	if weights.Len() != n {
		return 0, errors.NewDimensionError("metrics.WeightedR2Score", n, weights.Len(), 0)
	}

	var wSum, yMean float64
	for i := 0; i < n; i++ {
		w := weights.AtVec(i)
		if w < 0 {
			return 0, errors.NewValueError("metrics.WeightedR2Score", "negative weight")
		}
		wSum += w
		yMean += w * yTrue.AtVec(i)
	}
	if wSum == 0 {
		return 0, errors.NewValueError("metrics.WeightedR2Score", "weights sum to zero")
	}
	yMean /= wSum

	var tss, rss float64
	for i := 0; i < n; i++ {
		w := weights.AtVec(i)
		t := yTrue.AtVec(i)
		p := yPred.AtVec(i)
		tss += w * (t - yMean) * (t - yMean)
		rss += w * (t - p) * (t - p)
	}
	if tss == 0 {
		return 0, errors.Newf("metrics.WeightedR2Score: no variance in yTrue")
	}
	return 1 - rss/tss, nil
}
