package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/metrics"
	"github.com/YuminosukeSato/xaigo/pkg/errors"
)

func TestRidgeFitWeightedRecoversLinearTarget(t *testing.T) {
	// y = 3*x0 - 2*x1 + 1; with tiny alpha the fit should be close.
	X := mat.NewDense(6, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
		2, 1,
		1, 2,
	})
	y := mat.NewVecDense(6, []float64{1, 4, -1, 2, 5, 0})
	w := mat.NewVecDense(6, []float64{1, 1, 1, 1, 1, 1})

	r := NewRidge(WithAlpha(1e-8))
	if err := r.FitWeighted(X, y, w); err != nil {
		t.Fatalf("FitWeighted failed: %v", err)
	}

	coef, err := r.Coef()
	if err != nil {
		t.Fatalf("Coef failed: %v", err)
	}
	if math.Abs(coef.AtVec(0)-3) > 1e-4 {
		t.Errorf("coef[0] = %v, want ~3", coef.AtVec(0))
	}
	if math.Abs(coef.AtVec(1)+2) > 1e-4 {
		t.Errorf("coef[1] = %v, want ~-2", coef.AtVec(1))
	}
	if math.Abs(r.Intercept()-1) > 1e-4 {
		t.Errorf("intercept = %v, want ~1", r.Intercept())
	}
}

func TestRidgeWeightsFocusTheFit(t *testing.T) {
	// Two inconsistent clusters of points; the heavily weighted cluster
	// should dominate the fitted slope.
	X := mat.NewDense(4, 1, []float64{0, 1, 0, 1})
	y := mat.NewVecDense(4, []float64{0, 1, 0, -1})
	w := mat.NewVecDense(4, []float64{100, 100, 0.001, 0.001})

	r := NewRidge(WithAlpha(1e-6))
	if err := r.FitWeighted(X, y, w); err != nil {
		t.Fatalf("FitWeighted failed: %v", err)
	}

	coef, err := r.Coef()
	if err != nil {
		t.Fatalf("Coef failed: %v", err)
	}
	if math.Abs(coef.AtVec(0)-1) > 1e-2 {
		t.Errorf("coef[0] = %v, want ~1 (dominated by weighted samples)", coef.AtVec(0))
	}
}

func TestRidgeRegularizationShrinksCoefficients(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y := mat.NewVecDense(4, []float64{0, 2, 4, 6})
	w := mat.NewVecDense(4, []float64{1, 1, 1, 1})

	small := NewRidge(WithAlpha(1e-8))
	if err := small.FitWeighted(X, y, w); err != nil {
		t.Fatalf("FitWeighted failed: %v", err)
	}
	large := NewRidge(WithAlpha(100))
	if err := large.FitWeighted(X, y, w); err != nil {
		t.Fatalf("FitWeighted failed: %v", err)
	}

	cs, _ := small.Coef()
	cl, _ := large.Coef()
	if !(math.Abs(cl.AtVec(0)) < math.Abs(cs.AtVec(0))) {
		t.Errorf("larger alpha should shrink the coefficient: %v vs %v", cl.AtVec(0), cs.AtVec(0))
	}
}

func TestRidgeErrorCases(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{
			name: "row mismatch",
			fn: func() error {
				X := mat.NewDense(3, 1, []float64{1, 2, 3})
				y := mat.NewVecDense(2, []float64{1, 2})
				w := mat.NewVecDense(3, []float64{1, 1, 1})
				return NewRidge().FitWeighted(X, y, w)
			},
		},
		{
			name: "weight mismatch",
			fn: func() error {
				X := mat.NewDense(3, 1, []float64{1, 2, 3})
				y := mat.NewVecDense(3, []float64{1, 2, 3})
				w := mat.NewVecDense(2, []float64{1, 1})
				return NewRidge().FitWeighted(X, y, w)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var dimErr *errors.DimensionError
			if !errors.As(err, &dimErr) {
				t.Errorf("expected DimensionError, got %T: %v", err, err)
			}
		})
	}
}

func TestRidgeNotFitted(t *testing.T) {
	r := NewRidge()

	if _, err := r.Coef(); err == nil {
		t.Error("Coef before Fit should fail")
	}
	if _, err := r.Predict(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Predict before Fit should fail")
	}
}

func TestRidgePredict(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0, 1, 2})
	y := mat.NewVecDense(3, []float64{1, 3, 5})
	w := mat.NewVecDense(3, []float64{1, 1, 1})

	r := NewRidge(WithAlpha(1e-8))
	if err := r.FitWeighted(X, y, w); err != nil {
		t.Fatalf("FitWeighted failed: %v", err)
	}

	pred, err := r.Predict(mat.NewDense(2, 1, []float64{3, 4}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if math.Abs(pred.At(0, 0)-7) > 1e-3 || math.Abs(pred.At(1, 0)-9) > 1e-3 {
		t.Errorf("predictions = [%v %v], want [~7 ~9]", pred.At(0, 0), pred.At(1, 0))
	}

	// Feature-count mismatch surfaces as a dimension error.
	if _, err := r.Predict(mat.NewDense(1, 2, []float64{1, 2})); err == nil {
		t.Error("Predict with wrong feature count should fail")
	}
}

func TestRidgeSurrogateFidelity(t *testing.T) {
	// With negligible regularization on an exactly linear target, the
	// in-sample fidelity metrics must be near perfect.
	X := mat.NewDense(5, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
		2, 2,
	})
	y := mat.NewVecDense(5, []float64{1, 3, 0, 2, 3})
	w := mat.NewVecDense(5, []float64{0.9, 1.0, 0.8, 1.0, 0.7})

	r := NewRidge(WithAlpha(1e-9))
	if err := r.FitWeighted(X, y, w); err != nil {
		t.Fatalf("FitWeighted failed: %v", err)
	}

	pred, err := r.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	yPred := mat.NewVecDense(5, nil)
	for i := 0; i < 5; i++ {
		yPred.SetVec(i, pred.At(i, 0))
	}

	r2, err := metrics.R2Score(y, yPred)
	if err != nil {
		t.Fatalf("R2Score failed: %v", err)
	}
	if r2 < 1-1e-6 {
		t.Errorf("R2 = %v, want ~1", r2)
	}

	wr2, err := metrics.WeightedR2Score(y, yPred, w)
	if err != nil {
		t.Fatalf("WeightedR2Score failed: %v", err)
	}
	if wr2 < 1-1e-6 {
		t.Errorf("weighted R2 = %v, want ~1", wr2)
	}

	mse, err := metrics.WeightedMSE(y, yPred, w)
	if err != nil {
		t.Fatalf("WeightedMSE failed: %v", err)
	}
	if mse > 1e-6 {
		t.Errorf("weighted MSE = %v, want ~0", mse)
	}
}
