package lime

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/core/tensor"
	"github.com/YuminosukeSato/xaigo/pkg/errors"
)

// recordingModel scores each image by its data sum and records every
// sub-batch size it was called with.
type recordingModel struct {
	batchSizes []int
}

func (m *recordingModel) Predict(batch []*tensor.Image) (*mat.Dense, error) {
	m.batchSizes = append(m.batchSizes, len(batch))
	out := mat.NewDense(len(batch), 2, nil)
	for i, img := range batch {
		sum := 0.0
		for _, v := range img.Data {
			sum += v
		}
		out.Set(i, 0, sum)
		out.Set(i, 1, -sum)
	}
	return out, nil
}

func makeBatch(n int) []*tensor.Image {
	batch := make([]*tensor.Image, n)
	for i := range batch {
		batch[i] = constantImage(2, 2, 1, float64(i))
	}
	return batch
}

func TestBatchPredictionsSubBatching(t *testing.T) {
	model := &recordingModel{}
	label := mat.NewVecDense(2, []float64{1, 0})

	scores, err := batchPredictions(model, makeBatch(10), label, 4)
	if err != nil {
		t.Fatalf("batchPredictions failed: %v", err)
	}
	if got, want := model.batchSizes, []int{4, 4, 2}; len(got) != len(want) {
		t.Fatalf("batch sizes = %v, want %v", got, want)
	} else {
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("batch sizes = %v, want %v", got, want)
			}
		}
	}

	// Each image sums to 4*i; the one-hot label selects class 0.
	for i := 0; i < 10; i++ {
		if got, want := scores.AtVec(i), 4.0*float64(i); got != want {
			t.Errorf("score[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestBatchPredictionsUnbatched(t *testing.T) {
	model := &recordingModel{}
	label := mat.NewVecDense(2, []float64{0, 1})

	scores, err := batchPredictions(model, makeBatch(5), label, 0)
	if err != nil {
		t.Fatalf("batchPredictions failed: %v", err)
	}
	if len(model.batchSizes) != 1 || model.batchSizes[0] != 5 {
		t.Fatalf("batch sizes = %v, want a single call of size 5", model.batchSizes)
	}
	// The second class is the negated sum.
	for i := 0; i < 5; i++ {
		if got, want := scores.AtVec(i), -4.0*float64(i); got != want {
			t.Errorf("score[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestBatchPredictionsEmptyBatch(t *testing.T) {
	model := &recordingModel{}
	label := mat.NewVecDense(2, []float64{1, 0})

	_, err := batchPredictions(model, nil, label, 1)
	if err == nil {
		t.Fatal("expected error for empty batch")
	}
	if !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData in chain, got %v", err)
	}
}

func TestBatchPredictionsShapeMismatch(t *testing.T) {
	badRows := ModelFunc(func(batch []*tensor.Image) (*mat.Dense, error) {
		return mat.NewDense(len(batch)+1, 2, nil), nil
	})
	badCols := ModelFunc(func(batch []*tensor.Image) (*mat.Dense, error) {
		return mat.NewDense(len(batch), 3, nil), nil
	})
	label := mat.NewVecDense(2, []float64{1, 0})

	if _, err := batchPredictions(badRows, makeBatch(3), label, 0); err == nil {
		t.Error("expected error for row count mismatch")
	}
	if _, err := batchPredictions(badCols, makeBatch(3), label, 0); err == nil {
		t.Error("expected error for class count mismatch")
	}
}

func TestBatchPredictionsModelFailure(t *testing.T) {
	failing := ModelFunc(func(batch []*tensor.Image) (*mat.Dense, error) {
		return nil, errors.New("inference backend unavailable")
	})
	label := mat.NewVecDense(2, []float64{1, 0})

	_, err := batchPredictions(failing, makeBatch(3), label, 0)
	if err == nil {
		t.Fatal("expected propagated model error")
	}
	var modelErr *errors.ModelError
	if !errors.As(err, &modelErr) {
		t.Errorf("expected ModelError, got %T: %v", err, err)
	}
}
