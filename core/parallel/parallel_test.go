package parallel

import (
	"fmt"
	"sync/atomic"
	"testing"
)

func TestParallelize(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{name: "zero items", items: 0},
		{name: "single item", items: 1},
		{name: "fewer items than cores", items: 3},
		{name: "many items", items: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var count int64
			Parallelize(tt.items, func(start, end int) {
				atomic.AddInt64(&count, int64(end-start))
			})
			if count != int64(tt.items) {
				t.Errorf("covered %d items, want %d", count, tt.items)
			}
		})
	}
}

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	const items = 257
	seen := make([]int64, items)
	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt64(&seen[i], 1)
		}
	})
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, n)
		}
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	// Below threshold the whole range arrives in one sequential call.
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("sequential call got range [%d,%d), want [0,10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected exactly one sequential call, got %d", calls)
	}

	// Above threshold every index is still covered.
	var count int64
	ParallelizeWithThreshold(1000, 100, func(start, end int) {
		atomic.AddInt64(&count, int64(end-start))
	})
	if count != 1000 {
		t.Errorf("covered %d items, want 1000", count)
	}
}

func TestParallelizeWithError(t *testing.T) {
	if err := ParallelizeWithError(100, func(start, end int) error {
		return nil
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	err := ParallelizeWithError(100, func(start, end int) error {
		if start == 0 {
			return fmt.Errorf("range failure")
		}
		return nil
	})
	if err == nil || err.Error() != "range failure" {
		t.Fatalf("expected range failure, got %v", err)
	}
}
