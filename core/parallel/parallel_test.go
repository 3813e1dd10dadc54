package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestRanges_CoversEveryIndexOnce(t *testing.T) {
	for _, items := range []int{0, 1, 7, 1000, 4097} {
		hits := make([]int32, items)
		err := Ranges(items, func(start, end int) error {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("items=%d: %v", items, err)
		}
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("items=%d: index %d visited %d times", items, i, h)
			}
		}
	}
}

func TestRanges_ReturnsError(t *testing.T) {
	boom := errors.New("boom")
	err := Ranges(100, func(start, end int) error {
		if start <= 50 && 50 < end {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("Ranges() error = %v, want boom", err)
	}
}

func TestRangesWithThreshold(t *testing.T) {
	calls := 0
	err := RangesWithThreshold(10, 10, func(start, end int) error {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("got range [%d, %d), want [0, 10)", start, end)
		}
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("calls = %d, err = %v; want one sequential call", calls, err)
	}

	if err := RangesWithThreshold(0, 10, func(int, int) error {
		t.Error("fn must not run for an empty range")
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	var total int64
	if err := RangesWithThreshold(5000, 10, func(start, end int) error {
		atomic.AddInt64(&total, int64(end-start))
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if total != 5000 {
		t.Errorf("covered %d items, want 5000", total)
	}
}
