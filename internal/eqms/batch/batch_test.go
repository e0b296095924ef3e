package batch

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func intFetcher(calls *[][]int64) FetchFunc[int64, int64] {
	return func(ids []int64) (map[int64]int64, error) {
		*calls = append(*calls, append([]int64(nil), ids...))
		out := make(map[int64]int64, len(ids))
		for _, id := range ids {
			out[id] = id * 10
		}
		return out, nil
	}
}

func TestFetchSplitsIntoBatches(t *testing.T) {
	ids := make([]int64, 45)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	var calls [][]int64
	got := Fetch(zap.NewNop(), ids, 30, intFetcher(&calls))

	if len(calls) != 2 {
		t.Fatalf("expected 2 batch queries, got %d", len(calls))
	}
	if len(calls[0]) != 30 || len(calls[1]) != 15 {
		t.Fatalf("unexpected batch sizes: %d, %d", len(calls[0]), len(calls[1]))
	}
	if len(got) != 45 {
		t.Fatalf("expected 45 entries, got %d", len(got))
	}
	if got[7] != 70 {
		t.Fatalf("expected 70 for id 7, got %d", got[7])
	}
}

func TestFetchMatchesUnbatchedResult(t *testing.T) {
	ids := make([]int64, 100)
	for i := range ids {
		ids[i] = int64(i)
	}

	var unbatchedCalls [][]int64
	unbatched := Fetch(zap.NewNop(), ids, len(ids), intFetcher(&unbatchedCalls))

	for _, size := range []int{1, 7, 30, 99, 1000} {
		var calls [][]int64
		got := Fetch(zap.NewNop(), ids, size, intFetcher(&calls))
		if !reflect.DeepEqual(got, unbatched) {
			t.Fatalf("size %d: merged map differs from unbatched result", size)
		}
	}
}

func TestFetchOmitsFailedBatch(t *testing.T) {
	ids := make([]int64, 60)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	call := 0
	got := Fetch(zap.NewNop(), ids, 30, func(batch []int64) (map[int64]int64, error) {
		call++
		if call == 2 {
			return nil, errors.New("query timeout")
		}
		out := make(map[int64]int64, len(batch))
		for _, id := range batch {
			out[id] = 1
		}
		return out, nil
	})

	// 실패한 두 번째 배치(31..60)는 결과에서 빠지고 첫 배치만 남는다.
	if len(got) != 30 {
		t.Fatalf("expected 30 entries after partial failure, got %d", len(got))
	}
	if _, ok := got[31]; ok {
		t.Fatal("entry from failed batch should be absent")
	}
	if _, ok := got[30]; !ok {
		t.Fatal("entry from successful batch should be present")
	}
}

func TestFetchEmptyInput(t *testing.T) {
	called := false
	got := Fetch(zap.NewNop(), nil, 30, func(ids []int64) (map[int64]int64, error) {
		called = true
		return nil, nil
	})
	if called {
		t.Fatal("fetch fn should not be called for empty input")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %d entries", len(got))
	}
}

func TestFetchDefaultsSize(t *testing.T) {
	ids := make([]int64, 31)
	for i := range ids {
		ids[i] = int64(i)
	}
	var calls [][]int64
	Fetch(zap.NewNop(), ids, 0, intFetcher(&calls))
	if len(calls) != 2 {
		t.Fatalf("expected DefaultSize batching, got %d calls", len(calls))
	}
}
