package ranker

import (
	"math"
	"reflect"
	"testing"
)

func ids(docs []ScoredDoc) []int {
	out := make([]int, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestIDF(t *testing.T) {
	if got := IDF(3, 1); math.Abs(got-math.Log(3)) > 1e-12 {
		t.Errorf("IDF(3,1) = %v", got)
	}
	if got := IDF(4, 4); got != 0 {
		t.Errorf("IDF(4,4) = %v, want 0", got)
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		docs []ScoredDoc
		want []int
	}{
		{
			name: "relevance descending",
			docs: []ScoredDoc{{1, 0.1, 0}, {2, 0.5, 0}, {3, 0.3, 0}},
			want: []int{2, 3, 1},
		},
		{
			name: "epsilon tie falls back to rating",
			docs: []ScoredDoc{{1, 0.5, 1}, {2, 0.5 + 1e-7, 9}, {3, 0.4, 100}},
			want: []int{2, 1, 3},
		},
		{
			name: "outside epsilon ignores rating",
			docs: []ScoredDoc{{1, 0.5, 100}, {2, 0.5 + 1e-5, 0}},
			want: []int{2, 1},
		},
		{
			name: "full tie keeps input order",
			docs: []ScoredDoc{{4, 0.2, 3}, {1, 0.2, 3}, {9, 0.2, 3}},
			want: []int{4, 1, 9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Sort(tt.docs)
			if got := ids(tt.docs); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTop(t *testing.T) {
	docs := make([]ScoredDoc, 8)
	if len(Top(docs, MaxResults)) != MaxResults {
		t.Error("Top did not truncate")
	}
	if len(Top(docs[:3], MaxResults)) != 3 {
		t.Error("Top changed short slice")
	}
	if len(Top(docs, 0)) != 8 {
		t.Error("limit 0 should keep everything")
	}
}

func TestRank(t *testing.T) {
	relevance := map[int]float64{10: 0.1, 3: 0.9, 7: 0.9, 1: 0.2, 2: 0.3, 5: 0.05}
	ratings := map[int]int{3: 1, 7: 5}
	got := Rank(relevance, func(id int) int { return ratings[id] })
	if want := []int{7, 3, 2, 1, 10}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Rank = %v, want %v", ids(got), want)
	}
	if got[0].Rating != 5 {
		t.Errorf("rating not attached: %+v", got[0])
	}
}

func BenchmarkRank(b *testing.B) {
	relevance := make(map[int]float64, 10000)
	for i := 0; i < 10000; i++ {
		relevance[i] = float64(i%97) / 97
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Rank(relevance, func(id int) int { return id % 5 })
	}
}
