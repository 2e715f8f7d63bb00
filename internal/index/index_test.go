package index

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAddTermFrequencies(t *testing.T) {
	x := New()
	x.Add(1, []string{"fluffy", "cat", "fluffy", "tail"})

	freqs := x.WordFrequencies(1)
	want := map[string]float64{"fluffy": 0.5, "cat": 0.25, "tail": 0.25}
	if len(freqs) != len(want) {
		t.Fatalf("WordFrequencies = %v, want %v", freqs, want)
	}
	for term, tf := range want {
		if !approx(freqs[term], tf) {
			t.Errorf("tf(%q) = %v, want %v", term, freqs[term], tf)
		}
	}
	postings, ok := x.Postings("fluffy")
	if !ok || !approx(postings[1], 0.5) {
		t.Errorf("Postings(fluffy) = %v, %v", postings, ok)
	}
	if x.DocFreq("cat") != 1 || x.DocFreq("dog") != 0 {
		t.Error("DocFreq mismatch")
	}
	if !x.Contains("tail", 1) || x.Contains("tail", 2) {
		t.Error("Contains mismatch")
	}
	if want := []string{"cat", "fluffy", "tail"}; !reflect.DeepEqual(x.Terms(1), want) {
		t.Errorf("Terms = %q, want %q", x.Terms(1), want)
	}
}

func TestWordFrequenciesUnknownAndCopy(t *testing.T) {
	x := New()
	if got := x.WordFrequencies(42); got == nil || len(got) != 0 {
		t.Errorf("unknown doc frequencies = %v", got)
	}
	x.Add(1, []string{"cat"})
	freqs := x.WordFrequencies(1)
	freqs["cat"] = 100
	if approx(x.WordFrequencies(1)["cat"], 100) {
		t.Error("WordFrequencies exposed internal map")
	}
}

func forwardReverseConsistent(t *testing.T, x *Index) {
	t.Helper()
	for term, postings := range x.forward {
		if len(postings) == 0 {
			t.Errorf("empty bucket left for %q", term)
		}
		for id, tf := range postings {
			if !approx(x.reverse[id][term], tf) {
				t.Errorf("forward[%q][%d]=%v but reverse=%v", term, id, tf, x.reverse[id][term])
			}
		}
	}
	for id, freqs := range x.reverse {
		for term, tf := range freqs {
			if !approx(x.forward[term][id], tf) {
				t.Errorf("reverse[%d][%q]=%v but forward=%v", id, term, tf, x.forward[term][id])
			}
		}
	}
}

func TestRemove(t *testing.T) {
	for _, tc := range []struct {
		name   string
		remove func(x *Index, id int)
	}{
		{"sequential", func(x *Index, id int) { x.Remove(id) }},
		{"parallel", func(x *Index, id int) { x.RemoveParallel(id, 4) }},
		{"parallel unbounded", func(x *Index, id int) { x.RemoveParallel(id, 0) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			x := New()
			x.Add(1, []string{"white", "cat", "collar"})
			x.Add(2, []string{"fluffy", "cat", "tail"})

			tc.remove(x, 1)

			if x.DocFreq("white") != 0 || x.DocFreq("collar") != 0 {
				t.Error("terms unique to removed doc were not pruned")
			}
			if x.DocFreq("cat") != 1 {
				t.Errorf("DocFreq(cat) = %d, want 1", x.DocFreq("cat"))
			}
			if x.TermCount() != 3 {
				t.Errorf("TermCount = %d, want 3", x.TermCount())
			}
			if len(x.WordFrequencies(1)) != 0 {
				t.Error("reverse map still holds removed doc")
			}
			forwardReverseConsistent(t, x)

			tc.remove(x, 99)
			if x.TermCount() != 3 {
				t.Error("removing unknown doc changed the index")
			}
		})
	}
}

func TestRemoveParallelMatchesSequential(t *testing.T) {
	build := func() *Index {
		x := New()
		for id := 0; id < 50; id++ {
			terms := make([]string, 0, 20)
			for j := 0; j < 20; j++ {
				terms = append(terms, fmt.Sprintf("t%d", (id*7+j)%60))
			}
			x.Add(id, terms)
		}
		return x
	}
	seq, par := build(), build()
	for id := 0; id < 50; id += 3 {
		seq.Remove(id)
		par.RemoveParallel(id, 8)
	}
	if !reflect.DeepEqual(seq.forward, par.forward) {
		t.Error("forward maps differ")
	}
	if !reflect.DeepEqual(seq.reverse, par.reverse) {
		t.Error("reverse maps differ")
	}
	forwardReverseConsistent(t, par)
}

func BenchmarkIndexAdd(b *testing.B) {
	terms := []string{"this", "is", "a", "benchmark", "document", "with", "several", "terms", "for", "testing"}
	x := New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Add(i, terms)
	}
}

func BenchmarkIndexRemove(b *testing.B) {
	terms := make([]string, 0, 200)
	for j := 0; j < 200; j++ {
		terms = append(terms, fmt.Sprintf("term%d", j))
	}
	for _, mode := range []string{"sequential", "parallel"} {
		b.Run(mode, func(b *testing.B) {
			x := New()
			for i := 0; i < b.N; i++ {
				x.Add(i, terms)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if mode == "parallel" {
					x.RemoveParallel(i, 0)
				} else {
					x.Remove(i)
				}
			}
		})
	}
}
