package rbtree_test

import (
	"math/rand"
	"slices"
	"strconv"
	"testing"

	"github.com/AlonMell/grove/v2/internal/rbtree"
)

const (
	BENCH_SIZE = 10_000
	SIZE       = 2_000
	SOURCE     = 42
)

var strCmp = rbtree.Compare[string]

func TestRBInsert(t *testing.T) {
	r := rand.New(rand.NewSource(SOURCE))
	random := generateRandomStrings(r, SIZE)
	sorted := slices.Clone(random)
	slices.Sort(sorted)
	reversed := slices.Clone(sorted)
	slices.Reverse(reversed)
	shuffled := slices.Clone(random)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	tests := []struct {
		name  string
		input []string
	}{
		{"Empty", []string{}},
		{"Single", []string{"1"}},
		{"Shuffled", shuffled},
		{"Sorted", sorted},
		{"Reversed", reversed},
		{"LargeRandom", random},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rb rbtree.Tree[string, string]
			for i, v := range tt.input {
				rb = rbtree.Set(rb, v, v, strCmp)
				if err := rbtree.Verify(rb, strCmp); err != nil {
					t.Fatalf("RBTree properties violated after inserting %s (iteration %d): %v", v, i, err)
				}
			}

			if got := rb.Len(); got != len(tt.input) {
				t.Errorf("Len() = %d, want %d", got, len(tt.input))
			}
			if !slices.IsSorted(slices.Collect(rb.Keys())) {
				t.Errorf("in-order keys are not sorted for input %v", tt.name)
			}
		})
	}
}

func TestRBDelete(t *testing.T) {
	r := rand.New(rand.NewSource(SOURCE))
	t.Run("LargeDataset", func(t *testing.T) {
		var rb rbtree.Tree[string, string]
		keys := generateRandomStrings(r, SIZE)

		for _, k := range keys {
			rb = rbtree.Set(rb, k, k, strCmp)
		}

		for _, k := range keys {
			if !rbtree.Has(rb, k, strCmp) {
				t.Errorf("Key %s should exist before deletion", k)
			}
		}

		r.Shuffle(len(keys), func(i, j int) {
			keys[i], keys[j] = keys[j], keys[i]
		})

		for i, k := range keys {
			rb = rbtree.Del(rb, k, strCmp)
			if rbtree.Has(rb, k, strCmp) {
				t.Fatalf("Key %s still exists after deletion (iteration %d)", k, i)
			}
			if err := rbtree.Verify(rb, strCmp); err != nil {
				t.Fatalf("RBTree properties violated after deleting %s (iteration %d): %v", k, i, err)
			}
			if got, want := rb.Len(), len(keys)-i-1; got != want {
				t.Fatalf("Len() = %d after %d deletions, want %d", got, i+1, want)
			}
		}

		if !rb.IsEmpty() {
			t.Errorf("tree not empty after deleting every key: %v", rb)
		}
	})

	t.Run("KeyDoesntExist", func(t *testing.T) {
		rb := rbtree.Singleton("present", "v")
		after := rbtree.Del(rb, "nonexistent", strCmp)
		if after != rb {
			t.Error("deleting an absent key should return the same tree")
		}
		if empty := rbtree.Del(rbtree.Empty[string, string](), "nonexistent", strCmp); !empty.IsEmpty() {
			t.Error("deleting from the empty tree should give the empty tree")
		}
	})

	t.Run("MinMax", func(t *testing.T) {
		var rb rbtree.Tree[int, int]
		for _, k := range r.Perm(SIZE) {
			rb = rbtree.Set(rb, k, k, rbtree.Compare[int])
		}
		for i := 0; i < SIZE/2; i++ {
			if k, _ := rbtree.Min(rb); k != i {
				t.Fatalf("Min() = %d, want %d", k, i)
			}
			if k, _ := rbtree.Max(rb); k != SIZE-1-i {
				t.Fatalf("Max() = %d, want %d", k, SIZE-1-i)
			}
			rb = rbtree.DelMax(rbtree.DelMin(rb))
			if err := rbtree.Verify(rb, rbtree.Compare[int]); err != nil {
				t.Fatalf("RBTree properties violated after removing extremes (iteration %d): %v", i, err)
			}
		}
		if !rb.IsEmpty() {
			t.Errorf("tree not empty after removing every extreme: %v", rb)
		}
	})
}

func TestRBFind(t *testing.T) {
	r := rand.New(rand.NewSource(SOURCE))
	var rb rbtree.Tree[string, string]
	keys := generateRandomStrings(r, SIZE)

	for _, k := range keys {
		rb = rbtree.Set(rb, k, k, strCmp)
	}

	r.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})

	t.Run("KeyExists", func(t *testing.T) {
		for _, k := range keys {
			if value, exists := rbtree.Get(rb, k, strCmp); !exists {
				t.Errorf("Key %s not found", k)
			} else if value != k {
				t.Errorf("Key %s found with wrong value %s", k, value)
			}
		}
	})

	emptied := rb
	for _, k := range keys {
		emptied = rbtree.Del(emptied, k, strCmp)
	}

	t.Run("KeyDoesntExist", func(t *testing.T) {
		for _, k := range keys {
			if _, exists := rbtree.Get(emptied, k, strCmp); exists {
				t.Errorf("Key %s found but it's deleted", k)
			}
		}
	})

	t.Run("OldVersionIntact", func(t *testing.T) {
		for _, k := range keys {
			if !rbtree.Has(rb, k, strCmp) {
				t.Errorf("Key %s vanished from the version built before deletion", k)
			}
		}
		if err := rbtree.Verify(rb, strCmp); err != nil {
			t.Errorf("old version damaged: %v", err)
		}
	})
}

// Helpers
func generateRandomStrings(r *rand.Rand, size int) []string {
	arr := make([]string, size)
	for i := range arr {
		arr[i] = strconv.Itoa(i)
	}

	r.Shuffle(size, func(i, j int) {
		arr[i], arr[j] = arr[j], arr[i]
	})

	return arr
}

func buildInts(keys ...int) rbtree.Tree[int, int] {
	var t rbtree.Tree[int, int]
	for _, k := range keys {
		t = rbtree.Set(t, k, k, rbtree.Compare[int])
	}
	return t
}

func intRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}

func BenchmarkInsert(b *testing.B) {
	sizes := []int{100, 1000, 10000}
	for _, size := range sizes {
		name := "Size-" + strconv.Itoa(size)
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				var rb rbtree.Tree[string, string]
				for n := 0; n < size; n++ {
					rb = rbtree.Set(rb, strconv.Itoa(n), strconv.Itoa(n), strCmp)
				}
			}
		})
	}
}

func BenchmarkDelete(b *testing.B) {
	var rb rbtree.Tree[string, string]
	for n := 0; n < BENCH_SIZE; n++ {
		rb = rbtree.Set(rb, strconv.Itoa(n), "value", strCmp)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rbtree.Del(rb, strconv.Itoa(i%BENCH_SIZE), strCmp)
	}
}

func BenchmarkSearch(b *testing.B) {
	var rb rbtree.Tree[string, string]
	for n := 0; n < BENCH_SIZE; n++ {
		rb = rbtree.Set(rb, strconv.Itoa(n), strconv.Itoa(n), strCmp)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rbtree.Has(rb, strconv.Itoa(i%BENCH_SIZE), strCmp)
	}
}

func BenchmarkUnion(b *testing.B) {
	small := buildInts(intRange(0, 100)...)
	large := buildInts(intRange(50, BENCH_SIZE)...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rbtree.Union(large, small, rbtree.Compare[int])
	}
}
