package bloom_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlonMell/grove/v2/internal/lsm/sstable/bloom"
)

func TestSizing(t *testing.T) {
	tests := []struct {
		name    string
		n, bits int
		wantM   uint
		wantK   uint
	}{
		{"TenBitsPerKey", 1000, 10, 10_000, 7},
		{"TwentyBitsPerKey", 1000, 20, 20_000, 14},
		{"NoElementsCountsAsOne", 0, 10, 10, 7},
		{"ZeroBitsFallsBackToTen", 1000, 0, 10_000, 7},
		{"TinyFilterHasEightBits", 1, 1, 8, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bf := bloom.New(tt.n, tt.bits)
			assert.Equal(t, tt.wantM, bf.Size())
			assert.Equal(t, tt.wantK, bf.NumHashFunctions())
		})
	}
}

func TestNoFalseNegatives(t *testing.T) {
	bf := bloom.New(500, 10)
	for i := range 500 {
		bf.Add(fmt.Sprintf("user-%d", i))
	}
	for i := range 500 {
		key := fmt.Sprintf("user-%d", i)
		assert.True(t, bf.MayContain(key), key)
	}
	assert.False(t, bloom.New(10, 10).MayContain("anything"), "an empty filter contains nothing")
}

func TestEstimateFalsePositiveRate(t *testing.T) {
	bf := bloom.New(1000, 10)

	assert.Zero(t, bf.EstimateFalsePositiveRate(0))
	half := bf.EstimateFalsePositiveRate(500)
	full := bf.EstimateFalsePositiveRate(1000)
	over := bf.EstimateFalsePositiveRate(2000)

	assert.InDelta(t, 0.0082, full, 0.001)
	assert.Less(t, half, full)
	assert.Less(t, full, over)
	assert.Less(t, over, 1.0)
}

func TestMeasuredFalsePositiveRate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping false positive measurement in short mode")
	}

	const n = 10_000
	bf := bloom.New(n, 8)
	for i := range n {
		bf.Add(fmt.Sprintf("element-%d", i))
	}

	positives := 0
	for i := range n {
		if bf.MayContain(fmt.Sprintf("test-%d", i)) {
			positives++
		}
	}

	// Double hashing over murmur3 stays close to the estimate, about 2.2%
	// for 8 bits per element.
	measured := float64(positives) / n
	assert.Less(t, measured, 0.04)
	assert.InDelta(t, bf.EstimateFalsePositiveRate(n), measured, 0.015)
}
