// Package bloom implements a Bloom filter for membership testing.
package bloom

import (
	"math"

	"github.com/spaolacci/murmur3"
)

// BloomFilter is a probabilistic data structure for testing set membership.
// It allows false positives but not false negatives.
type BloomFilter struct {
	bitset []byte // Bit array
	k      uint   // Number of hash functions
	m      uint   // Size of the filter in bits
}

// New creates a Bloom filter optimized for the expected number of elements.
// The bitsPerElement parameter affects the false positive rate.
func New(n, bitsPerElement int) *BloomFilter {
	if n <= 0 {
		n = 1
	}
	if bitsPerElement <= 0 {
		bitsPerElement = 10
	}

	m := max(uint(n*bitsPerElement), 8)

	// k = (m/n) * ln(2)
	k := uint(math.Ceil(float64(m) / float64(n) * math.Log(2)))
	k = min(max(k, 1), 30)

	return &BloomFilter{
		bitset: make([]byte, (m+7)/8),
		k:      k,
		m:      m,
	}
}

// locations derives the k bit positions of key from one 128-bit murmur3
// hash, combining its halves as h1 + i*h2.
func (b *BloomFilter) locations(key string) []uint {
	h1, h2 := murmur3.Sum128([]byte(key))
	locs := make([]uint, b.k)
	for i := range b.k {
		locs[i] = uint((h1 + uint64(i)*h2) % uint64(b.m))
	}
	return locs
}

// Add adds a key to the Bloom filter.
func (b *BloomFilter) Add(key string) {
	for _, loc := range b.locations(key) {
		b.bitset[loc/8] |= 1 << (loc % 8)
	}
}

// MayContain tests if a key may be in the Bloom filter.
// Returns true if the key might be in the set, false if it definitely is not.
func (b *BloomFilter) MayContain(key string) bool {
	for _, loc := range b.locations(key) {
		if b.bitset[loc/8]&(1<<(loc%8)) == 0 {
			return false
		}
	}
	return true
}

// EstimateFalsePositiveRate estimates the false positive rate.
func (b *BloomFilter) EstimateFalsePositiveRate(numElements int) float64 {
	if numElements <= 0 {
		return 0.0
	}

	// P = (1 - e^(-k*n/m))^k
	exponent := -float64(b.k) * float64(numElements) / float64(b.m)
	return math.Pow(1.0-math.Exp(exponent), float64(b.k))
}

// Size returns the size of the filter in bits.
func (b *BloomFilter) Size() uint {
	return b.m
}

// NumHashFunctions returns the number of hash functions.
func (b *BloomFilter) NumHashFunctions() uint {
	return b.k
}
