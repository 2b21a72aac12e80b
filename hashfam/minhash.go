package hashfam

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// minHashPrime is a prime larger than 2^32, used as the modulus for the
// universal hash family a*x + b mod p underlying each MinHash repetition.
const minHashPrime = 4294967311

type minHashParams struct {
	a, b uint64
}

// NewMinHash builds a stage-indexed hash family approximating Jaccard
// similarity: shingler extracts the shingle set from a payload, and
// numHashes independent (a, b) universal hash functions are drawn at
// construction time from seed. Stage s uses hash function s % numHashes,
// so callers should set numHashes >= the LSH builder's nStages to avoid
// repeating the same function across stages.
func NewMinHash[T any](shingler Shingler[T], numHashes int, seed int64) func(payload T, stage int) uint64 {
	if numHashes < 1 {
		numHashes = 1
	}
	rng := rand.New(rand.NewSource(seed))
	params := make([]minHashParams, numHashes)
	for i := range params {
		params[i] = minHashParams{
			a: 1 + uint64(rng.Int63())%(minHashPrime-1),
			b: uint64(rng.Int63()) % minHashPrime,
		}
	}

	return func(payload T, stage int) uint64 {
		shingles := shingler(payload)
		p := params[stage%numHashes]
		minVal := uint64(math.MaxUint64)
		for _, s := range shingles {
			h := fnvHash(s)
			v := (p.a*h + p.b) % minHashPrime
			if v < minVal {
				minVal = v
			}
		}

		return minVal
	}
}

func fnvHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))

	return h.Sum64()
}
