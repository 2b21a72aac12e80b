package hashfam

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Vectorizer projects a payload into a fixed-dimension real vector, the input
// SuperBit needs to compute random-hyperplane sign bits.
type Vectorizer[T any] func(payload T) []float64

// NewSuperBit builds a stage-indexed hash family approximating cosine
// similarity via the SuperBit random-hyperplane scheme (Ji et al.): each
// stage draws bitsPerStage independent random hyperplanes in R^dim, and an
// item's bucket code is the bitsPerStage-bit pattern of which side of each
// hyperplane its vector falls on. totalStages bounds how many stages will
// ever be requested so every hyperplane can be drawn once, up front, from a
// single seeded source.
func NewSuperBit[T any](vectorizer Vectorizer[T], dim, bitsPerStage, totalStages int, seed int64) func(payload T, stage int) uint64 {
	if bitsPerStage < 1 {
		bitsPerStage = 1
	}
	if bitsPerStage > 63 {
		bitsPerStage = 63
	}
	if totalStages < 1 {
		totalStages = 1
	}

	rng := rand.New(rand.NewSource(seed))
	rows := totalStages * bitsPerStage
	data := make([]float64, rows*dim)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	hyperplanes := mat.NewDense(rows, dim, data)

	return func(payload T, stage int) uint64 {
		v := vectorizer(payload)
		vec := mat.NewVecDense(len(v), v)

		base := (stage % totalStages) * bitsPerStage
		var code uint64
		for bit := 0; bit < bitsPerStage; bit++ {
			row := hyperplanes.RowView(base + bit)
			dot := mat.Dot(row, vec)
			if dot > 0 {
				code |= 1 << uint(bit)
			}
		}

		return code
	}
}
