package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBM25(t *testing.T) {
	t.Run("zero term frequency scores zero", func(t *testing.T) {
		assert.Zero(t, BM25(0, 3, 10, 10, 100, DefaultBM25))
	})

	t.Run("empty corpus scores zero", func(t *testing.T) {
		assert.Zero(t, BM25(1, 1, 10, 10, 0, DefaultBM25))
	})

	t.Run("unseen token scores zero", func(t *testing.T) {
		assert.Zero(t, BM25(1, 0, 10, 10, 100, DefaultBM25))
	})

	t.Run("term in every document still scores positive", func(t *testing.T) {
		assert.Greater(t, BM25(1, 100, 10, 10, 100, DefaultBM25), 0.0)
	})

	t.Run("rarer terms score higher", func(t *testing.T) {
		rare := BM25(1, 1, 10, 10, 100, DefaultBM25)
		common := BM25(1, 50, 10, 10, 100, DefaultBM25)
		assert.Greater(t, rare, common)
	})

	t.Run("higher frequency scores higher with saturation", func(t *testing.T) {
		one := BM25(1, 5, 10, 10, 100, DefaultBM25)
		two := BM25(2, 5, 10, 10, 100, DefaultBM25)
		ten := BM25(10, 5, 10, 10, 100, DefaultBM25)
		assert.Greater(t, two, one)
		assert.Greater(t, ten, two)
		assert.Less(t, ten-two, two-one)
	})

	t.Run("longer fields are penalized", func(t *testing.T) {
		short := BM25(2, 5, 5, 10, 100, DefaultBM25)
		long := BM25(2, 5, 30, 10, 100, DefaultBM25)
		assert.Greater(t, short, long)
	})

	t.Run("zero params fall back to defaults", func(t *testing.T) {
		assert.Equal(t,
			BM25(2, 5, 10, 10, 100, DefaultBM25),
			BM25(2, 5, 10, 10, 100, BM25Params{}))
	})

	t.Run("delta lifts matched documents", func(t *testing.T) {
		plain := BM25(1, 5, 40, 10, 100, BM25Params{K: 1.5, B: 0.75})
		lifted := BM25(1, 5, 40, 10, 100, BM25Params{K: 1.5, B: 0.75, D: 0.5})
		assert.Greater(t, lifted, plain)
	})
}
