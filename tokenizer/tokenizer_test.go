package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShingles(t *testing.T) {
	t.Run("every contiguous pair in order", func(t *testing.T) {
		assert.Equal(t, []string{"wi", "il", "ll", "li", "ia", "am"}, Shingles("William", 2))
	})

	t.Run("count is rune count minus size plus one", func(t *testing.T) {
		for _, text := range []string{"William Smith", "ab", "Ann Lee", "482 Maple Street"} {
			for size := 1; size <= 4; size++ {
				got := Shingles(text, size)
				runes := len([]rune(text))
				if runes < size {
					assert.Empty(t, got, "text %q size %d", text, size)
					continue
				}
				assert.Len(t, got, runes-size+1, "text %q size %d", text, size)
			}
		}
	})

	t.Run("lowercases before slicing", func(t *testing.T) {
		assert.Equal(t, Shingles("ann lee", 2), Shingles("ANN LEE", 2))
		assert.Equal(t, Shingles("william smith", 3), Shingles("William Smith", 3))
	})

	t.Run("input shorter than size yields nothing", func(t *testing.T) {
		assert.Empty(t, Shingles("a", 2))
		assert.Empty(t, Shingles("", 2))
		assert.Empty(t, Shingles("ab", 3))
	})

	t.Run("size one is single runes", func(t *testing.T) {
		assert.Equal(t, []string{"a", "n", "n"}, Shingles("Ann", 1))
	})

	t.Run("multibyte runes count as one position", func(t *testing.T) {
		assert.Equal(t, []string{"ça", "ağ", "ğl", "la"}, Shingles("Çağla", 2))
	})

	t.Run("non-positive size yields nothing", func(t *testing.T) {
		assert.Empty(t, Shingles("abc", 0))
		assert.Empty(t, Shingles("abc", -1))
	})
}

func TestConfigTokenize(t *testing.T) {
	t.Run("zero size falls back to default", func(t *testing.T) {
		assert.Equal(t, Shingles("maple", DefaultSize), Config{}.Tokenize("maple"))
	})

	t.Run("explicit size is honored", func(t *testing.T) {
		assert.Equal(t, Shingles("maple", 3), Config{Size: 3}.Tokenize("maple"))
	})

	t.Run("diacritics kept by default", func(t *testing.T) {
		assert.Equal(t, []string{"jo", "os", "sé"}, Config{}.Tokenize("José"))
	})

	t.Run("diacritics folded when enabled", func(t *testing.T) {
		cfg := Config{FoldDiacritics: true}
		assert.Equal(t, cfg.Tokenize("Jose"), cfg.Tokenize("José"))
	})
}

func TestFold(t *testing.T) {
	assert.Equal(t, "Jose", Fold("José"))
	assert.Equal(t, "Munchen", Fold("München"))
	assert.Equal(t, "plain", Fold("plain"))
}
