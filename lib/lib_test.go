package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "hello", ToString("hello"))
	assert.Equal(t, "42", ToString(42))
	assert.Equal(t, "true", ToString(true))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []int{3, 1, 2}, Unique([]int{3, 1, 3, 2, 1}))
	assert.Nil(t, Unique([]string{}))
}

func TestCRC32Checksum(t *testing.T) {
	t.Run("same value same checksum", func(t *testing.T) {
		a := CRC32Checksum(map[string]string{"q": "william"})
		b := CRC32Checksum(map[string]string{"q": "william"})
		assert.Equal(t, a, b)
		assert.NotZero(t, a)
	})

	t.Run("different values differ", func(t *testing.T) {
		a := CRC32Checksum(map[string]string{"q": "william"})
		b := CRC32Checksum(map[string]string{"q": "maria"})
		assert.NotEqual(t, a, b)
	})

	t.Run("unencodable value yields zero", func(t *testing.T) {
		assert.Zero(t, CRC32Checksum(make(chan int)))
	})
}

func TestPaginate(t *testing.T) {
	start, end := Paginate(0, 10, 25)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = Paginate(20, 10, 25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = Paginate(40, 10, 25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}
