package lib

import (
	"fmt"
	"hash/crc32"

	"github.com/oarkflow/json"
)

// ToString renders an arbitrary value the way fmt would; callers that
// need canonical number forms stringify before reaching here.
func ToString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Unique keeps the first occurrence of each element, preserving order.
func Unique[T comparable](slice []T) (result []T) {
	seen := make(map[T]struct{}, len(slice))
	for _, v := range slice {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}

// CRC32Checksum hashes any JSON-encodable value; 0 means the value could
// not be encoded and callers should skip caching for it.
func CRC32Checksum(data any) int64 {
	bt, err := json.Marshal(data)
	if err != nil {
		return 0
	}
	return int64(crc32.Checksum(bt, crc32.MakeTable(crc32.IEEE)))
}

// Paginate clamps an offset/limit window to a slice length.
func Paginate(offset, limit, sliceLength int) (int, int) {
	if offset > sliceLength {
		offset = sliceLength
	}
	end := offset + limit
	if end > sliceLength {
		end = sliceLength
	}
	return offset, end
}
