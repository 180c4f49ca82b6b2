package lib

import (
	"io"

	"github.com/oarkflow/msgpack"
)

// Encode serializes a value to MessagePack bytes; nil on failure.
func Encode[V any](value V) []byte {
	bt, err := msgpack.Marshal(value)
	if err != nil {
		return nil
	}
	return bt
}

// Decode deserializes MessagePack bytes produced by Encode.
func Decode[V any](data []byte) (V, error) {
	var value V
	err := msgpack.Unmarshal(data, &value)
	return value, err
}

// EncodeStream appends one MessagePack value to a writer; values written
// back to back form a stream DecodeStream can drain.
func EncodeStream[V any](w io.Writer, value V) error {
	return msgpack.NewEncoder(w).Encode(value)
}

// DecodeStream reads consecutive MessagePack values until EOF, invoking
// fn for each. A decode error mid-stream aborts and is returned.
func DecodeStream[V any](r io.Reader, fn func(V) error) error {
	dec := msgpack.NewDecoder(r)
	for {
		var value V
		if err := dec.Decode(&value); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := fn(value); err != nil {
			return err
		}
	}
}
