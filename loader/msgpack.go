package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/oarkflow/json"

	"github.com/oarkflow/dossier"
	"github.com/oarkflow/dossier/lib"
)

// WriteMsgpack streams records to w, one msgpack map per record. Msgpack
// maps carry no field order and numbers travel in binary, so records read
// back from this format come out with sorted field names and without the
// original number literals.
func WriteMsgpack(w io.Writer, records []dossier.Record) error {
	for _, rec := range records {
		if err := lib.EncodeStream(w, normalize(rec.Map()).(map[string]any)); err != nil {
			return err
		}
	}
	return nil
}

// normalize rewrites json.Number values as int64 or float64 so the wire
// carries real msgpack numbers instead of strings.
func normalize(value any) any {
	switch val := value.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			out[k] = normalize(v)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, v := range val {
			out[i] = normalize(v)
		}
		return out
	default:
		return value
	}
}

// ReadMsgpack decodes a stream produced by WriteMsgpack.
func ReadMsgpack(r io.Reader) ([]dossier.Record, error) {
	var records []dossier.Record
	err := lib.DecodeStream(r, func(m map[string]any) error {
		records = append(records, dossier.FromMap(m))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func WriteMsgpackFile(path string, records []dossier.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteMsgpack(f, records); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func ReadMsgpackFile(path string) ([]dossier.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := ReadMsgpack(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
