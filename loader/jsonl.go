package loader

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oarkflow/json"

	"github.com/oarkflow/dossier"
)

// ReadRecords decodes a stream of JSON into records, preserving the field
// order each object was written with. The stream may be one object per
// line, a single top-level array, or any mix of the two; every object
// found at the top level or inside a top-level array becomes one record,
// in stream order.
func ReadRecords(r io.Reader) ([]dossier.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []dossier.Record
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(records), err)
		}
		switch val.Kind() {
		case dossier.KindObject:
			rec, _ := val.Record()
			records = append(records, rec)
		case dossier.KindArray:
			for i, item := range val.Items() {
				rec, ok := item.Record()
				if !ok {
					return nil, fmt.Errorf("array element %d is not an object", i)
				}
				records = append(records, rec)
			}
		default:
			return nil, fmt.Errorf("top-level value must be an object or array of objects")
		}
	}
	return records, nil
}

// ReadFile reads one dataset file.
func ReadFile(path string) ([]dossier.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// WriteRecords writes records one JSON object per line, fields in record
// order.
func WriteRecords(w io.Writer, records []dossier.Record) error {
	for i, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes one dataset file in the line-delimited form ReadFile
// accepts.
func WriteFile(path string, records []dossier.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteRecords(f, records); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// ReadRecordBytes decodes a single JSON object.
func ReadRecordBytes(data []byte) (dossier.Record, error) {
	records, err := ReadRecords(bytes.NewReader(data))
	if err != nil {
		return dossier.Record{}, err
	}
	if len(records) != 1 {
		return dossier.Record{}, fmt.Errorf("expected one object, found %d", len(records))
	}
	return records[0], nil
}

// decodeValue walks the decoder token by token instead of decoding into a
// map, which is what keeps object field order intact.
func decodeValue(dec json.IDecoder) (dossier.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return dossier.Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var fields []dossier.Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return dossier.Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return dossier.Value{}, fmt.Errorf("object key is %T, want string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return dossier.Value{}, err
				}
				fields = append(fields, dossier.Field{Name: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return dossier.Value{}, err
			}
			return dossier.Object(dossier.NewRecord(fields...)), nil
		case '[':
			var items []dossier.Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return dossier.Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return dossier.Value{}, err
			}
			return dossier.Array(items...), nil
		}
		return dossier.Value{}, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return dossier.String(t), nil
	case stdjson.Number:
		return dossier.Number(json.Number(t)), nil
	case bool:
		return dossier.Bool(t), nil
	case nil:
		return dossier.Null(), nil
	}
	return dossier.Value{}, fmt.Errorf("unexpected token %v", tok)
}
