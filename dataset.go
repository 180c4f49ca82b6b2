package dossier

import (
	"github.com/oarkflow/log"
)

// Dataset owns one ordered record collection. Record identity is the
// position a record was loaded at; when a unique key field is configured
// an equality index from key text to position is built alongside.
type Dataset struct {
	name     string
	records  []Record
	keyField string
	byKey    map[string]int
}

// NewDataset wraps records, building the unique-key index when keyField
// is non-empty. A key that stringifies to the empty string is treated as
// absent. Duplicate keys keep the earliest record and are logged, since
// key uniqueness is the loader's promise, not something enforced here.
func NewDataset(name string, records []Record, keyField string) *Dataset {
	ds := &Dataset{
		name:     name,
		records:  records,
		keyField: keyField,
	}
	if keyField == "" {
		return ds
	}
	ds.byKey = make(map[string]int, len(records))
	for i, rec := range records {
		key := rec.Text(keyField)
		if key == "" {
			continue
		}
		if first, ok := ds.byKey[key]; ok {
			log.Warn().
				Str("dataset", name).
				Str("key_field", keyField).
				Str("key", key).
				Int("kept", first).
				Int("dropped", i).
				Msg("duplicate unique key, keeping first record")
			continue
		}
		ds.byKey[key] = i
	}
	return ds
}

func (ds *Dataset) Name() string { return ds.name }

func (ds *Dataset) Len() int { return len(ds.records) }

// KeyField returns the configured unique key field, or "".
func (ds *Dataset) KeyField() string { return ds.keyField }

// Record returns the record at position i.
func (ds *Dataset) Record(i int) (Record, bool) {
	if i < 0 || i >= len(ds.records) {
		return Record{}, false
	}
	return ds.records[i], true
}

// Records returns the records in load order. The slice is a copy; the
// records themselves are shared and immutable.
func (ds *Dataset) Records() []Record {
	out := make([]Record, len(ds.records))
	copy(out, ds.records)
	return out
}

// LookupKey resolves a unique key to its record position.
func (ds *Dataset) LookupKey(value string) (int, bool) {
	if ds.byKey == nil {
		return 0, false
	}
	at, ok := ds.byKey[value]
	return at, ok
}
