package loader

import (
	"fmt"

	"github.com/goccy/go-reflect"
	"github.com/oarkflow/json"

	"github.com/oarkflow/dossier"
)

// FromStructs converts a slice of structs (or maps) into records by
// round-tripping each element through JSON. Struct fields keep their
// declaration order, honoring json tags along the way.
func FromStructs(slice any) ([]dossier.Record, error) {
	v := reflect.ValueOf(slice)
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("not a slice")
	}
	records := make([]dossier.Record, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		b, err := json.Marshal(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("marshal element %d: %w", i, err)
		}
		rec, err := ReadRecordBytes(b)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
