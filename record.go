package dossier

import (
	"bytes"
	"sort"
	"strconv"
	"time"

	"github.com/oarkflow/json"

	"github.com/oarkflow/dossier/lib"
)

// Kind tags a Value variant.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// Value is one field value: string, number (kept as its decimal literal so
// nothing is lost to float rounding), bool, null, nested record or array.
// The zero Value is null.
type Value struct {
	kind Kind
	text string
	flag bool
	obj  *Record
	arr  []Value
}

func String(s string) Value { return Value{kind: KindString, text: s} }

func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

func Null() Value { return Value{} }

// Number wraps a decimal literal as produced by a UseNumber decoder.
func Number(n json.Number) Value { return Value{kind: KindNumber, text: n.String()} }

func Int(i int64) Value { return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)} }

func Float(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

func Object(r Record) Value { return Value{kind: KindObject, obj: &r} }

func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Number returns the decimal literal for number values.
func (v Value) Number() (json.Number, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return json.Number(v.text), true
}

// Record returns the nested record for object values.
func (v Value) Record() (Record, bool) {
	if v.kind != KindObject || v.obj == nil {
		return Record{}, false
	}
	return *v.obj, true
}

// Items returns the elements of an array value.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// String renders the canonical text form used for both indexing and key
// lookup: strings verbatim, numbers as their decimal literal, booleans as
// true/false, null as the empty string, nested structures as compact JSON.
// The form is stable, so build-time and query-time agree by construction.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindNumber:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindObject, KindArray:
		bt, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(bt)
	default:
		return ""
	}
}

// Interface converts to the plain Go shape (map[string]any etc.) used by
// the filter matcher and anything else that expects untyped documents.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		return json.Number(v.text)
	case KindBool:
		return v.flag
	case KindObject:
		if v.obj == nil {
			return map[string]any{}
		}
		return v.obj.Map()
	case KindArray:
		items := make([]any, len(v.arr))
		for i, it := range v.arr {
			items[i] = it.Interface()
		}
		return items
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.text)
	case KindNumber:
		return []byte(v.text), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.flag)), nil
	case KindObject:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return v.obj.MarshalJSON()
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, it := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			bt, err := it.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(bt)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}

// Field is one named value inside a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered field sequence. Unlike a plain map it remembers the
// order fields arrived in, which keeps JSON output byte-stable and makes
// record identity reproducible across loads. Records are immutable once
// built; every accessor is safe for concurrent use.
type Record struct {
	fields []Field
	byName map[string]int
}

// NewRecord builds a record from fields in order. A repeated name keeps
// its first position but takes the later value, matching JSON object
// semantics.
func NewRecord(fields ...Field) Record {
	rec := Record{
		fields: make([]Field, 0, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if at, ok := rec.byName[f.Name]; ok {
			rec.fields[at].Value = f.Value
			continue
		}
		rec.byName[f.Name] = len(rec.fields)
		rec.fields = append(rec.fields, f)
	}
	return rec
}

// FromMap builds a record from an untyped map, ordering fields by sorted
// name since the map itself carries no order. Nested maps, slices, numbers
// and times are converted to their tagged equivalents.
func FromMap(m map[string]any) Record {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name, Value: FromAny(m[name])}
	}
	return NewRecord(fields...)
}

// FromAny converts an untyped value to its tagged form.
func FromAny(value any) Value {
	switch val := value.(type) {
	case nil:
		return Null()
	case Value:
		return val
	case string:
		return String(val)
	case json.Number:
		return Number(val)
	case bool:
		return Bool(val)
	case float64:
		return Float(val)
	case float32:
		return Float(float64(val))
	case int:
		return Int(int64(val))
	case int8:
		return Int(int64(val))
	case int16:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case int64:
		return Int(val)
	case uint:
		return Int(int64(val))
	case uint8:
		return Int(int64(val))
	case uint16:
		return Int(int64(val))
	case uint32:
		return Int(int64(val))
	case uint64:
		return Int(int64(val))
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return String(val.Format(time.DateOnly))
		}
		return String(val.Format(time.RFC3339))
	case map[string]any:
		return Object(FromMap(val))
	case map[any]any:
		tmp := make(map[string]any, len(val))
		for k, v := range val {
			if key, ok := k.(string); ok {
				tmp[key] = v
			}
		}
		return Object(FromMap(tmp))
	case []any:
		items := make([]Value, len(val))
		for i, it := range val {
			items[i] = FromAny(it)
		}
		return Array(items...)
	default:
		return String(lib.ToString(val))
	}
}

func (r Record) Len() int { return len(r.fields) }

// Get returns the value for name; ok reports whether the field exists.
func (r Record) Get(name string) (Value, bool) {
	at, ok := r.byName[name]
	if !ok {
		return Value{}, false
	}
	return r.fields[at].Value, true
}

// Text returns the canonical text of a field, or "" when absent. This is
// the single extraction path shared by index construction, query-time
// tokenization and unique-key comparison.
func (r Record) Text(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	return v.String()
}

// Names lists field names in record order.
func (r Record) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Each walks fields in order until fn returns false.
func (r Record) Each(fn func(Field) bool) {
	for _, f := range r.fields {
		if !fn(f) {
			return
		}
	}
}

// Map flattens to the untyped shape; field order is lost.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		m[f.Name] = f.Value.Interface()
	}
	return m
}

// MarshalJSON writes fields in record order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		bt, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(bt)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
