package dossier

import (
	"fmt"
	"sort"

	"github.com/oarkflow/xid"

	"github.com/oarkflow/dossier/lib"
	"github.com/oarkflow/dossier/tokenizer"
)

// DefaultTopN is the result count Search falls back to when the caller
// passes a non-positive limit.
const DefaultTopN = 5

// Options configures one engine. TextFields is the only required knob;
// everything else has a working default.
type Options struct {
	TextFields     []string          `json:"text_fields"`
	UniqueKeyField string            `json:"unique_key_field"`
	ShingleSize    int               `json:"shingle_size"`
	FoldDiacritics bool              `json:"fold_diacritics"`
	Relevance      lib.BM25Params    `json:"relevance"`
	Tokenizer      *tokenizer.Config `json:"-"`
}

func (o Options) tokenizerConfig() tokenizer.Config {
	if o.Tokenizer != nil {
		return *o.Tokenizer
	}
	return tokenizer.Config{Size: o.ShingleSize, FoldDiacritics: o.FoldDiacritics}
}

// Hit pairs a record with its score and load position.
type Hit struct {
	Position int     `json:"position"`
	Score    float64 `json:"score"`
	Record   Record  `json:"record"`
}

type Hits []Hit

// Records strips hits down to their payloads, preserving rank order.
func (h Hits) Records() []Record {
	out := make([]Record, len(h))
	for i, hit := range h {
		out[i] = hit.Record
	}
	return out
}

// Engine answers fuzzy field searches and exact key lookups for one
// dataset. All of its state is frozen by New; Search and Lookup are pure
// reads and safe to call from any number of goroutines without locking.
type Engine struct {
	key     string
	dataset *Dataset
	indexes map[string]*FieldIndex
	fields  []string
	tok     tokenizer.Config
}

// New builds the dataset store, one field index per configured text field
// and, when configured, the unique-key index, all in a single eager pass.
// It either returns a fully usable engine or an error and nothing else;
// there is no partially built state to observe. Cost is linear in the
// total character count of the indexed field values.
func New(name string, records []Record, opts Options) (*Engine, error) {
	if name == "" {
		name = xid.New().String()
	}
	if len(opts.TextFields) == 0 {
		return nil, &ConfigError{Dataset: name, Reason: "no text fields to index"}
	}
	for _, field := range opts.TextFields {
		if field == "" {
			return nil, &ConfigError{Dataset: name, Reason: "text field name must not be blank"}
		}
	}
	if opts.ShingleSize < 0 {
		return nil, &ConfigError{Dataset: name, Reason: fmt.Sprintf("shingle size %d is not positive", opts.ShingleSize)}
	}
	eng := &Engine{
		key:     name,
		dataset: NewDataset(name, records, opts.UniqueKeyField),
		indexes: make(map[string]*FieldIndex),
		fields:  lib.Unique(opts.TextFields),
		tok:     opts.tokenizerConfig(),
	}
	corpus := make([][]string, len(records))
	for _, field := range eng.fields {
		for i, rec := range records {
			corpus[i] = eng.tok.Tokenize(rec.Text(field))
		}
		eng.indexes[field] = NewFieldIndex(corpus, opts.Relevance)
	}
	return eng, nil
}

// Name returns the engine key (normally the dataset name).
func (e *Engine) Name() string { return e.key }

// Len reports the record count.
func (e *Engine) Len() int { return e.dataset.Len() }

// Fields lists the indexed fields in configured order.
func (e *Engine) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// UniqueKeyField returns the configured key field, or "".
func (e *Engine) UniqueKeyField() string { return e.dataset.KeyField() }

// Dataset exposes the underlying record collection.
func (e *Engine) Dataset() *Dataset { return e.dataset }

// Metadata describes the engine for discovery surfaces.
func (e *Engine) Metadata() map[string]any {
	vocab := make(map[string]int, len(e.fields))
	for _, field := range e.fields {
		vocab[field] = e.indexes[field].Vocabulary()
	}
	return map[string]any{
		"key":          e.key,
		"records":      e.dataset.Len(),
		"text_fields":  e.Fields(),
		"unique_key":   e.dataset.KeyField(),
		"shingle_size": e.tok.Size,
		"vocabulary":   vocab,
	}
}

// SearchHits scores every record of the given field against the query and
// returns the topN best, score descending. Equal scores keep load order:
// the comparator breaks ties on record position, so ranking is stable by
// construction rather than by accident of the sort algorithm. A zero or
// negative topN means DefaultTopN; a topN beyond the dataset returns the
// whole dataset ranked. An empty query or empty dataset yields no hits
// and no error.
func (e *Engine) SearchHits(query, field string, topN int) (Hits, error) {
	index, ok := e.indexes[field]
	if !ok {
		return nil, &FieldNotIndexedError{Field: field, Indexed: e.Fields()}
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	if query == "" || e.dataset.Len() == 0 {
		return Hits{}, nil
	}
	scores := index.ScoreAll(e.tok.Tokenize(query))
	hits := make(Hits, len(scores))
	for i, score := range scores {
		rec, _ := e.dataset.Record(i)
		hits[i] = Hit{Position: i, Score: score, Record: rec}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score == hits[j].Score {
			return hits[i].Position < hits[j].Position
		}
		return hits[i].Score > hits[j].Score
	})
	if topN < len(hits) {
		hits = hits[:topN]
	}
	return hits, nil
}

// Search is SearchHits stripped to record payloads.
func (e *Engine) Search(query, field string, topN int) ([]Record, error) {
	hits, err := e.SearchHits(query, field, topN)
	if err != nil {
		return nil, err
	}
	return hits.Records(), nil
}

// Lookup resolves a unique key to its record. A miss is an ordinary
// (Record{}, false, nil) result, not an error; only calling Lookup on a
// dataset with no key field configured fails.
func (e *Engine) Lookup(keyValue string) (Record, bool, error) {
	if e.dataset.KeyField() == "" {
		return Record{}, false, &NoUniqueKeyError{Dataset: e.key}
	}
	at, ok := e.dataset.LookupKey(keyValue)
	if !ok {
		return Record{}, false, nil
	}
	rec, _ := e.dataset.Record(at)
	return rec, true, nil
}
