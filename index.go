package dossier

import (
	"github.com/oarkflow/dossier/lib"
)

type posting struct {
	doc   int
	count int
}

// FieldIndex ranks every document of one dataset field against a token
// query. It is built in a single pass over the tokenized corpus and never
// mutated afterwards, so concurrent ScoreAll calls need no locking.
type FieldIndex struct {
	postings       map[string][]posting
	fieldLengths   []int
	avgFieldLength float64
	docsCount      int
	relevance      lib.BM25Params
}

// NewFieldIndex ingests one token sequence per document, in document
// order. Document frequency and average field length are frozen here;
// they are the only corpus statistics scoring needs.
func NewFieldIndex(corpus [][]string, relevance lib.BM25Params) *FieldIndex {
	idx := &FieldIndex{
		postings:     make(map[string][]posting),
		fieldLengths: make([]int, len(corpus)),
		docsCount:    len(corpus),
		relevance:    relevance,
	}
	totalTokens := 0
	counts := make(map[string]int)
	for doc, tokens := range corpus {
		clear(counts)
		for _, token := range tokens {
			counts[token]++
		}
		for token, count := range counts {
			idx.postings[token] = append(idx.postings[token], posting{doc: doc, count: count})
		}
		idx.fieldLengths[doc] = len(tokens)
		totalTokens += len(tokens)
	}
	if idx.docsCount > 0 {
		idx.avgFieldLength = float64(totalTokens) / float64(idx.docsCount)
	}
	return idx
}

// ScoreAll returns one BM25 score per document index. Query tokens are
// consumed as given: a shingle occurring twice in the query contributes
// twice, mirroring how the corpus side counts occurrences. Zero documents
// or zero query tokens produce all-zero scores, never an error.
func (idx *FieldIndex) ScoreAll(queryTokens []string) []float64 {
	scores := make([]float64, idx.docsCount)
	if idx.docsCount == 0 || len(queryTokens) == 0 {
		return scores
	}
	for _, token := range queryTokens {
		list, ok := idx.postings[token]
		if !ok {
			continue
		}
		docFreq := len(list)
		for _, p := range list {
			scores[p.doc] += lib.BM25(
				float64(p.count),
				docFreq,
				idx.fieldLengths[p.doc],
				idx.avgFieldLength,
				idx.docsCount,
				idx.relevance,
			)
		}
	}
	return scores
}

// Len reports the number of indexed documents.
func (idx *FieldIndex) Len() int { return idx.docsCount }

// Vocabulary reports the number of distinct tokens in the index.
func (idx *FieldIndex) Vocabulary() int { return len(idx.postings) }
