package lib

import "math"

// BM25Params carries the ranking constants. K controls term-frequency
// saturation, B controls document-length normalization, D is the BM25+
// lower-bound delta (0 disables it). The defaults are fixed for the life
// of an index; changing them reorders results but never breaks contracts.
type BM25Params struct {
	K float64 `json:"k"`
	B float64 `json:"b"`
	D float64 `json:"d"`
}

// DefaultBM25 matches the constants the ranking was tuned with:
// k1=1.5 and b=0.75, plain Okapi (no delta).
var DefaultBM25 = BM25Params{K: 1.5, B: 0.75, D: 0}

func (p BM25Params) orDefault() BM25Params {
	if p.K == 0 && p.B == 0 && p.D == 0 {
		return DefaultBM25
	}
	return p
}

// BM25 scores one term against one document. tf is the raw term count in
// the document, docFreq the number of documents containing the term,
// fieldLength the document's token count, docsCount the corpus size.
// The IDF uses the non-negative form log(1+(N-n+0.5)/(n+0.5)), so rare
// terms score high and terms present in every document approach zero
// without ever going negative.
func BM25(tf float64, docFreq int, fieldLength int, avgFieldLength float64, docsCount int, params BM25Params) float64 {
	if tf == 0 || docFreq == 0 || docsCount == 0 {
		return 0
	}
	p := params.orDefault()
	idf := math.Log(1 + (float64(docsCount-docFreq)+0.5)/(float64(docFreq)+0.5))
	norm := 1 - p.B
	if avgFieldLength > 0 {
		norm += p.B * float64(fieldLength) / avgFieldLength
	}
	return idf * (p.D + tf*(p.K+1)/(tf+p.K*norm))
}
