package match

import (
	"math"
	"sort"
	"strings"
)

// Index is a TF-IDF vector-space model over a fixed corpus of grant
// texts. Fit builds the vocabulary and document vectors; after that the
// index is read-only, so concurrent queries need no coordination.
// Swapping in a different corpus means building a new Index.
type Index struct {
	maxFeatures int
	fitted      bool
	vocab       map[string]int
	idf         []float64
	docVecs     []map[int]float64 // L2-normalized sparse vectors, corpus order
}

// DocScore pairs a corpus index with a cosine similarity score.
type DocScore struct {
	Index int
	Score float64
}

const defaultMaxFeatures = 5000

func NewIndex() *Index {
	return &Index{maxFeatures: defaultMaxFeatures}
}

// Fit computes the term vocabulary (unigrams and bigrams, English stop
// words removed, capped at maxFeatures by corpus frequency) and stores
// one normalized vector per corpus document. Any prior fitted state is
// replaced.
func (ix *Index) Fit(corpus []string) {
	docTokens := make([][]string, len(corpus))
	termCounts := make(map[string]int)
	for i, text := range corpus {
		tokens := ngrams(tokenize(text))
		docTokens[i] = tokens
		for _, t := range tokens {
			termCounts[t]++
		}
	}

	ix.vocab = buildVocabulary(termCounts, ix.maxFeatures)

	// Smoothed IDF: ln((1+n)/(1+df)) + 1.
	df := make([]int, len(ix.vocab))
	for _, tokens := range docTokens {
		seen := make(map[int]bool)
		for _, t := range tokens {
			if id, ok := ix.vocab[t]; ok && !seen[id] {
				seen[id] = true
				df[id]++
			}
		}
	}
	n := float64(len(corpus))
	ix.idf = make([]float64, len(ix.vocab))
	for id, d := range df {
		ix.idf[id] = math.Log((1+n)/(1+float64(d))) + 1
	}

	ix.docVecs = make([]map[int]float64, len(corpus))
	for i, tokens := range docTokens {
		ix.docVecs[i] = ix.vectorize(tokens)
	}
	ix.fitted = true
}

// SimilarityToCorpus scores the query against every stored document.
// Results cover the full corpus, sorted by score descending with ties
// broken by ascending corpus index. An unfitted index yields an empty
// slice: callers treat that as no semantic signal, not as an error.
func (ix *Index) SimilarityToCorpus(query string) []DocScore {
	if !ix.fitted {
		return nil
	}

	queryVec := ix.vectorize(ngrams(tokenize(query)))
	scores := make([]DocScore, len(ix.docVecs))
	for i, doc := range ix.docVecs {
		scores[i] = DocScore{Index: i, Score: clamp01(dot(queryVec, doc))}
	}
	sort.Slice(scores, func(a, b int) bool {
		if scores[a].Score != scores[b].Score {
			return scores[a].Score > scores[b].Score
		}
		return scores[a].Index < scores[b].Index
	})
	return scores
}

// PairwiseSimilarity computes cosine similarity between two ad-hoc
// texts using a vocabulary derived from just that pair. It does not
// touch the fitted corpus state.
func (ix *Index) PairwiseSimilarity(a, b string) float64 {
	pair := &Index{maxFeatures: ix.maxFeatures}
	pair.Fit([]string{a, b})
	return clamp01(dot(pair.docVecs[0], pair.docVecs[1]))
}

// vectorize maps tokens into the fitted vocabulary and returns an
// L2-normalized TF-IDF vector. Tokens outside the vocabulary are
// projected away; a text with no known terms yields the zero vector.
func (ix *Index) vectorize(tokens []string) map[int]float64 {
	vec := make(map[int]float64)
	for _, t := range tokens {
		if id, ok := ix.vocab[t]; ok {
			vec[id]++
		}
	}
	// Accumulate in ascending-id order so the float sum is reproducible
	// across calls; map iteration order would perturb the low bits.
	var norm float64
	for _, id := range sortedIDs(vec) {
		w := vec[id] * ix.idf[id]
		vec[id] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for id := range vec {
		vec[id] /= norm
	}
	return vec
}

// buildVocabulary keeps the maxFeatures most frequent terms, ties broken
// by term ascending so refits over the same corpus are reproducible.
func buildVocabulary(termCounts map[string]int, maxFeatures int) map[string]int {
	terms := make([]string, 0, len(termCounts))
	for t := range termCounts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(a, b int) bool {
		if termCounts[terms[a]] != termCounts[terms[b]] {
			return termCounts[terms[a]] > termCounts[terms[b]]
		}
		return terms[a] < terms[b]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return vocab
}

// dot of two normalized sparse vectors, iterating the smaller one in
// ascending-id order so the float sum is reproducible across calls.
func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for _, id := range sortedIDs(a) {
		sum += a[id] * b[id]
	}
	return sum
}

// sortedIDs returns the keys of a sparse vector in ascending order.
func sortedIDs(vec map[int]float64) []int {
	ids := make([]int, 0, len(vec))
	for id := range vec {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// single-character tokens and English stop words.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopWords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// ngrams returns the unigrams plus adjacent bigrams, which give the
// model some phrase sensitivity.
func ngrams(tokens []string) []string {
	if len(tokens) < 2 {
		return tokens
	}
	out := make([]string, 0, 2*len(tokens)-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
