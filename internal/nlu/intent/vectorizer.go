package intent

import (
	"math"
	"sort"
)

// sparseVector holds the non-zero features of a document, indices ascending.
type sparseVector struct {
	indices []int
	values  []float64
}

// Vectorizer is a fitted TF-IDF transformer. Fields are exported for gob.
type Vectorizer struct {
	Vocabulary map[string]int
	IDF        []float64
	NgramMin   int
	NgramMax   int
	Sublinear  bool
}

type termStat struct {
	term  string
	count int
	df    int
}

// fitVectorizer learns the vocabulary and smoothed IDF weights from docs.
// When the vocabulary exceeds MaxFeatures the most frequent terms are kept.
func fitVectorizer(docs []string, opts VectorizerOptions) *Vectorizer {
	stats := make(map[string]*termStat)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range analyze(doc, opts.NgramMin, opts.NgramMax) {
			st, ok := stats[term]
			if !ok {
				st = &termStat{term: term}
				stats[term] = st
			}
			st.count++
			if _, dup := seen[term]; !dup {
				seen[term] = struct{}{}
				st.df++
			}
		}
	}

	kept := make([]*termStat, 0, len(stats))
	for _, st := range stats {
		if st.df >= opts.MinDF {
			kept = append(kept, st)
		}
	}
	if len(kept) > opts.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if kept[i].count != kept[j].count {
				return kept[i].count > kept[j].count
			}
			return kept[i].term < kept[j].term
		})
		kept = kept[:opts.MaxFeatures]
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].term < kept[j].term })

	n := float64(len(docs))
	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(kept)),
		IDF:        make([]float64, len(kept)),
		NgramMin:   opts.NgramMin,
		NgramMax:   opts.NgramMax,
		Sublinear:  !opts.LinearTF,
	}
	for i, st := range kept {
		v.Vocabulary[st.term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(st.df))) + 1
	}
	return v
}

// Features returns the vocabulary size.
func (v *Vectorizer) Features() int {
	return len(v.IDF)
}

// transform maps doc to an L2-normalized TF-IDF vector. Unknown terms are dropped.
func (v *Vectorizer) transform(doc string) sparseVector {
	counts := make(map[int]int)
	for _, term := range analyze(doc, v.NgramMin, v.NgramMax) {
		if idx, ok := v.Vocabulary[term]; ok {
			counts[idx]++
		}
	}

	vec := sparseVector{
		indices: make([]int, 0, len(counts)),
		values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		vec.indices = append(vec.indices, idx)
	}
	sort.Ints(vec.indices)

	var norm float64
	for _, idx := range vec.indices {
		tf := float64(counts[idx])
		if v.Sublinear {
			tf = 1 + math.Log(tf)
		}
		w := tf * v.IDF[idx]
		vec.values = append(vec.values, w)
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec.values {
			vec.values[i] /= norm
		}
	}
	return vec
}
