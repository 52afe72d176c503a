package nlp

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

// DefaultMaxKeywords is used when ExtractKeywords is called with max <= 0.
const DefaultMaxKeywords = 20

// keywordCandidates returns the lowercase content words of text.
func keywordCandidates(text string) []string {
	var out []string
	for _, tok := range Tokenize(text) {
		lower := tok.Lower()
		if !tok.IsWord() || utf8.RuneCountInString(lower) <= 2 || IsStopWord(lower) || isDigits(lower) {
			continue
		}
		out = append(out, lower)
	}
	return out
}

// ExtractKeywords ranks the content words of text. Each sentence is treated
// as a document for the inverse document frequency; the TF-IDF vector is L2
// normalized and the final score is 0.7*tfidf + 0.3*relative frequency.
func ExtractKeywords(text string, max int) []common.Keyword {
	if max <= 0 {
		max = DefaultMaxKeywords
	}

	candidates := keywordCandidates(text)
	if len(candidates) == 0 {
		return []common.Keyword{}
	}

	freq := make(map[string]int)
	for _, c := range candidates {
		freq[c]++
	}

	sentences := SplitSentences(text)
	docFreq := make(map[string]int)
	for _, s := range sentences {
		seen := make(map[string]bool)
		for _, c := range keywordCandidates(s) {
			if !seen[c] {
				seen[c] = true
				docFreq[c]++
			}
		}
	}

	n := float64(len(sentences))
	tfidf := make(map[string]float64, len(freq))
	var norm float64
	for word, count := range freq {
		idf := math.Log((1+n)/(1+float64(docFreq[word]))) + 1
		v := float64(count) * idf
		tfidf[word] = v
		norm += v * v
	}
	norm = math.Sqrt(norm)

	total := float64(len(candidates))
	out := make([]common.Keyword, 0, len(freq))
	for word, count := range freq {
		t := tfidf[word] / norm
		out = append(out, common.Keyword{
			Word:      word,
			Score:     0.7*t + 0.3*float64(count)/total,
			Frequency: count,
			TFIDF:     t,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// keywordTerms returns the lowercase words of the first n keywords.
func keywordTerms(keywords []common.Keyword, n int) []string {
	if len(keywords) < n {
		n = len(keywords)
	}
	out := make([]string, 0, n)
	for _, k := range keywords[:n] {
		out = append(out, strings.ToLower(k.Word))
	}
	return out
}
