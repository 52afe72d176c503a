package nlp

import (
	"strings"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

// ComplexityUnknown is reported for empty text.
const ComplexityUnknown = "unknown"

var complexityBands = []struct {
	min   float64
	label string
}{
	{90, "very easy"},
	{80, "easy"},
	{70, "fairly easy"},
	{60, "standard"},
	{50, "fairly difficult"},
	{30, "difficult"},
}

// Readability computes the Flesch reading ease and Flesch-Kincaid grade of
// text and maps the ease score to a complexity band.
func Readability(text string) common.Readability {
	var words []string
	for _, tok := range Tokenize(text) {
		if tok.IsWord() {
			words = append(words, tok.Lower())
		}
	}
	if len(words) == 0 {
		return common.Readability{Complexity: ComplexityUnknown}
	}

	sentences := max(1, len(SplitSentences(text)))
	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wps := float64(len(words)) / float64(sentences)
	spw := float64(syllables) / float64(len(words))
	ease := 206.835 - 1.015*wps - 84.6*spw
	grade := 0.39*wps + 11.8*spw - 15.59

	return common.Readability{
		FleschEase:    round(ease, 2),
		FleschKincaid: round(grade, 2),
		Complexity:    complexityBand(ease),
	}
}

func complexityBand(ease float64) string {
	for _, b := range complexityBands {
		if ease >= b.min {
			return b.label
		}
	}
	return "very difficult"
}

// countSyllables approximates syllables as groups of vowels, ignoring a
// silent trailing e.
func countSyllables(word string) int {
	if isDigits(word) {
		return 1
	}
	count := 0
	prevVowel := false
	for _, r := range word {
		v := strings.ContainsRune("aeiouy", r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if count > 1 && strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		count--
	}
	return max(1, count)
}
