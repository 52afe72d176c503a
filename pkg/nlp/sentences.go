package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

var tableDelimRe = regexp.MustCompile(`^\s*\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)+\|?\s*$`)

// abbreviations never end a sentence.
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true, "st": true,
	"jr": true, "sr": true, "vs": true, "etc": true, "e.g": true, "i.e": true,
	"gen": true, "sen": true, "rep": true, "gov": true, "capt": true, "col": true,
	"inc": true, "corp": true, "ltd": true, "co": true, "no": true, "fig": true,
}

func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && strings.Contains(trimmed, "|")
}

func endsSentence(s string) bool {
	s = strings.TrimRight(strings.TrimSpace(s), `"')]}`)
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

// SplitSentences splits text into sentences. Blank lines end a sentence,
// markdown tables are kept together as one sentence and single table rows
// are returned as they are.
func SplitSentences(text string) []string {
	lines := strings.Split(text, "\n")

	var sentences []string
	var current strings.Builder
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}
	appendProse := func(line string) {
		for _, part := range splitLine(line) {
			if current.Len() > 0 {
				current.WriteByte(' ')
			}
			current.WriteString(part)
			if endsSentence(part) {
				flush()
			}
		}
	}

	inTable := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case inTable && isTableRow(line):
			current.WriteByte('\n')
			current.WriteString(line)
		case inTable:
			inTable = false
			flush()
			if trimmed != "" {
				appendProse(trimmed)
			}
		case isTableRow(line) && i+1 < len(lines) && tableDelimRe.MatchString(lines[i+1]):
			flush()
			inTable = true
			current.WriteString(line)
		case isTableRow(line):
			flush()
			sentences = append(sentences, trimmed)
		case trimmed == "":
			flush()
		default:
			appendProse(trimmed)
		}
	}
	flush()

	return sentences
}

// splitLine splits a single line of prose on terminal punctuation. Numbered
// list markers, single-letter initials and common abbreviations do not end a
// sentence.
func splitLine(line string) []string {
	runes := []rune(line)

	var parts []string
	var current strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if r == '.' && !periodEndsSentence(runes, i) {
			continue
		}

		j := i + 1
		for j < len(runes) && strings.ContainsRune(".!?", runes[j]) {
			current.WriteRune(runes[j])
			j++
		}
		for j < len(runes) && strings.ContainsRune(`"')]}`, runes[j]) {
			current.WriteRune(runes[j])
			j++
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			parts = append(parts, s)
		}
		current.Reset()
		i = j - 1
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		parts = append(parts, s)
	}

	return parts
}

func periodEndsSentence(runes []rune, i int) bool {
	next := i + 1
	if next < len(runes) && !unicode.IsSpace(runes[next]) && !strings.ContainsRune(`"')]}.!?`, runes[next]) {
		// 3.14, example.com
		return false
	}

	start := i
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	word := strings.ToLower(strings.TrimLeft(string(runes[start:i]), `"'([{`))
	if word == "" {
		return true
	}

	if isDigits(word) && next < len(runes) && runes[next] == ' ' && start == 0 {
		return false
	}
	if abbreviations[word] {
		return false
	}
	w := []rune(word)
	if len(w) == 1 && unicode.IsLetter(w[0]) && unicode.IsUpper(runes[i-1]) {
		return false
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
