package nlp

import (
	"regexp"
	"strings"
)

// IntentInformational is returned when no intent pattern matches.
const IntentInformational = "informational"

type intentRule struct {
	intent   string
	patterns []*regexp.Regexp
}

func wordPatterns(words ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return out
}

// intentRules are checked in order; the first match wins.
var intentRules = []intentRule{
	{"question", append([]*regexp.Regexp{regexp.MustCompile(`\?`)},
		wordPatterns("what", "how", "why", "when", "where", "who", "which")...)},
	{"explanation", wordPatterns("explain", "describe", "definition", "means", "is defined as", "refers to")},
	{"instruction", wordPatterns("steps", "how to", "process", "method", "procedure", "tutorial", "guide")},
	{"analysis", wordPatterns("analyze", "compare", "evaluate", "assess", "examine", "investigate")},
	{"opinion", wordPatterns("think", "believe", "opinion", "view", "perspective", "feel", "consider")},
	{"factual", wordPatterns("fact", "data", "statistics", "research", "study", "evidence", "proof")},
}

// ClassifyIntent returns the first intent whose patterns match text.
func ClassifyIntent(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range intentRules {
		for _, p := range rule.patterns {
			if p.MatchString(lower) {
				return rule.intent
			}
		}
	}
	return IntentInformational
}
