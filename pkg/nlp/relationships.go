package nlp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

const (
	maxTermDistance      = 5
	relationshipTermPool = 10
	maxRelationships     = 15
)

// Relationship types.
const (
	RelActsOn         = "acts-on"
	RelActedOnBy      = "acted-on-by"
	RelHasProperty    = "has-property"
	RelDescribes      = "describes"
	RelModifies       = "modifies"
	RelRelatesTo      = "relates-to"
	RelAssociatedWith = "associated-with"
	RelCoOccurs       = "co-occurs"
)

type term struct {
	text   string
	lower  []string
	entity bool
}

type occurrence struct {
	term  *term
	text  string
	index int
	width int
}

// BuildRelationships links the top keywords and the entities of text.
//
// Terms appearing at most five tokens apart in a sentence are related with
// strength 1/(distance+1) and a type derived from the words around them.
// Pairs among the first ten terms that share sentences get a co-occurs
// relationship with strength shared/total sentences. Duplicates keep the
// strongest instance and the fifteen strongest relationships are returned.
func BuildRelationships(text string, keywords []common.Keyword, entities []common.Entity) []common.Relationship {
	if strings.TrimSpace(text) == "" {
		return []common.Relationship{}
	}

	terms := collectTerms(keywords, entities)
	sentences := SplitSentences(text)

	var rels []common.Relationship
	for _, sent := range sentences {
		tokens := Tokenize(sent)
		occ := findOccurrences(tokens, terms)
		for i, a := range occ {
			for _, b := range occ[i+1:] {
				if a.term == b.term {
					continue
				}
				d := b.index - a.index
				if d > maxTermDistance {
					continue
				}
				typ := relationshipType(a, b, tokens)
				rels = append(rels, common.Relationship{
					Source:      a.text,
					Target:      b.text,
					Type:        typ,
					Strength:    1 / float64(d+1),
					Context:     sent,
					Description: fmt.Sprintf("%s %s %s", a.text, typ, b.text),
				})
			}
		}
	}

	pool := terms
	if len(pool) > relationshipTermPool {
		pool = pool[:relationshipTermPool]
	}
	lowerSentences := make([]string, len(sentences))
	for i, s := range sentences {
		lowerSentences[i] = strings.ToLower(s)
	}
	for i, a := range pool {
		for _, b := range pool[i+1:] {
			an, bn := strings.ToLower(a.text), strings.ToLower(b.text)
			shared := 0
			for _, s := range lowerSentences {
				if strings.Contains(s, an) && strings.Contains(s, bn) {
					shared++
				}
			}
			if shared == 0 {
				continue
			}
			rels = append(rels, common.Relationship{
				Source:      an,
				Target:      bn,
				Type:        RelCoOccurs,
				Strength:    float64(shared) / float64(len(sentences)),
				Context:     fmt.Sprintf("Co-occurs in %d sentences", shared),
				Description: fmt.Sprintf("%s frequently appears with %s", an, bn),
			})
		}
	}

	return strongestUnique(rels, maxRelationships)
}

// collectTerms returns the top keyword terms followed by the entity terms,
// skipping duplicates.
func collectTerms(keywords []common.Keyword, entities []common.Entity) []*term {
	var terms []*term
	seen := make(map[string]bool)
	add := func(text string, entity bool) {
		var words []string
		for _, tok := range Tokenize(text) {
			words = append(words, tok.Lower())
		}
		key := strings.Join(words, " ")
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		terms = append(terms, &term{text: text, lower: words, entity: entity})
	}
	for _, kw := range keywordTerms(keywords, relationshipTermPool) {
		add(kw, false)
	}
	for _, e := range entities {
		add(e.Text, true)
	}
	return terms
}

// findOccurrences returns every match of a term in tokens, ordered by token
// index. Longer terms win over shorter ones starting at the same token.
func findOccurrences(tokens []Token, terms []*term) []occurrence {
	lower := make([]string, len(tokens))
	for i, t := range tokens {
		lower[i] = t.Lower()
	}

	var out []occurrence
	for i := 0; i < len(tokens); {
		var best *term
		for _, t := range terms {
			if matchesAt(lower, i, t.lower) && (best == nil || len(t.lower) > len(best.lower)) {
				best = t
			}
		}
		if best == nil {
			i++
			continue
		}
		w := len(best.lower)
		text := best.text
		if !best.entity {
			text = tokens[i].Text
		}
		out = append(out, occurrence{term: best, text: text, index: i, width: w})
		i += w
	}
	return out
}

func matchesAt(tokens []string, i int, words []string) bool {
	if i+len(words) > len(tokens) {
		return false
	}
	for j, w := range words {
		if tokens[i+j] != w {
			return false
		}
	}
	return true
}

var passiveCues = map[string]bool{"by": true}

var adjectiveSuffixes = []string{"al", "ive", "ous", "ful", "ic", "able", "ible", "less"}

func looksAdjective(word string) bool {
	for _, s := range adjectiveSuffixes {
		if len(word) > len(s)+2 && strings.HasSuffix(word, s) {
			return true
		}
	}
	return false
}

func looksVerb(word string) bool {
	return len(word) > 4 && (strings.HasSuffix(word, "ed") || strings.HasSuffix(word, "es")) ||
		len(word) > 5 && strings.HasSuffix(word, "ing")
}

// relationshipType classifies the pair from surface cues: the words between
// the two terms and whether each term is a named entity.
func relationshipType(a, b occurrence, tokens []Token) string {
	between := tokens[a.index+a.width : b.index]
	hasVerb, passive := false, false
	for _, t := range between {
		w := t.Lower()
		if passiveCues[w] {
			passive = true
		}
		if looksVerb(w) {
			hasVerb = true
		}
	}

	first := a.term.lower[len(a.term.lower)-1]
	second := b.term.lower[len(b.term.lower)-1]
	switch {
	case hasVerb && passive:
		return RelActedOnBy
	case hasVerb && a.term.entity:
		return RelActsOn
	case len(between) == 0 && !a.term.entity && looksAdjective(first):
		return RelDescribes
	case len(between) <= 1 && !b.term.entity && looksAdjective(second):
		return RelHasProperty
	case len(between) == 0:
		return RelModifies
	case !a.term.entity && !b.term.entity:
		return RelRelatesTo
	default:
		return RelAssociatedWith
	}
}

// strongestUnique keeps the strongest relationship per (source, target,
// type) and returns at most limit of them, strongest first.
func strongestUnique(rels []common.Relationship, limit int) []common.Relationship {
	index := make(map[string]int)
	var unique []common.Relationship
	for _, r := range rels {
		key := strings.ToLower(r.Source) + "\x00" + strings.ToLower(r.Target) + "\x00" + r.Type
		if i, ok := index[key]; ok {
			if r.Strength > unique[i].Strength {
				unique[i] = r
			}
			continue
		}
		index[key] = len(unique)
		unique = append(unique, r)
	}

	sort.SliceStable(unique, func(i, j int) bool { return unique[i].Strength > unique[j].Strength })
	if len(unique) > limit {
		unique = unique[:limit]
	}
	if unique == nil {
		unique = []common.Relationship{}
	}
	return unique
}
