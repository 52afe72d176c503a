package nlp

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

// Entity labels produced by ExtractEntities.
const (
	LabelPerson  = "PERSON"
	LabelOrg     = "ORG"
	LabelGPE     = "GPE"
	LabelLoc     = "LOC"
	LabelNORP    = "NORP"
	LabelDate    = "DATE"
	LabelMoney   = "MONEY"
	LabelPercent = "PERCENT"
	LabelEntity  = "ENTITY"
)

var labelDescriptions = map[string]string{
	LabelPerson:  "People, including fictional",
	LabelOrg:     "Companies, agencies, institutions, etc.",
	LabelGPE:     "Countries, cities, states",
	LabelLoc:     "Non-GPE locations, mountain ranges, bodies of water",
	LabelNORP:    "Nationalities or religious or political groups",
	LabelDate:    "Absolute or relative dates or periods",
	LabelMoney:   "Monetary values, including unit",
	LabelPercent: `Percentage, including "%"`,
	LabelEntity:  "Named entity",
}

// LabelDescription explains an entity label.
func LabelDescription(label string) string {
	if d, ok := labelDescriptions[label]; ok {
		return d
	}
	return label
}

const months = `(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan\.?|Feb\.?|Mar\.?|Apr\.?|Jun\.?|Jul\.?|Aug\.?|Sep\.?|Sept\.?|Oct\.?|Nov\.?|Dec\.?)`

const capWord = `(?:[A-Z][a-z]+(?:-[A-Z][a-z]+)?|[A-Z]\.)`

var places = []string{
	"United States", "United Kingdom", "Soviet Union", "New York", "Los Angeles",
	"San Francisco", "South Africa", "North Korea", "South Korea", "New Zealand",
	"America", "USA", "US", "UK", "USSR", "China", "Russia", "Germany", "France",
	"Japan", "India", "Canada", "Mexico", "Brazil", "Italy", "Spain", "Australia",
	"Egypt", "Israel", "Ukraine", "Poland", "Netherlands", "Sweden", "Norway",
	"Europe", "Asia", "Africa", "London", "Paris", "Berlin", "Washington",
	"Moscow", "Tokyo", "Beijing", "Rome", "Madrid", "Houston", "Florida",
	"Texas", "California", "Chicago", "Boston",
}

var locations = []string{
	"Moon", "Mars", "Earth", "Venus", "Jupiter", "Saturn", "Sun",
	"Pacific Ocean", "Atlantic Ocean", "Indian Ocean", "Mediterranean",
	"Alps", "Himalayas", "Sahara", "Amazon", "Antarctica", "Arctic",
}

var groups = []string{
	"Americans", "American", "British", "Chinese", "Russians", "Russian",
	"Germans", "German", "French", "Japanese", "Soviets", "Soviet",
	"Europeans", "European", "Christians", "Muslims", "Democrats", "Republicans",
}

func wordListRe(words []string) *regexp.Regexp {
	sorted := append([]string(nil), words...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

type recognizer struct {
	label string
	re    *regexp.Regexp
	group int
	skip  func(string) bool
}

// recognizers run in priority order; a later match overlapping an earlier
// one is discarded.
var recognizers = []recognizer{
	{label: LabelMoney, re: regexp.MustCompile(`(?i)(?:[$€£]\s?\d[\d,]*(?:\.\d+)?(?:\s?(?:thousand|million|billion|trillion))?|\b\d[\d,]*(?:\.\d+)?\s?(?:million |billion )?(?:dollars|euros|pounds|USD|EUR)\b)`)},
	{label: LabelPercent, re: regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s?(?:%|percent\b)`)},
	{label: LabelDate, re: regexp.MustCompile(`\b` + months + `\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b|\b\d{1,2}\s+` + months + `\s+\d{4}\b|\b` + months + `\s+\d{4}\b|\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b(?:1[0-9]|20)\d{2}s?\b`)},
	{label: LabelPerson, re: regexp.MustCompile(`\b(?:President|Vice President|Mr\.|Mrs\.|Ms\.|Dr\.|Prof\.|Professor|Senator|General|Captain|Commander|Astronaut|King|Queen|Prince|Princess|Sir|Lady|Pope)\s+(` + capWord + `(?:\s+` + capWord + `)*)`), group: 1},
	{label: LabelOrg, re: regexp.MustCompile(`\b(?:[A-Z][\w&'-]*\s+)+(?:Inc\.?|Corp\.?|Corporation|Company|Ltd\.?|LLC|GmbH|Program|Programme|Project|University|College|Agency|Institute|Association|Foundation|Administration|Committee|Council|Department|Ministry|Bank|Group|Laboratory|Center|Centre|Society|Party)\b`)},
	{label: LabelGPE, re: wordListRe(places)},
	{label: LabelLoc, re: wordListRe(locations)},
	{label: LabelNORP, re: wordListRe(groups)},
	{label: LabelOrg, re: regexp.MustCompile(`\b[A-Z]{2,6}\b`), skip: func(s string) bool { return s == "OK" || s == "TV" || s == "AM" || s == "PM" }},
	{label: LabelEntity, re: regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+(?:of\s+)?[A-Z][a-z]+)+\b`), skip: startsWithStopWord},
}

func startsWithStopWord(s string) bool {
	first, _, _ := strings.Cut(s, " ")
	return IsStopWord(strings.ToLower(first))
}

type span struct{ start, end int }

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// ExtractEntities recognizes named entities with pattern rules and known
// name lists. Results are ordered by position, deduplicated by lowercase text
// and label, and never contain single-character entities.
func ExtractEntities(text string) []common.Entity {
	if strings.TrimSpace(text) == "" {
		return []common.Entity{}
	}

	var taken []span
	var found []common.Entity
	for _, r := range recognizers {
		for _, m := range r.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[2*r.group], m[2*r.group+1]
			if start < 0 {
				continue
			}
			s := span{start, end}
			value := strings.TrimSpace(text[start:end])
			if r.skip != nil && r.skip(value) {
				continue
			}
			if overlapsAny(s, taken) {
				continue
			}
			taken = append(taken, s)
			found = append(found, common.Entity{
				Text:        value,
				Label:       r.label,
				Description: LabelDescription(r.label),
				Start:       start,
				End:         end,
			})
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].Start < found[j].Start })

	seen := make(map[string]struct{}, len(found))
	out := make([]common.Entity, 0, len(found))
	for _, e := range found {
		if utf8.RuneCountInString(e.Text) <= 1 {
			continue
		}
		key := strings.ToLower(e.Text) + "\x00" + e.Label
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

func overlapsAny(s span, taken []span) bool {
	for _, t := range taken {
		if s.overlaps(t) {
			return true
		}
	}
	return false
}
