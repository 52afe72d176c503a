package graph

import (
	"hash/fnv"
	"strings"
)

// Categories used for nodes that do not come from an entity label.
const (
	CategoryKeyword = "KEYWORD"
	CategoryConcept = "CONCEPT"
	CategoryEvent   = "EVENT"
)

var categoryColors = map[string]string{
	"PERSON":        "#4e79a7",
	"ORG":           "#f28e2b",
	"GPE":           "#e15759",
	"LOC":           "#76b7b2",
	"NORP":          "#59a14f",
	"DATE":          "#edc948",
	"MONEY":         "#b07aa1",
	"PERCENT":       "#ff9da7",
	"ENTITY":        "#8cd17d",
	CategoryEvent:   "#9c755f",
	CategoryKeyword: "#bab0ac",
	CategoryConcept: "#86bcb6",
}

var categoryAliases = map[string]string{
	"LOCATION":     "LOC",
	"PLACE":        "LOC",
	"ORGANIZATION": "ORG",
	"COUNTRY":      "GPE",
	"CITY":         "GPE",
	"TIME":         "DATE",
}

var fallbackColors = []string{
	"#499894", "#d37295", "#a0cbe8", "#ffbe7d", "#8f6d31", "#d4a6c8", "#79706e", "#f1ce63",
}

// NormalizeCategory uppercases a category and folds common synonyms onto the
// entity labels. An empty category becomes CONCEPT.
func NormalizeCategory(category string) string {
	c := strings.ToUpper(strings.TrimSpace(category))
	c = strings.ReplaceAll(c, " ", "_")
	if c == "" {
		return CategoryConcept
	}
	if alias, ok := categoryAliases[c]; ok {
		return alias
	}
	return c
}

// CategoryColor returns the display color of a category. Unknown categories
// get a stable color picked by hashing the name.
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(category))
	return fallbackColors[h.Sum32()%uint32(len(fallbackColors))]
}
