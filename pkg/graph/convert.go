package graph

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"github.com/OFFIS-RIT/nodelink/pkg/nlp"
)

const (
	shortLabelRunes        = 14
	defaultMaxKeywordNodes = 10
	animatedStrength       = 0.5
)

// causal relationship types are always drawn animated.
var causalTypes = map[string]bool{
	nlp.RelActsOn:    true,
	nlp.RelActedOnBy: true,
	"causes":         true,
	"leads-to":       true,
	"established":    true,
	"founded":        true,
	"landed-on":      true,
	"launched":       true,
}

// ConvertOptions tunes FromAnalysis.
type ConvertOptions struct {
	// MaxKeywordNodes caps how many keywords become nodes. Zero means 10,
	// negative means none.
	MaxKeywordNodes int
	Source          common.NodeSource
}

// ShortLabel truncates label for rendering.
func ShortLabel(label string) string {
	if utf8.RuneCountInString(label) <= shortLabelRunes {
		return label
	}
	runes := []rune(label)
	return strings.TrimSpace(string(runes[:shortLabelRunes])) + "…"
}

// Slug turns a label into a lowercase id made of letters, digits and dashes.
func Slug(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "node"
	}
	return s
}

// idSet hands out unique ids derived from labels.
type idSet map[string]int

func (s idSet) next(base string) string {
	n := s[base]
	s[base] = n + 1
	if n == 0 {
		return base
	}
	id := base + "-" + strconv.Itoa(n+1)
	// a label may itself slug to "x-2"
	for s[id] > 0 {
		n++
		id = base + "-" + strconv.Itoa(n+1)
	}
	s[id] = 1
	return id
}

// NewNode builds a node with derived id-independent display fields set.
func NewNode(id, label, category string, source common.NodeSource) common.Node {
	category = NormalizeCategory(category)
	return common.Node{
		ID:         id,
		Label:      label,
		ShortLabel: ShortLabel(label),
		Category:   category,
		Color:      CategoryColor(category),
		Source:     source,
	}
}

// FromAnalysis converts an NLP analysis into a graph. Entities become nodes
// tagged with their label, the top keywords become KEYWORD nodes and
// relationships become links. Relationship endpoints are matched to node
// labels case-insensitively; relationships naming an unknown term are
// dropped, as are self links and duplicates.
//
// Node positions are left at the origin for the layout to assign.
func FromAnalysis(analysis *common.Analysis, opts ConvertOptions) common.Graph {
	g := common.Graph{Nodes: []common.Node{}, Links: []common.Link{}}
	if analysis == nil {
		return g
	}
	if opts.Source == "" {
		opts.Source = common.NodeSourceBasic
	}
	maxKeywords := opts.MaxKeywordNodes
	if maxKeywords == 0 {
		maxKeywords = defaultMaxKeywordNodes
	}

	ids := idSet{}
	byLabel := make(map[string]string)
	addNode := func(label, category, description string) {
		label = strings.TrimSpace(label)
		key := strings.ToLower(label)
		if key == "" {
			return
		}
		if _, ok := byLabel[key]; ok {
			return
		}
		n := NewNode(ids.next(Slug(label)), label, category, opts.Source)
		n.Description = description
		byLabel[key] = n.ID
		g.Nodes = append(g.Nodes, n)
	}

	for _, e := range analysis.Entities {
		addNode(e.Text, e.Label, e.Description)
	}
	if maxKeywords > 0 {
		for i, k := range analysis.Keywords {
			if i >= maxKeywords {
				break
			}
			addNode(k.Word, CategoryKeyword, "")
		}
	}

	seen := make(map[string]bool)
	for _, r := range analysis.Relationships {
		src, ok := byLabel[strings.ToLower(strings.TrimSpace(r.Source))]
		if !ok {
			continue
		}
		tgt, ok := byLabel[strings.ToLower(strings.TrimSpace(r.Target))]
		if !ok || src == tgt {
			continue
		}
		key := src + "\x00" + tgt + "\x00" + r.Type
		if seen[key] {
			continue
		}
		seen[key] = true
		g.Links = append(g.Links, common.Link{
			Source:   src,
			Target:   tgt,
			Type:     r.Type,
			Animated: r.Strength >= animatedStrength || causalTypes[r.Type],
			Strength: r.Strength,
		})
	}
	return g
}
