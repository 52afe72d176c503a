package graph

import (
	"strings"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

func dedupeBy[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

func entityKey(e common.Entity) string {
	return strings.ToLower(strings.TrimSpace(e.Text))
}

func keywordKey(k common.Keyword) string {
	return strings.ToLower(strings.TrimSpace(k.Word))
}

func relationshipKey(r common.Relationship) string {
	if strings.TrimSpace(r.Source) == "" || strings.TrimSpace(r.Target) == "" {
		return ""
	}
	return r.Source + "-" + r.Target + "-" + r.Type
}

// MergedBatches is the result of merging refined batches.
type MergedBatches struct {
	Entities      []common.Entity       `json:"entities"`
	Keywords      []common.Keyword      `json:"keywords"`
	Relationships []common.Relationship `json:"relationships"`
	Methods       []RefineMethod        `json:"refinement_methods"`
}

// MergeBatches concatenates refined batches in order and removes duplicates:
// entities by lowercase text, keywords by lowercase word and relationships
// by source, target and type. The first occurrence wins.
func MergeBatches(batches []Batch) MergedBatches {
	var m MergedBatches
	for _, b := range batches {
		m.Entities = append(m.Entities, b.Entities...)
		m.Keywords = append(m.Keywords, b.Keywords...)
		m.Relationships = append(m.Relationships, b.Relationships...)
		m.Methods = append(m.Methods, b.Method)
	}
	m.Entities = dedupeBy(m.Entities, entityKey)
	m.Keywords = dedupeBy(m.Keywords, keywordKey)
	m.Relationships = dedupeBy(m.Relationships, relationshipKey)
	return m
}

// Apply replaces the records of analysis with the merged ones.
func (m MergedBatches) Apply(analysis *common.Analysis) {
	analysis.Entities = m.Entities
	analysis.Keywords = m.Keywords
	analysis.Relationships = m.Relationships
	analysis.Statistics.EntityCount = len(m.Entities)
	analysis.Statistics.KeywordCount = len(m.Keywords)
	analysis.Statistics.RelationshipCount = len(m.Relationships)
}
