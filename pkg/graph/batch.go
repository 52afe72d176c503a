package graph

import (
	"fmt"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

// BatchType is the kind of records a batch holds.
type BatchType string

const (
	BatchEntities      BatchType = "entities"
	BatchKeywords      BatchType = "keywords"
	BatchRelationships BatchType = "relationships"
)

// RefineMethod records how a batch was refined.
type RefineMethod string

const (
	RefineModel  RefineMethod = "model"
	RefineRules  RefineMethod = "rules"
	RefineFailed RefineMethod = "failed"
)

// BatchConfig sets how many records go into one refinement request.
type BatchConfig struct {
	EntitiesPerBatch      int `json:"entities_per_batch" toml:"entities_per_batch"`
	KeywordsPerBatch      int `json:"keywords_per_batch" toml:"keywords_per_batch"`
	RelationshipsPerBatch int `json:"relationships_per_batch" toml:"relationships_per_batch"`
}

// DefaultBatchConfig returns 20 entities, 30 keywords and 25 relationships
// per batch.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		EntitiesPerBatch:      20,
		KeywordsPerBatch:      30,
		RelationshipsPerBatch: 25,
	}
}

func (c BatchConfig) withDefaults() BatchConfig {
	d := DefaultBatchConfig()
	if c.EntitiesPerBatch <= 0 {
		c.EntitiesPerBatch = d.EntitiesPerBatch
	}
	if c.KeywordsPerBatch <= 0 {
		c.KeywordsPerBatch = d.KeywordsPerBatch
	}
	if c.RelationshipsPerBatch <= 0 {
		c.RelationshipsPerBatch = d.RelationshipsPerBatch
	}
	return c
}

// Batch is a slice of one kind of analysis records sent through refinement.
// Only the field matching Type is populated.
type Batch struct {
	ID            string                `json:"batch_id"`
	Type          BatchType             `json:"batch_type"`
	Entities      []common.Entity       `json:"entities,omitempty"`
	Keywords      []common.Keyword      `json:"keywords,omitempty"`
	Relationships []common.Relationship `json:"relationships,omitempty"`
	Method        RefineMethod          `json:"refinement_method,omitempty"`
}

// Len returns the number of records in the batch.
func (b Batch) Len() int {
	switch b.Type {
	case BatchEntities:
		return len(b.Entities)
	case BatchKeywords:
		return len(b.Keywords)
	case BatchRelationships:
		return len(b.Relationships)
	}
	return 0
}

func chunk[T any](items []T, size int, fn func(n int, part []T)) {
	for i, n := 0, 1; i < len(items); i, n = i+size, n+1 {
		end := min(i+size, len(items))
		fn(n, append([]T(nil), items[i:end]...))
	}
}

// CreateBatches splits the analysis into entity, keyword and relationship
// batches with ids like "entities_1". Empty record lists produce no batches.
func CreateBatches(analysis *common.Analysis, cfg BatchConfig) []Batch {
	if analysis == nil {
		return nil
	}
	cfg = cfg.withDefaults()

	var batches []Batch
	chunk(analysis.Entities, cfg.EntitiesPerBatch, func(n int, part []common.Entity) {
		batches = append(batches, Batch{ID: fmt.Sprintf("%s_%d", BatchEntities, n), Type: BatchEntities, Entities: part})
	})
	chunk(analysis.Keywords, cfg.KeywordsPerBatch, func(n int, part []common.Keyword) {
		batches = append(batches, Batch{ID: fmt.Sprintf("%s_%d", BatchKeywords, n), Type: BatchKeywords, Keywords: part})
	})
	chunk(analysis.Relationships, cfg.RelationshipsPerBatch, func(n int, part []common.Relationship) {
		batches = append(batches, Batch{ID: fmt.Sprintf("%s_%d", BatchRelationships, n), Type: BatchRelationships, Relationships: part})
	})
	return batches
}
