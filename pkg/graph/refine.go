package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/OFFIS-RIT/nodelink/internal/util"
	"github.com/OFFIS-RIT/nodelink/pkg/ai"
	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

var acronyms = map[string]string{
	"USA":  "United States",
	"US":   "United States",
	"UK":   "United Kingdom",
	"USSR": "Soviet Union",
	"NASA": "National Aeronautics and Space Administration",
	"JFK":  "John F. Kennedy",
}

var entityDescriptions = map[string]string{
	"PERSON":   "%s is a person mentioned in the text.",
	"ORG":      "%s is an organization.",
	"GPE":      "%s is a geopolitical entity.",
	"EVENT":    "%s is an event or occurrence.",
	"DATE":     "%s is a date or time reference.",
	"LOCATION": "%s is a location or place.",
	"PRODUCT":  "%s is a product or service.",
}

var relationshipContexts = map[string]string{
	"associated-with": "%s is associated with %s.",
	"co-occurs":       "%s and %s appear together in the text.",
	"established":     "%s established %s.",
	"landed-on":       "%s landed on %s.",
	"worked-for":      "%s worked for %s.",
	"located-in":      "%s is located in %s.",
}

// CleanText collapses whitespace and expands a few well known acronyms.
func CleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	if expansion, ok := acronyms[strings.ToUpper(text)]; ok {
		return expansion
	}
	return text
}

func entityDescription(text, label string) string {
	if f, ok := entityDescriptions[label]; ok {
		return fmt.Sprintf(f, text)
	}
	return fmt.Sprintf("%s is mentioned in the text.", text)
}

func relationshipContext(source, target, relType string) string {
	if f, ok := relationshipContexts[relType]; ok {
		return fmt.Sprintf(f, source, target)
	}
	return fmt.Sprintf("%s is related to %s.", source, target)
}

func refineEntitiesRules(entities []common.Entity) []common.Entity {
	out := make([]common.Entity, 0, len(entities))
	for _, e := range entities {
		text := CleanText(e.Text)
		label := strings.ToUpper(strings.TrimSpace(e.Label))
		if label == "" {
			label = "ENTITY"
		}
		out = append(out, common.Entity{
			Text:        text,
			Label:       label,
			Description: entityDescription(text, label),
			Start:       e.Start,
			End:         e.End,
		})
	}
	return out
}

func refineKeywordsRules(keywords []common.Keyword) []common.Keyword {
	out := make([]common.Keyword, 0, len(keywords))
	for _, k := range keywords {
		k.Word = strings.ToLower(strings.TrimSpace(k.Word))
		k.Score = max(0, min(1, k.Score))
		out = append(out, k)
	}
	return out
}

func refineRelationshipsRules(rels []common.Relationship) []common.Relationship {
	out := make([]common.Relationship, 0, len(rels))
	for _, r := range rels {
		r.Source = CleanText(r.Source)
		r.Target = CleanText(r.Target)
		r.Type = strings.TrimSpace(r.Type)
		if r.Type == "" {
			r.Type = "associated-with"
		}
		r.Context = relationshipContext(r.Source, r.Target, r.Type)
		out = append(out, r)
	}
	return out
}

// RefineWithRules cleans a batch without a model.
func RefineWithRules(b Batch) (Batch, error) {
	switch b.Type {
	case BatchEntities:
		b.Entities = refineEntitiesRules(b.Entities)
	case BatchKeywords:
		b.Keywords = refineKeywordsRules(b.Keywords)
	case BatchRelationships:
		b.Relationships = refineRelationshipsRules(b.Relationships)
	default:
		return b, fmt.Errorf("unknown batch type %q", b.Type)
	}
	b.Method = RefineRules
	return b, nil
}

type modelEntity struct {
	Text        string `json:"text" jsonschema_description:"Canonical name of the entity"`
	Label       string `json:"label" jsonschema_description:"Entity type such as PERSON, ORG, GPE, LOC, EVENT or DATE"`
	Description string `json:"description" jsonschema_description:"One sentence of context"`
}

type modelKeyword struct {
	Word  string  `json:"word" jsonschema_description:"The keyword, lowercase"`
	Score float64 `json:"score" jsonschema_description:"Importance between 0 and 1"`
}

type modelRelationship struct {
	Source  string `json:"source" jsonschema_description:"Source entity name"`
	Target  string `json:"target" jsonschema_description:"Target entity name"`
	Type    string `json:"type" jsonschema_description:"Relationship type such as associated-with, co-occurs or established"`
	Context string `json:"context" jsonschema_description:"Short natural-language description"`
}

type modelEntities struct {
	Entities []modelEntity `json:"entities"`
}

type modelKeywords struct {
	Keywords []modelKeyword `json:"keywords"`
}

type modelRelationships struct {
	Relationships []modelRelationship `json:"relationships"`
}

var errEmptyRefinement = errors.New("model returned no records")

func batchPrompt(template string, records any) (string, error) {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	return strings.Replace(template, ai.RawBatchPlaceholder, string(raw), 1), nil
}

// RefineWithModel asks the model to clean a batch.
func RefineWithModel(ctx context.Context, b Batch, client ai.GraphAIClient) (Batch, error) {
	switch b.Type {
	case BatchEntities:
		prompt, err := batchPrompt(ai.RefineEntitiesPrompt, b.Entities)
		if err != nil {
			return b, err
		}
		var res modelEntities
		if err := client.GenerateCompletionWithFormat(ctx, "refine_entities", "Clean and describe NLP entities.", prompt, &res); err != nil {
			return b, err
		}
		entities := make([]common.Entity, 0, len(res.Entities))
		for _, e := range res.Entities {
			text := CleanText(e.Text)
			if text == "" {
				continue
			}
			entities = append(entities, common.Entity{
				Text:        text,
				Label:       NormalizeCategory(e.Label),
				Description: strings.TrimSpace(e.Description),
			})
		}
		if len(entities) == 0 {
			return b, errEmptyRefinement
		}
		b.Entities = entities

	case BatchKeywords:
		prompt, err := batchPrompt(ai.RefineKeywordsPrompt, b.Keywords)
		if err != nil {
			return b, err
		}
		var res modelKeywords
		if err := client.GenerateCompletionWithFormat(ctx, "refine_keywords", "Clean NLP keywords.", prompt, &res); err != nil {
			return b, err
		}
		keywords := make([]common.Keyword, 0, len(res.Keywords))
		for _, k := range res.Keywords {
			word := strings.ToLower(strings.TrimSpace(k.Word))
			if word == "" {
				continue
			}
			keywords = append(keywords, common.Keyword{Word: word, Score: max(0, min(1, k.Score))})
		}
		if len(keywords) == 0 {
			return b, errEmptyRefinement
		}
		b.Keywords = keywords

	case BatchRelationships:
		prompt, err := batchPrompt(ai.RefineRelationshipsPrompt, b.Relationships)
		if err != nil {
			return b, err
		}
		var res modelRelationships
		if err := client.GenerateCompletionWithFormat(ctx, "refine_relationships", "Clean NLP relationships.", prompt, &res); err != nil {
			return b, err
		}
		strength := make(map[string]float64, len(b.Relationships))
		for _, r := range b.Relationships {
			strength[strings.ToLower(r.Source)+"\x00"+strings.ToLower(r.Target)] = r.Strength
		}
		rels := make([]common.Relationship, 0, len(res.Relationships))
		for _, r := range res.Relationships {
			src, tgt := CleanText(r.Source), CleanText(r.Target)
			if src == "" || tgt == "" {
				continue
			}
			s, ok := strength[strings.ToLower(src)+"\x00"+strings.ToLower(tgt)]
			if !ok {
				s = animatedStrength
			}
			rels = append(rels, common.Relationship{
				Source:   src,
				Target:   tgt,
				Type:     strings.TrimSpace(r.Type),
				Strength: s,
				Context:  strings.TrimSpace(r.Context),
			})
		}
		if len(rels) == 0 {
			return b, errEmptyRefinement
		}
		b.Relationships = rels

	default:
		return b, fmt.Errorf("unknown batch type %q", b.Type)
	}
	b.Method = RefineModel
	return b, nil
}

// RefineBatch refines one batch. The model is used when session is ready;
// otherwise, or when the model fails, the rules are applied. If refinement
// is impossible the original records come back with method "failed".
func RefineBatch(ctx context.Context, b Batch, session *ai.Session) Batch {
	return refineBatch(ctx, b, session, 1)
}

func refineBatch(ctx context.Context, b Batch, session *ai.Session, maxRetries int) Batch {
	if b.Len() == 0 {
		return b
	}

	if session != nil && session.Ready() {
		refined, err := util.RetryWithContext(ctx, maxRetries, func(ctx context.Context) (Batch, error) {
			return RefineWithModel(ctx, b, session.Client())
		})
		if err == nil {
			return refined
		}
		if ctx.Err() != nil {
			b.Method = RefineFailed
			return b
		}
		logger.Warn("Model refinement failed, using rules", "batch", b.ID, "err", err)
	}

	refined, err := RefineWithRules(b)
	if err != nil {
		logger.Error("Batch refinement failed", "batch", b.ID, "err", err)
		b.Method = RefineFailed
		return b
	}
	return refined
}
