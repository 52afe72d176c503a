// Package nlp extracts entities, keywords and relationships from plain text
// with rule based recognizers. Its output feeds the text-to-graph adapter.
package nlp

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"
)

// MaxTextLength is the longest input accepted by Process, in characters.
const MaxTextLength = 50000

var (
	ErrEmptyText   = errors.New("empty text provided")
	ErrTextTooLong = fmt.Errorf("text exceeds %d characters", MaxTextLength)
)

// Options selects the pipeline stages run by Process.
type Options struct {
	BasicPreprocessing   bool `json:"basicPreprocessing"`
	KeywordExtraction    bool `json:"keywordExtraction"`
	EntityRecognition    bool `json:"entityRecognition"`
	SentimentAnalysis    bool `json:"sentimentAnalysis"`
	RelationshipMapping  bool `json:"relationshipMapping"`
	IntentClassification bool `json:"intentClassification"`
	MaxKeywords          int  `json:"maxKeywords,omitempty"`
}

// DefaultOptions enables every stage a graph needs.
func DefaultOptions() Options {
	return Options{
		BasicPreprocessing:  true,
		KeywordExtraction:   true,
		EntityRecognition:   true,
		RelationshipMapping: true,
	}
}

// AllOptions enables every stage.
func AllOptions() Options {
	o := DefaultOptions()
	o.SentimentAnalysis = true
	o.IntentClassification = true
	return o
}

// Processor runs the analysis pipeline. It holds no state and is safe for
// concurrent use.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateText checks the input limits shared by every entry point.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return ErrTextTooLong
	}
	return nil
}

// Process analyzes text with the stages selected in opts.
func (p *Processor) Process(text string, opts Options) (*common.Analysis, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	res := &common.Analysis{
		Entities:      []common.Entity{},
		Keywords:      []common.Keyword{},
		Relationships: []common.Relationship{},
		Steps:         []string{},
	}

	if opts.BasicPreprocessing {
		res.ProcessedText = Preprocess(text)
		res.Steps = append(res.Steps, "Basic text preprocessing (tokenization, stop word removal)")
	} else {
		res.ProcessedText = text
	}

	res.Readability = Readability(text)

	if opts.IntentClassification {
		intent := ClassifyIntent(text)
		res.Context = &common.ContextAnalysis{
			Intent:           intent,
			Complexity:       res.Readability.Complexity,
			ReadabilityScore: res.Readability.FleschEase,
			GradeLevel:       res.Readability.FleschKincaid,
			Language:         "english",
		}
		res.Steps = append(res.Steps, fmt.Sprintf("Context analysis: Intent=%s", intent))
	}

	if opts.KeywordExtraction {
		res.Keywords = ExtractKeywords(text, opts.MaxKeywords)
		res.Steps = append(res.Steps, fmt.Sprintf("Keyword extraction: %d keywords identified", len(res.Keywords)))
	}

	if opts.EntityRecognition {
		res.Entities = ExtractEntities(text)
		res.Steps = append(res.Steps, fmt.Sprintf("Named entity recognition: %d entities found", len(res.Entities)))
	}

	if opts.SentimentAnalysis {
		s := AnalyzeSentiment(text)
		res.Sentiment = &s
		res.Steps = append(res.Steps, fmt.Sprintf("Sentiment analysis: %s sentiment detected", s.Label))
	}

	if opts.RelationshipMapping {
		res.Relationships = BuildRelationships(text, res.Keywords, res.Entities)
		res.Steps = append(res.Steps, fmt.Sprintf("Relationship mapping: %d concept relationships identified", len(res.Relationships)))
	}

	original := len(strings.Fields(text))
	processed := len(strings.Fields(res.ProcessedText))
	sentiment := SentimentNeutral
	if res.Sentiment != nil {
		sentiment = res.Sentiment.Label
	}
	res.Statistics = common.Statistics{
		OriginalWordCount:   original,
		ProcessedWordCount:  processed,
		KeywordCount:        len(res.Keywords),
		EntityCount:         len(res.Entities),
		RelationshipCount:   len(res.Relationships),
		Sentiment:           sentiment,
		ComplexityScore:     res.Readability.FleschEase,
		ProcessingReduction: math.Round((1-float64(processed)/float64(max(original, 1)))*1000) / 10,
	}

	logger.Debug("Processed text", "words", original, "steps", len(res.Steps))

	return res, nil
}

// SelfTest runs the pipeline on a fixed sentence and reports whether every
// stage produced output.
func (p *Processor) SelfTest() error {
	res, err := p.Process("Dr. Jane Smith founded the Example Research Institute in 2001.", AllOptions())
	if err != nil {
		return err
	}
	if len(res.Entities) == 0 || len(res.Keywords) == 0 {
		return errors.New("nlp self test produced no entities or keywords")
	}
	return nil
}
