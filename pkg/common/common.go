package common

// Entity is a named entity recognized in the input text, such as a person,
// an organization or a date. Start and End are byte offsets into the text.
type Entity struct {
	Text        string `json:"text"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
}

// Keyword is a salient term of the input text. Score combines the term's
// TF-IDF weight and its relative frequency.
type Keyword struct {
	Word      string  `json:"word"`
	Score     float64 `json:"score"`
	Frequency int     `json:"frequency"`
	TFIDF     float64 `json:"tfidf"`
}

// Relationship describes how two terms of the text are connected.
//
// Relationships are directional, from Source to Target. Strength is in
// (0, 1], higher meaning closer or more frequent co-occurrence.
type Relationship struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Type        string  `json:"type"`
	Strength    float64 `json:"strength"`
	Context     string  `json:"context"`
	Description string  `json:"description,omitempty"`
}

// Sentiment is the polarity of a text.
type Sentiment struct {
	Compound   float64 `json:"compound"`
	Positive   float64 `json:"positive"`
	Negative   float64 `json:"negative"`
	Neutral    float64 `json:"neutral"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Readability holds Flesch scores and a coarse complexity band.
type Readability struct {
	FleschEase    float64 `json:"flesch_ease"`
	FleschKincaid float64 `json:"flesch_kincaid"`
	Complexity    string  `json:"complexity"`
}

// ContextAnalysis classifies what kind of text was submitted.
type ContextAnalysis struct {
	Intent           string  `json:"intent"`
	Complexity       string  `json:"complexity"`
	ReadabilityScore float64 `json:"readability_score"`
	GradeLevel       float64 `json:"grade_level"`
	Language         string  `json:"language"`
}

// Statistics summarizes an analysis run.
type Statistics struct {
	OriginalWordCount   int     `json:"original_word_count"`
	ProcessedWordCount  int     `json:"processed_word_count"`
	KeywordCount        int     `json:"keyword_count"`
	EntityCount         int     `json:"entity_count"`
	RelationshipCount   int     `json:"relationship_count"`
	Sentiment           string  `json:"sentiment"`
	ComplexityScore     float64 `json:"complexity_score"`
	ProcessingReduction float64 `json:"processing_reduction"`
}

// Analysis is the output of the basic NLP pipeline. It is the raw material
// the text-to-graph adapter turns into nodes and links.
type Analysis struct {
	ProcessedText string           `json:"processed_text"`
	Entities      []Entity         `json:"entities"`
	Keywords      []Keyword        `json:"keywords"`
	Relationships []Relationship   `json:"relationships"`
	Sentiment     *Sentiment       `json:"sentiment,omitempty"`
	Readability   Readability      `json:"readability"`
	Context       *ContextAnalysis `json:"context_analysis,omitempty"`
	Statistics    Statistics       `json:"statistics"`
	Steps         []string         `json:"processing_steps"`
}
