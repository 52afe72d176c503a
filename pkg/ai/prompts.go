package ai

// RawBatchPlaceholder marks where refinement prompts receive the batch JSON.
const RawBatchPlaceholder = "{RAW_NLP_BATCH_JSON}"

const refinePreamble = `
# Task Context
You are an assistant that cleans and formats NLP outputs for graph visualization.
`

const RefineEntitiesPrompt = refinePreamble + `
# Background Data
I will provide you JSON from an NLP pipeline with entities. The data may contain duplicates, acronyms, inconsistent formatting, or missing context.

# Detailed Task Description & Rules
1. Merge duplicates (e.g., "Kennedy" + "John F. Kennedy").
2. Expand acronyms (e.g., "USSR" → "Soviet Union").
3. Add a short, factual description for each entity (1 sentence max).
4. Standardize entity labels (PERSON, ORG, GPE, LOC, NORP, EVENT, DATE, etc.).

# Output Formatting
Strictly return valid JSON with top-level key: { "entities": [] }.
Each entity must have:
- "text": canonical name
- "label": the type
- "description": 1-sentence context
Output only JSON, no commentary.

# NLP Output
` + RawBatchPlaceholder

const RefineKeywordsPrompt = refinePreamble + `
# Background Data
I will provide you JSON from an NLP pipeline with keywords. The data may contain duplicates, inconsistent formatting, or missing scores.

# Detailed Task Description & Rules
1. Remove duplicates.
2. Keep keywords concise and lowercase.
3. Ensure scores are between 0 and 1.

# Output Formatting
Strictly return valid JSON with top-level key: { "keywords": [] }.
Each keyword must have:
- "word": the keyword text
- "score": float between 0 and 1
Output only JSON, no commentary.

# NLP Output
` + RawBatchPlaceholder

const RefineRelationshipsPrompt = refinePreamble + `
# Background Data
I will provide you JSON from an NLP pipeline with relationships. The data may contain duplicates, inconsistent formatting, or missing context.

# Detailed Task Description & Rules
1. Remove duplicates.
2. Standardize relationship types (associated-with, co-occurs, established, located-in, etc.).
3. Add a context field with a short natural-language snippet.
4. Clean source and target names.

# Output Formatting
Strictly return valid JSON with top-level key: { "relationships": [] }.
Each relationship must have:
- "source": source entity name
- "target": target entity name
- "type": relationship type
- "context": short natural-language description
Output only JSON, no commentary.

# NLP Output
` + RawBatchPlaceholder

const ExtractGraphPrompt = `
# Task Context
You turn a piece of text into a small concept graph for an interactive visualization.

# Background Data
%s

# Detailed Task Description & Rules
- Identify the important entities and concepts of the text (people, organizations, places, dates, events, ideas).
- Give every node a short unique id (lowercase, words joined by "-"), a readable label and a category in uppercase (PERSON, ORG, GPE, LOC, DATE, EVENT, CONCEPT).
- Add a confidence between 0 and 1 for the category.
- Connect nodes that are related in the text. Links reference node ids.
- Set "animated" to true for links that express a cause, an action or a strong dependency.
- Use at most %d nodes.

# Output Formatting
Return only a JSON object with this structure:
{
  "nodes": [
    {"id": "<id>", "label": "<label>", "category": "<CATEGORY>", "confidence": <0..1>, "description": "<one sentence>"}
  ],
  "links": [
    {"source": "<id>", "target": "<id>", "type": "<relation>", "animated": <true|false>}
  ]
}
`
