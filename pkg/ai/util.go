package ai

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
	"github.com/pkoukk/tiktoken-go"
)

func stripDuplicateLeadingBrace(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		rest := strings.TrimSpace(s[1:])
		if strings.HasPrefix(rest, "{") {
			return rest
		}
	}
	return s
}

// GenerateSchema creates a JSON Schema for structured model output from the
// type of value.
func GenerateSchema(value any) any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	v := reflect.New(t).Interface()
	return reflector.Reflect(v)
}

// UnmarshalFlexible unmarshals model generated JSON into out. It accepts
// plain JSON, JSON encoded as a string and malformed JSON that
// jsonrepair can fix.
//
// Example:
//
//	var g Graph
//	UnmarshalFlexible(`{"nodes": []}`, &g)         // standard JSON
//	UnmarshalFlexible(`"{\"nodes\": []}"`, &g)     // double-encoded
//	UnmarshalFlexible(`{nodes: [],}`, &g)          // malformed (repaired)
func UnmarshalFlexible(input string, out any) error {
	input = strings.TrimSpace(input)

	if err := json.Unmarshal([]byte(input), out); err == nil {
		return nil
	}

	var asString string
	if err := json.Unmarshal([]byte(input), &asString); err == nil {
		asString = strings.TrimSpace(asString)
		if err := json.Unmarshal([]byte(asString), out); err == nil {
			return nil
		}
		input = asString
	}

	input = stripDuplicateLeadingBrace(input)
	repaired, err := jsonrepair.JSONRepair(input)
	if err != nil {
		return fmt.Errorf("json repair failed: %w", err)
	}

	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("unmarshal failed after repair: %w", err)
	}
	return nil
}

var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z0-9_-]*\\s*\\n?(.*?)\\n?\\s*```")

// StripCodeFence returns the content of the first markdown code fence in s,
// or s itself when there is none. Text before the first brace or bracket is
// dropped so chatty preambles do not break parsing.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
		s = strings.TrimPrefix(s, "json")
	}
	if i := strings.IndexAny(s, "{["); i > 0 && !strings.HasPrefix(s, `"`) {
		s = s[i:]
	}
	return strings.TrimSpace(s)
}

// ParseError describes model output that could not be parsed. Raw holds the
// unmodified model text.
type ParseError struct {
	Message string `json:"message"`
	Raw     string `json:"raw"`
}

func (e *ParseError) Error() string {
	return "parse model output: " + e.Message
}

// ParseModelJSON parses model output into out. It strips code fences and
// repairs malformed JSON. It never panics; any failure, including a nil or
// non-pointer out, is returned as a *ParseError.
func ParseModelJSON(text string, out any) (perr *ParseError) {
	defer func() {
		if r := recover(); r != nil {
			perr = &ParseError{Message: fmt.Sprint(r), Raw: text}
		}
	}()

	if out == nil || reflect.ValueOf(out).Kind() != reflect.Pointer || reflect.ValueOf(out).IsNil() {
		return &ParseError{Message: "output must be a non-nil pointer", Raw: text}
	}
	body := StripCodeFence(text)
	if body == "" {
		return &ParseError{Message: "empty response", Raw: text}
	}
	if err := UnmarshalFlexible(body, out); err != nil {
		return &ParseError{Message: err.Error(), Raw: text}
	}
	return nil
}

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
	encErr  error
)

// CountTokens returns the number of o200k_base tokens in text.
func CountTokens(text string) (int, error) {
	encOnce.Do(func() {
		enc, encErr = tiktoken.GetEncoding("o200k_base")
	})
	if encErr != nil {
		return 0, encErr
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// EstimateTokens is CountTokens with a character based fallback when the
// encoding cannot be loaded.
func EstimateTokens(text string) int {
	n, err := CountTokens(text)
	if err != nil {
		return len(text)/4 + 1
	}
	return n
}
