package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

// Token is a word or punctuation mark with its byte offsets in the source.
type Token struct {
	Text  string
	Start int
	End   int
}

// Lower returns the lowercased token text.
func (t Token) Lower() string {
	return strings.ToLower(t.Text)
}

// IsWord reports whether the token starts with a letter or digit.
func (t Token) IsWord() bool {
	for _, r := range t.Text {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return false
}

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}'’-]*|[^\s\p{L}\p{N}]`)

// Tokenize splits text into word and punctuation tokens.
func Tokenize(text string) []Token {
	locs := tokenRe.FindAllStringIndex(text, -1)
	tokens := make([]Token, 0, len(locs))
	for _, loc := range locs {
		tokens = append(tokens, Token{Text: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]})
	}
	return tokens
}

// Preprocess lowercases text and drops stop words, punctuation and
// single-character tokens.
func Preprocess(text string) string {
	var out []string
	for _, tok := range Tokenize(text) {
		lower := tok.Lower()
		if !tok.IsWord() || len([]rune(lower)) <= 1 || IsStopWord(lower) {
			continue
		}
		out = append(out, lower)
	}
	return strings.Join(out, " ")
}

// IsStopWord reports whether a lowercase word carries no content.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

var stopWords = func() map[string]struct{} {
	words := strings.Fields(`
		a about above after again against all almost also am among an and any are
		aren't as at be because been before being below between both but by can
		cannot could couldn't did didn't do does doesn't doing don't down during
		each either else enough even ever every few for from further get gets got
		had hadn't has hasn't have haven't having he he'd he'll he's her here
		here's hers herself him himself his how how's however i i'd i'll i'm i've
		if in into is isn't it it's its itself just least less let's like made
		make many may me might more most much must mustn't my myself neither no
		nor not now of off often on once one only or other others ought our ours
		ourselves out over own per perhaps quite rather really same shall shan't
		she she'd she'll she's should shouldn't since so some such than that
		that's the their theirs them themselves then there there's these they
		they'd they'll they're they've this those though through thus to too
		under until up upon us used very via was wasn't we we'd we'll we're we've
		well were weren't what what's whatever when when's where where's whether
		which while who who's whom whose why why's will with within without won't
		would wouldn't yet you you'd you'll you're you've your yours yourself
		yourselves`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()
