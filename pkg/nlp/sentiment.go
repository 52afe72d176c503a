package nlp

import (
	"math"
	"strings"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

const (
	sentimentThreshold = 0.05
	normalizeAlpha     = 15
	negationScale      = -0.74
)

// valence holds word polarities on a -4..4 scale.
var valence = map[string]float64{
	"good": 1.9, "great": 3.1, "excellent": 3.2, "amazing": 2.8, "awesome": 3.1,
	"wonderful": 2.7, "fantastic": 2.6, "best": 3.2, "better": 1.9, "love": 3.2,
	"like": 1.5, "enjoy": 2.2, "happy": 2.7, "glad": 2.0, "nice": 1.8,
	"success": 2.7, "successful": 2.8, "win": 2.8, "won": 2.7, "achieve": 1.8,
	"achieved": 1.8, "achievement": 2.0, "hope": 1.9, "inspire": 2.2,
	"inspiring": 2.3, "proud": 2.1, "brilliant": 2.8, "beautiful": 2.9,
	"benefit": 1.6, "improve": 1.9, "improved": 2.1, "positive": 2.6,
	"safe": 1.9, "strong": 2.3, "helpful": 1.8, "support": 1.7, "triumph": 2.9,
	"bad": -2.5, "terrible": -2.1, "awful": -2.0, "horrible": -2.5,
	"worst": -3.1, "worse": -2.1, "hate": -2.7, "dislike": -1.6, "sad": -2.1,
	"angry": -2.3, "fail": -2.5, "failed": -2.3, "failure": -2.3, "lose": -1.6,
	"lost": -1.3, "loss": -1.3, "problem": -1.7, "crisis": -3.1, "disaster": -3.1,
	"tragic": -3.4, "tragedy": -3.4, "death": -2.9, "died": -2.6, "kill": -3.7,
	"killed": -3.5, "war": -2.9, "fear": -2.2, "danger": -2.4, "dangerous": -2.1,
	"risk": -1.1, "poor": -2.1, "weak": -1.9, "wrong": -2.1, "negative": -2.7,
	"difficult": -1.5, "hard": -0.4, "broken": -2.1, "pain": -2.3,
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "none": true, "nobody": true,
	"nothing": true, "neither": true, "nor": true, "without": true,
	"isn't": true, "wasn't": true, "aren't": true, "don't": true,
	"doesn't": true, "didn't": true, "can't": true, "won't": true, "cannot": true,
}

var boosters = map[string]float64{
	"very": 0.293, "really": 0.293, "extremely": 0.293, "incredibly": 0.293,
	"so": 0.293, "highly": 0.293, "slightly": -0.293, "somewhat": -0.293,
	"barely": -0.293,
}

// AnalyzeSentiment scores text with a valence lexicon. The compound score is
// the summed valence normalized into (-1, 1) by x/sqrt(x²+15).
func AnalyzeSentiment(text string) common.Sentiment {
	if strings.TrimSpace(text) == "" {
		return common.Sentiment{Label: SentimentNeutral, Neutral: 1}
	}

	var words []string
	for _, tok := range Tokenize(text) {
		if tok.IsWord() {
			words = append(words, tok.Lower())
		}
	}

	var sum, pos, neg float64
	neutral := 0
	for i, w := range words {
		v, ok := valence[w]
		if !ok {
			neutral++
			continue
		}
		if i > 0 {
			if b, ok := boosters[words[i-1]]; ok {
				if v > 0 {
					v += b
				} else {
					v -= b
				}
			}
		}
		for j := max(0, i-3); j < i; j++ {
			if negations[words[j]] {
				v *= negationScale
				break
			}
		}
		sum += v
		if v > 0 {
			pos += v + 1
		} else if v < 0 {
			neg += v - 1
		} else {
			neutral++
		}
	}

	compound := sum / math.Sqrt(sum*sum+normalizeAlpha)
	total := pos + math.Abs(neg) + float64(neutral)
	s := common.Sentiment{
		Compound:   round(compound, 4),
		Confidence: round(math.Abs(compound), 4),
		Label:      sentimentLabel(compound),
	}
	if total > 0 {
		s.Positive = round(pos/total, 3)
		s.Negative = round(math.Abs(neg)/total, 3)
		s.Neutral = round(float64(neutral)/total, 3)
	}
	return s
}

func sentimentLabel(compound float64) string {
	switch {
	case compound >= sentimentThreshold:
		return SentimentPositive
	case compound <= -sentimentThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
