// Package analyzer scores free text on a positive/negative axis using a
// weighted term lexicon with contextual adjustments for negation, degree
// modifiers, capitalization, and punctuation emphasis.
package analyzer

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	boostIncrement  = 0.293
	capsEmphasis    = 0.733
	negationFactor  = -0.74
	exclamationUnit = 0.292
	normAlpha       = 15
	positiveCutoff  = 0.05
	negativeCutoff  = -0.05
)

// Scores is the raw intensity breakdown behind a classification. Compound
// is the normalized sum of all term valences in [-1, 1]; the other three
// are the proportions of the text that read positive, negative, and
// neutral.
type Scores struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Result is a single classification. Score maps the compound from
// [-1, 1] onto [0, 1], so 0.5 is perfectly neutral.
type Result struct {
	Label   string  `json:"label"`
	Score   float64 `json:"score"`
	Details Scores  `json:"details"`
}

// Engine classifies text against the built-in lexicon. The zero value is
// not usable; construct with New.
type Engine struct {
	lexicon map[string]float64
}

func New() *Engine {
	return &Engine{lexicon: valence}
}

// Analyze classifies a single piece of text. Text with no recognized
// sentiment terms comes back neutral with a score of exactly 0.5.
func (e *Engine) Analyze(text string) Result {
	tokens := tokenize(text)
	shouting := capsDifferential(tokens)

	sentiments := make([]float64, len(tokens))
	for i, token := range tokens {
		sentiments[i] = e.tokenValence(tokens, i, token, shouting)
	}
	contrastCheck(tokens, sentiments)

	compound, scores := scoreValence(sentiments, text)

	label := "neutral"
	switch {
	case compound >= positiveCutoff:
		label = "positive"
	case compound <= negativeCutoff:
		label = "negative"
	}

	return Result{
		Label:   label,
		Score:   round2((compound + 1) / 2),
		Details: scores,
	}
}

// tokenValence resolves the contextual valence of tokens[i]: the base
// lexicon weight adjusted for shouting, then for boosters and negations
// in the three preceding tokens. Booster influence decays with distance.
func (e *Engine) tokenValence(tokens []string, i int, token string, shouting bool) float64 {
	lower := strings.ToLower(token)
	if _, isBooster := boosters[lower]; isBooster {
		return 0
	}
	v, ok := e.lexicon[lower]
	if !ok {
		return 0
	}

	if shouting && isShouting(token) {
		if v > 0 {
			v += capsEmphasis
		} else {
			v -= capsEmphasis
		}
	}

	for dist := 1; dist <= 3; dist++ {
		j := i - dist
		if j < 0 {
			break
		}
		prevLower := strings.ToLower(tokens[j])
		// A preceding sentiment word carries its own weight and does
		// not modify this one.
		if _, known := e.lexicon[prevLower]; known {
			continue
		}
		boost := scalarBoost(tokens[j], v, shouting)
		switch dist {
		case 2:
			boost *= 0.95
		case 3:
			boost *= 0.9
		}
		v += boost
		if negations[prevLower] {
			v *= negationFactor
		}
	}
	return v
}

func scalarBoost(word string, v float64, shouting bool) float64 {
	b, ok := boosters[strings.ToLower(word)]
	if !ok {
		return 0
	}
	if v < 0 {
		b = -b
	}
	if shouting && isShouting(word) {
		if v > 0 {
			b += capsEmphasis
		} else {
			b -= capsEmphasis
		}
	}
	return b
}

// contrastCheck reweights a sentence around "but": the clause after the
// contrast dominates the one before it.
func contrastCheck(tokens []string, sentiments []float64) {
	for i, token := range tokens {
		if strings.ToLower(token) != "but" {
			continue
		}
		for j := range sentiments {
			if j < i {
				sentiments[j] *= 0.5
			} else if j > i {
				sentiments[j] *= 1.5
			}
		}
		return
	}
}

// scoreValence folds per-token valences into the compound score and the
// positive/negative/neutral proportions. Punctuation emphasis is applied
// to whichever side already dominates.
func scoreValence(sentiments []float64, text string) (float64, Scores) {
	if len(sentiments) == 0 {
		return 0, Scores{}
	}

	var sum float64
	for _, s := range sentiments {
		sum += s
	}
	punct := punctuationEmphasis(text)
	if sum > 0 {
		sum += punct
	} else if sum < 0 {
		sum -= punct
	}
	compound := normalize(sum)

	var posSum, negSum, neuCount float64
	for _, s := range sentiments {
		switch {
		case s > 0:
			posSum += s + 1
		case s < 0:
			negSum += s - 1
		default:
			neuCount++
		}
	}
	if posSum > math.Abs(negSum) {
		posSum += punct
	} else if posSum < math.Abs(negSum) {
		negSum -= punct
	}

	total := posSum + math.Abs(negSum) + neuCount
	return compound, Scores{
		Compound: round4(compound),
		Positive: round4(math.Abs(posSum / total)),
		Negative: round4(math.Abs(negSum / total)),
		Neutral:  round4(math.Abs(neuCount / total)),
	}
}

// punctuationEmphasis measures how much trailing punctuation amplifies
// the text. Exclamation marks count individually up to four; question
// marks only matter in multiples.
func punctuationEmphasis(text string) float64 {
	excl := strings.Count(text, "!")
	if excl > 4 {
		excl = 4
	}
	emphasis := float64(excl) * exclamationUnit

	quest := strings.Count(text, "?")
	if quest > 1 {
		if quest <= 3 {
			emphasis += float64(quest) * 0.18
		} else {
			emphasis += 0.96
		}
	}
	return emphasis
}

// normalize maps an unbounded valence sum into [-1, 1].
func normalize(sum float64) float64 {
	norm := sum / math.Sqrt(sum*sum+normAlpha)
	if norm < -1 {
		return -1
	}
	if norm > 1 {
		return 1
	}
	return norm
}

// tokenize splits on whitespace and strips surrounding punctuation,
// keeping interior apostrophes so contractions survive. Single-rune
// leftovers are dropped.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		stripped := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if utf8.RuneCountInString(stripped) > 1 {
			tokens = append(tokens, stripped)
		}
	}
	return tokens
}

// isShouting reports whether a token is written in all capitals. Tokens
// without letters never shout.
func isShouting(token string) bool {
	hasLetter := false
	for _, r := range token {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return hasLetter
}

// capsDifferential reports whether the text mixes shouted and normal
// tokens. All-caps text is treated as a style, not emphasis.
func capsDifferential(tokens []string) bool {
	count := 0
	for _, t := range tokens {
		if isShouting(t) {
			count++
		}
	}
	return count > 0 && count < len(tokens)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
