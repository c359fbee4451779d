// Package sentiment labels news articles that arrive without a sentiment
// from the backend, using a keyword dictionary. Backend-supplied values
// always take precedence.
package sentiment

import (
	"strings"
	"unicode"

	"github.com/seenimoa/equibull/pkg/models"
)

// Scores above labelThreshold are positive, below -labelThreshold negative.
const labelThreshold = 0.1

// bullish / bearish keyword dictionaries (lowercase). Entries match at the
// start of a word, so "surge" also covers "surges" and "surged".
var bullishWords = map[string]float64{
	"bullish": 0.7, "rally": 0.6, "rallies": 0.6, "surge": 0.7, "upbeat": 0.5,
	"positive": 0.4, "growth": 0.4, "upgrade": 0.6, "outperform": 0.6,
	"buy": 0.5, "strong": 0.4, "recovery": 0.5, "breakout": 0.6,
	"record high": 0.7, "all-time high": 0.7, "beat": 0.5,
	"exceed": 0.5, "expansion": 0.4, "gain": 0.4,
	"profit": 0.3, "dividend": 0.4, "accumulate": 0.5,
}

var bearishWords = map[string]float64{
	"bearish": 0.7, "crash": 0.8, "plunge": 0.7, "slump": 0.6,
	"negative": 0.4, "downgrade": 0.6, "underperform": 0.6,
	"sell": 0.5, "weak": 0.4, "decline": 0.5, "loss": 0.4,
	"selloff": 0.7, "sell-off": 0.7, "fall": 0.4, "correction": 0.5,
	"default": 0.7, "fraud": 0.8, "scam": 0.8, "investigation": 0.5,
	"cut": 0.3, "miss": 0.5, "warning": 0.5, "concern": 0.3,
}

// ScoreText returns a sentiment score for free text.
// Score ranges from -1.0 (very bearish) to +1.0 (very bullish).
func ScoreText(text string) float64 {
	normalized := normalize(text)

	bullScore, bearScore, matches := 0.0, 0.0, 0
	for word, weight := range bullishWords {
		if strings.Contains(normalized, " "+word) {
			bullScore += weight
			matches++
		}
	}
	for word, weight := range bearishWords {
		if strings.Contains(normalized, " "+word) {
			bearScore += weight
			matches++
		}
	}

	if matches == 0 {
		return 0 // no signal
	}

	// Net score normalized to -1..+1.
	return (bullScore - bearScore) / (bullScore + bearScore)
}

// Label maps a score to positive, negative or neutral.
func Label(score float64) models.SentimentLabel {
	switch {
	case score > labelThreshold:
		return models.SentimentPositive
	case score < -labelThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Annotate returns a copy of articles where every article lacking a
// sentiment gets one from its title and description. An article that has
// only one of score/label gets the missing half derived from the other.
func Annotate(articles []models.NewsArticle) []models.NewsArticle {
	out := make([]models.NewsArticle, len(articles))
	for i, a := range articles {
		switch {
		case !a.HasSentiment():
			score := ScoreText(a.Title + " " + a.Description)
			a.SentimentScore = models.Float64(score)
			a.SentimentLabel = Label(score)
		case a.SentimentLabel == "":
			a.SentimentLabel = Label(*a.SentimentScore)
		}
		out[i] = a
	}
	return out
}

// Summarize averages the scored articles into a market-wide sentiment.
// Articles without a score are not counted.
func Summarize(articles []models.NewsArticle) models.NewsSentiment {
	sum, n := 0.0, 0
	for _, a := range articles {
		if a.SentimentScore == nil {
			continue
		}
		sum += *a.SentimentScore
		n++
	}
	if n == 0 {
		return models.NewsSentiment{Label: models.SentimentNeutral}
	}
	avg := sum / float64(n)
	return models.NewsSentiment{Score: avg, Label: Label(avg), Count: n}
}

// normalize lowercases text, turns punctuation other than '-' into spaces
// and pads it so every word is preceded by a space.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 1)
	b.WriteByte(' ')
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
