package web

import (
	"fmt"
	"html/template"

	"github.com/seenimoa/equibull/pkg/models"
	"github.com/seenimoa/equibull/pkg/utils"
)

// DescriptionLength is how much of an article description a news card shows.
const DescriptionLength = 120

// Funcs returns the template helpers used by the page templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"sentimentClass":      SentimentClass,
		"sentimentIcon":       SentimentIcon,
		"recommendationClass": RecommendationClass,
		"recommendationIcon":  RecommendationIcon,
		"changeClass":         ChangeClass,
		"excerpt":             Excerpt,
		"newsDate":            NewsDate,
		"newsTime":            NewsTime,
		"score":               Score,
		"inr":                 utils.FormatINR,
		"signedINR":           utils.FormatSignedINR,
		"pct":                 utils.FormatPct,
		"number":              utils.FormatNumber,
		"fixed1":              func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"fixed2":              func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}
}

// SentimentClass returns the badge class for a sentiment label.
func SentimentClass(label models.SentimentLabel) string {
	switch label {
	case models.SentimentPositive:
		return "badge badge-positive"
	case models.SentimentNegative:
		return "badge badge-negative"
	default:
		return "badge badge-neutral"
	}
}

// SentimentIcon returns the glyph shown next to a sentiment label.
func SentimentIcon(label models.SentimentLabel) string {
	switch label {
	case models.SentimentPositive:
		return "📈"
	case models.SentimentNegative:
		return "📉"
	default:
		return "➡️"
	}
}

// RecommendationClass returns the badge class for a recommendation or a
// sentiment label shown in the recommendation panel.
func RecommendationClass(v string) string {
	switch v {
	case string(models.ActionBuy), string(models.SentimentPositive):
		return "badge badge-positive"
	case string(models.ActionSell), string(models.SentimentNegative):
		return "badge badge-negative"
	case string(models.ActionHold):
		return "badge badge-hold"
	default:
		return "badge badge-neutral"
	}
}

// RecommendationIcon returns the arrow for a recommendation.
func RecommendationIcon(a models.Action) string {
	switch a {
	case models.ActionBuy:
		return "▲"
	case models.ActionSell:
		return "▼"
	default:
		return "■"
	}
}

// ChangeClass colours a snapshot's price change.
func ChangeClass(s models.StockSnapshot) string {
	if s.IsUp() {
		return "up"
	}
	return "down"
}

// Excerpt turns an article description into plain text and shortens it
// for a news card.
func Excerpt(s string) string {
	return utils.Truncate(utils.StripHTML(s), DescriptionLength)
}

// NewsDate formats a published_at value, or "Unknown date".
func NewsDate(s string) string {
	t, err := utils.ParseTimestamp(s)
	if err != nil {
		return "Unknown date"
	}
	return utils.FormatNewsDate(t)
}

// NewsTime formats a published_at value, or "Unknown time".
func NewsTime(s string) string {
	t, err := utils.ParseTimestamp(s)
	if err != nil {
		return "Unknown time"
	}
	return utils.FormatNewsTime(t)
}

// Score formats a nullable sentiment score; empty when absent.
func Score(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
