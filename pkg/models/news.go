package models

import (
	"encoding/json"
	"time"

	"github.com/seenimoa/equibull/pkg/utils"
)

// SentimentLabel is the categorical tone of a news item or recommendation.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// NewsArticle is a single item of the market news feed.
type NewsArticle struct {
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	URL            string         `json:"url,omitempty"`
	Source         string         `json:"source"`
	PublishedAt    string         `json:"published_at,omitempty"` // as sent by the backend
	SentimentScore *float64       `json:"sentiment_score"`        // nil when not scored
	SentimentLabel SentimentLabel `json:"sentiment_label,omitempty"`
}

// UnmarshalJSON accepts both the current article shape and the legacy
// RSS-style one (link, summary, published) emitted by older backend builds.
func (a *NewsArticle) UnmarshalJSON(data []byte) error {
	type plain NewsArticle
	var wire struct {
		plain
		Link      string `json:"link"`
		Summary   string `json:"summary"`
		Published string `json:"published"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*a = NewsArticle(wire.plain)
	if a.URL == "" {
		a.URL = wire.Link
	}
	if a.Description == "" {
		a.Description = wire.Summary
	}
	if a.PublishedAt == "" {
		a.PublishedAt = wire.Published
	}
	return nil
}

// Published parses PublishedAt. ok is false when the value is missing or
// in a format we do not understand.
func (a NewsArticle) Published() (t time.Time, ok bool) {
	t, err := utils.ParseTimestamp(a.PublishedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HasSentiment reports whether the article already carries a score or label.
func (a NewsArticle) HasSentiment() bool {
	return a.SentimentScore != nil || a.SentimentLabel != ""
}

// Float64 returns a pointer to v. Handy for optional scores.
func Float64(v float64) *float64 {
	return &v
}
