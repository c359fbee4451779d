// Package analysis serves the stock search on the analysis page.
//
// There is no market data feed behind it yet: after a short delay every
// symbol resolves to the same placeholder overview and recommendation.
package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seenimoa/equibull/pkg/models"
)

// ErrEmptySymbol is returned when the search box is blank.
// Its message is shown to users as is.
var ErrEmptySymbol = errors.New("Please enter a stock symbol")

// Analyzer answers stock searches.
type Analyzer struct {
	delay time.Duration
	log   *zap.Logger
}

// New creates an analyzer that waits delay before answering.
func New(delay time.Duration, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{delay: delay, log: log.Named("analysis")}
}

// NormalizeSymbol trims and upper-cases a user-entered symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Search returns the analysis for symbol. It fails with ErrEmptySymbol for
// blank input and with ctx.Err() if ctx ends during the wait.
func (a *Analyzer) Search(ctx context.Context, symbol string) (*models.StockAnalysis, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	a.log.Debug("stock search", zap.String("symbol", symbol))
	return &models.StockAnalysis{
		Stock:          placeholderSnapshot(symbol),
		Recommendation: placeholderRecommendation(symbol),
	}, nil
}

func placeholderSnapshot(symbol string) models.StockSnapshot {
	return models.StockSnapshot{
		Symbol:        symbol,
		CurrentPrice:  1250.50,
		Change:        45.25,
		ChangePercent: 3.75,
		Volume:        1250000,
		High:          1280.00,
		Low:           1205.00,
		Open:          1210.00,
		PreviousClose: 1205.25,
		Source:        "upstox",
	}
}

func placeholderRecommendation(symbol string) models.Recommendation {
	return models.Recommendation{
		Symbol:                  symbol,
		Recommendation:          models.ActionBuy,
		ConfidenceScore:         0.85,
		AlgorithmRecommendation: models.ActionBuy,
		SentimentScore:          0.6,
		CurrentPrice:            1250.50,
		TargetPrice:             1350.00,
		Reasoning: "Strong technical indicators with positive momentum. RSI shows oversold condition, " +
			"moving averages are bullish, and volume is increasing. Market sentiment is positive with recent news.",
		TechnicalIndicators: models.TechnicalIndicators{
			RSI:        35.2,
			SMA20:      1230.00,
			SMA50:      1180.00,
			MACD:       15.5,
			MACDSignal: 8.2,
		},
		NewsSentiment: models.NewsSentiment{
			Score: 0.6,
			Label: models.SentimentPositive,
			Count: 8,
		},
		PricePrediction: models.PricePrediction{
			Confidence:  0.78,
			Direction:   "up",
			TargetPrice: 1350.00,
		},
	}
}
