package models

// Action is the headline call of a recommendation.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Confidence represents the strength of a call (0.0 to 1.0).
type Confidence float64

// Percent returns the confidence as a percentage, e.g. 0.85 → 85.
func (c Confidence) Percent() float64 {
	return float64(c) * 100
}

// TechnicalIndicators holds the indicator values quoted with a recommendation.
type TechnicalIndicators struct {
	RSI        float64 `json:"rsi"`
	SMA20      float64 `json:"sma_20"`
	SMA50      float64 `json:"sma_50"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
}

// NewsSentiment summarises the tone of recent news for a symbol.
type NewsSentiment struct {
	Score float64        `json:"score"` // -1.0 (very bearish) to +1.0 (very bullish)
	Label SentimentLabel `json:"label"`
	Count int            `json:"count"` // articles considered
}

// PricePrediction is the short-term price outlook.
type PricePrediction struct {
	Confidence  Confidence `json:"confidence"`
	Direction   string     `json:"direction"` // "up", "down", "flat"
	TargetPrice float64    `json:"target_price"`
}

// Recommendation is the BUY/SELL/HOLD call for a symbol with its supporting data.
type Recommendation struct {
	Symbol                  string              `json:"symbol"`
	Recommendation          Action              `json:"recommendation"`
	ConfidenceScore         Confidence          `json:"confidence_score"`
	AlgorithmRecommendation Action              `json:"algorithm_recommendation"`
	SentimentScore          float64             `json:"sentiment_score"`
	CurrentPrice            float64             `json:"current_price"`
	TargetPrice             float64             `json:"target_price"`
	Reasoning               string              `json:"reasoning"`
	TechnicalIndicators     TechnicalIndicators `json:"technical_indicators"`
	NewsSentiment           NewsSentiment       `json:"news_sentiment"`
	PricePrediction         PricePrediction     `json:"price_prediction"`
}

// StockAnalysis is the result of a stock search: overview plus recommendation.
type StockAnalysis struct {
	Stock          StockSnapshot  `json:"stock"`
	Recommendation Recommendation `json:"recommendation"`
}
