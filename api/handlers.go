package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/seenimoa/equibull/internal/analysis"
	"github.com/seenimoa/equibull/internal/analysis/sentiment"
	"github.com/seenimoa/equibull/internal/backend"
	"github.com/seenimoa/equibull/internal/newsletter"
	"github.com/seenimoa/equibull/pkg/models"
	"github.com/seenimoa/equibull/pkg/utils"
)

// maxLimit bounds ?limit= on the news endpoint.
const maxLimit = 100

// NewsResponse is the data of GET /api/v1/news.
type NewsResponse struct {
	Provider  string               `json:"provider"`
	Count     int                  `json:"count"`
	Sentiment models.NewsSentiment `json:"sentiment"`
	News      []models.NewsArticle `json:"news"`
}

// SubscribeRequest is the body of POST /api/v1/subscribe.
type SubscribeRequest struct {
	Email string `json:"email"`
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, backend.ErrInvalidLimit),
		errors.Is(err, newsletter.ErrInvalidEmail),
		errors.Is(err, analysis.ErrEmptySymbol):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":        "ok",
			"version":       s.version,
			"news_provider": s.news.Name(),
			"ws_clients":    s.wsHub.ClientCount(),
			"market_status": utils.MarketStatus(now),
			"time_ist":      utils.FormatDateTimeIST(now),
		},
	})
}

// parseLimit reads ?limit=, falling back to def when absent.
func parseLimit(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > maxLimit {
		return 0, backend.ErrInvalidLimit
	}
	return n, nil
}

func (s *Server) handleNewsAPI(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"), s.cfg.News.Limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	news, err := s.loadNews(r.Context(), limit, r.URL.Query().Get("refresh") == "1")
	if err != nil {
		s.log.Warn("news api failed", zap.Int("limit", limit), zap.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: NewsResponse{
			Provider:  s.news.Name(),
			Count:     len(news),
			Sentiment: sentiment.Summarize(news),
			News:      news,
		},
	})
}

func (s *Server) handleSubscribeAPI(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	result, err := s.newsletter.Subscribe(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, newsletter.ErrInvalidEmail) {
			s.log.Warn("subscribe api failed", zap.Error(err))
		}
		writeError(w, statusFor(err), err.Error())
		return
	}

	data := map[string]any{"message": msgSubscribed}
	if result != nil && result.Message != "" {
		data["message"] = result.Message
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func (s *Server) handleAnalysisAPI(w http.ResponseWriter, r *http.Request) {
	result, err := s.analyzer.Search(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}
