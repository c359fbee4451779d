package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/seenimoa/equibull/internal/analysis"
	"github.com/seenimoa/equibull/internal/analysis/sentiment"
	"github.com/seenimoa/equibull/internal/newsletter"
	"github.com/seenimoa/equibull/pkg/models"
	"github.com/seenimoa/equibull/pkg/utils"
	"github.com/seenimoa/equibull/web"
)

// Toast texts.
const (
	msgNewsFailed       = "Failed to load market news"
	msgSubscribed       = "Successfully subscribed to stock recommendations!"
	msgSubscribeFailed  = "Failed to subscribe. Please try again."
	msgStockFetchFailed = "Failed to fetch stock data. Please try again."
)

// page builds the data shared by every template and consumes the flash.
func (s *Server) page(w http.ResponseWriter, r *http.Request, active, title string) *web.Page {
	now := s.now()
	return &web.Page{
		Title:        title,
		Active:       active,
		Toasts:       takeFlash(w, r),
		MarketStatus: utils.MarketStatus(now),
		Year:         now.In(utils.IST).Year(),
		Subscribed:   isSubscribed(r),
		Next:         r.URL.Path,
	}
}

func (s *Server) render(w http.ResponseWriter, name string, p *web.Page) {
	var buf bytes.Buffer
	if err := s.pages.Render(&buf, name, p); err != nil {
		s.log.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r, web.PageHome, "")

	news, err := s.news.FetchNews(r.Context(), s.cfg.News.Limit)
	if err != nil {
		s.log.Warn("home news failed", zap.Error(err))
		p.Toasts = append(p.Toasts, web.Toast{Kind: web.ToastError, Message: msgNewsFailed})
	}
	p.News = news

	s.render(w, web.PageHome, p)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, web.PageAbout, s.page(w, r, web.PageAbout, "About"))
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r, web.PageNews, "News")

	news, err := s.loadNews(r.Context(), s.cfg.News.Limit, r.URL.Query().Get("refresh") == "1")
	if err != nil {
		s.log.Warn("news page failed", zap.Error(err))
		p.NewsFailed = true
	}
	p.News = news
	if mood := sentiment.Summarize(news); mood.Count > 0 {
		p.Mood = &mood
	}

	s.render(w, web.PageNews, p)
}

// loadNews reads news, bypassing the cache and notifying WebSocket clients
// when refresh is set.
func (s *Server) loadNews(ctx context.Context, limit int, refresh bool) ([]models.NewsArticle, error) {
	if !refresh {
		return s.news.FetchNews(ctx, limit)
	}

	news, err := s.news.Refresh(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.wsHub.Broadcast(WSMessage{
		Type: EventNewsRefreshed,
		Data: NewsRefreshed{
			Provider: s.news.Name(),
			Count:    len(news),
			At:       utils.FormatDateTimeIST(s.now()),
		},
	})
	return news, nil
}

// handleAnalysis serves the search form and, for /analysis/{symbol}, the
// result. A submitted ?symbol= is redirected to its canonical path.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query(); q.Has("symbol") {
		symbol := analysis.NormalizeSymbol(q.Get("symbol"))
		if symbol != "" {
			http.Redirect(w, r, "/analysis/"+url.PathEscape(symbol), http.StatusSeeOther)
			return
		}
		p := s.page(w, r, web.PageAnalysis, "Stock Analysis")
		p.Toasts = append(p.Toasts, web.Toast{Kind: web.ToastError, Message: analysis.ErrEmptySymbol.Error()})
		s.render(w, web.PageAnalysis, p)
		return
	}

	p := s.page(w, r, web.PageAnalysis, "Stock Analysis")
	if raw := chi.URLParam(r, "symbol"); raw != "" {
		p.Symbol = analysis.NormalizeSymbol(raw)
		result, err := s.analyzer.Search(r.Context(), raw)
		switch {
		case err == nil:
			p.Title = p.Symbol + " Analysis"
			p.Analysis = result
		case errors.Is(err, context.Canceled):
			return
		default:
			s.log.Warn("stock search failed", zap.String("symbol", p.Symbol), zap.Error(err))
			p.Toasts = append(p.Toasts, web.Toast{Kind: web.ToastError, Message: searchFailure(err)})
		}
	}
	s.render(w, web.PageAnalysis, p)
}

func searchFailure(err error) string {
	if errors.Is(err, analysis.ErrEmptySymbol) {
		return err.Error()
	}
	return msgStockFetchFailed
}

// handleSubscribe handles the subscription form and redirects back to the
// page it was posted from with the outcome as a toast.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.PostFormValue("next"))
	defer http.Redirect(w, r, next, http.StatusSeeOther)

	if isSubscribed(r) {
		return
	}

	_, err := s.newsletter.Subscribe(r.Context(), r.PostFormValue("email"))
	switch {
	case err == nil:
		markSubscribed(w)
		setFlash(w, web.Toast{Kind: web.ToastSuccess, Message: msgSubscribed})
	case errors.Is(err, newsletter.ErrInvalidEmail):
		setFlash(w, web.Toast{Kind: web.ToastError, Message: err.Error()})
	default:
		s.log.Warn("subscribe failed", zap.Error(err))
		setFlash(w, web.Toast{Kind: web.ToastError, Message: subscribeFailure(err)})
	}
}

func subscribeFailure(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgSubscribeFailed
}
