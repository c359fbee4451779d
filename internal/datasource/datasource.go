// Package datasource decides where the site's market news comes from.
// The backend API is the normal provider; a set of RSS feeds can stand in
// for it during development or when running without the backend.
package datasource

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seenimoa/equibull/internal/analysis/sentiment"
	"github.com/seenimoa/equibull/internal/backend"
	"github.com/seenimoa/equibull/internal/config"
	"github.com/seenimoa/equibull/pkg/models"
)

// NewsProvider is a source of market news.
type NewsProvider interface {
	// Name returns a short human-readable name for logs and status output.
	Name() string

	// FetchNews returns up to limit articles, possibly from a cache.
	FetchNews(ctx context.Context, limit int) ([]models.NewsArticle, error)

	// Refresh returns up to limit articles, bypassing any cache.
	Refresh(ctx context.Context, limit int) ([]models.NewsArticle, error)
}

// backendProvider adapts *backend.Client to NewsProvider.
type backendProvider struct {
	*backend.Client
}

func (backendProvider) Name() string { return "backend" }

// FromBackend exposes the backend client as a news provider.
func FromBackend(c *backend.Client) NewsProvider {
	return backendProvider{c}
}

// annotated fills in missing sentiment on every article it passes through.
type annotated struct {
	NewsProvider
}

// WithSentiment wraps p so that articles lacking a sentiment get one from
// the keyword scorer.
func WithSentiment(p NewsProvider) NewsProvider {
	return annotated{p}
}

func (a annotated) FetchNews(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	news, err := a.NewsProvider.FetchNews(ctx, limit)
	if err != nil {
		return nil, err
	}
	return sentiment.Annotate(news), nil
}

func (a annotated) Refresh(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	news, err := a.NewsProvider.Refresh(ctx, limit)
	if err != nil {
		return nil, err
	}
	return sentiment.Annotate(news), nil
}

// NewNewsProvider builds the provider named by cfg.News.Provider.
func NewNewsProvider(cfg *config.Config, client *backend.Client, log *zap.Logger) (NewsProvider, error) {
	switch cfg.News.Provider {
	case config.ProviderBackend:
		return WithSentiment(FromBackend(client)), nil
	case config.ProviderRSS:
		sources := make([]NewsSource, 0, len(cfg.News.Feeds))
		for _, f := range cfg.News.Feeds {
			sources = append(sources, NewsSource{Name: f.Name, RSSURL: f.URL})
		}
		return WithSentiment(NewFeeds(sources, cfg.News.CacheDuration(), log)), nil
	default:
		return nil, fmt.Errorf("unknown news provider %q", cfg.News.Provider)
	}
}
