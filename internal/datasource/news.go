package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/equibull/internal/backend"
	"github.com/seenimoa/equibull/internal/infra"
	"github.com/seenimoa/equibull/pkg/models"
	"github.com/seenimoa/equibull/pkg/utils"
)

// NewsSource is one RSS feed.
type NewsSource struct {
	Name   string
	RSSURL string
}

// ErrNoFeeds is returned when every configured feed failed.
var ErrNoFeeds = errors.New("no news feed could be read")

// maxParallelFeeds bounds concurrent feed downloads.
const maxParallelFeeds = 4

// Feeds reads market news from RSS feeds.
type Feeds struct {
	sources []NewsSource
	cache   *infra.Cache[[]models.NewsArticle]
	limiter *infra.RateLimiter
	client  *http.Client
	log     *zap.Logger
}

// NewFeeds creates an RSS news provider. cacheTTL of zero disables caching.
func NewFeeds(sources []NewsSource, cacheTTL time.Duration, log *zap.Logger) *Feeds {
	if log == nil {
		log = zap.NewNop()
	}
	return &Feeds{
		sources: sources,
		cache:   infra.NewCache[[]models.NewsArticle](cacheTTL),
		limiter: infra.NewRateLimiter(2, time.Second), // conservative: 2 req/s
		client:  &http.Client{Timeout: 20 * time.Second},
		log:     log.Named("feeds"),
	}
}

// Name returns the data source name.
func (f *Feeds) Name() string { return "rss" }

// FetchNews returns the newest limit articles across all feeds.
func (f *Feeds) FetchNews(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		return nil, backend.ErrInvalidLimit
	}
	if cached, ok := f.cache.Get(strconv.Itoa(limit)); ok {
		return slices.Clone(cached), nil
	}
	return f.fetch(ctx, limit)
}

// Refresh re-reads every feed, ignoring the cache.
func (f *Feeds) Refresh(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		return nil, backend.ErrInvalidLimit
	}
	f.cache.Invalidate(strconv.Itoa(limit))
	return f.fetch(ctx, limit)
}

func (f *Feeds) fetch(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	var (
		mu       sync.Mutex
		all      []models.NewsArticle
		failures []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFeeds)
	for _, src := range f.sources {
		g.Go(func() error {
			articles, err := f.fetchRSS(gctx, src)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Non-critical: skip failed sources.
				f.log.Warn("feed skipped", zap.String("source", src.Name), zap.Error(err))
				failures = append(failures, err)
				return nil
			}
			all = append(all, articles...)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	if len(f.sources) > 0 && len(failures) == len(f.sources) {
		return nil, fmt.Errorf("%w: %w", ErrNoFeeds, errors.Join(failures...))
	}

	sortNewestFirst(all)
	if len(all) > limit {
		all = all[:limit]
	}
	if all == nil {
		all = []models.NewsArticle{}
	}

	f.log.Info("feeds fetched", zap.Int("sources", len(f.sources)), zap.Int("failed", len(failures)), zap.Int("count", len(all)))
	f.cache.Set(strconv.Itoa(limit), slices.Clone(all))
	return all, nil
}

// fetchRSS parses an RSS feed and returns articles.
func (f *Feeds) fetchRSS(ctx context.Context, src NewsSource) ([]models.NewsArticle, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	parser := gofeed.NewParser()
	parser.Client = f.client

	feed, err := parser.ParseURLWithContext(src.RSSURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", src.Name, err)
	}

	articles := make([]models.NewsArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := models.NewsArticle{
			Title:       utils.StripHTML(item.Title),
			Description: utils.StripHTML(item.Description),
			URL:         item.Link,
			Source:      src.Name,
			PublishedAt: item.Published,
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// sortNewestFirst orders articles by publication time, newest first.
// Undated articles go last, keeping their relative order.
func sortNewestFirst(articles []models.NewsArticle) {
	slices.SortStableFunc(articles, func(a, b models.NewsArticle) int {
		ta, okA := a.Published()
		tb, okB := b.Published()
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}
