package main

import (
	"go.uber.org/zap"

	"github.com/seenimoa/equibull/internal/analysis"
	"github.com/seenimoa/equibull/internal/backend"
	"github.com/seenimoa/equibull/internal/config"
	"github.com/seenimoa/equibull/internal/datasource"
	"github.com/seenimoa/equibull/internal/newsletter"
)

// services is everything the commands and the server delegate to.
type services struct {
	news       datasource.NewsProvider
	newsletter *newsletter.Service
	analyzer   *analysis.Analyzer
}

func buildServices(cfg *config.Config, log *zap.Logger) (*services, error) {
	client := backend.New(cfg.Backend.URL,
		backend.WithTimeout(cfg.Backend.Timeout()),
		backend.WithLogger(log),
		backend.WithNewsCache(cfg.News.CacheDuration()),
	)

	news, err := datasource.NewNewsProvider(cfg, client, log)
	if err != nil {
		return nil, err
	}

	return &services{
		news:       news,
		newsletter: newsletter.NewService(client, log),
		analyzer:   analysis.New(cfg.Analysis.Delay(), log),
	}, nil
}
