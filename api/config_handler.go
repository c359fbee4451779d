package api

import (
	"net/http"

	"github.com/seenimoa/equibull/internal/config"
)

// ConfigResponse is the JSON envelope returned by GET /api/v1/config.
type ConfigResponse struct {
	Settings    []config.SettingStatus `json:"settings"`
	NewsLimit   int                    `json:"news_limit"`
	CacheTTLSec int                    `json:"cache_ttl_sec"`
	Feeds       []config.FeedConfig    `json:"feeds,omitempty"`
}

// handleGetConfig returns the running configuration. Credentials embedded
// in URLs are masked by config.Describe.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	resp := ConfigResponse{
		Settings:    config.Describe(s.cfg),
		NewsLimit:   s.cfg.News.Limit,
		CacheTTLSec: s.cfg.News.CacheTTL,
	}
	if s.cfg.News.Provider == config.ProviderRSS {
		resp.Feeds = s.cfg.News.Feeds
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}
