// Equibull: stock recommendation site and command line.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seenimoa/equibull/api"
	"github.com/seenimoa/equibull/internal/analysis"
	"github.com/seenimoa/equibull/internal/config"
	"github.com/seenimoa/equibull/internal/logging"
	"github.com/seenimoa/equibull/pkg/models"
	"github.com/seenimoa/equibull/pkg/utils"
	"github.com/seenimoa/equibull/web"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what PersistentPreRunE loaded to the subcommands.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "equibull",
		Short: "Equibull: AI-powered stock recommendations",
		Long: `Equibull serves the stock recommendation site (home, news, stock
analysis, newsletter sign-up) and exposes the same operations on the
command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newVersionCmd(),
		newServeCmd(a),
		newNewsCmd(a),
		newSubscribeCmd(a),
		newAnalyzeCmd(a),
		newStatusCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	var err error
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		a.cfg, err = config.LoadFromFile(configFile)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		a.cfg.Logging.Level = level
	}
	a.log, err = logging.New(a.cfg.Logging)
	return err
}

// --- Version Command ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// No config needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Equibull %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}

// --- Serve Command ---

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port, _ := cmd.Flags().GetInt("port"); port > 0 {
				a.cfg.Server.Port = port
			}

			svc, err := buildServices(a.cfg, a.log)
			if err != nil {
				return err
			}
			srv, err := api.NewServer(a.cfg, api.Deps{
				News:       svc.news,
				Newsletter: svc.newsletter,
				Analyzer:   svc.analyzer,
				Logger:     a.log,
				Version:    version,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "🌐 Equibull listening on http://%s\n", a.cfg.Server.Addr())
			return srv.ListenAndServe(ctx, a.cfg.Server.Addr())
		},
	}
	cmd.Flags().Int("port", 0, "override server.port")
	return cmd
}

// --- News Command ---

func newNewsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Print the latest market news",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit == 0 {
				limit = a.cfg.News.Limit
			}
			refresh, _ := cmd.Flags().GetBool("refresh")

			svc, err := buildServices(a.cfg, a.log)
			if err != nil {
				return err
			}

			fetch := svc.news.FetchNews
			if refresh {
				fetch = svc.news.Refresh
			}
			news, err := fetch(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to load market news: %w", err)
			}

			printNews(cmd.OutOrStdout(), news)
			return nil
		},
	}
	cmd.Flags().Int("limit", 0, "number of articles (default: news.limit)")
	cmd.Flags().Bool("refresh", false, "bypass the news cache")
	return cmd
}

func printNews(out io.Writer, news []models.NewsArticle) {
	if len(news) == 0 {
		fmt.Fprintln(out, "No news available at the moment.")
		return
	}
	for i, a := range news {
		fmt.Fprintf(out, "%2d. %s %s\n", i+1, web.SentimentIcon(a.SentimentLabel), a.Title)
		meta := []string{a.Source, web.NewsDate(a.PublishedAt), web.NewsTime(a.PublishedAt)}
		if s := web.Score(a.SentimentScore); s != "" {
			meta = append(meta, fmt.Sprintf("%s %s", a.SentimentLabel, s))
		}
		fmt.Fprintf(out, "    %s\n", strings.Join(meta, " · "))
		if a.Description != "" {
			fmt.Fprintf(out, "    %s\n", web.Excerpt(a.Description))
		}
		if a.URL != "" {
			fmt.Fprintf(out, "    %s\n", a.URL)
		}
	}
}

// --- Subscribe Command ---

func newSubscribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe [email]",
		Short: "Subscribe an email address to the recommendation newsletter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildServices(a.cfg, a.log)
			if err != nil {
				return err
			}
			result, err := svc.newsletter.Subscribe(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✅ Successfully subscribed to stock recommendations!")
			if result.Message != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", result.Message)
			}
			return nil
		},
	}
}

// --- Analyze Command ---

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [symbol]",
		Short: "Show the analysis and recommendation for a stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer := analysis.New(a.cfg.Analysis.Delay(), a.log)
			fmt.Fprintf(cmd.OutOrStdout(), "🔍 Analyzing %s\n", analysis.NormalizeSymbol(args[0]))

			result, err := analyzer.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printAnalysis(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func printAnalysis(out io.Writer, res *models.StockAnalysis) {
	s, r := res.Stock, res.Recommendation
	fmt.Fprintf(out, "\n📊 Stock Overview - %s\n", s.Symbol)
	fmt.Fprintf(out, "   Current Price:  %s\n", utils.FormatINR(s.CurrentPrice))
	fmt.Fprintf(out, "   Change:         %s (%s)\n", utils.FormatSignedINR(s.Change), utils.FormatPct(s.ChangePercent))
	fmt.Fprintf(out, "   Volume:         %s\n", utils.FormatNumber(s.Volume))
	fmt.Fprintf(out, "   Day High/Low:   %s / %s\n", utils.FormatINR(s.High), utils.FormatINR(s.Low))
	fmt.Fprintf(out, "   Open:           %s\n", utils.FormatINR(s.Open))

	fmt.Fprintf(out, "\n🤖 AI Recommendation: %s (confidence %.1f%%)\n", r.Recommendation, r.ConfidenceScore.Percent())
	fmt.Fprintf(out, "   Target Price:   %s\n", utils.FormatINR(r.TargetPrice))
	fmt.Fprintf(out, "   Reasoning:      %s\n", r.Reasoning)
	ti := r.TechnicalIndicators
	fmt.Fprintf(out, "   RSI %.1f · SMA20 %s · SMA50 %s · MACD %.1f\n", ti.RSI, utils.FormatINR(ti.SMA20), utils.FormatINR(ti.SMA50), ti.MACD)
	fmt.Fprintf(out, "   Market Sentiment: %s (score %.2f)\n", r.NewsSentiment.Label, r.NewsSentiment.Score)

	fmt.Fprintln(out, "\n⚠️  For informational purposes only; not financial advice.")
}

// --- Status Command ---

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show system status and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "═══════════════════════════════════════")
			fmt.Fprintln(out, "  Equibull — System Status")
			fmt.Fprintln(out, "═══════════════════════════════════════")
			fmt.Fprintf(out, "  Version:       %s (%s)\n", version, commit)
			fmt.Fprintf(out, "  Market Status: %s\n", utils.MarketStatus(utils.NowIST()))
			fmt.Fprintf(out, "  Time (IST):    %s\n", utils.FormatDateTimeIST(utils.NowIST()))
			fmt.Fprintln(out)

			fmt.Fprintln(out, "  Configuration:")
			fmt.Fprintf(out, "    Web Server:    %s\n", a.cfg.Server.Addr())
			fmt.Fprintf(out, "    News Limit:    %d (cache %ds)\n", a.cfg.News.Limit, a.cfg.News.CacheTTL)
			for _, s := range config.Describe(a.cfg) {
				fmt.Fprintf(out, "    %-25s %s (%s)\n", s.Name+":", s.Value, s.Source)
			}
			fmt.Fprintln(out, "═══════════════════════════════════════")
			return nil
		},
	}
}
