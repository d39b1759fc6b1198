package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bnn-network/perplexed/config"
	"github.com/bnn-network/perplexed/internal/cache"
	"github.com/bnn-network/perplexed/internal/pipeline"
	"github.com/bnn-network/perplexed/internal/ratelimit"
	"github.com/bnn-network/perplexed/internal/telemetry"
	"github.com/bnn-network/perplexed/provider"
	"github.com/bnn-network/perplexed/tools/web_fetch"
	"github.com/bnn-network/perplexed/tools/web_search"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run wires the full service and blocks serving HTTP.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/test", func(c echo.Context) error { return c.String(200, "HELLO") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	pipe, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	sh := &StreamSearchHandler{
		Pipeline: pipe,
		Logger:   log.New(log.Writer(), "[SEARCH] ", log.LstdFlags),
	}
	sh.Register(e)

	log.Printf("listening on %s", cfg.Server.Address)
	return e.Start(cfg.Server.Address)
}

// buildPipeline assembles the shared pipeline from configuration.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	searcher, err := web_search.NewWebSearcher(
		web_search.Provider(cfg.Search.Provider), cfg.Search.APIKey, cfg.Search.EngineID)
	if err != nil {
		return nil, err
	}
	fetcher, err := web_fetch.NewWebFetcher(
		web_fetch.FetcherType(cfg.Scrape.Fetcher),
		cfg.Scrape.ConnectTimeout, cfg.Scrape.ReadTimeout, cfg.Scrape.UserAgent)
	if err != nil {
		return nil, err
	}
	llm, err := provider.NewProvider(provider.Client(cfg.LLM.Provider), provider.Options{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, err
	}
	store, err := cache.New(cache.StoreType(cfg.Cache.Store), cache.RedisOptions{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	if err != nil {
		return nil, err
	}

	tele := telemetry.New(prometheus.DefaultRegisterer)
	pipeLogger := log.New(log.Writer(), "[PIPELINE] ", log.LstdFlags)

	return &pipeline.Pipeline{
		Search: &pipeline.SearchClient{
			Searcher:   searcher,
			Blacklist:  cfg.Search.Blacklist,
			MaxResults: cfg.Search.MaxResults,
			Logger:     pipeLogger,
		},
		Scraper: &pipeline.ScraperPool{
			Fetcher:      fetcher,
			MaxDocTokens: cfg.Scrape.MaxDocTokens,
			Logger:       pipeLogger,
		},
		Composer: &pipeline.AnswerComposer{
			LLM:             llm,
			Cache:           store,
			MinDocTokens:    cfg.LLM.MinDocTokens,
			MaxAnswerTokens: cfg.LLM.MaxAnswerTokens,
			MaxQueryTokens:  cfg.LLM.MaxQueryTokens,
			MaxSystemChars:  cfg.LLM.MaxSystemChars,
			Telemetry:       tele,
			Logger:          pipeLogger,
		},
		Limiter:          ratelimit.New(cfg.RateLimit.MaxTokens, cfg.RateLimit.Window),
		Telemetry:        tele,
		Logger:           pipeLogger,
		HistoryMaxTokens: cfg.History.MaxTokens,
	}, nil
}
