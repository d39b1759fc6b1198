// Package telemetry exposes pipeline counters on the prometheus registry
// served at /metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Telemetry bundles the pipeline's prometheus collectors. Constructing it
// with a private registry keeps test instances isolated.
type Telemetry struct {
	Runs          *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	CacheHits     prometheus.Counter
	RateLimited   prometheus.Counter
	TokensUsed    prometheus.Counter
}

func New(reg prometheus.Registerer) *Telemetry {
	t := &Telemetry{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "perplexed_pipeline_runs_total",
			Help: "Pipeline runs by terminal status.",
		}, []string{"status"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "perplexed_stage_duration_seconds",
			Help:    "Wall time spent per pipeline stage.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "perplexed_query_cache_hits_total",
			Help: "Answers served from the query cache.",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "perplexed_rate_limited_total",
			Help: "Requests rejected by the sliding-window rate limiter.",
		}),
		TokensUsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "perplexed_tokens_used_total",
			Help: "Whitespace tokens of scraped content fed to answer runs.",
		}),
	}
	reg.MustRegister(t.Runs, t.StageDuration, t.CacheHits, t.RateLimited, t.TokensUsed)
	return t
}
