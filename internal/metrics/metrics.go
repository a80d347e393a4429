package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brightside_article_cache_hits_total",
		Help: "Category lookups answered from stored articles without an AI call.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brightside_article_cache_misses_total",
		Help: "Category lookups that fell through to AI news search.",
	})

	NewsSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brightside_ai_news_searches_total",
		Help: "AI news search requests issued.",
	})

	Retries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brightside_ai_retries_total",
		Help: "AI requests retried after a rate-limit signal.",
	})

	ImagesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brightside_ai_images_generated_total",
		Help: "Illustrative images generated.",
	})

	Narrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brightside_ai_narrations_total",
		Help: "Audio narrations synthesized.",
	})
)
