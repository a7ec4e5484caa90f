package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	RedisAddr string
	RedisDB   int
	RedisPass string

	RapidAPIKey string
	RapidAPIRPS int

	GeminiBase  string
	GeminiKey   string
	GeminiModel string

	Adults          int
	CacheTTL        time.Duration
	ProviderTimeout time.Duration
	RerankTimeout   time.Duration
	RerankTopK      int
	RerankTopN      int
}

const (
	minCacheTTL = 10 * time.Minute
	maxCacheTTL = 60 * time.Minute
)

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		RapidAPIKey:     env("RAPIDAPI_KEY", ""),
		RapidAPIRPS:     atoi("RAPIDAPI_RPS", 5),
		GeminiBase:      env("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiKey:       env("GEMINI_API_KEY", ""),
		GeminiModel:     env("GEMINI_MODEL", "gemini-2.5-flash"),
		Adults:          atoi("SEARCH_ADULTS", 2),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 1800)) * time.Second,
		ProviderTimeout: time.Duration(atoi("PROVIDER_TIMEOUT_SECONDS", 15)) * time.Second,
		RerankTimeout:   time.Duration(atoi("RERANK_TIMEOUT_SECONDS", 10)) * time.Second,
		RerankTopK:      atoi("RERANK_TOP_K", 20),
		RerankTopN:      atoi("RERANK_TOP_N", 10),
	}
	if c.CacheTTL < minCacheTTL {
		c.CacheTTL = minCacheTTL
	}
	if c.CacheTTL > maxCacheTTL {
		c.CacheTTL = maxCacheTTL
	}
	if c.RapidAPIKey == "" {
		log.Warn().Msg("RAPIDAPI_KEY is empty")
	}
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty, rerank/summary disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
