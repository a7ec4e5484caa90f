package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	memcache "github.com/abhimit04/hotel-agent/internal/adapters/cache"
	"github.com/abhimit04/hotel-agent/internal/adapters/gemini"
	"github.com/abhimit04/hotel-agent/internal/adapters/geocode"
	server "github.com/abhimit04/hotel-agent/internal/adapters/http_server"
	"github.com/abhimit04/hotel-agent/internal/adapters/observability"
	"github.com/abhimit04/hotel-agent/internal/adapters/providers"
	"github.com/abhimit04/hotel-agent/internal/adapters/rapidapi"
	redisad "github.com/abhimit04/hotel-agent/internal/adapters/redis"
	"github.com/abhimit04/hotel-agent/internal/app"
	"github.com/abhimit04/hotel-agent/internal/domain"
	"github.com/abhimit04/hotel-agent/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	rc, err := rapidapi.New(cfg.RapidAPIKey, cfg.RapidAPIRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize RapidAPI client")
	}

	provs := []domain.Provider{
		providers.NewBooking(rc, ""),
		providers.NewTravelAdvisor(rc, ""),
		providers.NewExpedia(rc, ""),
		providers.NewPriceline(rc, ""),
	}
	agg := app.NewAggregator(provs, cfg.ProviderTimeout, int64(len(provs)))
	geo := geocode.New(rc, "")

	// rerank/summary is optional; without a key the deterministic
	// ranking stands on its own
	var reranker domain.Reranker
	if cfg.GeminiKey != "" {
		g, err := gemini.New(cfg.GeminiBase, cfg.GeminiKey, cfg.GeminiModel, cfg.RerankTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Gemini client")
		}
		reranker = g
	}

	mem := memcache.NewMemory()
	defer mem.Close()
	store := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	tiered := memcache.NewTiered(mem, store, int(cfg.CacheTTL.Seconds()))

	svc := app.NewSearchService(geo, agg, reranker, tiered, app.SearchOptions{
		CacheTTLSeconds: int(cfg.CacheTTL.Seconds()),
		Adults:          cfg.Adults,
		RerankTopK:      cfg.RerankTopK,
		RerankTopN:      cfg.RerankTopN,
	})

	srv := server.New()
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Int("providers", len(provs)).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
