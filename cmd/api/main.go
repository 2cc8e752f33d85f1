package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"azm-catalog-backend/config"
	"azm-catalog-backend/internal/delivery/http/middleware"
	v1 "azm-catalog-backend/internal/delivery/http/v1"
	airtableinfra "azm-catalog-backend/internal/infrastructure/airtable"
	cacheinfra "azm-catalog-backend/internal/infrastructure/cache"
	airtablerepo "azm-catalog-backend/internal/repository/airtable"
	"azm-catalog-backend/internal/usecase"
	"azm-catalog-backend/pkg/logger"
	"azm-catalog-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Airtable client
	client := airtableinfra.NewClient(cfg.AirtableBaseURL, cfg.AirtableBaseID, cfg.AirtableToken, cfg.AirtableTimeout)
	log.Info().Int("catalog_tables", len(cfg.CatalogTables)).Msg("Airtable client configured")

	// Location cache: the only state that outlives a request. Snapshot file
	// persistence is best effort.
	locations := cacheinfra.NewSnapshotCache(cfg.LocationCacheFile, cfg.LocationCacheTTL, cfg.CacheCleanupInterval)

	// Repository
	productRepo := airtablerepo.NewProductRepository(client, locations, cfg.CatalogTables, cfg.FrontTables, cfg.LocationCacheTTL)

	// Set up Router
	mux := http.NewServeMux()

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(productRepo, cfg.SearchLimit)
	calcUC := usecase.NewCalculatorUsecase(usecase.NewPricingRules(cfg.VATRate, cfg.FlatRateProducer, cfg.SingleSidedLabel))
	catalogHandler := v1.NewCatalogHandler(catalogUC, calcUC)

	// Product views. The front route is a distinct navigation flavor.
	mux.HandleFunc("GET /api/v1/product/front/{id}", catalogHandler.GetFrontProduct)
	mux.HandleFunc("GET /api/v1/product/{id}", catalogHandler.GetProduct)
	mux.HandleFunc("POST /api/v1/product/{id}/quote", catalogHandler.QuoteWorktop)
	mux.HandleFunc("GET /api/v1/products/code/{code}", catalogHandler.SearchByCode)

	// Root help page
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"service": "AZM Products catalog API",
			"routes": []string{
				"GET /api/v1/product/{id}",
				"GET /api/v1/product/front/{id}",
				"POST /api/v1/product/{id}/quote",
				"GET /api/v1/products/code/{code}",
			},
			"examples": map[string]string{
				"product": "/api/v1/product/rec2hkOvAAFTTVVTd",
				"front":   "/api/v1/product/front/recIfsL5hZkvDeyfz",
			},
		})
	})

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Rate limiter with lifecycle management
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
