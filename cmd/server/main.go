package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	redisv9 "github.com/redis/go-redis/v9"

	"iqx_backend/internal/app/router"
	"iqx_backend/internal/config"
	pricesadapters "iqx_backend/internal/feature/dailyprices/adapters"
	priceshandler "iqx_backend/internal/feature/dailyprices/transport/handler"
	pricesusecase "iqx_backend/internal/feature/dailyprices/usecase"
	secadapters "iqx_backend/internal/feature/securities/adapters"
	sechandler "iqx_backend/internal/feature/securities/transport/handler"
	secusecase "iqx_backend/internal/feature/securities/usecase"
	"iqx_backend/internal/platform/cache"
	platformdb "iqx_backend/internal/platform/db"
	platformredis "iqx_backend/internal/platform/redis"
	"iqx_backend/internal/platform/timescale"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	// db
	db, err := platformdb.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}

	// TimescaleDB bootstrap: purely an optimization, never fatal.
	if cfg.TimescaleEnabled {
		timescale.Setup(db)
	} else {
		log.Info().Msg("timescaledb disabled, skipping setup")
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewClient(cfg); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close redis client")
			}
		}()
	}

	// Repositories
	securityRepo := secadapters.NewSecurityRepository(db)
	priceRepo := pricesadapters.NewPriceRepository(db)
	cachedPriceRepo := cache.NewCachingPriceRepository(rdb, cfg.CacheTTL, priceRepo, "prices")

	// Usecases
	securitiesUC := secusecase.NewSecuritiesUsecase(securityRepo)
	pricesUC := pricesusecase.NewPricesUsecase(cachedPriceRepo, securityRepo)

	// Handlers
	securitiesH := sechandler.NewSecurityHandler(securitiesUC)
	pricesH := priceshandler.NewPriceHandler(pricesUC)

	r := router.NewRouter(cfg.APIPrefix, securitiesH, pricesH)

	log.Info().Str("addr", cfg.HTTPAddr).Str("prefix", cfg.APIPrefix).Msg("starting server")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
