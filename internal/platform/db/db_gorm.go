// Package db opens and configures the gorm database handle.
package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"iqx_backend/internal/config"
	pricesentity "iqx_backend/internal/feature/dailyprices/domain/entity"
	secentity "iqx_backend/internal/feature/securities/domain/entity"
)

// Pool sizing mirrors the settings the service has always run with:
// 10 resident connections, 20 of overflow, recycled hourly.
const (
	maxIdleConns    = 10
	maxOpenConns    = 30
	connMaxLifetime = time.Hour

	connectDeadline = 60 * time.Second
	connectRetry    = 3 * time.Second
)

// Open connects to Postgres with retries and configures the connection
// pool. TranslateError is on so constraint violations surface as gorm
// sentinel errors regardless of driver.
func Open(cfg config.Config) (*gorm.DB, error) {
	var (
		handle *gorm.DB
		err    error
	)

	deadline := time.Now().Add(connectDeadline)
	for {
		handle, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		log.Warn().Err(err).Msg("database connect failed, retrying")
		time.Sleep(connectRetry)
	}

	sqlDB, err := handle.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if cfg.RunMigrations {
		if err := handle.AutoMigrate(
			&secentity.Security{},
			&pricesentity.DailyPrice{},
		); err != nil {
			return nil, err
		}
	}

	return handle, nil
}
