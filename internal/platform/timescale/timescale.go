// Package timescale wraps the TimescaleDB management statements the
// service issues at startup. Everything here is an optimization: failures
// are logged and the service keeps running on plain Postgres.
package timescale

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Defaults for the daily_prices hypertable.
const (
	PricesTable         = "daily_prices"
	PricesTimeColumn    = "time"
	PricesChunkInterval = "7 days"
	PricesCompressAfter = "30 days"
	PricesSegmentBy     = "ticker"
)

// extensionSQL creates the extension when it is not installed yet.
const extensionSQL = "CREATE EXTENSION IF NOT EXISTS timescaledb CASCADE"

// hypertableSQL builds the idempotent create_hypertable call.
func hypertableSQL(table, timeColumn, chunkInterval string) string {
	return fmt.Sprintf(
		"SELECT create_hypertable('%s', '%s', chunk_time_interval => interval '%s', if_not_exists => TRUE)",
		table, timeColumn, chunkInterval,
	)
}

// compressionSQL builds the pair of statements enabling compression on a
// hypertable and scheduling it for chunks older than compressAfter.
func compressionSQL(table, compressAfter, segmentBy string) []string {
	enable := fmt.Sprintf("ALTER TABLE %s SET (timescaledb.compress = true", table)
	if segmentBy != "" {
		enable += fmt.Sprintf(", timescaledb.compress_segmentby = '%s'", segmentBy)
	}
	enable += ")"

	policy := fmt.Sprintf(
		"SELECT add_compression_policy('%s', INTERVAL '%s', if_not_exists => TRUE)",
		table, compressAfter,
	)
	return []string{enable, policy}
}

// EnsureExtension installs the timescaledb extension if missing.
func EnsureExtension(db *gorm.DB) error {
	return db.Exec(extensionSQL).Error
}

// EnsureHypertable converts table into a hypertable partitioned on
// timeColumn. Safe to call on a table that already is one.
func EnsureHypertable(db *gorm.DB, table, timeColumn, chunkInterval string) error {
	return db.Exec(hypertableSQL(table, timeColumn, chunkInterval)).Error
}

// AddCompressionPolicy enables compression on the hypertable and schedules
// it for chunks older than compressAfter, segmented by segmentBy.
func AddCompressionPolicy(db *gorm.DB, table, compressAfter, segmentBy string) error {
	for _, stmt := range compressionSQL(table, compressAfter, segmentBy) {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Setup runs the whole TimescaleDB bootstrap for the daily_prices table.
// Every step is fire-and-log: a failure disables the optimization, never
// the service.
func Setup(db *gorm.DB) {
	if err := EnsureExtension(db); err != nil {
		log.Warn().Err(err).Msg("timescaledb extension unavailable, continuing without it")
		return
	}
	if err := EnsureHypertable(db, PricesTable, PricesTimeColumn, PricesChunkInterval); err != nil {
		log.Warn().Err(err).Str("table", PricesTable).Msg("create_hypertable failed")
		return
	}
	if err := AddCompressionPolicy(db, PricesTable, PricesCompressAfter, PricesSegmentBy); err != nil {
		log.Warn().Err(err).Str("table", PricesTable).Msg("compression policy setup failed")
		return
	}
	log.Info().Str("table", PricesTable).Msg("timescaledb setup complete")
}
