// Package usecase implements the business logic for daily price operations.
package usecase

import (
	"context"
	"errors"
	"time"

	"iqx_backend/internal/feature/dailyprices/domain"
	"iqx_backend/internal/feature/dailyprices/domain/entity"
	secentity "iqx_backend/internal/feature/securities/domain/entity"
)

const (
	// DefaultRangeLimit is the default row cap for time-range queries.
	DefaultRangeLimit = 10000
	// MaxRangeLimit is the hard row cap for time-range queries.
	MaxRangeLimit = 50000
)

// PriceFilter is an exact-match conjunction over the filterable columns of
// a daily price. In practice only the ticker is filterable.
type PriceFilter struct {
	Ticker string
}

// PricePatch carries a partial update for a bar. Only non-nil fields are
// written; the (time, ticker) key is immutable.
type PricePatch struct {
	OpenPrice  *float64
	HighPrice  *float64
	LowPrice   *float64
	ClosePrice *float64

	Volume        *int64
	PriceChange   *float64
	PercentChange *float64

	BuyOrderValue      *float64
	SellOrderValue     *float64
	ForeignNetBuyValue *float64

	BuyOrderQuantity      *int64
	SellOrderQuantity     *int64
	ForeignNetBuyQuantity *int64
}

// PriceRepository abstracts the persistence layer for daily prices.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type PriceRepository interface {
	List(ctx context.Context, f PriceFilter, skip, limit int) ([]entity.DailyPrice, error)
	Count(ctx context.Context, f PriceFilter) (int64, error)
	GetByKey(ctx context.Context, ticker string, t time.Time) (*entity.DailyPrice, error)
	Create(ctx context.Context, p *entity.DailyPrice) error
	Update(ctx context.Context, ticker string, t time.Time, patch PricePatch) error
	Delete(ctx context.Context, ticker string, t time.Time) error
	// FindSince returns bars for ticker with time >= since, newest first,
	// capped at limit rows. A nil since means no lower bound.
	FindSince(ctx context.Context, ticker string, since *time.Time, limit int) ([]entity.DailyPrice, error)
}

// SecurityGetter is the slice of the securities feature this usecase needs
// for referential pre-checks.
type SecurityGetter interface {
	GetByTicker(ctx context.Context, ticker string) (*secentity.Security, error)
}

// PricesUsecase provides business logic for daily price operations.
type PricesUsecase struct {
	prices     PriceRepository
	securities SecurityGetter

	// now is captured once per range query so the whole window is computed
	// from a single instant. Overridable in tests.
	now func() time.Time
}

// NewPricesUsecase creates a new PricesUsecase with the given repositories.
func NewPricesUsecase(prices PriceRepository, securities SecurityGetter) *PricesUsecase {
	return &PricesUsecase{
		prices:     prices,
		securities: securities,
		now:        time.Now,
	}
}

// ListPrices returns bars matching the filter, newest first, plus the total
// count ignoring pagination.
func (u *PricesUsecase) ListPrices(ctx context.Context, f PriceFilter, skip, limit int) ([]entity.DailyPrice, int64, error) {
	items, err := u.prices.List(ctx, f, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.prices.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetPrice returns the bar for the given (ticker, time) key.
func (u *PricesUsecase) GetPrice(ctx context.Context, ticker string, t time.Time) (*entity.DailyPrice, error) {
	return u.prices.GetByKey(ctx, ticker, t)
}

// CreatePrice records a new bar. The referenced security must exist and no
// bar may exist for the same key. Both checks run before the insert for
// friendlier errors; the store's constraints remain the race-proof guard.
func (u *PricesUsecase) CreatePrice(ctx context.Context, p *entity.DailyPrice) (*entity.DailyPrice, error) {
	if _, err := u.securities.GetByTicker(ctx, p.Ticker); err != nil {
		return nil, err
	}

	if _, err := u.prices.GetByKey(ctx, p.Ticker, p.Time); err == nil {
		return nil, domain.ErrPriceExists
	} else if !errors.Is(err, domain.ErrPriceNotFound) {
		return nil, err
	}

	if err := u.prices.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePrice applies a partial update to the bar identified by the key.
func (u *PricesUsecase) UpdatePrice(ctx context.Context, ticker string, t time.Time, patch PricePatch) (*entity.DailyPrice, error) {
	if err := u.prices.Update(ctx, ticker, t, patch); err != nil {
		return nil, err
	}
	return u.prices.GetByKey(ctx, ticker, t)
}

// DeletePrice removes the bar identified by the key.
func (u *PricesUsecase) DeletePrice(ctx context.Context, ticker string, t time.Time) error {
	return u.prices.Delete(ctx, ticker, t)
}

// GetPricesByTimeRange resolves a symbolic range token against the current
// instant and returns the ticker's bars inside the window, newest first.
// The limit truncates the result set after ordering; it never changes which
// rows are eligible.
func (u *PricesUsecase) GetPricesByTimeRange(ctx context.Context, ticker, rangeToken string, limit int) ([]entity.DailyPrice, error) {
	tr, err := domain.ParseTimeRange(rangeToken)
	if err != nil {
		return nil, err
	}

	if _, err := u.securities.GetByTicker(ctx, ticker); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultRangeLimit
	}
	if limit > MaxRangeLimit {
		limit = MaxRangeLimit
	}

	var since *time.Time
	if s, bounded := tr.Since(u.now().UTC()); bounded {
		since = &s
	}
	return u.prices.FindSince(ctx, ticker, since, limit)
}
