// Package adapters provides the gorm repository implementation for the
// dailyprices feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"iqx_backend/internal/feature/dailyprices/domain"
	"iqx_backend/internal/feature/dailyprices/domain/entity"
	"iqx_backend/internal/feature/dailyprices/usecase"
	secdomain "iqx_backend/internal/feature/securities/domain"
	platformdb "iqx_backend/internal/platform/db"
)

type pricePostgres struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*pricePostgres)(nil)

// NewPriceRepository creates a new daily price repository on the given DB handle.
func NewPriceRepository(db *gorm.DB) *pricePostgres {
	return &pricePostgres{db: db}
}

func (r *pricePostgres) filtered(ctx context.Context, f usecase.PriceFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.DailyPrice{})
	if f.Ticker != "" {
		q = q.Where("ticker = ?", f.Ticker)
	}
	return q
}

// List returns matching bars ordered by time descending. Newest-first
// ordering is part of the repository contract, not an implementation detail.
func (r *pricePostgres) List(ctx context.Context, f usecase.PriceFilter, skip, limit int) ([]entity.DailyPrice, error) {
	var prices []entity.DailyPrice
	if err := r.filtered(ctx, f).
		Order("time DESC").
		Offset(skip).
		Limit(limit).
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// Count returns the number of bars matching the filters, ignoring pagination.
func (r *pricePostgres) Count(ctx context.Context, f usecase.PriceFilter) (int64, error) {
	var n int64
	if err := r.filtered(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// GetByKey returns the bar for the composite (ticker, time) key.
func (r *pricePostgres) GetByKey(ctx context.Context, ticker string, t time.Time) (*entity.DailyPrice, error) {
	var price entity.DailyPrice
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND time = ?", ticker, t).
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPriceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}

// Create inserts a new bar. The store's primary key and foreign key
// constraints are the final guard against races with concurrent writers;
// their violations are translated into the same errors the usecase
// pre-checks produce.
func (r *pricePostgres) Create(ctx context.Context, p *entity.DailyPrice) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if err == nil {
		return nil
	}
	if platformdb.IsUniqueViolation(err) {
		return domain.ErrPriceExists
	}
	if platformdb.IsForeignKeyViolation(err) {
		return secdomain.ErrSecurityNotFound
	}
	return err
}

// Update writes the non-nil patch fields for the keyed bar. Daily prices
// carry no updated_at column, so only the supplied fields change.
func (r *pricePostgres) Update(ctx context.Context, ticker string, t time.Time, patch usecase.PricePatch) error {
	changes := patchChanges(patch)
	if len(changes) == 0 {
		// Nothing to write, but the caller still expects NotFound for a
		// missing key.
		_, err := r.GetByKey(ctx, ticker, t)
		return err
	}
	tx := r.db.WithContext(ctx).
		Model(&entity.DailyPrice{}).
		Where("ticker = ? AND time = ?", ticker, t).
		Updates(changes)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrPriceNotFound
	}
	return nil
}

// Delete removes the keyed bar.
func (r *pricePostgres) Delete(ctx context.Context, ticker string, t time.Time) error {
	tx := r.db.WithContext(ctx).
		Where("ticker = ? AND time = ?", ticker, t).
		Delete(&entity.DailyPrice{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrPriceNotFound
	}
	return nil
}

// FindSince returns the ticker's bars with time >= since, newest first,
// capped at limit rows. A nil since leaves the history unfiltered.
func (r *pricePostgres) FindSince(ctx context.Context, ticker string, since *time.Time, limit int) ([]entity.DailyPrice, error) {
	q := r.db.WithContext(ctx).Where("ticker = ?", ticker)
	if since != nil {
		q = q.Where("time >= ?", *since)
	}
	var prices []entity.DailyPrice
	if err := q.Order("time DESC").Limit(limit).Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// patchChanges maps non-nil patch fields to their column names.
func patchChanges(p usecase.PricePatch) map[string]any {
	changes := map[string]any{}
	if p.OpenPrice != nil {
		changes["open_price"] = *p.OpenPrice
	}
	if p.HighPrice != nil {
		changes["high_price"] = *p.HighPrice
	}
	if p.LowPrice != nil {
		changes["low_price"] = *p.LowPrice
	}
	if p.ClosePrice != nil {
		changes["close_price"] = *p.ClosePrice
	}
	if p.Volume != nil {
		changes["volume"] = *p.Volume
	}
	if p.PriceChange != nil {
		changes["price_change"] = *p.PriceChange
	}
	if p.PercentChange != nil {
		changes["percent_change"] = *p.PercentChange
	}
	if p.BuyOrderValue != nil {
		changes["buy_order_value"] = *p.BuyOrderValue
	}
	if p.SellOrderValue != nil {
		changes["sell_order_value"] = *p.SellOrderValue
	}
	if p.ForeignNetBuyValue != nil {
		changes["foreign_net_buy_value"] = *p.ForeignNetBuyValue
	}
	if p.BuyOrderQuantity != nil {
		changes["buy_order_quantity"] = *p.BuyOrderQuantity
	}
	if p.SellOrderQuantity != nil {
		changes["sell_order_quantity"] = *p.SellOrderQuantity
	}
	if p.ForeignNetBuyQuantity != nil {
		changes["foreign_net_buy_quantity"] = *p.ForeignNetBuyQuantity
	}
	return changes
}
