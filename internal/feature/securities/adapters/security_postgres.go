// Package adapters provides the gorm repository implementation for the
// securities feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"iqx_backend/internal/feature/securities/domain"
	"iqx_backend/internal/feature/securities/domain/entity"
	"iqx_backend/internal/feature/securities/usecase"
	platformdb "iqx_backend/internal/platform/db"
)

type securityPostgres struct {
	db *gorm.DB
}

var _ usecase.SecurityRepository = (*securityPostgres)(nil)

// NewSecurityRepository creates a new securities repository on the given DB handle.
func NewSecurityRepository(db *gorm.DB) *securityPostgres {
	return &securityPostgres{db: db}
}

// filtered applies the exact-match conjunction for the supplied filters.
// Empty filter fields are ignored.
func (r *securityPostgres) filtered(ctx context.Context, f usecase.SecurityFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.Security{})
	if f.Ticker != "" {
		q = q.Where("ticker = ?", f.Ticker)
	}
	if f.Exchange != "" {
		q = q.Where("exchange = ?", f.Exchange)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MarginStatus != "" {
		q = q.Where("margin_status = ?", f.MarginStatus)
	}
	return q
}

// List returns matching securities in primary-key order so repeated calls
// with the same filters page deterministically.
func (r *securityPostgres) List(ctx context.Context, f usecase.SecurityFilter, skip, limit int) ([]entity.Security, error) {
	var secs []entity.Security
	if err := r.filtered(ctx, f).
		Order("ticker ASC").
		Offset(skip).
		Limit(limit).
		Find(&secs).Error; err != nil {
		return nil, err
	}
	return secs, nil
}

// Count returns the number of rows matching the filters, ignoring pagination.
func (r *securityPostgres) Count(ctx context.Context, f usecase.SecurityFilter) (int64, error) {
	var n int64
	if err := r.filtered(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// GetByTicker returns the security with the given ticker.
func (r *securityPostgres) GetByTicker(ctx context.Context, ticker string) (*entity.Security, error) {
	var sec entity.Security
	err := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&sec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSecurityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

// GetByIsin returns the security holding the given ISIN code.
func (r *securityPostgres) GetByIsin(ctx context.Context, isin string) (*entity.Security, error) {
	var sec entity.Security
	err := r.db.WithContext(ctx).Where("isin_code = ?", isin).First(&sec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSecurityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

// Create inserts a new security. Constraint violations from the store are
// translated into the same domain errors the usecase pre-checks produce,
// so concurrent duplicate creates still surface as conflicts.
func (r *securityPostgres) Create(ctx context.Context, sec *entity.Security) error {
	err := r.db.WithContext(ctx).Create(sec).Error
	if err == nil {
		return nil
	}
	if platformdb.IsUniqueViolation(err) {
		// Disambiguate which constraint lost the race.
		var existing entity.Security
		lookupErr := r.db.WithContext(ctx).Where("ticker = ?", sec.Ticker).First(&existing).Error
		if lookupErr == nil {
			return domain.ErrTickerExists
		}
		return domain.ErrIsinExists
	}
	return err
}

// Update writes the non-nil patch fields for the given ticker. updated_at
// is refreshed by gorm as part of the same statement.
func (r *securityPostgres) Update(ctx context.Context, ticker string, patch usecase.SecurityPatch) error {
	changes := patchChanges(patch)
	if len(changes) == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx).
		Model(&entity.Security{}).
		Where("ticker = ?", ticker).
		Updates(changes)
	if tx.Error != nil {
		if platformdb.IsUniqueViolation(tx.Error) {
			return domain.ErrIsinExists
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrSecurityNotFound
	}
	return nil
}

// Delete removes the security row. A foreign key violation means daily
// price rows still reference it and the delete is rejected.
func (r *securityPostgres) Delete(ctx context.Context, ticker string) error {
	tx := r.db.WithContext(ctx).Where("ticker = ?", ticker).Delete(&entity.Security{})
	if tx.Error != nil {
		if platformdb.IsForeignKeyViolation(tx.Error) {
			return domain.ErrSecurityInUse
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrSecurityNotFound
	}
	return nil
}

// patchChanges maps non-nil patch fields to their column names.
func patchChanges(p usecase.SecurityPatch) map[string]any {
	changes := map[string]any{}
	if p.IsinCode != nil {
		changes["isin_code"] = *p.IsinCode
	}
	if p.CompanyName != nil {
		changes["company_name"] = *p.CompanyName
	}
	if p.ShortName != nil {
		changes["short_name"] = *p.ShortName
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.Exchange != nil {
		changes["exchange"] = *p.Exchange
	}
	if p.IndustryClassificationCode != nil {
		changes["industry_classification_code"] = *p.IndustryClassificationCode
	}
	if p.CompanyType != nil {
		changes["company_type"] = *p.CompanyType
	}
	if p.CountryCode != nil {
		changes["country_code"] = *p.CountryCode
	}
	if p.ListingDate != nil {
		changes["listing_date"] = *p.ListingDate
	}
	if p.InitialListingPrice != nil {
		changes["initial_listing_price"] = *p.InitialListingPrice
	}
	if p.CharterCapital != nil {
		changes["charter_capital"] = *p.CharterCapital
	}
	if p.IssuedShares != nil {
		changes["issued_shares"] = *p.IssuedShares
	}
	if p.OutstandingShares != nil {
		changes["outstanding_shares"] = *p.OutstandingShares
	}
	if p.FreeFloatShares != nil {
		changes["free_float_shares"] = *p.FreeFloatShares
	}
	if p.FreeFloatRate != nil {
		changes["free_float_rate"] = *p.FreeFloatRate
	}
	if p.ShareholderCount != nil {
		changes["shareholder_count"] = *p.ShareholderCount
	}
	if p.ShareholderRecordDate != nil {
		changes["shareholder_record_date"] = *p.ShareholderRecordDate
	}
	if p.MarginStatus != nil {
		changes["margin_status"] = *p.MarginStatus
	}
	if p.ControlStatus != nil {
		changes["control_status"] = *p.ControlStatus
	}
	if p.Status != nil {
		changes["status"] = *p.Status
	}
	return changes
}
