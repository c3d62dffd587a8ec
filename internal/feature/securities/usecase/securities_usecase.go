// Package usecase implements the business logic for security operations.
package usecase

import (
	"context"
	"errors"
	"time"

	"iqx_backend/internal/feature/securities/domain"
	"iqx_backend/internal/feature/securities/domain/entity"
)

// Defaults applied when a create request omits the status fields, matching
// the column defaults in the schema.
const (
	DefaultMarginStatus = "not_allowed"
	DefaultStatus       = "active"
)

// SecurityFilter is an exact-match conjunction over the filterable columns.
// Zero-valued fields are ignored, not treated as "match null".
type SecurityFilter struct {
	Ticker       string
	Exchange     string
	Status       string
	MarginStatus string
}

// SecurityPatch carries a partial update. Only non-nil fields are written;
// the ticker itself is immutable and never part of a patch.
type SecurityPatch struct {
	IsinCode                   *string
	CompanyName                *string
	ShortName                  *string
	Description                *string
	Exchange                   *string
	IndustryClassificationCode *string
	CompanyType                *string
	CountryCode                *string
	ListingDate                *time.Time
	InitialListingPrice        *float64
	CharterCapital             *int64
	IssuedShares               *int64
	OutstandingShares          *int64
	FreeFloatShares            *int64
	FreeFloatRate              *float64
	ShareholderCount           *int64
	ShareholderRecordDate      *time.Time
	MarginStatus               *string
	ControlStatus              *string
	Status                     *string
}

// SecurityRepository abstracts the persistence layer for securities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type SecurityRepository interface {
	List(ctx context.Context, f SecurityFilter, skip, limit int) ([]entity.Security, error)
	Count(ctx context.Context, f SecurityFilter) (int64, error)
	GetByTicker(ctx context.Context, ticker string) (*entity.Security, error)
	GetByIsin(ctx context.Context, isin string) (*entity.Security, error)
	Create(ctx context.Context, sec *entity.Security) error
	Update(ctx context.Context, ticker string, patch SecurityPatch) error
	Delete(ctx context.Context, ticker string) error
}

// SecuritiesUsecase provides business logic for security operations.
type SecuritiesUsecase struct {
	repo SecurityRepository
}

// NewSecuritiesUsecase creates a new SecuritiesUsecase with the given repository.
func NewSecuritiesUsecase(r SecurityRepository) *SecuritiesUsecase {
	return &SecuritiesUsecase{repo: r}
}

// ListSecurities returns securities matching the filter plus the total count
// ignoring pagination.
func (u *SecuritiesUsecase) ListSecurities(ctx context.Context, f SecurityFilter, skip, limit int) ([]entity.Security, int64, error) {
	items, err := u.repo.List(ctx, f, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetSecurity returns the security for the given ticker.
func (u *SecuritiesUsecase) GetSecurity(ctx context.Context, ticker string) (*entity.Security, error) {
	return u.repo.GetByTicker(ctx, ticker)
}

// CreateSecurity registers a new security. Duplicate ticker or ISIN checks
// run before the insert for friendlier errors; the store's own constraints
// remain the race-proof guard and the repository translates violations into
// the same domain errors.
func (u *SecuritiesUsecase) CreateSecurity(ctx context.Context, sec *entity.Security) (*entity.Security, error) {
	if sec.MarginStatus == "" {
		sec.MarginStatus = DefaultMarginStatus
	}
	if sec.Status == "" {
		sec.Status = DefaultStatus
	}

	if _, err := u.repo.GetByTicker(ctx, sec.Ticker); err == nil {
		return nil, domain.ErrTickerExists
	} else if !errors.Is(err, domain.ErrSecurityNotFound) {
		return nil, err
	}

	if sec.IsinCode != nil && *sec.IsinCode != "" {
		if _, err := u.repo.GetByIsin(ctx, *sec.IsinCode); err == nil {
			return nil, domain.ErrIsinExists
		} else if !errors.Is(err, domain.ErrSecurityNotFound) {
			return nil, err
		}
	}

	if err := u.repo.Create(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

// UpdateSecurity applies a partial update to the security identified by
// ticker. Changing the ISIN to a value held by a different ticker is a
// conflict.
func (u *SecuritiesUsecase) UpdateSecurity(ctx context.Context, ticker string, patch SecurityPatch) (*entity.Security, error) {
	if _, err := u.repo.GetByTicker(ctx, ticker); err != nil {
		return nil, err
	}

	if patch.IsinCode != nil && *patch.IsinCode != "" {
		other, err := u.repo.GetByIsin(ctx, *patch.IsinCode)
		if err == nil && other.Ticker != ticker {
			return nil, domain.ErrIsinExists
		}
		if err != nil && !errors.Is(err, domain.ErrSecurityNotFound) {
			return nil, err
		}
	}

	if err := u.repo.Update(ctx, ticker, patch); err != nil {
		return nil, err
	}
	return u.repo.GetByTicker(ctx, ticker)
}

// DeleteSecurity removes the security identified by ticker. The delete is
// rejected while daily price rows still reference it.
func (u *SecuritiesUsecase) DeleteSecurity(ctx context.Context, ticker string) error {
	return u.repo.Delete(ctx, ticker)
}
