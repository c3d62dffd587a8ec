// Package dto defines request and response shapes for the securities endpoints.
package dto

import (
	"time"

	"iqx_backend/internal/feature/securities/domain/entity"
	"iqx_backend/internal/feature/securities/usecase"
)

// CreateSecurityRequest is the body for POST /securities. Field constraints
// mirror the column sizes in the schema.
type CreateSecurityRequest struct {
	Ticker      string  `json:"ticker" binding:"required,max=10"`
	IsinCode    *string `json:"isin_code" binding:"omitempty,max=20"`
	CompanyName string  `json:"company_name" binding:"required,max=255"`
	ShortName   *string `json:"short_name" binding:"omitempty,max=100"`
	Description *string `json:"description"`

	Exchange                   *string `json:"exchange" binding:"omitempty,max=50"`
	IndustryClassificationCode *string `json:"industry_classification_code" binding:"omitempty,max=10"`
	CompanyType                *string `json:"company_type" binding:"omitempty,max=50"`
	CountryCode                *string `json:"country_code" binding:"omitempty,max=5"`

	ListingDate         *time.Time `json:"listing_date"`
	InitialListingPrice *float64   `json:"initial_listing_price"`

	CharterCapital    *int64   `json:"charter_capital"`
	IssuedShares      *int64   `json:"issued_shares"`
	OutstandingShares *int64   `json:"outstanding_shares"`
	FreeFloatShares   *int64   `json:"free_float_shares"`
	FreeFloatRate     *float64 `json:"free_float_rate"`

	ShareholderCount      *int64     `json:"shareholder_count"`
	ShareholderRecordDate *time.Time `json:"shareholder_record_date"`

	MarginStatus  string  `json:"margin_status" binding:"omitempty,max=20"`
	ControlStatus *string `json:"control_status" binding:"omitempty,max=50"`
	Status        string  `json:"status" binding:"omitempty,max=20"`
}

// ToEntity converts the request into a domain entity. Defaults for omitted
// status fields are the usecase's responsibility.
func (r CreateSecurityRequest) ToEntity() *entity.Security {
	return &entity.Security{
		Ticker:                     r.Ticker,
		IsinCode:                   r.IsinCode,
		CompanyName:                r.CompanyName,
		ShortName:                  r.ShortName,
		Description:                r.Description,
		Exchange:                   r.Exchange,
		IndustryClassificationCode: r.IndustryClassificationCode,
		CompanyType:                r.CompanyType,
		CountryCode:                r.CountryCode,
		ListingDate:                r.ListingDate,
		InitialListingPrice:        r.InitialListingPrice,
		CharterCapital:             r.CharterCapital,
		IssuedShares:               r.IssuedShares,
		OutstandingShares:          r.OutstandingShares,
		FreeFloatShares:            r.FreeFloatShares,
		FreeFloatRate:              r.FreeFloatRate,
		ShareholderCount:           r.ShareholderCount,
		ShareholderRecordDate:      r.ShareholderRecordDate,
		MarginStatus:               r.MarginStatus,
		ControlStatus:              r.ControlStatus,
		Status:                     r.Status,
	}
}

// UpdateSecurityRequest is the body for PUT /securities/:ticker. Every field
// is optional; absent fields are left untouched.
type UpdateSecurityRequest struct {
	IsinCode    *string `json:"isin_code" binding:"omitempty,max=20"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=255"`
	ShortName   *string `json:"short_name" binding:"omitempty,max=100"`
	Description *string `json:"description"`

	Exchange                   *string `json:"exchange" binding:"omitempty,max=50"`
	IndustryClassificationCode *string `json:"industry_classification_code" binding:"omitempty,max=10"`
	CompanyType                *string `json:"company_type" binding:"omitempty,max=50"`
	CountryCode                *string `json:"country_code" binding:"omitempty,max=5"`

	ListingDate         *time.Time `json:"listing_date"`
	InitialListingPrice *float64   `json:"initial_listing_price"`

	CharterCapital    *int64   `json:"charter_capital"`
	IssuedShares      *int64   `json:"issued_shares"`
	OutstandingShares *int64   `json:"outstanding_shares"`
	FreeFloatShares   *int64   `json:"free_float_shares"`
	FreeFloatRate     *float64 `json:"free_float_rate"`

	ShareholderCount      *int64     `json:"shareholder_count"`
	ShareholderRecordDate *time.Time `json:"shareholder_record_date"`

	MarginStatus  *string `json:"margin_status" binding:"omitempty,max=20"`
	ControlStatus *string `json:"control_status" binding:"omitempty,max=50"`
	Status        *string `json:"status" binding:"omitempty,max=20"`
}

// ToPatch converts the request into a usecase patch.
func (r UpdateSecurityRequest) ToPatch() usecase.SecurityPatch {
	return usecase.SecurityPatch{
		IsinCode:                   r.IsinCode,
		CompanyName:                r.CompanyName,
		ShortName:                  r.ShortName,
		Description:                r.Description,
		Exchange:                   r.Exchange,
		IndustryClassificationCode: r.IndustryClassificationCode,
		CompanyType:                r.CompanyType,
		CountryCode:                r.CountryCode,
		ListingDate:                r.ListingDate,
		InitialListingPrice:        r.InitialListingPrice,
		CharterCapital:             r.CharterCapital,
		IssuedShares:               r.IssuedShares,
		OutstandingShares:          r.OutstandingShares,
		FreeFloatShares:            r.FreeFloatShares,
		FreeFloatRate:              r.FreeFloatRate,
		ShareholderCount:           r.ShareholderCount,
		ShareholderRecordDate:      r.ShareholderRecordDate,
		MarginStatus:               r.MarginStatus,
		ControlStatus:              r.ControlStatus,
		Status:                     r.Status,
	}
}

// ListSecuritiesQuery binds the query string for GET /securities.
type ListSecuritiesQuery struct {
	Skip         int    `form:"skip,default=0" binding:"min=0"`
	Limit        int    `form:"limit,default=100" binding:"min=1,max=1000"`
	Ticker       string `form:"ticker"`
	Exchange     string `form:"exchange"`
	Status       string `form:"status"`
	MarginStatus string `form:"margin_status"`
}

// SecurityListResponse is the envelope for list endpoints: the page of
// items plus the total count ignoring pagination.
type SecurityListResponse struct {
	Items []entity.Security `json:"items"`
	Total int64             `json:"total"`
}
