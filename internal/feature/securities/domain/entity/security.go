// Package entity defines the domain models for the securities feature.
package entity

import "time"

// Security represents one tradable instrument. The ticker is the primary
// key and immutable once created; the ISIN code, when present, must be
// unique across all securities.
type Security struct {
	Ticker      string  `gorm:"primaryKey;size:10" json:"ticker"`
	IsinCode    *string `gorm:"size:20;uniqueIndex" json:"isin_code"`
	CompanyName string  `gorm:"size:255;not null" json:"company_name"`
	ShortName   *string `gorm:"size:100" json:"short_name"`
	Description *string `gorm:"type:text" json:"description"`

	Exchange                   *string `gorm:"size:50" json:"exchange"`
	IndustryClassificationCode *string `gorm:"size:10" json:"industry_classification_code"`
	CompanyType                *string `gorm:"size:50" json:"company_type"`
	CountryCode                *string `gorm:"size:5" json:"country_code"`

	ListingDate         *time.Time `gorm:"type:date" json:"listing_date"`
	InitialListingPrice *float64   `gorm:"type:numeric(18,2)" json:"initial_listing_price"`

	CharterCapital    *int64   `json:"charter_capital"`
	IssuedShares      *int64   `json:"issued_shares"`
	OutstandingShares *int64   `json:"outstanding_shares"`
	FreeFloatShares   *int64   `json:"free_float_shares"`
	FreeFloatRate     *float64 `json:"free_float_rate"`

	ShareholderCount      *int64     `gorm:"type:integer" json:"shareholder_count"`
	ShareholderRecordDate *time.Time `gorm:"type:date" json:"shareholder_record_date"`

	MarginStatus  string  `gorm:"size:20;default:not_allowed" json:"margin_status"`
	ControlStatus *string `gorm:"size:50" json:"control_status"`
	Status        string  `gorm:"size:20;default:active" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the gorm default ("securities" is already plural in
// the schema the service inherits).
func (Security) TableName() string {
	return "securities"
}
