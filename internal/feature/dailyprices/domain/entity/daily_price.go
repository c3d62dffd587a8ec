// Package entity defines the domain models for the dailyprices feature.
package entity

import (
	"time"

	secentity "iqx_backend/internal/feature/securities/domain/entity"
)

// DailyPrice represents one trading day's bar and order-flow summary for a
// single security. The composite key is (time, ticker); every value field
// is nullable because a bar may be only partially populated.
type DailyPrice struct {
	Time   time.Time `gorm:"primaryKey" json:"time"`
	Ticker string    `gorm:"primaryKey;size:10" json:"ticker"`

	OpenPrice  *float64 `gorm:"type:numeric(18,2)" json:"open_price"`
	HighPrice  *float64 `gorm:"type:numeric(18,2)" json:"high_price"`
	LowPrice   *float64 `gorm:"type:numeric(18,2)" json:"low_price"`
	ClosePrice *float64 `gorm:"type:numeric(18,2)" json:"close_price"`

	Volume      *int64   `json:"volume"`
	PriceChange *float64 `gorm:"type:numeric(18,2)" json:"price_change"`
	// PercentChange is stored as the raw ratio produced upstream; the
	// transport layer scales it for presentation.
	PercentChange *float64 `json:"percent_change"`

	BuyOrderValue      *float64 `gorm:"type:numeric(20,2)" json:"buy_order_value"`
	SellOrderValue     *float64 `gorm:"type:numeric(20,2)" json:"sell_order_value"`
	ForeignNetBuyValue *float64 `gorm:"type:numeric(20,2)" json:"foreign_net_buy_value"`

	BuyOrderQuantity      *int64 `json:"buy_order_quantity"`
	SellOrderQuantity     *int64 `json:"sell_order_quantity"`
	ForeignNetBuyQuantity *int64 `json:"foreign_net_buy_quantity"`

	// Security backs the foreign key constraint on ticker. No cascade rule:
	// deleting a referenced security is rejected while bars exist.
	Security *secentity.Security `gorm:"foreignKey:Ticker;references:Ticker" json:"-"`
}

// TableName names the hypertable backing this model.
func (DailyPrice) TableName() string {
	return "daily_prices"
}
