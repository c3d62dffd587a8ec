// Package dto defines request and response shapes for the daily price endpoints.
package dto

import (
	"time"

	"iqx_backend/internal/feature/dailyprices/domain/entity"
	"iqx_backend/internal/feature/dailyprices/usecase"
)

// CreateDailyPriceRequest is the body for POST /daily-prices.
type CreateDailyPriceRequest struct {
	Time   time.Time `json:"time" binding:"required"`
	Ticker string    `json:"ticker" binding:"required,max=10"`

	OpenPrice  *float64 `json:"open_price"`
	HighPrice  *float64 `json:"high_price"`
	LowPrice   *float64 `json:"low_price"`
	ClosePrice *float64 `json:"close_price"`

	Volume        *int64   `json:"volume"`
	PriceChange   *float64 `json:"price_change"`
	PercentChange *float64 `json:"percent_change"`

	BuyOrderValue      *float64 `json:"buy_order_value"`
	SellOrderValue     *float64 `json:"sell_order_value"`
	ForeignNetBuyValue *float64 `json:"foreign_net_buy_value"`

	BuyOrderQuantity      *int64 `json:"buy_order_quantity"`
	SellOrderQuantity     *int64 `json:"sell_order_quantity"`
	ForeignNetBuyQuantity *int64 `json:"foreign_net_buy_quantity"`
}

// ToEntity converts the request into a domain entity.
func (r CreateDailyPriceRequest) ToEntity() *entity.DailyPrice {
	return &entity.DailyPrice{
		Time:                  r.Time,
		Ticker:                r.Ticker,
		OpenPrice:             r.OpenPrice,
		HighPrice:             r.HighPrice,
		LowPrice:              r.LowPrice,
		ClosePrice:            r.ClosePrice,
		Volume:                r.Volume,
		PriceChange:           r.PriceChange,
		PercentChange:         r.PercentChange,
		BuyOrderValue:         r.BuyOrderValue,
		SellOrderValue:        r.SellOrderValue,
		ForeignNetBuyValue:    r.ForeignNetBuyValue,
		BuyOrderQuantity:      r.BuyOrderQuantity,
		SellOrderQuantity:     r.SellOrderQuantity,
		ForeignNetBuyQuantity: r.ForeignNetBuyQuantity,
	}
}

// UpdateDailyPriceRequest is the body for PUT /daily-prices/:ticker/:time.
// Absent fields are left untouched.
type UpdateDailyPriceRequest struct {
	OpenPrice  *float64 `json:"open_price"`
	HighPrice  *float64 `json:"high_price"`
	LowPrice   *float64 `json:"low_price"`
	ClosePrice *float64 `json:"close_price"`

	Volume        *int64   `json:"volume"`
	PriceChange   *float64 `json:"price_change"`
	PercentChange *float64 `json:"percent_change"`

	BuyOrderValue      *float64 `json:"buy_order_value"`
	SellOrderValue     *float64 `json:"sell_order_value"`
	ForeignNetBuyValue *float64 `json:"foreign_net_buy_value"`

	BuyOrderQuantity      *int64 `json:"buy_order_quantity"`
	SellOrderQuantity     *int64 `json:"sell_order_quantity"`
	ForeignNetBuyQuantity *int64 `json:"foreign_net_buy_quantity"`
}

// ToPatch converts the request into a usecase patch.
func (r UpdateDailyPriceRequest) ToPatch() usecase.PricePatch {
	return usecase.PricePatch{
		OpenPrice:             r.OpenPrice,
		HighPrice:             r.HighPrice,
		LowPrice:              r.LowPrice,
		ClosePrice:            r.ClosePrice,
		Volume:                r.Volume,
		PriceChange:           r.PriceChange,
		PercentChange:         r.PercentChange,
		BuyOrderValue:         r.BuyOrderValue,
		SellOrderValue:        r.SellOrderValue,
		ForeignNetBuyValue:    r.ForeignNetBuyValue,
		BuyOrderQuantity:      r.BuyOrderQuantity,
		SellOrderQuantity:     r.SellOrderQuantity,
		ForeignNetBuyQuantity: r.ForeignNetBuyQuantity,
	}
}

// ListDailyPricesQuery binds the query string for GET /daily-prices.
type ListDailyPricesQuery struct {
	Skip   int    `form:"skip,default=0" binding:"min=0"`
	Limit  int    `form:"limit,default=100" binding:"min=1,max=1000"`
	Ticker string `form:"ticker"`
}

// RangeQuery binds the query string for the time-range endpoint.
type RangeQuery struct {
	Limit int `form:"limit,default=10000" binding:"min=1,max=50000"`
}
