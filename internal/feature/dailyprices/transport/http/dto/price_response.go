package dto

import (
	"time"

	"iqx_backend/internal/feature/dailyprices/domain/entity"
)

// DailyPriceResponse is the read shape of a bar. Alongside the stored
// columns it carries the derived presentation fields consumers chart
// against: camel-cased price aliases, the scaled change figure, and the
// traded value for the day.
type DailyPriceResponse struct {
	Time   time.Time `json:"time"`
	Ticker string    `json:"ticker"`

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

	// Change scales the stored percent_change ratio by 100. Upstream
	// producers have not confirmed whether they store a fraction or an
	// already-scaled percentage; the scaling matches the reference
	// behavior as-is.
	Change       *float64 `json:"change"`
	CurrentPrice *float64 `json:"currentPrice"`
	OpenP        *float64 `json:"openPrice"`
	HighP        *float64 `json:"highPrice"`
	LowP         *float64 `json:"lowPrice"`
	TotalVolume  *int64   `json:"totalVolume"`
	// TotalValue is volume x close_price, present only when both are.
	TotalValue *float64 `json:"totalValue"`
}

// NewDailyPriceResponse builds the read shape for one bar, computing the
// derived fields.
func NewDailyPriceResponse(p entity.DailyPrice) DailyPriceResponse {
	resp := DailyPriceResponse{
		Time:                  p.Time,
		Ticker:                p.Ticker,
		OpenPrice:             p.OpenPrice,
		HighPrice:             p.HighPrice,
		LowPrice:              p.LowPrice,
		ClosePrice:            p.ClosePrice,
		Volume:                p.Volume,
		PriceChange:           p.PriceChange,
		PercentChange:         p.PercentChange,
		BuyOrderValue:         p.BuyOrderValue,
		SellOrderValue:        p.SellOrderValue,
		ForeignNetBuyValue:    p.ForeignNetBuyValue,
		BuyOrderQuantity:      p.BuyOrderQuantity,
		SellOrderQuantity:     p.SellOrderQuantity,
		ForeignNetBuyQuantity: p.ForeignNetBuyQuantity,

		CurrentPrice: p.ClosePrice,
		OpenP:        p.OpenPrice,
		HighP:        p.HighPrice,
		LowP:         p.LowPrice,
		TotalVolume:  p.Volume,
	}
	if p.PercentChange != nil {
		change := *p.PercentChange * 100
		resp.Change = &change
	}
	if p.Volume != nil && p.ClosePrice != nil {
		total := float64(*p.Volume) * *p.ClosePrice
		resp.TotalValue = &total
	}
	return resp
}

// NewDailyPriceListResponse wraps a page of bars in the list envelope.
func NewDailyPriceListResponse(prices []entity.DailyPrice, total int64) DailyPriceListResponse {
	items := make([]DailyPriceResponse, 0, len(prices))
	for _, p := range prices {
		items = append(items, NewDailyPriceResponse(p))
	}
	return DailyPriceListResponse{Items: items, Total: total}
}

// DailyPriceListResponse is the envelope for list endpoints.
type DailyPriceListResponse struct {
	Items []DailyPriceResponse `json:"items"`
	Total int64                `json:"total"`
}
