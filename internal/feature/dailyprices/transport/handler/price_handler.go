// Package handler provides the HTTP handlers for the dailyprices feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"iqx_backend/internal/api"
	"iqx_backend/internal/feature/dailyprices/domain"
	"iqx_backend/internal/feature/dailyprices/domain/entity"
	"iqx_backend/internal/feature/dailyprices/transport/http/dto"
	"iqx_backend/internal/feature/dailyprices/usecase"
	secdomain "iqx_backend/internal/feature/securities/domain"
)

// Accepted layouts for the :time path segment. Bars live at day
// granularity, so a bare date is as common as a full timestamp.
var timeLayouts = []string{time.RFC3339, "2006-01-02"}

// PricesUsecase defines the usecase interface for daily price operations.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type PricesUsecase interface {
	ListPrices(ctx context.Context, f usecase.PriceFilter, skip, limit int) ([]entity.DailyPrice, int64, error)
	GetPrice(ctx context.Context, ticker string, t time.Time) (*entity.DailyPrice, error)
	CreatePrice(ctx context.Context, p *entity.DailyPrice) (*entity.DailyPrice, error)
	UpdatePrice(ctx context.Context, ticker string, t time.Time, patch usecase.PricePatch) (*entity.DailyPrice, error)
	DeletePrice(ctx context.Context, ticker string, t time.Time) error
	GetPricesByTimeRange(ctx context.Context, ticker, rangeToken string, limit int) ([]entity.DailyPrice, error)
}

// PriceHandler handles HTTP requests for daily prices.
type PriceHandler struct {
	uc PricesUsecase
}

// NewPriceHandler creates a new PriceHandler with the given usecase.
func NewPriceHandler(uc PricesUsecase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// Create handles POST /daily-prices. The referenced security must already
// exist (404 otherwise) and the (ticker, time) key must be free (400).
func (h *PriceHandler) Create(c *gin.Context) {
	var req dto.CreateDailyPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	price, err := h.uc.CreatePrice(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewDailyPriceResponse(*price))
}

// List handles GET /daily-prices with an optional ticker filter and
// skip/limit paging, newest bars first.
func (h *PriceHandler) List(c *gin.Context) {
	var q dto.ListDailyPricesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	items, total, err := h.uc.ListPrices(c.Request.Context(), usecase.PriceFilter{Ticker: q.Ticker}, q.Skip, q.Limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDailyPriceListResponse(items, total))
}

// GetByTimeRange handles GET /daily-prices/:ticker/range/:time_range. The
// token must be one of 1d, 1m, 3m, 6m, 1y, 5y, all; the total in the
// response is the number of bars inside the window after the limit cap.
func (h *PriceHandler) GetByTimeRange(c *gin.Context) {
	var q dto.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	items, err := h.uc.GetPricesByTimeRange(c.Request.Context(), c.Param("ticker"), c.Param("time_range"), q.Limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDailyPriceListResponse(items, int64(len(items))))
}

// Get handles GET /daily-prices/:ticker/:time.
func (h *PriceHandler) Get(c *gin.Context) {
	t, ok := h.pathTime(c)
	if !ok {
		return
	}
	price, err := h.uc.GetPrice(c.Request.Context(), c.Param("ticker"), t)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDailyPriceResponse(*price))
}

// Update handles PUT /daily-prices/:ticker/:time as a partial update.
func (h *PriceHandler) Update(c *gin.Context) {
	t, ok := h.pathTime(c)
	if !ok {
		return
	}
	var req dto.UpdateDailyPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	price, err := h.uc.UpdatePrice(c.Request.Context(), c.Param("ticker"), t, req.ToPatch())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDailyPriceResponse(*price))
}

// Delete handles DELETE /daily-prices/:ticker/:time. Returns 204 on success.
func (h *PriceHandler) Delete(c *gin.Context) {
	t, ok := h.pathTime(c)
	if !ok {
		return
	}
	if err := h.uc.DeletePrice(c.Request.Context(), c.Param("ticker"), t); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathTime parses the :time path segment, answering 400 itself on failure.
func (h *PriceHandler) pathTime(c *gin.Context) (time.Time, bool) {
	raw := c.Param("time")
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid time: " + raw})
	return time.Time{}, false
}

// writeError maps domain errors to HTTP statuses.
func (h *PriceHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPriceNotFound),
		errors.Is(err, secdomain.ErrSecurityNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPriceExists),
		errors.Is(err, domain.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("daily prices request failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}
