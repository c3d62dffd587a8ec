// Package handler provides the HTTP handlers for the securities feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"iqx_backend/internal/api"
	"iqx_backend/internal/feature/securities/domain"
	"iqx_backend/internal/feature/securities/domain/entity"
	"iqx_backend/internal/feature/securities/transport/http/dto"
	"iqx_backend/internal/feature/securities/usecase"
)

// SecuritiesUsecase defines the usecase interface for security operations.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type SecuritiesUsecase interface {
	ListSecurities(ctx context.Context, f usecase.SecurityFilter, skip, limit int) ([]entity.Security, int64, error)
	GetSecurity(ctx context.Context, ticker string) (*entity.Security, error)
	CreateSecurity(ctx context.Context, sec *entity.Security) (*entity.Security, error)
	UpdateSecurity(ctx context.Context, ticker string, patch usecase.SecurityPatch) (*entity.Security, error)
	DeleteSecurity(ctx context.Context, ticker string) error
}

// SecurityHandler handles HTTP requests for securities.
type SecurityHandler struct {
	uc SecuritiesUsecase
}

// NewSecurityHandler creates a new SecurityHandler with the given usecase.
func NewSecurityHandler(uc SecuritiesUsecase) *SecurityHandler {
	return &SecurityHandler{uc: uc}
}

// Create handles POST /securities. Returns 201 with the stored record, 400
// on validation failures or duplicate ticker/ISIN.
func (h *SecurityHandler) Create(c *gin.Context) {
	var req dto.CreateSecurityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	sec, err := h.uc.CreateSecurity(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sec)
}

// List handles GET /securities with optional exact-match filters and
// skip/limit paging. The response carries the page plus the unpaged total.
func (h *SecurityHandler) List(c *gin.Context) {
	var q dto.ListSecuritiesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	filter := usecase.SecurityFilter{
		Ticker:       q.Ticker,
		Exchange:     q.Exchange,
		Status:       q.Status,
		MarginStatus: q.MarginStatus,
	}
	items, total, err := h.uc.ListSecurities(c.Request.Context(), filter, q.Skip, q.Limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if items == nil {
		items = []entity.Security{}
	}
	c.JSON(http.StatusOK, dto.SecurityListResponse{Items: items, Total: total})
}

// Get handles GET /securities/:ticker.
func (h *SecurityHandler) Get(c *gin.Context) {
	sec, err := h.uc.GetSecurity(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sec)
}

// Update handles PUT /securities/:ticker as a partial update; only fields
// present in the body change.
func (h *SecurityHandler) Update(c *gin.Context) {
	var req dto.UpdateSecurityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	sec, err := h.uc.UpdateSecurity(c.Request.Context(), c.Param("ticker"), req.ToPatch())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sec)
}

// Delete handles DELETE /securities/:ticker. Returns 204 on success.
func (h *SecurityHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteSecurity(c.Request.Context(), c.Param("ticker")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps domain errors to HTTP statuses.
func (h *SecurityHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSecurityNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrTickerExists),
		errors.Is(err, domain.ErrIsinExists),
		errors.Is(err, domain.ErrSecurityInUse):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("securities request failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}
