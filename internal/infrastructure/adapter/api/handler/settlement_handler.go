package handler

import (
	"context"
	"net/http"

	domainerr "github.com/auctionly/auction-processor/internal/domain/error"
	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
	"github.com/auctionly/auction-processor/internal/domain/usecase/settlement"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/api/dto"
	"github.com/auctionly/auction-processor/internal/infrastructure/observability"
	"github.com/gin-gonic/gin"
)

// CheckoutService is the slice of the settlement usecase the handler needs
type CheckoutService interface {
	CreateCheckout(ctx context.Context, auctionID, currency, token string) (*settlement.CheckoutResult, error)
}

// SettlementHandler handles payment initiation HTTP requests
type SettlementHandler struct {
	service CheckoutService
	logger  coreport.Logger
}

// NewSettlementHandler creates a new settlement handler instance
func NewSettlementHandler(service CheckoutService, logger coreport.Logger) *SettlementHandler {
	return &SettlementHandler{
		service: service,
		logger:  logger,
	}
}

// CreateCheckout handles POST /auctions/:auctionId/checkout
func (h *SettlementHandler) CreateCheckout(c *gin.Context) {
	auctionID := c.Param("auctionId")

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.service.CreateCheckout(c.Request.Context(), auctionID, req.Currency, bearerToken(c))
	if err != nil {
		observability.CheckoutSessions.WithLabelValues("error").Inc()
		respondError(c, err)
		return
	}

	observability.CheckoutSessions.WithLabelValues("created").Inc()
	c.JSON(http.StatusOK, dto.CheckoutResponse{
		SessionID:     result.SessionID,
		SessionURL:    result.SessionURL,
		TransactionID: result.TransactionID,
	})
}
