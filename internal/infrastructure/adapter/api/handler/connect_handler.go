package handler

import (
	"context"
	"net/http"

	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
	"github.com/auctionly/auction-processor/internal/domain/usecase/settlement"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ConnectService is the slice of the settlement usecase managing payout accounts
type ConnectService interface {
	GetOrCreateOnboarding(ctx context.Context, token string) (*settlement.OnboardingResult, error)
	DashboardLink(ctx context.Context, token string) (string, error)
}

// ConnectHandler handles payout account HTTP requests
type ConnectHandler struct {
	service ConnectService
	logger  coreport.Logger
}

// NewConnectHandler creates a new connect handler instance
func NewConnectHandler(service ConnectService, logger coreport.Logger) *ConnectHandler {
	return &ConnectHandler{
		service: service,
		logger:  logger,
	}
}

// Onboard handles POST /connect/onboarding
func (h *ConnectHandler) Onboard(c *gin.Context) {
	result, err := h.service.GetOrCreateOnboarding(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OnboardingResponse{
		AccountID:     result.AccountID,
		OnboardingURL: result.OnboardingURL,
	})
}

// Dashboard handles GET /connect/dashboard
func (h *ConnectHandler) Dashboard(c *gin.Context) {
	url, err := h.service.DashboardLink(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DashboardLinkResponse{URL: url})
}
