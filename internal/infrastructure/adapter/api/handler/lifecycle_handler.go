package handler

import (
	"context"
	"net/http"

	"github.com/auctionly/auction-processor/internal/domain/entity"
	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
	"github.com/auctionly/auction-processor/internal/domain/usecase/lifecycle"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// LifecycleService is the slice of the lifecycle usecase the handler needs
type LifecycleService interface {
	EndEarly(ctx context.Context, auctionID, token string) error
	Sweep(ctx context.Context) (*lifecycle.SweepResult, error)
}

// LifecycleHandler handles auction lifecycle HTTP requests
type LifecycleHandler struct {
	service LifecycleService
	logger  coreport.Logger
}

// NewLifecycleHandler creates a new lifecycle handler instance
func NewLifecycleHandler(service LifecycleService, logger coreport.Logger) *LifecycleHandler {
	return &LifecycleHandler{
		service: service,
		logger:  logger,
	}
}

// EndAuction handles POST /auctions/:auctionId/end
func (h *LifecycleHandler) EndAuction(c *gin.Context) {
	auctionID := c.Param("auctionId")

	if err := h.service.EndEarly(c.Request.Context(), auctionID, bearerToken(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EndAuctionResponse{
		AuctionID: auctionID,
		Status:    string(entity.StatusEnded),
	})
}

// RunSweep handles POST /maintenance/sweep. The sweep is re-entrant, so an
// operator triggering it while the background worker runs is harmless.
func (h *LifecycleHandler) RunSweep(c *gin.Context) {
	result, err := h.service.Sweep(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SweepResponse{
		Finalized: result.Finalized,
		Activated: result.Activated,
	})
}
