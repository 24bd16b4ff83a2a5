package handler

import (
	"net/http"

	domainerr "github.com/auctionly/auction-processor/internal/domain/error"
	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
	identityport "github.com/auctionly/auction-processor/internal/domain/port/identity"
	"github.com/auctionly/auction-processor/internal/domain/usecase/throttle"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/api/dto"
	"github.com/auctionly/auction-processor/internal/infrastructure/observability"
	"github.com/gin-gonic/gin"
)

// ThrottleHandler enforces the sliding-window policies on bid and contact
// traffic. Throttling is advisory, so a denial carries a retry hint rather
// than ending the caller's session.
type ThrottleHandler struct {
	verifier      identityport.Verifier
	bidPolicy     *throttle.BidPolicy
	contactPolicy *throttle.ContactPolicy
	logger        coreport.Logger
}

// NewThrottleHandler creates a new throttle handler instance
func NewThrottleHandler(
	verifier identityport.Verifier,
	bidPolicy *throttle.BidPolicy,
	contactPolicy *throttle.ContactPolicy,
	logger coreport.Logger,
) *ThrottleHandler {
	return &ThrottleHandler{
		verifier:      verifier,
		bidPolicy:     bidPolicy,
		contactPolicy: contactPolicy,
		logger:        logger,
	}
}

// CheckBidAllowance handles POST /auctions/:auctionId/bid-allowance.
// The bidding service calls this before accepting a bid.
func (h *ThrottleHandler) CheckBidAllowance(c *gin.Context) {
	ident, err := h.verifier.VerifyToken(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, err)
		return
	}

	auctionID := c.Param("auctionId")
	result := h.bidPolicy.CheckBid(ident.UID, auctionID)

	if !result.Allowed {
		observability.RateLimitDenials.WithLabelValues("bid").Inc()
		respondError(c, domainerr.NewRateLimitError("bid", result.RetryAfter))
		return
	}

	c.JSON(http.StatusOK, dto.BidAllowanceResponse{
		Allowed:   true,
		Remaining: result.Remaining,
	})
}

// SubmitContact handles POST /contact, keyed by client IP since the
// endpoint is unauthenticated.
func (h *ThrottleHandler) SubmitContact(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result := h.contactPolicy.CheckContact(c.ClientIP())
	if !result.Allowed {
		observability.RateLimitDenials.WithLabelValues("contact").Inc()
		respondError(c, domainerr.NewRateLimitError("contact", result.RetryAfter))
		return
	}

	h.logger.Info("Contact submission accepted", map[string]any{
		"email": req.Email,
		"ip":    c.ClientIP(),
	})

	c.JSON(http.StatusAccepted, dto.ContactResponse{Accepted: true})
}
