package handler

import (
	"errors"
	"strings"

	domainerr "github.com/auctionly/auction-processor/internal/domain/error"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondError writes the standardized error response for a domain error
func respondError(c *gin.Context, err error) {
	resp := dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
	}

	var rateErr *domainerr.RateLimitError
	if errors.As(err, &rateErr) {
		resp.RetryAfterMs = rateErr.RetryAfter.Milliseconds()
	}

	c.JSON(domainerr.HTTPStatus(err), resp)
}

// bearerToken extracts the bearer token from the Authorization header.
// Returns an empty string when the header is missing or malformed; the
// verifier turns that into an unauthenticated error.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
