package error

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{ErrUnauthenticated, CodeUnauthenticated},
		{ErrForbidden, CodeForbidden},
		{ErrAuctionNotFound, CodeNotFound},
		{ErrUserNotFound, CodeNotFound},
		{ErrAccountNotFound, CodeNotFound},
		{ErrAlreadyPaid, CodeConflict},
		{ErrTransitionConflict, CodeConflict},
		{ErrInvalidState, CodeInvalidState},
		{ErrRateLimited, CodeRateLimited},
		{ErrInvalidRequest, CodeInvalidRequest},
		{ErrInvalidCurrency, CodeInvalidRequest},
		{ErrProvider, CodeProviderError},
		{ErrInternalServer, CodeInternalServer},
		{fmt.Errorf("something else"), CodeInternalServer},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ErrorCode(tc.err), tc.err.Error())
	}
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{ErrUnauthenticated, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrAuctionNotFound, http.StatusNotFound},
		{ErrAlreadyPaid, http.StatusConflict},
		{ErrTransitionConflict, http.StatusConflict},
		{ErrInvalidState, http.StatusUnprocessableEntity},
		{ErrRateLimited, http.StatusTooManyRequests},
		{ErrInvalidRequest, http.StatusBadRequest},
		{ErrProvider, http.StatusBadGateway},
		{ErrInternalServer, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestWrappedErrorsKeepTheirCode(t *testing.T) {
	wrapped := fmt.Errorf("%w: auction is %q, not ended", ErrInvalidState, "active")
	assert.Equal(t, CodeInvalidState, ErrorCode(wrapped))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(wrapped))
}

func TestProviderError(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := NewProviderError("create_checkout_session", 500, inner)

	assert.ErrorIs(t, err, ErrProvider)
	assert.Equal(t, CodeProviderError, ErrorCode(err))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(err))

	var provErr *ProviderError
	assert.ErrorAs(t, err, &provErr)
	assert.Equal(t, "create_checkout_session", provErr.Op)
	assert.Equal(t, 500, provErr.StatusCode)

	fields := provErr.LogFields()
	assert.Equal(t, "create_checkout_session", fields["operation"])
	assert.Equal(t, 500, fields["status_code"])
}

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("bid", 30*time.Second)

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(err))

	var rateErr *RateLimitError
	assert.ErrorAs(t, err, &rateErr)
	assert.Equal(t, int64(30000), rateErr.LogFields()["retry_after_ms"])
}

func TestIsRetryableConflict(t *testing.T) {
	assert.True(t, IsRetryableConflict(ErrTransitionConflict))
	assert.True(t, IsRetryableConflict(fmt.Errorf("wrapped: %w", ErrTransitionConflict)))
	assert.False(t, IsRetryableConflict(ErrAlreadyPaid))
	assert.False(t, IsRetryableConflict(nil))
}
