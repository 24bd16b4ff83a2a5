package dto

// CheckoutRequest initiates payment for a won auction
type CheckoutRequest struct {
	Currency string `json:"currency" binding:"required,len=3"`
}

// CheckoutResponse carries the provider session the buyer is redirected to
type CheckoutResponse struct {
	SessionID     string `json:"sessionId"`
	SessionURL    string `json:"sessionUrl"`
	TransactionID string `json:"transactionId"`
}
