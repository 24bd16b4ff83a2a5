package dto

// BidAllowanceResponse reports whether the caller may place a bid right now
type BidAllowanceResponse struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
}

// ContactRequest is a contact-form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// ContactResponse acknowledges an accepted contact submission
type ContactResponse struct {
	Accepted bool `json:"accepted"`
}
