package dto

// EndAuctionResponse confirms a seller-initiated early end
type EndAuctionResponse struct {
	AuctionID string `json:"auctionId"`
	Status    string `json:"status"`
}

// SweepResponse reports the outcome of a maintenance sweep invocation
type SweepResponse struct {
	Finalized int `json:"finalized"`
	Activated int `json:"activated"`
}
