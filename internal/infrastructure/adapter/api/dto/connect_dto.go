package dto

// OnboardingResponse carries a connect account's onboarding link
type OnboardingResponse struct {
	AccountID     string `json:"accountId"`
	OnboardingURL string `json:"onboardingUrl"`
}

// DashboardLinkResponse carries a login link to the provider dashboard
type DashboardLinkResponse struct {
	URL string `json:"url"`
}
