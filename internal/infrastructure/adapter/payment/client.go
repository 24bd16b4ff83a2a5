package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	errs "github.com/auctionly/auction-processor/internal/domain/error"
	"github.com/auctionly/auction-processor/internal/domain/port/core"
	paymentport "github.com/auctionly/auction-processor/internal/domain/port/payment"
)

const defaultRequestTimeout = 15 * time.Second

// Client talks to the payment provider's REST API. Requests are
// form-encoded with bearer auth, responses are JSON, and every call runs
// under a bounded timeout so a stalled provider cannot hang a request
// handler indefinitely.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     core.Logger
}

// NewClient creates a payment provider client
func NewClient(baseURL, secretKey string, timeout time.Duration, logger core.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type accountResponse struct {
	ID               string `json:"id"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
}

type linkResponse struct {
	URL string `json:"url"`
}

// CreateCheckoutSession creates a hosted checkout session
func (c *Client) CreateCheckoutSession(ctx context.Context, params paymentport.CheckoutSessionParams) (*paymentport.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountMinor, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)

	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	if params.DestinationAccountID != "" {
		form.Set("payment_intent_data[transfer_data][destination]", params.DestinationAccountID)
		form.Set("payment_intent_data[application_fee_amount]", strconv.FormatInt(params.ApplicationFeeMinor, 10))
	}

	var resp sessionResponse
	if err := c.post(ctx, "create_checkout_session", "/v1/checkout/sessions", form, &resp); err != nil {
		return nil, err
	}

	return &paymentport.CheckoutSession{ID: resp.ID, URL: resp.URL}, nil
}

// CreateAccount creates an express connect account for a seller
func (c *Client) CreateAccount(ctx context.Context, params paymentport.AccountParams) (*paymentport.Account, error) {
	form := url.Values{}
	form.Set("type", "express")
	if params.Country != "" {
		form.Set("country", params.Country)
	}
	if params.Email != "" {
		form.Set("email", params.Email)
	}

	var resp accountResponse
	if err := c.post(ctx, "create_account", "/v1/accounts", form, &resp); err != nil {
		return nil, err
	}

	return toAccount(&resp), nil
}

// RetrieveAccount fetches the current state of a connect account. A 404
// maps to ErrProviderAccountMissing so callers can self-heal dangling
// local records.
func (c *Client) RetrieveAccount(ctx context.Context, accountID string) (*paymentport.Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/accounts/"+url.PathEscape(accountID), nil)
	if err != nil {
		return nil, errs.NewProviderError("retrieve_account", 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewProviderError("retrieve_account", 0, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: account %s", errs.ErrProviderAccountMissing, accountID)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, errs.NewProviderError("retrieve_account", httpResp.StatusCode, errorFromBody(httpResp.Body))
	}

	var resp accountResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, errs.NewProviderError("retrieve_account", httpResp.StatusCode, err)
	}

	return toAccount(&resp), nil
}

// CreateAccountLink creates a one-time onboarding link for a connect account
func (c *Client) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	form := url.Values{}
	form.Set("account", accountID)
	form.Set("refresh_url", refreshURL)
	form.Set("return_url", returnURL)
	form.Set("type", "account_onboarding")

	var resp linkResponse
	if err := c.post(ctx, "create_account_link", "/v1/account_links", form, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// CreateLoginLink creates a dashboard login link for a connect account
func (c *Client) CreateLoginLink(ctx context.Context, accountID string) (string, error) {
	var resp linkResponse
	path := "/v1/accounts/" + url.PathEscape(accountID) + "/login_links"
	if err := c.post(ctx, "create_login_link", path, url.Values{}, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// post sends a form-encoded POST and decodes the JSON response into out
func (c *Client) post(ctx context.Context, op, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return errs.NewProviderError(op, 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewProviderError(op, 0, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		provErr := errs.NewProviderError(op, httpResp.StatusCode, errorFromBody(httpResp.Body))
		c.logger.Error("Payment provider call failed", map[string]any{
			"operation":   op,
			"status_code": httpResp.StatusCode,
		})
		return provErr
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return errs.NewProviderError(op, httpResp.StatusCode, err)
	}
	return nil
}

// errorFromBody extracts the provider's error message, falling back to the
// raw body when it is not the expected JSON shape.
func errorFromBody(body io.Reader) error {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return err
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
		return fmt.Errorf("%s", payload.Error.Message)
	}
	return fmt.Errorf("%s", strings.TrimSpace(string(raw)))
}

func toAccount(resp *accountResponse) *paymentport.Account {
	return &paymentport.Account{
		ID:               resp.ID,
		ChargesEnabled:   resp.ChargesEnabled,
		PayoutsEnabled:   resp.PayoutsEnabled,
		DetailsSubmitted: resp.DetailsSubmitted,
	}
}
