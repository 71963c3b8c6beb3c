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

	"github.com/fsobarzo/resto-orders/internal/domain"
)

const defaultAPIURL = "https://api.stripe.com"

// ChargeRequest is a single charge against an opaque card token.
// Amount is in integer minor currency units.
type ChargeRequest struct {
	Amount      int64
	Currency    string
	Description string
	Source      string
	Metadata    map[string]string
}

// Charge is the gateway's confirmation. CardBrand is empty when the gateway
// did not report card details.
type Charge struct {
	ID        string
	CardBrand string
}

type Client struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
}

func New(secretKey, apiURL string) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		apiURL:    strings.TrimRight(apiURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chargeResponse struct {
	ID                   string `json:"id"`
	PaymentMethodDetails *struct {
		Card *struct {
			Brand string `json:"brand"`
		} `json:"card"`
	} `json:"payment_method_details"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Charge posts a charge to the gateway. A card-specific decline comes back
// as *domain.PaymentDeclinedError; any other failure is opaque.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", req.Currency)
	form.Set("description", req.Description)
	form.Set("source", req.Source)
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("charge request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("charge response: %w", err)
	}

	var decoded chargeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("charge response status %d: %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		if decoded.Error != nil && decoded.Error.Type == "card_error" {
			return nil, &domain.PaymentDeclinedError{Reason: decoded.Error.Message}
		}
		msg := "unknown error"
		if decoded.Error != nil && decoded.Error.Message != "" {
			msg = decoded.Error.Message
		}
		return nil, fmt.Errorf("charge failed with status %d: %s", resp.StatusCode, msg)
	}

	ch := &Charge{ID: decoded.ID}
	if decoded.PaymentMethodDetails != nil && decoded.PaymentMethodDetails.Card != nil {
		ch.CardBrand = decoded.PaymentMethodDetails.Card.Brand
	}
	return ch, nil
}
