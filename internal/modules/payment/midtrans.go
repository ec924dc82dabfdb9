package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MidtransConfig holds the provider credentials and endpoints. The zero
// base URLs default to the sandbox environment.
type MidtransConfig struct {
	ServerKey   string
	SnapBaseURL string
	APIBaseURL  string
	Timeout     time.Duration
}

const (
	defaultSnapBaseURL = "https://app.sandbox.midtrans.com"
	defaultAPIBaseURL  = "https://api.sandbox.midtrans.com"
	defaultTimeout     = 10 * time.Second
)

type midtransGateway struct {
	cfg    MidtransConfig
	auth   string
	client *http.Client
}

// NewMidtransGateway creates a Gateway talking to Midtrans Snap.
func NewMidtransGateway(cfg MidtransConfig) Gateway {
	if cfg.SnapBaseURL == "" {
		cfg.SnapBaseURL = defaultSnapBaseURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &midtransGateway{
		cfg:    cfg,
		auth:   "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.ServerKey+":")),
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type snapPayload struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	ItemDetails     []Item   `json:"item_details"`
	CustomerDetails Customer `json:"customer_details"`
}

func (g *midtransGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	var payload snapPayload
	payload.TransactionDetails.OrderID = req.OrderID
	payload.TransactionDetails.GrossAmount = req.GrossAmount
	payload.ItemDetails = req.Items
	payload.CustomerDetails = req.Customer

	var session Session
	if err := g.post(ctx, g.cfg.SnapBaseURL+"/snap/v1/transactions", payload, &session); err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, fmt.Errorf("%w: empty session token", ErrUpstream)
	}
	return &session, nil
}

func (g *midtransGateway) QueryStatus(ctx context.Context, orderID string) (Status, error) {
	var body struct {
		TransactionStatus string `json:"transaction_status"`
	}
	if err := g.post(ctx, g.cfg.APIBaseURL+"/v2/"+orderID+"/status", nil, &body); err != nil {
		return "", err
	}
	return MapStatus(body.TransactionStatus), nil
}

func (g *midtransGateway) post(ctx context.Context, url string, payload, out interface{}) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", g.auth)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	return nil
}

// MapStatus folds Midtrans transaction statuses into the three states the
// store cares about.
func MapStatus(transactionStatus string) Status {
	switch transactionStatus {
	case "settlement", "capture":
		return StatusSuccess
	case "deny", "cancel", "expire", "failure":
		return StatusFailure
	default:
		return StatusPending
	}
}
