package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	v1 "loyaltyflow/pkg/api/v1"
	"loyaltyflow/pkg/campaign"
	"loyaltyflow/pkg/constraints"
	"loyaltyflow/pkg/logger"

	"go.uber.org/zap"
)

// LoyaltyClient talks to a loyaltyflow server on behalf of a reward-issuance system.
type LoyaltyClient struct {
	addr        string
	apiKey      string
	accessToken string
	httpClient  *http.Client
}

type Option func(*LoyaltyClient)

// WithAccessToken sets the admin bearer token needed by the catalog endpoints.
func WithAccessToken(token string) Option {
	return func(c *LoyaltyClient) { c.accessToken = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *LoyaltyClient) { c.httpClient = hc }
}

func NewLoyaltyClient(addr, apiKey string, opts ...Option) *LoyaltyClient {
	c := &LoyaltyClient{
		addr:       addr,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// StatusError is returned for any non-2xx answer other than 404.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("loyaltyflow: status %d: %s", e.StatusCode, e.Message)
}

func (c *LoyaltyClient) ListCampaignTypes(ctx context.Context) ([]v1.CampaignType, error) {
	var res struct {
		Data []v1.CampaignType `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/campaign-types", "", nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *LoyaltyClient) GetCampaignType(ctx context.Context, id campaign.ID) (*v1.CampaignType, error) {
	var ct v1.CampaignType
	if err := c.do(ctx, http.MethodGet, "/v1/campaign-types/"+url.PathEscape(string(id)), id, nil, &ct); err != nil {
		return nil, err
	}
	return &ct, nil
}

// Evaluate asks whether ec qualifies under campaign type id. A decision with
// NeedsReview set carries the question to show a human reviewer.
func (c *LoyaltyClient) Evaluate(ctx context.Context, id campaign.ID, ec v1.EvaluationContext) (v1.Decision, error) {
	var d v1.Decision
	path := "/v1/campaign-types/" + url.PathEscape(string(id)) + "/evaluate"
	if err := c.do(ctx, http.MethodPost, path, id, ec, &d); err != nil {
		return v1.Decision{}, err
	}
	return d, nil
}

func (c *LoyaltyClient) do(ctx context.Context, method, path string, id campaign.ID, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.addr+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(constraints.HeaderSDKKey, c.apiKey)
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("loyaltyflow request failed", zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && id != "" {
		return &campaign.NotFoundError{ID: id}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error("failed to decode loyaltyflow response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
