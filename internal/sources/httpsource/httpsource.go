// Package httpsource fetches the recurring-charge mapping from its HTTP
// collaborator.
package httpsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"heybanco/internal/core"
)

// Client performs a single best-effort GET per fetch. There is no retry;
// a failed fetch is terminal for that render pass and the caller decides
// whether to surface an error state.
type Client struct {
	url        string
	httpClient *http.Client
}

func New(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchCharges implements sources.ChargeSource. Malformed entries are
// rejected here, at ingestion, so downstream derivations never see an
// out-of-range day or a negative amount.
func (c *Client) FetchCharges(ctx context.Context) (core.ChargeList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build charges request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch charges: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch charges: status %d: %s", resp.StatusCode, body)
	}

	var charges core.ChargeList
	if err := json.NewDecoder(resp.Body).Decode(&charges); err != nil {
		return nil, fmt.Errorf("decode charges: %w", err)
	}
	if err := charges.Validate(); err != nil {
		return nil, fmt.Errorf("invalid charges snapshot: %w", err)
	}
	return charges, nil
}
