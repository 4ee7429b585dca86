package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/CroSSer23/spa-procurement/internal/dto"
)

// TrybeClient is a read-only passthrough to the external Trybe inventory API.
// The backend never stores or interprets Trybe data beyond decoding it — it is
// a catalog browsing aid for procurement staff, not part of the lifecycle core.
type TrybeClient struct {
	baseURL    string
	token      string
	siteID     string
	httpClient *http.Client
}

func NewTrybeClient(baseURL, token, siteID string) *TrybeClient {
	return &TrybeClient{
		baseURL:    baseURL,
		token:      token,
		siteID:     siteID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ListProducts fetches one page of the upstream catalog.
func (c *TrybeClient) ListProducts(ctx context.Context, page int, query string) (*dto.TrybeListResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("trybe: parse url: %w", err)
	}
	q := u.Query()
	q.Set("site_id", c.siteID)
	q.Set("per_page", "300")
	q.Set("page", fmt.Sprintf("%d", page))
	if query != "" {
		q.Set("query", query)
	}
	u.RawQuery = q.Encode()

	var result dto.TrybeListResponse
	if err := c.get(ctx, u.String(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProduct fetches a single upstream product by id.
func (c *TrybeClient) GetProduct(ctx context.Context, id string) (*dto.TrybeProduct, error) {
	var envelope struct {
		Data dto.TrybeProduct `json:"data"`
	}
	if err := c.get(ctx, c.baseURL+"/"+url.PathEscape(id), &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

func (c *TrybeClient) get(ctx context.Context, rawURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("trybe: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("trybe: upstream unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrTrybeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trybe: upstream returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("trybe: decode response: %w", err)
	}
	return nil
}

// ErrTrybeNotFound is returned when the upstream reports 404 for a product id.
var ErrTrybeNotFound = fmt.Errorf("trybe: product not found")
