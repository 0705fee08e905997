// Package restaurant talks to the restaurant-data service that owns the
// canonical restaurant records (phone number, opening days, location).
package restaurant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/itchan-dev/roadboard/shared/domain"
	internal_errors "github.com/itchan-dev/roadboard/shared/errors"
	"github.com/itchan-dev/roadboard/shared/logger"
	"github.com/itchan-dev/roadboard/shared/middleware/metrics"
)

const mapPath = "/info/road/map"

const (
	endpointByIds    = "fetch_by_ids"
	endpointByCourse = "fetch_by_course"
)

// Client preserves input order: element i of a response belongs to element i
// of the request.
type Client struct {
	BaseURL    string
	HttpClient *http.Client
}

// New returns a client whose every call is bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HttpClient: &http.Client{Timeout: timeout},
	}
}

type courseRequest struct {
	Info []domain.CourseInfo `json:"info"`
}

// FetchByIds resolves stored restaurant ids to live details.
func (c *Client) FetchByIds(ctx context.Context, ids []domain.RestaurantId) ([]domain.RestaurantDetail, error) {
	if len(ids) == 0 {
		return []domain.RestaurantDetail{}, nil
	}
	query := url.Values{"data": {strings.Join(ids, ",")}}
	return c.do(ctx, endpointByIds, http.MethodGet, mapPath+"?"+query.Encode(), nil)
}

// FetchByCourse resolves submitted course stops to restaurants.
func (c *Client) FetchByCourse(ctx context.Context, info []domain.CourseInfo) ([]domain.RestaurantDetail, error) {
	if len(info) == 0 {
		return []domain.RestaurantDetail{}, nil
	}
	body, err := json.Marshal(courseRequest{Info: info})
	if err != nil {
		return nil, fmt.Errorf("failed to encode course request: %w", err)
	}
	return c.do(ctx, endpointByCourse, http.MethodPost, mapPath, bytes.NewReader(body))
}

// do is the single helper for restaurant service requests. Every failure is
// reported as EnrichmentUnavailable.
func (c *Client) do(ctx context.Context, endpoint, method, path string, body io.Reader) ([]domain.RestaurantDetail, error) {
	log := logger.Component("restaurant_client").With("endpoint", endpoint)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		metrics.ObserveRestaurantCall(endpoint, metrics.OutcomeNetwork, time.Since(start))
		log.Warn("restaurant service unreachable", "error", err, "took", time.Since(start))
		return nil, fmt.Errorf("%w: %v", internal_errors.EnrichmentUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		metrics.ObserveRestaurantCall(endpoint, metrics.OutcomeBadStatus, time.Since(start))
		log.Warn("restaurant service returned error", "status", resp.StatusCode, "took", time.Since(start))
		return nil, fmt.Errorf("%w: status %d", internal_errors.EnrichmentUnavailable, resp.StatusCode)
	}

	var details []domain.RestaurantDetail
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		metrics.ObserveRestaurantCall(endpoint, metrics.OutcomeBadPayload, time.Since(start))
		log.Warn("malformed restaurant payload", "error", err)
		return nil, fmt.Errorf("%w: malformed payload: %v", internal_errors.EnrichmentUnavailable, err)
	}
	if details == nil {
		// a JSON null is as unusable as garbage
		metrics.ObserveRestaurantCall(endpoint, metrics.OutcomeBadPayload, time.Since(start))
		return nil, fmt.Errorf("%w: empty payload", internal_errors.EnrichmentUnavailable)
	}

	metrics.ObserveRestaurantCall(endpoint, metrics.OutcomeOK, time.Since(start))
	log.Debug("restaurant details fetched", "count", len(details), "took", time.Since(start))
	return details, nil
}
