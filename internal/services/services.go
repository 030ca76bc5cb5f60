package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"healeo-sense/internal/config"
	"healeo-sense/internal/models"
	"healeo-sense/internal/resilience"
)

type ServiceClient struct {
	baseURL    string
	client     *http.Client
	vitalsCB   *resilience.CircuitBreaker
	attempts   int
	retryDelay time.Duration
}

func NewServiceClient(cfg *config.Config) *ServiceClient {
	return &ServiceClient{
		baseURL: cfg.VitalsServiceURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		vitalsCB:   resilience.NewCircuitBreaker("vitals-service", 3, 10*time.Second),
		attempts:   3,
		retryDelay: 500 * time.Millisecond,
	}
}

func (s *ServiceClient) fetchJSON(ctx context.Context, endpoint string, target interface{}) error {
	return resilience.Retry(ctx, s.attempts, s.retryDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %d", resp.StatusCode)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("bad status code: %d", resp.StatusCode)
		}

		return json.NewDecoder(resp.Body).Decode(target)
	})
}

func (s *ServiceClient) GetVitals(ctx context.Context, userID string) (*models.VitalsRecord, error) {
	u := fmt.Sprintf("%s/vitals/%s", s.baseURL, url.PathEscape(userID))

	var record models.VitalsRecord
	err := s.vitalsCB.Execute(func() error {
		return s.fetchJSON(ctx, u, &record)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching vitals for %s: %w", userID, err)
	}

	return &record, nil
}
