package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
)

// Client announces persisted calculations to an external endpoint.
type Client interface {
	NotifyRecord(ctx context.Context, record models.CalculationRecord) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

var _ Client = (*APIClient)(nil)

// NewClient builds a webhook client posting to url.
func NewClient(url string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "retrocalc").
		SetTimeout(timeout)

	return &APIClient{
		httpClient: restyClient,
		url:        url,
	}
}

// RecordEvent is the payload posted for every new record.
type RecordEvent struct {
	Event  string                   `json:"event"`
	Record models.CalculationRecord `json:"record"`
}

// apiError represents an error body returned by the receiving endpoint.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NotifyRecord posts the record and fails when the endpoint answers with an error status.
func (c *APIClient) NotifyRecord(ctx context.Context, record models.CalculationRecord) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(RecordEvent{Event: "calculation.recorded", Record: record}).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post calculation webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
