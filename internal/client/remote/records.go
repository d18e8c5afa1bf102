package remote

import (
	"autoDetailing/internal/models"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type insertResponse struct {
	envelope
	ID string `json:"id"`
}

type queryResponse struct {
	envelope
	Jobs []models.Booking `json:"jobs"`
}

type servicesResponse struct {
	envelope
	Services []models.ServiceInfo `json:"services"`
}

// RecordsClient reads and writes the jobs collection.
type RecordsClient struct {
	transport
	tokens TokenSource
}

func NewRecordsClient(baseURL string, httpClient *http.Client, tokens TokenSource) *RecordsClient {
	return &RecordsClient{
		transport: newTransport(baseURL, httpClient),
		tokens:    tokens,
	}
}

func (c *RecordsClient) Insert(ctx context.Context, b models.Booking) (string, error) {
	var resp insertResponse

	if err := c.doJSON(ctx, http.MethodPost, "/jobs", c.tokens.Token(), b, &resp); err != nil {
		return "", err
	}

	return resp.ID, nil
}

func (c *RecordsClient) Query(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	path := "/jobs"
	if filter.OwnerID != "" {
		path += "?owner_id=" + url.QueryEscape(filter.OwnerID)
	}

	var resp queryResponse

	if err := c.doJSON(ctx, http.MethodGet, path, c.tokens.Token(), nil, &resp); err != nil {
		return nil, err
	}

	return resp.Jobs, nil
}

func (c *RecordsClient) Services(ctx context.Context) ([]models.ServiceInfo, error) {
	var resp servicesResponse

	if err := c.doJSON(ctx, http.MethodGet, "/services", "", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Services, nil
}

// Export copies the admin xlsx export into w.
func (c *RecordsClient) Export(ctx context.Context, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/jobs/export", c.tokens.Token(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if _, err = io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	return nil
}
