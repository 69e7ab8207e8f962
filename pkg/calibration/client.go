package calibration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/neurokit/morph/pkg/errors"
)

// Client is a Source backed by a calibration metadata service
// (see NewRouter for the server side).
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
// A nil httpClient uses a default with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type zResolutionResponse struct {
	SpecimenID  int64   `json:"specimen_id"`
	ZResolution float64 `json:"z_resolution"`
}

// ZResolution implements Source.
func (c *Client) ZResolution(ctx context.Context, specimenID int64) (float64, error) {
	url := fmt.Sprintf("%s/specimens/%d/z-resolution", c.baseURL, specimenID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return 0, errors.New(errors.ErrCodeCalibrationNotFound, "specimen %d has no z resolution", specimenID)
	default:
		return 0, fmt.Errorf("calibration service: unexpected status %d", resp.StatusCode)
	}

	var body zResolutionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("calibration service: decode: %w", err)
	}
	return body.ZResolution, nil
}

var _ Source = (*Client)(nil)
