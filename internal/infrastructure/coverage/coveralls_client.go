// Package coverage uploads coverage results to a coveralls-compatible
// tracking service.
package coverage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/bensternthal/basket/internal/domain/pipeline"
	"github.com/bensternthal/basket/internal/pkg/logger"
)

const defaultEndpoint = "https://coveralls.io/api/v1/jobs"

// CoverallsClient implements pipeline.CoverageReporter against the coveralls
// jobs API: the job document is posted as a multipart form with the JSON
// payload in the json_file field.
type CoverallsClient struct {
	endpoint string
	client   *http.Client
	logger   logger.Logger
}

// NewCoverallsClient creates a reporter for the given endpoint. An empty
// endpoint selects the public coveralls API.
func NewCoverallsClient(endpoint string, logger logger.Logger) (pipeline.CoverageReporter, error) {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &CoverallsClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}, nil
}

// Report uploads the coverage job and fails on any non-2xx response.
func (c *CoverallsClient) Report(ctx context.Context, job *pipeline.CoverageJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal coverage job: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("json_file", "coverage.json")
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return fmt.Errorf("failed to write coverage payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return fmt.Errorf("failed to create coverage request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload coverage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("coverage upload rejected with status %d: %s", resp.StatusCode, detail)
	}

	c.logger.Info("Uploaded coverage for ", len(job.SourceFiles), " source files")
	return nil
}
