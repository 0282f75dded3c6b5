// Package forecast is the client for the remote prediction service: one call
// submits a CSV dataset, the other fetches predictions for a model.
//
// Calls are made exactly once. There is no caching, retry or backoff, and no
// timeout beyond what the caller's context or http.Client imposes.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"energy_forecast/internal/model"
)

// DefaultBaseURL is where the prediction service listens in development.
const DefaultBaseURL = "http://127.0.0.1:8000"

// maxErrorBody caps how much of an error response is kept in the error message.
const maxErrorBody = 512

// UploadResult acknowledges an accepted dataset.
type UploadResult struct {
	AcceptedDates     []string `json:"accepted_dates"`
	AcceptedDateCount int      `json:"accepted_date_count"`
}

type uploadResponse struct {
	TestDates []string `json:"test_dates"`
}

// Client talks to the prediction service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     log.With().Str("component", "forecast_client").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Models lists the model identifiers the service accepts.
func (c *Client) Models() []model.ModelID {
	return model.Models()
}

// SubmitDataset uploads a CSV as multipart field "file" to /upload_csv.
//
// The acknowledgement is read from "test_dates". A body of any other shape is
// accepted and treated as zero accepted dates.
func (c *Client) SubmitDataset(ctx context.Context, filename string, r io.Reader) (UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, &UploadError{Err: fmt.Errorf("creating form file: %w", err)}
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, &UploadError{Err: fmt.Errorf("reading dataset: %w", err)}
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, &UploadError{Err: fmt.Errorf("closing multipart body: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload_csv", &buf)
	if err != nil {
		return UploadResult{}, &UploadError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.logger.Debug().Str("file", filename).Int("bytes", buf.Len()).Msg("Submitting dataset")

	body, status, err := c.do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("file", filename).Msg("Dataset upload failed")
		return UploadResult{}, &UploadError{StatusCode: status, Err: err}
	}

	var resp uploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Debug().Err(err).Msg("Upload response has no test_dates, treating as empty")
	}
	result := UploadResult{AcceptedDates: resp.TestDates, AcceptedDateCount: len(resp.TestDates)}
	if result.AcceptedDates == nil {
		result.AcceptedDates = []string{}
	}

	c.logger.Debug().Int("accepted", result.AcceptedDateCount).Msg("Dataset accepted")
	return result, nil
}

// FetchPredictions requests /predict/{model} and decodes the record array.
func (c *Client) FetchPredictions(ctx context.Context, id model.ModelID) ([]model.PredictionRecord, error) {
	if _, ok := model.ModelCatalog[id]; !ok {
		return nil, &PredictionError{Model: id, Err: fmt.Errorf("%w: %q", model.ErrUnknownModel, id)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/predict/"+url.PathEscape(string(id)), nil)
	if err != nil {
		return nil, &PredictionError{Model: id, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("model", string(id)).Msg("Fetching predictions")

	body, status, err := c.do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("model", string(id)).Msg("Prediction request failed")
		return nil, &PredictionError{Model: id, StatusCode: status, Err: err}
	}

	var records []model.PredictionRecord
	if err := json.Unmarshal(body, &records); err != nil {
		c.logger.Warn().Err(err).Str("model", string(id)).Msg("Prediction response is not a record array")
		return nil, &PredictionError{Model: id, StatusCode: status, Err: fmt.Errorf("parsing JSON: %w", err)}
	}
	if records == nil {
		records = []model.PredictionRecord{}
	}

	if issues := model.CheckSequence(records); !issues.Empty() {
		c.logger.Warn().
			Int("duplicates", len(issues.Duplicates)).
			Int("out_of_order", len(issues.OutOfOrder)).
			Str("model", string(id)).
			Msg("Prediction dates are not unique and ascending")
	}

	c.logger.Debug().Int("count", len(records)).Str("model", string(id)).Msg("Fetched predictions")
	return records, nil
}

// do sends req once and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, resp.StatusCode, &statusError{statusCode: resp.StatusCode, message: msg}
	}
	return body, resp.StatusCode, nil
}
