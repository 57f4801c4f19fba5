package roboflow

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/skinoai/internal/classifier"
	"github.com/example/skinoai/internal/logging"
)

// Responses larger than this are not valid classify payloads.
const maxResponseBytes = 1 << 20

// Options configure the hosted classify endpoint.
type Options struct {
	BaseURL      string
	APIKey       string
	ModelID      string
	ModelVersion int
	Timeout      time.Duration
}

type client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a classifier.Client backed by the Roboflow hosted
// classification API.
func NewClient(opts Options, logger *zap.Logger) (classifier.Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, logging.NewOperationError("roboflow.new_client", "", errors.New("api key is required"))
	}
	if opts.ModelID == "" {
		return nil, logging.NewOperationError("roboflow.new_client", "", errors.New("model id is required"))
	}

	endpoint := fmt.Sprintf("%s/%s/%d", strings.TrimSuffix(opts.BaseURL, "/"), opts.ModelID, opts.ModelVersion)
	if _, err := url.Parse(endpoint); err != nil {
		return nil, logging.NewOperationError("roboflow.new_client", "", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &client{
		endpoint:   endpoint,
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("roboflow"),
	}, nil
}

type inferenceResponse struct {
	Top         string  `json:"top"`
	Confidence  float64 `json:"confidence"`
	Predictions []struct {
		Class      string  `json:"class"`
		Confidence float64 `json:"confidence"`
	} `json:"predictions"`
}

// Classify posts the image to the hosted model and maps its top prediction.
// The API takes the image as a base64 body on a form-encoded POST.
func (c *client) Classify(ctx context.Context, imageBytes []byte) (*classifier.Result, error) {
	encoded := base64.StdEncoding.EncodeToString(imageBytes)

	reqURL := fmt.Sprintf("%s?api_key=%s", c.endpoint, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(encoded))
	if err != nil {
		return nil, logging.NewOperationError("roboflow.classify", "", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		wrapped := logging.NewOperationError("roboflow.classify", "", err)
		c.logger.Error("classification call failed", zap.Error(wrapped))
		return nil, wrapped
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, logging.NewOperationError("roboflow.read_response", "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, truncate(body, 256))
		wrapped := logging.NewOperationError("roboflow.classify", "", err)
		c.logger.Error("classification call rejected", zap.Error(wrapped), zap.Int("status", resp.StatusCode))
		return nil, wrapped
	}

	var decoded inferenceResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, logging.NewOperationError("roboflow.decode_response", "", err)
	}

	class := decoded.Top
	confidence := decoded.Confidence
	if class == "" && len(decoded.Predictions) > 0 {
		class = decoded.Predictions[0].Class
		confidence = decoded.Predictions[0].Confidence
	}
	if class == "" {
		return nil, logging.NewOperationError("roboflow.decode_response", "", errors.New("response carried no prediction"))
	}
	if confidence < 0 || confidence > 1 {
		return nil, logging.NewOperationError("roboflow.decode_response", "",
			fmt.Errorf("confidence %v outside [0,1]", confidence))
	}

	return &classifier.Result{Class: class, Confidence: confidence}, nil
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
