// Package classifier talks to the external document classification service.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"docvault/internal/config"
	"docvault/internal/model"
)

const (
	FallbackConfidence = 0.3
	FallbackModel      = "fallback"
	FallbackSubtype    = "unknown"

	maxResponseBytes = 4 << 20
)

// ErrUnavailable wraps every failure to obtain a classification.
var ErrUnavailable = errors.New("classifier unavailable")

// Classifier returns a structured classification for one uploaded file.
type Classifier interface {
	Classify(ctx context.Context, file model.UploadedFile) (*model.ClassificationResult, error)
}

// Fallback is the low-confidence result used when classification fails.
// It keeps the original filename and suggests no folder.
func Fallback(file model.UploadedFile) model.ClassificationResult {
	return model.ClassificationResult{
		Classification: model.Classification{
			Category:   model.CategoryOther,
			Subtype:    FallbackSubtype,
			Confidence: FallbackConfidence,
		},
		SuggestedFilename: file.Filename,
		FolderSuggestion: model.FolderSuggestion{
			PathSegments: []string{},
			IsNewFolder:  true,
		},
		ExtractedMetadata: map[string]any{},
		ModelUsed:         FallbackModel,
	}
}

type classifyRequest struct {
	DocumentID  string `json:"document_id"`
	StorageKey  string `json:"storage_key"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// HTTPClient calls POST {endpoint}/classify.
type HTTPClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPClient builds a traced client. A nil httpClient gets a default with the configured timeout.
func NewHTTPClient(cfg config.ClassifierConfig, httpClient *http.Client) (*HTTPClient, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("classifier endpoint is required")
	}
	if httpClient == nil {
		timeout := time.Duration(cfg.TimeoutSec) * time.Second
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	traced := *httpClient
	traced.Transport = otelhttp.NewTransport(base)
	return &HTTPClient{endpoint: endpoint, apiKey: cfg.APIKey, client: &traced}, nil
}

func (c *HTTPClient) Classify(ctx context.Context, file model.UploadedFile) (*model.ClassificationResult, error) {
	body, err := json.Marshal(classifyRequest{
		DocumentID:  file.DocumentID,
		StorageKey:  file.StorageKey,
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out model.ClassificationResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if out.ProcessingTimeMs == 0 {
		out.ProcessingTimeMs = time.Since(start).Milliseconds()
	}
	if out.Classification.Confidence < 0 || out.Classification.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v out of range", ErrUnavailable, out.Classification.Confidence)
	}
	return &out, nil
}
