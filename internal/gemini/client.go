// Package gemini is a minimal client for the Google Generative Language API,
// used exclusively for structured inference: every call declares a response
// schema and the returned text must deserialize into it.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/config"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/pkg/httpx"
)

// ErrSchemaMismatch marks a response that did not conform to the declared
// output shape. It is surfaced to the caller and never retried.
var ErrSchemaMismatch = errors.New("inference response does not match declared schema")

// Client is the inference API client
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	httpClient  httpx.Doer
}

// NewClient creates a new inference client from configuration.
func NewClient(cfg config.GeminiConfig) *Client {
	return &Client{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		temperature: cfg.Temperature,
		httpClient:  httpx.NewClient(cfg.Timeout()),
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing)
func (c *Client) SetHTTPClient(d httpx.Doer) { c.httpClient = d }

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Schema declares the expected response shape, mirroring the API's subset of
// OpenAPI types ("OBJECT", "ARRAY", "STRING", "INTEGER", "NUMBER").
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content       `json:"system_instruction,omitempty"`
	Contents          []content      `json:"contents"`
	GenerationConfig  generateConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateConfig struct {
	ResponseMIMEType string  `json:"response_mime_type"`
	ResponseSchema   *Schema `json:"response_schema,omitempty"`
	Temperature      float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// GenerateStructured sends the system instruction and user prompt with the
// declared response schema, and decodes the model's JSON text into out.
// Any non-conforming response comes back wrapped in ErrSchemaMismatch.
func (c *Client) GenerateStructured(ctx context.Context, systemInstruction, userPrompt string, schema *Schema, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("gemini: API key not configured")
	}

	reqBody := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: userPrompt}}}},
		GenerationConfig: generateConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
			Temperature:      c.temperature,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gemini: API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var gr generateResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return fmt.Errorf("gemini: parse response envelope: %w", err)
	}
	if gr.Error != nil {
		return fmt.Errorf("gemini: API error: %s", gr.Error.Message)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("%w: no candidates in response", ErrSchemaMismatch)
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return nil
}
