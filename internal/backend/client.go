// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend is the HTTP client for the extraction/summarization service.
//
// Every endpoint has its own typed result and decoder. Decoding fails closed:
// a 2xx body with unknown fields or a missing content field is reported as
// ErrMalformedResponse rather than being rendered as empty content.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/A4xPraddy/multiscrapper-ai/internal/credentials"
	"github.com/A4xPraddy/multiscrapper-ai/internal/logger"
)

// Configuration constants.
const (
	// DefaultURL is used when no base URL is configured.
	DefaultURL = "http://localhost:8000"

	// MaxResponseSize caps how much of a response body is read.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 32 * 1024 * 1024

	// DefaultMaxUpload caps document uploads.
	DefaultMaxUpload = 50 * 1024 * 1024

	// Credential headers.
	HeaderGoogleKey = "x-google-api-key"
	HeaderGroqKey   = "x-groq-api-key"
)

// Provider labels the backend understands for LLM-backed endpoints.
const (
	ProviderGeminiFlash = "Gemini (Flash 2.0)"
	ProviderGroqLlama   = "Groq (Llama 3)"
)

// Endpoint paths.
const (
	PathScrape     = "/api/web/scrape"
	PathYouTube    = "/api/youtube"
	PathVectorize  = "/api/pdf/vectorize"
	PathAsk        = "/api/ask"
	PathScreenshot = "/api/web/screenshot"
	PathVision     = "/api/web/vision"
	PathExtract    = "/api/web/extract"
)

// Fallback messages used when an error reply carries no detail.
const (
	fallbackProcess = "Processing failed"
	fallbackPDF     = "PDF Processing failed"
	fallbackAsk     = "QA failed"
	fallbackShot    = "Screenshot unavailable"
	fallbackVision  = "Vision analysis failed"
	fallbackExtract = "Table extraction failed"
)

// Client talks to one backend instance. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxUpload  int64
	now        func() time.Time
}

// NewClient creates a client for baseURL (DefaultURL when empty).
// Requests have no timeout by default; they end when ctx does.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		maxUpload:  DefaultMaxUpload,
		now:        time.Now,
	}
}

// WithTimeout bounds each request (0 = no bound).
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithMaxUpload sets the document upload limit in bytes (<= 0 = default).
func (c *Client) WithMaxUpload(n int64) *Client {
	if n <= 0 {
		n = DefaultMaxUpload
	}
	c.maxUpload = n
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// ANALYSIS ENDPOINTS
// =============================================================================

type urlRequest struct {
	URL string `json:"url"`
}

// ScrapeWeb extracts page text (and a screenshot path) for pageURL.
func (c *Client) ScrapeWeb(ctx context.Context, pageURL string, creds credentials.Credentials) (Result, error) {
	body, err := c.postJSON(ctx, PathScrape, urlRequest{URL: pageURL}, creds, fallbackProcess)
	if err != nil {
		return Result{}, err
	}
	return decodeWeb(body)
}

// SummarizeVideo fetches and summarizes the transcript of videoURL.
func (c *Client) SummarizeVideo(ctx context.Context, videoURL string, creds credentials.Credentials) (Result, error) {
	body, err := c.postJSON(ctx, PathYouTube, urlRequest{URL: videoURL}, creds, fallbackProcess)
	if err != nil {
		return Result{}, err
	}
	return decodeVideo(body)
}

// VectorizePDF uploads a document as multipart field "file". The backend
// needs no credentials for this endpoint, so none are sent.
func (c *Client) VectorizePDF(ctx context.Context, filename string, r io.Reader) (Result, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return Result{}, fmt.Errorf("build upload: %w", err)
	}
	n, err := io.Copy(part, io.LimitReader(r, c.maxUpload+1))
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", filename, err)
	}
	if n > c.maxUpload {
		return Result{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, filepath.Base(filename), c.maxUpload)
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("build upload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, PathVectorize, &buf)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(req, fallbackPDF)
	if err != nil {
		return Result{}, err
	}
	return decodeDocument(body)
}

// =============================================================================
// FOLLOW-UP ENDPOINTS
// =============================================================================

// AskRequest is a grounded follow-up question.
type AskRequest struct {
	// Text is the content the question is grounded on.
	Text     string
	Question string
	// Provider is the backend's provider label (ProviderGeminiFlash when empty).
	Provider string
}

// Ask sends a follow-up question and returns the answer text.
func (c *Client) Ask(ctx context.Context, ask AskRequest, creds credentials.Credentials) (string, error) {
	provider := ask.Provider
	if provider == "" {
		provider = ProviderGeminiFlash
	}
	body, err := c.postForm(ctx, PathAsk, map[string]string{
		"text":     ask.Text,
		"question": ask.Question,
		"provider": provider,
	}, creds, fallbackAsk)
	if err != nil {
		return "", err
	}
	return decodeString(body, "answer", func(w *askWire) *string { return w.Answer })
}

// Vision asks the backend to analyze an image it holds at imagePath
// (typically the Screenshot of a web result).
func (c *Client) Vision(ctx context.Context, imagePath, prompt string, creds credentials.Credentials) (string, error) {
	body, err := c.postForm(ctx, PathVision, map[string]string{
		"image_path": imagePath,
		"prompt":     prompt,
	}, credentials.Credentials{Gemini: creds.Gemini}, fallbackVision)
	if err != nil {
		return "", err
	}
	return decodeString(body, "analysis", func(w *visionWire) *string { return w.Analysis })
}

// ExtractTable asks the backend to turn text into a markdown table.
func (c *Client) ExtractTable(ctx context.Context, text, provider string, creds credentials.Credentials) (string, error) {
	if provider == "" {
		provider = ProviderGeminiFlash
	}
	body, err := c.postForm(ctx, PathExtract, map[string]string{
		"text":     text,
		"provider": provider,
	}, creds, fallbackExtract)
	if err != nil {
		return "", err
	}
	return decodeString(body, "table", func(w *extractWire) *string { return w.Table })
}

// Screenshot downloads the most recent page screenshot. The query carries a
// timestamp so intermediaries never serve a cached image.
func (c *Client) Screenshot(ctx context.Context) ([]byte, string, error) {
	q := url.Values{"t": {strconv.FormatInt(c.now().UnixMilli(), 10)}}
	req, err := c.newRequest(ctx, http.MethodGet, PathScreenshot+"?"+q.Encode(), nil)
	if err != nil {
		return nil, "", err
	}
	resp, body, err := c.roundTrip(req, fallbackShot)
	if err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// ScreenshotURL returns a cache-busted screenshot URL for display.
func (c *Client) ScreenshotURL() string {
	return fmt.Sprintf("%s%s?t=%d", c.baseURL, PathScreenshot, c.now().UnixMilli())
}

// =============================================================================
// TRANSPORT HELPERS
// =============================================================================

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func setKeyHeaders(req *http.Request, creds credentials.Credentials) {
	// Both headers always go out, empty when unset; the backend decides.
	req.Header.Set(HeaderGoogleKey, creds.Gemini)
	req.Header.Set(HeaderGroqKey, creds.Groq)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, creds credentials.Credentials, fallback string) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	setKeyHeaders(req, creds)
	return c.do(req, fallback)
}

func (c *Client) postForm(ctx context.Context, path string, fields map[string]string, creds credentials.Credentials, fallback string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	// Stable field order keeps request bodies reproducible.
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if err := mw.WriteField(k, fields[k]); err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	setKeyHeaders(req, creds)
	return c.do(req, fallback)
}

func (c *Client) do(req *http.Request, fallback string) ([]byte, error) {
	_, body, err := c.roundTrip(req, fallback)
	return body, err
}

// roundTrip sends req and returns the body of a 2xx reply. Non-2xx replies
// become *APIError with the backend detail or fallback.
func (c *Client) roundTrip(req *http.Request, fallback string) (*http.Response, []byte, error) {
	start := time.Now()
	path := req.URL.Path

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		logger.Warn("backend request failed", "path", path, "error", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read %s: %v", ErrTransport, path, err)
	}

	logger.Debug("backend request",
		"method", req.Method,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := parseDetail(body)
		if detail == "" {
			detail = fallback
		}
		return nil, nil, &APIError{Path: path, Status: resp.StatusCode, Detail: detail}
	}
	return resp, body, nil
}

// readResponse reads a response body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeds %d bytes", MaxResponseSize)
	}
	return body, nil
}
