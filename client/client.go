package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"nlsqlchat/metrics"
	"nlsqlchat/models"
	"nlsqlchat/validation"
)

const (
	uploadPath = "/upload_excel"
	schemaPath = "/schema"
	queryPath  = "/query_nl"

	// maxErrorBody bounds how much of a failed response is read for its error message.
	maxErrorBody = 64 * 1024
)

// ErrEmptyTableName is returned when an upload succeeds but names no table.
var ErrEmptyTableName = errors.New("backend returned no table name")

// APIError is a non-2xx answer from the backend. Message holds the body's "error" field, if any.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// ProgressFunc receives upload progress as a rounded percentage in [0, 100].
type ProgressFunc func(percent int)

// Client talks to the NL-to-SQL backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// UploadFile posts the file as multipart field "file" to /upload_excel.
func (c *Client) UploadFile(ctx context.Context, filename string, file io.Reader, onProgress ProgressFunc) (*models.UploadResponse, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	total := int64(body.Len())
	var reader io.Reader = body
	if onProgress != nil {
		onProgress(0)
		reader = newProgressReader(body, total, onProgress)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, reader)
	if err != nil {
		return nil, err
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out models.UploadResponse
	if err := c.do(req, uploadPath, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.TableName) == "" {
		return nil, ErrEmptyTableName
	}
	return &out, nil
}

// GetSchema fetches the backend's current table -> columns mapping.
func (c *Client) GetSchema(ctx context.Context) (models.Schema, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+schemaPath, nil)
	if err != nil {
		return nil, err
	}

	var out models.Schema
	if err := c.do(req, schemaPath, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = models.Schema{}
	}
	return out, nil
}

// QueryNL sends a natural-language question and returns the generated SQL with its rows.
func (c *Client) QueryNL(ctx context.Context, query string) (*models.QueryResponse, error) {
	data, err := json.Marshal(models.QueryRequest{Query: query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+queryPath, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out models.QueryResponse
	if err := c.do(req, queryPath, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []models.Row{}
	}
	return &out, nil
}

// Ping reports whether the backend answers HTTP at all; any status code counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return resp.Body.Close()
}

func (c *Client) do(req *http.Request, endpoint string, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveBackend(endpoint, 0, time.Since(start))
		return fmt.Errorf("%s %s: %w", req.Method, endpoint, err)
	}
	defer resp.Body.Close()
	metrics.ObserveBackend(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body models.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = strings.TrimSpace(body.Error)
	}
	return apiErr
}

// UserMessage picks the text shown to the user for err: the backend's own error message
// when it sent one, the validation message for local failures, otherwise fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var local *validation.Error
	if errors.As(err, &local) {
		return local.Message
	}
	return fallback
}
