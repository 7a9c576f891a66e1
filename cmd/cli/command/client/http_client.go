package client

// http_client.go talks to the comicvault HTTP API.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"comicvault/internal/microservices/http-api/dto"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type ListResponse struct {
	Data  []dto.ComicResponse `json:"data"`
	Total int                 `json:"total"`
}

type ImportResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) ListComics() (*ListResponse, error) {
	var out ListResponse
	if err := c.doJSON(http.MethodGet, "/comics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) FilterComics(params url.Values) (*ListResponse, error) {
	var out ListResponse
	if err := c.doJSON(http.MethodGet, "/comics/filter?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetComic(id string) (*dto.ComicResponse, error) {
	var out dto.ComicResponse
	if err := c.doJSON(http.MethodGet, "/comics/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteComic(id string) (*dto.ComicResponse, error) {
	var out dto.ComicResponse
	if err := c.doJSON(http.MethodDelete, "/comics/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportComics posts a raw JSON array as read from disk.
func (c *HTTPClient) ImportComics(body []byte) (*ImportResponse, error) {
	var out ImportResponse
	if err := c.doJSON(http.MethodPost, "/comics/import", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportComics streams the export into w and returns the server's filename.
func (c *HTTPClient) ExportComics(format string, w io.Writer) (string, error) {
	req, err := c.newRequest(http.MethodGet, "/comics/export?format="+url.QueryEscape(format), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}

	filename := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return filename, nil
}

func (c *HTTPClient) newRequest(method, path string, body []byte) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *HTTPClient) doJSON(method, path string, body []byte, out any) error {
	req, err := c.newRequest(method, path, body)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error}
}
