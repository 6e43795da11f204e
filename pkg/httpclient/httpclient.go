package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrInvalidURL    = errors.New("invalid URL")
	ErrStatusNotOK   = errors.New("HTTP status code is not successful")
	ErrEmptyBody     = errors.New("response body is empty")
	ErrDecodeFailed  = errors.New("decode response failed")
	ErrServerFailure = errors.New("server returned 5xx")
)

// Client 带重试和默认头的 HTTP 客户端
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Headers    map[string]string
	Retries    int
	Backoff    time.Duration
}

type Option func(*Client)

// WithTimeout 设置请求超时时间
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.HTTPClient.Timeout = timeout
	}
}

// WithRetries 设置失败重试次数
func WithRetries(retries int) Option {
	return func(c *Client) {
		c.Retries = retries
	}
}

// WithBackoff 设置重试退避基准时间
func WithBackoff(backoff time.Duration) Option {
	return func(c *Client) {
		c.Backoff = backoff
	}
}

// WithHeader 设置默认请求头
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.Headers[key] = value
	}
}

// WithHTTPClient 使用自定义的底层客户端
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = client
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Headers: make(map[string]string),
		Retries: 3,
		Backoff: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(client)
	}
	if _, exists := client.Headers["Content-Type"]; !exists {
		client.Headers["Content-Type"] = "application/json"
	}
	return client
}

// request 发送请求，5xx 和网络错误按指数退避重试。
// 每次重试重建请求体，避免复用已消费的 Reader。
func (c *Client) request(ctx context.Context, method, path string, params url.Values, body any) (*http.Response, error) {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	var resp *http.Response
	for attempt := 0; ; attempt++ {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
		if err != nil {
			return nil, err
		}
		for key, value := range c.Headers {
			req.Header.Set(key, value)
		}

		resp, err = c.HTTPClient.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if err == nil {
			resp.Body.Close()
			err = fmt.Errorf("%w: %d", ErrServerFailure, resp.StatusCode)
		}
		if attempt >= c.Retries {
			return nil, err
		}

		select {
		case <-time.After(c.Backoff * time.Duration(1<<attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Get 发送 GET 请求
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	return c.request(ctx, http.MethodGet, path, params, nil)
}

// Post 发送 POST 请求
func (c *Client) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.request(ctx, http.MethodPost, path, nil, body)
}

// GetJSON 发送 GET 请求并解析 JSON 响应
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, response any) error {
	resp, err := c.Get(ctx, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeJSONResponse(resp, response)
}

// PostJSON 发送 POST 请求并解析 JSON 响应
func (c *Client) PostJSON(ctx context.Context, path string, body, response any) error {
	resp, err := c.Post(ctx, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeJSONResponse(resp, response)
}

func decodeJSONResponse(resp *http.Response, response any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %d %s, body: %s", ErrStatusNotOK, resp.StatusCode, http.StatusText(resp.StatusCode), string(bodyBytes))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bodyBytes) == 0 {
		if response == nil {
			return nil
		}
		return ErrEmptyBody
	}
	if response == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, response); err != nil {
		return fmt.Errorf("%w: %s, body: %s", ErrDecodeFailed, err, string(bodyBytes))
	}
	return nil
}
