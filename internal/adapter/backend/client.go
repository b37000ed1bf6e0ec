package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"todofront/internal/core/domain"
	"todofront/internal/core/model/request"
	"todofront/internal/core/port"
	tel "todofront/internal/core/telemetry"
	"todofront/pkg/config"
	ct "todofront/pkg/context"
)

const todoPath = "/api/todo"

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the todo backend, the service of record for todo items.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	telemetry  port.Telemetry
	logger     *config.LokiLogger
}

func NewClient(cfg Config, telemetry port.Telemetry, logger *config.LokiLogger) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)

	if raw == "" {
		return nil, &domain.ConfigurationError{Key: "BACKEND_URL"}
	}

	baseURL, err := url.Parse(strings.TrimRight(raw, "/"))

	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		if err == nil {
			err = fmt.Errorf("%q is not an absolute URL", raw)
		}

		return nil, &domain.ConfigurationError{Key: "BACKEND_URL", Err: err}
	}

	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	if logger == nil {
		logger = config.NewNopLogger()
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		telemetry: telemetry,
		logger:    logger,
	}, nil
}

func (c *Client) CreateTodo(ctx context.Context, body request.CreateTodo) error {
	payload, err := json.Marshal(body)

	if err != nil {
		return fmt.Errorf("encode todo: %w", err)
	}

	status, respBody, err := c.do(ctx, http.MethodPost, todoPath, bytes.NewReader(payload))

	if err != nil {
		return err
	}

	if !isSuccess(status) {
		return c.backendFailure(ctx, "create todo", status, respBody)
	}

	config.LogInfo(ctx, c.logger, "Created todo",
		zap.Int("status", status),
		zap.ByteString("body", respBody),
		zap.String("request_id", requestID(ctx)))

	return nil
}

func (c *Client) ListTodos(ctx context.Context) ([]domain.TodoWire, error) {
	status, respBody, err := c.do(ctx, http.MethodGet, todoPath, nil)

	if err != nil {
		return nil, err
	}

	if !isSuccess(status) {
		return nil, c.backendFailure(ctx, "list todos", status, respBody)
	}

	var todos []domain.TodoWire

	if err := json.Unmarshal(respBody, &todos); err != nil {
		decodeErr := &domain.DecodeError{Op: "list todos", Err: err}
		config.LogError(ctx, c.logger, decodeErr, "Malformed todo list",
			zap.String("request_id", requestID(ctx)))

		return nil, decodeErr
	}

	if todos == nil {
		todos = []domain.TodoWire{}
	}

	return todos, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	status, respBody, err := c.do(ctx, http.MethodDelete, todoPath+"/"+url.PathEscape(id), nil)

	if err != nil {
		return err
	}

	if !isSuccess(status) {
		return c.backendFailure(ctx, "delete todo", status, respBody)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method string, path string, body io.Reader) (int, []byte, error) {
	op := strings.ToLower(method) + " " + path
	target := c.baseURL.String() + path

	req, err := http.NewRequestWithContext(ctx, method, target, body)

	if err != nil {
		return 0, nil, &domain.TransportError{Op: op, Err: err}
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if method == http.MethodGet {
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}

	if id := requestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)

	if err != nil {
		transportErr := &domain.TransportError{Op: op, Err: err}

		config.LogError(ctx, c.logger, transportErr, "Backend unreachable",
			zap.String("method", method),
			zap.String("url", target),
			zap.String("request_id", requestID(ctx)))

		return 0, nil, transportErr
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)

	c.telemetry.RecordBackendCall(ctx, method, path, resp.StatusCode, time.Since(start))

	if err != nil {
		return resp.StatusCode, nil, &domain.TransportError{Op: op, Err: err}
	}

	return resp.StatusCode, respBody, nil
}

// backendFailure logs a non-2xx answer with its status and body and returns it as a BackendError.
func (c *Client) backendFailure(ctx context.Context, op string, status int, body []byte) error {
	err := &domain.BackendError{Op: op, StatusCode: status, Body: string(body)}

	config.LogError(ctx, c.logger, err, "Backend rejected request",
		zap.String("operation", op),
		zap.Int("status", status),
		zap.String("body", string(body)),
		zap.String("request_id", requestID(ctx)))

	return err
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func requestID(ctx context.Context) string {
	if current, ok := ct.FromContext(ctx); ok {
		return current.RequestID()
	}

	return ""
}
