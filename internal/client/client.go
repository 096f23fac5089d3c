package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/core/common/money"
	"github.com/frahmantamala/expense-tracker/internal/dashboard"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/responsible"
)

const DefaultTimeout = 10 * time.Second

// APIError is returned for every non-2xx response. Message is the server's
// {"error": ...} text when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the expense tracker HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(config Config, logger *slog.Logger) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

type ExpenseQuery struct {
	From          string
	To            string
	ResponsibleID string
}

type ExpenseRequest struct {
	ResponsibleID string       `json:"responsible_id,omitempty"`
	Description   string       `json:"description"`
	Amount        money.Amount `json:"amount"`
	Status        string       `json:"status,omitempty"`
	SpentAt       string       `json:"spent_at"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) Health(ctx context.Context) (bool, error) {
	var body struct {
		OK bool `json:"ok"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &body); err != nil {
		return false, err
	}
	return body.OK, nil
}

func (c *Client) ListResponsibles(ctx context.Context) ([]responsible.Responsible, error) {
	var out envelope[[]responsible.Responsible]
	if err := c.do(ctx, http.MethodGet, "/responsibles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateResponsible(ctx context.Context, name string) (*responsible.Responsible, error) {
	var out envelope[*responsible.Responsible]
	if err := c.do(ctx, http.MethodPost, "/responsibles", nil, map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) UpdateResponsible(ctx context.Context, id, name string) (*responsible.Responsible, error) {
	var out envelope[*responsible.Responsible]
	if err := c.do(ctx, http.MethodPut, "/responsibles/"+url.PathEscape(id), nil, map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) DeleteResponsible(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/responsibles/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListExpenses(ctx context.Context, q ExpenseQuery) ([]expense.Expense, error) {
	params := url.Values{}
	if q.From != "" {
		params.Set("from", q.From)
	}
	if q.To != "" {
		params.Set("to", q.To)
	}
	if q.ResponsibleID != "" {
		params.Set("responsibleId", q.ResponsibleID)
	}

	var out envelope[[]expense.Expense]
	if err := c.do(ctx, http.MethodGet, "/expenses", params, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateExpense(ctx context.Context, req ExpenseRequest) (*expense.Expense, error) {
	var out envelope[*expense.Expense]
	if err := c.do(ctx, http.MethodPost, "/expenses", nil, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) UpdateExpense(ctx context.Context, id string, req ExpenseRequest) (*expense.Expense, error) {
	var out envelope[*expense.Expense]
	if err := c.do(ctx, http.MethodPut, "/expenses/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) SetExpenseStatus(ctx context.Context, id, status string) (*expense.Expense, error) {
	var out envelope[*expense.Expense]
	path := "/expenses/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, nil, map[string]string{"status": status}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) Dashboard(ctx context.Context, from, to string) (*dashboard.Summary, error) {
	params := url.Values{}
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}

	var out envelope[*dashboard.Summary]
	if err := c.do(ctx, http.MethodGet, "/dashboard", params, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
		c.logger.Debug("api returned error", "method", method, "path", path, "status_code", resp.StatusCode, "error", apiErr.Message)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func errorMessage(resp *http.Response) string {
	fallback := fmt.Sprintf("HTTP %d", resp.StatusCode)

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fallback
	}
	msg, ok := body["error"].(string)
	if !ok || strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
