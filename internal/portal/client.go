package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/models"
	"apartment-be-svc/internal/models/response"
)

// MaxPageSize is the largest page the API serves
const MaxPageSize = 1000

// InvoiceQuery is a zero-based page request over invoices
type InvoiceQuery struct {
	Page   int
	Size   int
	Search string
	Status billing.InvoiceStatus
}

func (q InvoiceQuery) validate() error {
	if q.Page < 0 {
		return billing.NewValidationError("page must not be negative")
	}
	if q.Size < 1 || q.Size > MaxPageSize {
		return billing.NewValidationError(fmt.Sprintf("page size must be between 1 and %d", MaxPageSize))
	}
	if q.Status != "" && !q.Status.Valid() {
		return billing.NewValidationError(fmt.Sprintf("unknown invoice status %q", q.Status))
	}
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type pageTotal struct {
	TotalElements int64 `json:"totalElements"`
}

// Client talks to the portal REST API. It never retries: every failure is
// returned to the caller as a *billing.Error.
type Client struct {
	http *resty.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the API rooted at baseURL, e.g. http://host/api/v1
func NewClient(baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient}
}

// SetToken sets the bearer token sent with every request
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends one request, unwraps the envelope into out and returns the envelope message
func (c *Client) do(ctx context.Context, method, path string, prepare func(*resty.Request), out interface{}) (string, error) {
	var env envelope
	req := c.http.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&env)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if prepare != nil {
		prepare(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return "", &billing.Error{
			Kind:    billing.NetworkFailure,
			Message: fmt.Sprintf("%s %s failed: %v", method, path, err),
			Err:     err,
		}
	}

	if resp.IsError() {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = resp.Status()
		}
		return "", &billing.Error{
			Kind:       billing.ServerRejection,
			Message:    msg,
			StatusCode: resp.StatusCode(),
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", &billing.Error{
				Kind:       billing.ServerRejection,
				Message:    fmt.Sprintf("malformed response from %s: %v", path, err),
				StatusCode: resp.StatusCode(),
				Err:        err,
			}
		}
	}

	return env.Message, nil
}

// Authenticate logs in and keeps the access token for later calls
func (c *Client) Authenticate(ctx context.Context, email, password string) (*billing.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, billing.NewValidationError("email and password are required")
	}

	var login response.LoginResponse
	body := map[string]string{"email": email, "password": password}
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", func(r *resty.Request) { r.SetBody(body) }, &login); err != nil {
		return nil, err
	}

	c.SetToken(login.AccessToken)
	return &login.User, nil
}

// ListInvoices returns one page of invoices
func (c *Client) ListInvoices(ctx context.Context, q InvoiceQuery) (*billing.InvoicePage, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	params := map[string]string{
		"page": strconv.Itoa(q.Page),
		"size": strconv.Itoa(q.Size),
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.Status != "" {
		params["status"] = string(q.Status)
	}

	var page billing.InvoicePage
	if _, err := c.do(ctx, http.MethodGet, "/invoices", func(r *resty.Request) { r.SetQueryParams(params) }, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetInvoiceByID returns an invoice with its line items
func (c *Client) GetInvoiceByID(ctx context.Context, id uint) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/invoices/%d", id), nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// SettleInvoice settles one invoice and returns the server's confirmation message
func (c *Client) SettleInvoice(ctx context.Context, id uint) (string, error) {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/invoices/%d/settle", id), nil, nil)
}

// ListHouseholds returns every household
func (c *Client) ListHouseholds(ctx context.Context) ([]billing.Household, error) {
	var households []billing.Household
	if _, err := c.do(ctx, http.MethodGet, "/households", nil, &households); err != nil {
		return nil, err
	}
	return households, nil
}

// GetHouseholdByID returns one household
func (c *Client) GetHouseholdByID(ctx context.Context, id uint) (*billing.Household, error) {
	var household billing.Household
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/households/%d", id), nil, &household); err != nil {
		return nil, err
	}
	return &household, nil
}

// CountPendingRegistrations returns how many registration requests await review
func (c *Client) CountPendingRegistrations(ctx context.Context) (int64, error) {
	params := map[string]string{"status": string(models.RegistrationPending), "page": "0", "size": "1"}

	var page pageTotal
	if _, err := c.do(ctx, http.MethodGet, "/registrations", func(r *resty.Request) { r.SetQueryParams(params) }, &page); err != nil {
		return 0, err
	}
	return page.TotalElements, nil
}

// ListFees returns all fee definitions
func (c *Client) ListFees(ctx context.Context) ([]models.FeeDefinition, error) {
	var fees []models.FeeDefinition
	if _, err := c.do(ctx, http.MethodGet, "/fees", nil, &fees); err != nil {
		return nil, err
	}
	return fees, nil
}

// CreateFee creates a fee definition
func (c *Client) CreateFee(ctx context.Context, fee models.FeeDefinition) (*models.FeeDefinition, error) {
	var created models.FeeDefinition
	if _, err := c.do(ctx, http.MethodPost, "/fees", func(r *resty.Request) { r.SetBody(fee) }, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateFee replaces a fee definition
func (c *Client) UpdateFee(ctx context.Context, id uint, fee models.FeeDefinition) (*models.FeeDefinition, error) {
	var updated models.FeeDefinition
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/fees/%d", id), func(r *resty.Request) { r.SetBody(fee) }, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteFee deletes a fee definition
func (c *Client) DeleteFee(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/fees/%d", id), nil, nil)
	return err
}
