// Package tui contains the terminal clients for the enquiry API: the public
// submission form and the admin dashboard.
package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/service"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []service.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return e.Fields[0].Message
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// Client is a thin HTTP client for the enquiry API. Raw HTTP, no generated
// SDK.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Message string               `json:"message"`
			Errors  []service.FieldError `json:"errors"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Message = errBody.Message
			apiErr.Fields = errBody.Errors
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	var result service.LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// ListEnquiries fetches one page of enquiries.
func (c *Client) ListEnquiries(ctx context.Context, page, limit int, search string) (*model.EnquiryPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if search != "" {
		q.Set("search", search)
	}

	var result model.EnquiryPage
	if err := c.do(ctx, http.MethodGet, "/api/enquiries?"+q.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetEnquiry fetches a single enquiry by id.
func (c *Client) GetEnquiry(ctx context.Context, id string) (*model.Enquiry, error) {
	var result model.Enquiry
	if err := c.do(ctx, http.MethodGet, "/api/enquiries/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateEnquiry submits a new enquiry. This is the public route: no token
// needed.
func (c *Client) CreateEnquiry(ctx context.Context, in service.EnquiryInput) (*model.Enquiry, error) {
	var result model.Enquiry
	if err := c.do(ctx, http.MethodPost, "/api/enquiries", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteEnquiry removes an enquiry permanently.
func (c *Client) DeleteEnquiry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/enquiries/"+url.PathEscape(id), nil, nil)
}
