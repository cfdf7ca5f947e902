// Package client is a Go client for the ride-hailing REST API, plus a Watcher that
// follows a ride request the way the mobile app does.
package client

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

	"ride-hailing/internal/models"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response. Message is the server's error text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// WithHTTPClient swaps the underlying client, e.g. for httptest servers.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// SetToken sets the bearer credential used by authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

type authPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates a rider account and keeps the returned credential.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var out authPayload
	body := models.RegisterUserRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/users/register", body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out.User, nil
}

// Login authenticates a rider and keeps the returned credential.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var out authPayload
	if err := c.do(ctx, http.MethodPost, "/api/users/login", models.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out.User, nil
}

func (c *Client) FareEstimate(ctx context.Context, distanceMeters, durationSeconds float64) ([]models.FareQuote, error) {
	q := url.Values{}
	q.Set("distance", fmt.Sprint(distanceMeters))
	q.Set("duration", fmt.Sprint(durationSeconds))
	var out []models.FareQuote
	if err := c.do(ctx, http.MethodGet, "/api/rides/fare-estimate?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateRideRequest(ctx context.Context, req models.CreateRideRequestRequest) (*models.CreateRideRequestResponse, error) {
	var out models.CreateRideRequestResponse
	if err := c.do(ctx, http.MethodPost, "/api/rides/ride-requests", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetRideRequest(ctx context.Context, id string) (*models.RideRequestView, error) {
	return c.rideRequestCall(ctx, http.MethodGet, id, "", nil)
}

func (c *Client) CancelRideRequest(ctx context.Context, id string) (*models.RideRequestView, error) {
	return c.rideRequestCall(ctx, http.MethodPost, id, "/cancel", nil)
}

func (c *Client) StartRideRequest(ctx context.Context, id string) (*models.RideRequestView, error) {
	return c.rideRequestCall(ctx, http.MethodPost, id, "/start", nil)
}

func (c *Client) CompleteRideRequest(ctx context.Context, id string) (*models.RideRequestView, error) {
	return c.rideRequestCall(ctx, http.MethodPost, id, "/complete", nil)
}

func (c *Client) PayRideRequest(ctx context.Context, id, method string) (*models.RideRequestView, error) {
	return c.rideRequestCall(ctx, http.MethodPost, id, "/pay", models.PayRideRequestRequest{PaymentMethod: method})
}

func (c *Client) History(ctx context.Context) ([]models.RideRequestView, error) {
	var out models.RideHistoryResponse
	if err := c.do(ctx, http.MethodGet, "/api/rides/ride-requests/history", nil, &out); err != nil {
		return nil, err
	}
	return out.Rides, nil
}

func (c *Client) rideRequestCall(ctx context.Context, method, id, action string, body any) (*models.RideRequestView, error) {
	var out models.RideRequestView
	if err := c.do(ctx, method, "/api/rides/ride-requests/"+url.PathEscape(id)+action, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends body as JSON and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var e models.ErrorResponse
		if json.Unmarshal(raw, &e) != nil || e.Message == "" {
			e.Message = strings.TrimSpace(string(raw))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Message}
	}

	if out == nil {
		return nil
	}
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("client: decode envelope: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("client: decode data: %w", err)
	}
	return nil
}
