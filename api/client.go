// Package api provides the configured HTTP client for the salon-booking
// backend. Every outgoing request carries the current bearer token in the
// "token" header; the header name is a backend compatibility requirement
// and must not be changed to the Authorization scheme.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 15 * time.Second

	// TokenHeader is the backend's bearer token header.
	TokenHeader = "token"

	requestIDHeader = "X-Request-ID"

	maxBodyBytes = 8 << 20
)

// TokenSource supplies the current bearer token. Wired to the session
// store's Token method; an empty return means no token is attached.
type TokenSource func() string

// Invalidator is called when the backend rejects the session token.
// Wired to the session store's Logout.
type Invalidator func(ctx context.Context) error

// Config holds client configuration.
type Config struct {
	// BaseURL is the fixed backend origin (e.g. https://api.glosshouse.app).
	BaseURL string
	// TokenSource supplies the session token. Optional; requests go out
	// unauthenticated when nil or empty.
	TokenSource TokenSource
	// HTTPClient overrides the default client. Optional.
	HTTPClient *http.Client
	// Timeout applies when HTTPClient is nil.
	Timeout time.Duration
	// Limiter throttles outgoing requests. Optional.
	Limiter *rate.Limiter
	// Logger is optional; a discard logger is used when nil.
	Logger logrus.FieldLogger
	// OnSessionInvalid is invoked by the profile-fetch wrapper when the
	// backend reports the token invalid. Optional.
	OnSessionInvalid Invalidator
}

// Client is the backend HTTP client. Per-resource services are thin
// wrappers over its do method.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource TokenSource
	limiter     *rate.Limiter
	log         logrus.FieldLogger
	invalidate  Invalidator

	mu       sync.RWMutex
	override string

	auth          *AuthService
	appointments  *AppointmentsService
	salons        *SalonsService
	stylists      *StylistsService
	services      *ServicesService
	products      *ProductsService
	coupons       *CouponsService
	availability  *AvailabilityService
	attendance    *AttendanceService
	notifications *NotificationsService
}

// New creates a backend client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api: BaseURL must be a valid URL")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}

	c := &Client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		tokenSource: cfg.TokenSource,
		limiter:     cfg.Limiter,
		log:         log,
		invalidate:  cfg.OnSessionInvalid,
	}

	c.auth = &AuthService{client: c}
	c.appointments = &AppointmentsService{client: c}
	c.salons = &SalonsService{client: c}
	c.stylists = &StylistsService{client: c}
	c.services = &ServicesService{client: c}
	c.products = &ProductsService{client: c}
	c.coupons = &CouponsService{client: c}
	c.availability = &AvailabilityService{client: c}
	c.attendance = &AttendanceService{client: c}
	c.notifications = &NotificationsService{client: c}

	return c, nil
}

// Auth returns the auth service.
func (c *Client) Auth() *AuthService { return c.auth }

// Appointments returns the appointments service.
func (c *Client) Appointments() *AppointmentsService { return c.appointments }

// Salons returns the salons service.
func (c *Client) Salons() *SalonsService { return c.salons }

// Stylists returns the stylists service.
func (c *Client) Stylists() *StylistsService { return c.stylists }

// Services returns the salon services catalog service.
func (c *Client) Services() *ServicesService { return c.services }

// Products returns the products service.
func (c *Client) Products() *ProductsService { return c.products }

// Coupons returns the coupons service.
func (c *Client) Coupons() *CouponsService { return c.coupons }

// Availability returns the availability service.
func (c *Client) Availability() *AvailabilityService { return c.availability }

// Attendance returns the attendance service.
func (c *Client) Attendance() *AttendanceService { return c.attendance }

// Notifications returns the notifications service.
func (c *Client) Notifications() *NotificationsService { return c.notifications }

// SetAuthToken makes a token visible to subsequent requests immediately,
// before the session store's own Login transition completes. The
// profile-fetch call that follows a raw login response must already carry
// the new token; this is that seam. Pass the empty string to fall back to
// the token source.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.override = token
	c.mu.Unlock()
}

// currentToken resolves the token for the next request: the explicit
// override wins, then the token source.
func (c *Client) currentToken() string {
	c.mu.RLock()
	override := c.override
	c.mu.RUnlock()
	if override != "" {
		return override
	}
	if c.tokenSource != nil {
		return c.tokenSource()
	}
	return ""
}

// do issues one HTTP call to one fixed path with one fixed verb and
// returns the parsed response envelope. No retries, no response
// transformation; retry policy belongs to the query layer.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*Envelope, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("api: rate limit: %w", err)
		}
	}

	var bodyReader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("api: marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	if token := c.currentToken(); token != "" {
		req.Header.Set(TokenHeader, token)
	}

	start := time.Now()
	httpInFlight.Inc()
	resp, err := c.httpClient.Do(req)
	httpInFlight.Dec()
	if err != nil {
		httpRequests.WithLabelValues(method, path, "error").Inc()
		return nil, fmt.Errorf("api: execute request: %w", err)
	}
	defer resp.Body.Close()

	httpRequests.WithLabelValues(method, path, strconv.Itoa(resp.StatusCode)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"component": "api",
		"method":    method,
		"path":      path,
		"status":    resp.StatusCode,
		"duration":  time.Since(start),
	}).Debug("request completed")

	if resp.StatusCode >= 400 {
		return nil, parseError(body, resp.StatusCode)
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("api: decode envelope: %w", err)
	}
	if !env.Status {
		return nil, &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}

func (c *Client) get(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, payload)
}

func (c *Client) put(ctx context.Context, path string, payload any) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, path, payload)
}

func (c *Client) delete(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}
