package api

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

	"github.com/google/uuid"

	"storepulse/internal/client/models"
	"storepulse/internal/logging"
)

// RequestHook runs immediately before a request is sent.
type RequestHook func(*http.Request)

// ResponseHook runs on every received response, before status mapping.
// Hooks must not consume the response body.
type ResponseHook func(*http.Response)

// maxResponseBody caps how much of a response is read into memory.
const maxResponseBody = 4 << 20

// HTTPClient implements Client over REST/JSON.
//
// Every call goes through the same pipeline: request hooks (fresh token read
// and bearer header, request id), send, response hooks (global 401 policy),
// status mapping, JSON decode. Call sites never repeat auth logic.
type HTTPClient struct {
	baseURL        string
	hc             *http.Client
	sessions       SessionStore
	onUnauthorized func()
	reqHooks       []RequestHook
	respHooks      []ResponseHook
	log            logging.Logger
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient swaps the underlying http.Client (timeouts, transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.hc.Timeout = d }
}

// WithUnauthorizedHandler registers the navigation side effect invoked after
// a 401 has cleared the session, e.g. switching the UI to the sign-in screen.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

// WithLogger sets the pipeline logger.
func WithLogger(log logging.Logger) Option {
	return func(c *HTTPClient) { c.log = log }
}

// WithRequestHook appends an extra pre-request hook.
func WithRequestHook(h RequestHook) Option {
	return func(c *HTTPClient) { c.reqHooks = append(c.reqHooks, h) }
}

// WithResponseHook appends an extra post-response hook.
func WithResponseHook(h ResponseHook) Option {
	return func(c *HTTPClient) { c.respHooks = append(c.respHooks, h) }
}

// NewHTTPClient builds the pipeline around baseURL (including any path
// prefix, e.g. "http://localhost:8000/api/v1"). The sessions store is read
// per request, never captured, so a logout during an in-flight sequence is
// honored by the next call.
func NewHTTPClient(baseURL string, sessions SessionStore, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		hc:       &http.Client{Timeout: 15 * time.Second},
		sessions: sessions,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reqHooks = append([]RequestHook{c.authorize, tagRequest}, c.reqHooks...)
	c.respHooks = append([]ResponseHook{c.enforceAuthPolicy}, c.respHooks...)
	return c
}

// authorize attaches the bearer header when a token is present. The token is
// read from the store at send time; requests issued while logged out (login,
// register) go out unmodified through the same pipeline.
func (c *HTTPClient) authorize(req *http.Request) {
	if tok := c.sessions.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

func tagRequest(req *http.Request) {
	req.Header.Set("X-Request-Id", uuid.NewString())
}

// enforceAuthPolicy implements the global 401 rule: clear the session and
// hand navigation to the sign-in screen. It runs for every endpoint and does
// not suppress the error the caller receives.
func (c *HTTPClient) enforceAuthPolicy(resp *http.Response) {
	if resp.StatusCode != http.StatusUnauthorized {
		return
	}
	c.log.Warn(resp.Request.Context(), "authentication failure, clearing session",
		"method", resp.Request.Method, "url", resp.Request.URL.Path)
	c.sessions.Logout()
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	for _, hook := range c.reqHooks {
		hook(req)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	for _, hook := range c.respHooks {
		hook(resp)
	}

	if err := mapStatus(resp.StatusCode, data); err != nil {
		return err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// errorBody is the JSON shape the backend uses for non-2xx responses.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// mapStatus converts a non-2xx status into the package's error taxonomy.
// The 422 validation map is passed through unaltered for page-level display.
func mapStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	if status == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	var eb errorBody
	_ = json.Unmarshal(body, &eb) // a non-JSON error body just yields an empty message

	return &Error{Status: status, Message: eb.Message, Fields: eb.Errors}
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password, passwordConfirmation string) (*models.User, error) {
	body := registerRequest{Name: name, Email: email, Password: password, PasswordConfirmation: passwordConfirmation}
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/register", nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, "", err
	}
	return resp.User, resp.Token, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, nil)
}

func (c *HTTPClient) Dashboard(ctx context.Context, period string) (*models.DashboardData, error) {
	var data models.DashboardData
	q := url.Values{"period": {period}}
	if err := c.do(ctx, http.MethodGet, "/dashboard", q, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

type insightsResponse struct {
	Insights []models.InventoryInsight `json:"insights"`
}

func (c *HTTPClient) InventoryInsights(ctx context.Context, period string) ([]models.InventoryInsight, error) {
	var resp insightsResponse
	q := url.Values{"period": {period}}
	if err := c.do(ctx, http.MethodGet, "/inventory-insights", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Insights, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

type connectShopifyRequest struct {
	ShopDomain  string `json:"shop_domain"`
	AccessToken string `json:"access_token"`
}

func (c *HTTPClient) ConnectShopify(ctx context.Context, shopDomain, accessToken string) (string, error) {
	var resp messageResponse
	body := connectShopifyRequest{ShopDomain: shopDomain, AccessToken: accessToken}
	if err := c.do(ctx, http.MethodPost, "/connect/shopify/token", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type googleAuthResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

func (c *HTTPClient) GoogleAuthURL(ctx context.Context) (string, error) {
	var resp googleAuthResponse
	if err := c.do(ctx, http.MethodGet, "/connect/google", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.AuthorizationURL, nil
}

type googleCallbackRequest struct {
	Code string `json:"code"`
}

func (c *HTTPClient) GoogleCallback(ctx context.Context, code string) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/connect/google/callback", nil, googleCallbackRequest{Code: code}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type googlePropertyRequest struct {
	PropertyID string `json:"property_id"`
}

func (c *HTTPClient) SetGoogleProperty(ctx context.Context, propertyID string) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPut, "/connect/google/property", nil, googlePropertyRequest{PropertyID: propertyID}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}
