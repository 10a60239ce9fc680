// Package mockapi is a self-contained stand-in for the StorePulse backend.
// It speaks the same REST/JSON contract as the real service (bearer auth,
// Laravel-style 422 validation bodies, the dashboard and insight payloads)
// with all state held in memory, so the client can be developed and
// integration-tested without the real backend.
package mockapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"storepulse/internal/logging"
)

const defaultTokenTTL = 24 * time.Hour

// account is one registered merchant and their connection state.
type account struct {
	id           int64
	name         string
	email        string
	passwordHash []byte
	createdAt    time.Time

	shopDomain string // "" until Shopify is connected
	gaLinked   bool
	gaProperty string // "" until a property is chosen
}

// Server is the in-memory backend.
type Server struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	nextID   int64
	revoked  map[string]struct{}

	secret   []byte
	tokenTTL time.Duration
	router   *mux.Router
	log      logging.Logger
}

// ServerOption customizes a Server.
type ServerOption func(*Server)

// WithSecret sets the JWT signing secret.
func WithSecret(secret []byte) ServerOption {
	return func(s *Server) { s.secret = secret }
}

// WithTokenTTL sets how long minted tokens stay valid.
func WithTokenTTL(ttl time.Duration) ServerOption {
	return func(s *Server) { s.tokenTTL = ttl }
}

// WithServerLogger sets the request logger.
func WithServerLogger(log logging.Logger) ServerOption {
	return func(s *Server) { s.log = log }
}

// NewServer builds the backend with its routes mounted under /api/v1.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		accounts: make(map[string]*account),
		revoked:  make(map[string]struct{}),
		nextID:   1,
		secret:   []byte("storepulse-dev-secret"),
		tokenTTL: defaultTokenTTL,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)
	authed.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	authed.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	authed.HandleFunc("/inventory-insights", s.handleInsights).Methods(http.MethodGet)
	authed.HandleFunc("/connect/shopify/token", s.handleConnectShopify).Methods(http.MethodPost)
	authed.HandleFunc("/connect/google", s.handleGoogleAuthURL).Methods(http.MethodGet)
	authed.HandleFunc("/connect/google/callback", s.handleGoogleCallback).Methods(http.MethodPost)
	authed.HandleFunc("/connect/google/property", s.handleGoogleProperty).Methods(http.MethodPut)

	s.router = r
	return s
}

// Router exposes the handler for http.Server or httptest.
func (s *Server) Router() http.Handler { return s.router }

type ctxKey string

const accountKey ctxKey = "account"

// authMiddleware validates the bearer token and 401s with a JSON body on any
// failure, including revoked tokens. The matched account travels down in the
// request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
			return
		}

		s.mu.Lock()
		_, isRevoked := s.revoked[raw]
		s.mu.Unlock()
		if isRevoked {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
			return
		}

		uid, err := userIDFromToken(raw, s.secret)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
			return
		}

		acc := s.accountByID(uid)
		if acc == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
			return
		}

		s.log.Debug(r.Context(), "authorized request", "method", r.Method, "path", r.URL.Path, "request_id", r.Header.Get("X-Request-Id"))
		next.ServeHTTP(w, requestWithAccount(r, acc))
	})
}

func requestWithAccount(r *http.Request, acc *account) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), accountKey, acc))
}

func accountFrom(r *http.Request) *account {
	acc, _ := r.Context().Value(accountKey).(*account)
	return acc
}

func (s *Server) accountByID(id int64) *account {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.id == id {
			return acc
		}
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request body."})
		return
	}

	fields := map[string][]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = append(fields["name"], "The name field is required.")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fields["email"] = append(fields["email"], "The email must be a valid email address.")
	}
	if len(req.Password) < 8 {
		fields["password"] = append(fields["password"], "The password must be at least 8 characters.")
	}
	if req.Password != req.PasswordConfirmation {
		fields["password"] = append(fields["password"], "The password confirmation does not match.")
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Email]; exists {
		fields["email"] = append(fields["email"], "The email has already been taken.")
	}
	if len(fields) > 0 {
		s.mu.Unlock()
		writeValidationError(w, fields)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Could not hash password."})
		return
	}

	acc := &account{
		id:           s.nextID,
		name:         req.Name,
		email:        req.Email,
		passwordHash: hash,
		createdAt:    time.Now().UTC(),
	}
	s.nextID++
	s.accounts[req.Email] = acc
	s.mu.Unlock()

	s.log.Info(r.Context(), "account registered", "email", acc.email)
	writeJSON(w, http.StatusCreated, userJSON(acc))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request body."})
		return
	}

	s.mu.Lock()
	acc := s.accounts[req.Email]
	s.mu.Unlock()

	if acc == nil || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		writeValidationError(w, map[string][]string{
			"email": {"These credentials do not match our records."},
		})
		return
	}

	token, err := generateToken(acc.id, s.secret, s.tokenTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Could not issue token."})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  userJSON(acc),
		"token": token,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	s.revoked[raw] = struct{}{}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out."})
}

type connectShopifyRequest struct {
	ShopDomain  string `json:"shop_domain"`
	AccessToken string `json:"access_token"`
}

func (s *Server) handleConnectShopify(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r)

	var req connectShopifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request body."})
		return
	}

	fields := map[string][]string{}
	if !strings.HasSuffix(req.ShopDomain, ".myshopify.com") {
		fields["shop_domain"] = append(fields["shop_domain"], "The shop domain must end with .myshopify.com.")
	}
	if !strings.HasPrefix(req.AccessToken, "shpat_") {
		fields["access_token"] = append(fields["access_token"], "The access token must be a Shopify Admin API token.")
	}
	if len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	s.mu.Lock()
	acc.shopDomain = req.ShopDomain
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Shopify store connected."})
}

func (s *Server) handleGoogleAuthURL(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r)
	url := fmt.Sprintf(
		"https://accounts.google.com/o/oauth2/v2/auth?client_id=mock&response_type=code&scope=analytics.readonly&state=%d",
		acc.id,
	)
	writeJSON(w, http.StatusOK, map[string]string{"authorization_url": url})
}

type googleCallbackRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r)

	var req googleCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeValidationError(w, map[string][]string{"code": {"The code field is required."}})
		return
	}

	s.mu.Lock()
	acc.gaLinked = true
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Google account connected."})
}

type googlePropertyRequest struct {
	PropertyID string `json:"property_id"`
}

func (s *Server) handleGoogleProperty(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r)

	var req googlePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PropertyID == "" {
		writeValidationError(w, map[string][]string{"property_id": {"The property id field is required."}})
		return
	}

	s.mu.Lock()
	if !acc.gaLinked {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Connect Google Analytics first."})
		return
	}
	acc.gaProperty = req.PropertyID
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "GA4 property saved."})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r)
	period := normalizePeriod(r.URL.Query().Get("period"))

	s.mu.Lock()
	payload := s.dashboardFor(acc, period)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r)
	period := normalizePeriod(r.URL.Query().Get("period"))

	s.mu.Lock()
	insights := s.insightsFor(acc, period)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"insights": insights})
}

func userJSON(acc *account) map[string]any {
	created := acc.createdAt.Format(time.RFC3339)
	return map[string]any{
		"id":         acc.id,
		"name":       acc.name,
		"email":      acc.email,
		"created_at": created,
		"updated_at": created,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeValidationError(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": "The given data was invalid.",
		"errors":  fields,
	})
}
