package api

import (
	"context"

	"storepulse/internal/client/models"
)

// Client is the API contract the rest of the app programs against.
// The concrete implementation is HTTPClient; tests substitute fakes.
type Client interface {
	// Register creates an account and returns the new profile. Validation
	// failures surface as *Error with the field messages intact.
	Register(ctx context.Context, name, email, password, passwordConfirmation string) (*models.User, error)

	// Login exchanges credentials for the profile and a bearer token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)

	// Logout invalidates the current token server-side.
	Logout(ctx context.Context) error

	// Dashboard fetches the full KPI payload for a period ("7d", "30d", "90d").
	Dashboard(ctx context.Context, period string) (*models.DashboardData, error)

	// InventoryInsights fetches stock/traffic alerts for a period.
	InventoryInsights(ctx context.Context, period string) ([]models.InventoryInsight, error)

	// ConnectShopify stores the shop domain and Admin API token.
	ConnectShopify(ctx context.Context, shopDomain, accessToken string) (string, error)

	// GoogleAuthURL starts the GA4 OAuth flow and returns the consent URL.
	GoogleAuthURL(ctx context.Context) (string, error)

	// GoogleCallback exchanges the OAuth authorization code.
	GoogleCallback(ctx context.Context, code string) (string, error)

	// SetGoogleProperty saves the GA4 property id to report on.
	SetGoogleProperty(ctx context.Context, propertyID string) (string, error)

	// Ping checks backend reachability.
	Ping(ctx context.Context) error
}

// SessionStore is the slice of the session store the pipeline needs: a fresh
// token read before every request, and the logout mutation for the global
// 401 policy.
type SessionStore interface {
	Token() string
	Logout()
}
