package services

import (
	"context"

	"storepulse/internal/client/models"
)

// fakeAPI implements api.Client with preset outputs and captured inputs.
type fakeAPI struct {
	registerUser *models.User
	registerErr  error

	loginUser  *models.User
	loginToken string
	loginErr   error
	loginEmail string

	logoutErr    error
	logoutCalled bool

	dashboardData  *models.DashboardData
	dashboardErr   error
	dashboardCalls int

	insights    []models.InventoryInsight
	insightsErr error

	message    string
	connectErr error

	pingErr error
}

func (f *fakeAPI) Register(_ context.Context, name, email, password, confirmation string) (*models.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*models.User, string, error) {
	f.loginEmail = email
	return f.loginUser, f.loginToken, f.loginErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}

func (f *fakeAPI) Dashboard(context.Context, string) (*models.DashboardData, error) {
	f.dashboardCalls++
	return f.dashboardData, f.dashboardErr
}

func (f *fakeAPI) InventoryInsights(context.Context, string) ([]models.InventoryInsight, error) {
	return f.insights, f.insightsErr
}

func (f *fakeAPI) ConnectShopify(context.Context, string, string) (string, error) {
	return f.message, f.connectErr
}

func (f *fakeAPI) GoogleAuthURL(context.Context) (string, error) {
	return f.message, f.connectErr
}

func (f *fakeAPI) GoogleCallback(context.Context, string) (string, error) {
	return f.message, f.connectErr
}

func (f *fakeAPI) SetGoogleProperty(context.Context, string) (string, error) {
	return f.message, f.connectErr
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }
