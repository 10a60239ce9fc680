package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storepulse/internal/client/api"
	"storepulse/internal/client/models"
	"storepulse/internal/client/store"
	"storepulse/internal/logging"
)

// DashboardResult is a dashboard payload plus its provenance. Cached is true
// when the backend was unreachable and the data came from the local snapshot
// taken at FetchedAt.
type DashboardResult struct {
	Data      *models.DashboardData
	Cached    bool
	FetchedAt time.Time
}

// InsightsResult is the inventory alert list plus provenance, same contract
// as DashboardResult.
type InsightsResult struct {
	Insights  []models.InventoryInsight
	Cached    bool
	FetchedAt time.Time
}

// MetricsService fetches analytics and drives the account-connection flows.
type MetricsService interface {
	Dashboard(ctx context.Context, period string) (*DashboardResult, error)
	Insights(ctx context.Context, period string) (*InsightsResult, error)
	ConnectShopify(ctx context.Context, shopDomain, accessToken string) (string, error)
	GoogleAuthURL(ctx context.Context) (string, error)
	CompleteGoogle(ctx context.Context, code string) (string, error)
	SetGoogleProperty(ctx context.Context, propertyID string) (string, error)
}

// SnapshotCache is the slice of the local store the fallback needs.
type SnapshotCache interface {
	Put(ctx context.Context, kind, period string, payload []byte, fetchedAt time.Time) error
	Get(ctx context.Context, kind, period string) ([]byte, time.Time, error)
}

type metricsService struct {
	api   api.Client
	cache SnapshotCache
	now   func() time.Time
	log   logging.Logger
}

// NewMetricsService binds the API client and the snapshot cache (may be nil
// to disable offline fallback).
func NewMetricsService(client api.Client, cache SnapshotCache, log logging.Logger) MetricsService {
	if log == nil {
		log = logging.Nop()
	}
	return &metricsService{api: client, cache: cache, now: time.Now, log: log}
}

// Dashboard fetches live KPIs, refreshing the snapshot cache on success.
// When the backend is unreachable it falls back to the last cached payload
// for the same period; any other failure propagates untouched.
func (m *metricsService) Dashboard(ctx context.Context, period string) (*DashboardResult, error) {
	data, err := m.api.Dashboard(ctx, period)
	if err == nil {
		m.cachePayload(ctx, store.SnapshotDashboard, period, data)
		return &DashboardResult{Data: data, FetchedAt: m.now()}, nil
	}
	if !errors.Is(err, api.ErrUnavailable) || m.cache == nil {
		return nil, err
	}

	payload, fetchedAt, cacheErr := m.cache.Get(ctx, store.SnapshotDashboard, period)
	if cacheErr != nil {
		return nil, err
	}
	var cached models.DashboardData
	if jsonErr := json.Unmarshal(payload, &cached); jsonErr != nil {
		m.log.Warn(ctx, "cached dashboard snapshot is unreadable", "error", jsonErr)
		return nil, err
	}
	m.log.Info(ctx, "backend unreachable, serving cached dashboard", "period", period, "fetched_at", fetchedAt)
	return &DashboardResult{Data: &cached, Cached: true, FetchedAt: fetchedAt}, nil
}

// Insights mirrors Dashboard's fetch-then-fallback behavior.
func (m *metricsService) Insights(ctx context.Context, period string) (*InsightsResult, error) {
	insights, err := m.api.InventoryInsights(ctx, period)
	if err == nil {
		m.cachePayload(ctx, store.SnapshotInsights, period, insights)
		return &InsightsResult{Insights: insights, FetchedAt: m.now()}, nil
	}
	if !errors.Is(err, api.ErrUnavailable) || m.cache == nil {
		return nil, err
	}

	payload, fetchedAt, cacheErr := m.cache.Get(ctx, store.SnapshotInsights, period)
	if cacheErr != nil {
		return nil, err
	}
	var cached []models.InventoryInsight
	if jsonErr := json.Unmarshal(payload, &cached); jsonErr != nil {
		m.log.Warn(ctx, "cached insights snapshot is unreadable", "error", jsonErr)
		return nil, err
	}
	return &InsightsResult{Insights: cached, Cached: true, FetchedAt: fetchedAt}, nil
}

// cachePayload refreshes the snapshot best-effort; a cache write failure
// must never fail the live fetch that produced the data.
func (m *metricsService) cachePayload(ctx context.Context, kind, period string, v any) {
	if m.cache == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		m.log.Warn(ctx, "snapshot marshal failed", "kind", kind, "error", err)
		return
	}
	if err := m.cache.Put(ctx, kind, period, payload, m.now()); err != nil {
		m.log.Warn(ctx, "snapshot cache write failed", "kind", kind, "error", err)
	}
}

func (m *metricsService) ConnectShopify(ctx context.Context, shopDomain, accessToken string) (string, error) {
	return m.api.ConnectShopify(ctx, shopDomain, accessToken)
}

func (m *metricsService) GoogleAuthURL(ctx context.Context) (string, error) {
	return m.api.GoogleAuthURL(ctx)
}

func (m *metricsService) CompleteGoogle(ctx context.Context, code string) (string, error) {
	return m.api.GoogleCallback(ctx, code)
}

func (m *metricsService) SetGoogleProperty(ctx context.Context, propertyID string) (string, error) {
	return m.api.SetGoogleProperty(ctx, propertyID)
}
