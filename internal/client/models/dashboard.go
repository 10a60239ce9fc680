package models

// SalesTrendPoint is one day of paid sales.
type SalesTrendPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Sales float64 `json:"sales"`
}

// ShopifyMetrics holds store-side KPIs for the selected period.
type ShopifyMetrics struct {
	ShopName          *string           `json:"shop_name"`
	TotalOrdersPeriod *int64            `json:"total_orders_period"`
	PaidSalesPeriod   *float64          `json:"paid_sales_period"`
	AOVPeriod         *float64          `json:"aov_period"`
	SalesTrendPeriod  []SalesTrendPoint `json:"sales_trend_period"`
}

// TrafficSource is a GA4 channel with its session count.
type TrafficSource struct {
	Channel  string `json:"channel"`
	Sessions int64  `json:"sessions"`
}

// GAMetrics holds Google Analytics KPIs for the selected period. Error is a
// backend-supplied message when the GA4 property exists but reporting failed.
type GAMetrics struct {
	SessionsPeriod       *int64          `json:"sessions_period"`
	ActiveUsersPeriod    *int64          `json:"active_users_period"`
	TrafficSourcesPeriod []TrafficSource `json:"traffic_sources_period"`
	Error                *string         `json:"error,omitempty"`
}

// CalculatedMetrics holds KPIs the backend derives from both sources.
type CalculatedMetrics struct {
	ConversionRatePeriod *float64 `json:"conversion_rate_period"`
}

// Connections reports which external accounts are linked.
type Connections struct {
	ShopifyConnected bool `json:"shopify_connected"`
	GA4Connected     bool `json:"ga4_connected"`
	GA4PropertySet   bool `json:"ga4_property_set"`
}

// PeriodInfo describes the reporting window the metrics cover.
type PeriodInfo struct {
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DashboardData is the full dashboard payload. Metric groups are nil until
// the corresponding account is connected.
type DashboardData struct {
	UserName          string             `json:"user_name"`
	Connections       Connections        `json:"connections"`
	ShopifyMetrics    *ShopifyMetrics    `json:"shopify_metrics"`
	GAMetrics         *GAMetrics         `json:"ga_metrics"`
	CalculatedMetrics *CalculatedMetrics `json:"calculated_metrics"`
	Period            PeriodInfo         `json:"period"`
}
