package mockapi

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"
)

var periodDays = map[string]int{"7d": 7, "30d": 30, "90d": 90}

func normalizePeriod(period string) string {
	if _, ok := periodDays[period]; ok {
		return period
	}
	return "30d"
}

func periodLabel(period string) string {
	return fmt.Sprintf("Last %d days", periodDays[period])
}

// metricsRand returns a generator seeded from the shop domain and period, so
// repeated requests for the same window see the same numbers.
func metricsRand(shopDomain, period string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(shopDomain))
	h.Write([]byte(period))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// dashboardFor builds the dashboard payload in the backend's JSON shape.
// Metric groups stay null until the matching account is connected; the
// calculated block needs both. Callers must hold s.mu.
func (s *Server) dashboardFor(acc *account, period string) map[string]any {
	days := periodDays[period]
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days+1)

	payload := map[string]any{
		"user_name": acc.name,
		"connections": map[string]bool{
			"shopify_connected": acc.shopDomain != "",
			"ga4_connected":     acc.gaLinked,
			"ga4_property_set":  acc.gaProperty != "",
		},
		"shopify_metrics":    nil,
		"ga_metrics":         nil,
		"calculated_metrics": nil,
		"period": map[string]string{
			"label":      periodLabel(period),
			"start_date": start.Format("2006-01-02"),
			"end_date":   end.Format("2006-01-02"),
		},
	}

	var orders, sessions int64

	if acc.shopDomain != "" {
		rng := metricsRand(acc.shopDomain, period)
		orders = int64(days) * (20 + rng.Int63n(30))
		sales := float64(orders) * (35 + rng.Float64()*40)

		trend := make([]map[string]any, 0, days)
		for i := 0; i < days; i++ {
			trend = append(trend, map[string]any{
				"date":  start.AddDate(0, 0, i).Format("2006-01-02"),
				"sales": round2(sales / float64(days) * (0.5 + rng.Float64())),
			})
		}

		payload["shopify_metrics"] = map[string]any{
			"shop_name":           acc.shopDomain,
			"total_orders_period": orders,
			"paid_sales_period":   round2(sales),
			"aov_period":          round2(sales / float64(orders)),
			"sales_trend_period":  trend,
		}
	}

	if acc.gaLinked {
		if acc.gaProperty == "" {
			payload["ga_metrics"] = map[string]any{
				"sessions_period":        nil,
				"active_users_period":    nil,
				"traffic_sources_period": []any{},
				"error":                  "No GA4 property selected.",
			}
		} else {
			rng := metricsRand(acc.gaProperty, period)
			sessions = int64(days) * (400 + rng.Int63n(600))

			channels := []string{"Organic Search", "Direct", "Paid Search", "Social", "Referral"}
			sources := make([]map[string]any, 0, len(channels))
			remaining := sessions
			for i, ch := range channels {
				share := remaining / int64(len(channels)-i)
				n := share/2 + rng.Int63n(share/2+1)
				if i == len(channels)-1 {
					n = remaining
				}
				remaining -= n
				sources = append(sources, map[string]any{"channel": ch, "sessions": n})
			}

			payload["ga_metrics"] = map[string]any{
				"sessions_period":        sessions,
				"active_users_period":    sessions * 7 / 10,
				"traffic_sources_period": sources,
			}
		}
	}

	if acc.shopDomain != "" && acc.gaProperty != "" && sessions > 0 {
		payload["calculated_metrics"] = map[string]any{
			"conversion_rate_period": round2(float64(orders) / float64(sessions) * 100),
		}
	}

	return payload
}

// insightsFor flags products whose stock and traffic are out of balance.
// Requires both connections; otherwise the list is empty, same as the real
// backend when view_item tracking is missing. Callers must hold s.mu.
func (s *Server) insightsFor(acc *account, period string) []map[string]any {
	insights := make([]map[string]any, 0, 4)
	if acc.shopDomain == "" || acc.gaProperty == "" {
		return insights
	}

	rng := metricsRand(acc.shopDomain+acc.gaProperty, period)
	products := []string{"Classic Tee", "Canvas Tote", "Enamel Mug", "Linen Apron", "Desk Poster", "Gift Card"}

	for _, name := range products {
		stock := rng.Int63n(120)
		views := rng.Int63n(2000)
		switch {
		case stock < 10 && views > 800:
			insights = append(insights, map[string]any{
				"productId":   fmt.Sprintf("prod-%d", rng.Int63n(100000)),
				"productName": name,
				"status":      "stockout_risk",
				"stock":       stock,
				"views":       views,
				"message":     fmt.Sprintf("Only %d left with %d views. Restock soon.", stock, views),
			})
		case stock > 80 && views < 200:
			insights = append(insights, map[string]any{
				"productId":   fmt.Sprintf("prod-%d", rng.Int63n(100000)),
				"productName": name,
				"status":      "promotion_candidate",
				"stock":       stock,
				"views":       views,
				"message":     fmt.Sprintf("%d in stock but only %d views. Consider a promotion.", stock, views),
			})
		}
	}
	return insights
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
