package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"storepulse/internal/client/models"
	"storepulse/internal/format"
)

const barWidth = 28

// kpiCard renders one boxed KPI.
func kpiCard(title, value string) string {
	content := cardTitleStyle.Render(title) + "\n" + cardValueStyle.Render(value)
	return cardStyle.Render(content)
}

// barRow is one labeled bar in a chart.
type barRow struct {
	label   string
	value   float64
	display string
}

// renderBarChart draws a horizontal bar chart scaled to the largest value.
func renderBarChart(title string, rows []barRow) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("  no data"))
		return b.String()
	}

	labelWidth := 0
	max := 0.0
	for _, r := range rows {
		if w := lipgloss.Width(r.label); w > labelWidth {
			labelWidth = w
		}
		if r.value > max {
			max = r.value
		}
	}

	for _, r := range rows {
		n := 0
		if max > 0 {
			n = int(r.value / max * barWidth)
		}
		if n == 0 && r.value > 0 {
			n = 1
		}
		bar := barStyle.Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "  %-*s %s %s\n", labelWidth, r.label, bar, mutedStyle.Render(r.display))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderConnections is the one-line account status header.
func renderConnections(c models.Connections) string {
	mark := func(ok bool, label string) string {
		if ok {
			return okStyle.Render("● " + label)
		}
		return mutedStyle.Render("○ " + label)
	}
	ga := c.GA4Connected && c.GA4PropertySet
	return mark(c.ShopifyConnected, "Shopify") + "  " + mark(ga, "Google Analytics")
}

// renderDashboard composes the full dashboard view.
func renderDashboard(d *models.DashboardData, cached bool, fetchedAt time.Time) string {
	var b strings.Builder

	name := d.UserName
	if name == "" {
		name = "merchant" // identity may be absent after a partial restore
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — %s", name, d.Period.Label)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s → %s", d.Period.StartDate, d.Period.EndDate)))
	b.WriteString("\n")
	if cached {
		b.WriteString(warnStyle.Render(fmt.Sprintf("offline: showing data cached %s", fetchedAt.Local().Format("2006-01-02 15:04"))))
		b.WriteString("\n")
	}
	b.WriteString(renderConnections(d.Connections))
	b.WriteString("\n\n")

	var cards []string
	if sm := d.ShopifyMetrics; sm != nil {
		cards = append(cards,
			kpiCard("Paid sales", format.Currency(sm.PaidSalesPeriod)),
			kpiCard("Orders", format.Count(sm.TotalOrdersPeriod)),
			kpiCard("Avg. order value", format.Currency(sm.AOVPeriod)),
		)
	}
	if gm := d.GAMetrics; gm != nil {
		cards = append(cards,
			kpiCard("Sessions", format.Count(gm.SessionsPeriod)),
			kpiCard("Active users", format.Count(gm.ActiveUsersPeriod)),
		)
	}
	if cm := d.CalculatedMetrics; cm != nil {
		cards = append(cards, kpiCard("Conversion rate", format.Percent(cm.ConversionRatePeriod, 1)))
	}
	if len(cards) == 0 {
		b.WriteString(mutedStyle.Render("No metrics yet. Connect your store with 'connect-shopify' and 'connect-google'."))
		return b.String()
	}

	// Card rows of up to three.
	for i := 0; i < len(cards); i += 3 {
		end := i + 3
		if end > len(cards) {
			end = len(cards)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
		b.WriteString("\n")
	}

	if sm := d.ShopifyMetrics; sm != nil && len(sm.SalesTrendPeriod) > 0 {
		rows := make([]barRow, 0, len(sm.SalesTrendPeriod))
		for _, p := range sm.SalesTrendPeriod {
			rows = append(rows, barRow{label: p.Date, value: p.Sales, display: format.Amount(p.Sales)})
		}
		b.WriteString("\n")
		b.WriteString(renderBarChart("Sales trend", rows))
		b.WriteString("\n")
	}

	if gm := d.GAMetrics; gm != nil {
		if gm.Error != nil && *gm.Error != "" {
			b.WriteString("\n")
			b.WriteString(warnStyle.Render("Google Analytics: " + *gm.Error))
			b.WriteString("\n")
		} else if len(gm.TrafficSourcesPeriod) > 0 {
			rows := make([]barRow, 0, len(gm.TrafficSourcesPeriod))
			for _, s := range gm.TrafficSourcesPeriod {
				sessions := s.Sessions
				rows = append(rows, barRow{label: s.Channel, value: float64(s.Sessions), display: format.Count(&sessions)})
			}
			b.WriteString("\n")
			b.WriteString(renderBarChart("Traffic sources", rows))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderInsights draws the inventory alert table.
func renderInsights(insights []models.InventoryInsight, cached bool, fetchedAt time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Inventory insights"))
	b.WriteString("\n")
	if cached {
		b.WriteString(warnStyle.Render(fmt.Sprintf("offline: showing data cached %s", fetchedAt.Local().Format("2006-01-02 15:04"))))
		b.WriteString("\n")
	}

	if len(insights) == 0 {
		// The backend returns an empty list both when stock is healthy and
		// when view_item tracking is missing; mirror its wording.
		b.WriteString(mutedStyle.Render("No alerts. If you expected some, check that view_item tracking is active."))
		return b.String()
	}

	headers := []string{"PRODUCT", "STATUS", "STOCK", "VIEWS", "NOTE"}
	rows := make([][]string, 0, len(insights))
	for _, in := range insights {
		rows = append(rows, []string{in.ProductName, insightStatus(in.Status), fmt.Sprintf("%d", in.Stock), fmt.Sprintf("%d", in.Views), in.Message})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Pad plain text first, style whole lines after: fmt's padding counts
	// bytes, so ANSI sequences inside a cell would break the alignment.
	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		return strings.Join(parts, "  ")
	}

	b.WriteString(tableHeaderStyle.Render(line(headers)))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(line(row))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func insightStatus(status string) string {
	switch status {
	case models.InsightStockoutRisk:
		return "stockout risk"
	case models.InsightPromotionCandidate:
		return "promotion candidate"
	default:
		return status
	}
}
