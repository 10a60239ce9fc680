package cli

import "context"

var validPeriods = map[string]bool{"7d": true, "30d": true, "90d": true}

// dashboardCmd fetches and renders the KPI dashboard for the current period.
func (a *App) dashboardCmd(ctx context.Context) error {
	res, err := a.metrics.Dashboard(ctx, a.period)
	if err != nil {
		printRequestError(err)
		return err
	}
	printlnFn(renderDashboard(res.Data, res.Cached, res.FetchedAt))
	return nil
}

// insightsCmd fetches and renders the inventory alert table.
func (a *App) insightsCmd(ctx context.Context) error {
	res, err := a.metrics.Insights(ctx, a.period)
	if err != nil {
		printRequestError(err)
		return err
	}
	printlnFn(renderInsights(res.Insights, res.Cached, res.FetchedAt))
	return nil
}

// periodCmd switches the reporting window used by dashboard and insights.
func (a *App) periodCmd(args []string) {
	if len(args) != 1 || !validPeriods[args[0]] {
		printlnFn("Usage: period <7d|30d|90d>")
		return
	}
	a.period = args[0]
	printlnFn("Period set to " + a.period + ".")
}
