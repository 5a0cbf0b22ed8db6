package domain

// DailyMetric is one aggregated dashboard row: total sales and total ad spend
// for a calendar date, with the derived return on ad spend.
type DailyMetric struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
	Spend float64 `json:"spend"`
	ROAS  float64 `json:"roas"`
}

// MetricsSummary holds the headline KPIs over the whole aggregated window.
type MetricsSummary struct {
	TotalSales float64 `json:"total_sales"`
	TotalSpend float64 `json:"total_spend"`
	TotalROAS  float64 `json:"total_roas"`
	Days       int     `json:"days"`
}
