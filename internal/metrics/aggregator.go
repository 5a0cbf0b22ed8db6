// Package metrics turns raw orders and ad spend into the dashboard series.
//
// Everything here is a pure computation over slices: the series is recomputed
// from source data on every call and never persisted, so there is no state to
// go stale.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
)

// Aggregate joins daily sales and daily spend by calendar date.
//
// The join is an outer join: a date present in only one source still appears
// in the result with the missing side at zero. Rows come back sorted by date
// ascending. ROAS is sales/spend per date, defined as 0 when that date has no
// spend (never a division fault).
func Aggregate(orders []domain.Order, spend []domain.AdSpendRecord) []domain.DailyMetric {
	sales := make(map[string]float64)
	for _, o := range orders {
		sales[o.Date] += o.Amount
	}
	spent := make(map[string]float64)
	for _, a := range spend {
		spent[a.Date] += a.Spend
	}

	dates := make(map[string]struct{}, len(sales)+len(spent))
	for d := range sales {
		dates[d] = struct{}{}
	}
	for d := range spent {
		dates[d] = struct{}{}
	}

	out := make([]domain.DailyMetric, 0, len(dates))
	for d := range dates {
		row := domain.DailyMetric{Date: d, Sales: sales[d], Spend: spent[d]}
		if row.Spend > 0 {
			row.ROAS = row.Sales / row.Spend
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Summarize computes the headline KPIs over the whole series.
// TotalROAS falls back to 0 when there is no spend at all.
func Summarize(rows []domain.DailyMetric) domain.MetricsSummary {
	var s domain.MetricsSummary
	for _, r := range rows {
		s.TotalSales += r.Sales
		s.TotalSpend += r.Spend
	}
	if s.TotalSpend > 0 {
		s.TotalROAS = s.TotalSales / s.TotalSpend
	}
	s.Days = len(rows)
	return s
}

// Window returns the most recent n rows of an already date-sorted series.
func Window(rows []domain.DailyMetric, n int) []domain.DailyMetric {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}

// FormatTable renders the series as a plain-text table for the strategist
// prompt, one date per line.
func FormatTable(rows []domain.DailyMetric) string {
	var b strings.Builder
	b.WriteString("date        sales      spend      roas\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-11s %-10.2f %-10.2f %.2f\n", r.Date, r.Sales, r.Spend, r.ROAS)
	}
	return b.String()
}
