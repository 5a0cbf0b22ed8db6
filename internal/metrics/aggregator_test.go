package metrics

import (
	"strings"
	"testing"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
)

func TestAggregateMatchingDate(t *testing.T) {
	orders := []domain.Order{{OrderID: "1", Date: "2024-01-01", Amount: 1000}}
	spend := []domain.AdSpendRecord{{AdID: "a", Date: "2024-01-01", Spend: 500}}

	rows := Aggregate(orders, spend)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.Date != "2024-01-01" || r.Sales != 1000 || r.Spend != 500 {
		t.Errorf("unexpected row: %+v", r)
	}
	if r.ROAS != 2.0 {
		t.Errorf("ROAS = %v, want 2.0", r.ROAS)
	}
}

func TestAggregateOuterJoinKeepsBothSides(t *testing.T) {
	// Non-overlapping date sets: no date may be dropped, the missing side is zero.
	orders := []domain.Order{
		{OrderID: "1", Date: "2024-01-01", Amount: 1000},
		{OrderID: "2", Date: "2024-01-03", Amount: 200},
	}
	spend := []domain.AdSpendRecord{
		{AdID: "a", Date: "2024-01-02", Spend: 300},
		{AdID: "b", Date: "2024-01-04", Spend: 100},
	}

	rows := Aggregate(orders, spend)
	if len(rows) != 4 {
		t.Fatalf("expected union of 4 dates, got %d", len(rows))
	}

	byDate := map[string]domain.DailyMetric{}
	for _, r := range rows {
		byDate[r.Date] = r
	}
	if r := byDate["2024-01-02"]; r.Sales != 0 || r.Spend != 300 {
		t.Errorf("spend-only date row: %+v", r)
	}
	if r := byDate["2024-01-01"]; r.Sales != 1000 || r.Spend != 0 {
		t.Errorf("orders-only date row: %+v", r)
	}

	// Sorted ascending
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Date > rows[i].Date {
			t.Errorf("rows not sorted: %s before %s", rows[i-1].Date, rows[i].Date)
		}
	}
}

func TestAggregateZeroSpendROAS(t *testing.T) {
	orders := []domain.Order{{OrderID: "1", Date: "2024-01-01", Amount: 1000}}
	rows := Aggregate(orders, nil)
	if rows[0].ROAS != 0 {
		t.Errorf("ROAS with zero spend = %v, want 0", rows[0].ROAS)
	}
}

func TestAggregateSumsMultipleOrdersPerDay(t *testing.T) {
	orders := []domain.Order{
		{OrderID: "1", Date: "2024-01-01", Amount: 400},
		{OrderID: "2", Date: "2024-01-01", Amount: 600},
	}
	spend := []domain.AdSpendRecord{{AdID: "a", Date: "2024-01-01", Spend: 250}}
	rows := Aggregate(orders, spend)
	if len(rows) != 1 || rows[0].Sales != 1000 {
		t.Fatalf("expected single summed row of 1000, got %+v", rows)
	}
	if rows[0].ROAS != 4.0 {
		t.Errorf("ROAS = %v, want 4.0", rows[0].ROAS)
	}
}

func TestSummarize(t *testing.T) {
	rows := []domain.DailyMetric{
		{Date: "2024-01-01", Sales: 1000, Spend: 500},
		{Date: "2024-01-02", Sales: 0, Spend: 300},
	}
	s := Summarize(rows)
	if s.TotalSales != 1000 || s.TotalSpend != 800 {
		t.Errorf("totals: %+v", s)
	}
	if s.TotalROAS != 1.25 {
		t.Errorf("TotalROAS = %v, want 1.25", s.TotalROAS)
	}
	if s.Days != 2 {
		t.Errorf("Days = %d, want 2", s.Days)
	}
}

func TestSummarizeZeroSpend(t *testing.T) {
	s := Summarize([]domain.DailyMetric{{Date: "2024-01-01", Sales: 1000}})
	if s.TotalROAS != 0 {
		t.Errorf("TotalROAS with zero spend = %v, want 0", s.TotalROAS)
	}
}

func TestWindow(t *testing.T) {
	var rows []domain.DailyMetric
	for _, d := range []string{"01", "02", "03", "04", "05", "06", "07", "08", "09"} {
		rows = append(rows, domain.DailyMetric{Date: "2024-01-" + d})
	}
	w := Window(rows, 7)
	if len(w) != 7 {
		t.Fatalf("window length = %d, want 7", len(w))
	}
	if w[0].Date != "2024-01-03" || w[6].Date != "2024-01-09" {
		t.Errorf("window bounds: %s .. %s", w[0].Date, w[6].Date)
	}

	if got := Window(rows[:3], 7); len(got) != 3 {
		t.Errorf("short series window length = %d, want 3", len(got))
	}
}

func TestFormatTable(t *testing.T) {
	rows := []domain.DailyMetric{{Date: "2024-01-01", Sales: 1000, Spend: 500, ROAS: 2}}
	table := FormatTable(rows)
	if !strings.Contains(table, "2024-01-01") || !strings.Contains(table, "2.00") {
		t.Errorf("table missing expected cells:\n%s", table)
	}
	if lines := strings.Count(table, "\n"); lines != 2 {
		t.Errorf("expected header + 1 row, got %d lines", lines)
	}
}
