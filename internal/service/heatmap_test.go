package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"errors"
	"testing"
	"time"
)

func TestBuildHeatmapZeroFillsYear(t *testing.T) {
	end := time.Date(2024, 12, 31, 18, 30, 0, 0, time.UTC)
	days := []model.ActivityDay{
		{Date: "2024-12-31", Count: 3},
		{Date: "2024-06-15", Count: 2},
		{Date: "2023-01-01", Count: 9}, // 窗口外
	}

	cells, err := BuildHeatmap(days, end, DefaultHeatmapDays)
	if err != nil {
		t.Fatalf("BuildHeatmap: %v", err)
	}
	if len(cells) != 365 {
		t.Fatalf("len=%d, want 365", len(cells))
	}
	if cells[0].Date != "2024-01-02" || cells[364].Date != "2024-12-31" {
		t.Fatalf("window=%s..%s", cells[0].Date, cells[364].Date)
	}
	if cells[364].Count != 3 {
		t.Fatalf("last count=%d", cells[364].Count)
	}

	total := 0
	for i, c := range cells {
		total += c.Count
		if i > 0 && c.Date <= cells[i-1].Date {
			t.Fatalf("not chronological at %d", i)
		}
	}
	if total != 5 {
		t.Fatalf("total=%d, want 5", total)
	}
}

func TestBuildHeatmapEmptyAndInvalid(t *testing.T) {
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cells, err := BuildHeatmap(nil, end, 3)
	if err != nil {
		t.Fatalf("BuildHeatmap: %v", err)
	}
	want := []string{"2024-02-28", "2024-02-29", "2024-03-01"}
	for i, c := range cells {
		if c.Date != want[i] || c.Count != 0 {
			t.Fatalf("cell %d=%+v", i, c)
		}
	}
	if start := HeatmapWindowStart(end, 3); start != want[0] {
		t.Fatalf("start=%s", start)
	}

	for _, n := range []int{0, -5, MaxHeatmapDays + 1, 2_000_000_000} {
		if cells, err := BuildHeatmap(nil, end, n); !errors.Is(err, util.ErrInvalidInput) || cells != nil {
			t.Fatalf("length %d: cells=%d err=%v, want ErrInvalidInput", n, len(cells), err)
		}
	}
}
