package service

import (
	"testing"
	"time"
	"unicode/utf8"

	"lexai-backend/models"
)

func docWithScore(name string, score int, created time.Time) *models.Document {
	return &models.Document{FileName: name, RiskScore: score, CreatedAt: created}
}

func TestAvgRiskScore(t *testing.T) {
	if got := avgRiskScore(nil); got != 0 {
		t.Errorf("Expected 0 for no documents, got %d", got)
	}

	now := time.Now()
	docs := []*models.Document{
		docWithScore("a", 40, now),
		docWithScore("b", 45, now),
	}
	// 42.5 rounds up
	if got := avgRiskScore(docs); got != 43 {
		t.Errorf("Expected rounded average 43, got %d", got)
	}
}

func TestRiskDistribution(t *testing.T) {
	docs := []*models.Document{
		{OverallRisk: models.RiskHigh},
		{OverallRisk: models.RiskHigh},
		{OverallRisk: models.RiskLow},
	}

	dist := riskDistribution(docs)
	if dist["HIGH"] != 2 || dist["MEDIUM"] != 0 || dist["LOW"] != 1 {
		t.Errorf("Unexpected distribution: %v", dist)
	}
}

func TestActivityStreak(t *testing.T) {
	now := time.Date(2026, time.August, 28, 15, 0, 0, 0, time.UTC)

	day := func(offset int) *models.Activity {
		return &models.Activity{Date: now.AddDate(0, 0, offset)}
	}

	tests := []struct {
		name       string
		activities []*models.Activity
		want       int
	}{
		{"no activity", nil, 0},
		{"today only", []*models.Activity{day(0)}, 1},
		{"three consecutive days", []*models.Activity{day(0), day(-1), day(-2)}, 3},
		{"gap breaks streak", []*models.Activity{day(0), day(-1), day(-3)}, 2},
		{"yesterday without today", []*models.Activity{day(-1), day(-2)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := activityStreak(tt.activities, now); got != tt.want {
				t.Errorf("Expected streak %d, got %d", tt.want, got)
			}
		})
	}
}

func TestDailyActivity(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	activities := []*models.Activity{
		{Date: now},
		{Date: now},
		{Date: now.AddDate(0, 0, -1)},
		{Date: now.AddDate(0, 0, -45)}, // outside the 30-day window
	}

	daily := dailyActivity(activities, now)
	if len(daily) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(daily))
	}
	// Sorted ascending by date string
	if daily[0].Date != "2026-08-27" || daily[0].Count != 1 {
		t.Errorf("Unexpected first bucket: %+v", daily[0])
	}
	if daily[1].Date != "2026-08-28" || daily[1].Count != 2 {
		t.Errorf("Unexpected second bucket: %+v", daily[1])
	}
}

func TestRiskTrend(t *testing.T) {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	var docs []*models.Document
	for i := 0; i < 12; i++ {
		docs = append(docs, docWithScore("doc", 10+i, base.AddDate(0, 0, i)))
	}
	// Shuffle in a stale-first order to prove sorting
	docs[0], docs[11] = docs[11], docs[0]

	trend := riskTrend(docs)
	if len(trend) != 10 {
		t.Fatalf("Expected trend capped at 10 points, got %d", len(trend))
	}
	for i := 1; i < len(trend); i++ {
		if trend[i].Date.Before(trend[i-1].Date) {
			t.Fatal("Expected chronological order")
		}
	}
	if trend[len(trend)-1].Score != 21 {
		t.Errorf("Expected newest document last, got score %d", trend[len(trend)-1].Score)
	}
}

func TestRiskTrendTruncatesLongNames(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	docs := []*models.Document{
		docWithScore("rental_agreement_final_v3.pdf", 70, base),
		docWithScore("short.pdf", 30, base.AddDate(0, 0, 1)),
	}

	trend := riskTrend(docs)
	if trend[0].Name != "rental_agree..." {
		t.Errorf("Expected truncated name, got %q", trend[0].Name)
	}
	if trend[1].Name != "short.pdf" {
		t.Errorf("Short names must pass through, got %q", trend[1].Name)
	}
}

func TestRiskTrendTruncatesHindiNames(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	docs := []*models.Document{
		docWithScore("किराया अनुबंध अंतिम संस्करण.pdf", 70, base),
	}

	trend := riskTrend(docs)
	if !utf8.ValidString(trend[0].Name) {
		t.Errorf("Truncated name is not valid UTF-8: %q", trend[0].Name)
	}
	if utf8.RuneCountInString(trend[0].Name) != 15 {
		t.Errorf("Expected 15-rune name, got %d (%q)", utf8.RuneCountInString(trend[0].Name), trend[0].Name)
	}
}

func TestUpcomingDeadlines(t *testing.T) {
	now := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	docs := []*models.Document{
		{
			FileName: "lease.pdf",
			KeyDates: []string{
				"Lease expires on 2026-12-31",
				"Agreement signed 2020-01-01",
				"Rent due every month",
			},
		},
	}

	deadlines := upcomingDeadlines(docs, now)
	if len(deadlines) != 2 {
		t.Fatalf("Expected 2 deadlines, got %d: %+v", len(deadlines), deadlines)
	}

	if deadlines[0].Date == "" {
		t.Error("Expected parsed date for future deadline")
	}
	if deadlines[0].DocName != "lease.pdf" {
		t.Errorf("Unexpected doc name: %q", deadlines[0].DocName)
	}

	// Date-free key dates still surface as reminder text
	if deadlines[1].Date != "" || deadlines[1].Description != "Rent due every month" {
		t.Errorf("Unexpected reminder entry: %+v", deadlines[1])
	}
}

func TestParseDeadlineDate(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"2026-12-31", true},
		{"31/12/2026", true},
		{"January 5, 2027", true},
		{"Jan 5 2027", true},
		{"someday soon", false},
	}

	for _, tt := range tests {
		if _, ok := parseDeadlineDate(tt.input); ok != tt.ok {
			t.Errorf("parseDeadlineDate(%q): expected ok=%v", tt.input, tt.ok)
		}
	}
}
