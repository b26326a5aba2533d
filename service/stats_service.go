package service

import (
	"context"
	"regexp"
	"sort"
	"time"

	"lexai-backend/models"

	"github.com/google/uuid"
)

// Overview is the full dashboard payload
type Overview struct {
	Stats               Totals             `json:"stats"`
	RiskDistribution    map[string]int     `json:"riskDistribution"`
	VerdictDistribution map[string]int     `json:"verdictDistribution"`
	DocTypeDistribution map[string]int     `json:"docTypeDistribution"`
	DailyActivity       []DailyCount       `json:"dailyActivity"`
	RiskTrend           []TrendPoint       `json:"riskTrend"`
	UpcomingDeadlines   []Deadline         `json:"upcomingDeadlines"`
	RecentActivities    []ActivitySnapshot `json:"recentActivities"`
}

// Totals holds the headline dashboard numbers
type Totals struct {
	TotalDocuments  int `json:"totalDocuments"`
	TotalClauses    int `json:"totalClauses"`
	HighRiskClauses int `json:"highRiskClauses"`
	IllegalClauses  int `json:"illegalClauses"`
	SavedClauses    int `json:"savedClauses"`
	TotalChats      int `json:"totalChats"`
	AvgRiskScore    int `json:"avgRiskScore"`
	Streak          int `json:"streak"`
}

// DailyCount is one bar of the 30-day activity chart
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TrendPoint is one point of the risk-score trend line
type TrendPoint struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// Deadline is a key date surfaced from an analyzed contract
type Deadline struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	DocName     string `json:"docName"`
}

// ActivitySnapshot is the trimmed activity view shown on the dashboard
type ActivitySnapshot struct {
	Type        models.ActivityType `json:"type"`
	Description string              `json:"description"`
	Date        time.Time           `json:"date"`
}

// ClauseCounter aggregates clause counts across a user's documents
type ClauseCounter interface {
	CountsByUser(ctx context.Context, userID uuid.UUID) (total, highRisk, illegal int, err error)
}

// LibraryCounter counts saved clauses
type LibraryCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// ChatCounter counts chat threads
type ChatCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// ActivityReader reads back the activity log
type ActivityReader interface {
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*models.Activity, error)
	ListRecent(ctx context.Context, userID uuid.UUID, n int) ([]*models.Activity, error)
}

// DocumentLister lists a user's analyzed documents
type DocumentLister interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Document, error)
}

// StatsService assembles the dashboard overview
type StatsService struct {
	documents  DocumentLister
	clauses    ClauseCounter
	library    LibraryCounter
	chats      ChatCounter
	activities ActivityReader
}

// NewStatsService creates a new stats service
func NewStatsService(documents DocumentLister, clauses ClauseCounter, library LibraryCounter, chats ChatCounter, activities ActivityReader) *StatsService {
	return &StatsService{
		documents:  documents,
		clauses:    clauses,
		library:    library,
		chats:      chats,
		activities: activities,
	}
}

// Matches numeric dates and "Jan 5, 2026" style dates inside key-date strings
var deadlineDateRegex = regexp.MustCompile(`(?i)(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2}|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\s+\d{1,2},?\s*\d{4})`)

var deadlineDateLayouts = []string{
	"2006-01-02", "2006/01/02",
	"02-01-2006", "02/01/2006",
	"2-1-2006", "2/1/2006",
	"January 2, 2006", "January 2 2006",
	"Jan 2, 2006", "Jan 2 2006",
}

// Overview computes the full dashboard for a user
func (s *StatsService) Overview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	docs, err := s.documents.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalClauses, highRisk, illegal, err := s.clauses.CountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	savedCount, err := s.library.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	chatCount, err := s.chats.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	yearAgo := now.AddDate(0, 0, -365)
	activities, err := s.activities.ListSince(ctx, userID, yearAgo)
	if err != nil {
		return nil, err
	}

	recent, err := s.activities.ListRecent(ctx, userID, 20)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		Stats: Totals{
			TotalDocuments:  len(docs),
			TotalClauses:    totalClauses,
			HighRiskClauses: highRisk,
			IllegalClauses:  illegal,
			SavedClauses:    savedCount,
			TotalChats:      chatCount,
			AvgRiskScore:    avgRiskScore(docs),
			Streak:          activityStreak(activities, now),
		},
		RiskDistribution:    riskDistribution(docs),
		VerdictDistribution: verdictDistribution(docs),
		DocTypeDistribution: docTypeDistribution(docs),
		DailyActivity:       dailyActivity(activities, now),
		RiskTrend:           riskTrend(docs),
		UpcomingDeadlines:   upcomingDeadlines(docs, now),
		RecentActivities:    activitySnapshots(recent),
	}

	return overview, nil
}

func avgRiskScore(docs []*models.Document) int {
	if len(docs) == 0 {
		return 0
	}
	sum := 0
	for _, d := range docs {
		sum += d.RiskScore
	}
	return int(float64(sum)/float64(len(docs)) + 0.5)
}

func riskDistribution(docs []*models.Document) map[string]int {
	dist := map[string]int{"HIGH": 0, "MEDIUM": 0, "LOW": 0}
	for _, d := range docs {
		dist[string(d.OverallRisk)]++
	}
	return dist
}

func verdictDistribution(docs []*models.Document) map[string]int {
	dist := map[string]int{"DO_NOT_SIGN": 0, "CONDITIONAL": 0, "SAFE_TO_SIGN": 0}
	for _, d := range docs {
		dist[string(d.SignVerdict)]++
	}
	return dist
}

func docTypeDistribution(docs []*models.Document) map[string]int {
	dist := map[string]int{}
	for _, d := range docs {
		t := string(d.DocType)
		if t == "" {
			t = string(models.DocTypeOther)
		}
		dist[t]++
	}
	return dist
}

// dailyActivity buckets the last 30 days of activity by calendar day
func dailyActivity(activities []*models.Activity, now time.Time) []DailyCount {
	cutoff := now.AddDate(0, 0, -30)
	counts := map[string]int{}
	for _, a := range activities {
		if a.Date.Before(cutoff) {
			continue
		}
		counts[a.Date.Format("2006-01-02")]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]DailyCount, 0, len(days))
	for _, day := range days {
		out = append(out, DailyCount{Date: day, Count: counts[day]})
	}
	return out
}

// activityStreak counts consecutive days with at least one activity,
// ending today.
func activityStreak(activities []*models.Activity, now time.Time) int {
	days := map[string]bool{}
	for _, a := range activities {
		days[a.Date.Format("2006-01-02")] = true
	}

	streak := 0
	check := now
	for i := 0; i < 365; i++ {
		if !days[check.Format("2006-01-02")] {
			break
		}
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}

// riskTrend returns the risk scores of the last 10 documents in
// chronological order.
func riskTrend(docs []*models.Document) []TrendPoint {
	sorted := make([]*models.Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	if len(sorted) > 10 {
		sorted = sorted[len(sorted)-10:]
	}

	trend := make([]TrendPoint, 0, len(sorted))
	for _, d := range sorted {
		name := d.FileName
		if runes := []rune(name); len(runes) > 15 {
			name = string(runes[:12]) + "..."
		}
		trend = append(trend, TrendPoint{Name: name, Score: d.RiskScore, Date: d.CreatedAt})
	}
	return trend
}

// upcomingDeadlines scans key dates for parseable future dates. Key dates
// without a recognizable date are still surfaced as reminder text.
func upcomingDeadlines(docs []*models.Document, now time.Time) []Deadline {
	var deadlines []Deadline
	for _, doc := range docs {
		for _, kd := range doc.KeyDates {
			match := deadlineDateRegex.FindString(kd)
			if match == "" {
				deadlines = append(deadlines, Deadline{Description: kd, DocName: doc.FileName})
				continue
			}
			if parsed, ok := parseDeadlineDate(match); ok && parsed.After(now) {
				deadlines = append(deadlines, Deadline{
					Date:        parsed.Format(time.RFC3339),
					Description: kd,
					DocName:     doc.FileName,
				})
			}
		}
	}

	if len(deadlines) > 10 {
		deadlines = deadlines[:10]
	}
	return deadlines
}

func parseDeadlineDate(s string) (time.Time, bool) {
	for _, layout := range deadlineDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func activitySnapshots(activities []*models.Activity) []ActivitySnapshot {
	out := make([]ActivitySnapshot, 0, len(activities))
	for _, a := range activities {
		out = append(out, ActivitySnapshot{
			Type:        a.Type,
			Description: a.Description,
			Date:        a.Date,
		})
	}
	return out
}
