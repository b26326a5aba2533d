package models

import (
	"time"

	"github.com/google/uuid"
)

// ClauseType is the closed enumeration of detected clause categories
type ClauseType string

const (
	ClauseIndemnity       ClauseType = "indemnity"
	ClauseNonCompete      ClauseType = "non-compete"
	ClauseTermination     ClauseType = "termination"
	ClausePayment         ClauseType = "payment"
	ClauseDataRights      ClauseType = "data-rights"
	ClauseLiability       ClauseType = "liability"
	ClauseIP              ClauseType = "ip"
	ClauseArbitration     ClauseType = "arbitration"
	ClauseNoticePeriod    ClauseType = "notice-period"
	ClauseRenewal         ClauseType = "renewal"
	ClauseConfidentiality ClauseType = "confidentiality"
	ClauseOther           ClauseType = "other"
)

// Clause represents one detected clause belonging to exactly one Document.
// Clauses are created in bulk right after their parent document and never
// updated.
type Clause struct {
	ID             uuid.UUID  `json:"id"`
	DocID          uuid.UUID  `json:"doc_id"`
	ClauseNumber   int        `json:"clause_number"`
	ClauseType     ClauseType `json:"clause_type"`
	OriginalText   string     `json:"original_text"`
	RiskLevel      RiskLevel  `json:"risk_level"`
	IsIllegal      bool       `json:"is_illegal"`
	IllegalLaw     string     `json:"illegal_law"`
	RiskReason     string     `json:"risk_reason"`
	ExplanationEn  string     `json:"explanation_en"`
	ExplanationHi  string     `json:"explanation_hi"`
	CounterClause  string     `json:"counter_clause"`
	ActionAdvice   string     `json:"action_advice"`
	BenchmarkLabel string     `json:"benchmark_label"`
	BenchmarkNote  string     `json:"benchmark_note"`
	IsBlocking     bool       `json:"is_blocking"`
	TimelineMonth  int        `json:"timeline_month"`
	TimelineEvent  string     `json:"timeline_event"`
	StartChar      int        `json:"start_char"`
	EndChar        int        `json:"end_char"`
	CreatedAt      time.Time  `json:"created_at"`
}
