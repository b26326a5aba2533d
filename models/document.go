package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel represents a risk tag on a document or clause
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

// SignVerdict is the tri-state recommendation attached to a document.
// It is assigned once at creation time and never transitions afterward.
type SignVerdict string

const (
	VerdictDoNotSign   SignVerdict = "DO_NOT_SIGN"
	VerdictConditional SignVerdict = "CONDITIONAL"
	VerdictSafeToSign  SignVerdict = "SAFE_TO_SIGN"
)

// DocType represents the kind of contract that was analyzed
type DocType string

const (
	DocTypeRental     DocType = "rental"
	DocTypeEmployment DocType = "employment"
	DocTypeNDA        DocType = "nda"
	DocTypeLoan       DocType = "loan"
	DocTypeTOS        DocType = "tos"
	DocTypeFreelance  DocType = "freelance"
	DocTypeOther      DocType = "other"
)

// Document represents one analyzed contract. Created on successful analysis
// and never mutated afterward except by deletion.
type Document struct {
	ID                 uuid.UUID   `json:"id"`
	UserID             uuid.UUID   `json:"user_id"`
	FileName           string      `json:"file_name"`
	DocType            DocType     `json:"doc_type"`
	OverallRisk        RiskLevel   `json:"overall_risk"`
	RiskScore          int         `json:"risk_score"`
	IllegalCount       int         `json:"illegal_count"`
	SignVerdict        SignVerdict `json:"sign_verdict"`
	SignVerdictReason  string      `json:"sign_verdict_reason"`
	BlockingClauses    []int64     `json:"blocking_clauses"`
	Parties            []string    `json:"parties"`
	KeyDates           []string    `json:"key_dates"`
	MonthlyObligations []string    `json:"monthly_obligations"`
	SummaryEn          string      `json:"summary_en"`
	SummaryHi          string      `json:"summary_hi"`
	RawText            string      `json:"raw_text,omitempty"`
	ClauseCount        int         `json:"clause_count"`
	HighRiskCount      int         `json:"high_risk_count"`
	CreatedAt          time.Time   `json:"created_at"`
}
