package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedClause is a user-curated copy of a clause. The clause fields are
// denormalized rather than referenced so a saved clause survives deletion
// of its source document.
type SavedClause struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	DocID         *uuid.UUID `json:"doc_id,omitempty"`
	ClauseType    string     `json:"clause_type"`
	OriginalText  string     `json:"original_text"`
	RiskLevel     RiskLevel  `json:"risk_level"`
	IsIllegal     bool       `json:"is_illegal"`
	IllegalLaw    string     `json:"illegal_law"`
	Explanation   string     `json:"explanation"`
	CounterClause string     `json:"counter_clause"`
	ActionAdvice  string     `json:"action_advice"`
	DocName       string     `json:"doc_name"`
	DocType       string     `json:"doc_type"`
	Notes         string     `json:"notes"`
	Tags          []string   `json:"tags"`
	CreatedAt     time.Time  `json:"created_at"`
}
