package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActivityType enumerates the event kinds recorded in the activity log
type ActivityType string

const (
	ActivityDocumentAnalyzed ActivityType = "document_analyzed"
	ActivityChatMessage      ActivityType = "chat_message"
	ActivityClauseSaved      ActivityType = "clause_saved"
	ActivityDisputeGenerated ActivityType = "dispute_generated"
	ActivityComparisonDone   ActivityType = "comparison_done"
	ActivityNegotiationDone  ActivityType = "negotiation_done"
	ActivityCounterClause    ActivityType = "counter_clause"
	ActivityLogin            ActivityType = "login"
)

// ActivityMetadata holds free-form event details stored as JSONB
type ActivityMetadata map[string]interface{}

// Value implements driver.Valuer for JSONB
func (m ActivityMetadata) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(ActivityMetadata{})
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB
func (m *ActivityMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = make(ActivityMetadata)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*m = make(ActivityMetadata)
		return nil
	}

	if len(bytes) == 0 {
		*m = make(ActivityMetadata)
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Activity is one append-only event log entry per user, used for the
// dashboard analytics and streak computation.
type Activity struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Type        ActivityType     `json:"type"`
	Description string           `json:"description"`
	Metadata    ActivityMetadata `json:"metadata"`
	Date        time.Time        `json:"date"`
	CreatedAt   time.Time        `json:"created_at"`
}
