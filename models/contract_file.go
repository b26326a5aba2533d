package models

import (
	"time"

	"github.com/google/uuid"
)

// ContractFile records an archived original upload so the user can
// re-download the file their analysis was produced from.
type ContractFile struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	DocumentID  *uuid.UUID `json:"document_id,omitempty"`
	Filename    string     `json:"filename"`
	MimeType    string     `json:"mime_type"`
	Size        int64      `json:"size"`
	StoragePath string     `json:"storage_path"`
	CreatedAt   time.Time  `json:"created_at"`
}
