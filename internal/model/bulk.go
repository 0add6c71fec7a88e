package model

import (
	"fmt"
	"time"
)

// UploadedFile is a just-uploaded file already stored as a pending Document.
type UploadedFile struct {
	DocumentID  string `json:"document_id"`
	StorageKey  string `json:"storage_key"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// BulkOperationItem wraps one uploaded file, its classification and the reviewer's edits.
type BulkOperationItem struct {
	File            UploadedFile         `json:"file"`
	Analysis        ClassificationResult `json:"analysis"`
	WasAnalyzed     bool                 `json:"was_analyzed"`
	FinalFilename   string               `json:"final_filename"`
	ExpirationDate  *time.Time           `json:"expiration_date"`
	TrackExpiration bool                 `json:"track_expiration"`
	DueDate         *time.Time           `json:"due_date"`
	TrackDueDate    bool                 `json:"track_due_date"`
	Override        PlacementOverride    `json:"-"`
}

// BulkFailure records why a single target of a batch did not succeed.
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkBatchResult is the aggregate outcome of a bulk mutation. Succeeded+Failed always equals Total.
type BulkBatchResult struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []BulkFailure `json:"failures"`
}

// Summary renders the result the way callers show it to users.
func (r BulkBatchResult) Summary() string {
	return fmt.Sprintf("%d succeeded, %d failed", r.Succeeded, r.Failed)
}
