package model

import (
	"strings"
	"time"
)

// DocumentStatus is the lifecycle state of a document.
type DocumentStatus string

const (
	// StatusPending marks a document that was uploaded but not yet reviewed.
	StatusPending DocumentStatus = "pending"
	// StatusConfirmed marks a document visible in its vault.
	StatusConfirmed DocumentStatus = "confirmed"
)

// Document types used by the type facet.
const (
	TypePDF         = "pdf"
	TypeImage       = "image"
	TypeDocument    = "document"
	TypeSpreadsheet = "spreadsheet"
	TypeText        = "text"
	TypeOther       = "other"
)

// Document represents a stored file in a vault.
// It is a pure domain model with no database-specific dependencies or tags.
type Document struct {
	ID              string         `json:"id"`
	VaultID         string         `json:"vault_id"`
	Name            string         `json:"name"`
	StoragePath     string         `json:"storage_path"`
	ContentType     string         `json:"content_type"`
	Type            string         `json:"type"`
	Size            int64          `json:"size"`
	FolderID        *string        `json:"folder_id"`
	Labels          []string       `json:"labels"`
	CreatedAt       time.Time      `json:"created_at"`
	ExpirationDate  *time.Time     `json:"expiration_date,omitempty"`
	TrackExpiration bool           `json:"track_expiration"`
	DueDate         *time.Time     `json:"due_date,omitempty"`
	TrackDueDate    bool           `json:"track_due_date"`
	IsFavorite      bool           `json:"is_favorite"`
	Status          DocumentStatus `json:"status"`
	WasAnalyzed     bool           `json:"was_analyzed"`
	PageCount       int            `json:"page_count"`
}

// ConfirmOptions carries usage accounting for the pending -> confirmed transition.
type ConfirmOptions struct {
	WasAnalyzed bool `json:"was_analyzed"`
	PageCount   int  `json:"page_count"`
}

// TypeFromContentType maps a MIME type onto the enumerated document types.
func TypeFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch {
	case ct == "application/pdf":
		return TypePDF
	case strings.HasPrefix(ct, "image/"):
		return TypeImage
	case ct == "application/msword",
		strings.Contains(ct, "wordprocessingml"),
		ct == "application/vnd.oasis.opendocument.text",
		ct == "application/rtf":
		return TypeDocument
	case ct == "application/vnd.ms-excel",
		strings.Contains(ct, "spreadsheetml"),
		ct == "text/csv":
		return TypeSpreadsheet
	case strings.HasPrefix(ct, "text/"):
		return TypeText
	default:
		return TypeOther
	}
}

// NormalizeLabels trims, drops empties and removes duplicates while keeping first-seen order.
func NormalizeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
