package model

import "time"

// CategoryOther is the classifier's catch-all category.
const CategoryOther = "other"

// Classification is the category/subtype pair predicted for a document.
type Classification struct {
	Category   string  `json:"category"`
	Subtype    string  `json:"subtype"`
	Confidence float64 `json:"confidence"`
}

// FolderRef points at an already-existing folder.
type FolderRef struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// FolderSuggestion is the classifier's placement hint.
type FolderSuggestion struct {
	PathSegments          []string   `json:"path_segments"`
	MatchedExistingFolder *FolderRef `json:"matched_existing_folder"`
	IsNewFolder           bool       `json:"is_new_folder"`
}

// ClassificationResult is the structured output of the classifier service. It is consumed read-only.
type ClassificationResult struct {
	Classification       Classification   `json:"classification"`
	SuggestedFilename    string           `json:"suggested_filename"`
	ExpirationDate       *time.Time       `json:"expiration_date"`
	ExpirationConfidence float64          `json:"expiration_confidence"`
	DueDate              *time.Time       `json:"due_date"`
	DueDateConfidence    float64          `json:"due_date_confidence"`
	FolderSuggestion     FolderSuggestion `json:"folder_suggestion"`
	ExtractedMetadata    map[string]any   `json:"extracted_metadata"`
	ProcessingTimeMs     int64            `json:"processing_time_ms"`
	ModelUsed            string           `json:"model_used"`
	PageCount            int              `json:"page_count,omitempty"`
}
