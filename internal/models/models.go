// Package models defines the record types and request payloads shared by
// the service, storage, and router layers.
package models

import "time"

// Priority is the todo priority enum stored as text.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps an external priority value to a Priority.
// Absent or unrecognized values fall back to PriorityMedium.
func ParsePriority(value string) Priority {
	switch Priority(value) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(value)
	}

	return PriorityMedium
}

// BookmarkType is the bookmark kind enum stored as text.
type BookmarkType string

const (
	BookmarkTypeYoutube BookmarkType = "youtube"
	BookmarkTypeTweet   BookmarkType = "tweet"
	BookmarkTypePDF     BookmarkType = "pdf"
	BookmarkTypeNotion  BookmarkType = "notion"
	BookmarkTypeGeneric BookmarkType = "generic"
)

// ParseBookmarkType maps an external type value to a BookmarkType.
// Absent or unrecognized values fall back to BookmarkTypeGeneric.
func ParseBookmarkType(value string) BookmarkType {
	switch BookmarkType(value) {
	case BookmarkTypeYoutube, BookmarkTypeTweet, BookmarkTypePDF, BookmarkTypeNotion, BookmarkTypeGeneric:
		return BookmarkType(value)
	}

	return BookmarkTypeGeneric
}

// Todo is a single todo record owned by exactly one user.
type Todo struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Bookmark is a single bookmark record owned by exactly one user.
type Bookmark struct {
	ID          string       `json:"id"`
	UserID      string       `json:"-"`
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	Type        BookmarkType `json:"type"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

type CreateBookmarkRequest struct {
	Title       string `json:"title" validate:"required"`
	URL         string `json:"url" validate:"required"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// InternalStatsResponse carries record counters for the internal stats endpoint.
type InternalStatsResponse struct {
	Users     int64 `json:"users"`
	Todos     int64 `json:"todos"`
	Bookmarks int64 `json:"bookmarks"`
}

const (
	StorageTypeUnknown = iota
	StorageTypePostgresql
	StorageTypeFile
	StorageTypeMemory
)
