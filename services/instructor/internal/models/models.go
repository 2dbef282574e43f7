package models

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

type Instructor struct {
	ID           string    `gorm:"primaryKey"               json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Title        string    `gorm:"not null"                 json:"title"`
	Courses      []string  `gorm:"serializer:json"          json:"courses"`
	Role         string    `gorm:"not null"                 json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ContentItem lives embedded in its course, mirroring the document model:
// items are appended, never independently deleted.
type ContentItem struct {
	ContentID string `json:"content_id"`
	Title     string `json:"title"`
	DocType   string `json:"doc_type"`
	URL       string `json:"url"`
	Completed bool   `json:"completed"`
}

type Course struct {
	ID          string        `gorm:"primaryKey"           json:"id"`
	Title       string        `gorm:"not null"             json:"title"`
	Description string        `gorm:"not null"             json:"description"`
	Category    string        `gorm:"not null"             json:"category"`
	Content     []ContentItem `gorm:"serializer:json"      json:"content"`
	Instructor  string        `gorm:"index;not null"       json:"instructor"`
	Status      string        `gorm:"not null"             json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
