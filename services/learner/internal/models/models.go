package models

import "time"

type Learner struct {
	ID           string    `gorm:"primaryKey"           json:"id"`
	Name         string    `gorm:"not null"             json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	Description  string    `json:"description"`
	Role         string    `gorm:"not null"             json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProgressEntry tracks one content item inside an enrollment. Entries are
// upserted by content id; nothing checks the id against the course's actual
// content list.
type ProgressEntry struct {
	ContentID string `json:"content_id"`
	Completed bool   `json:"completed"`
}

type Enrollment struct {
	ID        string          `gorm:"primaryKey"                      json:"id"`
	LearnerID string          `gorm:"index:idx_learner_course;not null" json:"learnerId"`
	Course    string          `gorm:"index:idx_learner_course;not null" json:"course"`
	Progress  []ProgressEntry `gorm:"serializer:json"                 json:"progress"`
	CreatedAt time.Time       `json:"createdAt"`
}
