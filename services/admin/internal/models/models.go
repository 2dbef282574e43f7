package models

import "time"

type Admin struct {
	ID           string    `gorm:"primaryKey"           json:"id"`
	Name         string    `gorm:"not null"             json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	Role         string    `gorm:"not null"             json:"role"`
	LastAccess   time.Time `json:"lastAccess"`
	CreatedAt    time.Time `json:"createdAt"`
}
