package models

import (
	"time"
)

// Column limits for the users table.
const (
	UserNameMaxLength  = 100
	UserEmailMaxLength = 150
)

// User is a directory entry. Email is stored case-folded and is unique.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:150;not null;uniqueIndex:idx_users_email" json:"email"`
	CreatedAt time.Time `gorm:"not null;index:idx_users_created_at" json:"createdAt"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
}

func (User) TableName() string {
	return "users"
}

// SeedRecord marks a named seed set as applied so it is never inserted twice.
type SeedRecord struct {
	Name      string `gorm:"primaryKey;size:100"`
	AppliedAt time.Time
}

func (SeedRecord) TableName() string {
	return "seed_history"
}
