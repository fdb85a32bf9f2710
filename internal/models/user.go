package models

import (
	"time"

	"hireboard/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // jobseeker | employer | admin
	Headline     string         `gorm:"size:255" json:"headline"`
	Bio          string         `gorm:"type:text" json:"bio"`
	Location     string         `gorm:"size:255" json:"location"`
	Phone        string         `gorm:"size:32" json:"phone"`
	Skills       []string       `gorm:"type:text;serializer:json" json:"skills"`
	AvatarURL    string         `gorm:"size:512" json:"avatarUrl"`
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups
	FCMToken     string         `gorm:"size:512" json:"-"`
	IsActive     bool           `gorm:"not null;default:true" json:"isActive"`
	LastLoginAt  *time.Time     `json:"lastLoginAt"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsEmployer() bool  { return u.Role == domain.RoleEmployer }
func (u *User) IsJobSeeker() bool { return u.Role == domain.RoleJobSeeker }
func (u *User) IsAdmin() bool     { return u.Role == domain.RoleAdmin }

// UserSummary is the public face of a user embedded in other responses.
type UserSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Headline  string `json:"headline,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Role: u.Role, Headline: u.Headline, AvatarURL: u.AvatarURL}
}
