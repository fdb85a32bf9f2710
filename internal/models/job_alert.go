package models

import "time"

type AlertCriteria struct {
	Keywords        string   `gorm:"size:255" json:"keywords"`
	Location        string   `gorm:"size:255" json:"location"`
	Category        string   `gorm:"size:100" json:"category"`
	JobType         string   `gorm:"size:20" json:"jobType"`
	ExperienceLevel string   `gorm:"size:20" json:"experienceLevel"`
	MinSalary       int64    `json:"minSalary"`
	RequiredSkills  []string `gorm:"type:text;serializer:json" json:"requiredSkills"`
}

type JobAlert struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	UserID     uint          `gorm:"not null;index" json:"userId"`
	Name       string        `gorm:"size:100;not null" json:"name"`
	Criteria   AlertCriteria `gorm:"embedded;embeddedPrefix:criteria_" json:"criteria"`
	Frequency  string        `gorm:"size:10;not null;default:'daily'" json:"frequency"` // instant | daily | weekly
	IsActive   bool          `gorm:"not null;default:true" json:"isActive"`
	LastSentAt *time.Time    `json:"lastSentAt"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func (JobAlert) TableName() string {
	return "job_alerts"
}
