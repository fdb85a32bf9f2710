package models

import "time"

type Salary struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `gorm:"size:3" json:"currency"`
}

type Job struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	EmployerID        uint       `gorm:"not null;index" json:"employerId"`
	CompanyID         *uint      `gorm:"index" json:"companyId"`
	Title             string     `gorm:"size:255;not null" json:"title"`
	Description       string     `gorm:"type:text;not null" json:"description"`
	Requirements      []string   `gorm:"type:text;serializer:json" json:"requirements"`
	Responsibilities  []string   `gorm:"type:text;serializer:json" json:"responsibilities"`
	Skills            []string   `gorm:"type:text;serializer:json" json:"skills"`
	Category          string     `gorm:"size:100;index" json:"category"`
	JobType           string     `gorm:"size:20;index" json:"jobType"`
	ExperienceLevel   string     `gorm:"size:20;index" json:"experienceLevel"`
	Salary            Salary     `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	Location          string     `gorm:"size:255;index" json:"location"`
	IsRemote          bool       `gorm:"not null;default:false" json:"isRemote"`
	Deadline          *time.Time `json:"deadline"`
	Status            string     `gorm:"size:20;not null;default:'open';index" json:"status"` // open | closed | suspended
	Views             int64      `gorm:"not null;default:0" json:"views"`
	ApplicationsCount int64      `gorm:"not null;default:0" json:"applicationsCount"`
	CreatedAt         time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	Employer *User    `gorm:"foreignKey:EmployerID" json:"-"`
	Company  *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (Job) TableName() string {
	return "jobs"
}
