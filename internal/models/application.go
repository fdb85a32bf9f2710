package models

import "time"

// Application has no soft delete: a withdrawn application is gone, which
// frees the (job, applicant) pair on the unique index.
type Application struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	JobID       uint      `gorm:"not null;index:idx_application_job_applicant,unique" json:"jobId"`
	ApplicantID uint      `gorm:"not null;index:idx_application_job_applicant,unique;index:idx_application_applicant" json:"applicantId"`
	CoverLetter string    `gorm:"type:text" json:"coverLetter"`
	ResumeURL   string    `gorm:"size:512" json:"resumeUrl"`
	Status      string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Job       *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Applicant *User `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}
