package models

import "time"

type SavedJob struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JobID     uint      `gorm:"not null;index:idx_saved_job_user,unique" json:"jobId"`
	UserID    uint      `gorm:"not null;index:idx_saved_job_user,unique;index:idx_saved_job_owner" json:"userId"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

func (SavedJob) TableName() string {
	return "saved_jobs"
}
