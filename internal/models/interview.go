package models

import "time"

type InterviewFeedback struct {
	Rating     int    `json:"rating,omitempty"`
	Comments   string `gorm:"type:text" json:"comments,omitempty"`
	Strengths  string `gorm:"type:text" json:"strengths,omitempty"`
	Weaknesses string `gorm:"type:text" json:"weaknesses,omitempty"`
}

type Interview struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ApplicationID uint              `gorm:"not null;index" json:"applicationId"`
	JobID         uint              `gorm:"not null;index" json:"jobId"`
	EmployerID    uint              `gorm:"not null;index" json:"employerId"`
	CandidateID   uint              `gorm:"not null;index" json:"candidateId"`
	ScheduledDate time.Time         `gorm:"not null;index" json:"scheduledDate"`
	Duration      int               `gorm:"not null;default:60" json:"duration"` // minutes
	Type          string            `gorm:"size:20;not null" json:"type"`
	Location      string            `gorm:"size:255" json:"location"`
	MeetingLink   string            `gorm:"size:512" json:"meetingLink"`
	Notes         string            `gorm:"type:text" json:"notes"`
	Status        string            `gorm:"size:20;not null;default:'scheduled';index" json:"status"`
	Feedback      InterviewFeedback `gorm:"embedded;embeddedPrefix:feedback_" json:"feedback"`
	ReminderSent  bool              `gorm:"not null;default:false" json:"reminderSent"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`

	Job       *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Candidate *User `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
	Employer  *User `gorm:"foreignKey:EmployerID" json:"-"`
}

func (Interview) TableName() string {
	return "interviews"
}
