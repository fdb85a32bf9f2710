package models

import "time"

type Question struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Points      int      `json:"points"`
}

type Assessment struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CreatorID       uint       `gorm:"not null;index" json:"creatorId"`
	JobID           *uint      `gorm:"index" json:"jobId"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Skill           string     `gorm:"size:100;index" json:"skill"`
	DurationMinutes int        `gorm:"not null;default:30" json:"durationMinutes"`
	PassingScore    int        `gorm:"not null;default:70" json:"passingScore"` // percent of max score
	Questions       []Question `gorm:"type:text;serializer:json" json:"questions"`
	IsActive        bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// WithoutAnswers returns a copy with every answer index blanked out.
func (a Assessment) WithoutAnswers() Assessment {
	qs := make([]Question, len(a.Questions))
	for i, q := range a.Questions {
		q.AnswerIndex = -1
		qs[i] = q
	}
	a.Questions = qs
	return a
}

type AssessmentResult struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssessmentID uint      `gorm:"not null;index:idx_result_assessment_user,unique" json:"assessmentId"`
	UserID       uint      `gorm:"not null;index:idx_result_assessment_user,unique;index:idx_result_user" json:"userId"`
	Answers      []int     `gorm:"type:text;serializer:json" json:"answers"`
	Score        int       `gorm:"not null" json:"score"`
	MaxScore     int       `gorm:"not null" json:"maxScore"`
	Passed       bool      `gorm:"not null" json:"passed"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}
