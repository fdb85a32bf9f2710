// Package events holds the topics and payloads published on the in-process
// bus after a write has been committed.
package events

import "time"

var ApplicationSubmittedTopic = "ApplicationSubmittedEvent"

type ApplicationSubmitted struct {
	ApplicationID uint
	JobID         uint
	JobTitle      string
	EmployerID    uint
	ApplicantID   uint
	ApplicantName string
}

var ApplicationStatusChangedTopic = "ApplicationStatusChangedEvent"

type ApplicationStatusChanged struct {
	ApplicationID  uint
	JobID          uint
	JobTitle       string
	ApplicantID    uint
	ActorID        uint
	PreviousStatus string
	Status         string
	Notes          string
}

var InterviewScheduledTopic = "InterviewScheduledEvent"

type InterviewScheduled struct {
	InterviewID   uint
	ApplicationID uint
	JobID         uint
	JobTitle      string
	EmployerID    uint
	CandidateID   uint
	ScheduledDate time.Time
	Duration      int
	Type          string
	Location      string
	MeetingLink   string
}

var InterviewReminderDueTopic = "InterviewReminderDueEvent"

type InterviewReminderDue struct {
	InterviewID   uint
	JobTitle      string
	CandidateID   uint
	ScheduledDate time.Time
	Type          string
	Location      string
	MeetingLink   string
}

var MessageSentTopic = "MessageSentEvent"

type MessageSent struct {
	MessageID      uint
	ConversationID string
	SenderID       uint
	SenderName     string
	ReceiverID     uint
	Content        string
	CreatedAt      time.Time
}
