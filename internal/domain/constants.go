package domain

const (
	RoleJobSeeker = "jobseeker"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

const (
	JobStatusOpen      = "open"
	JobStatusClosed    = "closed"
	JobStatusSuspended = "suspended"
)

var JobTypes = []string{"full-time", "part-time", "contract", "internship", "remote"}

var ExperienceLevels = []string{"entry", "mid", "senior", "lead", "executive"}

const (
	ApplicationPending     = "pending"
	ApplicationReviewed    = "reviewed"
	ApplicationShortlisted = "shortlisted"
	ApplicationInterviewed = "interviewed"
	ApplicationAccepted    = "accepted"
	ApplicationRejected    = "rejected"
)

const (
	InterviewScheduled   = "scheduled"
	InterviewCompleted   = "completed"
	InterviewCancelled   = "cancelled"
	InterviewRescheduled = "rescheduled"
)

const (
	InterviewTypePhone    = "phone"
	InterviewTypeVideo    = "video"
	InterviewTypeInPerson = "in-person"
)

const (
	NotificationApplication  = "application"
	NotificationMessage      = "message"
	NotificationJobAlert     = "job_alert"
	NotificationSystem       = "system"
	NotificationInterview    = "interview"
	NotificationStatusUpdate = "status_update"
)

var NotificationTypes = []string{
	NotificationApplication,
	NotificationMessage,
	NotificationJobAlert,
	NotificationSystem,
	NotificationInterview,
	NotificationStatusUpdate,
}

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

var AlertFrequencies = []string{"instant", "daily", "weekly"}

// Email templates understood by the mail worker that drains the outbox.
const (
	TemplateApplicationReceived     = "applicationReceived"
	TemplateApplicationStatusUpdate = "applicationStatusUpdate"
	TemplateInterviewScheduled      = "interviewScheduled"
	TemplateInterviewReminder       = "interviewReminder"
)
