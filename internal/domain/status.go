package domain

import "github.com/samber/lo"

var applicationStatuses = []string{
	ApplicationPending,
	ApplicationReviewed,
	ApplicationShortlisted,
	ApplicationInterviewed,
	ApplicationAccepted,
	ApplicationRejected,
}

// applicationTransitions is only consulted when transition enforcement is
// switched on. Accepted and rejected are terminal.
var applicationTransitions = map[string][]string{
	ApplicationPending:     {ApplicationReviewed, ApplicationShortlisted, ApplicationRejected},
	ApplicationReviewed:    {ApplicationShortlisted, ApplicationInterviewed, ApplicationRejected},
	ApplicationShortlisted: {ApplicationInterviewed, ApplicationAccepted, ApplicationRejected},
	ApplicationInterviewed: {ApplicationAccepted, ApplicationRejected},
}

func ParseApplicationStatus(s string) (string, error) {
	if lo.Contains(applicationStatuses, s) {
		return s, nil
	}
	return "", Validation("unknown application status %q", s)
}

// IsApplicationTransitionAllowed reports whether from -> to is in the
// transition table. Writing the current status again is always allowed so
// notes can be edited.
func IsApplicationTransitionAllowed(from, to string) bool {
	if from == to {
		return true
	}
	return lo.Contains(applicationTransitions[from], to)
}

var interviewStatuses = []string{InterviewScheduled, InterviewCompleted, InterviewCancelled, InterviewRescheduled}

func ParseInterviewStatus(s string) (string, error) {
	if lo.Contains(interviewStatuses, s) {
		return s, nil
	}
	return "", Validation("unknown interview status %q", s)
}

var interviewTypes = []string{InterviewTypePhone, InterviewTypeVideo, InterviewTypeInPerson}

func ParseInterviewType(s string) (string, error) {
	if lo.Contains(interviewTypes, s) {
		return s, nil
	}
	return "", Validation("unknown interview type %q", s)
}

func ParseJobStatus(s string) (string, error) {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusSuspended:
		return s, nil
	}
	return "", Validation("unknown job status %q", s)
}

func ParseNotificationType(s string) (string, error) {
	if lo.Contains(NotificationTypes, s) {
		return s, nil
	}
	return "", Validation("unknown notification type %q", s)
}

func ParsePriority(s string) (string, error) {
	switch s {
	case "":
		return PriorityNormal, nil
	case PriorityLow, PriorityNormal, PriorityHigh:
		return s, nil
	}
	return "", Validation("unknown priority %q", s)
}
