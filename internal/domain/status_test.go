package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseApplicationStatus_ValidValues(t *testing.T) {
	for _, s := range []string{"pending", "reviewed", "shortlisted", "interviewed", "accepted", "rejected"} {
		got, err := ParseApplicationStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func Test_ParseApplicationStatus_Invalid(t *testing.T) {
	for _, s := range []string{"", "PENDING", "hired"} {
		_, err := ParseApplicationStatus(s)
		assert.True(t, IsKind(err, KindValidation), "status %q", s)
	}
}

func Test_IsApplicationTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{ApplicationPending, ApplicationReviewed, true},
		{ApplicationPending, ApplicationRejected, true},
		{ApplicationReviewed, ApplicationInterviewed, true},
		{ApplicationShortlisted, ApplicationAccepted, true},
		{ApplicationInterviewed, ApplicationAccepted, true},
		{ApplicationPending, ApplicationAccepted, false},
		{ApplicationAccepted, ApplicationPending, false},
		{ApplicationRejected, ApplicationShortlisted, false},
		{ApplicationRejected, ApplicationRejected, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.allowed, IsApplicationTransitionAllowed(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func Test_ParseInterviewValues(t *testing.T) {
	_, err := ParseInterviewStatus("rescheduled")
	assert.NoError(t, err)
	_, err = ParseInterviewStatus("postponed")
	assert.Error(t, err)

	_, err = ParseInterviewType("in-person")
	assert.NoError(t, err)
	_, err = ParseInterviewType("onsite")
	assert.Error(t, err)
}

func Test_ParsePriority_DefaultsToNormal(t *testing.T) {
	p, err := ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityNormal, p)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}
