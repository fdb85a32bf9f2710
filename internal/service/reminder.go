package service

import (
	"context"
	"fmt"
	"time"

	"hireboard/internal/events"
	"hireboard/internal/logger"
	"hireboard/internal/metrics"
	"hireboard/internal/repository"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// ReminderJob periodically reminds candidates of interviews starting within
// the configured window. Each interview is reminded at most once per date.
type ReminderJob struct {
	interviews *repository.InterviewRepository
	publisher  Notifier
	window     time.Duration
	cron       *cron.Cron
	now        func() time.Time
}

func NewReminderJob(interviews *repository.InterviewRepository, publisher Notifier, window time.Duration) *ReminderJob {
	return &ReminderJob{interviews: interviews, publisher: publisher, window: window, cron: cron.New(), now: time.Now}
}

// Start registers the reminder run under spec ("@every 15m", "*/10 * * * *")
// and starts the scheduler.
func (j *ReminderJob) Start(spec string) error {
	_, err := j.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := j.Run(ctx)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("interview reminders: %v", err)
			return
		}
		if n > 0 {
			log.Infof("Sent %d interview reminder(s)", n)
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	j.cron.Start()
	log.Infof("Interview reminder job started (%s, window %s)", spec, j.window)
	return nil
}

// Stop waits for a running reminder pass to finish.
func (j *ReminderJob) Stop() {
	<-j.cron.Stop().Done()
}

// Run sends the reminders that are due now and returns how many were sent.
func (j *ReminderJob) Run(ctx context.Context) (int, error) {
	now := j.now().UTC()
	due, err := j.interviews.DueForReminder(ctx, now, now.Add(j.window))
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, iv := range due {
		won, err := j.interviews.MarkReminderSent(ctx, iv.ID)
		if err != nil {
			return sent, err
		}
		if !won {
			continue
		}
		jobTitle := ""
		if iv.Job != nil {
			jobTitle = iv.Job.Title
		}
		j.publisher.InterviewReminderDue(ctx, events.InterviewReminderDue{
			InterviewID:   iv.ID,
			JobTitle:      jobTitle,
			CandidateID:   iv.CandidateID,
			ScheduledDate: iv.ScheduledDate,
			Type:          iv.Type,
			Location:      iv.Location,
			MeetingLink:   iv.MeetingLink,
		})
		metrics.InterviewRemindersSent.Inc()
		sent++
	}
	return sent, nil
}
