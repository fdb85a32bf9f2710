package service

import (
	"context"
	"fmt"
	"time"

	"hireboard/internal/domain"
	"hireboard/internal/events"
	"hireboard/internal/logger"
	"hireboard/internal/mailer"
	"hireboard/internal/metrics"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

const dispatchTimeout = 15 * time.Second

// Notifier receives committed domain events in the goroutine that committed
// them.
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, e events.ApplicationSubmitted)
	ApplicationStatusChanged(ctx context.Context, e events.ApplicationStatusChanged)
	InterviewScheduled(ctx context.Context, e events.InterviewScheduled)
	InterviewReminderDue(ctx context.Context, e events.InterviewReminderDue)
	MessageSent(ctx context.Context, e events.MessageSent)
}

// Publisher writes the inbox entry for an event before returning, then hands
// the event to the bus where only asynchronous subscribers (emails) listen.
// The bus holds one lock for the whole of a synchronous delivery, so nothing
// that does I/O is subscribed synchronously.
type Publisher struct {
	inbox Notifier
	bus   EventBus.Bus
}

func NewPublisher(inbox Notifier, bus EventBus.Bus) *Publisher {
	return &Publisher{inbox: inbox, bus: bus}
}

func (p *Publisher) publish(topic string, e interface{}) {
	if p.bus != nil {
		p.bus.Publish(topic, e)
	}
}

func (p *Publisher) ApplicationSubmitted(ctx context.Context, e events.ApplicationSubmitted) {
	if p.inbox != nil {
		p.inbox.ApplicationSubmitted(ctx, e)
	}
	p.publish(events.ApplicationSubmittedTopic, e)
}

func (p *Publisher) ApplicationStatusChanged(ctx context.Context, e events.ApplicationStatusChanged) {
	if p.inbox != nil {
		p.inbox.ApplicationStatusChanged(ctx, e)
	}
	p.publish(events.ApplicationStatusChangedTopic, e)
}

func (p *Publisher) InterviewScheduled(ctx context.Context, e events.InterviewScheduled) {
	if p.inbox != nil {
		p.inbox.InterviewScheduled(ctx, e)
	}
	p.publish(events.InterviewScheduledTopic, e)
}

func (p *Publisher) InterviewReminderDue(ctx context.Context, e events.InterviewReminderDue) {
	if p.inbox != nil {
		p.inbox.InterviewReminderDue(ctx, e)
	}
	p.publish(events.InterviewReminderDueTopic, e)
}

func (p *Publisher) MessageSent(ctx context.Context, e events.MessageSent) {
	if p.inbox != nil {
		p.inbox.MessageSent(ctx, e)
	}
	p.publish(events.MessageSentTopic, e)
}

// Dispatcher turns committed domain events into inbox notifications and
// outgoing emails. Neither ever fails the original write.
type Dispatcher struct {
	notifications *NotificationService
	users         userLookup
	hub           realtimePusher
	mail          mailer.Dispatcher
	baseURL       string
}

func NewDispatcher(notifications *NotificationService, users userLookup, hub realtimePusher, mail mailer.Dispatcher, baseURL string) *Dispatcher {
	return &Dispatcher{notifications: notifications, users: users, hub: hub, mail: mail, baseURL: baseURL}
}

// Subscribe registers the email handlers on the bus.
func (d *Dispatcher) Subscribe(bus EventBus.Bus) error {
	if d.mail == nil {
		return nil
	}
	async := []struct {
		topic string
		fn    interface{}
	}{
		{events.ApplicationSubmittedTopic, d.mailApplicationReceived},
		{events.ApplicationStatusChangedTopic, d.mailApplicationStatusUpdate},
		{events.InterviewScheduledTopic, d.mailInterviewScheduled},
		{events.InterviewReminderDueTopic, d.mailInterviewReminder},
	}
	for _, s := range async {
		if err := bus.SubscribeAsync(s.topic, s.fn, false); err != nil {
			return fmt.Errorf("subscribe async %s: %w", s.topic, err)
		}
	}
	return nil
}

func (d *Dispatcher) notify(ctx context.Context, in CreateNotificationInput) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
	defer cancel()
	if _, err := d.notifications.Create(ctx, in); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("create %s notification for user %d: %v", in.Type, in.RecipientID, err)
	}
}

func (d *Dispatcher) ApplicationSubmitted(ctx context.Context, e events.ApplicationSubmitted) {
	d.notify(ctx, CreateNotificationInput{
		RecipientID: e.EmployerID,
		Type:        domain.NotificationApplication,
		Title:       "New application",
		Message:     fmt.Sprintf("%s applied for %s", e.ApplicantName, e.JobTitle),
		Link:        fmt.Sprintf("/employer/applications/%d", e.ApplicationID),
		Priority:    domain.PriorityNormal,
	})
}

func (d *Dispatcher) ApplicationStatusChanged(ctx context.Context, e events.ApplicationStatusChanged) {
	priority := domain.PriorityNormal
	if e.Status == domain.ApplicationAccepted || e.Status == domain.ApplicationShortlisted {
		priority = domain.PriorityHigh
	}
	d.notify(ctx, CreateNotificationInput{
		RecipientID: e.ApplicantID,
		Type:        domain.NotificationStatusUpdate,
		Title:       "Application status updated",
		Message:     fmt.Sprintf("Your application for %s is now %s", e.JobTitle, e.Status),
		Link:        fmt.Sprintf("/applications/%d", e.ApplicationID),
		Priority:    priority,
	})
}

func (d *Dispatcher) InterviewScheduled(ctx context.Context, e events.InterviewScheduled) {
	d.notify(ctx, CreateNotificationInput{
		RecipientID: e.CandidateID,
		Type:        domain.NotificationInterview,
		Title:       "Interview scheduled",
		Message: fmt.Sprintf("Your %s interview for %s is scheduled for %s",
			e.Type, e.JobTitle, e.ScheduledDate.UTC().Format(time.RFC1123)),
		Link:     fmt.Sprintf("/interviews/%d", e.InterviewID),
		Priority: domain.PriorityHigh,
	})
}

func (d *Dispatcher) InterviewReminderDue(ctx context.Context, e events.InterviewReminderDue) {
	d.notify(ctx, CreateNotificationInput{
		RecipientID: e.CandidateID,
		Type:        domain.NotificationInterview,
		Title:       "Interview reminder",
		Message: fmt.Sprintf("Reminder: your interview for %s starts %s",
			e.JobTitle, e.ScheduledDate.UTC().Format(time.RFC1123)),
		Link:     fmt.Sprintf("/interviews/%d", e.InterviewID),
		Priority: domain.PriorityHigh,
	})
}

func (d *Dispatcher) MessageSent(ctx context.Context, e events.MessageSent) {
	d.notify(ctx, CreateNotificationInput{
		RecipientID: e.ReceiverID,
		Type:        domain.NotificationMessage,
		Title:       "New message",
		Message:     fmt.Sprintf("%s sent you a message", e.SenderName),
		Link:        fmt.Sprintf("/messages/%d", e.SenderID),
		Priority:    domain.PriorityNormal,
	})
	if d.hub != nil {
		d.hub.BroadcastToUser(e.ReceiverID, "message", e)
	}
}

func (d *Dispatcher) send(userID uint, template string, args map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	entry := log.WithFields(log.Fields{"template": template, "user_id": userID})
	u, err := d.users.GetByID(ctx, userID)
	if err != nil {
		metrics.EmailsDispatched.WithLabelValues(template, "error").Inc()
		entry.WithField(logger.ErrorTypeField, logger.ErrorTypeEmail).Errorf("load email recipient: %v", err)
		return
	}
	args["name"] = u.Name
	args["baseUrl"] = d.baseURL
	if err := d.mail.Dispatch(ctx, mailer.Email{To: u.Email, Template: template, Args: args}); err != nil {
		metrics.EmailsDispatched.WithLabelValues(template, "error").Inc()
		entry.WithField(logger.ErrorTypeField, logger.ErrorTypeEmail).Errorf("dispatch email: %v", err)
		return
	}
	metrics.EmailsDispatched.WithLabelValues(template, "ok").Inc()
}

func (d *Dispatcher) mailApplicationReceived(e events.ApplicationSubmitted) {
	d.send(e.EmployerID, domain.TemplateApplicationReceived, map[string]interface{}{
		"applicantName": e.ApplicantName,
		"jobTitle":      e.JobTitle,
		"link":          fmt.Sprintf("%s/employer/applications/%d", d.baseURL, e.ApplicationID),
	})
}

func (d *Dispatcher) mailApplicationStatusUpdate(e events.ApplicationStatusChanged) {
	d.send(e.ApplicantID, domain.TemplateApplicationStatusUpdate, map[string]interface{}{
		"jobTitle": e.JobTitle,
		"status":   e.Status,
		"notes":    e.Notes,
		"link":     fmt.Sprintf("%s/applications/%d", d.baseURL, e.ApplicationID),
	})
}

func (d *Dispatcher) mailInterviewScheduled(e events.InterviewScheduled) {
	d.send(e.CandidateID, domain.TemplateInterviewScheduled, map[string]interface{}{
		"jobTitle":      e.JobTitle,
		"scheduledDate": e.ScheduledDate.UTC().Format(time.RFC3339),
		"duration":      e.Duration,
		"type":          e.Type,
		"location":      e.Location,
		"meetingLink":   e.MeetingLink,
		"link":          fmt.Sprintf("%s/interviews/%d", d.baseURL, e.InterviewID),
	})
}

func (d *Dispatcher) mailInterviewReminder(e events.InterviewReminderDue) {
	d.send(e.CandidateID, domain.TemplateInterviewReminder, map[string]interface{}{
		"jobTitle":      e.JobTitle,
		"scheduledDate": e.ScheduledDate.UTC().Format(time.RFC3339),
		"type":          e.Type,
		"location":      e.Location,
		"meetingLink":   e.MeetingLink,
		"link":          fmt.Sprintf("%s/interviews/%d", d.baseURL, e.InterviewID),
	})
}
