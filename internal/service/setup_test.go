package service

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"hireboard/internal/mailer"
	"hireboard/internal/repository"
	"hireboard/internal/testutil"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingMailer struct {
	mu     sync.Mutex
	emails []mailer.Email
	failed int
	err    error
}

func (m *recordingMailer) Dispatch(_ context.Context, email mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		m.failed++
		return m.err
	}
	m.emails = append(m.emails, email)
	return nil
}

func (m *recordingMailer) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *recordingMailer) failures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failed
}

func (m *recordingMailer) sent() []mailer.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Email(nil), m.emails...)
}

type recordingHub struct {
	mu     sync.Mutex
	frames map[uint][]string
}

func (h *recordingHub) BroadcastToUser(userID uint, eventType string, _ interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.frames == nil {
		h.frames = map[uint][]string{}
	}
	h.frames[userID] = append(h.frames[userID], eventType)
}

func (h *recordingHub) sentTo(userID uint) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.frames[userID]...)
}

// env is a fully wired service layer over an in-memory database.
type env struct {
	db            *gorm.DB
	bus           EventBus.Bus
	publisher     *Publisher
	mail          *recordingMailer
	hub           *recordingHub
	users         *repository.UserRepository
	notifications *NotificationService
	applications  *ApplicationService
	interviews    *InterviewService
	messages      *MessageService
	savedJobs     *SavedJobService
	jobs          *JobService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	bus := EventBus.New()
	// runs before the database is closed
	t.Cleanup(bus.WaitAsync)
	e := &env{db: db, bus: bus, mail: &recordingMailer{}, hub: &recordingHub{}}

	e.users = repository.NewUserRepository(db)
	jobs := repository.NewJobRepository(db)
	apps := repository.NewApplicationRepository(db)

	e.notifications = NewNotificationService(repository.NewNotificationRepository(db), e.users, e.hub, nil)
	d := NewDispatcher(e.notifications, e.users, e.hub, e.mail, "https://hireboard.test")
	require.NoError(t, d.Subscribe(bus))
	e.publisher = NewPublisher(d, bus)

	e.applications = NewApplicationService(apps, jobs, e.users, e.publisher, false)
	e.interviews = NewInterviewService(repository.NewInterviewRepository(db), apps, e.publisher)
	e.messages = NewMessageService(repository.NewMessageRepository(db), e.users, e.publisher)
	e.savedJobs = NewSavedJobService(repository.NewSavedJobRepository(db), jobs)
	e.jobs = NewJobService(jobs, repository.NewCompanyRepository(db))
	return e
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
