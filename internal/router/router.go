package router

import (
	"context"
	"net/http"
	"slices"
	"time"

	"hireboard/config"
	"hireboard/internal/auth"
	"hireboard/internal/domain"
	"hireboard/internal/handler"
	"hireboard/internal/mailer"
	"hireboard/internal/metrics"
	"hireboard/internal/middleware"
	"hireboard/internal/repository"
	"hireboard/internal/service"
	"hireboard/internal/ws"
	"hireboard/pkg/cloudinary"

	"github.com/asaskevich/EventBus"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps are the collaborators main builds from config. A nil Cloud disables
// uploads.
type Deps struct {
	Cloud cloudinary.Client
	Mail  mailer.Dispatcher
	Hub   *ws.Hub
	Bus   EventBus.Bus
}

// App is what main runs: the HTTP engine and, when enabled, the interview
// reminder job that shares its publisher.
type App struct {
	Engine    *gin.Engine
	Reminders *service.ReminderJob
}

func Setup(ctx context.Context, cfg *config.Config, db *gorm.DB, deps Deps) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	cachedUsers := repository.NewCachedUsers(userRepo, cfg.Cache.UserTTL)
	jobRepo := repository.NewJobRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	savedJobRepo := repository.NewSavedJobRepository(db)
	jobAlertRepo := repository.NewJobAlertRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	resumeRepo := repository.NewResumeRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	var google auth.GoogleVerifier
	if cfg.OAuth.GoogleClientID != "" {
		google = auth.NewGoogleVerifier(cfg.OAuth)
	} else {
		log.Info("[auth] Google sign-in disabled: set GOOGLE_CLIENT_ID to enable")
	}
	authSvc := service.NewAuthService(&cfg.JWT, userRepo, settingRepo, auditRepo, google)

	fcmSvc := service.NewFCMService(ctx, cfg.Firebase.ServiceAccountPath)
	var notifSvc *service.NotificationService
	if fcmSvc != nil {
		log.Info("[FCM] Push notifications enabled")
		notifSvc = service.NewNotificationService(notificationRepo, cachedUsers, deps.Hub, fcmSvc)
	} else {
		log.Info("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
		notifSvc = service.NewNotificationService(notificationRepo, cachedUsers, deps.Hub, nil)
	}
	if deps.Cloud == nil {
		log.Info("[cloudinary] uploads disabled: set CLOUDINARY_* to enable")
	}

	dispatcher := service.NewDispatcher(notifSvc, cachedUsers, deps.Hub, deps.Mail, cfg.Mail.AppBaseURL)
	if err := dispatcher.Subscribe(deps.Bus); err != nil {
		return nil, err
	}
	publisher := service.NewPublisher(dispatcher, deps.Bus)

	jobSvc := service.NewJobService(jobRepo, companyRepo)
	applicationSvc := service.NewApplicationService(applicationRepo, jobRepo, cachedUsers, publisher, cfg.Applications.EnforceTransitions)
	interviewSvc := service.NewInterviewService(interviewRepo, applicationRepo, publisher)
	messageSvc := service.NewMessageService(messageRepo, cachedUsers, publisher)
	savedJobSvc := service.NewSavedJobService(savedJobRepo, jobRepo)
	jobAlertSvc := service.NewJobAlertService(jobAlertRepo)
	companySvc := service.NewCompanyService(companyRepo, reviewRepo, deps.Cloud, cfg.Cloudinary.Folder)
	reviewSvc := service.NewReviewService(reviewRepo, companyRepo)
	assessmentSvc := service.NewAssessmentService(assessmentRepo)
	resumeSvc := service.NewResumeService(resumeRepo, deps.Cloud, cfg.Cloudinary.Folder)
	userSvc := service.NewUserService(userRepo, cachedUsers, deps.Cloud, cfg.Cloudinary.Folder)
	adminSvc := service.NewAdminService(adminRepo, userRepo, jobSvc, settingRepo, auditRepo, cachedUsers)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(authSvc, cfg.IsProduction())
	userHandler := handler.NewUserHandler(userSvc)
	jobHandler := handler.NewJobHandler(jobSvc)
	applicationHandler := handler.NewApplicationHandler(applicationSvc)
	interviewHandler := handler.NewInterviewHandler(interviewSvc)
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	savedJobHandler := handler.NewSavedJobHandler(savedJobSvc)
	jobAlertHandler := handler.NewJobAlertHandler(jobAlertSvc)
	companyHandler := handler.NewCompanyHandler(companySvc, reviewSvc)
	assessmentHandler := handler.NewAssessmentHandler(assessmentSvc)
	resumeHandler := handler.NewResumeHandler(resumeSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	optionalAuth := middleware.OptionalAuth(&cfg.JWT)
	employerMw := middleware.RequireRole(domain.RoleEmployer, domain.RoleAdmin)
	jobSeekerMw := middleware.RequireRole(domain.RoleJobSeeker)

	r.GET("/health", health(db))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/ws/notifications", ws.UpgradeNotificationsWS(&cfg.JWT, deps.Hub))

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PUT("/change-password", authMw, authHandler.ChangePassword)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		users := api.Group("/users")
		{
			users.GET("/me", authMw, userHandler.Me)
			users.PUT("/me", authMw, userHandler.UpdateProfile)
			users.POST("/me/avatar", authMw, userHandler.UploadAvatar)
			users.PUT("/me/fcm-token", authMw, userHandler.RegisterFCMToken)
			users.GET("/:id", userHandler.PublicProfile)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.List)
			jobs.GET("/mine", authMw, employerMw, jobHandler.ListMine)
			jobs.GET("/:id", optionalAuth, jobHandler.Get)
			jobs.POST("", authMw, employerMw, jobHandler.Create)
			jobs.PUT("/:id", authMw, employerMw, jobHandler.Update)
			jobs.PUT("/:id/status", authMw, employerMw, jobHandler.UpdateStatus)
			jobs.GET("/:id/applications", authMw, employerMw, applicationHandler.ListForJob)
		}

		applications := api.Group("/applications", authMw)
		{
			applications.POST("", jobSeekerMw, applicationHandler.Submit)
			applications.GET("/mine", applicationHandler.ListMine)
			applications.GET("/employer", employerMw, applicationHandler.ListForEmployer)
			applications.GET("/:id", applicationHandler.Get)
			applications.PUT("/:id/status", employerMw, applicationHandler.UpdateStatus)
			applications.DELETE("/:id", applicationHandler.Withdraw)
		}

		interviews := api.Group("/interviews", authMw)
		{
			interviews.POST("", employerMw, interviewHandler.Schedule)
			interviews.GET("", interviewHandler.List)
			interviews.GET("/:id", interviewHandler.Get)
			interviews.PUT("/:id/status", employerMw, interviewHandler.UpdateStatus)
		}

		notifications := api.Group("/notifications", authMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PUT("/mark-all-read", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/clear-read", notificationHandler.ClearRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		messages := api.Group("/messages", authMw)
		{
			messages.POST("", messageHandler.Send)
			messages.GET("/conversations", messageHandler.ListConversations)
			messages.GET("/conversation/:userId", messageHandler.GetConversation)
			messages.PUT("/conversation/:userId/read", messageHandler.MarkConversationRead)
			messages.GET("/unread-count", messageHandler.UnreadCount)
			messages.DELETE("/:id", messageHandler.Delete)
		}

		savedJobs := api.Group("/saved-jobs", authMw)
		{
			savedJobs.GET("", savedJobHandler.List)
			savedJobs.GET("/check/:jobId", savedJobHandler.Check)
			savedJobs.POST("/:jobId", savedJobHandler.Save)
			savedJobs.PUT("/:jobId", savedJobHandler.UpdateNotes)
			savedJobs.DELETE("/:jobId", savedJobHandler.Remove)
		}

		jobAlerts := api.Group("/job-alerts", authMw)
		{
			jobAlerts.POST("", jobAlertHandler.Create)
			jobAlerts.GET("", jobAlertHandler.List)
			jobAlerts.GET("/:id", jobAlertHandler.Get)
			jobAlerts.PUT("/:id", jobAlertHandler.Update)
			jobAlerts.PUT("/:id/toggle", jobAlertHandler.Toggle)
			jobAlerts.DELETE("/:id", jobAlertHandler.Delete)
		}

		companies := api.Group("/companies")
		{
			companies.GET("", companyHandler.List)
			companies.GET("/mine", authMw, employerMw, companyHandler.Mine)
			companies.GET("/:id", companyHandler.Get)
			companies.POST("", authMw, employerMw, companyHandler.Create)
			companies.PUT("/:id", authMw, employerMw, companyHandler.Update)
			companies.POST("/:id/logo", authMw, employerMw, companyHandler.UploadLogo)
			companies.GET("/:id/reviews", companyHandler.ListReviews)
			companies.POST("/:id/reviews", authMw, companyHandler.CreateReview)
		}
		api.PUT("/reviews/:id", authMw, companyHandler.UpdateReview)
		api.DELETE("/reviews/:id", authMw, companyHandler.DeleteReview)

		assessments := api.Group("/assessments", authMw)
		{
			assessments.POST("", employerMw, assessmentHandler.Create)
			assessments.GET("", assessmentHandler.List)
			assessments.GET("/:id", assessmentHandler.Get)
			assessments.POST("/:id/submit", assessmentHandler.Submit)
			assessments.GET("/:id/results", assessmentHandler.Results)
		}

		resumes := api.Group("/resumes", authMw)
		{
			resumes.POST("", resumeHandler.Upload)
			resumes.GET("", resumeHandler.List)
			resumes.PUT("/:id/default", resumeHandler.SetDefault)
			resumes.DELETE("/:id", resumeHandler.Delete)
		}

		admin := api.Group("/admin", authMw, middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id/active", adminHandler.SetUserActive)
			admin.PUT("/jobs/:id/status", adminHandler.SetJobStatus)
			admin.DELETE("/jobs/:id", adminHandler.DeleteJob)
			admin.GET("/audit-logs", adminHandler.AuditLogs)
			admin.GET("/settings", adminHandler.Settings)
			admin.PUT("/settings/:key", adminHandler.UpdateSetting)
		}
	}

	app := &App{Engine: r}
	if cfg.Reminders.Enabled {
		app.Reminders = service.NewReminderJob(interviewRepo, publisher, cfg.Reminders.Window)
	}
	return app, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.MaxAge = 12 * time.Hour
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
