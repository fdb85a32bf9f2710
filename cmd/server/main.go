package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hireboard/config"
	"hireboard/internal/database"
	"hireboard/internal/logger"
	"hireboard/internal/mailer"
	"hireboard/internal/models"
	"hireboard/internal/repository"
	"hireboard/internal/router"
	"hireboard/internal/ws"
	"hireboard/pkg/cloudinary"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	ctx := context.Background()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := repository.NewSettingRepository(db).SeedDefaults(ctx, models.DefaultSettings); err != nil {
		log.Fatalf("seed settings: %v", err)
	}

	var mail mailer.Dispatcher = mailer.LogDispatcher{}
	if cfg.Redis.URL != "" {
		rdb, err := mailer.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		mail = mailer.NewRedisDispatcher(rdb, cfg.Mail.QueueKey)
		log.Infof("[mail] queueing emails on redis list %s", cfg.Mail.QueueKey)
	} else {
		log.Info("[mail] REDIS_URL not set, emails are only logged")
	}

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Fatalf("cloudinary: %v", err)
		}
	}

	bus := EventBus.New()
	app, err := router.Setup(ctx, cfg, db, router.Deps{
		Cloud: cloud,
		Mail:  mail,
		Hub:   ws.NewHub(),
		Bus:   bus,
	})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	reminders := app.Reminders
	if reminders != nil {
		if err := reminders.Start(cfg.Reminders.Spec); err != nil {
			log.Fatalf("reminders: %v", err)
		}
		log.Infof("[reminders] interview reminders scheduled %q, window %s", cfg.Reminders.Spec, cfg.Reminders.Window)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Infof("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down...")

	if reminders != nil {
		reminders.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	// let async email handlers finish
	bus.WaitAsync()
	log.Info("server stopped")
}
