package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"msgboard/internal/config"
	"msgboard/internal/domain"
	apphttp "msgboard/internal/http"
	"msgboard/internal/mail"
	"msgboard/internal/repository/sqlite"
	"msgboard/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Session.Secret) == "" {
		logger.Fatalf("session secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	messageRepo := sqlite.NewMessageRepository(db)
	blogRepo := sqlite.NewBlogRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := messageRepo.Init(ctx); err != nil {
		logger.Fatalf("init message repository: %v", err)
	}
	if err := blogRepo.Init(ctx); err != nil {
		logger.Fatalf("init blog repository: %v", err)
	}

	// the configured administrator account may predate the role column
	if cfg.Admin.Name != "" {
		if err := userRepo.SetRole(ctx, cfg.Admin.Name, domain.RoleAdministrator); err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Fatalf("promote administrator: %v", err)
		}
	}

	mailer := mail.NewSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, logger)
	if cfg.SMTP.Host == "" {
		logger.Warn("smtp host not configured, verification mail will be logged instead")
	}

	userService := service.NewUserService(userRepo, mailer, cfg.Server.BaseURL, cfg.Admin.Name, cfg.Auth.BcryptCost)
	messageService := service.NewMessageService(messageRepo)
	blogService := service.NewBlogService(blogRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(apphttp.RequestLogger(logger))
	router.LoadHTMLGlob("web/templates/*.html")

	handler := apphttp.NewHandler(
		userService,
		messageService,
		blogService,
		logger,
		cfg.Session.Secret,
		time.Duration(cfg.Session.TTLHours)*time.Hour,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: apphttp.MethodOverride(router),
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
