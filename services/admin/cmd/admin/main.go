package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgdb "github.com/userwale/projetskillhub/pkg/db"
	"github.com/userwale/projetskillhub/pkg/events"
	"github.com/userwale/projetskillhub/pkg/gateway"
	"github.com/userwale/projetskillhub/pkg/httpx"
	"github.com/userwale/projetskillhub/pkg/logging"
	loggingmw "github.com/userwale/projetskillhub/pkg/middleware/logging"

	admincfg "github.com/userwale/projetskillhub/services/admin/internal/config"
	"github.com/userwale/projetskillhub/services/admin/internal/httpserver"
	"github.com/userwale/projetskillhub/services/admin/internal/models"
	"github.com/userwale/projetskillhub/services/admin/internal/repo"
	"github.com/userwale/projetskillhub/services/admin/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := admincfg.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	producer := events.NewProducer(cfg.KafkaBrokers, "admin_events")
	defer producer.Close()

	r := &repo.GormRepo{DB: db}
	adminSvc := &service.AdminService{Repo: r, JWTSecret: cfg.JWTSecret, ActivationKey: cfg.ActivationKey, Producer: producer}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpx.ErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AdminHandler: &httpserver.AdminHTTP{Svc: adminSvc},
		ProxyHandler: &httpserver.ProxyHTTP{
			Instructor: gateway.NewClient(cfg.InstructorURL),
			Learner:    gateway.NewClient(cfg.LearnerURL),
		},
		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("admin listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("admin stopped")
}
