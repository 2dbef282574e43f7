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
	"github.com/userwale/projetskillhub/pkg/httpx"
	"github.com/userwale/projetskillhub/pkg/logging"
	loggingmw "github.com/userwale/projetskillhub/pkg/middleware/logging"

	instructorcfg "github.com/userwale/projetskillhub/services/instructor/internal/config"
	"github.com/userwale/projetskillhub/services/instructor/internal/httpserver"
	"github.com/userwale/projetskillhub/services/instructor/internal/models"
	"github.com/userwale/projetskillhub/services/instructor/internal/repo"
	"github.com/userwale/projetskillhub/services/instructor/internal/search"
	"github.com/userwale/projetskillhub/services/instructor/internal/service"
	"github.com/userwale/projetskillhub/services/instructor/internal/upload"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := instructorcfg.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.Instructor{}, &models.Course{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	var index *search.Index
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index = &search.Index{ES: es, Name: search.DefaultIndex}
	}

	producer := events.NewProducer(cfg.KafkaBrokers, "instructor_events")
	defer producer.Close()

	r := &repo.GormRepo{DB: db}
	files := &upload.Store{BaseDir: cfg.UploadDir}

	instructorSvc := &service.InstructorService{Repo: r, JWTSecret: cfg.JWTSecret, Producer: producer}
	courseSvc := &service.CourseService{Repo: r, Index: index, Files: files, Producer: producer}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpx.ErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		InstructorHandler: &httpserver.InstructorHTTP{Svc: instructorSvc},
		CourseHandler:     &httpserver.CourseHTTP{Svc: courseSvc},
		JWTSecret:         cfg.JWTSecret,
		UploadDir:         cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.ServerPort),
		Handler: e,
		// Content uploads can run to 300MB, so the read timeout is generous.
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("instructor listening on %s", srv.Addr)
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

	log.Println("instructor stopped")
}
