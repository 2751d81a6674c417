package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinichq/clinic-api/internal/config"
	"github.com/clinichq/clinic-api/internal/email"
	"github.com/clinichq/clinic-api/internal/handler"
	authHandler "github.com/clinichq/clinic-api/internal/handler/auth"
	catalogHandler "github.com/clinichq/clinic-api/internal/handler/catalog"
	doctorHandler "github.com/clinichq/clinic-api/internal/handler/doctor"
	emrHandler "github.com/clinichq/clinic-api/internal/handler/emr"
	patientHandler "github.com/clinichq/clinic-api/internal/handler/patient"
	prescriptionHandler "github.com/clinichq/clinic-api/internal/handler/prescription"
	receptionHandler "github.com/clinichq/clinic-api/internal/handler/reception"
	staffHandler "github.com/clinichq/clinic-api/internal/handler/staff"
	"github.com/clinichq/clinic-api/internal/middleware"
	"github.com/clinichq/clinic-api/internal/repository/postgres"
	"github.com/clinichq/clinic-api/internal/router"
	authService "github.com/clinichq/clinic-api/internal/service/auth"
	catalogService "github.com/clinichq/clinic-api/internal/service/catalog"
	dashboardService "github.com/clinichq/clinic-api/internal/service/dashboard"
	doctorService "github.com/clinichq/clinic-api/internal/service/doctor"
	emrService "github.com/clinichq/clinic-api/internal/service/emr"
	patientService "github.com/clinichq/clinic-api/internal/service/patient"
	prescriptionService "github.com/clinichq/clinic-api/internal/service/prescription"
	receptionService "github.com/clinichq/clinic-api/internal/service/reception"
	staffService "github.com/clinichq/clinic-api/internal/service/staff"
	visitService "github.com/clinichq/clinic-api/internal/service/visit"
	"github.com/clinichq/clinic-api/pkg/auth"
	"github.com/clinichq/clinic-api/pkg/logger"
	"github.com/clinichq/clinic-api/pkg/messaging"
	redisBroker "github.com/clinichq/clinic-api/pkg/messaging/redis"
	"github.com/clinichq/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level:      parseLogLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Repositories
	appointmentRepo := postgres.NewAppointmentRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	userRepo := postgres.NewUserRepository(db)
	recordRepo := postgres.NewMedicalRecordRepository(db)
	diagnosisRepo := postgres.NewDiagnosisRepository(db)
	icd10Repo := postgres.NewICD10Repository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	medicineRepo := postgres.NewMedicineRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	billRepo := postgres.NewBillRepository(db)

	// The broker is optional: without it status changes are still persisted,
	// the live screens just fall back to polling.
	var broker messaging.Broker
	if cfg.Redis.Enabled {
		broker, err = redisBroker.NewRedisBroker(redisBroker.Config{URL: cfg.Redis.URL}, log.Zerolog())
		if err != nil {
			log.Fatal(err, "failed to connect to Redis")
		}
		defer broker.Close()
	}

	notifier := email.NewSMTPService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Enabled:  cfg.SMTP.Enabled,
	})

	hasher := security.NewBcryptHasher(0)
	tokens := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Services
	visitSvc := visitService.NewService(appointmentRepo, patientRepo, userRepo, broker, log)
	receptionSvc := receptionService.NewService(appointmentRepo, patientRepo, userRepo, billRepo, notifier, log)
	doctorSvc := doctorService.NewService(appointmentRepo, patientRepo, userRepo)
	dashboardSvc := dashboardService.NewService(billRepo, appointmentRepo, patientRepo, userRepo)
	emrSvc := emrService.NewService(appointmentRepo, patientRepo, recordRepo, diagnosisRepo, icd10Repo, userRepo)
	prescriptionSvc := prescriptionService.NewService(appointmentRepo, recordRepo, prescriptionRepo, medicineRepo)
	patientSvc := patientService.NewService(patientRepo)
	staffSvc := staffService.NewService(userRepo, hasher)
	authSvc := authService.NewService(userRepo, hasher, tokens)
	catalogSvc := catalogService.NewService(serviceRepo)

	if err := handler.RegisterValidators(); err != nil {
		log.Fatal(err, "failed to register validators")
	}

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := router.NewRouter(
		log,
		authMiddleware,
		authHandler.NewHandler(authSvc),
		receptionHandler.NewHandler(receptionSvc, visitSvc),
		doctorHandler.NewHandler(doctorSvc, visitSvc),
		emrHandler.NewHandler(emrSvc),
		prescriptionHandler.NewHandler(prescriptionSvc),
		patientHandler.NewHandler(patientSvc),
		staffHandler.NewHandler(staffSvc, dashboardSvc),
		catalogHandler.NewHandler(catalogSvc),
		router.Config{
			CORSConfig:        middleware.DefaultCORSConfig(),
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			RateBurst:         cfg.RateLimit.Burst,
			MetricsPrefix:     "clinic",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited")
}

func parseLogLevel(level string) logger.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return logger.InfoLevel
	}
	return parsed
}
