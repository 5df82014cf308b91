package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/vetcarepro/clinic-api/config"
	"github.com/vetcarepro/clinic-api/internal/email"
	appointmentHandler "github.com/vetcarepro/clinic-api/internal/handler/appointment"
	authHandler "github.com/vetcarepro/clinic-api/internal/handler/auth"
	billingHandler "github.com/vetcarepro/clinic-api/internal/handler/billing"
	catalogHandler "github.com/vetcarepro/clinic-api/internal/handler/catalog"
	clientHandler "github.com/vetcarepro/clinic-api/internal/handler/client"
	healthHandler "github.com/vetcarepro/clinic-api/internal/handler/health"
	inventoryHandler "github.com/vetcarepro/clinic-api/internal/handler/inventory"
	medicalHandler "github.com/vetcarepro/clinic-api/internal/handler/medical"
	paymentHandler "github.com/vetcarepro/clinic-api/internal/handler/payment"
	petHandler "github.com/vetcarepro/clinic-api/internal/handler/pet"
	portalHandler "github.com/vetcarepro/clinic-api/internal/handler/portal"
	staffHandler "github.com/vetcarepro/clinic-api/internal/handler/staff"
	"github.com/vetcarepro/clinic-api/internal/middleware"
	"github.com/vetcarepro/clinic-api/internal/payment"
	"github.com/vetcarepro/clinic-api/internal/repository/postgres"
	"github.com/vetcarepro/clinic-api/internal/router"
	"github.com/vetcarepro/clinic-api/internal/service"
	"github.com/vetcarepro/clinic-api/pkg/auth"
	"github.com/vetcarepro/clinic-api/pkg/logger"
	"github.com/vetcarepro/clinic-api/pkg/messaging"
	"github.com/vetcarepro/clinic-api/pkg/messaging/redis"
	"github.com/vetcarepro/clinic-api/pkg/metrics"
	"github.com/vetcarepro/clinic-api/pkg/security"
	"github.com/vetcarepro/clinic-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:      logger.ParseLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Logging.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database.ToDBConfig())
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redis.NewBroker(cfg.Redis.ToBrokerConfig(), log)
		if err != nil {
			log.Fatal(err, "failed to connect to redis")
		}
	}

	m := metrics.New("clinic_api")

	// Repositories
	clientRepo := postgres.NewClientRepository(db)
	petRepo := postgres.NewPetRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	medicalRepo := postgres.NewMedicalRecordRepository(db)
	productRepo := postgres.NewProductRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Shared infrastructure
	hasher := security.NewBcryptHasher(0)
	jwtSvc := auth.NewJWTService(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryHours)*time.Hour,
		cfg.JWT.Issuer,
	)
	provider := payment.NewClient(payment.ClientConfig{
		BaseURL: cfg.Payments.BaseURL,
		APIKey:  cfg.Payments.APIKey,
		Timeout: cfg.Payments.Timeout,
	}, log, m)

	hours := service.ClinicHours{
		Open:        cfg.Clinic.OpenTime,
		Close:       cfg.Clinic.CloseTime,
		SlotMinutes: cfg.Clinic.SlotMinutes,
	}

	// Services
	authSvc := service.NewAuthService(staffRepo, clientRepo, hasher, jwtSvc, log)
	clientSvc := service.NewClientService(clientRepo, outboxRepo, hasher, log)
	petSvc := service.NewPetService(petRepo, clientRepo, log)
	staffSvc := service.NewStaffService(staffRepo, hasher, log)
	catalogSvc := service.NewCatalogService(serviceRepo, log)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, clientRepo, petRepo, serviceRepo, staffRepo, hours, log)
	medicalSvc := service.NewMedicalService(medicalRepo, appointmentRepo, petRepo, staffRepo, log)
	inventorySvc := service.NewInventoryService(productRepo, inventoryRepo, log)
	billingSvc := service.NewBillingService(invoiceRepo, clientRepo, log)
	paymentSvc := service.NewPaymentService(appointmentRepo, clientRepo, serviceRepo, invoiceRepo, provider, service.PaymentConfig{
		SuccessURL: cfg.Payments.ReturnURL,
		CancelURL:  cfg.Payments.CancelURL,
	}, log)

	// HTTP layer
	authMW := middleware.NewAuthMiddleware(jwtSvc)
	handlers := router.Handlers{
		Health:      healthHandler.NewHandler(db),
		Auth:        authHandler.NewHandler(authSvc),
		Client:      clientHandler.NewHandler(clientSvc, petSvc, billingSvc),
		Pet:         petHandler.NewHandler(petSvc, medicalSvc),
		Staff:       staffHandler.NewHandler(staffSvc),
		Catalog:     catalogHandler.NewHandler(catalogSvc),
		Appointment: appointmentHandler.NewHandler(appointmentSvc),
		Medical:     medicalHandler.NewHandler(medicalSvc),
		Inventory:   inventoryHandler.NewHandler(inventorySvc),
		Billing:     billingHandler.NewHandler(billingSvc),
		Payment:     paymentHandler.NewHandler(paymentSvc),
		Portal:      portalHandler.NewHandler(appointmentSvc, petSvc, billingSvc),
	}

	routerCfg := router.Config{
		CORS:          middleware.DefaultCORSConfig(),
		Timeout:       30 * time.Second,
		MetricsPrefix: "clinic_api_http",
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = cfg.RateLimit.RequestsPerSecond
		routerCfg.RateBurst = cfg.RateLimit.Burst
	}

	r := router.New(authMW, handlers, log, routerCfg)
	r.Setup()

	// Outbox processor shares the process in single-binary deployments.
	// cmd/worker runs it standalone.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	processor := worker.NewOutboxProcessor(outboxRepo, sender, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		RetryAttempts: cfg.Outbox.RetryAttempts,
		RetryDelay:    cfg.Outbox.RetryDelay,
	}, log, m)
	go processor.Start(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "graceful shutdown failed")
	}
}
