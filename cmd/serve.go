package cmd

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anseninnov/conference-registration/app/controller"
	"github.com/anseninnov/conference-registration/app/mailer"
	"github.com/anseninnov/conference-registration/app/pricing"
	"github.com/anseninnov/conference-registration/app/provider"
	"github.com/anseninnov/conference-registration/app/repository"
	"github.com/anseninnov/conference-registration/app/service"
	"github.com/anseninnov/conference-registration/app/storage"
	"github.com/anseninnov/conference-registration/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the Echo HTTP server that backs the registration, payment, and visa request forms.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type controllers struct {
	registration *controller.RegistrationController
	webhook      *controller.WebhookController
	invoice      *controller.InvoiceController
	visa         *controller.VisaController
	upload       *controller.UploadController
	paymentLog   *controller.PaymentLogController
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, ctrls, cleanup := mustCreateControllers()
	defer cleanup()

	e := setupHTTPServer(ctrls)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}

	logrus.Info("Server stopped")
}

func setupHTTPServer(ctrls controllers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
				"request_id": v.RequestID,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.GET("/health", ctrls.registration.Health)

	e.POST("/customers", ctrls.registration.CreateCustomer)
	e.GET("/customers", ctrls.registration.ListCustomers)
	e.GET("/customers/export", ctrls.registration.ExportCustomers)
	e.GET("/pricing", ctrls.registration.Quote)
	e.GET("/registrations/:id/checkout", ctrls.registration.CheckoutLink)

	e.POST("/webhooks/stripe", ctrls.webhook.HandleStripe)

	invoices := e.Group("/invoices")
	invoices.POST("/pdf", ctrls.invoice.RenderPDF)
	invoices.POST("/html", ctrls.invoice.RenderHTML)
	invoices.POST("/send", ctrls.invoice.Send)

	e.POST("/visa-requests", ctrls.visa.CreateVisaRequest)
	e.POST("/payment-logs", ctrls.paymentLog.CreatePaymentLog)

	if ctrls.upload != nil {
		e.POST("/upload", ctrls.upload.Upload)
	}

	return e
}

func mustCreateControllers() (*config.Config, controllers, func()) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	customerRepo := repository.NewCustomerRepository(db)
	paymentLogRepo := repository.NewPaymentLogRepository(db)
	visaRepo := repository.NewVisaRequestRepository(db)
	eventRepo := repository.NewWebhookEventRepository(db)

	stripeClient := provider.NewStripeClient(provider.StripeConfig{
		SecretKey:                 cfg.Stripe.SecretKey,
		WebhookSecret:             cfg.Stripe.WebhookSecret,
		APIBaseURL:                cfg.Stripe.APIBaseURL,
		SignatureToleranceSeconds: cfg.Stripe.SignatureToleranceSeconds,
		HTTPTimeout:               cfg.Stripe.HTTPTimeout,
	})

	schedule := pricing.NewSchedule(cfg.Pricing)
	registrationService := service.NewRegistrationService(customerRepo, schedule)

	invoiceDispatcher := service.NewHTTPInvoiceDispatcher(cfg.Invoice.EmailServiceURL, cfg.Invoice.HTTPTimeout)
	webhookService := service.NewWebhookService(
		stripeClient,
		customerRepo,
		paymentLogRepo,
		eventRepo,
		invoiceDispatcher,
		cfg.Invoice.TaxRate,
	)

	visaService := service.NewVisaService(visaRepo)

	ctrls := controllers{
		registration: controller.NewRegistrationController(registrationService),
		webhook:      controller.NewWebhookController(webhookService),
		invoice:      controller.NewInvoiceController(mailer.New(cfg.SMTP)),
		visa:         controller.NewVisaController(visaService),
		paymentLog:   controller.NewPaymentLogController(paymentLogRepo),
	}

	if cfg.Storage.Endpoint != "" {
		store, err := storage.New(cfg.Storage)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize object storage")
		}
		ctrls.upload = controller.NewUploadController(store)
	} else {
		logrus.Warn("Object storage not configured, upload endpoint disabled")
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	return cfg, ctrls, cleanup
}

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	return nil
}
