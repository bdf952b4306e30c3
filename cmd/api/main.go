package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/Obrix-api/docs"
	appanalytics "github.com/jhoicas/Obrix-api/internal/application/analytics"
	"github.com/jhoicas/Obrix-api/internal/application/auth"
	"github.com/jhoicas/Obrix-api/internal/application/billing"
	"github.com/jhoicas/Obrix-api/internal/application/checkout"
	"github.com/jhoicas/Obrix-api/internal/application/esign"
	"github.com/jhoicas/Obrix-api/internal/application/estimating"
	"github.com/jhoicas/Obrix-api/internal/application/export"
	"github.com/jhoicas/Obrix-api/internal/application/inventory"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/application/security"
	"github.com/jhoicas/Obrix-api/internal/application/usecase"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/awscfg"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/catalog"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/dynamo"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/mail"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/payments"
	infrapdf "github.com/jhoicas/Obrix-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/sanitize"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Obrix-api/internal/interfaces/http"
	"github.com/jhoicas/Obrix-api/pkg/config"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

// @title                       Obrix API
// @version                     1.0
// @description                 Backend para contratistas: cotizaciones EasyCalc, CRM, facturación, cuadrilla, materiales, presupuesto y firma electrónica.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// ── Repositorios ──
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	timeEntryRepo := postgres.NewTimeEntryRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	estimateRepo := postgres.NewEstimateRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// ── AWS: borradores en DynamoDB y documentos en S3 ──
	awsCfg, err := awscfg.Load(ctx, cfg.AWS)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración AWS")
	}
	endpoint := awscfg.Endpoint(cfg.AWS)
	draftStore := dynamo.NewDraftStore(dynamo.NewClient(awsCfg, endpoint), cfg.AWS.DraftsTable)
	documentStorage := storage.NewS3Storage(storage.NewClient(awsCfg, endpoint), cfg.AWS.DocumentsBucket)

	// ── Planes, seguridad y servicios externos ──
	planCatalog, err := catalog.Load(cfg.Catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de planes")
	}

	events := security.NewEventLog(cfg.Security.EventBufferSize, log)
	sessions := security.NewSessionMonitor(cfg.Security.SessionIdleTimeout, cfg.Security.SessionSweepInterval, events, log).
		WithTokenLifetime(time.Duration(cfg.JWT.Expiration) * time.Minute)
	sessions.Start(ctx)
	defer sessions.Stop()

	// Sin token de Mercado Pago el checkout responde 503; el resto de la API sigue operando.
	var gateway ports.PaymentGateway
	mp, err := payments.NewMercadoPagoGateway(cfg.Payments, cfg.App.BaseURL, log.Component("payments"))
	switch {
	case errors.Is(err, payments.ErrMissingAccessToken):
		log.Warn().Msg("pagos deshabilitados: falta MERCADOPAGO_ACCESS_TOKEN")
	case err != nil:
		log.Fatal().Err(err).Msg("pasarela de pagos")
	default:
		gateway = mp
	}

	mailer := mail.NewSMTPMailer(cfg.Mail, log.Component("mail"))
	if !cfg.Mail.Enabled() {
		log.Warn().Msg("SMTP no configurado: el envío de facturas por correo queda deshabilitado")
	}

	sanitizer := sanitize.New()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	// ── Casos de uso ──
	entitlements := usecase.NewEntitlementService(companyRepo, planCatalog)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, events, sessions)
	companyUC := usecase.NewCompanyUseCase(companyRepo, sanitizer)
	userUC := usecase.NewUserUseCase(userRepo, sanitizer)

	customerUC := billing.NewCustomerUseCase(customerRepo, sanitizer)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, receiptRepo, customerRepo, txRunner, sanitizer)
	receiptUC := billing.NewReceiptUseCase(receiptRepo, invoiceRepo, txRunner, sanitizer)
	invoicePDFUC := billing.NewPDFUseCase(
		invoiceRepo, companyRepo, customerRepo, pdfGenerator, mailer, sanitizer, cfg.App.BaseURL, log,
	)

	crewUC := usecase.NewCrewUseCase(employeeRepo, timeEntryRepo, entitlements, sanitizer)
	materialUC := inventory.NewMaterialUseCase(materialRepo, txRunner, sanitizer, log)
	budgetUC := usecase.NewBudgetUseCase(budgetRepo, sanitizer)
	estimateUC := estimating.NewUseCase(estimateRepo, draftStore, companyRepo, customerRepo, pdfGenerator, sanitizer)
	documentUC := esign.NewUseCase(documentRepo, txRunner, documentStorage, entitlements, sanitizer, log)
	exportUC := export.NewUseCase(export.Repos{
		Invoices:    invoiceRepo,
		Customers:   customerRepo,
		Employees:   employeeRepo,
		TimeEntries: timeEntryRepo,
		Materials:   materialRepo,
		Budget:      budgetRepo,
	}, pdfGenerator)
	checkoutUC := checkout.NewUseCase(planCatalog, gateway, subscriptionRepo, txRunner, log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, employeeRepo, timeEntryRepo)

	// ── HTTP ──
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Obrix API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "active_sessions": sessions.Active()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		UserUC:       userUC,
		Entitlements: entitlements,
		CustomerUC:   customerUC,
		InvoiceUC:    invoiceUC,
		ReceiptUC:    receiptUC,
		InvoicePDF:   invoicePDFUC,
		CrewUC:       crewUC,
		MaterialUC:   materialUC,
		BudgetUC:     budgetUC,
		EstimateUC:   estimateUC,
		ExportUC:     exportUC,
		DocumentUC:   documentUC,
		CheckoutUC:   checkoutUC,
		DashboardUC:  dashboardUC,
		Events:       events,
		Sessions:     sessions,
		Sanitizer:    sanitizer,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
