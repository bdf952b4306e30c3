package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Obrix-api/internal/application/analytics"
	"github.com/jhoicas/Obrix-api/internal/application/auth"
	"github.com/jhoicas/Obrix-api/internal/application/billing"
	"github.com/jhoicas/Obrix-api/internal/application/checkout"
	"github.com/jhoicas/Obrix-api/internal/application/esign"
	"github.com/jhoicas/Obrix-api/internal/application/estimating"
	"github.com/jhoicas/Obrix-api/internal/application/export"
	"github.com/jhoicas/Obrix-api/internal/application/inventory"
	"github.com/jhoicas/Obrix-api/internal/application/security"
	"github.com/jhoicas/Obrix-api/internal/application/usecase"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	UserUC       *usecase.UserUseCase
	Entitlements *usecase.EntitlementService
	CustomerUC   *billing.CustomerUseCase
	InvoiceUC    *billing.InvoiceUseCase
	ReceiptUC    *billing.ReceiptUseCase
	InvoicePDF   *billing.PDFUseCase
	CrewUC       *usecase.CrewUseCase
	MaterialUC   *inventory.MaterialUseCase
	BudgetUC     *usecase.BudgetUseCase
	EstimateUC   *estimating.UseCase
	ExportUC     *export.UseCase
	DocumentUC   *esign.UseCase
	CheckoutUC   *checkout.UseCase
	DashboardUC  *appanalytics.DashboardUseCase
	Events       *security.EventLog
	Sessions     *security.SessionMonitor
	Sanitizer    ChangeDetector
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuditInput(deps.Sanitizer, deps.Events))
	feature := func(name string) fiber.Handler { return RequireFeature(name, deps.Entitlements, deps.Events) }
	adminOnly := RequireRole(RoleAdmin)
	managers := RequireRole(RoleAdmin, RoleManager)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Onboarding y catálogo de planes (público)
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Entitlements)
	api.Post("/companies", companyHandler.Create)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC, deps.UserUC)
	api.Get("/plans", checkoutHandler.Plans)
	api.Post("/billing/webhook", checkoutHandler.Notification)

	// Rutas protegidas (requieren Bearer Token y sesión activa)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Events), SessionGuard(deps.Sessions))

	protected.Post("/auth/logout", authHandler.Logout)

	// Empresa y usuarios
	protected.Get("/companies/me", companyHandler.Me)
	protected.Put("/companies/me", adminOnly, companyHandler.UpdateMe)
	protected.Delete("/companies/me", adminOnly, companyHandler.DeleteMe)
	protected.Get("/companies/me/entitlements", companyHandler.Entitlements)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Suscripción
	billingGroup := protected.Group("/billing", adminOnly)
	billingGroup.Post("/checkout", checkoutHandler.Checkout)
	billingGroup.Get("/payments", checkoutHandler.History)
	billingGroup.Get("/reconcile", checkoutHandler.Reconcile)

	// Seguridad
	securityHandler := NewSecurityHandler(deps.Events)
	protected.Get("/security/events", adminOnly, securityHandler.Events)

	// EasyCalc
	estimateHandler := NewEstimateHandler(deps.EstimateUC)
	estimates := protected.Group("/estimates", feature(entity.FeatureEasyCalc))
	estimates.Get("/materials", estimateHandler.Materials)
	estimates.Post("/calculate", estimateHandler.Calculate)
	estimates.Post("/import", estimateHandler.ImportProject)
	estimates.Get("/draft", estimateHandler.LoadDraft)
	estimates.Put("/draft", estimateHandler.SaveDraft)
	estimates.Delete("/draft", estimateHandler.DeleteDraft)
	estimates.Post("/", estimateHandler.Save)
	estimates.Get("/", estimateHandler.List)
	estimates.Get("/:id", estimateHandler.Get)
	estimates.Delete("/:id", estimateHandler.Delete)
	estimates.Get("/:id/project", estimateHandler.ExportProject)
	estimates.Get("/:id/pdf", estimateHandler.QuotePDF)

	// CRM
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers", feature(entity.FeatureCRM))
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Patch("/:id/status", customerHandler.UpdateStatus)
	customers.Delete("/:id", managers, customerHandler.Delete)

	// Facturación y recibos
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.ReceiptUC, deps.InvoicePDF)
	invoices := protected.Group("/invoices", feature(entity.FeatureInvoicing))
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id/status", managers, invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", managers, invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Post("/:id/email", invoiceHandler.Email)

	receipts := protected.Group("/receipts", feature(entity.FeatureInvoicing))
	receipts.Post("/", invoiceHandler.CreateReceipt)
	receipts.Get("/", invoiceHandler.ListReceipts)
	receipts.Delete("/:id", managers, invoiceHandler.DeleteReceipt)

	// Cuadrilla
	crewHandler := NewCrewHandler(deps.CrewUC)
	crew := protected.Group("/crew", feature(entity.FeatureCrew))
	crew.Post("/employees", managers, crewHandler.CreateEmployee)
	crew.Get("/employees", crewHandler.ListEmployees)
	crew.Put("/employees/:id", managers, crewHandler.UpdateEmployee)
	crew.Delete("/employees/:id", managers, crewHandler.DeleteEmployee)
	crew.Post("/time-entries", crewHandler.LogTime)
	crew.Get("/time-entries", crewHandler.ListTime)
	crew.Delete("/time-entries/:id", managers, crewHandler.DeleteTime)
	crew.Get("/payroll", managers, crewHandler.Payroll)

	// MatTrack
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials := protected.Group("/materials", feature(entity.FeatureMatTrack))
	materials.Get("/value", materialHandler.Value)
	materials.Post("/import", managers, materialHandler.Import)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Post("/:id/adjust", materialHandler.Adjust)
	materials.Delete("/:id", managers, materialHandler.Delete)

	// Presupuesto
	budgetHandler := NewBudgetHandler(deps.BudgetUC)
	budget := protected.Group("/budget", feature(entity.FeatureBudget), managers)
	budget.Get("/summary", budgetHandler.Summary)
	budget.Post("/categories", budgetHandler.Create)
	budget.Put("/categories/:id", budgetHandler.Update)
	budget.Post("/categories/:id/spend", budgetHandler.RecordSpend)
	budget.Delete("/categories/:id", budgetHandler.Delete)

	// Firma electrónica
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	documents := protected.Group("/documents", feature(entity.FeatureESign))
	documents.Post("/", documentHandler.Upload)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.Get)
	documents.Get("/:id/file", documentHandler.Download)
	documents.Post("/:id/sign", documentHandler.Sign)
	documents.Post("/:id/void", managers, documentHandler.Void)
	documents.Delete("/:id", managers, documentHandler.Delete)

	// Exportaciones: requiere "exports" y además la funcionalidad del dataset
	exportHandler := NewExportHandler(deps.ExportUC)
	protected.Get("/exports/:dataset",
		feature(entity.FeatureExports),
		RequireDatasetFeature(deps.Entitlements, deps.Events),
		exportHandler.Export,
	)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", feature(entity.FeatureAnalytics), dashboardHandler.GetSummary)
}
