package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/ratelimit"
	"github.com/BruksfildServices01/salon-scheduler/internal/storage"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/salon-scheduler/internal/usecase/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/directory"
	ucLoyalty "github.com/BruksfildServices01/salon-scheduler/internal/usecase/loyalty"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// Deps are the process-wide singletons built by main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *slog.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Collector
	Limiter  ratelimit.Limiter
	Uploader *storage.Uploader
	// Nil when payments are not configured.
	Gateway payment.Gateway
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.LoggingMiddleware(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))
	r.Use(middleware.MetricsMiddleware(d.Metrics))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(d.DB)
	loyaltyRepo := infraRepo.NewLoyaltyGormRepository(d.DB)

	auditLogger := audit.New(d.DB, d.Log)
	hasher := auth.NewBcryptHasher(0)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	loc := timezone.Location(cfg.Timezone)
	clock := timezone.ClockIn(loc)

	// ======================================================
	// USE CASES
	// ======================================================
	awardPoints := ucLoyalty.NewAwardPoints(loyaltyRepo, serviceRepo, d.Log)

	appointments := handlers.AppointmentUseCases{
		Book: ucAppointment.NewBookAppointment(
			appointmentRepo,
			auditLogger,
			awardPoints,
			d.Metrics.Booked(),
			d.Log,
			cfg.EnforceBookingOverlap,
		),
		Update: ucAppointment.NewUpdateAppointment(
			appointmentRepo,
			domain.PolicyFor(cfg.StrictStatusTransitions),
			auditLogger,
			awardPoints,
			d.Log,
			cfg.EnforceBookingOverlap,
		),
		Delete:    ucAppointment.NewDeleteAppointment(appointmentRepo, auditLogger),
		Get:       ucAppointment.NewGetAppointment(appointmentRepo),
		List:      ucAppointment.NewListAppointments(appointmentRepo),
		AdminList: ucAppointment.NewAdminListAppointments(appointmentRepo, clock),
	}
	dashboard := ucAppointment.NewDashboardStats(appointmentRepo, userRepo, clock)

	var domainCheck ucAuth.EmailChecker
	if cfg.ValidateEmailDomain {
		domainCheck = validators.IsEmailDomainValid
	}

	users := directory.NewUsers(userRepo, hasher, auditLogger)
	services := directory.NewServices(serviceRepo, auditLogger)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		ucAuth.NewRegister(userRepo, hasher, tokens, domainCheck),
		ucAuth.NewLogin(userRepo, hasher, tokens),
		ucAuth.NewMe(userRepo),
	)
	meHandler := handlers.NewMeHandler(users)
	workingHoursHandler := handlers.NewWorkingHoursHandler(users)
	publicHandler := handlers.NewPublicHandler(services, users)
	appointmentHandler := handlers.NewAppointmentHandler(appointments, loc)
	adminHandler := handlers.NewAdminHandler(dashboard, services)
	customersHandler := handlers.NewCustomersHandler(users, "customers")
	adminUsersHandler := handlers.NewCustomersHandler(users, "users")
	staffHandler := handlers.NewStaffHandler(users)
	loyaltyHandler := handlers.NewLoyaltyHandler(
		ucLoyalty.NewGetPoints(loyaltyRepo),
		ucLoyalty.NewRedeemReward(loyaltyRepo, auditLogger, d.Metrics.Redeemed()),
	)
	uploadHandler := handlers.NewUploadHandler(d.Uploader, users, services)
	paymentHandler := handlers.NewPaymentHandler(payment.NewCheckout(d.Gateway, appointmentRepo))
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger, loc)

	authenticated := middleware.AuthMiddleware(tokens, userRepo)
	adminOnly := middleware.RequireAdmin()
	staffOnly := middleware.RequireStaff()

	// ======================================================
	// OPERATIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler(d.Registry)))
	r.Static("/uploads", cfg.UploadDir)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			limited := middleware.RateLimitMiddleware(d.Limiter, d.Log)
			authAPI.POST("/register", limited, authHandler.Register)
			authAPI.POST("/login", limited, authHandler.Login)

			authAPI.GET("/me", authenticated, authHandler.Me)
			authAPI.PATCH("/me", authenticated, meHandler.Update)
		}

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/services", publicHandler.ListServices)
		api.GET("/services/:id", publicHandler.GetService)
		api.GET("/staff", publicHandler.ListStaff)
		api.GET("/staff/:id", publicHandler.GetStaff)
		api.GET("/staff/:id/services", publicHandler.StaffServices)

		// ------------------------------
		// BOOKING
		// ------------------------------
		booking := api.Group("/appointments", authenticated)
		{
			booking.POST("", appointmentHandler.Create)
			booking.GET("", appointmentHandler.List)
			booking.GET("/:id", appointmentHandler.Get)
			booking.PATCH("/:id", appointmentHandler.Update)
			booking.DELETE("/:id", appointmentHandler.Delete)
		}

		// ------------------------------
		// SELF SERVICE
		// ------------------------------
		me := api.Group("/me", authenticated)
		{
			// admins have no hours of their own
			staffMember := middleware.RequireRole(user.RoleStaff)
			me.GET("/working-hours", staffMember, workingHoursHandler.Get)
			me.PUT("/working-hours", staffMember, workingHoursHandler.Update)
		}

		customer := api.Group("/customer", authenticated)
		{
			customer.GET("/points", loyaltyHandler.Points)
			customer.GET("/points/history", loyaltyHandler.History)
			customer.GET("/rewards", loyaltyHandler.Rewards)
			customer.POST("/rewards/:id/redeem", loyaltyHandler.Redeem)
		}

		payments := api.Group("/payments", authenticated)
		{
			payments.POST("/create-intent", paymentHandler.CreateIntent)
			payments.POST("/confirm", paymentHandler.Confirm)
		}

		// ------------------------------
		// CUSTOMERS (ADMIN)
		// ------------------------------
		customers := api.Group("/customers", authenticated, adminOnly)
		{
			customers.GET("", customersHandler.List)
			customers.GET("/:id", customersHandler.Get)
			customers.POST("", customersHandler.Create)
			customers.PATCH("/:id", customersHandler.Update)
			customers.PUT("/:id", customersHandler.Update)
			customers.DELETE("/:id", customersHandler.Delete)
		}

		upload := api.Group("/upload", authenticated, adminOnly)
		{
			upload.POST("/staff/:id", uploadHandler.Staff)
			upload.POST("/services/:id", uploadHandler.Service)
		}

		// ------------------------------
		// BACK OFFICE
		// ------------------------------
		admin := api.Group("/admin", authenticated)
		{
			admin.GET("/dashboard", adminOnly, adminHandler.Dashboard)
			admin.GET("/audit-logs", adminOnly, auditLogsHandler.List)

			admin.GET("/users", adminOnly, adminUsersHandler.List)
			admin.GET("/users/:id", adminOnly, adminUsersHandler.Get)
			admin.POST("/users", adminOnly, adminUsersHandler.Create)
			admin.PATCH("/users/:id", adminOnly, adminUsersHandler.Update)
			admin.PUT("/users/:id", adminOnly, adminUsersHandler.Update)
			admin.DELETE("/users/:id", adminOnly, adminUsersHandler.Delete)

			admin.POST("/customers", adminOnly, customersHandler.Create)
			admin.PUT("/customers/:id", adminOnly, customersHandler.Update)
			admin.PATCH("/customers/:id", adminOnly, customersHandler.Update)
			admin.DELETE("/customers/:id", adminOnly, customersHandler.Delete)

			admin.GET("/staff", adminOnly, staffHandler.List)
			admin.GET("/staff/:id", adminOnly, staffHandler.Get)
			admin.POST("/staff", adminOnly, staffHandler.Create)
			admin.PUT("/staff/:id", adminOnly, staffHandler.Update)
			admin.PATCH("/staff/:id", adminOnly, staffHandler.Update)
			admin.DELETE("/staff/:id", adminOnly, staffHandler.Delete)

			admin.GET("/services", staffOnly, adminHandler.ListServices)
			admin.POST("/services", adminOnly, adminHandler.CreateService)
			admin.PUT("/services/:id", adminOnly, adminHandler.UpdateService)
			admin.PATCH("/services/:id", adminOnly, adminHandler.UpdateService)
			admin.DELETE("/services/:id", adminOnly, adminHandler.DeleteService)

			admin.GET("/appointments", staffOnly, appointmentHandler.AdminList)
			admin.GET("/appointments/:id", staffOnly, appointmentHandler.Get)
			admin.POST("/appointments", adminOnly, appointmentHandler.Create)
			admin.PUT("/appointments/:id", adminOnly, appointmentHandler.Update)
			admin.PATCH("/appointments/:id", adminOnly, appointmentHandler.Update)
			admin.DELETE("/appointments/:id", adminOnly, appointmentHandler.Delete)
		}
	}
}
