package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
	"github.com/BruksfildServices01/salon-admin/internal/auth"
	"github.com/BruksfildServices01/salon-admin/internal/config"
	"github.com/BruksfildServices01/salon-admin/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-admin/internal/infra/repository"
	"github.com/BruksfildServices01/salon-admin/internal/middleware"
	"github.com/BruksfildServices01/salon-admin/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-admin/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-admin/internal/validators"
)

// Deps are the singletons built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *logrus.Logger
	Audit    audit.Sink
	Reader   *audit.Reader
	Resolver *auth.PermissionResolver
	Archiver handlers.Archiver // nil when archiving is disabled
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	loc := timezone.Location(d.Config.Timezone)
	emails := validators.EmailChecker{CheckDomain: d.Config.ValidateEmailDomains}
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, loc),
		ucAppointment.NewUpdateAppointment(appointmentRepo, d.Audit, loc),
		ucAppointment.NewDecideAppointment(appointmentRepo, d.Audit),
		ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit),
		ucAppointment.NewGetAppointment(appointmentRepo),
		ucAppointment.NewListAppointments(appointmentRepo, loc),
		d.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config.JWTSecret.Value(), d.Log)
	meHandler := handlers.NewMeHandler(d.DB, d.Log)
	clientHandler := handlers.NewClientHandler(d.DB, d.Audit, emails, d.Log)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit, d.Log)
	staffHandler := handlers.NewStaffHandler(d.DB, d.Audit, emails, d.Log)
	roleHandler := handlers.NewRoleHandler(d.DB, d.Audit, d.Resolver, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.Reader, d.Archiver, loc, d.Log)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret.Value(), d.Resolver, d.Log))
		{
			perm := middleware.RequirePermissions

			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CHANGE LOGS / HISTORY
			// ------------------------------
			secured.GET("/logs", perm(auth.PermLogsReadAll), auditLogsHandler.List)
			secured.POST("/logs/archive", perm(auth.PermLogsArchive), auditLogsHandler.Archive)
			secured.GET("/history", perm(auth.PermAppointmentReadAll), auditLogsHandler.History)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", perm(auth.PermAppointmentReadAll), appointmentHandler.List)
			secured.POST("/appointments", perm(auth.PermAppointmentCreate), appointmentHandler.Create)
			secured.GET("/appointments/:id", perm(auth.PermAppointmentReadSingle), appointmentHandler.Get)
			secured.PUT("/appointments/:id", perm(auth.PermAppointmentUpdate), appointmentHandler.Update)
			secured.PATCH("/appointments/:id", perm(auth.PermAppointmentConfirmDeny), appointmentHandler.Decide)
			secured.DELETE("/appointments/:id", perm(auth.PermAppointmentDelete), appointmentHandler.Delete)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", perm(auth.PermClientReadAll), clientHandler.List)
			secured.POST("/clients", perm(auth.PermClientCreate), clientHandler.Create)
			secured.GET("/clients/:id", perm(auth.PermClientReadSingle), clientHandler.Get)
			secured.PUT("/clients/:id", perm(auth.PermClientUpdate), clientHandler.Update)
			secured.DELETE("/clients/:id", perm(auth.PermClientDelete), clientHandler.Delete)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/services", perm(auth.PermServiceReadAll), serviceHandler.List)
			secured.POST("/services", perm(auth.PermServiceCreate), serviceHandler.Create)
			secured.GET("/services/:id", perm(auth.PermServiceReadSingle), serviceHandler.Get)
			secured.PUT("/services/:id", perm(auth.PermServiceUpdate), serviceHandler.Update)
			secured.DELETE("/services/:id", perm(auth.PermServiceDelete), serviceHandler.Delete)

			// ------------------------------
			// STAFF
			// ------------------------------
			secured.GET("/staff", perm(auth.PermStaffReadAll), staffHandler.List)
			secured.POST("/staff", perm(auth.PermStaffCreate), staffHandler.Create)
			secured.GET("/staff/:id", perm(auth.PermStaffReadSingle), staffHandler.Get)
			secured.PUT("/staff/:id", perm(auth.PermStaffUpdate), staffHandler.Update)
			secured.DELETE("/staff/:id", perm(auth.PermStaffDelete), staffHandler.Delete)
			secured.POST("/staff/:id/verify-password", perm(auth.PermVerifyPassword), staffHandler.VerifyPassword)

			// ------------------------------
			// ROLES / PERMISSIONS
			// ------------------------------
			secured.GET("/roles", perm(auth.PermRoleReadAll), roleHandler.ListRoles)
			secured.POST("/roles", perm(auth.PermRoleCreate), roleHandler.CreateRole)
			secured.DELETE("/roles/:id", perm(auth.PermRoleDelete), roleHandler.DeleteRole)
			secured.GET("/roles/:id/permissions", perm(auth.PermRoleReadAll), roleHandler.ListRolePermissions)
			secured.POST("/roles/:id/permissions/:permission_id", perm(auth.PermRoleUpdate), roleHandler.GrantPermission)
			secured.DELETE("/roles/:id/permissions/:permission_id", perm(auth.PermRoleUpdate), roleHandler.RevokePermission)

			secured.GET("/permissions", perm(auth.PermPermissionReadAll), roleHandler.ListPermissions)
			secured.POST("/permissions", perm(auth.PermPermissionCreate), roleHandler.CreatePermission)
			secured.DELETE("/permissions/:id", perm(auth.PermPermissionDelete), roleHandler.DeletePermission)
		}
	}
}
