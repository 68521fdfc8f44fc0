package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/eduquest/admin-api/api/swagger"
	"github.com/eduquest/admin-api/internal/handler"
	internalmiddleware "github.com/eduquest/admin-api/internal/middleware"
	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/internal/repository"
	"github.com/eduquest/admin-api/internal/service"
	"github.com/eduquest/admin-api/pkg/cache"
	"github.com/eduquest/admin-api/pkg/config"
	"github.com/eduquest/admin-api/pkg/database"
	"github.com/eduquest/admin-api/pkg/export"
	"github.com/eduquest/admin-api/pkg/logger"
	corsmiddleware "github.com/eduquest/admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eduquest/admin-api/pkg/middleware/requestid"
	"github.com/eduquest/admin-api/pkg/storage"
)

const (
	applicationName = "EduQuest Admin API"
	version         = "1.0.0"
)

// @title EduQuest Admin API
// @version 1.0.0
// @description Administration backend for the EduQuest gamified learning platform
// @BasePath /api
// @schemes http

type handlers struct {
	health        *handler.HealthHandler
	auth          *handler.AuthHandler
	users         *handler.UserHandler
	courses       *handler.CourseHandler
	enrollments   *handler.EnrollmentHandler
	assignments   *handler.TeacherAssignmentHandler
	bulk          *handler.BulkHandler
	gamification  *handler.GamificationHandler
	visualConfigs *handler.VisualConfigHandler
	reports       *handler.ReportHandler
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := newCacheService(cfg, metricsSvc, logr)
	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	assignmentRepo := repository.NewTeacherAssignmentRepository(db)
	gamificationRepo := repository.NewGamificationRepository(db)
	visualRepo := repository.NewVisualConfigRepository(db)
	reportRepo := repository.NewReportRepository(db)
	missionRepo := repository.NewMissionStatsRepository(db, cfg.Gamification.ExternalSchema)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
		Audience:           audience(cfg.JWT.Audience),
		SingleSession:      cfg.JWT.SingleSession,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, userRepo, courseRepo, validate, logr)
	assignmentSvc := service.NewTeacherAssignmentService(assignmentRepo, userRepo, courseRepo, validate, logr)
	bulkSvc := service.NewBulkService(service.BulkServiceParams{
		DB:          db,
		Courses:     courseRepo,
		Users:       userRepo,
		Enrollments: enrollmentRepo,
		Assignments: assignmentRepo,
		Audits:      userRepo,
		Metrics:     metricsSvc,
		Validator:   validate,
		Logger:      logr,
	})
	gamificationSvc := service.NewGamificationService(gamificationRepo, db, cacheSvc, userRepo, validate, logr)
	visualSvc := service.NewVisualConfigService(visualRepo, db, cacheSvc, userRepo, validate, logr)
	reportSvc := service.NewReportService(service.ReportServiceParams{
		Local:    reportRepo,
		Missions: missionRepo,
		Levels:   gamificationSvc,
		Metrics:  metricsSvc,
		Logger:   logr,
		Config: service.ReportServiceConfig{
			TopCourses:  cfg.Gamification.TopCourses,
			TopStudents: cfg.Gamification.TopStudents,
		},
	})

	store, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare report storage", zap.Error(err))
	}
	exportSvc := service.NewExportService(service.ExportServiceParams{
		Reports:   reportSvc,
		Storage:   store,
		Signer:    storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL),
		CSV:       export.NewCSVExporter(),
		PDF:       export.NewPDFExporter(),
		Validator: validate,
		Logger:    logr,
		Config: service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Reports.SignedURLTTL,
		},
	})
	if _, err := exportSvc.Cleanup(0); err != nil {
		logr.Warn("failed to remove expired reports", zap.Error(err))
	}

	h := handlers{
		health:        handler.NewHealthHandler(db, metricsSvc.Handler(), applicationName, version),
		auth:          handler.NewAuthHandler(authSvc),
		users:         handler.NewUserHandler(userSvc),
		courses:       handler.NewCourseHandler(courseSvc),
		enrollments:   handler.NewEnrollmentHandler(enrollmentSvc),
		assignments:   handler.NewTeacherAssignmentHandler(assignmentSvc),
		bulk:          handler.NewBulkHandler(bulkSvc),
		gamification:  handler.NewGamificationHandler(gamificationSvc),
		visualConfigs: handler.NewVisualConfigHandler(visualSvc),
		reports:       handler.NewReportHandler(reportSvc, exportSvc),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc, "/metrics", "/health", "/ready"))
	r.Use(internalmiddleware.WithResponseMeta())

	registerRoutes(r, cfg, h, authSvc, userRepo, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func registerRoutes(r *gin.Engine, cfg *config.Config, h handlers, tokens internalmiddleware.TokenValidator, audits internalmiddleware.AuditWriter, logr *zap.Logger) {
	r.GET("/health", h.health.Health)
	r.GET("/ready", h.health.Ready)
	r.GET("/metrics", h.health.Metrics)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", h.auth.Login)
	auth.POST("/refresh", h.auth.Refresh)
	auth.POST("/logout", h.auth.Logout)
	authed := auth.Group("", internalmiddleware.JWT(tokens))
	authed.GET("/me", h.auth.Me)
	authed.POST("/change-password", h.auth.ChangePassword)

	// public branding for the login screen
	api.GET("/configuracion-visual/activa", h.visualConfigs.Active)
	// signed links authorise themselves
	api.GET("/reportes/descargas/:token", h.reports.Download)

	admin := api.Group("", internalmiddleware.JWT(tokens), internalmiddleware.AdminOnly())

	// bulk writes record their own audit rows
	admin.POST("/inscripciones/inscripcion_masiva", h.bulk.EnrollStudents)
	admin.POST("/cursos-profesores/asignacion_masiva", h.bulk.AssignTeachers)
	admin.POST("/cursos/:id/inscribir_estudiantes", h.bulk.CourseEnrollStudents)
	admin.POST("/cursos/:id/asignar_profesores", h.bulk.CourseAssignTeachers)

	users := admin.Group("/usuarios")
	users.GET("", h.users.List)
	users.GET("/:id", h.users.Get)
	users.POST("", h.users.Create)
	users.PUT("/:id", h.users.Update)
	users.PATCH("/:id", h.users.Update)
	users.DELETE("/:id", h.users.Delete)

	courses := admin.Group("/cursos", internalmiddleware.Audit(audits, logr, models.AuditActionCourseWrite, "cursos"))
	courses.GET("", h.courses.List)
	courses.GET("/:id", h.courses.Get)
	courses.GET("/:id/estudiantes", h.courses.Students)
	courses.GET("/:id/profesores", h.courses.Teachers)
	courses.POST("", h.courses.Create)
	courses.PUT("/:id", h.courses.Update)
	courses.PATCH("/:id", h.courses.Update)
	courses.DELETE("/:id", h.courses.Delete)

	enrollments := admin.Group("/inscripciones", internalmiddleware.Audit(audits, logr, models.AuditActionEnrollmentWrite, "inscripciones"))
	enrollments.GET("", h.enrollments.List)
	enrollments.GET("/:id", h.enrollments.Get)
	enrollments.POST("", h.enrollments.Create)
	enrollments.PATCH("/:id/cambiar_estado", h.enrollments.ChangeStatus)
	enrollments.DELETE("/:id", h.enrollments.Delete)

	assignments := admin.Group("/cursos-profesores", internalmiddleware.Audit(audits, logr, models.AuditActionAssignmentWrite, "cursos_profesores"))
	assignments.GET("", h.assignments.List)
	assignments.GET("/:id", h.assignments.Get)
	assignments.POST("", h.assignments.Create)
	assignments.PATCH("/:id/cambiar_rol", h.assignments.ChangeRole)
	assignments.DELETE("/:id", h.assignments.Delete)

	rules := admin.Group("/reglas-gamificacion")
	rules.GET("", h.gamification.ListRules)
	rules.GET("/:id", h.gamification.GetRule)
	rules.POST("", h.gamification.CreateRule)
	rules.PUT("/:id", h.gamification.UpdateRule)
	rules.PATCH("/:id", h.gamification.UpdateRule)
	rules.DELETE("/:id", h.gamification.DeleteRule)

	levels := admin.Group("/niveles", internalmiddleware.Audit(audits, logr, models.AuditActionLevelWrite, "configuracion_niveles"))
	levels.GET("", h.gamification.ListLevels)
	levels.GET("/:id", h.gamification.GetLevel)
	levels.POST("", h.gamification.CreateLevel)
	levels.PUT("/:id", h.gamification.UpdateLevel)
	levels.PATCH("/:id", h.gamification.UpdateLevel)
	levels.DELETE("/:id", h.gamification.DeleteLevel)

	visual := admin.Group("/configuracion-visual")
	visual.GET("", h.visualConfigs.List)
	visual.GET("/:id", h.visualConfigs.Get)
	visual.POST("", h.visualConfigs.Create)
	visual.PUT("/:id", h.visualConfigs.Update)
	visual.PATCH("/:id", h.visualConfigs.Update)
	visual.DELETE("/:id", h.visualConfigs.Delete)

	reports := admin.Group("/reportes")
	reports.GET("/estadisticas_generales", h.reports.GeneralStatistics)
	reports.GET("/reporte_estudiantes", h.reports.StudentReports)
	reports.GET("/reporte_cursos", h.reports.CourseReports)
	reports.GET("/resumen_mensual", h.reports.MonthlySummary)
	reports.POST("/exportar", h.reports.Export)
}

func newCacheService(cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) *service.CacheService {
	var repo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, cache disabled", zap.Error(err))
		} else {
			repo = repository.NewCacheRepository(client, logr)
		}
	}
	return service.NewCacheService(repo, metrics, cfg.Cache.TTL, logr, repo != nil)
}

func audience(raw string) []string {
	if raw == "" {
		return nil
	}
	return []string{raw}
}
