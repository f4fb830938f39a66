package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lettingshub/app-tenancy/internal/config"
	"github.com/lettingshub/app-tenancy/internal/handlers"
	"github.com/lettingshub/app-tenancy/internal/logging"
	"github.com/lettingshub/app-tenancy/internal/middleware"
	"github.com/lettingshub/app-tenancy/internal/observability"
	"github.com/lettingshub/app-tenancy/internal/services"
	"github.com/lettingshub/app-tenancy/internal/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/lettingshub/app-tenancy/docs"
)

// @title           Tenancy Application API
// @version         1.0
// @description     API for multi-step tenancy application forms and their admin review surface. Form sessions live in Redis until submission; submitted applications are immutable and reviewed through the admin endpoints.

// @contact.name   Lettings Hub Engineering
// @contact.email  engineering@lettingshub.co.uk

// @host      localhost:8080
// @BasePath  /v1

// @tag.name form
// @tag.description Form session lifecycle, sections, navigation, and submission

// @tag.name applicants
// @tag.description Applicant list management within a form session

// @tag.name guarantor
// @tag.description Guarantor sub-flow within a form session

// @tag.name admin
// @tag.description Review, filter, export, and report on submitted applications

// @tag.name health
// @tag.description Health check operations

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections
	config.InitMongoDB()
	config.InitRedis()

	// Start the activity log worker before anything can emit activity
	utils.InitActivityWorker(2, 1000)
	defer utils.GetActivityWorker().Stop()

	// Initialize services
	services.InitSessionService()
	services.InitApplicationService()

	emailSender := newEmailSender()
	services.InitSubmissionService(emailSender)

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck)
		v1.GET("/form/schema", handlers.GetFormSchema)

		sessions := v1.Group("/applications/sessions")
		{
			sessions.POST("", handlers.CreateFormSession)
			sessions.GET("/:id", handlers.GetFormSession)

			sessions.PUT("/:id/property", handlers.UpdatePropertyPreferences)
			sessions.PUT("/:id/details", handlers.UpdateAdditionalDetails)
			sessions.PUT("/:id/sharing", handlers.UpdateDataSharing)
			sessions.PUT("/:id/signature", handlers.UpdateSignature)

			sessions.POST("/:id/applicants", handlers.AddApplicant)
			sessions.PUT("/:id/applicants/count", handlers.SetApplicantCount)
			sessions.PATCH("/:id/applicants/:applicantId", handlers.UpdateApplicantField)
			sessions.DELETE("/:id/applicants/:applicantId", handlers.RemoveApplicant)

			sessions.POST("/:id/guarantor/open", handlers.OpenGuarantor)
			sessions.PUT("/:id/guarantor", handlers.UpdateGuarantor)
			sessions.POST("/:id/guarantor/save", handlers.SaveGuarantor)
			sessions.DELETE("/:id/guarantor", handlers.CancelGuarantor)

			sessions.GET("/:id/validation", handlers.GetStepValidation)
			sessions.POST("/:id/next", handlers.GoToNextStep)
			sessions.POST("/:id/previous", handlers.GoToPreviousStep)
			sessions.POST("/:id/submit", handlers.SubmitApplication)
		}

		admin := v1.Group("/admin/applications")
		{
			admin.GET("", handlers.ListApplications)
			admin.GET("/export", handlers.ExportApplicationsCSV)
			admin.GET("/:id", handlers.GetApplication)
			admin.PATCH("/:id/status", handlers.UpdateApplicationStatus)
			admin.GET("/:id/pdf", handlers.DownloadApplicationPDF)
			admin.GET("/:id/activity", handlers.GetApplicationActivity)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}

// newEmailSender builds the outbound email collaborator, honoring
// EMAIL_ENABLED for local runs without SES credentials.
func newEmailSender() services.EmailSender {
	logger := zap.L().Named("email")

	if !config.AppConfig.EmailEnabled {
		logging.Logger.Warn("outbound email disabled, submissions will log instead of sending")
		return services.NewDisabledEmailSender(logger)
	}

	sender, err := services.NewSESEmailSender(context.Background(), logger)
	if err != nil {
		logging.Logger.Fatal("failed to initialize SES email sender", zap.Error(err))
	}
	return sender
}
