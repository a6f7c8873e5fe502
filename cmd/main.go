package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Margay/config"
	"github.com/lshigami/Margay/database"
	_ "github.com/lshigami/Margay/docs" // Swagger docs - auto-generated
	adminctrl "github.com/lshigami/Margay/internal/controller/admin"
	instructorctrl "github.com/lshigami/Margay/internal/controller/instructor"
	moderatorctrl "github.com/lshigami/Margay/internal/controller/moderator"
	"github.com/lshigami/Margay/internal/logger"
	"github.com/lshigami/Margay/internal/middleware"
	"github.com/lshigami/Margay/internal/model"
	"github.com/lshigami/Margay/internal/repository"
	"github.com/lshigami/Margay/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Question-paper Authoring and Moderation API
// @version 1.0
// @description API for authoring question papers and running them through claim-based moderation review.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewPaperRepository,
			repository.NewQuestionRepository,
			repository.NewModerationRecordRepository,
			repository.NewCourseRepository,
		),

		// Services layer
		fx.Provide(
			service.NewModerationLedgerService,
			service.NewClaimService,
			service.NewPaperService,
			service.NewQuestionService,
			service.NewExportService,
			service.NewCourseService,
		),

		// API controllers layer
		fx.Provide(
			instructorctrl.NewPaperController,
			moderatorctrl.NewModerationController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	instructorCtrl *instructorctrl.PaperController,
	moderatorCtrl *moderatorctrl.ModerationController,
	adminCtrl *adminctrl.AdminController,
) {
	// Instructor routes (authoring surface)
	instructorGroup := router.Group("/api/v1/instructor")
	{
		papers := instructorGroup.Group("/papers")
		papers.POST("", instructorCtrl.CreatePaper)
		papers.GET("", instructorCtrl.ListMyPapers)
		papers.GET("/:paper_id", instructorCtrl.GetPaper)
		papers.PUT("/:paper_id", instructorCtrl.UpdatePaper)
		papers.DELETE("/:paper_id", instructorCtrl.DeletePaper)
		papers.POST("/:paper_id/submit", instructorCtrl.SubmitPaper)
		papers.GET("/:paper_id/status", instructorCtrl.PaperStatus)
		papers.GET("/:paper_id/records", instructorCtrl.PaperRecords)
		papers.GET("/:paper_id/export", instructorCtrl.ExportPaper)
		papers.POST("/:paper_id/questions", instructorCtrl.AddQuestion)
		papers.PUT("/:paper_id/questions/order", instructorCtrl.ReorderQuestions)
		papers.PUT("/:paper_id/questions/:question_id", instructorCtrl.UpdateQuestion)
		papers.DELETE("/:paper_id/questions/:question_id", instructorCtrl.DeleteQuestion)
	}

	// Moderator routes (review surface)
	moderatorGroup := router.Group("/api/v1/moderator")
	{
		moderatorGroup.GET("/papers", moderatorCtrl.Queue)
		moderatorGroup.GET("/papers/:paper_id", moderatorCtrl.GetPaper)
		moderatorGroup.GET("/papers/:paper_id/status", moderatorCtrl.PaperStatus)
		moderatorGroup.POST("/papers/:paper_id/claim", moderatorCtrl.ClaimPaper)
		moderatorGroup.POST("/papers/:paper_id/approve", moderatorCtrl.ApprovePaper)
		moderatorGroup.POST("/papers/:paper_id/reject", moderatorCtrl.RejectPaper)
		moderatorGroup.POST("/papers/:paper_id/questions/:question_id/claim", moderatorCtrl.ClaimQuestion)
		moderatorGroup.POST("/papers/:paper_id/questions/:question_id/approve", moderatorCtrl.ApproveQuestion)
		moderatorGroup.POST("/papers/:paper_id/questions/:question_id/reject", moderatorCtrl.RejectQuestion)
		moderatorGroup.POST("/claims/release", moderatorCtrl.ReleaseClaim)
		moderatorGroup.GET("/claims", moderatorCtrl.MyClaims)
		moderatorGroup.GET("/records", moderatorCtrl.TargetRecords)
	}

	// Admin routes (catalog + overrides)
	adminGroup := router.Group("/api/v1/admin")
	{
		adminGroup.POST("/courses", adminCtrl.CreateCourse)
		adminGroup.GET("/courses", adminCtrl.ListCourses)
		adminGroup.GET("/courses/:course_id", adminCtrl.GetCourse)
		adminGroup.PUT("/courses/:course_id", adminCtrl.UpdateCourse)
		adminGroup.DELETE("/courses/:course_id", adminCtrl.DeleteCourse)
		adminGroup.POST("/courses/:course_id/outcomes", adminCtrl.AddOutcome)
		adminGroup.GET("/courses/:course_id/outcomes", adminCtrl.ListOutcomes)
		adminGroup.DELETE("/courses/:course_id/outcomes/:outcome_id", adminCtrl.DeleteOutcome)
		adminGroup.DELETE("/papers/:paper_id", adminCtrl.DeletePaper)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QAMS moderation API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Course{},
		&model.CourseOutcome{},
		&model.Paper{},
		&model.Question{},
		&model.QuestionOption{},
		&model.ModerationRecord{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
