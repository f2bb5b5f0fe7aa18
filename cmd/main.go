package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hqanh/campoll/config"
	"github.com/hqanh/campoll/database"
	_ "github.com/hqanh/campoll/docs" // Swagger docs - auto-generated
	"github.com/hqanh/campoll/internal/access"
	adminctrl "github.com/hqanh/campoll/internal/controller/admin"
	userctrl "github.com/hqanh/campoll/internal/controller/user"
	"github.com/hqanh/campoll/internal/logger"
	"github.com/hqanh/campoll/internal/model"
	"github.com/hqanh/campoll/internal/repository"
	"github.com/hqanh/campoll/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Campus Survey API
// @version 1.0
// @description Scoped surveys over a six-level organizational hierarchy with role-based answering, editing and result visibility.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewSurveyRepository,
			repository.NewQuestionRepository,
			repository.NewResponseRepository,
			repository.NewDirectoryRepository,
		),

		// Access Engine (pure permission/status derivation)
		fx.Provide(
			func(dir repository.DirectoryRepository) *access.Engine {
				return access.NewEngine(dir, dir, access.SystemClock{})
			},
		),

		// Services Layer
		fx.Provide(
			service.NewSurveyService,
			service.NewQuestionService,
			service.NewResponseService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewSurveyAdminController,
			userctrl.NewSurveyController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	// Wait for a shutdown signal
	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Custom logger using Zerolog for Gin
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

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	surveyAdminCtrl *adminctrl.SurveyAdminController,
	surveyCtrl *userctrl.SurveyController,
) {
	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		surveysAdminGroup := adminAPIGroup.Group("/surveys")
		surveysAdminGroup.POST("", surveyAdminCtrl.CreateSurvey)
		surveysAdminGroup.PUT("/:survey_id", surveyAdminCtrl.UpdateSurvey)
		surveysAdminGroup.DELETE("/:survey_id", surveyAdminCtrl.DeleteSurvey)
		surveysAdminGroup.POST("/:survey_id/reset", surveyAdminCtrl.ResetSurvey)
		surveysAdminGroup.POST("/:survey_id/questions", surveyAdminCtrl.AddQuestion)
		surveysAdminGroup.PUT("/:survey_id/questions/:question_id", surveyAdminCtrl.UpdateQuestion)
		surveysAdminGroup.DELETE("/:survey_id/questions/:question_id", surveyAdminCtrl.RemoveQuestion)
	}

	// User Routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.GET("/surveys", surveyCtrl.ListSurveys)
		userAPIGroup.GET("/surveys/:survey_id", surveyCtrl.GetSurvey)
		userAPIGroup.POST("/surveys/:survey_id/answers", surveyCtrl.SubmitAnswers)
		userAPIGroup.GET("/surveys/:survey_id/results", surveyCtrl.GetResults)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Campus Survey API server starting on port %s", cfg.Server.Port)
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
		&model.Survey{},
		&model.SurveyGroup{},
		&model.Question{},
		&model.Choice{},
		&model.AnsweredRecord{},
		&model.Membership{},
		&model.CourseGroupMember{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
