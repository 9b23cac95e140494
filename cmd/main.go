package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/config"
	"github.com/lshigami/k12tutor/database"
	_ "github.com/lshigami/k12tutor/docs"
	adminctrl "github.com/lshigami/k12tutor/internal/controller/admin"
	userctrl "github.com/lshigami/k12tutor/internal/controller/user"
	"github.com/lshigami/k12tutor/internal/logger"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/lshigami/k12tutor/internal/router"
	"github.com/lshigami/k12tutor/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title K-12 Tutor API
// @version 1.0
// @description Practice sessions, scoring, homework help, diagnostics and rewards for K-12 students.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key
func main() {
	logger.Init("info", true)
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "k12tutor",
		Short:         "K-12 tutoring API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.NewConfig()
			if err != nil {
				return err
			}
			logger.Init(cfg.Log.Level, cfg.Log.Pretty)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cfg)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := database.NewDatabase(cfg)
				if err != nil {
					return err
				}
				return database.AutoMigrate(db)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Migrate and insert the sample catalog and demo account",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := database.NewDatabase(cfg)
				if err != nil {
					return err
				}
				if err := database.AutoMigrate(db); err != nil {
					return err
				}
				return database.Seed(db)
			},
		},
	)
	return root
}

func serve(cfg *config.Config) error {
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewStudentRepository,
			repository.NewSubjectRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewStudySessionRepository,
			repository.NewLearningGoalRepository,
			repository.NewPetRepository,
			repository.NewUsageLimitRepository,
			repository.NewHomeworkRepository,
			repository.NewDiagnosticRepository,
			repository.NewKnowledgeRepository,
			repository.NewLearningPathRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewTokenService,
			service.NewUsageLimiter,
			service.NewAuthService,
			service.NewCatalogService,
			service.NewAnswerService,
			service.NewSessionTracker,
			service.NewHomeworkService,
			service.NewDiagnosticService,
			service.NewGoalService,
			service.NewPetService,
			service.NewKnowledgeGraphService,
			service.NewLearningPathService,
			service.NewAdminContentService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewCatalogController,
			userctrl.NewPracticeController,
			userctrl.NewHomeworkController,
			userctrl.NewDiagnosticController,
			userctrl.NewLearningController,
			userctrl.NewPetController,
			adminctrl.NewAdminContentController,
		),

		fx.Invoke(database.AutoMigrate),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		return err
	}
	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return app.Stop(stopCtx)
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

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

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if slices.Contains(cfg.Server.AllowOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	}
	r.Use(cors.New(corsConfig))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer mounts the API and ties the HTTP server to the fx lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	engine *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	tokens service.TokenService,
	ctrls router.Controllers,
) {
	router.Register(engine, cfg, tokens, ctrls)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("K-12 Tutor API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			if err := server.Shutdown(ctx); err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}
