package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chibuzordev/owlow/internal/config"
	"github.com/chibuzordev/owlow/internal/handler"
	"github.com/chibuzordev/owlow/internal/repository"
	"github.com/chibuzordev/owlow/internal/service"
	"github.com/chibuzordev/owlow/internal/session"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := newLogger(&cfg.Logging)
	log.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("owlow listing search")

	gin.SetMode(cfg.Server.GinMode)

	// Listing store: PostgreSQL when configured, local files otherwise.
	var store repository.ListingStore
	if cfg.PostgreSQL.DSN != "" {
		pg, err := repository.NewPostgresStore(
			cfg.PostgreSQL.DSN,
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pg.Close()
		store = pg
		log.Info("listing store: postgres")
	} else {
		fs, err := repository.NewFileStore(cfg.Storage.DataPath, cfg.Storage.AnalysisCache)
		if err != nil {
			log.Fatalf("Failed to open file store: %v", err)
		}
		store = fs
		log.WithField("data_path", cfg.Storage.DataPath).Info("listing store: file")
	}

	sessions := session.New(&cfg.Redis, log)

	oracle := service.NewOpenAIOracle(&cfg.OpenAI)
	if oracle.IsEnabled() {
		log.WithFields(logrus.Fields{
			"filter_model":   cfg.OpenAI.FilterModel,
			"analyzer_model": cfg.OpenAI.AnalyzerModel,
			"advisor_model":  cfg.OpenAI.AdvisorModel,
		}).Info("oracle client initialized")
	} else {
		log.Warn("OPENAI_API_KEY not set - extraction and advice will degrade to defaults")
	}

	svc := service.NewRecommendService(
		store,
		sessions,
		service.NewNormalizer(),
		service.NewFilterInterpreter(oracle, &cfg.OpenAI, log),
		service.NewFilterEngine(),
		service.NewAdvisor(oracle, &cfg.OpenAI, &cfg.Advisor, log),
		service.NewBatchAnalyzer(oracle, &cfg.OpenAI, &cfg.Analyzer, log),
		log,
	)

	recommendHandler := handler.NewRecommendHandler(svc)
	analyzeHandler := handler.NewAnalyzeHandler(svc)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "owlow-listing-search",
			"version": Version,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/recommend", recommendHandler.Recommend)
		apiV1.POST("/analyze", analyzeHandler.Analyze)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.WithField("addr", addr).Info("starting server")

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
}

func newLogger(cfg *config.LoggingConfig) *logrus.Logger {
	log := logrus.New()
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	}
	switch cfg.Level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	log.SetOutput(os.Stdout)
	return log
}
