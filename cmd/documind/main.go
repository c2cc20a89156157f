package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/documind/documind/internal/ai"
	"github.com/documind/documind/internal/chat"
	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/db"
	"github.com/documind/documind/internal/filestore"
	"github.com/documind/documind/internal/handler"
	"github.com/documind/documind/internal/job"
	"github.com/documind/documind/internal/middleware"
	"github.com/documind/documind/internal/repo"
	"github.com/documind/documind/internal/schedule"
	"github.com/documind/documind/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "documind",
		Short: "documind document intelligence server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run documind server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sqlx.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	docRepo := repo.NewDocumentRepo(conn)
	analysisRepo := repo.NewAnalysisRepo(conn)
	embeddingRepo := repo.NewEmbeddingRepo(conn)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}
	aiProvider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	manager := ai.NewManager(aiProvider, ai.ManagerConfig{
		Model:      cfg.AI.Model,
		EmbedModel: cfg.AI.EmbedModel,
		Timeout:    time.Duration(cfg.AI.Timeout) * time.Second,
	})

	sessionStore := chat.NewStore(cfg.Chat.MaxSessions, time.Duration(cfg.Chat.SessionTTLMinutes)*time.Minute)

	authService := service.NewAuthService([]byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours), cfg.AccessPassword)
	documentService := service.NewDocumentService(docRepo, analysisRepo, embeddingRepo, store, cfg.Upload.MaxSizeBytes)
	analysisService := service.NewAnalysisService(manager, documentService, analysisRepo, embeddingRepo)
	similarityService := service.NewSimilarityService(manager, documentService)
	chatService := service.NewChatService(manager, documentService, sessionStore)
	reportService := service.NewReportService()

	scheduler := schedule.NewScheduler()
	retention := time.Duration(cfg.Upload.RetentionHours) * time.Hour
	retentionJob := job.NewRetentionJob(docRepo, analysisRepo, embeddingRepo, store, retention)
	if err := scheduler.AddJob("30 3 * * *", retentionJob); err != nil {
		return fmt.Errorf("schedule retention: %w", err)
	}

	deps := handler.RouterDeps{
		Auth:            authService,
		Documents:       documentService,
		Analyses:        analysisService,
		Reports:         reportService,
		Similarity:      similarityService,
		Chats:           chatService,
		JWTSecret:       []byte(cfg.JWTSecret),
		RateLimitWindow: time.Duration(cfg.RateLimitSeconds) * time.Second,
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/api/v1",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", addr))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
