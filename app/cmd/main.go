package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devops-assistant/app/config"
	"devops-assistant/app/usecase"
	"devops-assistant/internal/infrastructure/awsclient"
	"devops-assistant/internal/infrastructure/dockerbuild"
	"devops-assistant/internal/infrastructure/gitsource"
	"devops-assistant/internal/infrastructure/llm"
	"devops-assistant/internal/infrastructure/store/filesystem"
	mongorepo "devops-assistant/internal/infrastructure/store/mongodb"
	"devops-assistant/internal/infrastructure/transport"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// MongoDB
	mongoCtx, mongoCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer mongoCancel()
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Error("mongo connect failed", "err", err)
		log.Fatalf("mongo connect: %v", err)
	}
	if err := mongoClient.Ping(mongoCtx, nil); err != nil {
		logger.Error("mongo ping failed", "err", err)
		log.Fatalf("mongo ping: %v", err)
	}
	logger.Info("connected to mongo", "database", cfg.Mongo.Database)
	db := mongoClient.Database(cfg.Mongo.Database)

	// AWS
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		logger.Error("aws config failed", "err", err)
		log.Fatalf("aws config: %v", err)
	}

	// Repositories
	jobRepo := mongorepo.NewMongoJobRepo(db)
	artifactRepo := mongorepo.NewMongoArtifactRepo(db)
	artifactWriter, err := filesystem.NewArtifactRepository(cfg.FileRepo.ArtifactDir)
	if err != nil {
		logger.Error("artifact repository init failed", "err", err)
		log.Fatalf("artifact repository: %v", err)
	}

	// Infrastructure clients
	decoding := llm.DefaultDecoding()
	if cfg.LLM.MaxTokens > 0 {
		decoding.MaxTokens = cfg.LLM.MaxTokens
	}
	decoding.Temperature = cfg.LLM.Temperature
	modelClient := llm.NewBedrockGenerator(awsCfg, cfg.LLM.ModelID, decoding, cfg.LLM.Timeout)
	fetcher := gitsource.NewCloner(logger)
	builder := dockerbuild.NewBuilder(cfg.Build.Binary, cfg.Build.Timeout, logger)
	ecrResolver := awsclient.NewECRResolver(awsCfg)

	// Usecases
	generateSvc := usecase.NewGenerateService(
		jobRepo,
		artifactRepo,
		artifactWriter,
		modelClient,
		fetcher,
		builder,
		ecrResolver,
		cfg.Git.WorkDir,
		logger,
	)
	jobSvc := usecase.NewJobService(jobRepo, artifactRepo, artifactWriter, logger)
	buildSvc := usecase.NewBuildService(jobRepo, artifactWriter, builder, logger)

	// Transport
	handler := transport.NewAssistantHandler(generateSvc, jobSvc, buildSvc, logger)

	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr, "model", modelClient.ModelID())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "err", err)
			cancel()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
		logger.Info("context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}

	logger.Info("disconnecting mongo")
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error("mongo disconnect error", "err", err)
	}

	logger.Info("service stopped")
}
