package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/fridge-inventory/config"
	"github.com/fekuna/fridge-inventory/internal/server"
	"github.com/fekuna/fridge-inventory/pkg/cache"
	"github.com/fekuna/fridge-inventory/pkg/database/sqlite"
	"github.com/fekuna/fridge-inventory/pkg/logger"

	"github.com/fekuna/fridge-inventory/internal/capture"
	captureH "github.com/fekuna/fridge-inventory/internal/capture/handler"

	entryH "github.com/fekuna/fridge-inventory/internal/entry/handler"
	entryUCPkg "github.com/fekuna/fridge-inventory/internal/entry/usecase"

	invH "github.com/fekuna/fridge-inventory/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/fridge-inventory/internal/inventory/repository"
	invUCPkg "github.com/fekuna/fridge-inventory/internal/inventory/usecase"

	prodH "github.com/fekuna/fridge-inventory/internal/product/handler"
	prodRepoPkg "github.com/fekuna/fridge-inventory/internal/product/repository"
	prodUCPkg "github.com/fekuna/fridge-inventory/internal/product/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open Database
	db, err := sqlite.NewSQLite(ctx, &sqlite.Config{
		Path:        cfg.SQLite.Path,
		BusyTimeout: cfg.SQLite.BusyTimeout,
	})
	if err != nil {
		appLogger.Fatal("Could not open database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Opened SQLite database", zap.String("path", cfg.SQLite.Path))

	// 4. Initialize Repositories
	prodRepo := prodRepoPkg.NewSQLiteRepository(db)
	invRepo := invRepoPkg.NewSQLiteRepository(db)

	// 5. Initialize Redis (optional catalog cache)
	var redisClient *cache.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(ctx, &cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, catalog cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Initialize UseCases
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, cfg.Redis.TTL, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, appLogger)
	entryUC := entryUCPkg.NewEntryUseCase(invUC, prodUC, appLogger)

	// 7. Initialize Handlers
	router := server.NewRouter(server.RouterConfig{
		Logger:        appLogger,
		IsDevelopment: cfg.IsDevelopment(),
		RateLimit:     cfg.Server.RateLimit,
		Ready:         db.PingContext,
	},
		invH.NewInventoryHandler(invUC, appLogger),
		entryH.NewEntryHandler(entryUC, appLogger),
		prodH.NewProductHandler(prodUC, appLogger),
		captureH.NewScanHandler(capture.NewZXingDecoder(), appLogger),
	)

	httpServer := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 8. Start gRPC Health Server
	grpcServer, healthServer := server.NewGRPCServer(appLogger)
	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("addr", cfg.Server.GRPCAddr), zap.Error(err))
	}
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("addr", cfg.Server.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("addr", cfg.Server.GRPCAddr))
		return grpcServer.Serve(lis)
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down servers...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		return err
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("server stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Server stopped")
}
