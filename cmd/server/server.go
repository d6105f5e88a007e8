package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-village/internal/engine/activation"
	"github.com/KirkDiggler/rpg-village/internal/engine/occupancy"
	"github.com/KirkDiggler/rpg-village/internal/engine/skills"
	"github.com/KirkDiggler/rpg-village/internal/handlers/ws"
	"github.com/KirkDiggler/rpg-village/internal/orchestrators/game"
	"github.com/KirkDiggler/rpg-village/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-village/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-village/internal/redis"
	"github.com/KirkDiggler/rpg-village/internal/repositories/gamestate"
)

// Store backends
const (
	storeMemory   = "memory"
	storeRedis    = "redis"
	storePostgres = "postgres"
)

const healthServiceName = "rpgvillage.Simulation"

var (
	httpPort       int
	grpcPort       int
	tickRate       int
	gridSize       int
	catalogPath    string
	store          string
	redisAddr      string
	postgresDSN    string
	broadcastEvery int
	logFormat      string
	logLevel       string
	seedUser       string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the village server",
	Long: `Start the HTTP/WebSocket server, the gRPC health server and the simulation
tick loop.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "http-port", 8080, "HTTP and WebSocket port")
	serverCmd.Flags().IntVar(&grpcPort, "grpc-port", 50051, "gRPC health port")
	serverCmd.Flags().IntVar(&tickRate, "tick-rate", 30, "simulation frames per second")
	serverCmd.Flags().IntVar(&gridSize, "grid-size", occupancy.DefaultGridSize, "default grid size for new games")
	serverCmd.Flags().StringVar(&catalogPath, "catalog", "", "skill catalog YAML file (default catalog when empty)")
	serverCmd.Flags().StringVar(&store, "store", storeMemory, "game-state store: memory, redis or postgres")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address for --store=redis")
	serverCmd.Flags().StringVar(&postgresDSN, "postgres-dsn", "", "Postgres DSN for --store=postgres")
	serverCmd.Flags().IntVar(&broadcastEvery, "broadcast-every", 3, "send a state snapshot to clients every N frames")
	serverCmd.Flags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	serverCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	serverCmd.Flags().StringVar(&seedUser, "seed-user", "", "create a starter village for this user at start-up")
}

func loadCatalog() (*skills.Catalog, error) {
	if catalogPath == "" {
		return skills.Default(), nil
	}
	return skills.LoadFile(catalogPath)
}

// openStore builds the game-state repository and a close func for it
func openStore(ctx context.Context, c clock.Clock) (gamestate.Repository, func(), error) {
	switch store {
	case storeMemory:
		return gamestate.NewInMemory(c), func() {}, nil

	case storeRedis:
		client, err := redisclient.NewClient(redisAddr, &redisclient.Options{PoolSize: 10, MaxRetries: 3})
		if err != nil {
			return nil, nil, err
		}
		if err := redisclient.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return gamestate.NewRedisRepository(client, c), func() { _ = client.Close() }, nil

	case storePostgres:
		if postgresDSN == "" {
			return nil, nil, fmt.Errorf("--postgres-dsn is required for --store=%s", storePostgres)
		}
		repo, err := gamestate.NewPostgresRepository(ctx, postgresDSN, c)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", store)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr, logFormat, logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if tickRate <= 0 {
		return fmt.Errorf("--tick-rate must be positive, got %d", tickRate)
	}
	if broadcastEvery <= 0 {
		return fmt.Errorf("--broadcast-every must be positive, got %d", broadcastEvery)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	catalog, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("failed to load skill catalog: %w", err)
	}

	wallClock := clock.New()
	repo, closeStore, err := openStore(ctx, wallClock)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", store, err)
	}
	defer closeStore()

	hub := ws.NewHub()
	orch, err := game.NewOrchestrator(&game.Config{
		Repository:  repo,
		Catalog:     catalog,
		Effects:     hub,
		Roller:      activation.DiceRoller{},
		IDGenerator: idgen.NewUUID("game"),
		Clock:       wallClock,
		GridSize:    gridSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create game orchestrator: %w", err)
	}

	if seedUser != "" {
		gameID, err := seedVillage(ctx, orch, seedUser)
		if err != nil {
			return fmt.Errorf("failed to seed village: %w", err)
		}
		slog.Info("Seeded starter village", "game_id", gameID, "user_id", seedUser)
	}

	handler, err := ws.NewHandler(&ws.HandlerConfig{
		Orchestrator: orch,
		Hub:          hub,
	})
	if err != nil {
		return fmt.Errorf("failed to create websocket handler: %w", err)
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", httpPort),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpcLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpcLogger(logger)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcSrv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(healthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(grpcSrv)

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC health server starting", "port", grpcPort)
		if err := grpcSrv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve grpc: %w", err)
		}
	}()
	go func() {
		slog.Info("HTTP server starting", "port", httpPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve http: %w", err)
		}
	}()

	loop := &tickLoop{
		orchestrator:   orch,
		hub:            hub,
		clock:          wallClock,
		interval:       time.Second / time.Duration(tickRate),
		broadcastEvery: uint64(broadcastEvery),
	}
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal, gracefully stopping")
	case runErr = <-errChan:
		slog.Error("Server failed", "error", runErr)
		cancel()
	}

	healthServer.Shutdown()
	<-loopDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	hub.Close()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown incomplete", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		grpcSrv.Stop()
	case <-stopped:
		slog.Info("Server stopped gracefully")
	}

	return runErr
}
