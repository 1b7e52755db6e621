package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"baduk_lab/internal/adapters"
	"baduk_lab/internal/bootstrap"
	gameDelivery "baduk_lab/internal/delivery/game"
	ownMiddleware "baduk_lab/internal/middleware"
	"baduk_lab/internal/repository"
	gameuc "baduk_lab/internal/usecase/game"
)

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.mongoAdapter.Close(ctx)
	defer databaseAdapters.redisAdapter.Close(ctx)

	var analyzer gameuc.Analyzer
	if cfg.KatagoPath != "" {
		katago, err := repository.NewKatagoAnalyzer(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to start katago", zap.Error(err))
		}
		defer katago.Close()
		analyzer = katago
	} else {
		logger.Warn("KATAGO_PATH not set, analysis disabled")
	}

	gameRepo := repository.NewGameRepository(*cfg, logger,
		databaseAdapters.redisAdapter.GetClient(),
		databaseAdapters.mongoAdapter.Database)
	gameUC := gameuc.NewGameUseCase(gameRepo, analyzer, logger)
	gameHandler := gameDelivery.NewGameHandler(*cfg, logger, gameUC)

	r := chi.NewRouter()
	Router(r, gameHandler, cfg.IsLocalCors)

	port := cfg.ServerPort
	if port == "" {
		port = ":8080"
	}
	logger.Infof("Server is running on port %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func Router(r *chi.Mux, h *gameDelivery.GameHandler, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)

	r.Post("/game/new", h.HandleNewGame)
	r.Post("/game/load", h.HandleLoadGame)
	r.Post("/game/{gameID}/move", h.HandleMove)
	r.Post("/game/{gameID}/undo", h.HandleUndo)
	r.Post("/game/{gameID}/redo", h.HandleRedo)
	r.Post("/game/{gameID}/switch", h.HandleSwitchBranch)
	r.Post("/game/{gameID}/aimove", h.HandleAIMove)
	r.Post("/game/{gameID}/export", h.HandleExport)
	r.Get("/game/{gameID}/sgf", h.HandleGetSGF)
	r.Get("/game/{gameID}/archive", h.HandleGetArchive)
	r.Get("/game/{gameID}/play", h.HandlePlaySocket)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(cfg)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize MongoDB", zap.Error(err))
	}

	redisAdapter := adapters.NewAdapterRedis(cfg)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize Redis", zap.Error(err))
	}

	log.Info("Database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
	time.Sleep(1 * time.Second) // let connections drain
}
