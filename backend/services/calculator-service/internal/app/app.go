package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	libdb "gascalc/backend/libs/db"
	libredis "gascalc/backend/libs/redis"
	"gascalc/backend/services/calculator-service/internal/cache"
	"gascalc/backend/services/calculator-service/internal/config"
	httpserver "gascalc/backend/services/calculator-service/internal/http"
	"gascalc/backend/services/calculator-service/internal/http/handlers"
	"gascalc/backend/services/calculator-service/internal/repository"
	"gascalc/backend/services/calculator-service/internal/service"
	"gascalc/backend/services/calculator-service/internal/ws"
)

// App wires calculator-service dependencies.
type App struct {
	server      *httpserver.Server
	manager     *ws.Manager
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph. Postgres and Redis are connected
// only when configured.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	var source service.TariffSource
	if cfg.Database.DSN != "" {
		sqlDB, err := libdb.NewPostgresDB(ctx, cfg.Database.DSN, libdb.Options{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			PingTimeout:  cfg.Database.PingTimeout,
		})
		if err != nil {
			return nil, err
		}
		a.db = sqlDB
		source = repository.NewTariffRepository(sqlDB)
	} else {
		logger.Info("no database configured, serving default tariff only")
	}

	var tariffCache service.TariffCache
	if cfg.Redis.Addr != "" {
		client, err := libredis.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redisClient = client
		tariffCache = cache.NewTariffCache(client, cfg.Redis.TTL)
	}

	tariffs := service.NewTariffService(source, tariffCache, cfg.DefaultTariff, logger)
	calculator := service.NewCalculatorService(tariffs, cfg.Constants, logger)

	a.manager = ws.NewManager(cfg.WebSocket.PingInterval)
	liveServer := ws.NewServer(a.manager, ws.NewProcessor(calculator, logger), ws.Options{
		WriteTimeout:   cfg.WebSocket.WriteTimeout,
		AllowedOrigins: ws.ParseOrigins(cfg.WebSocket.AllowedOrigins),
	}, logger)

	routes := httpserver.Routes{
		Rate:      handlers.NewRateHandler(calculator, logger),
		Bill:      handlers.NewBillHandler(calculator, logger),
		Tariffs:   handlers.NewTariffsHandler(tariffs),
		Constants: handlers.NewConstantsHandler(calculator),
		Live:      liveServer.HandleWS,
		Health:    handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes, logger)
	a.server = httpserver.NewServer(cfg.HTTPAddress(), router, logger, a.manager.CloseAll)
	return a, nil
}

// Run serves HTTP and keeps live connections pinged until ctx ends or the
// server fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.manager.Start(ctx)
		return nil
	})
	g.Go(func() error {
		return a.server.Run(ctx)
	})
	return g.Wait()
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
