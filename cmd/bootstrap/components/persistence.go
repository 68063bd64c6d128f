package components

import (
	"context"
	"fmt"
	"log/slog"

	"slotbook/internal/engine"
	"slotbook/internal/infra/db"
	"slotbook/internal/infra/memory"
	"slotbook/internal/infra/notify"
	"slotbook/internal/infra/postgres"
	"slotbook/internal/infra/redisq"
	"slotbook/internal/pkg/config"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
	),
)

// Stores bundles the backing stores picked by configuration. The
// "memory" drivers keep everything in process; "postgres" survives
// restarts and coordinates multiple engine instances; the waitlist can
// additionally live in redis.
type Stores struct {
	fx.Out

	Catalog   engine.CatalogStore
	Ledger    engine.LedgerStore
	Queue     engine.QueueStore
	Publisher engine.ReassignmentPublisher
}

func NewStores(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Stores, error) {
	var stores Stores

	// The ledger and the queue may both want postgres; share one pool.
	var pool *pgxpool.Pool
	getPool := func() (*pgxpool.Pool, error) {
		if pool != nil {
			return pool, nil
		}
		p, err := newPool(lc, cfg)
		if err != nil {
			return nil, err
		}
		pool = p
		return pool, nil
	}

	switch cfg.Storage.Driver {
	case "memory":
		stores.Catalog = memory.NewCatalogStore()
		stores.Ledger = memory.NewLedgerStore()
	case "postgres":
		p, err := getPool()
		if err != nil {
			return Stores{}, err
		}
		stores.Catalog = postgres.NewCatalogStore(p)
		stores.Ledger = postgres.NewLedgerStore(p)
	default:
		return Stores{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	switch cfg.Storage.QueueDriver {
	case "memory":
		stores.Queue = memory.NewQueueStore()
	case "postgres":
		p, err := getPool()
		if err != nil {
			return Stores{}, err
		}
		stores.Queue = postgres.NewQueueStore(p)
	case "redis":
		stores.Queue = redisq.NewQueueStore(newRedisClient(lc, cfg))
	default:
		return Stores{}, fmt.Errorf("unknown queue driver %q", cfg.Storage.QueueDriver)
	}

	switch cfg.Notify.Driver {
	case "log":
		stores.Publisher = notify.NewLogPublisher(logger)
	case "asynq":
		stores.Publisher = notify.NewAsynqPublisher(newAsynqClient(lc, cfg), cfg.Notify.Queue)
	default:
		return Stores{}, fmt.Errorf("unknown notify driver %q", cfg.Notify.Driver)
	}

	return stores, nil
}

func newPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})
	return pool, nil
}

func newRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}

func newAsynqClient(lc fx.Lifecycle, cfg config.Config) *asynq.Client {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}
