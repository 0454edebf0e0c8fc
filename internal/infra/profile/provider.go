package profile

import (
	"context"
	"log/slog"

	"scooter/config"
	"scooter/internal/domain/constants"
	"scooter/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const defaultBucketURL = "mem://"

// StoreParams holds dependencies for ProfileStore, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewProfileStore creates a ProfileStore based on configuration
func NewProfileStore(params StoreParams) (service.ProfileStore, error) {
	store, err := Open(params.Ctx, params.Config.Profile, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing ProfileStore")

			return store.Close()
		},
	})

	return store, nil
}

// Open opens the configured store. Without configuration snapshots live in memory.
func Open(ctx context.Context, cfg *config.ProfileConfig, logger *slog.Logger) (service.ProfileStore, error) {
	if cfg == nil || cfg.Driver == "" {
		logger.Info("Profile store not configured, using in-memory bucket")

		return OpenBlobStore(ctx, defaultBucketURL)
	}

	switch cfg.Driver {
	case constants.ProfileDriverBlob:
		bucketURL := cfg.BucketURL
		if bucketURL == "" {
			bucketURL = defaultBucketURL
		}
		logger.Info("Using blob profile store", slog.String("bucket_url", bucketURL))

		return OpenBlobStore(ctx, bucketURL)

	case constants.ProfileDriverRedis:
		if cfg.Redis.Addr == "" {
			return nil, errors.New("redis address is required for redis profile store")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()

			return nil, errors.Wrapf(err, "connect to redis at %s", cfg.Redis.Addr)
		}
		logger.Info("Using redis profile store",
			slog.String("addr", cfg.Redis.Addr),
			slog.Duration("ttl", cfg.TTL))

		return NewRedisStore(client, cfg.TTL), nil

	default:
		return nil, errors.Errorf("unknown profile store driver: %s", cfg.Driver)
	}
}

// Module provides the profile store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewProfileStore),
)
