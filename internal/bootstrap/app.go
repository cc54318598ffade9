package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sharespace/internal/app"
	"sharespace/internal/cache"
	"sharespace/internal/config"
	"sharespace/internal/model"
	mongoClient "sharespace/internal/platform/mongo"
	mysqlClient "sharespace/internal/platform/mysql"
	rabbitmqClient "sharespace/internal/platform/rabbitmq"
	redisClient "sharespace/internal/platform/redis"
	"sharespace/internal/observability"
	"sharespace/internal/repository"
	"sharespace/internal/worker"
)

type App struct {
	Config *config.Config
	Log    *zap.Logger

	Mongo  *mongo.Client
	Redis  *redis.Client
	MySQL  *gorm.DB
	MQConn *amqp.Connection

	Publisher       *rabbitmqClient.EventPublisher
	AuthEventWorker *worker.AuthEventWorker

	AuthService *app.AuthService
	UserService *app.UserService
	Metrics     *observability.Metrics

	StartedAt time.Time
}

// New connects every configured dependency. Mongo is required; redis is used
// when REDIS_ADDR is set and the audit pipeline when AUDIT_ENABLED is true.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{
		Config:    cfg,
		Log:       log,
		Metrics:   observability.NewMetrics(),
		StartedAt: time.Now(),
	}

	mongoCli, err := mongoClient.New(ctx, cfg.Mongo.URI, cfg.MongoConnectTimeout(), log.Named("mongo"))
	if err != nil {
		return nil, err
	}
	a.Mongo = mongoCli

	userRepo := repository.NewUserRepository(mongoCli.Database(cfg.Mongo.Database))
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	var profileCache app.ProfileCache
	if cfg.Redis.Addr != "" {
		redisCli, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Redis = redisCli
		profileCache = cache.NewProfileCache(redisCli, cfg.ProfileTTL())
	} else {
		log.Info("redis disabled, profile cache and rate limiting are off")
	}

	var publisher app.EventPublisher
	if cfg.Audit.Enabled {
		if err := a.startAudit(ctx); err != nil {
			_ = a.Close()
			return nil, err
		}
		publisher = a.Publisher
	}

	a.AuthService = app.NewAuthService(userRepo, app.AuthServiceConfig{
		JWTSecret:     cfg.Auth.JWTSecret,
		JWTExpiration: cfg.TokenTTL(),
		BcryptCost:    cfg.Auth.BcryptCost,
	}, publisher, log.Named("auth"))
	a.UserService = app.NewUserService(userRepo, profileCache, publisher, log.Named("users"))

	return a, nil
}

func (a *App) startAudit(ctx context.Context) error {
	cfg := a.Config

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN(), a.Log.Named("mysql"))
	if err != nil {
		return err
	}
	a.MySQL = mysqlDB
	if err := mysqlDB.AutoMigrate(&model.AuthEvent{}); err != nil {
		return fmt.Errorf("auto migrate auth events failed: %w", err)
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.AuthEventQueue)
	if err != nil {
		return err
	}
	a.MQConn = mqConn
	a.Publisher = rabbitmqClient.NewEventPublisher(mqConn, cfg.RabbitMQ.AuthEventQueue)

	eventRepo := repository.NewAuthEventRepository(mysqlDB)
	a.AuthEventWorker = worker.NewAuthEventWorker(mqConn, eventRepo, cfg.RabbitMQ.AuthEventQueue, a.Log.Named("audit"))
	if err := a.AuthEventWorker.Start(ctx); err != nil {
		return fmt.Errorf("start auth event worker failed: %w", err)
	}
	return nil
}

// HealthChecks returns a pinger for each dependency that is in use.
func (a *App) HealthChecks() map[string]func(ctx context.Context) error {
	checks := map[string]func(ctx context.Context) error{
		"mongo": func(ctx context.Context) error {
			return a.Mongo.Ping(ctx, readpref.Primary())
		},
	}
	if a.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		}
	}
	if a.MySQL != nil {
		checks["mysql"] = func(ctx context.Context) error {
			sqlDB, err := a.MySQL.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if a.MQConn != nil {
		checks["rabbitmq"] = func(context.Context) error {
			if a.MQConn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}
	}
	return checks
}

func (a *App) Close() error {
	var closeErr error
	if a.AuthEventWorker != nil {
		a.AuthEventWorker.Close()
	}
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		if sqlDB, err := a.MySQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Mongo.Disconnect(ctx); err != nil {
			closeErr = err
		}
	}
	return closeErr
}
