package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

// New opens the single client shared by the process and checks the server is
// reachable before returning it.
func New(ctx context.Context, uri string, timeout time.Duration, log *zap.Logger) (*mongo.Client, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(opts)
	if err != nil {
		log.Error("mongodb connection error", zap.Error(err))
		return nil, fmt.Errorf("connect mongodb failed: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		log.Error("mongodb connection error", zap.Error(err))
		return nil, fmt.Errorf("ping mongodb failed: %w", err)
	}

	log.Info("connected to mongodb")
	return client, nil
}
