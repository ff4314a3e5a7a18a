package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to establish the MongoDB connection
// and address both physical stores.
type Config struct {
	URI           string
	Database      string // primary ("default") store
	TestsDatabase string // secondary ("tests") store for .dev identities
	Timeout       time.Duration
}

// Stores holds the handles to the two physical stores. Which one an operation
// addresses is decided per call by StoreRouter, never here.
type Stores struct {
	Primary   *mongo.Database
	Secondary *mongo.Database
}

// Connect establishes a MongoDB client, verifies connectivity with a ping,
// and returns the client plus both store handles. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *Stores, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	stores := &Stores{
		Primary:   client.Database(cfg.Database),
		Secondary: client.Database(cfg.TestsDatabase),
	}
	return client, stores, nil
}
