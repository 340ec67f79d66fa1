package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTransactionRunner runs a unit of work inside a MongoDB session
// transaction. Requires a replica set or mongos deployment.
type MongoTransactionRunner struct {
	client *mongo.Client
}

func NewMongoTransactionRunner(client *mongo.Client) *MongoTransactionRunner {
	return &MongoTransactionRunner{client: client}
}

func (r *MongoTransactionRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	// WithTransaction aborts on error and rethrows it unchanged.
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// SequentialRunner executes the unit of work directly, without a transaction
// scope. Used against standalone Mongo deployments (which reject multi-doc
// transactions) and in unit tests.
type SequentialRunner struct{}

func NewSequentialRunner() *SequentialRunner {
	return &SequentialRunner{}
}

func (r *SequentialRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
