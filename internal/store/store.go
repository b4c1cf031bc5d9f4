// Package store is the MongoDB persistence layer. Every collection keeps an
// app-level uuid string under "id"; Mongo's _id is never exposed.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("store: not found")

// StorageError wraps a failed read or write against Mongo. Callers that care
// about the cause can unwrap it; handlers treat any StorageError as "the
// durable store is unavailable".
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Store owns the Mongo client and database handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to Mongo and pings it so a bad URL fails at startup, not on
// the first request.
func New(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("store: failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("store: mongo ping failed: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

// EnsureIndexes creates the indexes the hot paths rely on. Safe to call on
// every startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection("chat_messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "city", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return storageErr("create chat_messages index", err)
	}

	unique := options.Index().SetUnique(true)
	_, err = s.db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
	})
	if err != nil {
		return storageErr("create users indexes", err)
	}

	_, err = s.db.Collection("notifications").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return storageErr("create notifications index", err)
	}

	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
