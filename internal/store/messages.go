package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulseofthecity/api/internal/model"
)

// InsertMessage durably records a chat message. This is the only writer of
// the chat_messages collection.
func (s *Store) InsertMessage(ctx context.Context, msg model.ChatMessage) error {
	_, err := s.db.Collection("chat_messages").InsertOne(ctx, msg)
	return storageErr("insert chat message", err)
}

// RecentMessages returns up to limit messages for a city in ascending
// chronological order (oldest first), so clients can render them top-down.
func (s *Store) RecentMessages(ctx context.Context, cityID string, limit int64) ([]model.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"_id": 0})

	cur, err := s.db.Collection("chat_messages").Find(ctx, bson.M{"city": cityID}, opts)
	if err != nil {
		return nil, storageErr("query chat messages", err)
	}

	var newestFirst []model.ChatMessage
	if err := cur.All(ctx, &newestFirst); err != nil {
		return nil, storageErr("decode chat messages", err)
	}

	// Query newest-first to ride the index, then flip to chronological order.
	out := make([]model.ChatMessage, len(newestFirst))
	for i, m := range newestFirst {
		out[len(newestFirst)-1-i] = m
	}
	return out, nil
}
