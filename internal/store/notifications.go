package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulseofthecity/api/internal/model"
)

func (s *Store) CreateNotification(ctx context.Context, n model.Notification) error {
	_, err := s.db.Collection("notifications").InsertOne(ctx, n)
	return storageErr("insert notification", err)
}

// UserNotifications returns a user's notifications, newest first.
func (s *Store) UserNotifications(ctx context.Context, userID string, limit int64) ([]model.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"_id": 0})

	cur, err := s.db.Collection("notifications").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, storageErr("query notifications", err)
	}

	out := []model.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storageErr("decode notifications", err)
	}
	return out, nil
}

// MarkNotificationRead marks one of the user's notifications as read. The
// user id is part of the filter so users cannot touch each other's rows.
func (s *Store) MarkNotificationRead(ctx context.Context, id, userID string) error {
	_, err := s.db.Collection("notifications").UpdateOne(ctx,
		bson.M{"id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}})
	return storageErr("mark notification read", err)
}

func (s *Store) UnreadNotificationCount(ctx context.Context, userID string) (int64, error) {
	n, err := s.db.Collection("notifications").CountDocuments(ctx,
		bson.M{"user_id": userID, "is_read": false})
	if err != nil {
		return 0, storageErr("count unread notifications", err)
	}
	return n, nil
}
