package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulseofthecity/api/internal/model"
)

func (s *Store) CreateFeedPost(ctx context.Context, post model.FeedPost) error {
	_, err := s.db.Collection("feed_posts").InsertOne(ctx, post)
	return storageErr("insert feed post", err)
}

// CityFeed returns the newest posts for a city, newest first.
func (s *Store) CityFeed(ctx context.Context, cityID string, limit int64) ([]model.FeedPost, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"_id": 0})

	cur, err := s.db.Collection("feed_posts").Find(ctx, bson.M{"city": cityID}, opts)
	if err != nil {
		return nil, storageErr("query feed posts", err)
	}

	posts := []model.FeedPost{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, storageErr("decode feed posts", err)
	}
	return posts, nil
}

// LikeFeedPost bumps a post's like count by one.
func (s *Store) LikeFeedPost(ctx context.Context, id string) error {
	res, err := s.db.Collection("feed_posts").UpdateOne(ctx,
		bson.M{"id": id}, bson.M{"$inc": bson.M{"likes": 1}})
	if err != nil {
		return storageErr("like feed post", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
