package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulseofthecity/api/internal/model"
)

func (s *Store) CreateVenue(ctx context.Context, v model.Venue) error {
	_, err := s.db.Collection("venues").InsertOne(ctx, v)
	return storageErr("insert venue", err)
}

func (s *Store) GetVenue(ctx context.Context, id string) (model.Venue, error) {
	var v model.Venue
	err := s.db.Collection("venues").FindOne(ctx, bson.M{"id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Venue{}, ErrNotFound
	}
	if err != nil {
		return model.Venue{}, storageErr("find venue", err)
	}
	return v, nil
}

// ListVenues returns venues, optionally filtered to one city.
func (s *Store) ListVenues(ctx context.Context, cityID string, limit int64) ([]model.Venue, error) {
	query := bson.M{}
	if cityID != "" {
		query["city"] = cityID
	}

	opts := options.Find().
		SetLimit(limit).
		SetProjection(bson.M{"_id": 0})

	cur, err := s.db.Collection("venues").Find(ctx, query, opts)
	if err != nil {
		return nil, storageErr("query venues", err)
	}

	venues := []model.Venue{}
	if err := cur.All(ctx, &venues); err != nil {
		return nil, storageErr("decode venues", err)
	}
	return venues, nil
}
