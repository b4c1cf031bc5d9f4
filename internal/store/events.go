package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulseofthecity/api/internal/model"
)

// EventFilter narrows ListEvents. Zero values mean "don't filter".
type EventFilter struct {
	City       string
	Genre      string
	Vibe       string
	DateFilter string // "tonight" or "weekend"
	Featured   bool
	Limit      int64
}

func (s *Store) CreateEvent(ctx context.Context, ev model.Event) error {
	_, err := s.db.Collection("events").InsertOne(ctx, ev)
	return storageErr("insert event", err)
}

func (s *Store) GetEvent(ctx context.Context, id string) (model.Event, error) {
	var ev model.Event
	err := s.db.Collection("events").FindOne(ctx, bson.M{"id": id}).Decode(&ev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Event{}, ErrNotFound
	}
	if err != nil {
		return model.Event{}, storageErr("find event", err)
	}
	return ev, nil
}

func (s *Store) ListEvents(ctx context.Context, f EventFilter) ([]model.Event, error) {
	query := bson.M{}
	if f.City != "" {
		query["city"] = f.City
	}
	if f.Genre != "" {
		query["genre"] = bson.M{"$in": []string{f.Genre}}
	}
	if f.Vibe != "" {
		query["vibe"] = f.Vibe
	}
	if f.Featured {
		query["is_featured"] = true
	}

	today := time.Now().UTC()
	switch f.DateFilter {
	case "tonight":
		query["date"] = today.Format("2006-01-02")
	case "weekend":
		// Today plus the next three days.
		dates := make([]string, 0, 4)
		for i := 0; i < 4; i++ {
			dates = append(dates, today.AddDate(0, 0, i).Format("2006-01-02"))
		}
		query["date"] = bson.M{"$in": dates}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetLimit(f.Limit).
		SetProjection(bson.M{"_id": 0})

	cur, err := s.db.Collection("events").Find(ctx, query, opts)
	if err != nil {
		return nil, storageErr("query events", err)
	}

	events := []model.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, storageErr("decode events", err)
	}
	return events, nil
}

// IncrementAttendees bumps an event's attendee count by one.
func (s *Store) IncrementAttendees(ctx context.Context, id string) error {
	res, err := s.db.Collection("events").UpdateOne(ctx,
		bson.M{"id": id}, bson.M{"$inc": bson.M{"attendee_count": 1}})
	if err != nil {
		return storageErr("increment attendees", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	n, err := s.db.Collection("events").CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storageErr("count events", err)
	}
	return n, nil
}
