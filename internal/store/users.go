package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pulseofthecity/api/internal/model"
)

func (s *Store) CreateUser(ctx context.Context, u model.User) error {
	_, err := s.db.Collection("users").InsertOne(ctx, u)
	return storageErr("insert user", err)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (model.User, error) {
	return s.findUser(ctx, bson.M{"id": id})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (model.User, error) {
	var u model.User
	err := s.db.Collection("users").FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, storageErr("find user", err)
	}
	return u, nil
}

// UpdateUser applies the non-nil fields of upd to the user document and
// returns the updated user.
func (s *Store) UpdateUser(ctx context.Context, id string, upd model.UserUpdate) (model.User, error) {
	set := bson.M{}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.City != nil {
		set["city"] = *upd.City
	}
	if upd.AvatarURL != nil {
		set["avatar_url"] = *upd.AvatarURL
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.FavoriteGenres != nil {
		set["favorite_genres"] = *upd.FavoriteGenres
	}
	if upd.FavoriteVibes != nil {
		set["favorite_vibes"] = *upd.FavoriteVibes
	}

	if len(set) > 0 {
		_, err := s.db.Collection("users").UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
		if err != nil {
			return model.User{}, storageErr("update user", err)
		}
	}

	return s.GetUserByID(ctx, id)
}
