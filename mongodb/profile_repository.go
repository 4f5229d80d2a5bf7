package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/halcyonworks/mission-control/domain"
)

// ProfileRepositoryMongo implements domain.ProfileRepository.
type ProfileRepositoryMongo struct {
	collection *mongo.Collection
}

// NewProfileRepositoryMongo creates the repository and ensures its
// indexes.
func NewProfileRepositoryMongo(ctx context.Context, db *mongo.Database) (domain.ProfileRepository, error) {
	repo := &ProfileRepositoryMongo{
		collection: db.Collection(ProfilesCollection),
	}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := repo.collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Warn().Err(err).Msg("Issue creating indexes for profiles collection (might already exist)")
	}

	return repo, nil
}

// Upsert writes the profile keyed by user id, creating it on first
// login.
func (r *ProfileRepositoryMongo) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.UserID == "" {
		return errors.New("profile user ID is required for upsert")
	}
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"email":        profile.Email,
			"display_name": profile.DisplayName,
			"avatar_url":   profile.AvatarURL,
			"provider":     profile.Provider,
			"username":     profile.Username,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"_id":        NewObjectID(),
			"user_id":    profile.UserID,
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"user_id": profile.UserID}, update, opts); err != nil {
		log.Error().Err(err).Str("user_id", profile.UserID).Msg("Error upserting profile in MongoDB")
		return err
	}
	return nil
}

// GetByUserID retrieves the profile for a user.
func (r *ProfileRepositoryMongo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
