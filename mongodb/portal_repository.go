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

// PortalLinkRepositoryMongo implements domain.PortalLinkRepository.
type PortalLinkRepositoryMongo struct {
	collection *mongo.Collection
}

// NewPortalLinkRepositoryMongo creates the repository and ensures its
// indexes. Expired links are reaped by a TTL index.
func NewPortalLinkRepositoryMongo(ctx context.Context, db *mongo.Database) (domain.PortalLinkRepository, error) {
	repo := &PortalLinkRepositoryMongo{
		collection: db.Collection(PortalLinksCollection),
	}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token_hash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "company_id", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
	if _, err := repo.collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Warn().Err(err).Msg("Issue creating indexes for portal_links collection (might already exist)")
	}

	return repo, nil
}

// Create stores a portal link.
func (r *PortalLinkRepositoryMongo) Create(ctx context.Context, link *domain.PortalLink) error {
	if link.ID == "" {
		link.ID = NewObjectID()
	}
	link.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, link); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("portal link with this token already exists")
		}
		log.Error().Err(err).Msg("Error storing portal link in MongoDB")
		return err
	}
	return nil
}

// GetByTokenHash looks up a link by its hashed share token.
func (r *PortalLinkRepositoryMongo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PortalLink, error) {
	var link domain.PortalLink
	err := r.collection.FindOne(ctx, bson.M{"token_hash": tokenHash}).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// ListByCompany returns a company's portal links, newest first.
func (r *PortalLinkRepositoryMongo) ListByCompany(ctx context.Context, companyID string) ([]*domain.PortalLink, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var links []*domain.PortalLink
	if err := cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// Revoke marks a link revoked without deleting its audit trail.
func (r *PortalLinkRepositoryMongo) Revoke(ctx context.Context, id string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"revoked": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
