package mongodb

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/halcyonworks/mission-control/domain"
)

// LeadRepositoryMongo implements domain.LeadRepository over the leads
// and newsletter collections.
type LeadRepositoryMongo struct {
	leads      *mongo.Collection
	newsletter *mongo.Collection
}

// NewLeadRepositoryMongo creates the repository and ensures its
// indexes. Newsletter emails are unique; leads are not, the same
// person may write in twice.
func NewLeadRepositoryMongo(ctx context.Context, db *mongo.Database) (domain.LeadRepository, error) {
	repo := &LeadRepositoryMongo{
		leads:      db.Collection(LeadsCollection),
		newsletter: db.Collection(NewsletterCollection),
	}

	leadIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := repo.leads.Indexes().CreateMany(ctx, leadIndexes); err != nil {
		log.Warn().Err(err).Msg("Issue creating indexes for leads collection (might already exist)")
	}

	newsletterIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := repo.newsletter.Indexes().CreateMany(ctx, newsletterIndexes); err != nil {
		log.Warn().Err(err).Msg("Issue creating indexes for newsletter collection (might already exist)")
	}

	return repo, nil
}

// CreateLead stores a landing-page lead.
func (r *LeadRepositoryMongo) CreateLead(ctx context.Context, lead *domain.Lead) error {
	if lead.ID == "" {
		lead.ID = NewObjectID()
	}
	lead.CreatedAt = time.Now().UTC()

	if _, err := r.leads.InsertOne(ctx, lead); err != nil {
		log.Error().Err(err).Msg("Error storing lead in MongoDB")
		return err
	}
	return nil
}

// ListLeads returns captured leads, newest first.
func (r *LeadRepositoryMongo) ListLeads(ctx context.Context) ([]*domain.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.leads.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []*domain.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// Subscribe records a newsletter signup. A duplicate email is a
// no-op: the subscriber already exists and that is the desired state.
func (r *LeadRepositoryMongo) Subscribe(ctx context.Context, sub *domain.NewsletterSubscriber) error {
	if sub.ID == "" {
		sub.ID = NewObjectID()
	}
	sub.SubscribedAt = time.Now().UTC()

	if _, err := r.newsletter.InsertOne(ctx, sub); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		log.Error().Err(err).Msg("Error storing newsletter subscriber in MongoDB")
		return err
	}
	return nil
}
