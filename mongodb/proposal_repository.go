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

// ProposalRepositoryMongo implements domain.ProposalRepository.
type ProposalRepositoryMongo struct {
	collection *mongo.Collection
}

// NewProposalRepositoryMongo creates the repository and ensures its
// indexes.
func NewProposalRepositoryMongo(ctx context.Context, db *mongo.Database) (domain.ProposalRepository, error) {
	repo := &ProposalRepositoryMongo{
		collection: db.Collection(ProposalsCollection),
	}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := repo.collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Warn().Err(err).Msg("Issue creating indexes for proposals collection (might already exist)")
	}

	return repo, nil
}

// Create inserts a new proposal.
func (r *ProposalRepositoryMongo) Create(ctx context.Context, proposal *domain.Proposal) error {
	if proposal.ID == "" {
		proposal.ID = NewObjectID()
	}
	now := time.Now().UTC()
	proposal.CreatedAt = now
	proposal.UpdatedAt = now
	if proposal.Status == "" {
		proposal.Status = domain.ProposalStatusDraft
	}

	if _, err := r.collection.InsertOne(ctx, proposal); err != nil {
		log.Error().Err(err).Msg("Error storing proposal in MongoDB")
		return err
	}
	return nil
}

// GetByID retrieves a proposal by id.
func (r *ProposalRepositoryMongo) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	var proposal domain.Proposal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&proposal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

// ListByCompany returns a company's proposals, newest first.
func (r *ProposalRepositoryMongo) ListByCompany(ctx context.Context, companyID string) ([]*domain.Proposal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var proposals []*domain.Proposal
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, err
	}
	return proposals, nil
}

// Update replaces the mutable fields of a proposal.
func (r *ProposalRepositoryMongo) Update(ctx context.Context, proposal *domain.Proposal) error {
	if proposal.ID == "" {
		return errors.New("proposal ID is required for update")
	}
	proposal.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"title":      proposal.Title,
		"body":       proposal.Body,
		"model":      proposal.Model,
		"status":     proposal.Status,
		"updated_at": proposal.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": proposal.ID}, update)
	if err != nil {
		log.Error().Err(err).Str("id", proposal.ID).Msg("Error updating proposal in MongoDB")
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
