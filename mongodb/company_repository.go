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

// CompanyRepositoryMongo implements domain.CompanyRepository.
type CompanyRepositoryMongo struct {
	collection *mongo.Collection
}

// NewCompanyRepositoryMongo creates the repository and ensures its
// indexes.
func NewCompanyRepositoryMongo(ctx context.Context, db *mongo.Database) (domain.CompanyRepository, error) {
	repo := &CompanyRepositoryMongo{
		collection: db.Collection(CompaniesCollection),
	}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "stage", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := repo.collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Warn().Err(err).Msg("Issue creating indexes for companies collection (might already exist)")
	}

	return repo, nil
}

// Create inserts a new company.
func (r *CompanyRepositoryMongo) Create(ctx context.Context, company *domain.Company) error {
	if company.ID == "" {
		company.ID = NewObjectID()
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now
	if company.Stage == "" {
		company.Stage = domain.CompanyStageLead
	}

	if _, err := r.collection.InsertOne(ctx, company); err != nil {
		log.Error().Err(err).Msg("Error storing company in MongoDB")
		return err
	}
	return nil
}

// GetByID retrieves a company by id.
func (r *CompanyRepositoryMongo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	var company domain.Company
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		log.Error().Err(err).Str("id", id).Msg("Error getting company by ID from MongoDB")
		return nil, err
	}
	return &company, nil
}

// List returns companies, optionally filtered by stage, newest first.
func (r *CompanyRepositoryMongo) List(ctx context.Context, stage domain.CompanyStage) ([]*domain.Company, error) {
	filter := bson.M{}
	if stage != "" {
		filter["stage"] = stage
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		log.Error().Err(err).Msg("Error listing companies from MongoDB")
		return nil, err
	}
	defer cursor.Close(ctx)

	var companies []*domain.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// Update replaces the mutable fields of a company.
func (r *CompanyRepositoryMongo) Update(ctx context.Context, company *domain.Company) error {
	if company.ID == "" {
		return errors.New("company ID is required for update")
	}
	company.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"name":          company.Name,
		"website":       company.Website,
		"contact_name":  company.ContactName,
		"contact_email": company.ContactEmail,
		"stage":         company.Stage,
		"notes":         company.Notes,
		"updated_at":    company.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": company.ID}, update)
	if err != nil {
		log.Error().Err(err).Str("id", company.ID).Msg("Error updating company in MongoDB")
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a company.
func (r *CompanyRepositoryMongo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error deleting company from MongoDB")
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
