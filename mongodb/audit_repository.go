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

// AuditRepositoryMongo implements domain.AuditRepository.
type AuditRepositoryMongo struct {
	collection *mongo.Collection
}

// NewAuditRepositoryMongo creates the repository and ensures its
// indexes.
func NewAuditRepositoryMongo(ctx context.Context, db *mongo.Database) (domain.AuditRepository, error) {
	repo := &AuditRepositoryMongo{
		collection: db.Collection(AuditsCollection),
	}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := repo.collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Warn().Err(err).Msg("Issue creating indexes for audits collection (might already exist)")
	}

	return repo, nil
}

// Create inserts a new audit record.
func (r *AuditRepositoryMongo) Create(ctx context.Context, audit *domain.Audit) error {
	if audit.ID == "" {
		audit.ID = NewObjectID()
	}
	now := time.Now().UTC()
	audit.CreatedAt = now
	audit.UpdatedAt = now
	if audit.Status == "" {
		audit.Status = domain.AuditStatusPending
	}

	if _, err := r.collection.InsertOne(ctx, audit); err != nil {
		log.Error().Err(err).Msg("Error storing audit in MongoDB")
		return err
	}
	return nil
}

// GetByID retrieves an audit by id.
func (r *AuditRepositoryMongo) GetByID(ctx context.Context, id string) (*domain.Audit, error) {
	var audit domain.Audit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&audit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &audit, nil
}

// ListByCompany returns a company's audits, newest first.
func (r *AuditRepositoryMongo) ListByCompany(ctx context.Context, companyID string) ([]*domain.Audit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var audits []*domain.Audit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, err
	}
	return audits, nil
}

// Update writes the outcome of a generation attempt.
func (r *AuditRepositoryMongo) Update(ctx context.Context, audit *domain.Audit) error {
	if audit.ID == "" {
		return errors.New("audit ID is required for update")
	}
	audit.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"scraped_summary": audit.ScrapedSummary,
		"body":            audit.Body,
		"model":           audit.Model,
		"status":          audit.Status,
		"failure_reason":  audit.FailureReason,
		"updated_at":      audit.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": audit.ID}, update)
	if err != nil {
		log.Error().Err(err).Str("id", audit.ID).Msg("Error updating audit in MongoDB")
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
