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

// TaskRepositoryMongo implements domain.TaskRepository.
type TaskRepositoryMongo struct {
	collection *mongo.Collection
}

// NewTaskRepositoryMongo creates the repository and ensures its
// indexes.
func NewTaskRepositoryMongo(ctx context.Context, db *mongo.Database) (domain.TaskRepository, error) {
	repo := &TaskRepositoryMongo{
		collection: db.Collection(TasksCollection),
	}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "company_id", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "due_at", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := repo.collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Warn().Err(err).Msg("Issue creating indexes for tasks collection (might already exist)")
	}

	return repo, nil
}

// Create inserts a new task.
func (r *TaskRepositoryMongo) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = NewObjectID()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = domain.TaskStatusOpen
	}

	if _, err := r.collection.InsertOne(ctx, task); err != nil {
		log.Error().Err(err).Msg("Error storing task in MongoDB")
		return err
	}
	return nil
}

// GetByID retrieves a task by id.
func (r *TaskRepositoryMongo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		log.Error().Err(err).Str("id", id).Msg("Error getting task by ID from MongoDB")
		return nil, err
	}
	return &task, nil
}

// ListByCompany returns a company's tasks, soonest due first.
func (r *TaskRepositoryMongo) ListByCompany(ctx context.Context, companyID string) ([]*domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListOpen returns all not-done tasks across companies.
func (r *TaskRepositoryMongo) ListOpen(ctx context.Context) ([]*domain.Task, error) {
	filter := bson.M{"status": bson.M{"$ne": domain.TaskStatusDone}}
	opts := options.Find().SetSort(bson.D{{Key: "due_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update replaces the mutable fields of a task.
func (r *TaskRepositoryMongo) Update(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		return errors.New("task ID is required for update")
	}
	task.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"title":      task.Title,
		"status":     task.Status,
		"due_at":     task.DueAt,
		"updated_at": task.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": task.ID}, update)
	if err != nil {
		log.Error().Err(err).Str("id", task.ID).Msg("Error updating task in MongoDB")
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a task.
func (r *TaskRepositoryMongo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
