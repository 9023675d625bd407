// internal/app/store/jobs/jobstore.go
package jobstore

import (
	"context"

	"github.com/hireloop/hireloop/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("jobs")}
}

// GetByID loads a job by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var j models.Job
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		return nil, err
	}
	return &j, nil
}

// ListVisible returns all jobs with visible=true.
func (s *Store) ListVisible(ctx context.Context) ([]models.Job, error) {
	cur, err := s.c.Find(ctx, bson.M{"visible": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var jobs []models.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
