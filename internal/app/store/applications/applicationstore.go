// internal/app/store/applications/applicationstore.go
package applicationstore

import (
	"context"
	"errors"

	"github.com/hireloop/hireloop/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("job_applications")}
}

// ErrDuplicateApplication is returned when an insert collides with the unique
// index on (user_id, job_id). The index is the authority on "already
// applied"; any pre-check is only a fast path.
var ErrDuplicateApplication = errors.New("user has already applied to this job")

// Create inserts a new application. Status defaults to Pending.
func (s *Store) Create(ctx context.Context, a models.JobApplication) (models.JobApplication, error) {
	a.ID = primitive.NewObjectID()
	if a.Status == "" {
		a.Status = models.ApplicationStatusPending
	}

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.JobApplication{}, ErrDuplicateApplication
		}
		return models.JobApplication{}, err
	}
	return a, nil
}

// Exists checks if an application exists for the given user and job.
func (s *Store) Exists(ctx context.Context, userID, jobID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "job_id": jobID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByUser returns the number of applications a user has submitted.
func (s *Store) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID})
}
