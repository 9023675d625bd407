// internal/app/store/users/userstore.go
package userstore

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - ExternalID / externalID / external_id: The identity-provider subject string clients send us

import (
	"context"
	"errors"
	"time"

	"github.com/hireloop/hireloop/internal/app/system/normalize"
	"github.com/hireloop/hireloop/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicate is returned when an insert collides with the unique index
	// on external_id or email. The caller decides which collision it was by
	// re-reading.
	ErrDuplicate = errors.New("a user with this external id or email already exists")

	errMissingExternalID = errors.New("external_id is required")
	errMissingEmail      = errors.New("email is required")
)

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByExternalID loads a user by identity-provider subject. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"external_id": externalID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing fields. The unique indexes on
// external_id and email are the only arbiters of duplication; a collision
// surfaces as ErrDuplicate.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ExternalID == "" {
		return models.User{}, errMissingExternalID
	}
	if u.Email == "" {
		return models.User{}, errMissingEmail
	}

	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.DisplayNameCI = text.Fold(u.DisplayName)

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// SetResumeURL updates a user's resume URL and returns the updated document.
// Returns mongo.ErrNoDocuments if the user does not exist.
func (s *Store) SetResumeURL(ctx context.Context, id primitive.ObjectID, resumeURL string) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"resume_url": resumeURL, "updated_at": time.Now()}},
		opts,
	).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
