// internal/app/features/applications/query.go
package applications

import (
	"context"
	"errors"

	"github.com/hireloop/hireloop/internal/app/store/queries/userapplications"
	"github.com/hireloop/hireloop/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrUserNotFound is returned when the external id does not map to a local
// user. Distinct from a known user with zero applications, which is a
// successful empty listing.
var ErrUserNotFound = errors.New("user not found")

// UserLookup resolves an external id to a local user without creating one.
type UserLookup interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
}

// ApplicationLister runs the joined listing for one user.
type ApplicationLister interface {
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]userapplications.ApplicationWithDetails, error)
}

// QueryService answers application-history listings.
type QueryService struct {
	users UserLookup
	apps  ApplicationLister
}

func NewQueryService(users UserLookup, apps ApplicationLister) *QueryService {
	return &QueryService{users: users, apps: apps}
}

// ListForExternalID returns the user's applications with job and company
// details joined, newest first. Unlike Apply, an unknown subject is an error
// here; listing never creates a user.
func (s *QueryService) ListForExternalID(ctx context.Context, externalID string) ([]userapplications.ApplicationWithDetails, error) {
	if externalID == "" {
		return nil, ErrUserNotFound
	}

	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	rows, err := s.apps.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []userapplications.ApplicationWithDetails{}
	}
	return rows, nil
}
