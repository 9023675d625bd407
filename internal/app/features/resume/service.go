// Package resume handles resume uploads: the file goes to object storage and
// the resulting URL is written onto the user record, replacing any previous
// one. The old object is left in place; the user only ever points at the
// newest upload.
package resume

import (
	"context"
	"errors"
	"io"

	"github.com/hireloop/hireloop/internal/app/system/blobstore"
	"github.com/hireloop/hireloop/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// ErrUserNotFound is returned when the external id does not map to a
	// local user. Uploads never create users.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingExternalID is returned when no external id was supplied.
	ErrMissingExternalID = errors.New("external id is required")

	// ErrMissingFile is returned when no file was supplied.
	ErrMissingFile = errors.New("resume file is required")
)

// UserStore is the slice of the user store this service needs.
type UserStore interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
	SetResumeURL(ctx context.Context, id primitive.ObjectID, resumeURL string) (*models.User, error)
}

// Service uploads resumes and records their URLs.
type Service struct {
	users   UserStore
	uploads blobstore.Uploader
	log     *zap.Logger
}

func NewService(users UserStore, uploads blobstore.Uploader, logger *zap.Logger) *Service {
	return &Service{users: users, uploads: uploads, log: logger}
}

// Upload carries one resume file.
type Upload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// Update stores the file and sets the user's resume URL to the stored
// object. The user is resolved before the upload so a bad external id
// fails without writing to storage.
func (s *Service) Update(ctx context.Context, externalID string, up Upload) (*models.User, error) {
	if externalID == "" {
		return nil, ErrMissingExternalID
	}
	if up.Reader == nil {
		return nil, ErrMissingFile
	}

	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	url, err := s.uploads.Upload(ctx, up.Filename, up.Reader, up.ContentType)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.SetResumeURL(ctx, user.ID, url)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.log.Info("resume updated",
		zap.String("user_id", user.ID.Hex()),
		zap.String("resume_url", url))
	return updated, nil
}
