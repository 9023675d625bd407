// Package identity reconciles identity-provider accounts with local user
// records. Clients send the provider's subject plus profile fields; we return
// the one local user that subject maps to, creating it on first contact.
package identity

import (
	"context"
	"errors"
	"strings"

	userstore "github.com/hireloop/hireloop/internal/app/store/users"
	"github.com/hireloop/hireloop/internal/app/system/htmlsanitize"
	"github.com/hireloop/hireloop/internal/app/system/normalize"
	"github.com/hireloop/hireloop/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// unknownName fills first/last name fields the provider left blank.
const unknownName = "Unknown"

var (
	// ErrInvalidExternalID is returned for an empty subject. The literal
	// string "null" is also rejected; clients that serialize an absent
	// provider id produce it often enough to special-case.
	ErrInvalidExternalID = errors.New("external id is required")

	// ErrInvalidEmail is returned when no usable email was supplied.
	ErrInvalidEmail = errors.New("email is required")

	// ErrEmailTaken is returned when the email already belongs to a user
	// with a different external id.
	ErrEmailTaken = errors.New("email already in use by another account")
)

// UserStore is the slice of the user store the reconciler needs.
type UserStore interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
}

// SyncInput carries the profile fields the identity provider supplied.
type SyncInput struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	AvatarURL  string
}

// Service implements get-or-create reconciliation of provider accounts.
type Service struct {
	users UserStore
	log   *zap.Logger
}

func NewService(users UserStore, logger *zap.Logger) *Service {
	return &Service{users: users, log: logger}
}

// Reconcile returns the local user for the given provider subject, creating
// one if it does not exist. It inserts first and treats a duplicate-key
// rejection as "someone else created it"; two concurrent calls for the same
// subject both return the same winning document.
//
// The profile fields are only consulted at creation time. A later Reconcile
// with different names or avatar returns the stored user unchanged.
func (s *Service) Reconcile(ctx context.Context, in SyncInput) (*models.User, bool, error) {
	externalID := strings.TrimSpace(in.ExternalID)
	if externalID == "" || externalID == "null" {
		return nil, false, ErrInvalidExternalID
	}
	email := normalize.Email(in.Email)
	if email == "" {
		return nil, false, ErrInvalidEmail
	}

	first := normalize.Name(htmlsanitize.PlainText(in.FirstName))
	last := normalize.Name(htmlsanitize.PlainText(in.LastName))

	// The display name reflects only what the provider actually sent;
	// placeholder names stay out of it.
	display := strings.TrimSpace(first + " " + last)

	if first == "" {
		first = unknownName
	}
	if last == "" {
		last = unknownName
	}

	candidate := models.User{
		ExternalID:  externalID,
		Email:       email,
		FirstName:   first,
		LastName:    last,
		DisplayName: display,
		AvatarURL:   strings.TrimSpace(in.AvatarURL),
	}

	created, err := s.users.Create(ctx, candidate)
	if err == nil {
		s.log.Info("created user",
			zap.String("user_id", created.ID.Hex()),
			zap.String("external_id", externalID))
		return &created, true, nil
	}
	if !errors.Is(err, userstore.ErrDuplicate) {
		return nil, false, err
	}

	// The insert lost to an existing document. If the subject matches, that
	// document is the answer; if not, the collision was on email.
	existing, err := s.users.GetByExternalID(ctx, externalID)
	if err == nil {
		return existing, false, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, ErrEmailTaken
	}
	return nil, false, err
}
