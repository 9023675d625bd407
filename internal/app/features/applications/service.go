// Package applications handles job applications: submitting one and listing
// a user's application history. At most one application may exist per user
// and job; the unique index on job_applications is the authority, and every
// path that would create a second one collapses to ErrAlreadyApplied.
package applications

import (
	"context"
	"errors"
	"time"

	"github.com/hireloop/hireloop/internal/app/features/identity"
	applicationstore "github.com/hireloop/hireloop/internal/app/store/applications"
	"github.com/hireloop/hireloop/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// ErrInvalidJobID is returned when the supplied job id is not a valid
	// ObjectID hex string.
	ErrInvalidJobID = errors.New("invalid job id")

	// ErrJobNotFound is returned when the job does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrAlreadyApplied is returned when the user has already applied to the
	// job, whether detected by the pre-check or by the insert itself.
	ErrAlreadyApplied = errors.New("already applied to this job")
)

// Reconciler resolves an identity-provider subject to a local user,
// creating one on first contact. Satisfied by *identity.Service.
type Reconciler interface {
	Reconcile(ctx context.Context, in identity.SyncInput) (*models.User, bool, error)
}

// ApplicationStore is the slice of the application store Apply needs.
type ApplicationStore interface {
	Create(ctx context.Context, a models.JobApplication) (models.JobApplication, error)
	Exists(ctx context.Context, userID, jobID primitive.ObjectID) (bool, error)
}

// JobStore is the slice of the job store Apply needs.
type JobStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
}

// Service submits applications.
type Service struct {
	identity Reconciler
	apps     ApplicationStore
	jobs     JobStore
	log      *zap.Logger
}

func NewService(identity Reconciler, apps ApplicationStore, jobs JobStore, logger *zap.Logger) *Service {
	return &Service{identity: identity, apps: apps, jobs: jobs, log: logger}
}

// ApplyInput carries one application request.
type ApplyInput struct {
	JobID string
	User  identity.SyncInput
}

// Apply submits an application for the given user and job. The user is
// reconciled first, so an unseen subject gets a user record as a side
// effect. The applied_at timestamp is assigned here, in Unix milliseconds.
//
// The Exists pre-check gives a friendly answer for the common repeat case;
// when two requests race past it, the unique index rejects the second insert
// and that rejection maps to the same ErrAlreadyApplied.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (*models.JobApplication, error) {
	jobID, err := primitive.ObjectIDFromHex(in.JobID)
	if err != nil {
		return nil, ErrInvalidJobID
	}

	user, _, err := s.identity.Reconcile(ctx, in.User)
	if err != nil {
		return nil, err
	}

	exists, err := s.apps.Exists(ctx, user.ID, jobID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	created, err := s.apps.Create(ctx, models.JobApplication{
		UserID:    user.ID,
		CompanyID: job.CompanyID,
		JobID:     job.ID,
		Status:    models.ApplicationStatusPending,
		AppliedAt: time.Now().UnixMilli(),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, applicationstore.ErrDuplicateApplication) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	s.log.Info("application submitted",
		zap.String("user_id", user.ID.Hex()),
		zap.String("job_id", job.ID.Hex()))
	return &created, nil
}
