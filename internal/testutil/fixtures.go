package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/hireloop/hireloop/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user and returns it with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, externalID, email, displayName string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:            primitive.NewObjectID(),
		ExternalID:    externalID,
		Email:         email,
		DisplayName:   displayName,
		DisplayNameCI: text.Fold(displayName),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("CreateUser: %v", err)
	}
	return u
}

// CreateCompany inserts a test company and returns it with its generated ID.
func (f *Fixtures) CreateCompany(ctx context.Context, name string) models.Company {
	f.t.Helper()

	c := models.Company{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Email: "hiring@example.com",
		Image: "https://img.example.com/logo.png",
	}
	if _, err := f.db.Collection("companies").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("CreateCompany: %v", err)
	}
	return c
}

// CreateJob inserts a visible test job for the given company and returns it
// with its generated ID.
func (f *Fixtures) CreateJob(ctx context.Context, title string, companyID primitive.ObjectID) models.Job {
	f.t.Helper()

	j := models.Job{
		ID:          primitive.NewObjectID(),
		CompanyID:   companyID,
		Title:       title,
		Description: "Test job description",
		Location:    "Remote",
		Category:    "Engineering",
		Level:       "Senior",
		Salary:      120000,
		Visible:     true,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("jobs").InsertOne(ctx, j); err != nil {
		f.t.Fatalf("CreateJob: %v", err)
	}
	return j
}

// CreateApplication inserts a test application and returns it with its
// generated ID.
func (f *Fixtures) CreateApplication(ctx context.Context, userID, companyID, jobID primitive.ObjectID) models.JobApplication {
	f.t.Helper()

	a := models.JobApplication{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		CompanyID: companyID,
		JobID:     jobID,
		Status:    models.ApplicationStatusPending,
		AppliedAt: time.Now().UnixMilli(),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("job_applications").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("CreateApplication: %v", err)
	}
	return a
}
