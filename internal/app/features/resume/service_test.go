package resume

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/hireloop/hireloop/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeUserStore struct {
	users map[string]models.User // keyed by external id
}

func (f *fakeUserStore) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	u, ok := f.users[externalID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}

func (f *fakeUserStore) SetResumeURL(ctx context.Context, id primitive.ObjectID, resumeURL string) (*models.User, error) {
	for ext, u := range f.users {
		if u.ID == id {
			u.ResumeURL = resumeURL
			f.users[ext] = u
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakeUploader struct {
	url      string
	err      error
	uploads  int
	lastName string
	lastBody string
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, r io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads++
	f.lastName = filename
	b, _ := io.ReadAll(r)
	f.lastBody = string(b)
	return f.url, nil
}

func seedUser() models.User {
	return models.User{
		ID:         primitive.NewObjectID(),
		ExternalID: "idp_user_1",
		Email:      "ada@example.com",
	}
}

func TestUpdate(t *testing.T) {
	user := seedUser()
	store := &fakeUserStore{users: map[string]models.User{user.ExternalID: user}}
	uploader := &fakeUploader{url: "https://files.example.com/resumes/2026/08/abcd1234.pdf"}
	svc := NewService(store, uploader, zap.NewNop())

	updated, err := svc.Update(context.Background(), user.ExternalID, Upload{
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Reader:      strings.NewReader("%PDF-1.4"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ResumeURL != uploader.url {
		t.Errorf("ResumeURL: got %q, want %q", updated.ResumeURL, uploader.url)
	}
	if uploader.lastBody != "%PDF-1.4" {
		t.Errorf("uploaded body: got %q", uploader.lastBody)
	}
}

func TestUpdate_ReplacesPreviousURL(t *testing.T) {
	user := seedUser()
	user.ResumeURL = "https://files.example.com/resumes/2026/07/old00000.pdf"
	store := &fakeUserStore{users: map[string]models.User{user.ExternalID: user}}
	uploader := &fakeUploader{url: "https://files.example.com/resumes/2026/08/new00000.pdf"}
	svc := NewService(store, uploader, zap.NewNop())

	updated, err := svc.Update(context.Background(), user.ExternalID, Upload{
		Filename: "resume.pdf",
		Reader:   strings.NewReader("new"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ResumeURL != uploader.url {
		t.Errorf("ResumeURL: got %q, want new upload", updated.ResumeURL)
	}
}

func TestUpdate_UnknownUser(t *testing.T) {
	store := &fakeUserStore{users: map[string]models.User{}}
	uploader := &fakeUploader{url: "https://files.example.com/x.pdf"}
	svc := NewService(store, uploader, zap.NewNop())

	_, err := svc.Update(context.Background(), "no_such_subject", Upload{
		Filename: "resume.pdf",
		Reader:   strings.NewReader("x"),
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if uploader.uploads != 0 {
		t.Errorf("expected no uploads for unknown user, got %d", uploader.uploads)
	}
}

func TestUpdate_MissingExternalID(t *testing.T) {
	svc := NewService(&fakeUserStore{users: map[string]models.User{}}, &fakeUploader{}, zap.NewNop())

	_, err := svc.Update(context.Background(), "", Upload{Reader: strings.NewReader("x")})
	if !errors.Is(err, ErrMissingExternalID) {
		t.Fatalf("expected ErrMissingExternalID, got %v", err)
	}
}

func TestUpdate_MissingFile(t *testing.T) {
	user := seedUser()
	svc := NewService(&fakeUserStore{users: map[string]models.User{user.ExternalID: user}}, &fakeUploader{}, zap.NewNop())

	_, err := svc.Update(context.Background(), user.ExternalID, Upload{})
	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
}

func TestUpdate_UploadErrorLeavesUserUnchanged(t *testing.T) {
	user := seedUser()
	store := &fakeUserStore{users: map[string]models.User{user.ExternalID: user}}
	svc := NewService(store, &fakeUploader{err: io.ErrClosedPipe}, zap.NewNop())

	_, err := svc.Update(context.Background(), user.ExternalID, Upload{
		Filename: "resume.pdf",
		Reader:   strings.NewReader("x"),
	})
	if err == nil {
		t.Fatal("expected error from failing uploader")
	}
	if store.users[user.ExternalID].ResumeURL != "" {
		t.Error("expected resume URL unchanged after failed upload")
	}
}
