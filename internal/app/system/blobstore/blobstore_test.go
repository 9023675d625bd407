package blobstore

import (
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
)

type fakeWriter struct {
	path        string
	contentType string
	body        string
	err         error
}

func (f *fakeWriter) Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error {
	if f.err != nil {
		return f.err
	}
	b, _ := io.ReadAll(r)
	f.path = path
	f.body = string(b)
	if opts != nil {
		f.contentType = opts.ContentType
	}
	return nil
}

var keyPattern = regexp.MustCompile(`^resumes/\d{4}/\d{2}/[0-9a-f]{8}\.pdf$`)

func TestUpload_KeyAndURL(t *testing.T) {
	w := &fakeWriter{}
	fs := NewFileStore(w, "https://files.example.com/", "resumes")

	url, err := fs.Upload(context.Background(), "My Resume.PDF", strings.NewReader("%PDF-1.4"), "application/pdf")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !keyPattern.MatchString(w.path) {
		t.Errorf("unexpected object key %q", w.path)
	}
	if url != "https://files.example.com/"+w.path {
		t.Errorf("url %q does not match stored key %q", url, w.path)
	}
	if w.body != "%PDF-1.4" {
		t.Errorf("stored body %q", w.body)
	}
	if w.contentType != "application/pdf" {
		t.Errorf("content type %q", w.contentType)
	}
}

func TestUpload_DefaultContentType(t *testing.T) {
	w := &fakeWriter{}
	fs := NewFileStore(w, "https://files.example.com", "resumes")

	if _, err := fs.Upload(context.Background(), "resume.pdf", strings.NewReader("x"), ""); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if w.contentType != "application/octet-stream" {
		t.Errorf("content type %q, want application/octet-stream", w.contentType)
	}
}

func TestUpload_StoreError(t *testing.T) {
	w := &fakeWriter{err: io.ErrClosedPipe}
	fs := NewFileStore(w, "https://files.example.com", "resumes")

	if _, err := fs.Upload(context.Background(), "resume.pdf", strings.NewReader("x"), "application/pdf"); err == nil {
		t.Fatal("expected error from failing store")
	}
}

func TestSafeExt(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"resume.pdf", ".pdf"},
		{"Resume.PDF", ".pdf"},
		{"resume.docx", ".docx"},
		{"resume", ""},
		{"resume.", ""},
		{"../../etc/passwd", ""},
		{"resume.p d f", ""},
		{"weird.superlongextension", ""},
	}
	for _, tt := range tests {
		if got := safeExt(tt.filename); got != tt.want {
			t.Errorf("safeExt(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestUpload_UniqueKeys(t *testing.T) {
	w := &fakeWriter{}
	fs := NewFileStore(w, "https://files.example.com", "resumes")

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		if _, err := fs.Upload(context.Background(), "resume.pdf", strings.NewReader("x"), "application/pdf"); err != nil {
			t.Fatalf("Upload: %v", err)
		}
		if seen[w.path] {
			t.Fatalf("duplicate key generated: %s", w.path)
		}
		seen[w.path] = true
	}
}
