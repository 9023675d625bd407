package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestHandler() (*Handler, *fakeUserStore) {
	store := newFakeUserStore()
	svc := NewService(store, zap.NewNop())
	return NewHandler(svc, zap.NewNop()), store
}

func postSync(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/users/sync", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeSync(rec, req)
	return rec
}

func TestServeSync_CreatesUser(t *testing.T) {
	h, _ := newTestHandler()

	rec := postSync(t, h, `{"externalId":"idp_user_1","email":"ada@example.com","firstName":"Ada","lastName":"Lovelace"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Created bool `json:"created"`
		User    struct {
			ExternalID  string `json:"external_id"`
			Email       string `json:"email"`
			DisplayName string `json:"display_name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if !resp.Success || !resp.Created {
		t.Errorf("success=%v created=%v", resp.Success, resp.Created)
	}
	if resp.User.DisplayName != "Ada Lovelace" {
		t.Errorf("display_name: got %q", resp.User.DisplayName)
	}
}

func TestServeSync_SecondCallReturnsSameUser(t *testing.T) {
	h, _ := newTestHandler()

	body := `{"externalId":"idp_user_1","email":"ada@example.com","firstName":"Ada"}`
	first := postSync(t, h, body)
	second := postSync(t, h, body)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status: got %d then %d", first.Code, second.Code)
	}

	var a, b struct {
		Created bool `json:"created"`
		User    struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	_ = json.Unmarshal(first.Body.Bytes(), &a)
	_ = json.Unmarshal(second.Body.Bytes(), &b)
	if !a.Created || b.Created {
		t.Errorf("created flags: got %v then %v", a.Created, b.Created)
	}
	if a.User.ID != b.User.ID {
		t.Errorf("expected same user id, got %q and %q", a.User.ID, b.User.ID)
	}
}

func TestServeSync_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler()

	rec := postSync(t, h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeSync_MissingExternalID(t *testing.T) {
	h, store := newTestHandler()

	for _, body := range []string{
		`{"email":"ada@example.com"}`,
		`{"externalId":"null","email":"ada@example.com"}`,
	} {
		rec := postSync(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status got %d, want %d", body, rec.Code, http.StatusBadRequest)
		}
	}
	if store.creates != 0 {
		t.Errorf("expected no store writes, got %d", store.creates)
	}
}

func TestServeSync_EmailTaken(t *testing.T) {
	h, _ := newTestHandler()

	postSync(t, h, `{"externalId":"idp_user_1","email":"shared@example.com"}`)
	rec := postSync(t, h, `{"externalId":"idp_user_2","email":"shared@example.com"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusConflict)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Message == "" {
		t.Error("expected a message")
	}
}
