package handlers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/infrastructure/memory"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/internal/router/modules"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
	"github.com/oksasatya/go-blog-api/pkg/response"
	"github.com/oksasatya/go-blog-api/pkg/validation"
)

type testServer struct {
	engine *gin.Engine
	tokens *helpers.TokenManager
	store  *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	store := memory.NewStore()
	tokens := helpers.NewTokenManager("test-secret", time.Hour)

	creds := application.NewCredentialService(store.Users(), tokens, nil)
	users := application.NewUserService(store.Users(), nil)
	blog := application.NewBlogService(store.Posts(), store.Comments(), store.Users(), nil)

	guard := middleware.RequireUser(func(c *gin.Context, token string) (*entity.User, error) {
		return creds.Resolve(c.Request.Context(), token)
	})

	engine := gin.New()
	engine.NoRoute(func(c *gin.Context) { response.NotFound(c) })
	root := engine.Group("/")
	modules.NewToken(handlers.NewTokenHandler(creds, nil)).Register(root)
	modules.NewUser(handlers.NewUserHandler(users, blog, nil), guard).Register(root)
	modules.NewPost(handlers.NewPostHandler(blog, nil), guard).Register(root)
	modules.NewComment(handlers.NewCommentHandler(blog, nil), guard).Register(root)

	return &testServer{engine: engine, tokens: tokens, store: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(token)))
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, username, email, password string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/users", "", gin.H{
		"username": username, "email": email, "password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register %s: expected 200, got %d (%s)", username, rec.Code, rec.Body.String())
	}
}

func (s *testServer) token(t *testing.T, username, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/token", "", gin.H{"username": username, "password": password})
	if rec.Code != http.StatusOK {
		t.Fatalf("token for %s: expected 200, got %d (%s)", username, rec.Code, rec.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if body.Token == "" {
		t.Fatalf("empty token")
	}
	return body.Token
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestRegisterAndAuthScenario(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/users", "", gin.H{
		"username": "alice", "email": "a@x.com", "password": "pw123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	user := decodeJSON[response.User](t, rec)
	if user.Email != "a@x.com" || user.URI != "/users/alice" {
		t.Fatalf("unexpected user representation: %+v", user)
	}

	token := srv.token(t, "alice", "pw123")

	rec = srv.do(t, http.MethodPost, "/posts", token, gin.H{
		"title": "Hello World", "body": "This is a long enough body",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	post := decodeJSON[response.Post](t, rec)
	if post.Title != "Hello World" || post.User.URI != "/users/alice" {
		t.Fatalf("unexpected post representation: %+v", post)
	}

	// A different authenticated user cannot update it.
	srv.register(t, "bob", "b@x.com", "pw456")
	bobToken := srv.token(t, "bob", "pw456")
	rec = srv.do(t, http.MethodPut, post.URI, bobToken, gin.H{"title": "Hijacked title"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if body := decodeJSON[map[string]string](t, rec); body["error"] != "Access Forbidden" {
		t.Fatalf("unexpected 403 body: %v", body)
	}

	// The author can.
	rec = srv.do(t, http.MethodPut, post.URI, token, gin.H{"title": "Updated title"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d (%s)", rec.Code, rec.Body.String())
	}
	rec = srv.do(t, http.MethodGet, post.URI, "", nil)
	if got := decodeJSON[response.Post](t, rec); got.Title != "Updated title" {
		t.Fatalf("update not visible: %+v", got)
	}
}

func TestTokenEndpointFailures(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "a@x.com", "pw123")

	for name, body := range map[string]any{
		"wrong password": gin.H{"username": "alice", "password": "nope"},
		"unknown user":   gin.H{"username": "ghost", "password": "pw123"},
		"missing fields": gin.H{"username": "alice"},
		"empty body":     nil,
	} {
		rec := srv.do(t, http.MethodPost, "/token", "", body)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", name, rec.Code)
		}
	}
}

func TestExpiredTokenForbidden(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "a@x.com", "pw123")

	expired, _, err := srv.tokens.IssueWithTTL("alice", "a@x.com", "whatever", -time.Minute)
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}
	rec := srv.do(t, http.MethodGet, "/posts", expired, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for expired token, got %d", rec.Code)
	}
}

func TestMissingAuthForbidden(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/posts"},
		{http.MethodPost, "/posts"},
		{http.MethodPut, "/posts/1"},
		{http.MethodDelete, "/users/alice"},
		{http.MethodPost, "/comments/1"},
	} {
		rec := srv.do(t, tc.method, tc.path, "", gin.H{})
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestNotFoundResponses(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "a@x.com", "pw123")

	for _, path := range []string{
		"/posts/999",
		"/posts/not-a-number",
		"/comments/999",
		"/users/ghost",
		"/users/ghost/posts",
		"/users/ghost/comments",
		"/posts/999/comments",
	} {
		rec := srv.do(t, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("GET %s: expected 404, got %d", path, rec.Code)
		}
		if body := decodeJSON[map[string]string](t, rec); body["error"] != "Entity doesn't exist" {
			t.Fatalf("GET %s: unexpected body %v", path, body)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "a@x.com", "pw123")
	token := srv.token(t, "alice", "pw123")

	rec := srv.do(t, http.MethodPost, "/posts", token, gin.H{
		"title": "short", "body": "This is a long enough body",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short title, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/users", "", gin.H{
		"username": "has space", "email": "x@x.com", "password": "pw",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for username with space, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/users", "", gin.H{
		"username": "carol", "email": "not-an-email", "password": "pw",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d", rec.Code)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "a@x.com", "pw123")

	rec := srv.do(t, http.MethodPost, "/users", "", gin.H{
		"username": "alice2", "email": "a@x.com", "password": "pw123",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/users", "", gin.H{
		"username": "alice", "email": "fresh@x.com", "password": "pw123",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d", rec.Code)
	}
}

func TestCommentThreadOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "a@x.com", "pw123")
	srv.register(t, "bob", "b@x.com", "pw456")
	alice := srv.token(t, "alice", "pw123")
	bob := srv.token(t, "bob", "pw456")

	rec := srv.do(t, http.MethodPost, "/posts", alice, gin.H{
		"title": "Hello World", "body": "This is a long enough body",
	})
	post := decodeJSON[response.Post](t, rec)

	// Reply to the post; contract says 204 here.
	rec = srv.do(t, http.MethodPost, post.URI+"/comments", bob, gin.H{"body": "first"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, post.URI+"/comments", "", nil)
	comments := decodeJSON[[]response.Comment](t, rec)
	if len(comments) != 1 || comments[0].Body != "first" {
		t.Fatalf("unexpected comments: %+v", comments)
	}

	// Nested reply to the comment returns the new comment.
	rec = srv.do(t, http.MethodPost, comments[0].URI, alice, gin.H{"body": "thanks"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	nested := decodeJSON[response.Comment](t, rec)
	if nested.User.URI != "/users/alice" {
		t.Fatalf("unexpected nested comment: %+v", nested)
	}

	// Only the author updates a comment.
	rec = srv.do(t, http.MethodPut, comments[0].URI, alice, gin.H{"body": "edited"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author edit, got %d", rec.Code)
	}
	rec = srv.do(t, http.MethodPut, comments[0].URI, bob, gin.H{"body": "edited"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for author edit, got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := decodeJSON[response.Comment](t, rec); got.Body != "edited" {
		t.Fatalf("edit not applied: %+v", got)
	}

	// Deleting the post takes the whole thread with it.
	rec = srv.do(t, http.MethodDelete, post.URI, alice, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = srv.do(t, http.MethodGet, comments[0].URI, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after cascade, got %d", rec.Code)
	}
	rec = srv.do(t, http.MethodGet, nested.URI, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for nested after cascade, got %d", rec.Code)
	}
}

func TestUserScopedPostRoutes(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "a@x.com", "pw123")
	srv.register(t, "bob", "b@x.com", "pw456")
	alice := srv.token(t, "alice", "pw123")
	bob := srv.token(t, "bob", "pw456")

	// The path user must be the caller.
	rec := srv.do(t, http.MethodPost, "/users/alice/posts", bob, gin.H{
		"title": "Sneaky post", "body": "This is a long enough body",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for mismatched path user, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/users/alice/posts", alice, gin.H{
		"title": "My own post", "body": "This is a long enough body",
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, "/users/alice/posts", "", nil)
	posts := decodeJSON[[]response.Post](t, rec)
	if len(posts) != 1 || posts[0].Title != "My own post" {
		t.Fatalf("unexpected posts: %+v", posts)
	}

	// GET /posts lists only the caller's posts.
	rec = srv.do(t, http.MethodGet, "/posts", bob, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if mine := decodeJSON[[]response.Post](t, rec); len(mine) != 0 {
		t.Fatalf("expected no posts for bob, got %+v", mine)
	}
}

func TestUserSelfServiceAndCascade(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "a@x.com", "pw123")
	srv.register(t, "bob", "b@x.com", "pw456")
	alice := srv.token(t, "alice", "pw123")
	bob := srv.token(t, "bob", "pw456")

	// Only self can update or delete.
	rec := srv.do(t, http.MethodPut, "/users/alice", bob, gin.H{"email": "evil@x.com"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	rec = srv.do(t, http.MethodPut, "/users/alice", alice, gin.H{"email": "new@x.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if u := decodeJSON[response.User](t, rec); u.Email != "new@x.com" {
		t.Fatalf("email not updated: %+v", u)
	}

	// Create content, then delete the account.
	rec = srv.do(t, http.MethodPost, "/posts", alice, gin.H{
		"title": "Hello World", "body": "This is a long enough body",
	})
	post := decodeJSON[response.Post](t, rec)

	rec = srv.do(t, http.MethodDelete, "/users/alice", bob, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	rec = srv.do(t, http.MethodDelete, "/users/alice", alice, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodGet, "/users/alice", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted user, got %d", rec.Code)
	}
	rec = srv.do(t, http.MethodGet, post.URI, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for cascaded post, got %d", rec.Code)
	}
}

func TestPasswordUpdateInvalidatesTokenOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "a@x.com", "pw123")
	token := srv.token(t, "alice", "pw123")

	rec := srv.do(t, http.MethodPut, "/users/alice", token, gin.H{"password": "changed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	// The old token carries a stale fingerprint now.
	rec = srv.do(t, http.MethodGet, "/posts", token, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for stale token, got %d", rec.Code)
	}

	fresh := srv.token(t, "alice", "changed")
	rec = srv.do(t, http.MethodGet, "/posts", fresh, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with fresh token, got %d", rec.Code)
	}
}

func TestUserListingAndComments(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "a@x.com", "pw123")
	srv.register(t, "bob", "b@x.com", "pw456")
	alice := srv.token(t, "alice", "pw123")
	bob := srv.token(t, "bob", "pw456")

	rec := srv.do(t, http.MethodGet, "/users", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if users := decodeJSON[[]response.User](t, rec); len(users) != 2 {
		t.Fatalf("expected 2 users, got %+v", users)
	}

	rec = srv.do(t, http.MethodPost, "/posts", alice, gin.H{
		"title": "Hello World", "body": "This is a long enough body",
	})
	post := decodeJSON[response.Post](t, rec)
	for i := 0; i < 3; i++ {
		rec = srv.do(t, http.MethodPost, post.URI+"/comments", bob, gin.H{"body": fmt.Sprintf("comment %d", i)})
		if rec.Code != http.StatusNoContent {
			t.Fatalf("comment %d: expected 204, got %d", i, rec.Code)
		}
	}

	rec = srv.do(t, http.MethodGet, "/users/bob/comments", "", nil)
	if cs := decodeJSON[[]response.Comment](t, rec); len(cs) != 3 {
		t.Fatalf("expected 3 comments, got %+v", cs)
	}
}
