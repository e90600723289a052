package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gstbill-erp/gstbill/internal/shared"
)

type memoryRepo struct {
	users    map[string]*User
	sessions map[string]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*User), sessions: make(map[string]int64)}
}

func (r *memoryRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (r *memoryRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	r.sessions[id] = userID
	return nil
}

func (r *memoryRepo) DeleteSession(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func testHandler(t *testing.T) (*Handler, *memoryRepo, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := shared.NewSessionManager(client, "gstbill_session", time.Hour, false)
	repo := newMemoryRepo()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["owner@example.com"] = &User{
		ID:           42,
		Email:        "owner@example.com",
		Name:         "Owner",
		PasswordHash: string(hash),
		IsActive:     true,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(logger, NewService(repo), sessions), repo, sessions
}

func loginRequestWithSession(t *testing.T, sessions *shared.SessionManager, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	sess, err := sessions.Load(req.Context(), req)
	require.NoError(t, err)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func TestLoginSuccess(t *testing.T) {
	handler, repo, sessions := testHandler(t)

	req := loginRequestWithSession(t, sessions, `{"email":"owner@example.com","password":"correct-horse"}`)
	rec := httptest.NewRecorder()
	handler.handleLogin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(42), resp.UserID)
	require.Equal(t, "owner@example.com", resp.Email)

	sess := shared.SessionFromContext(req.Context())
	require.Equal(t, int64(42), sess.UserID())
	require.Equal(t, int64(42), repo.sessions[sess.ID])
}

func TestLoginWrongPassword(t *testing.T) {
	handler, repo, sessions := testHandler(t)

	req := loginRequestWithSession(t, sessions, `{"email":"owner@example.com","password":"wrong-password"}`)
	rec := httptest.NewRecorder()
	handler.handleLogin(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, repo.sessions)
}

func TestLoginInactiveUser(t *testing.T) {
	handler, repo, sessions := testHandler(t)
	repo.users["owner@example.com"].IsActive = false

	req := loginRequestWithSession(t, sessions, `{"email":"owner@example.com","password":"correct-horse"}`)
	rec := httptest.NewRecorder()
	handler.handleLogin(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsShortPassword(t *testing.T) {
	handler, _, sessions := testHandler(t)

	req := loginRequestWithSession(t, sessions, `{"email":"owner@example.com","password":"short"}`)
	rec := httptest.NewRecorder()
	handler.handleLogin(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	handler, repo, sessions := testHandler(t)

	login := loginRequestWithSession(t, sessions, `{"email":"owner@example.com","password":"correct-horse"}`)
	rec := httptest.NewRecorder()
	handler.handleLogin(rec, login)
	require.Equal(t, http.StatusOK, rec.Code)

	sess := shared.SessionFromContext(login.Context())
	require.Contains(t, repo.sessions, sess.ID)

	logout := httptest.NewRequest(http.MethodPost, "/logout", nil)
	logout = logout.WithContext(shared.ContextWithSession(logout.Context(), sess))
	rec = httptest.NewRecorder()
	handler.handleLogout(rec, logout)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotContains(t, repo.sessions, sess.ID)
}
