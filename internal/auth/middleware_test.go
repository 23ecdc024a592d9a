package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointage/internal/config"
	"pointage/internal/errors"
	"pointage/models"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New(errors.CodeUserNotFound, "user not found")
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New(errors.CodeUserNotFound, "user not found")
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

type middlewareFixture struct {
	issuer  *TokenIssuer
	users   *fakeUserRepo
	lastErr error
}

func newMiddlewareFixture() *middlewareFixture {
	return &middlewareFixture{
		issuer: NewTokenIssuer(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}),
		users:  &fakeUserRepo{users: make(map[uuid.UUID]*models.User)},
	}
}

func (f *middlewareFixture) writeError(w http.ResponseWriter, _ *http.Request, err error) {
	f.lastErr = err
	w.WriteHeader(http.StatusUnauthorized)
}

func (f *middlewareFixture) serve(t *testing.T, authorization string, next http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	handler := Middleware(f.issuer, f.users, f.writeError)(next)
	req := httptest.NewRequest(http.MethodGet, "/api/timetracking/status", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareAttachesPrincipal(t *testing.T) {
	f := newMiddlewareFixture()
	user := testUser()
	f.users.users[user.ID] = user

	token, err := f.issuer.Issue(user)
	require.NoError(t, err)

	var got models.Principal
	var ok bool
	rec := f.serve(t, "Bearer "+token, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = PrincipalFrom(r.Context())
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.Role, got.Role)
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	f := newMiddlewareFixture()

	f.serve(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	require.Error(t, f.lastErr)
	assert.Equal(t, errors.CodeNoToken, errors.GetCode(f.lastErr))
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	f := newMiddlewareFixture()

	f.serve(t, "Basic dXNlcjpwYXNz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	require.Error(t, f.lastErr)
	assert.Equal(t, errors.CodeInvalidToken, errors.GetCode(f.lastErr))
}

func TestMiddlewareRejectsDisabledAccount(t *testing.T) {
	f := newMiddlewareFixture()
	user := testUser()
	user.IsActive = false
	f.users.users[user.ID] = user

	token, err := f.issuer.Issue(user)
	require.NoError(t, err)

	f.serve(t, "Bearer "+token, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	require.Error(t, f.lastErr)
	assert.Equal(t, errors.CodeUnauthorized, errors.GetCode(f.lastErr))
}

func TestMiddlewareRejectsUnknownUser(t *testing.T) {
	f := newMiddlewareFixture()
	user := testUser() // never stored in the repo

	token, err := f.issuer.Issue(user)
	require.NoError(t, err)

	f.serve(t, "Bearer "+token, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	require.Error(t, f.lastErr)
	assert.Equal(t, errors.CodeUserNotFound, errors.GetCode(f.lastErr))
}

func TestRequireRole(t *testing.T) {
	f := newMiddlewareFixture()

	guard := RequireRole(f.writeError, models.RoleSupervisor, models.RoleAdmin)

	serveAs := func(role models.Role) (*httptest.ResponseRecorder, bool) {
		f.lastErr = nil
		ran := false
		handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ran = true
		}))
		principal := models.Principal{ID: uuid.New(), Username: "x", Role: role}
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/active", nil)
		req = req.WithContext(context.WithValue(req.Context(), principalKey{}, principal))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec, ran
	}

	_, ran := serveAs(models.RoleSupervisor)
	assert.True(t, ran)

	_, ran = serveAs(models.RoleAdmin)
	assert.True(t, ran)

	_, ran = serveAs(models.RoleEmployee)
	assert.False(t, ran)
	assert.Equal(t, errors.CodeForbidden, errors.GetCode(f.lastErr))
}
