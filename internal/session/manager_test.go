package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"zeelx/internal/client"
	"zeelx/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, status int, env apiEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// newManager wires a manager + client against a test backend.
func newManager(t *testing.T, handler http.HandlerFunc) (*Manager, *FileStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	mgr := NewManager(store)
	api, err := client.New(client.Config{BaseURL: server.URL, Tokens: mgr})
	require.NoError(t, err)
	mgr.Bind(api)
	return mgr, store
}

func TestLoginSuccess(t *testing.T) {
	mgr, store := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		respond(w, http.StatusOK, apiEnvelope{
			Success: true,
			Data:    domain.Session{Token: "tok-1", User: &domain.User{ID: 9, Phone: "99112233"}},
		})
	})

	require.Equal(t, Unauthenticated, mgr.State())
	require.NoError(t, mgr.Login(context.Background(), "99112233", "secret123"))

	assert.Equal(t, Authenticated, mgr.State())
	assert.Equal(t, "tok-1", mgr.Token())
	assert.Equal(t, "99112233", mgr.User().Phone)

	// Session persisted for the next launch.
	token, user, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, uint(9), user.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	mgr, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusUnauthorized, apiEnvelope{Success: false, Error: "invalid credentials"})
	})

	err := mgr.Login(context.Background(), "99112233", "wrongpass1")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
	assert.Equal(t, Unauthenticated, mgr.State())
	assert.Empty(t, mgr.Token())
}

func TestLoginValidationBlocksRequest(t *testing.T) {
	called := false
	mgr, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	var vErr *domain.ValidationError

	err := mgr.Login(context.Background(), "123", "secret123")
	require.Error(t, err)
	assert.True(t, errors.As(err, &vErr))

	err = mgr.Login(context.Background(), "99112233", "short")
	require.Error(t, err)
	assert.True(t, errors.As(err, &vErr))

	assert.False(t, called, "validation failures must not reach the network")
}

func TestRegisterRequiresName(t *testing.T) {
	mgr, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("must not be called")
	})

	err := mgr.Register(context.Background(), client.RegisterInput{
		Phone:    "99112233",
		Password: "secret123",
	})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestLogoutBestEffort(t *testing.T) {
	mgr, store := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, apiEnvelope{
			Success: true,
			Data:    domain.Session{Token: "tok-1", User: &domain.User{ID: 9}},
		})
	})
	require.NoError(t, mgr.Login(context.Background(), "99112233", "secret123"))

	mgr.Logout()

	assert.Equal(t, Unauthenticated, mgr.State())
	assert.Empty(t, mgr.Token())
	assert.Nil(t, mgr.User())

	token, user, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestBootstrapRestoresSession(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, store.Save("tok-old", &domain.User{ID: 2, Phone: "88110022"}))

	mgr := NewManager(store)
	mgr.Bootstrap()

	assert.Equal(t, Authenticated, mgr.State())
	assert.Equal(t, "tok-old", mgr.Token())
	assert.Equal(t, "88110022", mgr.User().Phone)
}

func TestRefreshUserKeepsStaleCacheOnFailure(t *testing.T) {
	fail := false
	mgr, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			respond(w, http.StatusOK, apiEnvelope{
				Success: true,
				Data:    domain.Session{Token: "tok-1", User: &domain.User{ID: 9, Name: "Old Name"}},
			})
			return
		}
		if fail {
			respond(w, http.StatusInternalServerError, apiEnvelope{Success: false, Error: "boom"})
			return
		}
		respond(w, http.StatusOK, apiEnvelope{
			Success: true,
			Data:    map[string]*domain.User{"user": {ID: 9, Name: "New Name"}},
		})
	})
	require.NoError(t, mgr.Login(context.Background(), "99112233", "secret123"))

	mgr.RefreshUser(context.Background())
	assert.Equal(t, "New Name", mgr.User().Name)

	fail = true
	mgr.RefreshUser(context.Background())
	// Degrades to stale data, still authenticated.
	assert.Equal(t, "New Name", mgr.User().Name)
	assert.Equal(t, Authenticated, mgr.State())
}

func TestRefreshUserEndsSessionOn401(t *testing.T) {
	mgr, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			respond(w, http.StatusOK, apiEnvelope{
				Success: true,
				Data:    domain.Session{Token: "tok-1", User: &domain.User{ID: 9}},
			})
			return
		}
		respond(w, http.StatusUnauthorized, apiEnvelope{Success: false, Error: "Access token expired"})
	})
	require.NoError(t, mgr.Login(context.Background(), "99112233", "secret123"))

	mgr.RefreshUser(context.Background())
	assert.Equal(t, Unauthenticated, mgr.State())
	assert.Empty(t, mgr.Token())
}
