package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/u1":
			_, _ = w.Write([]byte(`{"id":"u1","name":"Jane Doe","email":"jane@example.com","role":"CUSTOMER"}`))
		case "/internal/users/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/internal/users/locked":
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code":403,"message":"user is locked"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	t.Run("found", func(t *testing.T) {
		user, err := client.GetUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.Name)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("not found is not degraded", func(t *testing.T) {
		_, err := client.GetUserWithGracefulDegradation(context.Background(), "missing")
		require.ErrorIs(t, err, ErrUserNotFound)
		assert.NotErrorIs(t, err, ErrServiceDegraded)
	})

	t.Run("error message is surfaced", func(t *testing.T) {
		_, err := client.GetUser(context.Background(), "locked")
		require.ErrorIs(t, err, ErrInvalidResponse)
		assert.Contains(t, err.Error(), "user is locked")
	})

	t.Run("server error degrades", func(t *testing.T) {
		_, err := client.GetUserWithGracefulDegradation(context.Background(), "broken")
		require.ErrorIs(t, err, ErrServiceDegraded)
	})
}
