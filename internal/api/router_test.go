package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhub/task-manager-api/internal/infrastructure/config"
)

// newTestRouter builds the full router without touching the network: the
// mongo and redis clients are only stored at registration time, never dialed.
// The router is built once per test binary; echoprometheus registers its
// collectors in the default registry and rejects a second registration.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("building mongo client failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Port:      "8080",
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
	return NewRouter(client.Database("test"), rdb, cfg, zerolog.Nop())
}

func TestRouter_CORS(t *testing.T) {
	e := newTestRouter(t)

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
		req.Header.Set("Origin", "http://frontend.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204 for preflight, got %d", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
			t.Fatalf("preflight response carries no Access-Control-Allow-Origin header")
		}
	})

	t.Run("actual request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://frontend.example")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
			t.Fatalf("response carries no Access-Control-Allow-Origin header")
		}
	})
}
