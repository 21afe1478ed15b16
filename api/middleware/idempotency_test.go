package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *memoryStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := s.values[key]; ok {
		return false, nil
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *memoryStore) IdempotencyKey(scope, id string) string {
	return "test:" + scope + ":" + id
}

func (s *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func newRouter(store *memoryStore, hits *int) http.Handler {
	r := chi.NewRouter()
	r.Use(Idempotency(store, 0, nil))
	r.Post("/api/v1/items/transition", func(w http.ResponseWriter, req *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	})
	r.Get("/api/v1/board", func(w http.ResponseWriter, req *http.Request) {
		*hits++
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := newRouter(store, &hits)

	body := `{"order_external_id":"1001","sku":"A1","target_status":"Picked"}`

	first := httptest.NewRequest(http.MethodPost, "/api/v1/items/transition", strings.NewReader(body))
	first.Header.Set("Idempotency-Key", "key-1")
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, first)
	require.Equal(t, http.StatusOK, rec1.Code)
	require.Equal(t, 1, hits)

	second := httptest.NewRequest(http.MethodPost, "/api/v1/items/transition", strings.NewReader(body))
	second.Header.Set("Idempotency-Key", "key-1")
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, second)

	assert.Equal(t, 1, hits, "replay must not re-run the handler")
	assert.Equal(t, rec1.Body.String(), rec2.Body.String())
	assert.Equal(t, "application/json", rec2.Header().Get("Content-Type"))
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := newRouter(store, &hits)

	first := httptest.NewRequest(http.MethodPost, "/api/v1/items/transition", strings.NewReader(`{"a":1}`))
	first.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, "/api/v1/items/transition", strings.NewReader(`{"a":2}`))
	second.Header.Set("Idempotency-Key", "key-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, second)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, hits)
}

func TestIdempotencyRequiresHeaderOnGuardedRoutes(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := newRouter(store, &hits)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/transition", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, hits)
}

func TestIdempotencyIgnoresUnguardedRoutes(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := newRouter(store, &hits)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/board", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, hits)
	assert.Empty(t, store.values)
}
