package completion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulegen/internal/backoff"
)

func fastRetries(n uint) backoff.Config {
	return backoff.Config{InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond, MaxRetries: n}
}

func TestClient_Complete(t *testing.T) {
	t.Parallel()

	var got request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"a\":1}"}}]}`))
	}))
	defer srv.Close()

	c, err := New(Config{URL: srv.URL, Model: "test-model", APIKey: "secret"})
	require.NoError(t, err)

	content, err := c.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, content)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "hello", got.Messages[0].Content)
}

func TestClient_Retries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		statuses  []int
		retries   uint
		wantCalls int32
		wantErr   bool
	}{
		{name: "server error then ok", statuses: []int{500, 200}, retries: 3, wantCalls: 2},
		{name: "rate limited then ok", statuses: []int{429, 429, 200}, retries: 3, wantCalls: 3},
		{name: "client error is permanent", statuses: []int{400, 200}, retries: 3, wantCalls: 1, wantErr: true},
		{name: "unauthorized is permanent", statuses: []int{401}, retries: 3, wantCalls: 1, wantErr: true},
		{name: "exhausted", statuses: []int{503, 503, 503}, retries: 2, wantCalls: 3, wantErr: true},
		{name: "no retries configured", statuses: []int{500, 200}, retries: 0, wantCalls: 1, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				i := int(calls.Add(1)) - 1
				status := tc.statuses[min(i, len(tc.statuses)-1)]

				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
					return
				}

				_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
			}))
			defer srv.Close()

			c, err := New(Config{URL: srv.URL, Backoff: fastRetries(tc.retries)})
			require.NoError(t, err)

			content, err := c.Complete(context.Background(), "p")
			assert.Equal(t, tc.wantCalls, calls.Load())

			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "nope")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ok", content)
		})
	}
}

func TestClient_BadResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "no choices", body: `{"choices":[]}`, wantErr: ErrEmptyResponse},
		{name: "not json", body: `<html>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c, err := New(Config{URL: srv.URL, Backoff: fastRetries(3)})
			require.NoError(t, err)

			_, err = c.Complete(context.Background(), "p")
			require.Error(t, err)
			assert.Equal(t, int32(1), calls.Load(), "decoding failures are not retried")

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c, err := New(Config{URL: srv.URL, Backoff: fastRetries(5)})
	require.NoError(t, err)

	_, err = c.Complete(ctx, "p")
	require.Error(t, err)
}

func TestNew_RequiresURL(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	require.Error(t, err)
}
