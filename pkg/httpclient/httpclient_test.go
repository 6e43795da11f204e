package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestClient_GetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "zhang", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"zhang","count":3}`))
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL)
	var got echoPayload
	params := url.Values{}
	params.Set("name", "zhang")
	err := client.GetJSON(context.Background(), "/items", params, &got)
	require.NoError(t, err)
	assert.Equal(t, "zhang", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestClient_PostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"name":"created","count":1}`))
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL)
	var got echoPayload
	err := client.PostJSON(context.Background(), "/items", &echoPayload{Name: "new"}, &got)
	require.NoError(t, err)
	assert.Equal(t, "created", got.Name)
}

func TestClient_RetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"name":"ok","count":0}`))
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL,
		httpclient.WithRetries(3),
		httpclient.WithBackoff(time.Millisecond),
	)
	var got echoPayload
	err := client.GetJSON(context.Background(), "/flaky", nil, &got)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "ok", got.Name)
}

func TestClient_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL,
		httpclient.WithRetries(2),
		httpclient.WithBackoff(time.Millisecond),
	)
	_, err := client.Get(context.Background(), "/down", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpclient.ErrServerFailure)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_NoRetryOn4xx(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL, httpclient.WithRetries(3))
	err := client.GetJSON(context.Background(), "/missing", nil, &echoPayload{})
	require.Error(t, err)
	assert.ErrorIs(t, err, httpclient.ErrStatusNotOK)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_PostBodyResentOnRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		if len(body) == 0 {
			t.Error("request body lost on retry")
		}
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(body)
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL,
		httpclient.WithRetries(1),
		httpclient.WithBackoff(time.Millisecond),
	)
	var got echoPayload
	err := client.PostJSON(context.Background(), "/echo", &echoPayload{Name: "retry", Count: 9}, &got)
	require.NoError(t, err)
	assert.Equal(t, "retry", got.Name)
	assert.Equal(t, 9, got.Count)
}

func TestClient_ContextCancelStopsRetry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := httpclient.NewClient(server.URL,
		httpclient.WithRetries(10),
		httpclient.WithBackoff(time.Second),
	)
	_, err := client.Get(ctx, "/slow", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-abc", r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL, httpclient.WithHeader("Authorization", "token-abc"))
	err := client.GetJSON(context.Background(), "/", nil, nil)
	require.NoError(t, err)
}

func TestClient_EmptyBodyNeedsTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL)
	assert.NoError(t, client.GetJSON(context.Background(), "/", nil, nil))
	assert.ErrorIs(t, client.GetJSON(context.Background(), "/", nil, &echoPayload{}), httpclient.ErrEmptyBody)
}
