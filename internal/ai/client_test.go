package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient("test-key", "test-model", server.URL), server
}

func TestGenerateSuccess(t *testing.T) {
	var gotReq chatRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"1. Titolo\nTesto."}}]}`))
	})
	defer server.Close()

	out, err := client.Generate(context.Background(), "appunti grezzi")
	require.NoError(t, err)
	assert.Equal(t, "1. Titolo\nTesto.", out)

	// One system message pinning the structure, one user message carrying the note.
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "appunti grezzi")
}

func TestGenerateRateLimited(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		// Body deliberately looks like a successful completion: a 429 must
		// win over any parseable payload.
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"choices":[{"message":{"content":"ignorami"}}]}`))
	})
	defer server.Close()

	_, err := client.Generate(context.Background(), "testo")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestGenerateQuotaExhausted(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})
	defer server.Close()

	_, err := client.Generate(context.Background(), "testo")
	assert.ErrorIs(t, err, ErrQuotaExhausted)
}

func TestGenerateServerError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	})
	defer server.Close()

	_, err := client.Generate(context.Background(), "testo")
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrQuotaExhausted)
}

func TestGenerateEmptyCompletion(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})
	defer server.Close()

	_, err := client.Generate(context.Background(), "testo")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateMalformedBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})
	defer server.Close()

	_, err := client.Generate(context.Background(), "testo")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}
