package describe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testImage = EncodedImage{MediaType: "image/png", Data: []byte("png-bytes")}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 0,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(b)
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts.APIKey = "sk-test"
	opts.BaseURL = srv.URL + "/v1/"
	return NewClient(opts)
}

func TestDescribe_Success(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completion("  red sports car \n"))
	}, Options{Model: "vision-x"})

	got, err := c.Describe(context.Background(), testImage)
	require.NoError(t, err)
	assert.Equal(t, "red sports car", got)

	assert.Equal(t, "vision-x", body["model"])
	raw, _ := json.Marshal(body["messages"])
	assert.Contains(t, string(raw), testImage.DataURL())
	assert.Contains(t, string(raw), "filename")
}

func TestDescribe_BlankTextIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completion("   "))
	}, Options{})

	got, err := c.Describe(context.Background(), testImage)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDescribe_NoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":0,"model":"m","choices":[]}`)
	}, Options{})

	_, err := c.Describe(context.Background(), testImage)
	var de *DescribeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindEmpty, de.Kind)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestDescribe_StatusErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
	}, Options{})

	_, err := c.Describe(context.Background(), testImage)
	var de *DescribeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindStatus, de.Kind)
	assert.Equal(t, http.StatusInternalServerError, de.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDescribe_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, Options{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := c.Describe(context.Background(), testImage)
	var de *DescribeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindTimeout, de.Kind)
	assert.Less(t, time.Since(start), time.Second)
}

func TestDescribe_Transport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := NewClient(Options{APIKey: "sk-test", BaseURL: url + "/v1/"})

	_, err := c.Describe(context.Background(), testImage)
	var de *DescribeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindTransport, de.Kind)
}

func TestDescribe_PacedCallRespectsCancel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completion("cat"))
	}, Options{RequestsPerSecond: 0.01})

	_, err := c.Describe(context.Background(), testImage)
	require.NoError(t, err)

	// The single token is spent; the next wait would be ~100s.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Describe(ctx, testImage)
	var de *DescribeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindCanceled, de.Kind)
}

func TestCheckModel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gpt-4o-mini") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"message":"no such model","type":"invalid_request_error"}}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"gpt-4o-mini","object":"model","created":0,"owned_by":"openai"}`)
	}, Options{})
	require.NoError(t, c.CheckModel(context.Background()))

	bad := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}, Options{Model: "nope"})
	err := bad.CheckModel(context.Background())
	var de *DescribeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, http.StatusUnauthorized, de.StatusCode)
}
