package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLineNotifier_Send(t *testing.T) {
	var got linePushRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, linePushPath, r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	notifier := NewLineNotifier(server.URL, "token-123", time.Second, newTestLogger())
	err := notifier.Send(context.Background(), "U1234", "สวัสดี")

	require.NoError(t, err)
	assert.Equal(t, "U1234", got.To)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "text", got.Messages[0].Type)
	assert.Equal(t, "สวัสดี", got.Messages[0].Text)
}

func TestLineNotifier_SendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"The request body has 1 error(s)"}`))
	}))
	defer server.Close()

	notifier := NewLineNotifier(server.URL, "token-123", time.Second, newTestLogger())
	err := notifier.Send(context.Background(), "U1234", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "The request body has 1 error(s)")
}

func TestLineNotifier_Disabled(t *testing.T) {
	notifier := NewLineNotifier("http://127.0.0.1:1", "", time.Second, newTestLogger())

	err := notifier.Send(context.Background(), "U1234", "hello")

	assert.ErrorIs(t, err, ErrNotifierDisabled)
}
