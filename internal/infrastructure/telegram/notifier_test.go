package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSummary(t *testing.T) {
	t.Parallel()

	var got struct {
		path, chatID, text, mode string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		got.path = r.URL.Path
		got.chatID = r.PostForm.Get("chat_id")
		got.text = r.PostForm.Get("text")
		got.mode = r.PostForm.Get("parse_mode")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewNotifier("token123", "-100").WithBaseURL(srv.URL + "/")
	require.NoError(t, n.PublishSummary(context.Background(), "*Content pipeline succeeded*"))

	assert.Equal(t, "/bottoken123/sendMessage", got.path)
	assert.Equal(t, "-100", got.chatID)
	assert.Equal(t, "*Content pipeline succeeded*", got.text)
	assert.Equal(t, "Markdown", got.mode)
}

func TestPublishSummaryErrors(t *testing.T) {
	t.Parallel()

	err := NewNotifier("", "").PublishSummary(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "misconfigured")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	err = NewNotifier("token", "chat").WithBaseURL(srv.URL).PublishSummary(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short"))
	long := strings.Repeat("é", maxMessageRunes+10)
	assert.Equal(t, maxMessageRunes, utf8.RuneCountInString(truncate(long)))
}
