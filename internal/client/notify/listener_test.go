package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	ws "github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/housekeeper/internal/logging"
	"github.com/dmitrijs2005/housekeeper/internal/shared"
)

func wsURL(s *httptest.Server) string {
	return "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
}

func TestListener_DeliversNotifications(t *testing.T) {
	var gotToken atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken.Store(r.URL.Query().Get("access_token"))
		conn, err := ws.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(ws.StatusNormalClosure, "")

		data, _ := shared.Notification{Type: shared.EventNewNote, Recipient: "u1", Title: "hello"}.Marshal()
		_ = conn.Write(r.Context(), ws.MessageText, []byte("not json"))
		_ = conn.Write(r.Context(), ws.MessageText, data)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan shared.Notification, 1)
	l := NewListener(wsURL(srv), logging.Discard())
	done := make(chan error, 1)
	go func() {
		done <- l.Listen(ctx, "tok", func(_ context.Context, n shared.Notification) { got <- n })
	}()

	select {
	case n := <-got:
		assert.Equal(t, shared.EventNewNote, n.Type)
		assert.Equal(t, "hello", n.Title)
	case <-time.After(3 * time.Second):
		t.Fatal("no notification")
	}
	assert.Equal(t, "tok", gotToken.Load())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestListener_ReconnectsAfterClose(t *testing.T) {
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials.Add(1)
		conn, err := ws.Accept(w, r, nil)
		if err != nil {
			return
		}
		conn.Close(ws.StatusGoingAway, "bye")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(wsURL(srv), logging.Discard())
	go func() { _ = l.Listen(ctx, "tok", func(context.Context, shared.Notification) {}) }()

	require.Eventually(t, func() bool { return dials.Load() >= 2 }, 5*time.Second, 20*time.Millisecond)
}

func TestListener_BadURL(t *testing.T) {
	l := NewListener("://bad", logging.Discard())
	err := l.Listen(context.Background(), "tok", func(context.Context, shared.Notification) {})
	require.Error(t, err)
}
