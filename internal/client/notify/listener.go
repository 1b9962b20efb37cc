// Package notify keeps a websocket open to the server's notification
// endpoint and hands every received Notification to a callback.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	ws "github.com/coder/websocket"

	"github.com/dmitrijs2005/housekeeper/internal/logging"
	"github.com/dmitrijs2005/housekeeper/internal/shared"
)

// Handler receives notifications in arrival order.
type Handler func(ctx context.Context, n shared.Notification)

type Listener struct {
	url        string
	logger     logging.Logger
	maxBackoff time.Duration
}

func NewListener(endpoint string, logger logging.Logger) *Listener {
	return &Listener{
		url:        endpoint,
		logger:     logger.With("module", "notify"),
		maxBackoff: time.Minute,
	}
}

func (l *Listener) endpoint(token string) (string, error) {
	u, err := url.Parse(l.url)
	if err != nil {
		return "", fmt.Errorf("notification url: %w", err)
	}
	q := u.Query()
	q.Set("access_token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Listen reconnects with exponential backoff until ctx is done.
func (l *Listener) Listen(ctx context.Context, token string, h Handler) error {
	target, err := l.endpoint(token)
	if err != nil {
		return err
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = time.Second
	exp.MaxInterval = l.maxBackoff
	exp.MaxElapsedTime = 0
	exp.Reset()

	for {
		connected, err := l.session(ctx, target, h)
		if ctx.Err() != nil {
			return nil
		}
		if connected {
			exp.Reset()
		}
		wait := exp.NextBackOff()
		l.logger.Debug(ctx, "notification stream closed", "error", err, "retry_in", wait)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

// session runs one connection. connected reports whether the dial succeeded.
func (l *Listener) session(ctx context.Context, target string, h Handler) (connected bool, err error) {
	conn, _, err := ws.Dial(ctx, target, nil)
	if err != nil {
		return false, err
	}
	defer conn.Close(ws.StatusNormalClosure, "")
	l.logger.Debug(ctx, "notification stream open")

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return true, nil
			}
			return true, err
		}
		if typ != ws.MessageText {
			continue
		}
		n, err := shared.ParseNotification(data)
		if err != nil {
			l.logger.Warn(ctx, "bad notification payload", "error", err)
			continue
		}
		h(ctx, n)
	}
}
