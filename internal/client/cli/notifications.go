package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/housekeeper/internal/shared"
)

// startNotifications replaces any running listener with one for the current
// session token.
func (a *App) startNotifications(ctx context.Context) {
	a.stopNotifications()

	token, err := a.accessToken(ctx)
	if err != nil || token == "" {
		return
	}

	nctx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	a.stopNotify = cancel
	a.mu.Unlock()

	go func() {
		if err := a.listener.Listen(nctx, token, a.onNotification); err != nil {
			a.logger.Warn(nctx, "notifications disabled", "error", err)
		}
	}()
}

func (a *App) stopNotifications() {
	a.mu.Lock()
	cancel := a.stopNotify
	a.stopNotify = nil
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// onNotification prints the message and pulls the household so the cache
// reflects the change that caused it.
func (a *App) onNotification(ctx context.Context, n shared.Notification) {
	fmt.Fprintf(a.out, "\n[%s] %s: %s\n", n.Type, n.Title, n.Message)

	if n.HouseholdID == "" {
		return
	}
	switch n.Type {
	case shared.EventNewNote:
		if err := a.notes.Refresh(ctx, n.HouseholdID); err != nil {
			a.logger.Debug(ctx, "refresh after notification failed", "error", err)
		}
	case shared.EventChoreAssigned, shared.EventChoreCompleted:
		if err := a.chores.Refresh(ctx, n.HouseholdID); err != nil {
			a.logger.Debug(ctx, "refresh after notification failed", "error", err)
		}
	}
}
