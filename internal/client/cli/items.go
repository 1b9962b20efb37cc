package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/housekeeper/internal/client/services"
	"github.com/dmitrijs2005/housekeeper/internal/common"
)

// shortIDLen is how much of an id listings show. Commands accept any unique
// prefix.
const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// resolveID finds the single id in ids starting with prefix.
func resolveID(prefix string, ids []string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", common.ErrorValidation)
	}
	var match string
	for _, id := range ids {
		if !strings.HasPrefix(strings.ToLower(id), prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: id %q is ambiguous", common.ErrorValidation, prefix)
		}
		match = id
	}
	if match == "" {
		return "", fmt.Errorf("%q: %w", prefix, common.ErrorNotFound)
	}
	return match, nil
}

// reportSaved turns the queued-for-sync outcome into a message instead of
// an error.
func (a *App) reportSaved(what string, err error) error {
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "%s saved\n", what)
		return nil
	case errors.Is(err, services.ErrQueuedForSync):
		fmt.Fprintf(a.out, "%s saved offline, will sync later\n", what)
		a.logger.Debug(context.Background(), "write queued", "cause", err)
		return nil
	default:
		return err
	}
}

// refreshIfOnline pulls remote state before a listing. Offline it is a no-op.
func (a *App) refreshIfOnline(ctx context.Context, refresh func(context.Context, string) error, householdID string) {
	if a.Mode() != ModeOnline {
		return
	}
	if err := refresh(ctx, householdID); err != nil {
		a.logger.Debug(ctx, "refresh failed, showing cached data", "error", err)
	}
}
