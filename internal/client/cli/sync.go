package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/syncworker"
)

// Sync pushes queued changes now and pulls the household.
func (a *App) Sync(ctx context.Context) error {
	report, err := a.worker.RunSync(ctx)
	if err != nil {
		a.setMode(ctx, ModeOffline)
		return fmt.Errorf("sync interrupted, queued changes kept: %w", err)
	}
	a.setMode(ctx, ModeOnline)
	a.printReport(report)

	if u, err := a.household(ctx); err == nil {
		if err := a.chores.Refresh(ctx, u.HouseholdID); err != nil {
			return err
		}
		if err := a.notes.Refresh(ctx, u.HouseholdID); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) printReport(r syncworker.Report) {
	if r.Empty() {
		fmt.Fprintln(a.out, "Everything is up to date")
		return
	}
	fmt.Fprintf(a.out, "Pushed %d chore(s), %d note(s), %d deletion(s)\n", r.ChoresPushed, r.NotesPushed, r.DeletionsApplied)
	if r.Skipped > 0 {
		fmt.Fprintf(a.out, "%d item(s) wait for a local edit after being refused\n", r.Skipped)
	}
	for _, rej := range r.Rejected {
		fmt.Fprintf(a.out, "Server refused %s %s: %s\n", rej.Kind, shortID(rej.ItemID), rej.Reason)
	}
}

func (a *App) Status(ctx context.Context) error {
	st, err := a.worker.Status(ctx)
	if err != nil {
		return err
	}
	last := "never"
	if !st.LastSuccess.IsZero() {
		last = st.LastSuccess.Local().Format(time.DateTime)
	}
	fmt.Fprintf(a.out, "mode: %s\nunsynced chores: %d\nunsynced notes: %d\npending deletions: %d\nrefused by server: %d\nlast sync: %s\n",
		a.Mode(), st.UnsyncedChores, st.UnsyncedNotes, st.PendingDeletions, st.Rejections, last)
	return nil
}

// reportSyncResults logs scheduled runs. Refusals are surfaced to the user.
func (a *App) reportSyncResults(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-a.scheduler.Results():
			if r.Err != nil {
				a.setMode(ctx, ModeOffline)
				continue
			}
			a.setMode(ctx, ModeOnline)
			for _, rej := range r.Report.Rejected {
				fmt.Fprintf(a.out, "\nServer refused %s %s: %s\n", rej.Kind, shortID(rej.ItemID), rej.Reason)
			}
		}
	}
}
