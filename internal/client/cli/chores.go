package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/recurrence"
)

func (a *App) Chores(ctx context.Context) error {
	u, err := a.household(ctx)
	if err != nil {
		return err
	}
	a.refreshIfOnline(ctx, a.chores.Refresh, u.HouseholdID)

	list, err := a.chores.ListByHousehold(ctx, u.HouseholdID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No chores")
		return nil
	}

	now := today()
	for _, c := range list {
		fmt.Fprintln(a.out, formatChore(c, u.ID, now))
	}
	return nil
}

// today is the local calendar date as UTC midnight, the form due dates are
// stored in.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatChore(c *models.Chore, me string, now time.Time) string {
	var b strings.Builder
	if c.IsCompleted {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	fmt.Fprintf(&b, "%s  %s  due %s", shortID(c.ID), c.Title, c.DueDate.UTC().Format(time.DateOnly))
	if c.Frequency.Recurring() {
		fmt.Fprintf(&b, " (%s)", c.Frequency)
	}
	if c.AssignedTo == me {
		b.WriteString(" @me")
	}
	if recurrence.IsOverdue(c.DueDate, c.IsCompleted, now) {
		b.WriteString(" OVERDUE")
	}
	if !c.Synced {
		b.WriteString(" *")
	}
	return b.String()
}

var frequencyChoices = []string{
	string(models.FrequencyNone),
	string(models.FrequencyDaily),
	string(models.FrequencyWeekly),
	string(models.FrequencyMonthly),
	string(models.FrequencyYearly),
}

func (a *App) AddChore(ctx context.Context) error {
	u, err := a.household(ctx)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	due, err := GetDate(a.reader, "Due date", today(), a.out)
	if err != nil {
		return err
	}
	assignee, err := getSimpleText(a.reader, "Assign to (user id, empty for yourself)", a.out)
	if err != nil {
		return err
	}
	if assignee == "" {
		assignee = u.ID
	}
	freqText, err := GetChoice(a.reader, "Repeat", frequencyChoices, string(models.FrequencyNone), a.out)
	if err != nil {
		return err
	}
	freq, err := models.ParseFrequency(freqText)
	if err != nil {
		return err
	}

	c, err := a.chores.Create(ctx, &models.Chore{
		HouseholdID: u.HouseholdID,
		Title:       title,
		DueDate:     due,
		AssignedTo:  assignee,
		Frequency:   freq,
		CreatedBy:   u.ID,
	})
	if c == nil {
		return err
	}
	return a.reportSaved("Chore "+shortID(c.ID), err)
}

func (a *App) resolveChore(ctx context.Context, prefix string) (string, error) {
	u, err := a.household(ctx)
	if err != nil {
		return "", err
	}
	list, err := a.chores.ListByHousehold(ctx, u.HouseholdID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	return resolveID(prefix, ids)
}

// Complete marks a chore done. For recurring chores the next instance is
// reported as well.
func (a *App) Complete(ctx context.Context, prefix string) error {
	return a.setCompleted(ctx, prefix, true)
}

func (a *App) Reopen(ctx context.Context, prefix string) error {
	return a.setCompleted(ctx, prefix, false)
}

func (a *App) setCompleted(ctx context.Context, prefix string, completed bool) error {
	id, err := a.resolveChore(ctx, prefix)
	if err != nil {
		return err
	}
	next, err := a.chores.SetCompleted(ctx, id, completed)
	if err := a.reportSaved("Chore "+shortID(id), err); err != nil {
		return err
	}
	if next != nil {
		fmt.Fprintf(a.out, "Next %q due %s (%s)\n", next.Title, next.DueDate.UTC().Format(time.DateOnly), shortID(next.ID))
	}
	return nil
}

func (a *App) DeleteChore(ctx context.Context, prefix string) error {
	id, err := a.resolveChore(ctx, prefix)
	if err != nil {
		return err
	}
	return a.reportSaved("Deletion of chore "+shortID(id), a.chores.Delete(ctx, id))
}
