package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
)

func (a *App) Notes(ctx context.Context) error {
	u, err := a.household(ctx)
	if err != nil {
		return err
	}
	a.refreshIfOnline(ctx, a.notes.Refresh, u.HouseholdID)

	list, err := a.notes.ListByHousehold(ctx, u.HouseholdID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No notes")
		return nil
	}
	for _, n := range list {
		mark := ""
		if !n.Synced {
			mark = " *"
		}
		fmt.Fprintf(a.out, "%s  %s  (%s)%s\n", shortID(n.ID), n.Title, n.CreatedAt.Local().Format(time.DateTime), mark)
		if n.Content != "" {
			fmt.Fprintf(a.out, "    %s\n", n.Content)
		}
	}
	return nil
}

func (a *App) AddNote(ctx context.Context) error {
	u, err := a.household(ctx)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Text", a.out)
	if err != nil {
		return err
	}

	n, err := a.notes.Create(ctx, &models.Note{
		HouseholdID: u.HouseholdID,
		Title:       title,
		Content:     content,
		CreatedBy:   u.ID,
	})
	if n == nil {
		return err
	}
	return a.reportSaved("Note "+shortID(n.ID), err)
}

func (a *App) DeleteNote(ctx context.Context, prefix string) error {
	u, err := a.household(ctx)
	if err != nil {
		return err
	}
	list, err := a.notes.ListByHousehold(ctx, u.HouseholdID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(list))
	for _, n := range list {
		ids = append(ids, n.ID)
	}
	id, err := resolveID(prefix, ids)
	if err != nil {
		return err
	}
	return a.reportSaved("Deletion of note "+shortID(id), a.notes.Delete(ctx, id))
}
