package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/housekeeper/internal/client/services"
)

const householdUsage = "Usage: household create | household join <code> | household show"

func (a *App) Household(ctx context.Context, args []string) error {
	s := a.currentSession()
	if s == nil {
		return services.ErrNotSignedIn
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, householdUsage)
		return nil
	}

	switch args[0] {
	case "create":
		name, err := getSimpleText(a.reader, "Household name", a.out)
		if err != nil {
			return err
		}
		h, err := a.households.Create(ctx, name, s.UserID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created %q, invite code %s\n", h.Name, h.InviteCode)

	case "join":
		if len(args) < 2 {
			fmt.Fprintln(a.out, householdUsage)
			return nil
		}
		h, err := a.households.Join(ctx, args[1], s.UserID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Joined %q\n", h.Name)
		a.scheduler.Trigger()

	case "show":
		u, err := a.household(ctx)
		if err != nil {
			if errors.Is(err, services.ErrNoHousehold) {
				fmt.Fprintln(a.out, "You are not in a household yet")
				return nil
			}
			return err
		}
		h, err := a.households.GetByID(ctx, u.HouseholdID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s\n  invite code: %s\n  members: %s\n", h.Name, h.InviteCode, strings.Join(h.MemberIDs, ", "))

	default:
		fmt.Fprintln(a.out, householdUsage)
	}
	return nil
}
