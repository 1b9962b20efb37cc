package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/housekeeper/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	displayName, err := getSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if _, err := a.auth.Register(ctx, email, string(password), displayName); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered, you can now login")
	return nil
}

// Login signs in online, then starts notifications and an immediate sync.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	s, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.setSession(s)
	a.setMode(ctx, ModeOnline)
	a.registerDevice(ctx, s.UserID)
	a.startNotifications(ctx)
	a.scheduler.Trigger()

	fmt.Fprintf(a.out, "Signed in as %s\n", s.Email)
	return nil
}

// registerDevice stores this installation's id as the user's push token.
func (a *App) registerDevice(ctx context.Context, userID string) {
	deviceID, err := a.repos.Metadata.GetString(ctx, metadata.KeyDeviceID)
	if err != nil {
		a.logger.Warn(ctx, "failed to read device id", "error", err)
		return
	}
	if deviceID == "" {
		deviceID = uuid.NewString()
		if err := a.repos.Metadata.SetString(ctx, metadata.KeyDeviceID, deviceID); err != nil {
			a.logger.Warn(ctx, "failed to save device id", "error", err)
			return
		}
	}
	if err := a.users.SetPushToken(ctx, userID, deviceID); err != nil {
		a.logger.Warn(ctx, "failed to register device", "error", err)
	}
}

// Logout forgets the session. Cached data and queued changes stay.
func (a *App) Logout(ctx context.Context) error {
	a.stopNotifications()
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.setSession(nil)
	fmt.Fprintln(a.out, "Signed out")
	return nil
}
