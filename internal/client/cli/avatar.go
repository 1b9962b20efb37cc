package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/housekeeper/internal/client/services"
	"github.com/dmitrijs2005/housekeeper/internal/filex"
	"github.com/dmitrijs2005/housekeeper/internal/netx"
)

// uploadFn is a test seam for netx.UploadToS3PresignedURL.
var uploadFn = netx.UploadToS3PresignedURL

// Avatar uploads a profile picture and stores its key on the profile.
// Needs the server.
func (a *App) Avatar(ctx context.Context, path string) error {
	s := a.currentSession()
	if s == nil {
		return services.ErrNotSignedIn
	}

	data, err := filex.ReadLimited(path, filex.MaxAvatarSize)
	if err != nil {
		return err
	}

	key, url, err := a.remote.AvatarUploadURL(ctx)
	if err != nil {
		return err
	}
	if err := uploadFn(ctx, url, data); err != nil {
		return err
	}

	u, err := a.users.GetByID(ctx, s.UserID)
	if err != nil {
		return err
	}
	u.ProfilePicture = key
	if err := a.users.Update(ctx, u); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Profile picture updated")
	return nil
}
