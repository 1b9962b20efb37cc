package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/housekeeper/internal/client/client"
	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
)

// Session is the signed-in user as remembered in the local store.
type Session struct {
	UserID string
	Email  string
}

// AuthService handles sign-up, sign-in and the locally persisted session.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (string, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context) error
	// Restore loads a saved session and hands its token to the client.
	// It returns ErrNotSignedIn when there is none.
	Restore(ctx context.Context) (*Session, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client   client.Client
	metadata metadata.Repository
	users    UserService
	logger   logging.Logger
}

func NewAuthService(c client.Client, repos *client.Repositories, users UserService, logger logging.Logger) AuthService {
	return &authService{client: c, metadata: repos.Metadata, users: users, logger: logger.With("module", "auth")}
}

func (a *authService) Register(ctx context.Context, email, password, displayName string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}
	id, err := a.client.Register(ctx, email, password, displayName)
	if err != nil {
		return "", fmt.Errorf("register error: %w", err)
	}
	return id, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	userID, token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.metadata.SetStrings(ctx, map[string]string{
		metadata.KeyUserID:      userID,
		metadata.KeyEmail:       email,
		metadata.KeyAccessToken: token,
	}); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	// Prime the profile cache; the session is usable without it.
	if _, err := a.users.GetByID(ctx, userID); err != nil {
		a.logger.Warn(ctx, "failed to load profile", "user", userID, "error", err)
	}

	a.logger.Info(ctx, "signed in", "user", userID)
	return &Session{UserID: userID, Email: email}, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetAccessToken("")
	return a.metadata.Delete(ctx, metadata.SessionKeys...)
}

func (a *authService) Restore(ctx context.Context) (*Session, error) {
	userID, err := a.metadata.GetString(ctx, metadata.KeyUserID)
	if err != nil {
		return nil, err
	}
	token, err := a.metadata.GetString(ctx, metadata.KeyAccessToken)
	if err != nil {
		return nil, err
	}
	if userID == "" || token == "" {
		return nil, ErrNotSignedIn
	}
	email, err := a.metadata.GetString(ctx, metadata.KeyEmail)
	if err != nil {
		return nil, err
	}

	a.client.SetAccessToken(token)
	return &Session{UserID: userID, Email: email}, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// CurrentHousehold returns the household of the signed-in user.
func CurrentHousehold(ctx context.Context, users UserService, session *Session) (*models.User, error) {
	if session == nil {
		return nil, ErrNotSignedIn
	}
	u, err := users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if u.HouseholdID == "" {
		return nil, ErrNoHousehold
	}
	return u, nil
}
