package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/housekeeper/internal/client/client"
	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/users"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
)

// UserService manages profiles. Profile writes need the remote: nothing is
// cached locally when the remote write fails.
type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetPushToken(ctx context.Context, userID, token string) error
	SetHousehold(ctx context.Context, userID, householdID string) error
}

type userService struct {
	remote client.DocumentStore
	users  users.Repository
	logger logging.Logger
}

func NewUserService(remote client.DocumentStore, repos *client.Repositories, logger logging.Logger) UserService {
	return &userService{remote: remote, users: repos.Users, logger: logger.With("module", "users")}
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.Get(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	return s.fetch(ctx, id)
}

func (s *userService) fetch(ctx context.Context, id string) (*models.User, error) {
	doc, err := s.remote.Get(ctx, models.UserPath(id))
	if errors.Is(err, client.ErrNotFound) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	u, err := models.UserFromDocument(doc)
	if err != nil {
		return nil, err
	}
	if err := s.users.Upsert(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to cache user: %w", err)
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		return fmt.Errorf("%w: user id is required", common.ErrorValidation)
	}
	if err := s.remote.Set(ctx, models.UserPath(u.ID), u.Document()); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return s.users.Upsert(ctx, u)
}

func (s *userService) SetPushToken(ctx context.Context, userID, token string) error {
	return s.updateField(ctx, userID, "fcmToken", token, func(u *models.User) { u.PushToken = token })
}

func (s *userService) SetHousehold(ctx context.Context, userID, householdID string) error {
	return s.updateField(ctx, userID, "householdId", householdID, func(u *models.User) { u.HouseholdID = householdID })
}

func (s *userService) updateField(ctx context.Context, userID, field string, value any, apply func(*models.User)) error {
	if err := s.remote.UpdateFields(ctx, models.UserPath(userID), map[string]any{field: value}); err != nil {
		return fmt.Errorf("failed to update %s: %w", field, err)
	}

	u, err := s.users.Get(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		// Not cached yet: the remote copy already has the new value.
		_, err = s.fetch(ctx, userID)
		return err
	}
	if err != nil {
		return err
	}
	apply(u)
	return s.users.Upsert(ctx, u)
}
