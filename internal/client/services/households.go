package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/client"
	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/households"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
	"github.com/google/uuid"
)

const maxInviteCodeAttempts = 100

// HouseholdService creates and joins households. Like profiles, household
// writes require the remote.
type HouseholdService interface {
	Create(ctx context.Context, name, creatorID string) (*models.Household, error)
	Join(ctx context.Context, inviteCode, userID string) (*models.Household, error)
	GetByID(ctx context.Context, id string) (*models.Household, error)
	GenerateInviteCode(ctx context.Context) (string, error)
}

type householdService struct {
	remote     client.DocumentStore
	households households.Repository
	users      UserService
	logger     logging.Logger
	now        func() time.Time
	newCode    func() (string, error)
}

func NewHouseholdService(remote client.DocumentStore, repos *client.Repositories, users UserService, logger logging.Logger) HouseholdService {
	return &householdService{
		remote:     remote,
		households: repos.Households,
		users:      users,
		logger:     logger.With("module", "households"),
		now:        defaultClock,
		newCode: func() (string, error) {
			return common.RandomCode(common.InviteCodeLength, common.InviteCodeAlphabet)
		},
	}
}

// GenerateInviteCode returns a code not used by any cached household.
func (s *householdService) GenerateInviteCode(ctx context.Context) (string, error) {
	for range maxInviteCodeAttempts {
		code, err := s.newCode()
		if err != nil {
			return "", err
		}
		exists, err := s.households.InviteCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrInviteCodes
}

func (s *householdService) Create(ctx context.Context, name, creatorID string) (*models.Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: household name is required", common.ErrorValidation)
	}
	if creatorID == "" {
		return nil, ErrNotSignedIn
	}

	code, err := s.GenerateInviteCode(ctx)
	if err != nil {
		return nil, err
	}
	h := &models.Household{
		ID:         uuid.NewString(),
		Name:       name,
		InviteCode: code,
		CreatedBy:  creatorID,
		MemberIDs:  []string{creatorID},
		CreatedAt:  s.now(),
	}

	if err := s.remote.Set(ctx, models.HouseholdPath(h.ID), h.Document()); err != nil {
		return nil, fmt.Errorf("failed to create household: %w", err)
	}
	if err := s.households.Upsert(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to cache household: %w", err)
	}
	if err := s.users.SetHousehold(ctx, creatorID, h.ID); err != nil {
		return h, fmt.Errorf("household created but profile not updated: %w", err)
	}

	s.logger.Info(ctx, "household created", "household", h.ID)
	return h, nil
}

func (s *householdService) Join(ctx context.Context, inviteCode, userID string) (*models.Household, error) {
	if userID == "" {
		return nil, ErrNotSignedIn
	}
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))

	docs, err := s.remote.QueryByField(ctx, models.HouseholdsCollection, "inviteCode", inviteCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: invalid invite code", common.ErrorNotFound)
	}
	h, err := models.HouseholdFromDocument(docs[0])
	if err != nil {
		return nil, err
	}

	if h.AddMember(userID) {
		members := make([]any, len(h.MemberIDs))
		for i, id := range h.MemberIDs {
			members[i] = id
		}
		if err := s.remote.UpdateFields(ctx, models.HouseholdPath(h.ID), map[string]any{"memberIds": members}); err != nil {
			return nil, fmt.Errorf("failed to join household: %w", err)
		}
	}

	if err := s.households.Upsert(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to cache household: %w", err)
	}
	if err := s.users.SetHousehold(ctx, userID, h.ID); err != nil {
		return h, fmt.Errorf("joined household but profile not updated: %w", err)
	}

	s.logger.Info(ctx, "joined household", "household", h.ID)
	return h, nil
}

func (s *householdService) GetByID(ctx context.Context, id string) (*models.Household, error) {
	h, err := s.households.Get(ctx, id)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	doc, err := s.remote.Get(ctx, models.HouseholdPath(id))
	if errors.Is(err, client.ErrNotFound) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch household: %w", err)
	}
	h, err = models.HouseholdFromDocument(doc)
	if err != nil {
		return nil, err
	}
	if err := s.households.Upsert(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to cache household: %w", err)
	}
	return h, nil
}
