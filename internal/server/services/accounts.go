// Package services contains the server business logic: accounts and tokens,
// authorized access to the document store with write triggers, and avatar
// upload URLs.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
	"github.com/dmitrijs2005/housekeeper/internal/server/auth"
	"github.com/dmitrijs2005/housekeeper/internal/server/config"
	"github.com/dmitrijs2005/housekeeper/internal/server/models"
	"github.com/dmitrijs2005/housekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// AccountService registers users and issues access tokens.
type AccountService struct {
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
	logger                      logging.Logger
	now                         func() time.Time
}

func NewAccountService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *AccountService {
	return &AccountService{
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  bcrypt.DefaultCost,
		logger:                      logger.With("module", "accounts"),
		now:                         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and its users/{id} profile document in one
// transaction and returns the new user id.
func (s *AccountService) Register(ctx context.Context, email, password, displayName string) (string, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = email[:strings.Index(email, "@")]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{ID: uuid.NewString(), Email: email, PasswordHash: hash}
	profile := models.Document{
		"id":             account.ID,
		"email":          email,
		"displayName":    displayName,
		"profilePicture": "",
		"phone":          "",
		"birthdate":      "",
		"householdId":    "",
		"fcmToken":       "",
		"createdAt":      s.now().UnixMilli(),
	}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.Repositories) error {
		if _, err := tx.Accounts.Create(ctx, account); err != nil {
			return err
		}
		return tx.Documents.Set(ctx, &models.StoredDocument{
			Path:       "users/" + account.ID,
			Collection: "users",
			Data:       profile,
		})
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", err
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user", account.ID)
	return account.ID, nil
}

// Login checks the credentials and returns the user id with a fresh access
// token. Unknown emails and wrong passwords both yield ErrorUnauthorized.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, string, error) {
	account, err := s.repomanager.Accounts().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", "", common.ErrorUnauthorized
		}
		return "", "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return "", "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return account.ID, token, nil
}

// VerifyToken returns the user id carried by a valid access token.
func (s *AccountService) VerifyToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
