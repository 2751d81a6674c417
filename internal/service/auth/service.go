package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository"
	pkgauth "github.com/clinichq/clinic-api/pkg/auth"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
	"github.com/clinichq/clinic-api/pkg/security"
)

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	tokens pkgauth.JWTService
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, tokens pkgauth.JWTService) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// Login authenticates a staff member. Unknown usernames and wrong passwords
// return the same message so the response does not leak which accounts
// exist. Inactive accounts are refused outright.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized("invalid username or password")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.Status == model.UserStatusInactive {
		return nil, apperrors.Unauthorized("account is inactive")
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.RoleName())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.LoginResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.RoleName(),
	}, nil
}
