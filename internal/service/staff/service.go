package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
	"github.com/clinichq/clinic-api/pkg/security"
)

// defaultPassword seeds new and reset accounts. Staff are told to change it
// on first login; the clinic has no self-service signup.
const defaultPassword = "default123"

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher) *Service {
	return &Service{users: users, hasher: hasher}
}

func (s *Service) List(ctx context.Context) ([]*model.StaffView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	views := make([]*model.StaffView, 0, len(users))
	for _, user := range users {
		views = append(views, model.NewStaffView(user))
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.StaffView, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.NewStaffView(user), nil
}

// Create registers a staff account. The email doubles as the username and
// the account starts Active with the default password.
func (s *Service) Create(ctx context.Context, req *model.CreateStaffRequest) (*model.StaffView, error) {
	if existing, err := s.users.GetByUsername(ctx, req.Email); err == nil && existing != nil {
		return nil, apperrors.Validation(fmt.Sprintf("username %s is already taken", req.Email))
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}

	hash, err := s.hasher.Hash(defaultPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash default password: %w", err)
	}

	user := &model.User{
		Username:     req.Email,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.RoleID,
		Status:       model.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	return model.NewStaffView(user), nil
}

// Update applies the non-nil fields only; absent fields keep their value.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateStaffRequest) (*model.StaffView, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil && *req.FullName != "" {
		user.FullName = *req.FullName
	}
	if req.RoleID != nil {
		user.Role = *req.RoleID
	}
	if req.Status != nil && *req.Status != "" {
		user.Status = *req.Status
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update staff: %w", err)
	}
	return model.NewStaffView(user), nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*model.StaffView, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update staff status: %w", err)
	}
	return model.NewStaffView(user), nil
}

// ResetPassword puts the account back on the default password.
func (s *Service) ResetPassword(ctx context.Context, id int64) error {
	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(defaultPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

func (s *Service) get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("staff %d not found", id)
		}
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	return user, nil
}
