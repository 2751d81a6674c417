package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinichq/clinic-api/internal/model"
)

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			username, full_name, email, password_hash, role, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	err := r.GetDB().QueryRowxContext(ctx, query,
		user.Username,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT * FROM users WHERE id = $1`
	var user model.User
	if err := r.GetDB().GetContext(ctx, &user, query, id); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM users WHERE username = $1`
	var user model.User
	if err := r.GetDB().GetContext(ctx, &user, query, username); err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET full_name = $1, email = $2, password_hash = $3, role = $4,
		    status = $5, updated_at = $6
		WHERE id = $7
	`
	user.UpdatedAt = time.Now()

	result, err := r.GetDB().ExecContext(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %d not found", user.ID)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT * FROM users ORDER BY full_name ASC`
	var users []*model.User
	if err := r.GetDB().SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role int) ([]*model.User, error) {
	query := `SELECT * FROM users WHERE role = $1 ORDER BY full_name ASC`
	var users []*model.User
	if err := r.GetDB().SelectContext(ctx, &users, query, role); err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.GetDB().GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role int) (int64, error) {
	var count int64
	if err := r.GetDB().GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role = $1`, role); err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}

func (r *userRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	if err := r.GetDB().GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("failed to count users by status: %w", err)
	}
	return count, nil
}
