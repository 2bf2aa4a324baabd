package services

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validators"
	"storefront/pkg/apperror"
)

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Name    *string      `json:"name"`
	Email   *string      `json:"email"`
	Address *string      `json:"address"`
	Phone   *string      `json:"phone"`
	Role    *models.Role `json:"role"`
}

// UserService handles user administration.
type UserService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list users")
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "user", id)
	}
	return user, nil
}

// UpdateUser applies in to the stored user. Passwords are not changed here.
func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "user", id)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.New(apperror.CodeInvalidFormat, "name must not be blank").WithDetail("field", "name")
		}
		user.Name = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if !validators.IsValidEmail(email) {
			return nil, apperror.New(apperror.CodeInvalidFormat, "invalid email address").WithDetail("field", "email")
		}
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Role != nil {
		if !in.Role.IsValid() {
			return nil, apperror.New(apperror.CodeInvalidFormat, "role must be 0 (admin) or 1 (user)").WithDetail("field", "role")
		}
		user.Role = *in.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, writeError(err, "user", "update")
	}
	return user, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return apperror.Newf(apperror.CodeDuplicate, "email %s is already registered", email).WithDetail("field", "email")
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return apperror.Internal(err, "failed to check email")
	}
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "user", id)
	}
	return nil
}
