package services

import (
	"context"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/server/models"
)

// UserAPI is the REST backend of platform user accounts.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]models.UserAccount, error)
	GetUser(ctx context.Context, id string) (*models.UserAccount, error)
	UpdateUserRole(ctx context.Context, id, role string) (*models.UserAccount, error)
	SetUserActive(ctx context.Context, id string, active bool) (*models.UserAccount, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserManagementService administers platform accounts. Operators cannot
// demote, deactivate or delete their own account.
type UserManagementService struct {
	api       UserAPI
	validator Validator
}

func NewUserManagementService(api UserAPI, v Validator) *UserManagementService {
	return &UserManagementService{api: api, validator: v}
}

func (s *UserManagementService) List(ctx context.Context) ([]models.UserAccount, error) {
	return s.api.ListUsers(ctx)
}

func (s *UserManagementService) Get(ctx context.Context, id string) (*models.UserAccount, error) {
	return s.api.GetUser(ctx, id)
}

func (s *UserManagementService) UpdateRole(ctx context.Context, id string, in models.RoleInput) (*models.UserAccount, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	if id == actorID(ctx) && in.Role != "admin" {
		return nil, common.ErrConflict
	}
	return s.api.UpdateUserRole(ctx, id, in.Role)
}

func (s *UserManagementService) SetActive(ctx context.Context, id string, active bool) (*models.UserAccount, error) {
	if id == actorID(ctx) && !active {
		return nil, common.ErrConflict
	}
	return s.api.SetUserActive(ctx, id, active)
}

func (s *UserManagementService) Delete(ctx context.Context, id string) error {
	if id == actorID(ctx) {
		return common.ErrConflict
	}
	return s.api.DeleteUser(ctx, id)
}
