package service

import (
	"context"
	"fmt"

	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
	"github.com/smklab/lms-backend/internal/response"
)

// UserService handles staff user (admin and teacher) business logic.
type UserService struct {
	userRepo *repository.UserRepository
	roleRepo *repository.RoleRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, roleRepo *repository.RoleRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, roleRepo: roleRepo, auth: auth}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email, used during staff login.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// GetPermissions returns the permission codes for a role.
func (s *UserService) GetPermissions(ctx context.Context, roleID int) ([]string, error) {
	return s.roleRepo.GetPermissionsByRoleID(ctx, roleID)
}

// ListUsers retrieves users with pagination and an optional role filter.
func (s *UserService) ListUsers(ctx context.Context, roleID *int, page, perPage int) ([]model.User, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	users, total, err := s.userRepo.ListPaginated(ctx, roleID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []model.User{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return users, pagination, nil
}

// Create inserts a new staff user with a hashed password.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		NIP:          req.NIP,
		PasswordHash: hash,
		RoleID:       req.RoleID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

// Update modifies a user's details, changing the password only when one
// is given.
func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.Name = req.Name
	user.NIP = req.NIP
	user.RoleID = req.RoleID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if err := s.userRepo.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetByID(ctx, id)
}

// Delete removes a user by ID.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.userRepo.Delete(ctx, id)
}

// ListRoles returns every role with its permission set.
func (s *UserService) ListRoles(ctx context.Context) ([]model.RoleWithPermissions, error) {
	return s.roleRepo.ListRolesWithPermissions(ctx)
}

// CreateRole creates a role and assigns its permissions.
func (s *UserService) CreateRole(ctx context.Context, req *model.CreateRoleRequest) (*model.RoleWithPermissions, error) {
	roleID, err := s.roleRepo.CreateRole(ctx, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if len(req.Permissions) > 0 {
		if err := s.roleRepo.AssignPermissionsToRole(ctx, roleID, req.Permissions); err != nil {
			return nil, err
		}
	}
	return s.roleRepo.GetRoleByID(ctx, roleID)
}

// UpdateRole rewrites a role and its permission set.
func (s *UserService) UpdateRole(ctx context.Context, id int, req *model.CreateRoleRequest) (*model.RoleWithPermissions, error) {
	if err := s.roleRepo.UpdateRole(ctx, id, req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.roleRepo.DeleteAllPermissionsFromRole(ctx, id); err != nil {
		return nil, err
	}
	if len(req.Permissions) > 0 {
		if err := s.roleRepo.AssignPermissionsToRole(ctx, id, req.Permissions); err != nil {
			return nil, err
		}
	}
	return s.roleRepo.GetRoleByID(ctx, id)
}

// DeleteRole removes a role.
func (s *UserService) DeleteRole(ctx context.Context, id int) error {
	return s.roleRepo.DeleteRole(ctx, id)
}
