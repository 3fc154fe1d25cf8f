package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	role := Role(req.Role)
	if role == "" {
		role = RoleWorker
	}
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s (allowed: super_admin, admin, worker)", req.Role)
	}

	u := &User{
		ID:       uuid.New(),
		Username: req.Username,
		FullName: req.FullName,
		Role:     role,
		IsActive: true,
	}

	if role != RoleSuperAdmin {
		if req.TenantID == "" {
			return nil, fmt.Errorf("tenant_id is required for %s accounts", role)
		}
		tid, err := uuid.Parse(req.TenantID)
		if err != nil {
			return nil, fmt.Errorf("invalid tenant_id: %w", err)
		}
		u.TenantID = &tid
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = string(hashedPassword)

	if err := s.repo.CreateUser(ctx, u); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, fmt.Errorf("username %s is already taken", req.Username)
		}
		return nil, err
	}

	return u, nil
}

func (s *service) GetUser(ctx context.Context, caller middleware.Identity, id string) (*User, error) {
	return s.getScoped(ctx, caller, id)
}

func (s *service) ListTenantUsers(ctx context.Context, tenantID uuid.UUID) ([]*User, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *service) ChangeRole(ctx context.Context, caller middleware.Identity, id string, req UpdateRoleRequest) (*User, error) {
	role := Role(req.Role)
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s", req.Role)
	}
	if role == RoleSuperAdmin && caller.Role != string(RoleSuperAdmin) {
		return nil, fmt.Errorf("only a super_admin may grant super_admin")
	}
	if _, err := s.getScoped(ctx, caller, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) Deactivate(ctx context.Context, caller middleware.Identity, id string) error {
	if _, err := s.getScoped(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.SetActive(ctx, id, false)
}

// getScoped fetches the account only when the caller may touch it. A
// cross-tenant id reads the same as a missing one so account existence
// never leaks across tenants.
func (s *service) getScoped(ctx context.Context, caller middleware.Identity, id string) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if caller.Role != string(RoleSuperAdmin) {
		if caller.TenantID == nil || u.TenantID == nil || *u.TenantID != *caller.TenantID {
			return nil, fmt.Errorf("user not found")
		}
	}
	return u, nil
}
