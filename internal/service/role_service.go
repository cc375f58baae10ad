package service

import (
	"context"
	"errors"
	"strings"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/repository"
)

type RoleService struct {
	roles  repository.RoleRepository
	users  repository.UserRepository
	policy *domain.Policy
}

func NewRoleService(roles repository.RoleRepository, users repository.UserRepository, policy *domain.Policy) *RoleService {
	return &RoleService{roles: roles, users: users, policy: policy}
}

func (s *RoleService) Create(ctx context.Context, dto domain.RoleDTO) (*domain.Role, error) {
	name, err := s.checkName(ctx, dto.Nombre, 0)
	if err != nil {
		return nil, err
	}
	return s.roles.Create(ctx, &domain.Role{Nombre: name, Descripcion: domain.NullString(dto.Descripcion)})
}

func (s *RoleService) GetByID(ctx context.Context, id int) (*domain.RoleDetail, error) {
	r, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrRoleNotFound)
	}
	return r, nil
}

func (s *RoleService) List(ctx context.Context) ([]domain.RoleDetail, error) {
	return s.roles.List(ctx)
}

// Permissions reports the capabilities the role grants under the policy.
func (s *RoleService) Permissions(ctx context.Context, id int) (*domain.RoleDetail, map[string][]string, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return r, s.policy.Capabilities(r.Nombre), nil
}

func (s *RoleService) Update(ctx context.Context, id int, dto domain.RoleDTO) (*domain.Role, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := s.checkName(ctx, dto.Nombre, id)
	if err != nil {
		return nil, err
	}
	if domain.IsSystemRole(current.Nombre) && !strings.EqualFold(current.Nombre, name) {
		return nil, &domain.Error{Kind: domain.KindForbidden, Msg: "system roles cannot be renamed"}
	}
	r, err := s.roles.Update(ctx, &domain.Role{ID: id, Nombre: name, Descripcion: domain.NullString(dto.Descripcion)})
	if err != nil {
		return nil, notFound(err, domain.ErrRoleNotFound)
	}
	return r, nil
}

// Delete refuses for system roles and for roles still assigned to users.
func (s *RoleService) Delete(ctx context.Context, id int) error {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if domain.IsSystemRole(r.Nombre) {
		return domain.ErrSystemRole
	}
	n, err := s.users.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse("role", n, "users")
	}
	return notFound(s.roles.Delete(ctx, id), domain.ErrRoleNotFound)
}

func (s *RoleService) checkName(ctx context.Context, raw string, selfID int) (string, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if name == "" {
		return "", domain.NewValidationError("nombre is required")
	}
	existing, err := s.roles.FindByName(ctx, name)
	if err == nil && existing.ID != selfID {
		return "", domain.ErrDuplicateRoleName
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	return name, nil
}
