// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"errors"
	"strings"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
	"github.com/go-arcade/authcenter/pkg/id"
	"github.com/go-arcade/authcenter/pkg/log"
)

type RoleService struct {
	roleRepo repo.IRoleRepository
}

func NewRoleService(roleRepo repo.IRoleRepository) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
	}
}

// CreateRole creates a custom role in the tenant partition. The role name
// must be unique (case-insensitive) within the tenant.
func (rs *RoleService) CreateRole(tenantId *int64, req *model.CreateRoleRequest, creatorUserId *int64) (*model.Role, error) {
	if req.Name == "" {
		return nil, errors.New("role name is required")
	}
	if _, err := rs.roleRepo.GetRoleByName(tenantId, req.Name); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	role := model.NewRole(tenantId, req.Name, req.DisplayName)
	role.IsDefault = req.IsDefault
	role.CreatorUserId = creatorUserId
	if err := rs.roleRepo.CreateRole(role); err != nil {
		log.Errorw("failed to create role", "name", req.Name, "error", err)
		return nil, err
	}
	log.Infow("role created", "roleId", role.ID, "name", role.Name)
	return role, nil
}

// GetRole fetches a role by id
func (rs *RoleService) GetRole(tenantId *int64, id int64) (*model.Role, error) {
	return rs.roleRepo.GetRoleById(tenantId, id)
}

// ListRoles lists roles of a tenant with pagination
func (rs *RoleService) ListRoles(tenantId *int64, pageNum, pageSize int) ([]model.Role, int64, error) {
	return rs.roleRepo.ListRoles(tenantId, pageNum, pageSize)
}

// UpdateRole updates a role under the optimistic-concurrency stamp. Static
// roles keep their name; only the display name and default flag may change.
func (rs *RoleService) UpdateRole(tenantId *int64, roleId int64, req *model.UpdateRoleRequest, modifierUserId *int64) error {
	role, err := rs.roleRepo.GetRoleById(tenantId, roleId)
	if err != nil {
		return err
	}
	if role.IsStatic && req.Name != nil && *req.Name != role.Name {
		return ErrStaticRoleImmutable
	}
	if req.Name != nil && *req.Name != role.Name {
		if _, err := rs.roleRepo.GetRoleByName(tenantId, *req.Name); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
	}

	updates := map[string]any{
		"concurrency_stamp":     id.NewStamp(),
		"last_modifier_user_id": modifierUserId,
	}
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["normalized_name"] = strings.ToUpper(*req.Name)
	}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.IsDefault != nil {
		updates["is_default"] = *req.IsDefault
	}
	return rs.roleRepo.UpdateRoleStamped(tenantId, roleId, req.ConcurrencyStamp, updates)
}

// DeleteRole soft-deletes a custom role; static roles are protected
func (rs *RoleService) DeleteRole(tenantId *int64, roleId int64, deleterUserId *int64) error {
	role, err := rs.roleRepo.GetRoleById(tenantId, roleId)
	if err != nil {
		return err
	}
	if role.IsStatic {
		return ErrStaticRoleImmutable
	}
	if err := rs.roleRepo.DeleteRole(tenantId, roleId, deleterUserId); err != nil {
		return err
	}
	log.Infow("role deleted", "roleId", roleId, "name", role.Name)
	return nil
}
