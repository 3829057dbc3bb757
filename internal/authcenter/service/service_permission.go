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
	"github.com/go-arcade/authcenter/internal/authcenter/authz"
	"github.com/go-arcade/authcenter/internal/authcenter/consts"
	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
	"github.com/go-arcade/authcenter/pkg/log"
)

// PermissionService writes grant/deny overrides for roles and users. Every
// write validates the permission name against the catalog; the store itself
// does not.
type PermissionService struct {
	catalog     *authz.Catalog
	settingRepo repo.IPermissionSettingRepository
	roleRepo    repo.IRoleRepository
	userRepo    repo.IUserRepository
}

func NewPermissionService(catalog *authz.Catalog, settingRepo repo.IPermissionSettingRepository,
	roleRepo repo.IRoleRepository, userRepo repo.IUserRepository) *PermissionService {
	return &PermissionService{
		catalog:     catalog,
		settingRepo: settingRepo,
		roleRepo:    roleRepo,
		userRepo:    userRepo,
	}
}

// SetRolePermission writes one grant/deny override for a role
func (ps *PermissionService) SetRolePermission(tenantId *int64, roleId int64, req *model.SetPermissionRequest, creatorUserId *int64) error {
	if _, err := ps.catalog.Resolve(req.Name); err != nil {
		return err
	}
	if _, err := ps.roleRepo.GetRoleById(tenantId, roleId); err != nil {
		return err
	}
	if err := ps.settingRepo.SetPermission(&model.PermissionSetting{
		TenantId:      tenantId,
		OwnerKind:     consts.SettingOwnerRole,
		OwnerId:       roleId,
		Name:          req.Name,
		IsGranted:     req.IsGranted,
		CreatorUserId: creatorUserId,
	}); err != nil {
		log.Errorw("failed to set role permission", "roleId", roleId, "name", req.Name, "error", err)
		return err
	}
	return nil
}

// UnsetRolePermission removes a role override, restoring "no opinion"
func (ps *PermissionService) UnsetRolePermission(tenantId *int64, roleId int64, name string) error {
	if _, err := ps.catalog.Resolve(name); err != nil {
		return err
	}
	return ps.settingRepo.UnsetPermission(tenantId, consts.SettingOwnerRole, roleId, name)
}

// ListRolePermissions lists the overrides held by a role
func (ps *PermissionService) ListRolePermissions(tenantId *int64, roleId int64) ([]model.PermissionSetting, error) {
	if _, err := ps.roleRepo.GetRoleById(tenantId, roleId); err != nil {
		return nil, err
	}
	return ps.settingRepo.ListForOwner(tenantId, consts.SettingOwnerRole, roleId)
}

// SetUserPermission writes one grant/deny override for a user
func (ps *PermissionService) SetUserPermission(tenantId *int64, userId int64, req *model.SetPermissionRequest, creatorUserId *int64) error {
	if _, err := ps.catalog.Resolve(req.Name); err != nil {
		return err
	}
	if _, err := ps.userRepo.GetUserById(tenantId, userId); err != nil {
		return err
	}
	if err := ps.settingRepo.SetPermission(&model.PermissionSetting{
		TenantId:      tenantId,
		OwnerKind:     consts.SettingOwnerUser,
		OwnerId:       userId,
		Name:          req.Name,
		IsGranted:     req.IsGranted,
		CreatorUserId: creatorUserId,
	}); err != nil {
		log.Errorw("failed to set user permission", "userId", userId, "name", req.Name, "error", err)
		return err
	}
	return nil
}

// UnsetUserPermission removes a user override
func (ps *PermissionService) UnsetUserPermission(tenantId *int64, userId int64, name string) error {
	if _, err := ps.catalog.Resolve(name); err != nil {
		return err
	}
	return ps.settingRepo.UnsetPermission(tenantId, consts.SettingOwnerUser, userId, name)
}

// ListUserPermissions lists the overrides held by a user
func (ps *PermissionService) ListUserPermissions(tenantId *int64, userId int64) ([]model.PermissionSetting, error) {
	if _, err := ps.userRepo.GetUserById(tenantId, userId); err != nil {
		return nil, err
	}
	return ps.settingRepo.ListForOwner(tenantId, consts.SettingOwnerUser, userId)
}

// CatalogNames returns every defined permission name
func (ps *PermissionService) CatalogNames() []string {
	return ps.catalog.Names()
}

// CatalogChildren returns the direct children of a permission
func (ps *PermissionService) CatalogChildren(name string) ([]string, error) {
	return ps.catalog.ChildrenOf(name)
}
