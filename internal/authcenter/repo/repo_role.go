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

package repo

import (
	"strings"
	"time"

	"github.com/go-arcade/authcenter/internal/authcenter/consts"
	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/pkg/database"
)

type IRoleRepository interface {
	CreateRole(role *model.Role) error
	GetRoleById(tenantId *int64, id int64) (*model.Role, error)
	GetRoleByName(tenantId *int64, name string) (*model.Role, error)
	GetRolesByIds(tenantId *int64, ids []int64) ([]model.Role, error)
	ListRoles(tenantId *int64, pageNum, pageSize int) ([]model.Role, int64, error)
	DefaultRoleIds(tenantId *int64) ([]int64, error)
	UpdateRoleStamped(tenantId *int64, id int64, stamp string, updates map[string]any) error
	DeleteRole(tenantId *int64, id int64, deleterUserId *int64) error
}

type RoleRepo struct {
	database.IDatabase
}

func NewRoleRepo(db database.IDatabase) IRoleRepository {
	return &RoleRepo{
		IDatabase: db,
	}
}

// CreateRole creates a role
func (r *RoleRepo) CreateRole(role *model.Role) error {
	role.SetNormalizedName()
	if err := r.Database().Create(role).Error; err != nil {
		return err
	}
	return nil
}

// GetRoleById fetches a role inside one tenant partition
func (r *RoleRepo) GetRoleById(tenantId *int64, id int64) (*model.Role, error) {
	var role model.Role
	err := r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Where("id = ?", id).First(&role).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &role, nil
}

// GetRoleByName looks a role up case-insensitively via the normalized name
func (r *RoleRepo) GetRoleByName(tenantId *int64, name string) (*model.Role, error) {
	var role model.Role
	err := r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Where("normalized_name = ?", strings.ToUpper(name)).First(&role).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &role, nil
}

// GetRolesByIds fetches roles by id list
func (r *RoleRepo) GetRolesByIds(tenantId *int64, ids []int64) ([]model.Role, error) {
	if len(ids) == 0 {
		return []model.Role{}, nil
	}
	var roles []model.Role
	err := r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Where("id IN ?", ids).Find(&roles).Error
	return roles, err
}

// ListRoles lists roles of one tenant with pagination
func (r *RoleRepo) ListRoles(tenantId *int64, pageNum, pageSize int) ([]model.Role, int64, error) {
	var roles []model.Role
	var count int64
	offset := (pageNum - 1) * pageSize

	if err := r.Database().Model(&model.Role{}).
		Scopes(tenantScope(tenantId), notDeleted).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&roles).Error; err != nil {
		return nil, 0, err
	}
	return roles, count, nil
}

// DefaultRoleIds returns the ids of roles flagged as default in the tenant
func (r *RoleRepo) DefaultRoleIds(tenantId *int64) ([]int64, error) {
	var ids []int64
	err := r.Database().Model(&model.Role{}).
		Scopes(tenantScope(tenantId), notDeleted).
		Where("is_default = ?", 1).
		Pluck("id", &ids).Error
	return ids, err
}

// UpdateRoleStamped applies updates only if the stored concurrency stamp
// still matches the one the caller read.
func (r *RoleRepo) UpdateRoleStamped(tenantId *int64, id int64, stamp string, updates map[string]any) error {
	res := r.Database().Model(&model.Role{}).
		Scopes(tenantScope(tenantId), notDeleted).
		Where("id = ? AND concurrency_stamp = ?", id, stamp).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleWrite
	}
	return nil
}

// DeleteRole soft-deletes a role and drops its assignment and setting rows
func (r *RoleRepo) DeleteRole(tenantId *int64, id int64, deleterUserId *int64) error {
	updates := map[string]any{
		"is_deleted":      1,
		"deleter_user_id": deleterUserId,
		"deletion_time":   time.Now(),
	}
	res := r.Database().Model(&model.Role{}).
		Scopes(tenantScope(tenantId), notDeleted).
		Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	if err := r.Database().Scopes(tenantScope(tenantId)).
		Where("role_id = ?", id).Delete(&model.UserRole{}).Error; err != nil {
		return err
	}
	if err := r.Database().Scopes(tenantScope(tenantId)).
		Where("role_id = ?", id).Delete(&model.OrganizationUnitRole{}).Error; err != nil {
		return err
	}
	return r.Database().Scopes(tenantScope(tenantId)).
		Where("owner_kind = ? AND owner_id = ?", consts.SettingOwnerRole, id).
		Delete(&model.PermissionSetting{}).Error
}
