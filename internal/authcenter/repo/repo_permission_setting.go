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
	"gorm.io/gorm/clause"

	"github.com/go-arcade/authcenter/internal/authcenter/consts"
	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/pkg/database"
)

type IPermissionSettingRepository interface {
	SetPermission(setting *model.PermissionSetting) error
	UnsetPermission(tenantId *int64, ownerKind string, ownerId int64, name string) error
	ListForOwner(tenantId *int64, ownerKind string, ownerId int64) ([]model.PermissionSetting, error)
	UserSetting(tenantId *int64, userId int64, name string) (*model.PermissionSetting, error)
	RoleSettings(tenantId *int64, roleIds []int64, name string) ([]model.PermissionSetting, error)
}

type PermissionSettingRepo struct {
	database.IDatabase
}

func NewPermissionSettingRepo(db database.IDatabase) IPermissionSettingRepository {
	return &PermissionSettingRepo{
		IDatabase: db,
	}
}

// SetPermission writes one grant/deny override. Writing the same
// (owner, name) again overwrites the previous opinion; the upsert is a
// single statement, so concurrent first writers cannot race past the
// unique index.
func (r *PermissionSettingRepo) SetPermission(setting *model.PermissionSetting) error {
	return r.Database().Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "tenant_id"}, {Name: "owner_kind"}, {Name: "owner_id"}, {Name: "name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"is_granted"}),
	}).Create(setting).Error
}

// UnsetPermission removes the override, restoring "no opinion"
func (r *PermissionSettingRepo) UnsetPermission(tenantId *int64, ownerKind string, ownerId int64, name string) error {
	res := r.Database().Scopes(tenantScope(tenantId)).
		Where("owner_kind = ? AND owner_id = ? AND name = ?", ownerKind, ownerId, name).
		Delete(&model.PermissionSetting{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForOwner lists all overrides held by one role or user
func (r *PermissionSettingRepo) ListForOwner(tenantId *int64, ownerKind string, ownerId int64) ([]model.PermissionSetting, error) {
	var settings []model.PermissionSetting
	err := r.Database().Scopes(tenantScope(tenantId)).
		Where("owner_kind = ? AND owner_id = ?", ownerKind, ownerId).
		Order("name ASC").
		Find(&settings).Error
	return settings, err
}

// UserSetting returns the user-level override for one permission name, or
// ErrNotFound when the user holds no opinion on it.
func (r *PermissionSettingRepo) UserSetting(tenantId *int64, userId int64, name string) (*model.PermissionSetting, error) {
	var setting model.PermissionSetting
	err := r.Database().Scopes(tenantScope(tenantId)).
		Where("owner_kind = ? AND owner_id = ? AND name = ?", consts.SettingOwnerUser, userId, name).
		First(&setting).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &setting, nil
}

// RoleSettings returns every role-level override for one permission name
// across the given roles.
func (r *PermissionSettingRepo) RoleSettings(tenantId *int64, roleIds []int64, name string) ([]model.PermissionSetting, error) {
	if len(roleIds) == 0 {
		return []model.PermissionSetting{}, nil
	}
	var settings []model.PermissionSetting
	err := r.Database().Scopes(tenantScope(tenantId)).
		Where("owner_kind = ? AND owner_id IN ? AND name = ?", consts.SettingOwnerRole, roleIds, name).
		Find(&settings).Error
	return settings, err
}
