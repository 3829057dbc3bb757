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
	"gorm.io/gorm"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/pkg/database"
)

type ISettingRepository interface {
	SetSetting(setting *model.Setting) error
	GetSetting(tenantId, userId *int64, name string) (*model.Setting, error)
	ListSettings(tenantId, userId *int64) ([]model.Setting, error)
	DeleteSetting(tenantId, userId *int64, name string) error
}

type SettingRepo struct {
	database.IDatabase
}

func NewSettingRepo(db database.IDatabase) ISettingRepository {
	return &SettingRepo{
		IDatabase: db,
	}
}

func settingScope(tenantId, userId *int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = tenantScope(tenantId)(db)
		if userId == nil {
			return db.Where("user_id IS NULL")
		}
		return db.Where("user_id = ?", *userId)
	}
}

// SetSetting writes a setting value, overwriting any previous value in the
// same scope.
func (r *SettingRepo) SetSetting(setting *model.Setting) error {
	res := r.Database().Model(&model.Setting{}).
		Scopes(settingScope(setting.TenantId, setting.UserId)).
		Where("name = ?", setting.Name).
		Update("value", setting.Value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return r.Database().Create(setting).Error
}

// GetSetting reads a setting in exactly one scope; fallback across scopes
// is the service's job.
func (r *SettingRepo) GetSetting(tenantId, userId *int64, name string) (*model.Setting, error) {
	var setting model.Setting
	err := r.Database().Scopes(settingScope(tenantId, userId)).
		Where("name = ?", name).First(&setting).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &setting, nil
}

// ListSettings lists every setting in one scope
func (r *SettingRepo) ListSettings(tenantId, userId *int64) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.Database().Scopes(settingScope(tenantId, userId)).
		Order("name ASC").
		Find(&settings).Error
	return settings, err
}

// DeleteSetting removes a setting from one scope
func (r *SettingRepo) DeleteSetting(tenantId, userId *int64, name string) error {
	res := r.Database().Scopes(settingScope(tenantId, userId)).
		Where("name = ?", name).Delete(&model.Setting{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
