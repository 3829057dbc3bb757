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
	"time"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/pkg/database"
)

type ITenantRepository interface {
	CreateTenant(tenant *model.Tenant) error
	GetTenantById(id int64) (*model.Tenant, error)
	GetTenantByTenancyName(tenancyName string) (*model.Tenant, error)
	ListTenants(pageNum, pageSize int) ([]model.Tenant, int64, error)
	UpdateTenantById(id int64, updates map[string]any) error
	DeleteTenant(id int64, deleterUserId *int64) error
}

type TenantRepo struct {
	database.IDatabase
}

func NewTenantRepo(db database.IDatabase) ITenantRepository {
	return &TenantRepo{
		IDatabase: db,
	}
}

// CreateTenant creates a tenant
func (r *TenantRepo) CreateTenant(tenant *model.Tenant) error {
	if err := r.Database().Create(tenant).Error; err != nil {
		return err
	}
	return nil
}

// GetTenantById fetches a tenant by id
func (r *TenantRepo) GetTenantById(id int64) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.Database().Scopes(notDeleted).
		Where("id = ?", id).First(&tenant).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &tenant, nil
}

// GetTenantByTenancyName fetches a tenant by its unique tenancy name
func (r *TenantRepo) GetTenantByTenancyName(tenancyName string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.Database().Scopes(notDeleted).
		Where("tenancy_name = ?", tenancyName).First(&tenant).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &tenant, nil
}

// ListTenants lists tenants with pagination
func (r *TenantRepo) ListTenants(pageNum, pageSize int) ([]model.Tenant, int64, error) {
	var tenants []model.Tenant
	var count int64
	offset := (pageNum - 1) * pageSize

	if err := r.Database().Model(&model.Tenant{}).Scopes(notDeleted).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.Database().Scopes(notDeleted).
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&tenants).Error; err != nil {
		return nil, 0, err
	}
	return tenants, count, nil
}

// UpdateTenantById updates tenant fields by id
func (r *TenantRepo) UpdateTenantById(id int64, updates map[string]any) error {
	res := r.Database().Model(&model.Tenant{}).Scopes(notDeleted).
		Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTenant soft-deletes a tenant
func (r *TenantRepo) DeleteTenant(id int64, deleterUserId *int64) error {
	updates := map[string]any{
		"is_deleted":      1,
		"deleter_user_id": deleterUserId,
		"deletion_time":   time.Now(),
	}
	res := r.Database().Model(&model.Tenant{}).Scopes(notDeleted).
		Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
