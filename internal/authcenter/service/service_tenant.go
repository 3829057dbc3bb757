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
	"regexp"

	"github.com/go-arcade/authcenter/internal/authcenter/consts"
	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
	"github.com/go-arcade/authcenter/pkg/log"
)

var tenancyNameRe = regexp.MustCompile(consts.TenancyNameRegex)

type TenantService struct {
	tenantRepo repo.ITenantRepository
	roleRepo   repo.IRoleRepository
	userRepo   repo.IUserRepository
}

func NewTenantService(tenantRepo repo.ITenantRepository, roleRepo repo.IRoleRepository,
	userRepo repo.IUserRepository) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		roleRepo:   roleRepo,
		userRepo:   userRepo,
	}
}

// CreateTenant creates a tenant together with its static Admin role and the
// reserved admin user holding it.
func (ts *TenantService) CreateTenant(req *model.CreateTenantRequest, creatorUserId *int64) (*model.Tenant, error) {
	if !tenancyNameRe.MatchString(req.TenancyName) || len(req.TenancyName) > consts.MaxTenancyNameLength {
		return nil, ErrInvalidTenancyName
	}
	if _, err := ts.tenantRepo.GetTenantByTenancyName(req.TenancyName); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	tenant := &model.Tenant{
		TenancyName: req.TenancyName,
		Name:        req.Name,
		EditionId:   req.EditionId,
		IsActive:    true,
	}
	tenant.CreatorUserId = creatorUserId
	if err := ts.tenantRepo.CreateTenant(tenant); err != nil {
		log.Errorw("failed to create tenant", "tenancyName", req.TenancyName, "error", err)
		return nil, err
	}

	adminRole := model.NewRole(&tenant.ID, consts.AdminRoleName, consts.AdminRoleName)
	adminRole.IsStatic = true
	adminRole.CreatorUserId = creatorUserId
	if err := ts.roleRepo.CreateRole(adminRole); err != nil {
		log.Errorw("failed to create admin role for tenant", "tenantId", tenant.ID, "error", err)
		return nil, err
	}

	adminUser := model.NewTenantAdminUser(tenant.ID)
	adminUser.CreatorUserId = creatorUserId
	if err := ts.userRepo.CreateUser(adminUser); err != nil {
		log.Errorw("failed to create admin user for tenant", "tenantId", tenant.ID, "error", err)
		return nil, err
	}
	if err := ts.userRepo.AssignRole(&model.UserRole{
		TenantId:      &tenant.ID,
		UserId:        adminUser.ID,
		RoleId:        adminRole.ID,
		CreatorUserId: creatorUserId,
	}); err != nil {
		log.Errorw("failed to assign admin role", "tenantId", tenant.ID, "error", err)
		return nil, err
	}

	log.Infow("tenant created", "tenantId", tenant.ID, "tenancyName", tenant.TenancyName)
	return tenant, nil
}

// GetTenant fetches a tenant by id
func (ts *TenantService) GetTenant(id int64) (*model.Tenant, error) {
	return ts.tenantRepo.GetTenantById(id)
}

// GetTenantByTenancyName fetches a tenant by its unique tenancy name
func (ts *TenantService) GetTenantByTenancyName(tenancyName string) (*model.Tenant, error) {
	return ts.tenantRepo.GetTenantByTenancyName(tenancyName)
}

// ListTenants lists tenants with pagination
func (ts *TenantService) ListTenants(pageNum, pageSize int) ([]model.Tenant, int64, error) {
	return ts.tenantRepo.ListTenants(pageNum, pageSize)
}

// UpdateTenant updates display name, edition or active flag
func (ts *TenantService) UpdateTenant(id int64, req *model.UpdateTenantRequest, modifierUserId *int64) error {
	updates := map[string]any{
		"last_modifier_user_id": modifierUserId,
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.EditionId != nil {
		updates["edition_id"] = *req.EditionId
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	return ts.tenantRepo.UpdateTenantById(id, updates)
}

// DeleteTenant soft-deletes a tenant
func (ts *TenantService) DeleteTenant(id int64, deleterUserId *int64) error {
	if err := ts.tenantRepo.DeleteTenant(id, deleterUserId); err != nil {
		return err
	}
	log.Infow("tenant deleted", "tenantId", id)
	return nil
}
