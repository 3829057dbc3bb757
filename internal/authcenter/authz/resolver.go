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

package authz

import (
	"context"
	"errors"
	"time"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
)

// PrincipalSource supplies the user and its direct role assignments.
type PrincipalSource interface {
	GetUserById(tenantId *int64, id int64) (*model.User, error)
	RoleIdsOfUser(tenantId *int64, userId int64) ([]int64, error)
}

// RoleSource supplies the tenant's default roles.
type RoleSource interface {
	DefaultRoleIds(tenantId *int64) ([]int64, error)
}

// SettingSource supplies grant/deny overrides.
type SettingSource interface {
	UserSetting(tenantId *int64, userId int64, name string) (*model.PermissionSetting, error)
	RoleSettings(tenantId *int64, roleIds []int64, name string) ([]model.PermissionSetting, error)
}

// UnitSource supplies organization-unit membership and role attachment.
type UnitSource interface {
	UnitsOfUser(tenantId *int64, userId int64) ([]model.OrganizationUnit, error)
	AncestorsOf(tenantId *int64, code string) ([]model.OrganizationUnit, error)
	RoleIdsOfUnits(tenantId *int64, unitIds []int64) ([]int64, error)
}

// TenantSource verifies the tenant partition of a check.
type TenantSource interface {
	GetTenantById(id int64) (*model.Tenant, error)
}

// ResolveOptions tunes one check.
type ResolveOptions struct {
	// InheritAncestorRoles controls whether roles attached to the ancestors
	// of a user's organization units are collected too.
	InheritAncestorRoles bool
	// ApplyDefaultRoles controls whether tenant default roles stand in when
	// the user has no role at all.
	ApplyDefaultRoles bool
}

// DefaultResolveOptions is the policy used when the caller passes nil.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{
		InheritAncestorRoles: true,
		ApplyDefaultRoles:    true,
	}
}

// Resolver renders Granted/Denied for (tenant, user, permission). It is a
// pure read over the stores; results must not be cached across requests.
type Resolver struct {
	catalog    *Catalog
	principals PrincipalSource
	roles      RoleSource
	settings   SettingSource
	units      UnitSource
	tenants    TenantSource
	now        func() time.Time
}

func NewResolver(catalog *Catalog, principals PrincipalSource, roles RoleSource,
	settings SettingSource, units UnitSource, tenants TenantSource) *Resolver {
	return &Resolver{
		catalog:    catalog,
		principals: principals,
		roles:      roles,
		settings:   settings,
		units:      units,
		tenants:    tenants,
		now:        time.Now,
	}
}

// IsGranted checks one permission for one principal. The evaluation order,
// first match wins:
//
//  1. user-level deny
//  2. user-level grant
//  3. role-level deny across the collected role set
//  4. role-level grant across the collected role set
//  5. recurse on the permission's parent
//  6. deny
//
// The role set is the user's direct roles plus roles inherited through
// organization units; tenant default roles stand in only when that set is
// empty. An unknown permission name is an error, never a silent deny.
func (r *Resolver) IsGranted(ctx context.Context, tenantId *int64, userId int64, name string, opts *ResolveOptions) (bool, error) {
	o := DefaultResolveOptions()
	if opts != nil {
		o = *opts
	}

	def, err := r.catalog.Resolve(name)
	if err != nil {
		return false, err
	}

	if tenantId != nil {
		tenant, terr := r.tenants.GetTenantById(*tenantId)
		if terr != nil {
			if errors.Is(terr, repo.ErrNotFound) {
				return false, ErrUnknownTenant
			}
			return false, terr
		}
		if !tenant.IsActive {
			return false, ErrTenantNotActive
		}
	}

	user, err := r.principals.GetUserById(tenantId, userId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrUnknownPrincipal
		}
		return false, err
	}
	if !user.IsActive {
		return false, ErrUserNotActive
	}
	if user.IsLockedOut(r.now()) {
		return false, ErrUserLockedOut
	}

	roleIds, err := r.collectRoles(tenantId, userId, o)
	if err != nil {
		return false, err
	}

	return r.evaluate(ctx, tenantId, userId, roleIds, def)
}

// collectRoles gathers direct assignments and unit-inherited roles, falling
// back to default roles when both are empty.
func (r *Resolver) collectRoles(tenantId *int64, userId int64, o ResolveOptions) ([]int64, error) {
	seen := map[int64]struct{}{}
	var roleIds []int64
	add := func(ids []int64) {
		for _, id := range ids {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				roleIds = append(roleIds, id)
			}
		}
	}

	direct, err := r.principals.RoleIdsOfUser(tenantId, userId)
	if err != nil {
		return nil, err
	}
	add(direct)

	units, err := r.units.UnitsOfUser(tenantId, userId)
	if err != nil {
		return nil, err
	}
	unitIds := make([]int64, 0, len(units))
	seenUnits := map[int64]struct{}{}
	for _, u := range units {
		if _, ok := seenUnits[u.ID]; !ok {
			seenUnits[u.ID] = struct{}{}
			unitIds = append(unitIds, u.ID)
		}
		if !o.InheritAncestorRoles {
			continue
		}
		ancestors, aerr := r.units.AncestorsOf(tenantId, u.Code)
		if aerr != nil {
			return nil, aerr
		}
		for _, a := range ancestors {
			if _, ok := seenUnits[a.ID]; !ok {
				seenUnits[a.ID] = struct{}{}
				unitIds = append(unitIds, a.ID)
			}
		}
	}
	if len(unitIds) > 0 {
		inherited, uerr := r.units.RoleIdsOfUnits(tenantId, unitIds)
		if uerr != nil {
			return nil, uerr
		}
		add(inherited)
	}

	if len(roleIds) == 0 && o.ApplyDefaultRoles {
		defaults, derr := r.roles.DefaultRoleIds(tenantId)
		if derr != nil {
			return nil, derr
		}
		add(defaults)
	}
	return roleIds, nil
}

// evaluate walks the precedence chain for one name, then recurses up the
// catalog hierarchy. Absence of a setting at every level denies.
func (r *Resolver) evaluate(ctx context.Context, tenantId *int64, userId int64, roleIds []int64, def Definition) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	userSetting, err := r.settings.UserSetting(tenantId, userId, def.Name)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}
	if userSetting != nil {
		return userSetting.IsGranted, nil
	}

	roleSettings, err := r.settings.RoleSettings(tenantId, roleIds, def.Name)
	if err != nil {
		return false, err
	}
	if len(roleSettings) > 0 {
		// deny wins across a conflicting role set
		for _, s := range roleSettings {
			if !s.IsGranted {
				return false, nil
			}
		}
		return true, nil
	}

	if def.Parent != "" {
		parent, perr := r.catalog.Resolve(def.Parent)
		if perr != nil {
			return false, perr
		}
		return r.evaluate(ctx, tenantId, userId, roleIds, parent)
	}
	return false, nil
}
