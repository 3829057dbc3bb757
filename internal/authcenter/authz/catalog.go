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
	"fmt"
	"sort"
)

// Definition is one code-defined permission. Permissions form a forest:
// a definition with an empty Parent is a root.
type Definition struct {
	Name        string
	DisplayName string
	Parent      string
}

// Catalog is the static universe of permission names. It is built once at
// process start and read-only afterwards, so lookups need no locking.
type Catalog struct {
	defs     map[string]Definition
	children map[string][]string
}

// NewCatalog validates the definitions and builds the lookup tables. Every
// parent must itself be defined; duplicate names and cyclic parent chains
// are rejected, so a walk up the parent links always ends at a root.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs:     make(map[string]Definition, len(defs)),
		children: make(map[string][]string),
	}
	for _, d := range defs {
		if _, ok := c.defs[d.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDefinition, d.Name)
		}
		c.defs[d.Name] = d
	}
	for _, d := range defs {
		if d.Parent == "" {
			continue
		}
		if _, ok := c.defs[d.Parent]; !ok {
			return nil, fmt.Errorf("%w: %s -> %s", ErrUnknownParent, d.Name, d.Parent)
		}
		c.children[d.Parent] = append(c.children[d.Parent], d.Name)
	}
	for _, d := range defs {
		seen := map[string]struct{}{d.Name: {}}
		for p := d.Parent; p != ""; p = c.defs[p].Parent {
			if _, ok := seen[p]; ok {
				return nil, fmt.Errorf("%w: %s", ErrCyclicDefinition, d.Name)
			}
			seen[p] = struct{}{}
		}
	}
	for _, names := range c.children {
		sort.Strings(names)
	}
	return c, nil
}

// MustNewCatalog panics on an invalid definition set. Catalogs are wired at
// startup, so an invalid one is a programming error.
func MustNewCatalog(defs []Definition) *Catalog {
	c, err := NewCatalog(defs)
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve returns the definition for a name.
func (c *Catalog) Resolve(name string) (Definition, error) {
	d, ok := c.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownPermission, name)
	}
	return d, nil
}

// ChildrenOf returns the names of the direct children of a permission.
func (c *Catalog) ChildrenOf(name string) ([]string, error) {
	if _, ok := c.defs[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPermission, name)
	}
	out := make([]string, len(c.children[name]))
	copy(out, c.children[name])
	return out, nil
}

// Names returns every defined permission name in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Built-in administration permissions. Host-side tenant management sits
// under AdminCenter.Tenants; the rest govern the per-tenant surface.
const (
	PermAdminCenter = "AdminCenter"

	PermTenants       = "AdminCenter.Tenants"
	PermTenantsCreate = "AdminCenter.Tenants.Create"
	PermTenantsEdit   = "AdminCenter.Tenants.Edit"
	PermTenantsDelete = "AdminCenter.Tenants.Delete"

	PermUsers            = "AdminCenter.Users"
	PermUsersCreate      = "AdminCenter.Users.Create"
	PermUsersEdit        = "AdminCenter.Users.Edit"
	PermUsersDelete      = "AdminCenter.Users.Delete"
	PermUsersAssignRoles = "AdminCenter.Users.AssignRoles"

	PermRoles            = "AdminCenter.Roles"
	PermRolesCreate      = "AdminCenter.Roles.Create"
	PermRolesEdit        = "AdminCenter.Roles.Edit"
	PermRolesDelete      = "AdminCenter.Roles.Delete"
	PermRolesPermissions = "AdminCenter.Roles.ManagePermissions"

	PermOrganizationUnits       = "AdminCenter.OrganizationUnits"
	PermOrganizationUnitsManage = "AdminCenter.OrganizationUnits.Manage"
	PermOrganizationUnitsMove   = "AdminCenter.OrganizationUnits.Move"
)

// DefaultDefinitions returns the built-in permission tree.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Name: PermAdminCenter, DisplayName: "Administration"},

		{Name: PermTenants, DisplayName: "Tenant management", Parent: PermAdminCenter},
		{Name: PermTenantsCreate, DisplayName: "Create tenants", Parent: PermTenants},
		{Name: PermTenantsEdit, DisplayName: "Edit tenants", Parent: PermTenants},
		{Name: PermTenantsDelete, DisplayName: "Delete tenants", Parent: PermTenants},

		{Name: PermUsers, DisplayName: "User management", Parent: PermAdminCenter},
		{Name: PermUsersCreate, DisplayName: "Create users", Parent: PermUsers},
		{Name: PermUsersEdit, DisplayName: "Edit users", Parent: PermUsers},
		{Name: PermUsersDelete, DisplayName: "Delete users", Parent: PermUsers},
		{Name: PermUsersAssignRoles, DisplayName: "Assign roles to users", Parent: PermUsers},

		{Name: PermRoles, DisplayName: "Role management", Parent: PermAdminCenter},
		{Name: PermRolesCreate, DisplayName: "Create roles", Parent: PermRoles},
		{Name: PermRolesEdit, DisplayName: "Edit roles", Parent: PermRoles},
		{Name: PermRolesDelete, DisplayName: "Delete roles", Parent: PermRoles},
		{Name: PermRolesPermissions, DisplayName: "Manage role permissions", Parent: PermRoles},

		{Name: PermOrganizationUnits, DisplayName: "Organization units", Parent: PermAdminCenter},
		{Name: PermOrganizationUnitsManage, DisplayName: "Manage organization units", Parent: PermOrganizationUnits},
		{Name: PermOrganizationUnitsMove, DisplayName: "Move organization units", Parent: PermOrganizationUnits},
	}
}
