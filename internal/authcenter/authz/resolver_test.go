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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arcade/authcenter/internal/authcenter/consts"
	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
)

type fakeStore struct {
	users        map[int64]*model.User
	tenants      map[int64]*model.Tenant
	userRoles    map[int64][]int64
	defaultRoles []int64
	settings     []model.PermissionSetting
	userUnits    map[int64][]model.OrganizationUnit
	unitsByCode  map[string]model.OrganizationUnit
	unitRoles    map[int64][]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       map[int64]*model.User{},
		tenants:     map[int64]*model.Tenant{},
		userRoles:   map[int64][]int64{},
		userUnits:   map[int64][]model.OrganizationUnit{},
		unitsByCode: map[string]model.OrganizationUnit{},
		unitRoles:   map[int64][]int64{},
	}
}

func (f *fakeStore) GetUserById(_ *int64, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) RoleIdsOfUser(_ *int64, userId int64) ([]int64, error) {
	return f.userRoles[userId], nil
}

func (f *fakeStore) DefaultRoleIds(_ *int64) ([]int64, error) {
	return f.defaultRoles, nil
}

func (f *fakeStore) UserSetting(_ *int64, userId int64, name string) (*model.PermissionSetting, error) {
	for i := range f.settings {
		s := f.settings[i]
		if s.OwnerKind == consts.SettingOwnerUser && s.OwnerId == userId && s.Name == name {
			return &s, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeStore) RoleSettings(_ *int64, roleIds []int64, name string) ([]model.PermissionSetting, error) {
	var out []model.PermissionSetting
	for _, s := range f.settings {
		if s.OwnerKind != consts.SettingOwnerRole || s.Name != name {
			continue
		}
		for _, id := range roleIds {
			if s.OwnerId == id {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) UnitsOfUser(_ *int64, userId int64) ([]model.OrganizationUnit, error) {
	return f.userUnits[userId], nil
}

func (f *fakeStore) AncestorsOf(_ *int64, code string) ([]model.OrganizationUnit, error) {
	var codes []string
	for c := model.ParentCodeOf(code); c != ""; c = model.ParentCodeOf(c) {
		codes = append(codes, c)
	}
	var out []model.OrganizationUnit
	for i := len(codes) - 1; i >= 0; i-- {
		if u, ok := f.unitsByCode[codes[i]]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) RoleIdsOfUnits(_ *int64, unitIds []int64) ([]int64, error) {
	seen := map[int64]struct{}{}
	var out []int64
	for _, id := range unitIds {
		for _, roleId := range f.unitRoles[id] {
			if _, ok := seen[roleId]; !ok {
				seen[roleId] = struct{}{}
				out = append(out, roleId)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) GetTenantById(id int64) (*model.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return t, nil
}

func (f *fakeStore) grantRole(roleId int64, name string) {
	f.settings = append(f.settings, model.PermissionSetting{
		OwnerKind: consts.SettingOwnerRole, OwnerId: roleId, Name: name, IsGranted: true,
	})
}

func (f *fakeStore) denyRole(roleId int64, name string) {
	f.settings = append(f.settings, model.PermissionSetting{
		OwnerKind: consts.SettingOwnerRole, OwnerId: roleId, Name: name, IsGranted: false,
	})
}

func (f *fakeStore) grantUser(userId int64, name string) {
	f.settings = append(f.settings, model.PermissionSetting{
		OwnerKind: consts.SettingOwnerUser, OwnerId: userId, Name: name, IsGranted: true,
	})
}

func (f *fakeStore) denyUser(userId int64, name string) {
	f.settings = append(f.settings, model.PermissionSetting{
		OwnerKind: consts.SettingOwnerUser, OwnerId: userId, Name: name, IsGranted: false,
	})
}

var testCatalog = MustNewCatalog([]Definition{
	{Name: "Docs", DisplayName: "Documents"},
	{Name: "Docs.Edit", DisplayName: "Edit documents", Parent: "Docs"},
	{Name: "Docs.Edit.Lock", DisplayName: "Lock documents", Parent: "Docs.Edit"},
	{Name: "Docs.View", DisplayName: "View documents", Parent: "Docs"},
})

const (
	aliceId int64 = 1
	acmeId  int64 = 10

	editorRole      int64 = 100
	contributorRole int64 = 101
	viewerRole      int64 = 102
)

func newTestResolver(f *fakeStore) *Resolver {
	return NewResolver(testCatalog, f, f, f, f, f)
}

func seedAlice(f *fakeStore) *int64 {
	tenantId := acmeId
	f.tenants[acmeId] = &model.Tenant{TenancyName: "acme", Name: "Acme", IsActive: true}
	alice := &model.User{UserName: "alice", TenantId: &tenantId, IsActive: true, IsLockoutEnabled: true}
	alice.ID = aliceId
	f.users[aliceId] = alice
	return &tenantId
}

func TestResolverDeniesByDefault(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)
	f.userRoles[aliceId] = []int64{editorRole}

	granted, err := newTestResolver(f).IsGranted(context.Background(), tenantId, aliceId, "Docs.Edit", nil)
	require.NoError(t, err)
	assert.False(t, granted, "no setting anywhere must deny")
}

func TestResolverRoleGrant(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)
	f.userRoles[aliceId] = []int64{editorRole}
	f.grantRole(editorRole, "Docs.Edit")

	granted, err := newTestResolver(f).IsGranted(context.Background(), tenantId, aliceId, "Docs.Edit", nil)
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestResolverUserDenyOverridesRoleGrants(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)
	f.userRoles[aliceId] = []int64{editorRole, contributorRole}
	f.grantRole(editorRole, "Docs.Edit")
	f.grantRole(contributorRole, "Docs.Edit")
	f.denyUser(aliceId, "Docs.Edit")

	granted, err := newTestResolver(f).IsGranted(context.Background(), tenantId, aliceId, "Docs.Edit", nil)
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestResolverUserGrantOverridesRoleDeny(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)
	f.userRoles[aliceId] = []int64{editorRole}
	f.denyRole(editorRole, "Docs.Edit")
	f.grantUser(aliceId, "Docs.Edit")

	granted, err := newTestResolver(f).IsGranted(context.Background(), tenantId, aliceId, "Docs.Edit", nil)
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestResolverRoleDenyBeatsRoleGrant(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)
	f.userRoles[aliceId] = []int64{editorRole, contributorRole}
	f.denyRole(editorRole, "Docs.Edit")
	f.grantRole(contributorRole, "Docs.Edit")

	granted, err := newTestResolver(f).IsGranted(context.Background(), tenantId, aliceId, "Docs.Edit", nil)
	require.NoError(t, err)
	assert.False(t, granted, "deny wins regardless of which role carries which setting")
}

func TestResolverParentFallback(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)
	f.userRoles[aliceId] = []int64{editorRole}
	f.grantRole(editorRole, "Docs.Edit")

	granted, err := newTestResolver(f).IsGranted(context.Background(), tenantId, aliceId, "Docs.Edit.Lock", nil)
	require.NoError(t, err)
	assert.True(t, granted, "grant on the parent reaches the child")
}

func TestResolverChildDenyDoesNotAffectParent(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)
	f.userRoles[aliceId] = []int64{editorRole}
	f.grantRole(editorRole, "Docs.Edit")
	f.denyRole(editorRole, "Docs.Edit.Lock")

	r := newTestResolver(f)

	granted, err := r.IsGranted(context.Background(), tenantId, aliceId, "Docs.Edit.Lock", nil)
	require.NoError(t, err)
	assert.False(t, granted)

	granted, err = r.IsGranted(context.Background(), tenantId, aliceId, "Docs.Edit", nil)
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestResolverUnitInheritedRoles(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)

	sales := model.OrganizationUnit{DisplayName: "Sales", Code: "00001"}
	sales.ID = 1
	east := model.OrganizationUnit{DisplayName: "East", Code: "00001.00001"}
	east.ID = 2
	f.unitsByCode[sales.Code] = sales
	f.unitsByCode[east.Code] = east
	f.userUnits[aliceId] = []model.OrganizationUnit{east}
	f.unitRoles[east.ID] = []int64{viewerRole}
	f.grantRole(viewerRole, "Docs.View")

	granted, err := newTestResolver(f).IsGranted(context.Background(), tenantId, aliceId, "Docs.View", nil)
	require.NoError(t, err)
	assert.True(t, granted, "role attached to the user's unit must apply")
}

func TestResolverAncestorRoleInheritance(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)

	sales := model.OrganizationUnit{DisplayName: "Sales", Code: "00001"}
	sales.ID = 1
	east := model.OrganizationUnit{DisplayName: "East", Code: "00001.00001"}
	east.ID = 2
	f.unitsByCode[sales.Code] = sales
	f.unitsByCode[east.Code] = east
	f.userUnits[aliceId] = []model.OrganizationUnit{east}
	f.unitRoles[sales.ID] = []int64{viewerRole} // attached to the ancestor only
	f.grantRole(viewerRole, "Docs.View")

	r := newTestResolver(f)

	granted, err := r.IsGranted(context.Background(), tenantId, aliceId, "Docs.View", nil)
	require.NoError(t, err)
	assert.True(t, granted)

	opts := ResolveOptions{InheritAncestorRoles: false, ApplyDefaultRoles: true}
	granted, err = r.IsGranted(context.Background(), tenantId, aliceId, "Docs.View", &opts)
	require.NoError(t, err)
	assert.False(t, granted, "ancestor roles must not apply when inheritance is off")
}

func TestResolverDefaultRolesOnlyWhenNoRoles(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)
	f.defaultRoles = []int64{viewerRole}
	f.grantRole(viewerRole, "Docs.View")
	f.denyRole(viewerRole, "Docs.Edit")

	r := newTestResolver(f)

	granted, err := r.IsGranted(context.Background(), tenantId, aliceId, "Docs.View", nil)
	require.NoError(t, err)
	assert.True(t, granted, "default roles stand in for a roleless user")

	// once alice holds any role the defaults stop applying
	f.userRoles[aliceId] = []int64{editorRole}
	granted, err = r.IsGranted(context.Background(), tenantId, aliceId, "Docs.View", nil)
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestResolverUnknownPermission(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)

	_, err := newTestResolver(f).IsGranted(context.Background(), tenantId, aliceId, "Docs.Delete", nil)
	assert.ErrorIs(t, err, ErrUnknownPermission)
}

func TestResolverUnknownPrincipal(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)

	_, err := newTestResolver(f).IsGranted(context.Background(), tenantId, 999, "Docs.Edit", nil)
	assert.ErrorIs(t, err, ErrUnknownPrincipal)
}

func TestResolverUnknownTenant(t *testing.T) {
	f := newFakeStore()
	seedAlice(f)
	missing := int64(404)

	_, err := newTestResolver(f).IsGranted(context.Background(), &missing, aliceId, "Docs.Edit", nil)
	assert.ErrorIs(t, err, ErrUnknownTenant)
}

func TestResolverInactiveTenant(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)
	f.tenants[acmeId].IsActive = false

	_, err := newTestResolver(f).IsGranted(context.Background(), tenantId, aliceId, "Docs.Edit", nil)
	assert.ErrorIs(t, err, ErrTenantNotActive)
}

func TestResolverInactiveUser(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)
	f.users[aliceId].IsActive = false

	_, err := newTestResolver(f).IsGranted(context.Background(), tenantId, aliceId, "Docs.Edit", nil)
	assert.ErrorIs(t, err, ErrUserNotActive)
}

func TestResolverLockedOutUser(t *testing.T) {
	f := newFakeStore()
	tenantId := seedAlice(f)
	until := time.Now().Add(time.Hour)
	f.users[aliceId].LockoutEndUtc = &until

	_, err := newTestResolver(f).IsGranted(context.Background(), tenantId, aliceId, "Docs.Edit", nil)
	assert.ErrorIs(t, err, ErrUserLockedOut)
}

func TestResolverHostPartition(t *testing.T) {
	f := newFakeStore()
	host := &model.User{UserName: "root", IsActive: true}
	host.ID = aliceId
	f.users[aliceId] = host
	f.userRoles[aliceId] = []int64{editorRole}
	f.grantRole(editorRole, "Docs.Edit")

	// nil tenant id is the host partition; no tenant lookup happens
	granted, err := newTestResolver(f).IsGranted(context.Background(), nil, aliceId, "Docs.Edit", nil)
	require.NoError(t, err)
	assert.True(t, granted)
}
