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
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-arcade/authcenter/internal/authcenter/consts"
	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
)

// In-memory stores backing the service tests. They ignore tenant scoping
// on purpose, each test seeds a single partition.

type fakeRoleRepo struct {
	seq   int64
	roles map[int64]*model.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[int64]*model.Role{}}
}

func (f *fakeRoleRepo) CreateRole(role *model.Role) error {
	f.seq++
	role.ID = f.seq
	cp := *role
	f.roles[role.ID] = &cp
	return nil
}

func (f *fakeRoleRepo) GetRoleById(_ *int64, id int64) (*model.Role, error) {
	r, ok := f.roles[id]
	if !ok || r.IsDeleted {
		return nil, repo.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoleRepo) GetRoleByName(_ *int64, name string) (*model.Role, error) {
	for _, r := range f.roles {
		if !r.IsDeleted && r.NormalizedName == strings.ToUpper(name) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRoleRepo) GetRolesByIds(_ *int64, ids []int64) ([]model.Role, error) {
	var out []model.Role
	for _, id := range ids {
		if r, ok := f.roles[id]; ok && !r.IsDeleted {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoleRepo) ListRoles(_ *int64, _, _ int) ([]model.Role, int64, error) {
	var out []model.Role
	for _, r := range f.roles {
		if !r.IsDeleted {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRoleRepo) DefaultRoleIds(_ *int64) ([]int64, error) {
	var ids []int64
	for _, r := range f.roles {
		if !r.IsDeleted && r.IsDefault {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (f *fakeRoleRepo) UpdateRoleStamped(_ *int64, id int64, stamp string, updates map[string]any) error {
	r, ok := f.roles[id]
	if !ok || r.IsDeleted || r.ConcurrencyStamp != stamp {
		return repo.ErrStaleWrite
	}
	if v, ok := updates["name"]; ok {
		r.Name = v.(string)
	}
	if v, ok := updates["normalized_name"]; ok {
		r.NormalizedName = v.(string)
	}
	if v, ok := updates["display_name"]; ok {
		r.DisplayName = v.(string)
	}
	if v, ok := updates["is_default"]; ok {
		r.IsDefault = v.(bool)
	}
	if v, ok := updates["concurrency_stamp"]; ok {
		r.ConcurrencyStamp = v.(string)
	}
	return nil
}

func (f *fakeRoleRepo) DeleteRole(_ *int64, id int64, _ *int64) error {
	r, ok := f.roles[id]
	if !ok || r.IsDeleted {
		return repo.ErrNotFound
	}
	r.IsDeleted = true
	return nil
}

type fakeUserRepo struct {
	seq       int64
	users     map[int64]*model.User
	userRoles []model.UserRole
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(user *model.User) error {
	user.SetNormalizedNames()
	f.seq++
	user.ID = f.seq
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetUserById(_ *int64, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok || u.IsDeleted {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetUserByUserName(_ *int64, userName string) (*model.User, error) {
	for _, u := range f.users {
		if !u.IsDeleted && u.NormalizedUserName == strings.ToUpper(userName) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) ListUsers(_ *int64, _, _ int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range f.users {
		if !u.IsDeleted {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) applyUserUpdates(u *model.User, updates map[string]any) {
	if v, ok := updates["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := updates["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := updates["is_active"]; ok {
		u.IsActive = v.(bool)
	}
	if v, ok := updates["concurrency_stamp"]; ok {
		u.ConcurrencyStamp = v.(string)
	}
	if v, ok := updates["access_failed_count"]; ok {
		u.AccessFailedCount = v.(int)
	}
	if v, ok := updates["lockout_end_utc"]; ok {
		if v == nil {
			u.LockoutEndUtc = nil
		} else {
			t := v.(time.Time)
			u.LockoutEndUtc = &t
		}
	}
}

func (f *fakeUserRepo) UpdateUserStamped(_ *int64, id int64, stamp string, updates map[string]any) error {
	u, ok := f.users[id]
	if !ok || u.IsDeleted || u.ConcurrencyStamp != stamp {
		return repo.ErrStaleWrite
	}
	f.applyUserUpdates(u, updates)
	return nil
}

func (f *fakeUserRepo) UpdateUserById(_ *int64, id int64, updates map[string]any) error {
	u, ok := f.users[id]
	if !ok || u.IsDeleted {
		return repo.ErrNotFound
	}
	f.applyUserUpdates(u, updates)
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ *int64, id int64, _ *int64) error {
	u, ok := f.users[id]
	if !ok || u.IsDeleted {
		return repo.ErrNotFound
	}
	u.IsDeleted = true
	return nil
}

func (f *fakeUserRepo) AssignRole(assignment *model.UserRole) error {
	for _, ur := range f.userRoles {
		if ur.UserId == assignment.UserId && ur.RoleId == assignment.RoleId {
			return repo.ErrDuplicateAssignment
		}
	}
	f.userRoles = append(f.userRoles, *assignment)
	return nil
}

func (f *fakeUserRepo) RevokeRole(_ *int64, userId, roleId int64) error {
	for i, ur := range f.userRoles {
		if ur.UserId == userId && ur.RoleId == roleId {
			f.userRoles = append(f.userRoles[:i], f.userRoles[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeUserRepo) RoleIdsOfUser(_ *int64, userId int64) ([]int64, error) {
	var ids []int64
	for _, ur := range f.userRoles {
		if ur.UserId == userId {
			ids = append(ids, ur.RoleId)
		}
	}
	return ids, nil
}

func (f *fakeUserRepo) UserIdsInRole(_ *int64, roleId int64) ([]int64, error) {
	var ids []int64
	for _, ur := range f.userRoles {
		if ur.RoleId == roleId {
			ids = append(ids, ur.UserId)
		}
	}
	return ids, nil
}

type fakeUnitRepo struct {
	seq       int64
	units     map[int64]*model.OrganizationUnit
	members   []model.UserOrganizationUnit
	unitRoles []model.OrganizationUnitRole
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: map[int64]*model.OrganizationUnit{}}
}

func (f *fakeUnitRepo) CreateUnit(unit *model.OrganizationUnit) error {
	f.seq++
	unit.ID = f.seq
	cp := *unit
	f.units[unit.ID] = &cp
	return nil
}

func (f *fakeUnitRepo) GetUnitById(_ *int64, id int64) (*model.OrganizationUnit, error) {
	u, ok := f.units[id]
	if !ok || u.IsDeleted {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUnitRepo) ListUnits(_ *int64) ([]model.OrganizationUnit, error) {
	var out []model.OrganizationUnit
	for _, u := range f.units {
		if !u.IsDeleted {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeUnitRepo) ChildrenOf(_ *int64, parentId *int64) ([]model.OrganizationUnit, error) {
	var out []model.OrganizationUnit
	for _, u := range f.units {
		if u.IsDeleted {
			continue
		}
		if parentId == nil && u.ParentId == nil {
			out = append(out, *u)
		} else if parentId != nil && u.ParentId != nil && *u.ParentId == *parentId {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUnitRepo) NextChildCode(_ *int64, parentCode string) (string, error) {
	max := int64(0)
	for _, u := range f.units {
		if model.ParentCodeOf(u.Code) != parentCode {
			continue
		}
		n, err := strconv.ParseInt(model.LastCodeSegment(u.Code), 10, 64)
		if err != nil {
			return "", err
		}
		if n > max {
			max = n
		}
	}
	return model.AppendCode(parentCode, model.CreateCode(max+1)), nil
}

func (f *fakeUnitRepo) DescendantsOf(_ *int64, code string) ([]model.OrganizationUnit, error) {
	var out []model.OrganizationUnit
	for _, u := range f.units {
		if !u.IsDeleted && model.IsChildCodeOf(u.Code, code) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUnitRepo) MoveSubtree(_ *int64, unitId int64, newParentId *int64, newCode string) error {
	unit, ok := f.units[unitId]
	if !ok || unit.IsDeleted {
		return repo.ErrNotFound
	}
	oldCode := unit.Code
	unit.ParentId = newParentId
	unit.Code = newCode
	for _, u := range f.units {
		if u.ID != unitId && model.IsChildCodeOf(u.Code, oldCode) {
			u.Code = newCode + u.Code[len(oldCode):]
		}
	}
	return nil
}

func (f *fakeUnitRepo) UpdateUnitById(_ *int64, id int64, updates map[string]any) error {
	u, ok := f.units[id]
	if !ok || u.IsDeleted {
		return repo.ErrNotFound
	}
	if v, ok := updates["display_name"]; ok {
		u.DisplayName = v.(string)
	}
	return nil
}

func (f *fakeUnitRepo) DeleteUnit(_ *int64, id int64, _ *int64) error {
	u, ok := f.units[id]
	if !ok || u.IsDeleted {
		return repo.ErrNotFound
	}
	u.IsDeleted = true
	return nil
}

func (f *fakeUnitRepo) AddMember(member *model.UserOrganizationUnit) error {
	for _, m := range f.members {
		if m.UserId == member.UserId && m.OrganizationUnitId == member.OrganizationUnitId {
			return repo.ErrDuplicateAssignment
		}
	}
	f.members = append(f.members, *member)
	return nil
}

func (f *fakeUnitRepo) RemoveMember(_ *int64, userId, unitId int64) error {
	for i, m := range f.members {
		if m.UserId == userId && m.OrganizationUnitId == unitId {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeUnitRepo) UnitIdsOfUser(_ *int64, userId int64) ([]int64, error) {
	var ids []int64
	for _, m := range f.members {
		if m.UserId == userId {
			ids = append(ids, m.OrganizationUnitId)
		}
	}
	return ids, nil
}

func (f *fakeUnitRepo) UnitsOfUser(tenantId *int64, userId int64) ([]model.OrganizationUnit, error) {
	ids, _ := f.UnitIdsOfUser(tenantId, userId)
	var out []model.OrganizationUnit
	for _, id := range ids {
		if u, ok := f.units[id]; ok && !u.IsDeleted {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUnitRepo) AncestorsOf(_ *int64, code string) ([]model.OrganizationUnit, error) {
	var codes []string
	for c := model.ParentCodeOf(code); c != ""; c = model.ParentCodeOf(c) {
		codes = append(codes, c)
	}
	var out []model.OrganizationUnit
	for i := len(codes) - 1; i >= 0; i-- {
		for _, u := range f.units {
			if !u.IsDeleted && u.Code == codes[i] {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

func (f *fakeUnitRepo) UserIdsInUnit(_ *int64, unitId int64) ([]int64, error) {
	var ids []int64
	for _, m := range f.members {
		if m.OrganizationUnitId == unitId {
			ids = append(ids, m.UserId)
		}
	}
	return ids, nil
}

func (f *fakeUnitRepo) AttachRole(attachment *model.OrganizationUnitRole) error {
	for _, ur := range f.unitRoles {
		if ur.OrganizationUnitId == attachment.OrganizationUnitId && ur.RoleId == attachment.RoleId {
			return repo.ErrDuplicateAssignment
		}
	}
	f.unitRoles = append(f.unitRoles, *attachment)
	return nil
}

func (f *fakeUnitRepo) DetachRole(_ *int64, unitId, roleId int64) error {
	for i, ur := range f.unitRoles {
		if ur.OrganizationUnitId == unitId && ur.RoleId == roleId {
			f.unitRoles = append(f.unitRoles[:i], f.unitRoles[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeUnitRepo) RoleIdsOfUnits(_ *int64, unitIds []int64) ([]int64, error) {
	seen := map[int64]struct{}{}
	var out []int64
	for _, id := range unitIds {
		for _, ur := range f.unitRoles {
			if ur.OrganizationUnitId != id {
				continue
			}
			if _, ok := seen[ur.RoleId]; !ok {
				seen[ur.RoleId] = struct{}{}
				out = append(out, ur.RoleId)
			}
		}
	}
	return out, nil
}

// seedAdminUser creates the reserved admin user with the static Admin role.
func seedAdminUser(users *fakeUserRepo, roles *fakeRoleRepo, tenantId int64) (*model.User, *model.Role) {
	adminRole := model.NewRole(&tenantId, consts.AdminRoleName, consts.AdminRoleName)
	adminRole.IsStatic = true
	_ = roles.CreateRole(adminRole)

	adminUser := model.NewTenantAdminUser(tenantId)
	_ = users.CreateUser(adminUser)
	_ = users.AssignRole(&model.UserRole{TenantId: &tenantId, UserId: adminUser.ID, RoleId: adminRole.ID})
	return adminUser, adminRole
}
