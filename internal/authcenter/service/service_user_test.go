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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
)

func TestAddUserRejectsDuplicateName(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, newFakeRoleRepo())
	tenantId := int64(1)

	_, err := svc.AddUser(&tenantId, &model.AddUserRequest{UserName: "alice"}, nil)
	require.NoError(t, err)

	_, err = svc.AddUser(&tenantId, &model.AddUserRequest{UserName: "Alice"}, nil)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestUpdateUserStaleStamp(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, newFakeRoleRepo())
	tenantId := int64(1)

	user, err := svc.AddUser(&tenantId, &model.AddUserRequest{UserName: "alice"}, nil)
	require.NoError(t, err)

	name := "Alice A."
	require.NoError(t, svc.UpdateUser(&tenantId, user.ID, &model.UpdateUserRequest{
		Name:             &name,
		ConcurrencyStamp: user.ConcurrencyStamp,
	}, nil))

	err = svc.UpdateUser(&tenantId, user.ID, &model.UpdateUserRequest{
		Name:             &name,
		ConcurrencyStamp: user.ConcurrencyStamp,
	}, nil)
	assert.ErrorIs(t, err, repo.ErrStaleWrite)
}

func TestAdminUserCannotBeDeletedOrDeactivated(t *testing.T) {
	users := newFakeUserRepo()
	roles := newFakeRoleRepo()
	svc := NewUserService(users, roles)
	tenantId := int64(1)
	adminUser, adminRole := seedAdminUser(users, roles, tenantId)

	err := svc.DeleteUser(&tenantId, adminUser.ID, nil)
	assert.ErrorIs(t, err, ErrAdminUserProtected)

	inactive := false
	err = svc.UpdateUser(&tenantId, adminUser.ID, &model.UpdateUserRequest{
		IsActive:         &inactive,
		ConcurrencyStamp: adminUser.ConcurrencyStamp,
	}, nil)
	assert.ErrorIs(t, err, ErrAdminUserProtected)

	err = svc.RevokeRole(&tenantId, adminUser.ID, adminRole.ID)
	assert.ErrorIs(t, err, ErrAdminUserProtected)
}

func TestLockoutOpensAfterThreshold(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, newFakeRoleRepo())
	svc.LockoutThreshold = 3
	svc.LockoutDuration = time.Minute
	tenantId := int64(1)

	user, err := svc.AddUser(&tenantId, &model.AddUserRequest{UserName: "alice"}, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, svc.RecordAccessFailed(&tenantId, user.ID))
		got, gerr := svc.GetUser(&tenantId, user.ID)
		require.NoError(t, gerr)
		assert.False(t, got.IsLockedOut(time.Now()))
	}

	require.NoError(t, svc.RecordAccessFailed(&tenantId, user.ID))
	got, err := svc.GetUser(&tenantId, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsLockedOut(time.Now()))
	assert.Equal(t, 0, got.AccessFailedCount, "counter resets when the window opens")

	require.NoError(t, svc.UnlockUser(&tenantId, user.ID))
	got, err = svc.GetUser(&tenantId, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsLockedOut(time.Now()))
}

func TestAddUserReceivesDefaultRoles(t *testing.T) {
	users := newFakeUserRepo()
	roles := newFakeRoleRepo()
	svc := NewUserService(users, roles)
	tenantId := int64(1)

	member := model.NewRole(&tenantId, "Member", "Member")
	member.IsDefault = true
	require.NoError(t, roles.CreateRole(member))

	user, err := svc.AddUser(&tenantId, &model.AddUserRequest{UserName: "alice"}, nil)
	require.NoError(t, err)

	got, err := svc.RolesOfUser(&tenantId, user.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Member", got[0].Name)
}

func TestAssignRoleTwiceRejected(t *testing.T) {
	users := newFakeUserRepo()
	roles := newFakeRoleRepo()
	svc := NewUserService(users, roles)
	tenantId := int64(1)

	user, err := svc.AddUser(&tenantId, &model.AddUserRequest{UserName: "alice"}, nil)
	require.NoError(t, err)
	role := model.NewRole(&tenantId, "Editor", "Editor")
	require.NoError(t, roles.CreateRole(role))

	require.NoError(t, svc.AssignRole(&tenantId, user.ID, role.ID, nil))
	err = svc.AssignRole(&tenantId, user.ID, role.ID, nil)
	assert.ErrorIs(t, err, repo.ErrDuplicateAssignment)

	got, err := svc.RolesOfUser(&tenantId, user.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Editor", got[0].Name)
}
