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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
)

func TestCreateRoleRejectsDuplicateName(t *testing.T) {
	roles := newFakeRoleRepo()
	svc := NewRoleService(roles)
	tenantId := int64(1)

	_, err := svc.CreateRole(&tenantId, &model.CreateRoleRequest{Name: "Editor", DisplayName: "Editor"}, nil)
	require.NoError(t, err)

	// lookup is case-insensitive
	_, err = svc.CreateRole(&tenantId, &model.CreateRoleRequest{Name: "EDITOR", DisplayName: "Editor"}, nil)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestUpdateRoleStampedWrite(t *testing.T) {
	roles := newFakeRoleRepo()
	svc := NewRoleService(roles)
	tenantId := int64(1)

	role, err := svc.CreateRole(&tenantId, &model.CreateRoleRequest{Name: "Editor", DisplayName: "Editor"}, nil)
	require.NoError(t, err)

	name := "Publisher"
	err = svc.UpdateRole(&tenantId, role.ID, &model.UpdateRoleRequest{
		Name:             &name,
		ConcurrencyStamp: role.ConcurrencyStamp,
	}, nil)
	require.NoError(t, err)

	// the first writer consumed the stamp, a second write with the stale
	// stamp must fail
	display := "Publisher role"
	err = svc.UpdateRole(&tenantId, role.ID, &model.UpdateRoleRequest{
		DisplayName:      &display,
		ConcurrencyStamp: role.ConcurrencyStamp,
	}, nil)
	assert.ErrorIs(t, err, repo.ErrStaleWrite)

	got, err := svc.GetRole(&tenantId, role.ID)
	require.NoError(t, err)
	assert.Equal(t, "Publisher", got.Name)
	assert.NotEqual(t, role.ConcurrencyStamp, got.ConcurrencyStamp, "stamp must rotate on every successful write")
}

func TestStaticRoleCannotBeRenamed(t *testing.T) {
	roles := newFakeRoleRepo()
	svc := NewRoleService(roles)
	tenantId := int64(1)
	_, adminRole := seedAdminUser(newFakeUserRepo(), roles, tenantId)

	name := "SuperAdmin"
	err := svc.UpdateRole(&tenantId, adminRole.ID, &model.UpdateRoleRequest{
		Name:             &name,
		ConcurrencyStamp: adminRole.ConcurrencyStamp,
	}, nil)
	assert.ErrorIs(t, err, ErrStaticRoleImmutable)

	// display name changes are allowed on static roles
	display := "Administrators"
	err = svc.UpdateRole(&tenantId, adminRole.ID, &model.UpdateRoleRequest{
		DisplayName:      &display,
		ConcurrencyStamp: adminRole.ConcurrencyStamp,
	}, nil)
	require.NoError(t, err)
}

func TestStaticRoleCannotBeDeleted(t *testing.T) {
	roles := newFakeRoleRepo()
	svc := NewRoleService(roles)
	tenantId := int64(1)
	_, adminRole := seedAdminUser(newFakeUserRepo(), roles, tenantId)

	err := svc.DeleteRole(&tenantId, adminRole.ID, nil)
	assert.ErrorIs(t, err, ErrStaticRoleImmutable)
}
