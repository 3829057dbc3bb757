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
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/go-arcade/authcenter/internal/authcenter/consts"
	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/pkg/database"
)

func newMockDB(t *testing.T) (database.IDatabase, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "t_",
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	return database.NewGormDB(db), mock
}

func TestUpdateRoleStampedStaleWrite(t *testing.T) {
	db, mock := newMockDB(t)
	roles := NewRoleRepo(db)
	tenantId := int64(5)

	// no row matches the stale stamp
	mock.ExpectExec("UPDATE `t_role` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := roles.UpdateRoleStamped(&tenantId, 1, "stale-stamp", map[string]any{
		"display_name": "Publisher",
	})
	assert.ErrorIs(t, err, ErrStaleWrite)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoleStampedSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	roles := NewRoleRepo(db)
	tenantId := int64(5)

	mock.ExpectExec("UPDATE `t_role` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := roles.UpdateRoleStamped(&tenantId, 1, "current-stamp", map[string]any{
		"display_name": "Publisher",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserStampedStaleWrite(t *testing.T) {
	db, mock := newMockDB(t)
	users := NewUserRepo(db)
	tenantId := int64(5)

	mock.ExpectExec("UPDATE `t_user` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := users.UpdateUserStamped(&tenantId, 1, "stale-stamp", map[string]any{
		"name": "Alice",
	})
	assert.ErrorIs(t, err, ErrStaleWrite)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserScopesHostPartition(t *testing.T) {
	db, mock := newMockDB(t)
	users := NewUserRepo(db)

	// nil tenant id must query the host partition, never an unscoped table
	mock.ExpectQuery("SELECT \\* FROM `t_user` WHERE tenant_id IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := users.GetUserById(nil, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserScopesTenantPartition(t *testing.T) {
	db, mock := newMockDB(t)
	users := NewUserRepo(db)
	tenantId := int64(5)

	mock.ExpectQuery("SELECT \\* FROM `t_user` WHERE tenant_id = \\?").
		WithArgs(tenantId, 0, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "user_name", "is_active"}).
			AddRow(7, 5, "alice", true))

	user, err := users.GetUserById(&tenantId, 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	require.NotNil(t, user.TenantId)
	assert.Equal(t, tenantId, *user.TenantId)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAncestorsOfReturnsRootFirst(t *testing.T) {
	db, mock := newMockDB(t)
	units := NewOrganizationUnitRepo(db)
	tenantId := int64(5)

	mock.ExpectQuery("SELECT \\* FROM `t_organization_unit` WHERE tenant_id = \\? AND is_deleted = \\? AND code IN \\(\\?,\\?\\) ORDER BY code ASC").
		WithArgs(tenantId, 0, "00001.00002", "00001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}).
			AddRow(1, "00001").
			AddRow(2, "00001.00002"))

	got, err := units.AncestorsOf(&tenantId, "00001.00002.00003")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "00001", got[0].Code)
	assert.Equal(t, "00001.00002", got[1].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPermissionUpsertsInOneStatement(t *testing.T) {
	db, mock := newMockDB(t)
	settings := NewPermissionSettingRepo(db)
	tenantId := int64(5)

	mock.ExpectExec("INSERT INTO `t_permission_setting` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := settings.SetPermission(&model.PermissionSetting{
		TenantId:  &tenantId,
		OwnerKind: consts.SettingOwnerRole,
		OwnerId:   3,
		Name:      "AdminCenter.Users",
		IsGranted: true,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRoleByNameUsesNormalizedName(t *testing.T) {
	db, mock := newMockDB(t)
	roles := NewRoleRepo(db)
	tenantId := int64(5)

	mock.ExpectQuery("SELECT \\* FROM `t_role` WHERE tenant_id = \\?").
		WithArgs(tenantId, 0, "EDITOR").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "normalized_name"}).
			AddRow(3, 5, "Editor", "EDITOR"))

	role, err := roles.GetRoleByName(&tenantId, "editor")
	require.NoError(t, err)
	assert.Equal(t, "Editor", role.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
