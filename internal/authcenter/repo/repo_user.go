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
	"strings"
	"time"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/pkg/database"
)

type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserById(tenantId *int64, id int64) (*model.User, error)
	GetUserByUserName(tenantId *int64, userName string) (*model.User, error)
	ListUsers(tenantId *int64, pageNum, pageSize int) ([]model.User, int64, error)
	UpdateUserStamped(tenantId *int64, id int64, stamp string, updates map[string]any) error
	UpdateUserById(tenantId *int64, id int64, updates map[string]any) error
	DeleteUser(tenantId *int64, id int64, deleterUserId *int64) error

	AssignRole(assignment *model.UserRole) error
	RevokeRole(tenantId *int64, userId, roleId int64) error
	RoleIdsOfUser(tenantId *int64, userId int64) ([]int64, error)
	UserIdsInRole(tenantId *int64, roleId int64) ([]int64, error)
}

type UserRepo struct {
	database.IDatabase
}

func NewUserRepo(db database.IDatabase) IUserRepository {
	return &UserRepo{
		IDatabase: db,
	}
}

// CreateUser creates a user
func (r *UserRepo) CreateUser(user *model.User) error {
	user.SetNormalizedNames()
	if err := r.Database().Create(user).Error; err != nil {
		return err
	}
	return nil
}

// GetUserById fetches a user inside one tenant partition
func (r *UserRepo) GetUserById(tenantId *int64, id int64) (*model.User, error) {
	var user model.User
	err := r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// GetUserByUserName looks a user up case-insensitively via the normalized name
func (r *UserRepo) GetUserByUserName(tenantId *int64, userName string) (*model.User, error) {
	var user model.User
	err := r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Where("normalized_user_name = ?", strings.ToUpper(userName)).First(&user).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// ListUsers lists users of one tenant with pagination
func (r *UserRepo) ListUsers(tenantId *int64, pageNum, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var count int64
	offset := (pageNum - 1) * pageSize

	if err := r.Database().Model(&model.User{}).
		Scopes(tenantScope(tenantId), notDeleted).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

// UpdateUserStamped applies updates only if the stored concurrency stamp
// still matches the one the caller read. Zero matched rows means a
// concurrent writer got there first.
func (r *UserRepo) UpdateUserStamped(tenantId *int64, id int64, stamp string, updates map[string]any) error {
	res := r.Database().Model(&model.User{}).
		Scopes(tenantScope(tenantId), notDeleted).
		Where("id = ? AND concurrency_stamp = ?", id, stamp).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleWrite
	}
	return nil
}

// UpdateUserById updates user fields without a stamp check, for internal
// bookkeeping writes (lockout counters and similar)
func (r *UserRepo) UpdateUserById(tenantId *int64, id int64, updates map[string]any) error {
	res := r.Database().Model(&model.User{}).
		Scopes(tenantScope(tenantId), notDeleted).
		Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser soft-deletes a user and drops its assignment rows
func (r *UserRepo) DeleteUser(tenantId *int64, id int64, deleterUserId *int64) error {
	updates := map[string]any{
		"is_deleted":      1,
		"deleter_user_id": deleterUserId,
		"deletion_time":   time.Now(),
	}
	res := r.Database().Model(&model.User{}).
		Scopes(tenantScope(tenantId), notDeleted).
		Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	if err := r.Database().Scopes(tenantScope(tenantId)).
		Where("user_id = ?", id).Delete(&model.UserRole{}).Error; err != nil {
		return err
	}
	return r.Database().Scopes(tenantScope(tenantId)).
		Where("user_id = ?", id).Delete(&model.UserOrganizationUnit{}).Error
}

// AssignRole adds a user-role row; assigning twice is an error
func (r *UserRepo) AssignRole(assignment *model.UserRole) error {
	var count int64
	if err := r.Database().Model(&model.UserRole{}).
		Scopes(tenantScope(assignment.TenantId)).
		Where("user_id = ? AND role_id = ?", assignment.UserId, assignment.RoleId).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateAssignment
	}
	return r.Database().Create(assignment).Error
}

// RevokeRole removes a user-role row
func (r *UserRepo) RevokeRole(tenantId *int64, userId, roleId int64) error {
	res := r.Database().Scopes(tenantScope(tenantId)).
		Where("user_id = ? AND role_id = ?", userId, roleId).
		Delete(&model.UserRole{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RoleIdsOfUser returns the ids of roles assigned directly to the user
func (r *UserRepo) RoleIdsOfUser(tenantId *int64, userId int64) ([]int64, error) {
	var roleIds []int64
	err := r.Database().Model(&model.UserRole{}).
		Scopes(tenantScope(tenantId)).
		Where("user_id = ?", userId).
		Pluck("role_id", &roleIds).Error
	return roleIds, err
}

// UserIdsInRole returns the ids of users holding the role directly
func (r *UserRepo) UserIdsInRole(tenantId *int64, roleId int64) ([]int64, error) {
	var userIds []int64
	err := r.Database().Model(&model.UserRole{}).
		Scopes(tenantScope(tenantId)).
		Where("role_id = ?", roleId).
		Pluck("user_id", &userIds).Error
	return userIds, err
}
