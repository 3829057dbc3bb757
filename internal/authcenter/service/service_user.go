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
	"strings"
	"time"

	"github.com/go-arcade/authcenter/internal/authcenter/consts"
	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
	"github.com/go-arcade/authcenter/pkg/id"
	"github.com/go-arcade/authcenter/pkg/log"
)

type UserService struct {
	userRepo repo.IUserRepository
	roleRepo repo.IRoleRepository

	// LockoutThreshold failed accesses open a LockoutDuration window.
	LockoutThreshold int
	LockoutDuration  time.Duration
}

func NewUserService(userRepo repo.IUserRepository, roleRepo repo.IRoleRepository) *UserService {
	return &UserService{
		userRepo:         userRepo,
		roleRepo:         roleRepo,
		LockoutThreshold: 5,
		LockoutDuration:  5 * time.Minute,
	}
}

// AddUser creates a user in the given tenant partition. The user name must
// be unique (case-insensitive) within the tenant.
func (us *UserService) AddUser(tenantId *int64, req *model.AddUserRequest, creatorUserId *int64) (*model.User, error) {
	if req.UserName == "" {
		return nil, errors.New("user name is required")
	}
	if _, err := us.userRepo.GetUserByUserName(tenantId, req.UserName); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	user := &model.User{
		TenantId:         tenantId,
		UserName:         req.UserName,
		Name:             req.Name,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Password:         req.Password,
		SecurityStamp:    id.GetUUID(),
		ConcurrencyStamp: id.NewStamp(),
		IsLockoutEnabled: true,
		IsActive:         true,
	}
	user.CreatorUserId = creatorUserId
	if err := us.userRepo.CreateUser(user); err != nil {
		log.Errorw("failed to create user", "userName", req.UserName, "error", err)
		return nil, err
	}

	// new users start with the tenant's default roles
	defaultRoleIds, err := us.roleRepo.DefaultRoleIds(tenantId)
	if err != nil {
		return nil, err
	}
	for _, roleId := range defaultRoleIds {
		if err := us.userRepo.AssignRole(&model.UserRole{
			TenantId:      tenantId,
			UserId:        user.ID,
			RoleId:        roleId,
			CreatorUserId: creatorUserId,
		}); err != nil {
			return nil, err
		}
	}
	log.Infow("user created", "userId", user.ID, "userName", user.UserName)
	return user, nil
}

// GetUser fetches a user by id
func (us *UserService) GetUser(tenantId *int64, id int64) (*model.User, error) {
	return us.userRepo.GetUserById(tenantId, id)
}

// GetUserByUserName fetches a user by name, case-insensitively
func (us *UserService) GetUserByUserName(tenantId *int64, userName string) (*model.User, error) {
	return us.userRepo.GetUserByUserName(tenantId, userName)
}

// ListUsers lists users of a tenant with pagination
func (us *UserService) ListUsers(tenantId *int64, pageNum, pageSize int) ([]model.User, int64, error) {
	return us.userRepo.ListUsers(tenantId, pageNum, pageSize)
}

// UpdateUser updates mutable user fields under the optimistic-concurrency
// stamp; a stale stamp returns repo.ErrStaleWrite and nothing is written.
func (us *UserService) UpdateUser(tenantId *int64, userId int64, req *model.UpdateUserRequest, modifierUserId *int64) error {
	user, err := us.userRepo.GetUserById(tenantId, userId)
	if err != nil {
		return err
	}
	if req.IsActive != nil && !*req.IsActive && user.IsAdmin() {
		return ErrAdminUserProtected
	}

	updates := map[string]any{
		"concurrency_stamp":     id.NewStamp(),
		"last_modifier_user_id": modifierUserId,
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	return us.userRepo.UpdateUserStamped(tenantId, userId, req.ConcurrencyStamp, updates)
}

// DeleteUser soft-deletes a user; the reserved admin user is protected
func (us *UserService) DeleteUser(tenantId *int64, userId int64, deleterUserId *int64) error {
	user, err := us.userRepo.GetUserById(tenantId, userId)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return ErrAdminUserProtected
	}
	if err := us.userRepo.DeleteUser(tenantId, userId, deleterUserId); err != nil {
		return err
	}
	log.Infow("user deleted", "userId", userId)
	return nil
}

// AssignRole assigns a role to a user; both must live in the same tenant
// partition.
func (us *UserService) AssignRole(tenantId *int64, userId, roleId int64, grantedBy *int64) error {
	if _, err := us.userRepo.GetUserById(tenantId, userId); err != nil {
		return err
	}
	if _, err := us.roleRepo.GetRoleById(tenantId, roleId); err != nil {
		return err
	}
	return us.userRepo.AssignRole(&model.UserRole{
		TenantId:      tenantId,
		UserId:        userId,
		RoleId:        roleId,
		CreatorUserId: grantedBy,
	})
}

// RevokeRole removes a role from a user. The admin user keeps its Admin
// role.
func (us *UserService) RevokeRole(tenantId *int64, userId, roleId int64) error {
	user, err := us.userRepo.GetUserById(tenantId, userId)
	if err != nil {
		return err
	}
	role, err := us.roleRepo.GetRoleById(tenantId, roleId)
	if err != nil {
		return err
	}
	if user.IsAdmin() && strings.EqualFold(role.Name, consts.AdminRoleName) {
		return ErrAdminUserProtected
	}
	return us.userRepo.RevokeRole(tenantId, userId, roleId)
}

// RolesOfUser returns the roles assigned directly to a user
func (us *UserService) RolesOfUser(tenantId *int64, userId int64) ([]model.Role, error) {
	roleIds, err := us.userRepo.RoleIdsOfUser(tenantId, userId)
	if err != nil {
		return nil, err
	}
	return us.roleRepo.GetRolesByIds(tenantId, roleIds)
}

// RecordAccessFailed bumps the failure counter and opens the lockout window
// once the threshold is hit.
func (us *UserService) RecordAccessFailed(tenantId *int64, userId int64) error {
	user, err := us.userRepo.GetUserById(tenantId, userId)
	if err != nil {
		return err
	}
	failed := user.AccessFailedCount + 1
	updates := map[string]any{
		"access_failed_count": failed,
	}
	if user.IsLockoutEnabled && failed >= us.LockoutThreshold {
		until := time.Now().Add(us.LockoutDuration)
		updates["lockout_end_utc"] = until
		updates["access_failed_count"] = 0
		log.Warnw("user locked out", "userId", userId, "until", until)
	}
	return us.userRepo.UpdateUserById(tenantId, userId, updates)
}

// UnlockUser clears the lockout window and failure counter
func (us *UserService) UnlockUser(tenantId *int64, userId int64) error {
	return us.userRepo.UpdateUserById(tenantId, userId, map[string]any{
		"access_failed_count": 0,
		"lockout_end_utc":     nil,
	})
}
