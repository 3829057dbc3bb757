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
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/go-arcade/authcenter/internal/authcenter/consts"
	"github.com/go-arcade/authcenter/internal/authcenter/metrics"
	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
	"github.com/go-arcade/authcenter/pkg/cache"
	"github.com/go-arcade/authcenter/pkg/log"
)

// reparentLockTTL bounds how long a crashed mover can hold a tenant's tree.
const reparentLockTTL = 10 * time.Second

type OrganizationUnitService struct {
	unitRepo repo.IOrganizationUnitRepository
	userRepo repo.IUserRepository
	roleRepo repo.IRoleRepository
	rdb      *redis.Client
}

func NewOrganizationUnitService(unitRepo repo.IOrganizationUnitRepository, userRepo repo.IUserRepository,
	roleRepo repo.IRoleRepository, rdb *redis.Client) *OrganizationUnitService {
	return &OrganizationUnitService{
		unitRepo: unitRepo,
		userRepo: userRepo,
		roleRepo: roleRepo,
		rdb:      rdb,
	}
}

func reparentLockKey(tenantId *int64) string {
	if tenantId == nil {
		return "authcenter:oulock:host"
	}
	return fmt.Sprintf("authcenter:oulock:%d", *tenantId)
}

// CreateUnit creates a unit under the given parent (nil = root). The code
// is derived from the highest sibling ordinal.
func (os *OrganizationUnitService) CreateUnit(tenantId *int64, req *model.CreateOrganizationUnitRequest, creatorUserId *int64) (*model.OrganizationUnit, error) {
	parentCode := ""
	if req.ParentId != nil {
		parent, err := os.unitRepo.GetUnitById(tenantId, *req.ParentId)
		if err != nil {
			return nil, err
		}
		if parent.Depth() >= consts.OrgUnitMaxDepth {
			return nil, ErrMaxDepthExceeded
		}
		parentCode = parent.Code
	}

	code, err := os.unitRepo.NextChildCode(tenantId, parentCode)
	if err != nil {
		return nil, err
	}
	unit := &model.OrganizationUnit{
		TenantId:    tenantId,
		ParentId:    req.ParentId,
		Code:        code,
		DisplayName: req.DisplayName,
	}
	unit.CreatorUserId = creatorUserId
	if err := os.unitRepo.CreateUnit(unit); err != nil {
		log.Errorw("failed to create organization unit", "displayName", req.DisplayName, "error", err)
		return nil, err
	}
	log.Infow("organization unit created", "unitId", unit.ID, "code", unit.Code)
	return unit, nil
}

// GetUnit fetches a unit by id
func (os *OrganizationUnitService) GetUnit(tenantId *int64, id int64) (*model.OrganizationUnit, error) {
	return os.unitRepo.GetUnitById(tenantId, id)
}

// ListUnits lists the tenant's whole tree in depth-first order
func (os *OrganizationUnitService) ListUnits(tenantId *int64) ([]model.OrganizationUnit, error) {
	return os.unitRepo.ListUnits(tenantId)
}

// ChildrenOf lists the direct children of a unit (nil = roots)
func (os *OrganizationUnitService) ChildrenOf(tenantId *int64, parentId *int64) ([]model.OrganizationUnit, error) {
	return os.unitRepo.ChildrenOf(tenantId, parentId)
}

// DescendantsOf lists every unit strictly under a unit
func (os *OrganizationUnitService) DescendantsOf(tenantId *int64, unitId int64) ([]model.OrganizationUnit, error) {
	unit, err := os.unitRepo.GetUnitById(tenantId, unitId)
	if err != nil {
		return nil, err
	}
	return os.unitRepo.DescendantsOf(tenantId, unit.Code)
}

// RenameUnit updates the display name
func (os *OrganizationUnitService) RenameUnit(tenantId *int64, unitId int64, displayName string, modifierUserId *int64) error {
	return os.unitRepo.UpdateUnitById(tenantId, unitId, map[string]any{
		"display_name":          displayName,
		"last_modifier_user_id": modifierUserId,
	})
}

// MoveUnit re-parents a unit. The whole operation runs under a per-tenant
// advisory lock: the cycle check and the subtree code rewrite must observe
// a stable tree. A move that would place a unit under its own descendant is
// rejected before anything is written.
func (os *OrganizationUnitService) MoveUnit(ctx context.Context, tenantId *int64, unitId int64, req *model.MoveOrganizationUnitRequest, modifierUserId *int64) error {
	mu := cache.NewMutex(os.rdb, reparentLockKey(tenantId), reparentLockTTL)
	if err := mu.Lock(ctx); err != nil {
		return err
	}
	defer func() {
		if err := mu.Unlock(context.WithoutCancel(ctx)); err != nil {
			log.Warnw("failed to release re-parent lock", "error", err)
		}
	}()

	err := os.moveLocked(tenantId, unitId, req.NewParentId, modifierUserId)
	if err != nil {
		metrics.OrgUnitMoves.WithLabelValues("rejected").Inc()
		return err
	}
	metrics.OrgUnitMoves.WithLabelValues("moved").Inc()
	return nil
}

func (os *OrganizationUnitService) moveLocked(tenantId *int64, unitId int64, newParentId, modifierUserId *int64) error {
	unit, err := os.unitRepo.GetUnitById(tenantId, unitId)
	if err != nil {
		return err
	}

	newParentCode := ""
	if newParentId != nil {
		if *newParentId == unitId {
			return ErrCyclicHierarchy
		}
		parent, perr := os.unitRepo.GetUnitById(tenantId, *newParentId)
		if perr != nil {
			return perr
		}
		if parent.Code == unit.Code || model.IsChildCodeOf(parent.Code, unit.Code) {
			return ErrCyclicHierarchy
		}
		if parent.Depth() >= consts.OrgUnitMaxDepth {
			return ErrMaxDepthExceeded
		}
		newParentCode = parent.Code
	}

	newCode, err := os.unitRepo.NextChildCode(tenantId, newParentCode)
	if err != nil {
		return err
	}
	if err := os.unitRepo.MoveSubtree(tenantId, unitId, newParentId, newCode); err != nil {
		log.Errorw("failed to move organization unit", "unitId", unitId, "error", err)
		return err
	}
	if err := os.unitRepo.UpdateUnitById(tenantId, unitId, map[string]any{
		"last_modifier_user_id": modifierUserId,
	}); err != nil {
		return err
	}
	log.Infow("organization unit moved", "unitId", unitId, "newCode", newCode)
	return nil
}

// DeleteUnit soft-deletes a unit; units with live children are rejected
func (os *OrganizationUnitService) DeleteUnit(tenantId *int64, unitId int64, deleterUserId *int64) error {
	children, err := os.unitRepo.ChildrenOf(tenantId, &unitId)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return ErrUnitNotEmpty
	}
	return os.unitRepo.DeleteUnit(tenantId, unitId, deleterUserId)
}

// AddMember places a user in a unit
func (os *OrganizationUnitService) AddMember(tenantId *int64, unitId, userId int64, creatorUserId *int64) error {
	if _, err := os.unitRepo.GetUnitById(tenantId, unitId); err != nil {
		return err
	}
	if _, err := os.userRepo.GetUserById(tenantId, userId); err != nil {
		return err
	}
	return os.unitRepo.AddMember(&model.UserOrganizationUnit{
		TenantId:           tenantId,
		UserId:             userId,
		OrganizationUnitId: unitId,
		CreatorUserId:      creatorUserId,
	})
}

// RemoveMember removes a user from a unit
func (os *OrganizationUnitService) RemoveMember(tenantId *int64, unitId, userId int64) error {
	return os.unitRepo.RemoveMember(tenantId, userId, unitId)
}

// AttachRole attaches a role to a unit; members inherit it
func (os *OrganizationUnitService) AttachRole(tenantId *int64, unitId, roleId int64, creatorUserId *int64) error {
	if _, err := os.unitRepo.GetUnitById(tenantId, unitId); err != nil {
		return err
	}
	if _, err := os.roleRepo.GetRoleById(tenantId, roleId); err != nil {
		return err
	}
	return os.unitRepo.AttachRole(&model.OrganizationUnitRole{
		TenantId:           tenantId,
		OrganizationUnitId: unitId,
		RoleId:             roleId,
		CreatorUserId:      creatorUserId,
	})
}

// DetachRole detaches a role from a unit
func (os *OrganizationUnitService) DetachRole(tenantId *int64, unitId, roleId int64) error {
	return os.unitRepo.DetachRole(tenantId, unitId, roleId)
}

// RolesOfUnit returns the roles attached to a unit, optionally including
// roles attached to its ancestors.
func (os *OrganizationUnitService) RolesOfUnit(tenantId *int64, unitId int64, includeAncestors bool) ([]model.Role, error) {
	unit, err := os.unitRepo.GetUnitById(tenantId, unitId)
	if err != nil {
		return nil, err
	}
	unitIds := []int64{unit.ID}
	if includeAncestors {
		ancestors, aerr := os.unitRepo.AncestorsOf(tenantId, unit.Code)
		if aerr != nil {
			return nil, aerr
		}
		for _, a := range ancestors {
			unitIds = append(unitIds, a.ID)
		}
	}
	roleIds, err := os.unitRepo.RoleIdsOfUnits(tenantId, unitIds)
	if err != nil {
		return nil, err
	}
	return os.roleRepo.GetRolesByIds(tenantId, roleIds)
}

// MembersOfUnit returns the ids of direct members
func (os *OrganizationUnitService) MembersOfUnit(tenantId *int64, unitId int64) ([]int64, error) {
	return os.unitRepo.UserIdsInUnit(tenantId, unitId)
}

// UnitsOfUser returns the units a user belongs to
func (os *OrganizationUnitService) UnitsOfUser(tenantId *int64, userId int64) ([]model.OrganizationUnit, error) {
	return os.unitRepo.UnitsOfUser(tenantId, userId)
}
