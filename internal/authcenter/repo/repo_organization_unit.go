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
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/go-arcade/authcenter/internal/authcenter/consts"
	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/pkg/database"
)

type IOrganizationUnitRepository interface {
	CreateUnit(unit *model.OrganizationUnit) error
	GetUnitById(tenantId *int64, id int64) (*model.OrganizationUnit, error)
	ListUnits(tenantId *int64) ([]model.OrganizationUnit, error)
	ChildrenOf(tenantId *int64, parentId *int64) ([]model.OrganizationUnit, error)
	NextChildCode(tenantId *int64, parentCode string) (string, error)
	DescendantsOf(tenantId *int64, code string) ([]model.OrganizationUnit, error)
	MoveSubtree(tenantId *int64, unitId int64, newParentId *int64, newCode string) error
	UpdateUnitById(tenantId *int64, id int64, updates map[string]any) error
	DeleteUnit(tenantId *int64, id int64, deleterUserId *int64) error

	AddMember(member *model.UserOrganizationUnit) error
	RemoveMember(tenantId *int64, userId, unitId int64) error
	UnitIdsOfUser(tenantId *int64, userId int64) ([]int64, error)
	UnitsOfUser(tenantId *int64, userId int64) ([]model.OrganizationUnit, error)
	AncestorsOf(tenantId *int64, code string) ([]model.OrganizationUnit, error)
	UserIdsInUnit(tenantId *int64, unitId int64) ([]int64, error)

	AttachRole(attachment *model.OrganizationUnitRole) error
	DetachRole(tenantId *int64, unitId, roleId int64) error
	RoleIdsOfUnits(tenantId *int64, unitIds []int64) ([]int64, error)
}

type OrganizationUnitRepo struct {
	database.IDatabase
}

func NewOrganizationUnitRepo(db database.IDatabase) IOrganizationUnitRepository {
	return &OrganizationUnitRepo{
		IDatabase: db,
	}
}

// CreateUnit creates an organization unit
func (r *OrganizationUnitRepo) CreateUnit(unit *model.OrganizationUnit) error {
	if err := r.Database().Create(unit).Error; err != nil {
		return err
	}
	return nil
}

// GetUnitById fetches a unit inside one tenant partition
func (r *OrganizationUnitRepo) GetUnitById(tenantId *int64, id int64) (*model.OrganizationUnit, error) {
	var unit model.OrganizationUnit
	err := r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Where("id = ?", id).First(&unit).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &unit, nil
}

// ListUnits lists every unit of a tenant in code order, which is
// depth-first tree order.
func (r *OrganizationUnitRepo) ListUnits(tenantId *int64) ([]model.OrganizationUnit, error) {
	var units []model.OrganizationUnit
	err := r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Order("code ASC").
		Find(&units).Error
	return units, err
}

// ChildrenOf lists the direct children of a unit; nil parentId lists the
// root units.
func (r *OrganizationUnitRepo) ChildrenOf(tenantId *int64, parentId *int64) ([]model.OrganizationUnit, error) {
	var units []model.OrganizationUnit
	q := r.Database().Scopes(tenantScope(tenantId), notDeleted)
	if parentId == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentId)
	}
	err := q.Order("code ASC").Find(&units).Error
	return units, err
}

// NextChildCode computes the code for the next child under parentCode by
// taking the highest existing sibling ordinal plus one. Soft-deleted
// siblings still count so their codes are never reused.
func (r *OrganizationUnitRepo) NextChildCode(tenantId *int64, parentCode string) (string, error) {
	var codes []string
	q := r.Database().Model(&model.OrganizationUnit{}).
		Scopes(tenantScope(tenantId))
	if parentCode == "" {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("code LIKE ? AND code NOT LIKE ?",
			parentCode+consts.OrgUnitCodeSeparator+"%",
			parentCode+consts.OrgUnitCodeSeparator+"%"+consts.OrgUnitCodeSeparator+"%")
	}
	if err := q.Order("code DESC").Limit(1).Pluck("code", &codes).Error; err != nil {
		return "", err
	}
	next := int64(1)
	if len(codes) > 0 {
		n, perr := strconv.ParseInt(model.LastCodeSegment(codes[0]), 10, 64)
		if perr != nil {
			return "", perr
		}
		next = n + 1
	}
	return model.AppendCode(parentCode, model.CreateCode(next)), nil
}

// DescendantsOf lists every unit strictly under the given code
func (r *OrganizationUnitRepo) DescendantsOf(tenantId *int64, code string) ([]model.OrganizationUnit, error) {
	var units []model.OrganizationUnit
	err := r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Where("code LIKE ?", code+consts.OrgUnitCodeSeparator+"%").
		Order("code ASC").
		Find(&units).Error
	return units, err
}

// MoveSubtree re-parents a unit and rewrites the codes of its whole
// subtree in one transaction.
func (r *OrganizationUnitRepo) MoveSubtree(tenantId *int64, unitId int64, newParentId *int64, newCode string) error {
	return r.Database().Transaction(func(tx *gorm.DB) error {
		var unit model.OrganizationUnit
		if err := tx.Scopes(tenantScope(tenantId), notDeleted).
			Where("id = ?", unitId).First(&unit).Error; err != nil {
			return translateErr(err)
		}
		oldCode := unit.Code

		var descendants []model.OrganizationUnit
		if err := tx.Scopes(tenantScope(tenantId), notDeleted).
			Where("code LIKE ?", oldCode+consts.OrgUnitCodeSeparator+"%").
			Find(&descendants).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.OrganizationUnit{}).
			Scopes(tenantScope(tenantId)).
			Where("id = ?", unitId).
			Updates(map[string]any{"parent_id": newParentId, "code": newCode}).Error; err != nil {
			return err
		}
		for _, d := range descendants {
			rewritten := newCode + d.Code[len(oldCode):]
			if err := tx.Model(&model.OrganizationUnit{}).
				Scopes(tenantScope(tenantId)).
				Where("id = ?", d.ID).
				Update("code", rewritten).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateUnitById updates unit fields by id
func (r *OrganizationUnitRepo) UpdateUnitById(tenantId *int64, id int64, updates map[string]any) error {
	res := r.Database().Model(&model.OrganizationUnit{}).
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

// DeleteUnit soft-deletes a unit and drops its membership and role rows.
// Callers must delete leaf-up; a unit with live children is rejected at
// the service layer.
func (r *OrganizationUnitRepo) DeleteUnit(tenantId *int64, id int64, deleterUserId *int64) error {
	updates := map[string]any{
		"is_deleted":      1,
		"deleter_user_id": deleterUserId,
		"deletion_time":   time.Now(),
	}
	res := r.Database().Model(&model.OrganizationUnit{}).
		Scopes(tenantScope(tenantId), notDeleted).
		Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	if err := r.Database().Scopes(tenantScope(tenantId)).
		Where("organization_unit_id = ?", id).Delete(&model.UserOrganizationUnit{}).Error; err != nil {
		return err
	}
	return r.Database().Scopes(tenantScope(tenantId)).
		Where("organization_unit_id = ?", id).Delete(&model.OrganizationUnitRole{}).Error
}

// AddMember places a user in a unit; adding twice is an error
func (r *OrganizationUnitRepo) AddMember(member *model.UserOrganizationUnit) error {
	var count int64
	if err := r.Database().Model(&model.UserOrganizationUnit{}).
		Scopes(tenantScope(member.TenantId)).
		Where("user_id = ? AND organization_unit_id = ?", member.UserId, member.OrganizationUnitId).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateAssignment
	}
	return r.Database().Create(member).Error
}

// RemoveMember removes a user from a unit
func (r *OrganizationUnitRepo) RemoveMember(tenantId *int64, userId, unitId int64) error {
	res := r.Database().Scopes(tenantScope(tenantId)).
		Where("user_id = ? AND organization_unit_id = ?", userId, unitId).
		Delete(&model.UserOrganizationUnit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UnitIdsOfUser returns the ids of units the user is a direct member of
func (r *OrganizationUnitRepo) UnitIdsOfUser(tenantId *int64, userId int64) ([]int64, error) {
	var unitIds []int64
	err := r.Database().Model(&model.UserOrganizationUnit{}).
		Scopes(tenantScope(tenantId)).
		Where("user_id = ?", userId).
		Pluck("organization_unit_id", &unitIds).Error
	return unitIds, err
}

// UnitsOfUser returns the units the user is a direct member of
func (r *OrganizationUnitRepo) UnitsOfUser(tenantId *int64, userId int64) ([]model.OrganizationUnit, error) {
	unitIds, err := r.UnitIdsOfUser(tenantId, userId)
	if err != nil {
		return nil, err
	}
	if len(unitIds) == 0 {
		return []model.OrganizationUnit{}, nil
	}
	var units []model.OrganizationUnit
	err = r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Where("id IN ?", unitIds).
		Find(&units).Error
	return units, err
}

// AncestorsOf returns the chain of units above the given code, root first.
// The ancestor codes are the successive prefixes of the code, so ascending
// code order is root-to-parent order.
func (r *OrganizationUnitRepo) AncestorsOf(tenantId *int64, code string) ([]model.OrganizationUnit, error) {
	var codes []string
	for c := model.ParentCodeOf(code); c != ""; c = model.ParentCodeOf(c) {
		codes = append(codes, c)
	}
	if len(codes) == 0 {
		return []model.OrganizationUnit{}, nil
	}
	var units []model.OrganizationUnit
	err := r.Database().Scopes(tenantScope(tenantId), notDeleted).
		Where("code IN ?", codes).
		Order("code ASC").
		Find(&units).Error
	return units, err
}

// UserIdsInUnit returns the ids of direct members of a unit
func (r *OrganizationUnitRepo) UserIdsInUnit(tenantId *int64, unitId int64) ([]int64, error) {
	var userIds []int64
	err := r.Database().Model(&model.UserOrganizationUnit{}).
		Scopes(tenantScope(tenantId)).
		Where("organization_unit_id = ?", unitId).
		Pluck("user_id", &userIds).Error
	return userIds, err
}

// AttachRole attaches a role to a unit; attaching twice is an error
func (r *OrganizationUnitRepo) AttachRole(attachment *model.OrganizationUnitRole) error {
	var count int64
	if err := r.Database().Model(&model.OrganizationUnitRole{}).
		Scopes(tenantScope(attachment.TenantId)).
		Where("organization_unit_id = ? AND role_id = ?", attachment.OrganizationUnitId, attachment.RoleId).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateAssignment
	}
	return r.Database().Create(attachment).Error
}

// DetachRole detaches a role from a unit
func (r *OrganizationUnitRepo) DetachRole(tenantId *int64, unitId, roleId int64) error {
	res := r.Database().Scopes(tenantScope(tenantId)).
		Where("organization_unit_id = ? AND role_id = ?", unitId, roleId).
		Delete(&model.OrganizationUnitRole{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RoleIdsOfUnits returns the distinct role ids attached to any of the units
func (r *OrganizationUnitRepo) RoleIdsOfUnits(tenantId *int64, unitIds []int64) ([]int64, error) {
	if len(unitIds) == 0 {
		return []int64{}, nil
	}
	var roleIds []int64
	err := r.Database().Model(&model.OrganizationUnitRole{}).
		Scopes(tenantScope(tenantId)).
		Where("organization_unit_id IN ?", unitIds).
		Distinct().
		Pluck("role_id", &roleIds).Error
	return roleIds, err
}
