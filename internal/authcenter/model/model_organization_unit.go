package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/authcenter/internal/authcenter/consts"
)

/**
 * @file: model_organization_unit.go
 * @description: organization unit tree. Hierarchy is materialized in Code:
 *               dot-separated fixed-width segments ("00001.00002"), so
 *               ancestor and descendant queries are string prefix matches.
 */

type OrganizationUnit struct {
	BaseModel
	AuditFields
	SoftDelete
	TenantId    *int64 `gorm:"column:tenant_id;index:idx_ou_tenant_code,priority:1" json:"tenantId,omitempty"`
	ParentId    *int64 `gorm:"column:parent_id;index" json:"parentId,omitempty"`
	Code        string `gorm:"column:code;size:95;not null;index:idx_ou_tenant_code,priority:2" json:"code"`
	DisplayName string `gorm:"column:display_name;size:128;not null" json:"displayName"`
}

func (OrganizationUnit) TableName() string {
	return "t_organization_unit"
}

// Depth is the number of code segments, i.e. the unit's level in the tree.
func (ou *OrganizationUnit) Depth() int {
	return strings.Count(ou.Code, consts.OrgUnitCodeSeparator) + 1
}

// CreateCode builds a unit code out of per-level ordinals.
func CreateCode(numbers ...int64) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, fmt.Sprintf("%0*d", consts.OrgUnitCodeUnitLength, n))
	}
	return strings.Join(parts, consts.OrgUnitCodeSeparator)
}

// AppendCode joins a parent code and a relative code. An empty parent code
// means a root unit.
func AppendCode(parentCode, childCode string) string {
	if parentCode == "" {
		return childCode
	}
	return parentCode + consts.OrgUnitCodeSeparator + childCode
}

// ParentCodeOf returns the code of the parent unit, or "" for a root code.
func ParentCodeOf(code string) string {
	i := strings.LastIndex(code, consts.OrgUnitCodeSeparator)
	if i < 0 {
		return ""
	}
	return code[:i]
}

// LastCodeSegment returns the trailing segment of a code.
func LastCodeSegment(code string) string {
	i := strings.LastIndex(code, consts.OrgUnitCodeSeparator)
	if i < 0 {
		return code
	}
	return code[i+len(consts.OrgUnitCodeSeparator):]
}

// IsChildCodeOf reports whether code sits strictly under parentCode.
func IsChildCodeOf(code, parentCode string) bool {
	return code != parentCode && strings.HasPrefix(code, parentCode+consts.OrgUnitCodeSeparator)
}

// UserOrganizationUnit places a user in one organization unit.
type UserOrganizationUnit struct {
	ID                 int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TenantId           *int64    `gorm:"column:tenant_id;uniqueIndex:idx_user_ou,priority:1" json:"tenantId,omitempty"`
	UserId             int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_ou,priority:2;index" json:"userId"`
	OrganizationUnitId int64     `gorm:"column:organization_unit_id;not null;uniqueIndex:idx_user_ou,priority:3;index" json:"organizationUnitId"`
	CreatorUserId      *int64    `gorm:"column:creator_user_id" json:"-"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (UserOrganizationUnit) TableName() string {
	return "t_user_organization_unit"
}

// OrganizationUnitRole attaches a role to an organization unit; members of
// the unit inherit the role.
type OrganizationUnitRole struct {
	ID                 int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TenantId           *int64    `gorm:"column:tenant_id;uniqueIndex:idx_ou_role,priority:1" json:"tenantId,omitempty"`
	OrganizationUnitId int64     `gorm:"column:organization_unit_id;not null;uniqueIndex:idx_ou_role,priority:2;index" json:"organizationUnitId"`
	RoleId             int64     `gorm:"column:role_id;not null;uniqueIndex:idx_ou_role,priority:3;index" json:"roleId"`
	CreatorUserId      *int64    `gorm:"column:creator_user_id" json:"-"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (OrganizationUnitRole) TableName() string {
	return "t_organization_unit_role"
}

// CreateOrganizationUnitRequest request for creating an organization unit
type CreateOrganizationUnitRequest struct {
	ParentId    *int64 `json:"parentId"`
	DisplayName string `json:"displayName"`
}

// MoveOrganizationUnitRequest request for re-parenting a unit
type MoveOrganizationUnitRequest struct {
	NewParentId *int64 `json:"newParentId"`
}
