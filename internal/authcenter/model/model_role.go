package model

import (
	"strings"

	"github.com/go-arcade/authcenter/pkg/id"
)

/**
 * @file: model_role.go
 * @description: role model. A role groups permissions; checking "has role"
 *               is only meaningful for static roles, which code may
 *               reference by name.
 */

type Role struct {
	BaseModel
	AuditFields
	SoftDelete
	TenantId       *int64 `gorm:"column:tenant_id;index:idx_role_tenant_name,priority:1" json:"tenantId,omitempty"`
	Name           string `gorm:"column:name;size:32;not null" json:"name"`
	NormalizedName string `gorm:"column:normalized_name;size:32;not null;index:idx_role_tenant_name,priority:2" json:"-"`
	DisplayName    string `gorm:"column:display_name;size:64;not null" json:"displayName"`
	// IsStatic roles cannot be renamed or deleted; they are referenced by
	// name from code.
	IsStatic bool `gorm:"column:is_static;not null;default:0" json:"isStatic"`
	// IsDefault roles are assigned to newly created users automatically.
	IsDefault        bool   `gorm:"column:is_default;not null;default:0" json:"isDefault"`
	ConcurrencyStamp string `gorm:"column:concurrency_stamp;size:128" json:"-"`
}

func (Role) TableName() string {
	return "t_role"
}

// SetNormalizedName recomputes the normalized role name.
func (r *Role) SetNormalizedName() {
	r.NormalizedName = strings.ToUpper(r.Name)
}

// NewRole creates a role in the given tenant partition.
func NewRole(tenantId *int64, name, displayName string) *Role {
	r := &Role{
		TenantId:         tenantId,
		Name:             name,
		DisplayName:      displayName,
		ConcurrencyStamp: id.NewStamp(),
	}
	r.SetNormalizedName()
	return r
}

// CreateRoleRequest request for creating role
type CreateRoleRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	IsDefault   bool   `json:"isDefault"`
}

// UpdateRoleRequest request for updating role. ConcurrencyStamp must be the
// stamp read at load time.
type UpdateRoleRequest struct {
	Name             *string `json:"name,omitempty"`
	DisplayName      *string `json:"displayName,omitempty"`
	IsDefault        *bool   `json:"isDefault,omitempty"`
	ConcurrencyStamp string  `json:"concurrencyStamp"`
}
