package model

import "time"

/**
 * @file: model_user_role.go
 * @description: user-role assignment
 */

// UserRole links a user to a role inside one tenant partition. The tenant
// id always matches both referenced rows (or is nil on both sides).
type UserRole struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TenantId      *int64    `gorm:"column:tenant_id;uniqueIndex:idx_user_role,priority:1" json:"tenantId,omitempty"`
	UserId        int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_role,priority:2;index" json:"userId"`
	RoleId        int64     `gorm:"column:role_id;not null;uniqueIndex:idx_user_role,priority:3;index" json:"roleId"`
	CreatorUserId *int64    `gorm:"column:creator_user_id" json:"grantedBy,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (UserRole) TableName() string {
	return "t_user_role"
}
