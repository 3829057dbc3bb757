package model

import "time"

/**
 * @file: model_permission_setting.go
 * @description: permission grant/deny override record
 */

// PermissionSetting records an explicit grant or deny of one permission for
// a role or a user. Absence of a row means "no opinion"; the resolver falls
// through to the next precedence level.
type PermissionSetting struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TenantId *int64 `gorm:"column:tenant_id;uniqueIndex:idx_perm_setting,priority:1" json:"tenantId,omitempty"`
	// OwnerKind is consts.SettingOwnerRole or consts.SettingOwnerUser.
	OwnerKind     string    `gorm:"column:owner_kind;size:8;not null;uniqueIndex:idx_perm_setting,priority:2" json:"ownerKind"`
	OwnerId       int64     `gorm:"column:owner_id;not null;uniqueIndex:idx_perm_setting,priority:3" json:"ownerId"`
	Name          string    `gorm:"column:name;size:128;not null;uniqueIndex:idx_perm_setting,priority:4" json:"name"`
	IsGranted     bool      `gorm:"column:is_granted;not null;default:1" json:"isGranted"`
	CreatorUserId *int64    `gorm:"column:creator_user_id" json:"-"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (PermissionSetting) TableName() string {
	return "t_permission_setting"
}

// SetPermissionRequest request for writing one override
type SetPermissionRequest struct {
	Name      string `json:"name"`
	IsGranted bool   `json:"isGranted"`
}
