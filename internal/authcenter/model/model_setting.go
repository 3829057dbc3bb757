package model

/**
 * @file: model_setting.go
 * @description: scoped key/value settings
 */

// Setting is a key/value pair scoped to the host (both ids nil), a tenant,
// or a single user. The narrowest scope wins on read.
type Setting struct {
	BaseModel
	TenantId *int64 `gorm:"column:tenant_id;uniqueIndex:idx_setting,priority:1" json:"tenantId,omitempty"`
	UserId   *int64 `gorm:"column:user_id;uniqueIndex:idx_setting,priority:2" json:"userId,omitempty"`
	Name     string `gorm:"column:name;size:256;not null;uniqueIndex:idx_setting,priority:3" json:"name"`
	Value    string `gorm:"column:value;type:text" json:"value"`
}

func (Setting) TableName() string {
	return "t_setting"
}
