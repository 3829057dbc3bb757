package model

/**
 * @file: model_edition.go
 * @description: edition model
 */

// Edition is a named feature tier that tenants can be assigned to.
type Edition struct {
	BaseModel
	AuditFields
	SoftDelete
	Name        string `gorm:"column:name;size:32;not null;uniqueIndex" json:"name"`
	DisplayName string `gorm:"column:display_name;size:64;not null" json:"displayName"`
}

func (Edition) TableName() string {
	return "t_edition"
}
