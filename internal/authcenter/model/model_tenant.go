package model

/**
 * @file: model_tenant.go
 * @description: tenant model. A tenant is an isolated identity partition;
 *               a nil tenant id anywhere in the schema denotes the host.
 */

type Tenant struct {
	BaseModel
	AuditFields
	SoftDelete
	TenancyName string `gorm:"column:tenancy_name;size:64;not null;uniqueIndex" json:"tenancyName"`
	Name        string `gorm:"column:name;size:128;not null" json:"name"` // display name
	// ConnectionString is the encrypted per-tenant database DSN. Empty when
	// the tenant lives in the host database. Provisioning is out of scope.
	ConnectionString string `gorm:"column:connection_string;size:1024" json:"-"`
	EditionId        *int64 `gorm:"column:edition_id" json:"editionId,omitempty"`
	IsActive         bool   `gorm:"column:is_active;not null;default:1" json:"isActive"`
}

func (Tenant) TableName() string {
	return "t_tenant"
}

// CreateTenantRequest request for creating a tenant
type CreateTenantRequest struct {
	TenancyName string `json:"tenancyName"`
	Name        string `json:"name"`
	EditionId   *int64 `json:"editionId"`
}

// UpdateTenantRequest request for updating a tenant
type UpdateTenantRequest struct {
	Name      *string `json:"name,omitempty"`
	EditionId *int64  `json:"editionId,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}
