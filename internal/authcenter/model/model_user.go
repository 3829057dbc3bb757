package model

import (
	"strings"
	"time"

	"github.com/go-arcade/authcenter/internal/authcenter/consts"
	"github.com/go-arcade/authcenter/pkg/id"
)

/**
 * @file: model_user.go
 * @description: user model
 */

type User struct {
	BaseModel
	AuditFields
	SoftDelete
	TenantId *int64 `gorm:"column:tenant_id;index:idx_user_tenant_username,priority:1" json:"tenantId,omitempty"`
	UserName string `gorm:"column:user_name;size:256;not null" json:"userName"`
	// NormalizedUserName is the upper-invariant form; (tenant_id,
	// normalized_user_name) is unique, giving case-insensitive names.
	NormalizedUserName string     `gorm:"column:normalized_user_name;size:256;not null;index:idx_user_tenant_username,priority:2" json:"-"`
	Name               string     `gorm:"column:name;size:64" json:"name"`
	Email              string     `gorm:"column:email;size:256" json:"email"`
	PhoneNumber        string     `gorm:"column:phone_number;size:32" json:"phoneNumber"`
	Password           string     `gorm:"column:password;size:128" json:"-"` // hash supplied by the credential service
	SecurityStamp      string     `gorm:"column:security_stamp;size:128" json:"-"`
	ConcurrencyStamp   string     `gorm:"column:concurrency_stamp;size:128" json:"-"`
	LockoutEndUtc      *time.Time `gorm:"column:lockout_end_utc" json:"lockoutEndUtc,omitempty"`
	AccessFailedCount  int        `gorm:"column:access_failed_count;not null;default:0" json:"accessFailedCount"`
	IsLockoutEnabled   bool       `gorm:"column:is_lockout_enabled;not null;default:1" json:"isLockoutEnabled"`
	IsActive           bool       `gorm:"column:is_active;not null;default:1" json:"isActive"`
}

func (User) TableName() string {
	return "t_user"
}

// SetNormalizedNames recomputes the normalized user name.
func (u *User) SetNormalizedNames() {
	u.NormalizedUserName = strings.ToUpper(u.UserName)
}

// IsAdmin reports whether this is the reserved per-tenant admin user.
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.UserName, consts.AdminUserName)
}

// IsLockedOut reports whether the lockout window is still open at t.
func (u *User) IsLockedOut(t time.Time) bool {
	return u.IsLockoutEnabled && u.LockoutEndUtc != nil && u.LockoutEndUtc.After(t)
}

// Unlock clears the lockout state.
func (u *User) Unlock() {
	u.AccessFailedCount = 0
	u.LockoutEndUtc = nil
}

// NewTenantAdminUser creates the reserved admin user for a tenant.
func NewTenantAdminUser(tenantId int64) *User {
	u := &User{
		TenantId:         &tenantId,
		UserName:         consts.AdminUserName,
		Name:             consts.AdminUserName,
		SecurityStamp:    id.GetUUID(),
		ConcurrencyStamp: id.NewStamp(),
		IsLockoutEnabled: true,
		IsActive:         true,
	}
	u.SetNormalizedNames()
	return u
}

// AddUserRequest request for creating a user
type AddUserRequest struct {
	UserName    string `json:"userName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// UpdateUserRequest request for updating a user. ConcurrencyStamp must be
// the stamp read at load time.
type UpdateUserRequest struct {
	Name             *string `json:"name,omitempty"`
	Email            *string `json:"email,omitempty"`
	PhoneNumber      *string `json:"phoneNumber,omitempty"`
	IsActive         *bool   `json:"isActive,omitempty"`
	ConcurrencyStamp string  `json:"concurrencyStamp"`
}

// UserInfo user detail response
type UserInfo struct {
	Id       int64  `json:"id"`
	TenantId *int64 `json:"tenantId,omitempty"`
	UserName string `json:"userName"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}
