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

package consts

// Reserved names. These are contract, not configuration: code references
// them directly and stores refuse to rename or delete them.
const (
	// AdminUserName is created for every tenant; it cannot be renamed or
	// deleted.
	AdminUserName = "admin"

	// AdminRoleName is the static per-tenant administrator role.
	AdminRoleName = "Admin"

	// DefaultTenantName is the tenancy name of the pre-created tenant.
	DefaultTenantName = "Default"
)

// TenancyNameRegex constrains tenancy names: letter first, then letters,
// digits, underscore or dash, minimum two characters.
const TenancyNameRegex = `^[a-zA-Z][a-zA-Z0-9_-]{1,}$`

// Field length limits.
const (
	MaxTenancyNameLength      = 64
	MaxTenantNameLength       = 128
	MaxUserNameLength         = 256
	MaxNameLength             = 64
	MaxRoleNameLength         = 32
	MaxRoleDisplayNameLength  = 64
	MaxPermissionNameLength   = 128
	MaxConcurrencyStampLength = 128
	MaxSecurityStampLength    = 128
)

// Organization-unit code geometry. Codes are fixed-width, dot-separated
// decimal segments ("00001.00002"), so descendant queries reduce to a
// prefix match.
const (
	OrgUnitCodeUnitLength    = 5
	OrgUnitCodeSeparator     = "."
	OrgUnitMaxDepth          = 16
	MaxOrgUnitDisplayNameLen = 128
)

// Permission-setting owner kinds.
const (
	SettingOwnerRole = "role"
	SettingOwnerUser = "user"
)
