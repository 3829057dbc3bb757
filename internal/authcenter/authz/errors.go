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

package authz

import "errors"

var (
	// ErrUnknownPermission is returned when a permission name is not in the
	// catalog. Unknown names fail the check, they never silently deny.
	ErrUnknownPermission = errors.New("permission is not defined in the catalog")

	// ErrUnknownPrincipal is returned when the user does not exist in the
	// tenant partition the check runs in.
	ErrUnknownPrincipal = errors.New("principal does not exist")

	// ErrUnknownTenant is returned when the tenant id of the check does not
	// name an existing tenant.
	ErrUnknownTenant = errors.New("tenant does not exist")

	// ErrTenantNotActive is returned when the tenant exists but is disabled.
	ErrTenantNotActive = errors.New("tenant is not active")

	// ErrUserNotActive is returned when the user exists but is disabled.
	ErrUserNotActive = errors.New("user is not active")

	// ErrUserLockedOut is returned when the user's lockout window is open.
	ErrUserLockedOut = errors.New("user is locked out")

	// ErrDuplicateDefinition is returned when a catalog is built with two
	// definitions sharing a name.
	ErrDuplicateDefinition = errors.New("permission name defined twice")

	// ErrUnknownParent is returned when a definition names a parent that is
	// not itself defined.
	ErrUnknownParent = errors.New("permission parent is not defined")

	// ErrCyclicDefinition is returned when a definition's parent chain loops
	// back on itself.
	ErrCyclicDefinition = errors.New("permission parent chain is cyclic")
)
