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

package service

import "errors"

var (
	// ErrCyclicHierarchy is returned when a re-parent would make a unit its
	// own ancestor. Nothing is mutated when this is returned.
	ErrCyclicHierarchy = errors.New("re-parent would create a cycle in the organization tree")

	// ErrStaticRoleImmutable is returned when a static role is renamed or
	// deleted. Static roles are referenced by name from code.
	ErrStaticRoleImmutable = errors.New("static roles cannot be renamed or deleted")

	// ErrAdminUserProtected is returned when the reserved admin user is
	// deleted or deactivated.
	ErrAdminUserProtected = errors.New("the admin user cannot be deleted or deactivated")

	// ErrInvalidTenancyName is returned when a tenancy name does not match
	// the allowed pattern.
	ErrInvalidTenancyName = errors.New("tenancy name must start with a letter and contain only letters, digits, dash and underscore")

	// ErrAlreadyExists is returned when a unique name is taken inside the
	// target tenant partition.
	ErrAlreadyExists = errors.New("name already in use")

	// ErrMaxDepthExceeded is returned when a unit would sit deeper than the
	// supported tree depth.
	ErrMaxDepthExceeded = errors.New("organization tree depth limit exceeded")

	// ErrUnitNotEmpty is returned when a unit with live children is deleted.
	ErrUnitNotEmpty = errors.New("organization unit still has child units")
)
