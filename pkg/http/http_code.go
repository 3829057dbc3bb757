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

package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")
	InternalError                 = failed(5000, "Internal error, please contact the administrator")

	// Unauthorized 401
	Unauthorized         = failed(4401, "Unauthorized")
	AuthenticationFailed = failed(4402, "Authentication failed")
	InvalidToken         = failed(4405, "Invalid token")
	TokenBeEmpty         = failed(4406, "Token cannot be empty")
	TokenExpired         = failed(4407, "Token is expired")

	// BadRequest 400
	BadRequest = failed(4000, "Bad request")
	NotFound   = failed(4004, "Not found")

	// Forbidden 403
	Forbidden        = failed(4030, "Forbidden")
	PermissionDenied = failed(4031, "Permission denied")
	AccountLocked    = failed(4032, "Account locked")
	AccountInactive  = failed(4033, "Account inactive")
	TenantInactive   = failed(4034, "Tenant inactive")

	// Conflict 409
	StaleWrite          = failed(4091, "Concurrent modification detected, reload and retry")
	DuplicateAssignment = failed(4092, "Duplicate assignment")
	CyclicHierarchy     = failed(4093, "Operation would create a cycle in the hierarchy")

	TenantNotExist       = failed(4045, "Tenant does not exist")
	TenantAlreadyExist   = failed(4046, "Tenant already exists")
	UserNotExist         = failed(4041, "User does not exist")
	UserAlreadyExist     = failed(4042, "User already exists")
	RoleNotExist         = failed(4043, "Role does not exist")
	RoleAlreadyExist     = failed(4044, "Role already exists")
	OrganizationNotExist = failed(4047, "Organization unit does not exist")
	PermissionNotExist   = failed(4048, "Permission is not defined")
	StaticRoleImmutable  = failed(4049, "Static roles cannot be renamed or deleted")
	AdminUserProtected   = failed(4050, "The admin user cannot be renamed or deleted")
)

var (
	Success = success(200, "Request Success")
)

func failed(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}

func success(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}
