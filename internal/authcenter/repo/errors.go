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

package repo

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist in the
	// caller's tenant partition.
	ErrNotFound = errors.New("record not found")

	// ErrStaleWrite is returned when a conditional update matched no rows
	// because the concurrency stamp changed since the entity was read.
	ErrStaleWrite = errors.New("concurrency stamp mismatch, entity was modified concurrently")

	// ErrDuplicateAssignment is returned when an assignment row
	// (user-role, user-unit, unit-role) already exists.
	ErrDuplicateAssignment = errors.New("assignment already exists")
)
