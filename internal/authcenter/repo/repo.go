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

import (
	"errors"

	"gorm.io/gorm"
)

// tenantScope restricts a query to one tenant partition. A nil tenant id
// selects the host partition (tenant_id IS NULL); host and tenant rows are
// never visible in the same query.
func tenantScope(tenantId *int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantId == nil {
			return db.Where("tenant_id IS NULL")
		}
		return db.Where("tenant_id = ?", *tenantId)
	}
}

// notDeleted filters out soft-deleted rows.
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", 0)
}

// translateErr maps gorm's not-found error to the package sentinel.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
