package model

import "time"

/**
 * @file: base_model.go
 * @description: base model and composable audit metadata
 */

type BaseModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt,omitempty"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt,omitempty"`
}

// AuditFields records the acting users of a row's lifecycle. Embedded by
// value rather than inherited; entities that do not track actors simply
// leave it out.
type AuditFields struct {
	CreatorUserId      *int64 `gorm:"column:creator_user_id" json:"creatorUserId,omitempty"`
	LastModifierUserId *int64 `gorm:"column:last_modifier_user_id" json:"lastModifierUserId,omitempty"`
}

// SoftDelete marks a row removed without destroying it, preserving the
// audit trail. Queries exclude soft-deleted rows by default.
type SoftDelete struct {
	IsDeleted     bool       `gorm:"column:is_deleted;not null;default:0" json:"-"`
	DeleterUserId *int64     `gorm:"column:deleter_user_id" json:"-"`
	DeletionTime  *time.Time `gorm:"column:deletion_time" json:"-"`
}

// MarkDeleted flags the row as removed by the given actor.
func (s *SoftDelete) MarkDeleted(deleterUserId *int64) {
	now := time.Now().UTC()
	s.IsDeleted = true
	s.DeleterUserId = deleterUserId
	s.DeletionTime = &now
}
