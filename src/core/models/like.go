package models

import "time"

// EntityKind discriminates which directory table a like or tag mapping
// points at.
type EntityKind string

const (
	EntityKindCompany EntityKind = "company"
	EntityKindRepo    EntityKind = "repo"
)

// Like records one user's like of one directory entity. The unique index is
// the source of truth for "does u like e"; like_count on the entity is only
// a cache of these rows.
type Like struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	EntityKind   EntityKind `gorm:"column:entity_kind;not null;uniqueIndex:idx_likes_identity" json:"entity_kind"`
	EntityID     int        `gorm:"column:entity_id;not null;uniqueIndex:idx_likes_identity" json:"entity_id"`
	UserIdentity string     `gorm:"column:user_identity;not null;uniqueIndex:idx_likes_identity" json:"user_identity"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
