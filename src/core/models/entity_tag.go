package models

// EntityTag maps a directory entity to a tag. The tag vocabulary is shared
// between companies and repos, so the mapping carries the entity kind.
type EntityTag struct {
	ID         int        `gorm:"primaryKey" json:"id"`
	EntityKind EntityKind `gorm:"column:entity_kind;not null;index:idx_entity_tags_entity" json:"entity_kind"`
	EntityID   int        `gorm:"column:entity_id;not null;index:idx_entity_tags_entity" json:"entity_id"`
	TagID      int        `gorm:"column:tag_id;not null" json:"tag_id"`
}

func (EntityTag) TableName() string {
	return "entity_tags"
}
