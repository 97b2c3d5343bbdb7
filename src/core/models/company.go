package models

import "time"

// Company is a directory entry for a member company. like_count is a
// denormalized cache of the rows in likes; it can drift from the true count
// under concurrent toggles and is corrected lazily, never transactionally.
type Company struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Website     string    `json:"website"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url" gorm:"column:logo_url"`
	LikeCount   int       `json:"like_count" gorm:"column:like_count;default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

func (Company) TableName() string {
	return "companies"
}
