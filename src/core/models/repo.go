package models

import "time"

// Repo is a directory entry for an open-source repository. Rows are ingested
// by an external admin process; this service only reads them and maintains
// like_count.
type Repo struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	FullName    string    `json:"full_name" gorm:"column:full_name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Language    string    `json:"language"`
	Stars       int       `json:"stars" gorm:"default:0"`
	LikeCount   int       `json:"like_count" gorm:"column:like_count;default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

func (Repo) TableName() string {
	return "repos"
}
