package models

import (
	"time"

	"github.com/google/uuid"
)

// Form submission rows. Each handler validates the payload, inserts one of
// these, then notifies the team chat; on a failed notification the row is
// best-effort deleted again.

type ContactMessage struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"not null" json:"name" validate:"required"`
	Email     string    `gorm:"not null" json:"email" validate:"required,email"`
	Message   string    `gorm:"not null" json:"message" validate:"required"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

type ClubApplication struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	Name       string    `gorm:"not null" json:"name" validate:"required"`
	Email      string    `gorm:"not null" json:"email" validate:"required,email"`
	Company    string    `json:"company"`
	Role       string    `json:"role"`
	LinkedIn   string    `gorm:"column:linkedin" json:"linkedin" validate:"omitempty,url"`
	Motivation string    `gorm:"not null" json:"motivation" validate:"required"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ClubApplication) TableName() string {
	return "club_applications"
}

type WaitlistEntry struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string    `gorm:"not null;unique" json:"email" validate:"required,email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}

type ProgramRegistration struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"not null" json:"name" validate:"required"`
	Email     string    `gorm:"not null" json:"email" validate:"required,email"`
	Program   string    `gorm:"not null" json:"program" validate:"required"`
	Company   string    `json:"company"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ProgramRegistration) TableName() string {
	return "program_registrations"
}
