package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Meeting is a committee sitting's venue and time record. Invitation
// delivery happens outside this system.
type Meeting struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Venue       string       `gorm:"type:text;not null"`
	MeetingTime string       `gorm:"column:meeting_time;type:text;not null"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Meeting) TableName() string { return "meetings" }
